package services

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "spendbook/internal/errors"
	"spendbook/internal/export"
	"spendbook/internal/models"
)

// expenseLedger handles expense records scoped to their owning user.
type expenseLedger struct {
	db *gorm.DB
}

// NewExpenseLedger creates a new ExpenseLedger.
func NewExpenseLedger(db *gorm.DB) ExpenseLedger {
	return &expenseLedger{db: db}
}

// Add records a new expense for the owner.
func (s *expenseLedger) Add(ownerID uint, input ExpenseInput) (*models.Expense, error) {
	amount, spentOn, note, err := parseExpenseInput(input)
	if err != nil {
		return nil, err
	}
	categoryID, err := s.resolveCategory(input.CategoryID)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		UserID:     ownerID,
		Amount:     amount,
		SpentOn:    spentOn,
		Note:       note,
		CategoryID: categoryID,
	}
	if err := s.db.Create(expense).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return expense, nil
}

// Get fetches a single expense scoped by both id and owner, so one user can
// never load another user's record.
func (s *expenseLedger) Get(ownerID, expenseID uint) (*models.Expense, error) {
	var expense models.Expense
	if err := s.db.Preload("Category").
		Where("id = ? AND user_id = ?", expenseID, ownerID).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrExpenseNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return &expense, nil
}

// List returns the owner's expenses newest first, optionally filtered by
// category, along with the running sum of their amounts.
func (s *expenseLedger) List(ownerID uint, categoryID *uint) ([]models.Expense, decimal.Decimal, error) {
	query := s.db.
		Preload("Category").
		Where("user_id = ?", ownerID).
		Order("spent_on DESC, id DESC")
	if categoryID != nil {
		query = query.Where("category_ids = ?", *categoryID)
	}

	var expenses []models.Expense
	if err := query.Find(&expenses).Error; err != nil {
		return nil, decimal.Zero, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	total := decimal.Zero
	for _, e := range expenses {
		total = total.Add(e.Amount)
	}
	return expenses, total, nil
}

// Update edits an expense scoped by both id and owner. An id belonging to a
// different user affects zero rows and is surfaced as not found rather than
// silently succeeding.
func (s *expenseLedger) Update(ownerID, expenseID uint, input ExpenseInput) (*models.Expense, error) {
	amount, spentOn, note, err := parseExpenseInput(input)
	if err != nil {
		return nil, err
	}
	categoryID, err := s.resolveCategory(input.CategoryID)
	if err != nil {
		return nil, err
	}

	res := s.db.Model(&models.Expense{}).
		Where("id = ? AND user_id = ?", expenseID, ownerID).
		Updates(map[string]interface{}{
			"amount":       amount,
			"spent_on":     spentOn,
			"note":         note,
			"category_ids": categoryID,
		})
	if res.Error != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperrors.ErrExpenseNotFound
	}

	var expense models.Expense
	if err := s.db.Preload("Category").First(&expense, expenseID).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return &expense, nil
}

// Delete removes an expense scoped by both id and owner, surfacing a
// mismatch as not found.
func (s *expenseLedger) Delete(ownerID, expenseID uint) error {
	res := s.db.
		Where("id = ? AND user_id = ?", expenseID, ownerID).
		Delete(&models.Expense{})
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrStoreUnavailable, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrExpenseNotFound
	}
	return nil
}

// ExportRows materializes the owner's full ledger view for the export
// adapter: one row per expense plus the grand total.
func (s *expenseLedger) ExportRows(ownerID uint) ([]export.Row, decimal.Decimal, error) {
	expenses, total, err := s.List(ownerID, nil)
	if err != nil {
		return nil, decimal.Zero, err
	}

	rows := make([]export.Row, 0, len(expenses))
	for i := range expenses {
		e := &expenses[i]
		note := ""
		if e.Note != nil {
			note = *e.Note
		}
		rows = append(rows, export.Row{
			ID:       e.ID,
			Amount:   e.Amount,
			Date:     e.SpentOn.Format(models.DateLayout),
			Category: e.CategoryName(),
			Note:     note,
		})
	}
	return rows, total, nil
}

// resolveCategory checks an optional category reference against the
// taxonomy. A reference that matches no category yields no category, so a
// row picked from a stale list stores NULL instead of a dangling foreign key.
func (s *expenseLedger) resolveCategory(id *uint) (*uint, error) {
	if id == nil {
		return nil, nil
	}
	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("category_id = ?", *id).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	if count == 0 {
		return nil, nil
	}
	return id, nil
}

// parseExpenseInput validates the wire form and converts it into storage
// types. An empty note becomes NULL, matching the schema.
func parseExpenseInput(input ExpenseInput) (decimal.Decimal, time.Time, *string, error) {
	if err := validateInput(input); err != nil {
		return decimal.Zero, time.Time{}, nil, err
	}

	amount, err := decimal.NewFromString(input.Amount)
	if err != nil {
		return decimal.Zero, time.Time{}, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid amount")
	}
	spentOn, err := time.Parse(models.DateLayout, input.Date)
	if err != nil {
		return decimal.Zero, time.Time{}, nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "invalid date")
	}

	var note *string
	if trimmed := input.Note; trimmed != "" {
		note = &trimmed
	}
	return amount, spentOn, note, nil
}

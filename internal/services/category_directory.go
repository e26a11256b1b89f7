package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "spendbook/internal/errors"
	"spendbook/internal/models"
)

// categoryDirectory handles the shared category taxonomy.
type categoryDirectory struct {
	db *gorm.DB
}

// NewCategoryDirectory creates a new CategoryDirectory.
func NewCategoryDirectory(db *gorm.DB) CategoryDirectory {
	return &categoryDirectory{db: db}
}

// List returns all categories sorted by name.
func (s *categoryDirectory) List() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("category_name").Find(&categories).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return categories, nil
}

// Add creates a category. Names are matched case-sensitively, so "food" and
// "Food" are distinct entries.
func (s *categoryDirectory) Add(actor *Actor, name string) (*models.Category, error) {
	if !actor.IsAdmin() {
		return nil, apperrors.ErrForbidden
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	if len(name) > 50 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is too long")
	}

	var count int64
	if err := s.db.Model(&models.Category{}).
		Where("category_name = ?", name).
		Count(&count).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	if count > 0 {
		return nil, apperrors.ErrDuplicateCategory
	}

	category := &models.Category{Name: name}
	if err := s.db.Create(category).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return category, nil
}

// Delete removes a category. Referencing expenses are detached (category
// cleared) rather than deleted, and detach + delete run in one transaction so
// a mid-operation failure leaves the taxonomy unchanged.
func (s *categoryDirectory) Delete(actor *Actor, id uint) error {
	if !actor.IsAdmin() {
		return apperrors.ErrForbidden
	}

	var category models.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrCategoryNotFound
		}
		return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Expense{}).
			Where("category_ids = ?", id).
			Update("category_ids", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&category).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStoreUnavailable, err)
	}
	return nil
}

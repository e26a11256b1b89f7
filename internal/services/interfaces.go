package services

import (
	"github.com/shopspring/decimal"

	"spendbook/internal/export"
	"spendbook/internal/models"
)

// Actor is the acting principal projected into the service layer. A nil
// *Actor means the operation is attempted without an authenticated session.
// Every protected operation checks the actor explicitly at entry instead of
// trusting that a dashboard screen was reached.
type Actor struct {
	ID   uint
	Role models.Role
}

// IsAdmin reports whether the actor is an authenticated administrator.
func (a *Actor) IsAdmin() bool {
	return a != nil && a.Role == models.RoleAdmin
}

// RegisterInput carries a new account submission.
type RegisterInput struct {
	Fullname string      `validate:"required,max=50"`
	Username string      `validate:"required,max=50"`
	Email    string      `validate:"required,email,max=100"`
	Password string      `validate:"required"`
	Role     models.Role `validate:"required,role"`
}

// UpdateUserInput carries an account edit. A blank password keeps the stored
// digest unchanged.
type UpdateUserInput struct {
	Fullname string `validate:"required,max=50"`
	Username string `validate:"required,max=50"`
	Email    string `validate:"required,email,max=100"`
	Password string
}

// ExpenseInput carries an expense form submission. Amount and Date stay in
// their wire form so validation failures can be surfaced inline with the
// offending text retained.
type ExpenseInput struct {
	Amount     string `validate:"required,money"`
	Date       string `validate:"required,spend_date"`
	Note       string `validate:"max=255"`
	CategoryID *uint
}

// UserDirectory defines the contract for account and role management.
type UserDirectory interface {
	Register(actor *Actor, input RegisterInput) (*models.User, error)
	Authenticate(username, password string, expectedRole models.Role) (*models.User, error)
	ListUsers(actor *Actor) ([]models.User, error)
	GetUser(actor *Actor, id uint) (*models.User, error)
	UpdateUser(actor *Actor, id uint, input UpdateUserInput) (*models.User, error)
	DeleteUser(actor *Actor, id uint) error
	AdminExists() (bool, error)
}

// CategoryDirectory defines the contract for the shared category taxonomy.
type CategoryDirectory interface {
	List() ([]models.Category, error)
	Add(actor *Actor, name string) (*models.Category, error)
	Delete(actor *Actor, id uint) error
}

// ExpenseLedger defines the contract for expense records scoped to their
// owning user.
type ExpenseLedger interface {
	Add(ownerID uint, input ExpenseInput) (*models.Expense, error)
	Get(ownerID, expenseID uint) (*models.Expense, error)
	List(ownerID uint, categoryID *uint) ([]models.Expense, decimal.Decimal, error)
	Update(ownerID, expenseID uint, input ExpenseInput) (*models.Expense, error)
	Delete(ownerID, expenseID uint) error
	ExportRows(ownerID uint) ([]export.Row, decimal.Decimal, error)
}

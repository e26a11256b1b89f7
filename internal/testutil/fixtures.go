package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"spendbook/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestAdmin creates an admin account with a hashed password.
func CreateTestAdmin(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return createUser(t, db, models.RoleAdmin)
}

// CreateTestUser creates a regular account with a hashed password and unique
// username/email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	return createUser(t, db, models.RoleUser)
}

func createUser(t *testing.T, db *gorm.DB, role models.Role) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	n := nextID()
	user := &models.User{
		Fullname: fmt.Sprintf("Test %s %d", role, n),
		Username: fmt.Sprintf("%s%d", role, n),
		Email:    fmt.Sprintf("%s%d@test.com", role, n),
		Password: string(hash),
		Role:     role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a category with a unique name.
func CreateTestCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()

	category := &models.Category{
		Name: fmt.Sprintf("Test Category %d", nextID()),
	}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return category
}

// CreateTestExpense creates an expense for the given owner. The amount is a
// decimal string such as "10.00".
func CreateTestExpense(t *testing.T, db *gorm.DB, userID uint, amount string, categoryID *uint) *models.Expense {
	t.Helper()

	amt, err := decimal.NewFromString(amount)
	if err != nil {
		t.Fatalf("invalid fixture amount %q: %v", amount, err)
	}

	note := fmt.Sprintf("test expense %d", nextID())
	expense := &models.Expense{
		UserID:     userID,
		Amount:     amt,
		SpentOn:    time.Now().Truncate(24 * time.Hour),
		Note:       &note,
		CategoryID: categoryID,
	}
	if err := db.Create(expense).Error; err != nil {
		t.Fatalf("failed to create test expense: %v", err)
	}
	return expense
}

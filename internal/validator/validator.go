// Package validator provides the shared validation engine with
// domain-specific validation functions registered on top of
// go-playground/validator.
package validator

import (
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"spendbook/internal/models"
)

var (
	engine *validator.Validate
	once   sync.Once
)

// Get returns the shared validation engine with all custom validators registered.
func Get() *validator.Validate {
	once.Do(func() {
		engine = validator.New(validator.WithRequiredStructEnabled())
		_ = engine.RegisterValidation("role", validateRole)
		_ = engine.RegisterValidation("money", validateMoney)
		_ = engine.RegisterValidation("spend_date", validateSpendDate)
	})
	return engine
}

// Struct validates a struct using the shared engine.
func Struct(s interface{}) error {
	return Get().Struct(s)
}

func validateRole(fl validator.FieldLevel) bool {
	return models.Role(fl.Field().String()).Valid()
}

// validateMoney accepts a positive decimal with at most two fraction digits,
// the currency precision of the amount column.
func validateMoney(fl validator.FieldLevel) bool {
	d, err := decimal.NewFromString(fl.Field().String())
	if err != nil {
		return false
	}
	if !d.IsPositive() {
		return false
	}
	if d.Exponent() < -2 {
		return false
	}
	// DECIMAL(10,2) leaves eight integer digits.
	return d.LessThan(decimal.New(1, 8))
}

func validateSpendDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(models.DateLayout, fl.Field().String())
	return err == nil
}

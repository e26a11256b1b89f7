package services

import (
	"errors"
	"fmt"
	"strings"

	playground "github.com/go-playground/validator/v10"

	apperrors "spendbook/internal/errors"
	"spendbook/internal/validator"
)

// validateInput runs the shared validation engine over an input struct and
// converts the first failure into an INVALID_INPUT AppError naming the field.
func validateInput(s interface{}) error {
	err := validator.Struct(s)
	if err == nil {
		return nil
	}

	var verrs playground.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := strings.ToLower(verrs[0].Field())
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("invalid or missing %s", field))
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err)
}

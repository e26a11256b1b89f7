// Package errors provides custom error types for Spendbook.
// All service-layer errors should use AppError so screens surface consistent
// messages without leaking store internals to the operator.
package errors

// AppError represents a structured application error with a stable error
// code, a human-readable message, and an optional internal cause.
type AppError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Internal error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:     sentinel.Code,
		Message:  sentinel.Message,
		Internal: internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:     sentinel.Code,
		Message:  message,
		Internal: sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrInvalidCredentials = &AppError{Code: "INVALID_CREDENTIALS", Message: "Invalid username or password"}
	ErrForbidden          = &AppError{Code: "FORBIDDEN", Message: "Access denied"}
)

// General errors.
var (
	ErrInvalidInput     = &AppError{Code: "INVALID_INPUT", Message: "Invalid input"}
	ErrStoreUnavailable = &AppError{Code: "STORE_UNAVAILABLE", Message: "The expense store is unavailable"}
)

// User errors.
var (
	ErrUserNotFound      = &AppError{Code: "USER_NOT_FOUND", Message: "User not found"}
	ErrDuplicateUsername = &AppError{Code: "DUPLICATE_USERNAME", Message: "Username already exists"}
	ErrDuplicateEmail    = &AppError{Code: "DUPLICATE_EMAIL", Message: "Email already exists"}
	ErrProtectedRecord   = &AppError{Code: "PROTECTED_RECORD", Message: "Admin accounts cannot be deleted here"}
)

// Category errors.
var (
	ErrCategoryNotFound  = &AppError{Code: "CATEGORY_NOT_FOUND", Message: "Category not found"}
	ErrDuplicateCategory = &AppError{Code: "DUPLICATE_CATEGORY", Message: "Category already exists"}
)

// Expense errors.
var (
	ErrExpenseNotFound = &AppError{Code: "EXPENSE_NOT_FOUND", Message: "Expense not found"}
)

// Export errors.
var (
	ErrExportFailed = &AppError{Code: "EXPORT_FAILED", Message: "Failed to write the export file"}
)

// Package errors provides custom error types for the budget engine.
// Calendar and programmer misuse surface as AppError values with a stable code;
// numerically degenerate inputs never produce errors, they fall back to
// documented values instead.
package errors

// AppError represents a structured application error with an error code,
// human-readable message, and optional internal error.
type AppError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Internal error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Internal != nil {
		return e.Message + ": " + e.Internal.Error()
	}
	return e.Message
}

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Is reports whether target carries the same code, so wrapped copies still
// match their sentinel.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

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

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input"}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found"}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred"}
	ErrConfigInvalid  = &AppError{Code: "CONFIG_INVALID", Message: "Configuration is invalid"}
	ErrStoreFailure   = &AppError{Code: "STORE_FAILURE", Message: "Entity store operation failed"}
)

// Calendar errors.
var (
	ErrInvalidDateRange    = &AppError{Code: "INVALID_DATE_RANGE", Message: "Horizon end is before its start"}
	ErrInvalidCalendarDate = &AppError{Code: "INVALID_CALENDAR_DATE", Message: "Invalid calendar date"}
)

// Entity errors.
var (
	ErrCardNotFound          = &AppError{Code: "CARD_NOT_FOUND", Message: "Credit card not found"}
	ErrPaycheckNotConfigured = &AppError{Code: "PAYCHECK_NOT_CONFIGURED", Message: "No current paycheck configuration"}
)

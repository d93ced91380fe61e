package domain

import "fmt"

// AppError is the error type every engine operation reports. Operations
// either fully succeed or return an AppError and leave state untouched.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"-"`
	Cause   error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

// Standard constructors.

func ErrValidation(format string, args ...any) *AppError {
	return &AppError{Code: "VALIDATION_ERROR", Message: fmt.Sprintf(format, args...), Status: 400}
}

func ErrNotFound(entity, id string) *AppError {
	return &AppError{Code: "NOT_FOUND", Message: fmt.Sprintf("%s %s not found", entity, id), Status: 404}
}

func ErrParse(msg string, cause error) *AppError {
	return &AppError{Code: "PARSE_ERROR", Message: msg, Status: 400, Cause: cause}
}

func ErrConflict(msg string) *AppError {
	return &AppError{Code: "CONFLICT", Message: msg, Status: 409}
}

func ErrInternal(msg string, cause error) *AppError {
	return &AppError{Code: "INTERNAL_ERROR", Message: msg, Status: 500, Cause: cause}
}

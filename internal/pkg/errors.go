package pkg

import "net/http"

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError 需要直接呈现给调用方的错误
type AppError struct {
	Status  int
	Message string
	Errors  []FieldError
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(status int, message string) *AppError {
	return &AppError{Status: status, Message: message}
}

func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message)
}

func ValidationFailed(errs ...FieldError) *AppError {
	return &AppError{Status: http.StatusBadRequest, Message: "Validation failed", Errors: errs}
}

func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, message)
}

func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, message)
}

func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, message)
}

func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, message)
}

func TooManyRequests(message string) *AppError {
	return NewAppError(http.StatusTooManyRequests, message)
}

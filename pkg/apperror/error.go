package apperror

import (
	"net/http"

	"hireable-backend/pkg/content"
)

// AppError is an error with an HTTP status. When Key is set the error
// middleware resolves the message in the request's locale and Message is
// the English fallback.
type AppError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Key     content.Key `json:"-"`
	Err     error       `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}

// LocalizedMessage resolves Key through r, falling back to Message.
func (e *AppError) LocalizedMessage(r content.Resolver) string {
	if e.Key == "" || r == nil {
		return e.Message
	}
	if msg := r.Resolve(e.Key, nil); msg != "" && msg != string(e.Key) {
		return msg
	}
	return e.Message
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Localized builds an error whose message comes from the content
// dictionary.
func Localized(code int, key content.Key, fallback string) *AppError {
	return &AppError{Code: code, Message: fallback, Key: key}
}

// WithErr attaches a cause.
func (e *AppError) WithErr(err error) *AppError {
	e.Err = err
	return e
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, message, nil)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}

package apperrors

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Stable error codes returned in the `error` field of every error body.
const (
	CodeValidation         = "ValidationError"
	CodeDuplicatePhone     = "DuplicatePhone"
	CodeDuplicateEmail     = "DuplicateEmail"
	CodeNotFound           = "NotFound"
	CodeInvalidCredentials = "InvalidCredentials"
	CodeUnauthorized       = "Unauthorized"
	CodeForbidden          = "Forbidden"
	CodeTooManyNotes       = "TooManyNotes"
	CodeRateLimited        = "RateLimited"
	CodeInternal           = "InternalError"
)

// FieldError identifies a single violated field constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the domain error carried from services to the API boundary.
type Error struct {
	Code    string
	Message string
	Details []FieldError
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

// New creates a domain error with an arbitrary code.
func New(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Validation aggregates one or more field violations.
func Validation(details []FieldError) *Error {
	return &Error{
		Code:    CodeValidation,
		Message: "Invalid patient data",
		Details: details,
	}
}

func DuplicatePhone() *Error {
	return &Error{
		Code:    CodeDuplicatePhone,
		Message: "A patient with this phone number already exists",
		Details: []FieldError{{Field: "phone", Message: "Phone number must be unique"}},
	}
}

func DuplicateEmail() *Error {
	return &Error{
		Code:    CodeDuplicateEmail,
		Message: "A user with this email already exists",
		Details: []FieldError{{Field: "email", Message: "Email must be unique"}},
	}
}

func NotFound(message string) *Error {
	return &Error{Code: CodeNotFound, Message: message}
}

// InvalidCredentials is deliberately identical for unknown email and wrong
// password to avoid account enumeration.
func InvalidCredentials() *Error {
	return &Error{Code: CodeInvalidCredentials, Message: "Invalid email or password"}
}

func Unauthorized() *Error {
	return &Error{Code: CodeUnauthorized, Message: "Authentication required"}
}

func Forbidden() *Error {
	return &Error{Code: CodeForbidden, Message: "Insufficient permissions"}
}

func TooManyNotes() *Error {
	return &Error{Code: CodeTooManyNotes, Message: "Cannot have more than 50 notes per patient"}
}

func RateLimited() *Error {
	return &Error{Code: CodeRateLimited, Message: "Too many failed login attempts, try again later"}
}

func Internal(message string) *Error {
	return &Error{Code: CodeInternal, Message: message}
}

// StatusOf maps a domain error code to its HTTP status.
func StatusOf(e *Error) int {
	switch e.Code {
	case CodeValidation, CodeTooManyNotes:
		return http.StatusBadRequest
	case CodeDuplicatePhone, CodeDuplicateEmail:
		return http.StatusConflict
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInvalidCredentials, CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeForbidden:
		return http.StatusForbidden
	case CodeRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Respond writes the structured error body and aborts the request.
func Respond(c *gin.Context, status int, e *Error) {
	body := gin.H{
		"error":     e.Code,
		"message":   e.Message,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if len(e.Details) > 0 {
		body["details"] = e.Details
	}
	c.AbortWithStatusJSON(status, body)
}

// RespondError translates any error into the taxonomy. Unexpected errors
// become InternalError without leaking internal detail.
func RespondError(c *gin.Context, err error) {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		Respond(c, StatusOf(domainErr), domainErr)
		return
	}

	Respond(c, http.StatusInternalServerError, Internal("An unexpected error occurred"))
}

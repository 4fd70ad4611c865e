package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindValidation     ErrorKind = "VALIDATION"
	KindNotFound       ErrorKind = "NOT_FOUND"
	KindBusiness       ErrorKind = "BUSINESS"
	KindInfrastructure ErrorKind = "INFRASTRUCTURE"
)

// Error carries enough information for the boundary to classify a failure
// without parsing message text.
type Error struct {
	Kind    ErrorKind
	Code    string
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

func NewValidationError(code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

func NewNotFoundError(code, message string) *Error {
	return &Error{Kind: KindNotFound, Code: code, Message: message}
}

func NewBusinessError(code, message string) *Error {
	return &Error{Kind: KindBusiness, Code: code, Message: message}
}

func NewInfrastructureError(code, message string, cause error) *Error {
	return &Error{Kind: KindInfrastructure, Code: code, Message: message, cause: cause}
}

// KindOf classifies any error; unknown errors count as infrastructure
// failures so they are never mistaken for client mistakes.
func KindOf(err error) ErrorKind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindInfrastructure
}

func CodeOf(err error) string {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return "internal"
}

// Package domain holds the error taxonomy shared by the state core and the
// HTTP boundary. Every failure the core surfaces is a *Error so the boundary
// can map it to the uniform {exceptionClassName, message} envelope.
package domain

import "fmt"

// Kind classifies a domain error. The string value doubles as the
// exceptionClassName reported to API clients.
type Kind string

const (
	KindValidation        Kind = "ValidationException"
	KindNotFound          Kind = "NotFoundException"
	KindDuplicate         Kind = "DuplicateIdentifierException"
	KindInvalidTransition Kind = "InvalidTransitionException"
	KindAuthentication    Kind = "AuthenticationException"
	KindForbidden         Kind = "ForbiddenException"
)

// Error is a domain failure with enough context to name the entity, identifier
// or field that caused it.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Is lets errors.Is match any error of the same kind, so callers can test
// against the exported sentinels without caring about the message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrValidation        = &Error{Kind: KindValidation}
	ErrNotFound          = &Error{Kind: KindNotFound}
	ErrDuplicate         = &Error{Kind: KindDuplicate}
	ErrInvalidTransition = &Error{Kind: KindInvalidTransition}
	ErrAuthentication    = &Error{Kind: KindAuthentication}
	ErrForbidden         = &Error{Kind: KindForbidden}
)

// NewValidationError creates a validation error with the given message.
func NewValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// NewNotFoundError creates a not-found error for the given entity and identifier.
func NewNotFoundError(entity, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s with ID %s not found", entity, id)}
}

// NewEmptyError creates a not-found error for a collection with no entries.
func NewEmptyError(entity string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("no %s entities exist", entity)}
}

// NewDuplicateError creates a duplicate-identifier error for the given entity.
func NewDuplicateError(entity, id string) *Error {
	return &Error{Kind: KindDuplicate, Message: fmt.Sprintf("%s with ID %s already exists", entity, id)}
}

// NewInvalidTransitionError creates an error for a disallowed status transition.
func NewInvalidTransitionError(from, to string) *Error {
	return &Error{Kind: KindInvalidTransition, Message: fmt.Sprintf("cannot transition from %s to %s", from, to)}
}

// NewAuthenticationError creates a credential-mismatch error.
func NewAuthenticationError(msg string) *Error {
	return &Error{Kind: KindAuthentication, Message: msg}
}

// NewForbiddenError creates an authorization error.
func NewForbiddenError(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

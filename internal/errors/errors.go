// Package errors defines the domain error taxonomy shared by the
// repositories, services and HTTP handlers.
package errors

import (
	stderrors "errors"
	"net/http"
)

// Kind classifies a domain failure. Each kind maps to one HTTP status.
type Kind string

const (
	KindValidation         Kind = "VALIDATION_ERROR"
	KindMembershipRequired Kind = "MEMBERSHIP_REQUIRED"
	KindForbidden          Kind = "FORBIDDEN"
	KindInsufficientFunds  Kind = "INSUFFICIENT_FUNDS"
	KindListingUnavailable Kind = "LISTING_UNAVAILABLE"
	KindNotFound           Kind = "NOT_FOUND"
	KindConflict           Kind = "CONFLICT"
)

// DomainError is a business rule failure. Anything that is not a
// DomainError is treated as an infrastructure failure.
type DomainError struct {
	Kind    Kind              `json:"-"`
	Code    string            `json:"code"`
	Message string            `json:"error"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches on Code. A target without a Code is a kind sentinel and
// matches every error of that kind.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	if t.Code == "" {
		return e.Kind == t.Kind
	}
	return e.Code == t.Code
}

// ErrorCode returns the wire code: the specific code when set, otherwise the kind.
func (e *DomainError) ErrorCode() string {
	if e.Code != "" {
		return e.Code
	}
	return string(e.Kind)
}

// Kind sentinels, usable as errors.Is targets.
var (
	ErrValidation         = &DomainError{Kind: KindValidation, Message: "validation failed"}
	ErrMembershipRequired = &DomainError{Kind: KindMembershipRequired, Message: "an active paid membership is required"}
	ErrForbidden          = &DomainError{Kind: KindForbidden, Message: "forbidden"}
	ErrInsufficientFunds  = &DomainError{Kind: KindInsufficientFunds, Message: "insufficient wallet balance"}
	ErrListingUnavailable = &DomainError{Kind: KindListingUnavailable, Message: "listing is no longer available"}
	ErrNotFound           = &DomainError{Kind: KindNotFound, Message: "not found"}
	ErrConflict           = &DomainError{Kind: KindConflict, Message: "conflict"}
)

// New builds a DomainError of the given kind.
func New(kind Kind, code, message string) *DomainError {
	return &DomainError{Kind: kind, Code: code, Message: message}
}

// Validation builds a validation error carrying per-field messages.
func Validation(fields map[string]string) *DomainError {
	return &DomainError{
		Kind:    KindValidation,
		Code:    string(KindValidation),
		Message: "validation failed",
		Fields:  fields,
	}
}

// InvalidField is shorthand for a single-field validation error.
func InvalidField(field, message string) *DomainError {
	return Validation(map[string]string{field: message})
}

// As extracts the DomainError from an error chain.
func As(err error) (*DomainError, bool) {
	var de *DomainError
	if stderrors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// HTTPStatus maps an error to the status code returned by the API.
func HTTPStatus(err error) int {
	de, ok := As(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch de.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindMembershipRequired:
		return http.StatusPaymentRequired
	case KindForbidden:
		return http.StatusForbidden
	case KindInsufficientFunds:
		return http.StatusUnprocessableEntity
	case KindListingUnavailable, KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Code returns the wire code of err, or INTERNAL_ERROR for errors outside
// the taxonomy.
func Code(err error) string {
	if de, ok := As(err); ok {
		return de.ErrorCode()
	}
	return "INTERNAL_ERROR"
}

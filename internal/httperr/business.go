package httperr

import (
	"errors"
	"net/http"

	"gorm.io/gorm"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindUnauthenticated
	KindInvalidToken
	KindForbidden
	KindNotFound
	KindConflict
	KindInvalidTransition
	KindUnavailable
	KindAlreadyPaid
	KindInvalidSignature
	KindUpstream
	KindInternal
)

// Status maps a kind to the HTTP status the API answers with.
func (k Kind) Status() int {
	switch k {
	case KindValidation, KindInvalidTransition, KindUnavailable, KindAlreadyPaid, KindInvalidSignature:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindInvalidToken, KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

type BusinessError struct {
	Kind    Kind
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

func New(kind Kind, code, message string) error {
	return BusinessError{Kind: kind, Code: code, Message: message}
}

func ErrValidation(code, message string) error {
	return New(KindValidation, code, message)
}

func ErrNotFound(code, message string) error {
	return New(KindNotFound, code, message)
}

func ErrForbidden(code, message string) error {
	return New(KindForbidden, code, message)
}

func ErrConflict(code, message string) error {
	return New(KindConflict, code, message)
}

func ErrInvalidTransition(code, message string) error {
	return New(KindInvalidTransition, code, message)
}

func ErrUpstream(code, message string) error {
	return New(KindUpstream, code, message)
}

// As unwraps err into a BusinessError.
func As(err error) (BusinessError, bool) {
	var be BusinessError
	if errors.As(err, &be) {
		return be, true
	}
	return be, false
}

func IsBusiness(err error, code string) bool {
	be, ok := As(err)
	return ok && be.Code == code
}

func IsKind(err error, kind Kind) bool {
	be, ok := As(err)
	return ok && be.Kind == kind
}

// NotFoundOr maps a missing-record error to a NotFound business error and
// passes anything else through.
func NotFoundOr(err error, code, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound(code, message)
	}
	return err
}

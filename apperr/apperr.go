// Package apperr carries the coded domain errors shared by all services.
// Controllers switch on Code(err) to pick the HTTP status.
package apperr

import (
	"errors"
	"fmt"
)

type Code string

const (
	NotFound          Code = "NOT_FOUND"          // referenced user/item/booking/request absent
	Validation        Code = "VALIDATION"         // malformed input, bad window, unavailable item, bad paging
	Forbidden         Code = "FORBIDDEN"          // actor not authorized for the operation
	AlreadyExists     Code = "ALREADY_EXISTS"     // uniqueness violation, e.g. duplicate email
	InvalidTransition Code = "INVALID_TRANSITION" // terminal booking re-transitioned
)

type codedError struct {
	code Code
	msg  string
}

func (e codedError) Error() string { return e.msg }
func (e codedError) Code() Code    { return e.code }

func New(c Code, msg string) error { return codedError{code: c, msg: msg} }

func Newf(c Code, format string, args ...any) error {
	return codedError{code: c, msg: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the code; "" means an uncoded (internal) error.
func CodeOf(err error) Code {
	var ce interface{ Code() Code }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

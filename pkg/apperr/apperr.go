package apperr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrStoreFailure    = errors.New("store failure")
	ErrInternal        = errors.New("internal error")
)

type Error struct {
	kind error
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.msg + ": " + e.err.Error()
	}
	return e.msg
}

// Message is the text safe to show to API callers.
func (e *Error) Message() string { return e.msg }

func (e *Error) Is(target error) bool { return target == e.kind }

func (e *Error) Unwrap() error { return e.err }

func NotFound(format string, args ...any) error {
	return &Error{kind: ErrNotFound, msg: fmt.Sprintf(format, args...)}
}

func Invalid(format string, args ...any) error {
	return &Error{kind: ErrInvalidArgument, msg: fmt.Sprintf(format, args...)}
}

// Store wraps a driver error. The driver text stays in Error() for logs but
// never reaches Message().
func Store(err error, op string) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	return &Error{kind: ErrStoreFailure, msg: op, err: err}
}

func Internal(err error, op string) error {
	if err == nil {
		return nil
	}
	return &Error{kind: ErrInternal, msg: op, err: err}
}

// Kind returns one of the package sentinels. Unclassified errors are ErrInternal.
func Kind(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrNotFound):
		return ErrNotFound
	case errors.Is(err, ErrInvalidArgument):
		return ErrInvalidArgument
	case errors.Is(err, ErrStoreFailure):
		return ErrStoreFailure
	default:
		return ErrInternal
	}
}

// PublicMessage returns the caller-facing message for err.
func PublicMessage(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		switch ae.kind {
		case ErrNotFound, ErrInvalidArgument:
			return ae.msg
		case ErrStoreFailure:
			return "database error while " + ae.msg
		}
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidArgument) {
		return err.Error()
	}
	return "An internal server error occurred"
}

package apperr

import "errors"

// Kind is the semantic category of an error.
type Kind int

const (
	KindValidation   Kind = iota // 400 / 422
	KindNotFound                 // 404
	KindConflict                 // 409
	KindUnauthorized             // 401
	KindInternal                 // 500
	KindUnavailable              // 503
)

// Error carries a Kind alongside a message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or KindInternal when err carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf returns the user-facing message of err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

func Validation(message string, err ...error) *Error {
	return &Error{Kind: KindValidation, Message: message, Err: errors.Join(err...)}
}

func NotFound(message string, err ...error) *Error {
	return &Error{Kind: KindNotFound, Message: message, Err: errors.Join(err...)}
}

func Conflict(message string, err ...error) *Error {
	return &Error{Kind: KindConflict, Message: message, Err: errors.Join(err...)}
}

func Unauthorized(message string, err ...error) *Error {
	return &Error{Kind: KindUnauthorized, Message: message, Err: errors.Join(err...)}
}

func Internal(message string, err ...error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: errors.Join(err...)}
}

func Unavailable(message string, err ...error) *Error {
	return &Error{Kind: KindUnavailable, Message: message, Err: errors.Join(err...)}
}

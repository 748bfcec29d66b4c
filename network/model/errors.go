package model

import "errors"

type ErrorKind int

const (
	UnknownErrorKind ErrorKind = iota
	BadRequest
	CapacityExceeded
	Provisioning
	Storage
)

func (k ErrorKind) String() string {
	switch k {
	case BadRequest:
		return "BadRequest"
	case CapacityExceeded:
		return "CapacityExceeded"
	case Provisioning:
		return "ProvisioningError"
	case Storage:
		return "StorageError"
	default:
		return "Unknown"
	}
}

// Error carries the kind used to pick the outward status code. Its message is
// the message of the wrapped error, so callers can surface it unchanged.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewBadRequestError(message string) error {
	return &Error{Kind: BadRequest, Err: errors.New(message)}
}

func NewCapacityExceededError(err error) error {
	return &Error{Kind: CapacityExceeded, Err: err}
}

func NewProvisioningError(err error) error {
	return &Error{Kind: Provisioning, Err: err}
}

func NewStorageError(err error) error {
	return &Error{Kind: Storage, Err: err}
}

// KindOf returns the kind of the outermost *Error in the chain.
func KindOf(err error) ErrorKind {
	var kindErr *Error
	if errors.As(err, &kindErr) {
		return kindErr.Kind
	}
	return UnknownErrorKind
}

func IsClientError(err error) bool {
	return KindOf(err) == BadRequest
}

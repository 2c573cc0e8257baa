package api

import (
	"errors"
	"fmt"
)

// GenericErrorMessage is shown for every failure without a better message.
const GenericErrorMessage = "Something went wrong"

type ErrorKind int

const (
	KindUnexpected ErrorKind = iota
	KindServer
	KindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case KindServer:
		return "server"
	case KindNotFound:
		return "not_found"
	default:
		return "unexpected"
	}
}

// Error is the failure half of a Result. Message is always safe to show to
// the user; Cause keeps the underlying error, if any, for logs.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func unexpected(cause error) *Error {
	return &Error{Kind: KindUnexpected, Message: GenericErrorMessage, Cause: cause}
}

func postNotFound(id int) string {
	return fmt.Sprintf("Post with ID %d does not exist", id)
}

func userNotFound(id int) string {
	return fmt.Sprintf("User with ID %d does not exist", id)
}

// IsKind reports whether err is an *Error of kind k.
func IsKind(err error, k ErrorKind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == k
}

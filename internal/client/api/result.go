package api

// Result carries either a decoded response or an Error.
type Result[T any] struct {
	Data T
	Err  *Error
}

func ok[T any](v T) Result[T] {
	return Result[T]{Data: v}
}

func fail[T any](err *Error) Result[T] {
	return Result[T]{Err: err}
}

// OK reports whether the call succeeded.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

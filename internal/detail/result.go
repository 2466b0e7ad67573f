package detail

// Result pairs a value with the error produced while obtaining it.
type Result[T any] struct {
	Value T
	Err   error
}

// Try wraps the two return values of a fallible call.
func Try[T any](value T, err error) Result[T] {
	return Result[T]{Value: value, Err: err}
}

// Ok reports whether the call succeeded.
func (r Result[T]) Ok() bool { return r.Err == nil }

// Optional discards a failed Result, returning the zero value instead. onMiss,
// when non-nil, observes the swallowed error. It never propagates the failure.
func Optional[T any](r Result[T], onMiss func(error)) T {
	if r.Err != nil {
		if onMiss != nil {
			onMiss(r.Err)
		}
		var zero T
		return zero
	}
	return r.Value
}

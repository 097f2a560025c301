package types

import "fmt"

// Status of an adapter read
type Status int

const (
	StatusPending Status = iota
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Result is the tagged outcome of a single adapter read: Ready(value) | Pending | Failed(err).
// The zero value is Pending.
type Result[T any] struct {
	status Status
	value  T
	err    error
}

func Ready[T any](v T) Result[T] {
	return Result[T]{status: StatusReady, value: v}
}

func Pending[T any]() Result[T] {
	return Result[T]{status: StatusPending}
}

func Failed[T any](err error) Result[T] {
	return Result[T]{status: StatusFailed, err: err}
}

func (r Result[T]) Status() Status {
	return r.status
}

// Value returns the value and true only when the result is ready
func (r Result[T]) Value() (T, bool) {
	return r.value, r.status == StatusReady
}

func (r Result[T]) Err() error {
	return r.err
}

func (r Result[T]) IsPending() bool {
	return r.status == StatusPending
}

func (r Result[T]) IsFailed() bool {
	return r.status == StatusFailed
}

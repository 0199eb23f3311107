package kernel

// Poll is the result of advancing a future by one step.
type Poll uint8

const (
	// Pending means the future suspended and registered interest in a wakeup.
	Pending Poll = iota
	// Ready means the future has no further work.
	Ready
)

func (p Poll) String() string {
	switch p {
	case Pending:
		return "pending"
	case Ready:
		return "ready"
	default:
		return "unknown"
	}
}

// Future is a suspendable computation with no result value.
//
// Poll must not be called again after it returned Ready. A future that returns
// Pending is responsible for arranging that a copy of cx.Waker() is woken once
// progress is possible; otherwise it is never polled again.
type Future interface {
	Poll(cx *Context) Poll
}

// FutureFunc adapts an ordinary function to Future.
type FutureFunc func(cx *Context) Poll

func (f FutureFunc) Poll(cx *Context) Poll { return f(cx) }

// ValueFuture is a suspendable computation producing a T.
//
// The value is meaningful only when the returned Poll is Ready.
type ValueFuture[T any] interface {
	PollValue(cx *Context) (T, Poll)
}

type resolved[T any] struct {
	v T
}

func (r resolved[T]) PollValue(*Context) (T, Poll) { return r.v, Ready }

// Resolved returns a value future that is ready on its first poll.
func Resolved[T any](v T) ValueFuture[T] {
	return resolved[T]{v: v}
}

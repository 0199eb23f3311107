package kernel

// Context is handed to Future.Poll.
//
// It is only valid for the duration of the Poll call; futures that need to be
// woken later must keep a copy of Waker(), never the Context itself.
type Context struct {
	waker Waker
}

// NewContext builds a poll context around w.
func NewContext(w Waker) *Context {
	return &Context{waker: w}
}

// Waker returns the waker of the task being polled.
func (c *Context) Waker() Waker {
	if c == nil {
		return Waker{}
	}
	return c.waker
}

// TaskID returns the ID of the task being polled.
func (c *Context) TaskID() TaskID {
	if c == nil {
		return 0
	}
	return c.waker.id
}

package control

import "context"

// Signal is polled by long-running loops between units of work.
type Signal interface {
	Cancelled() bool
}

type SignalFunc func() bool

func (f SignalFunc) Cancelled() bool {
	return f()
}

type never struct{}

func (never) Cancelled() bool { return false }

// Never is a Signal that is never set.
var Never Signal = never{}

type contextSignal struct {
	ctx context.Context
}

func (s contextSignal) Cancelled() bool {
	return s.ctx.Err() != nil
}

func FromContext(ctx context.Context) Signal {
	return contextSignal{ctx: ctx}
}

// AfterPolls returns a Signal that reports cancellation from the (n+1)-th poll
// onwards, so a loop polling once per item processes exactly n items.
func AfterPolls(n int) Signal {
	polls := 0
	return SignalFunc(func() bool {
		polls++
		return polls > n
	})
}

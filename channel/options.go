package channel

import "time"

// Op identifies the side of the channel an observed event belongs to.
type Op int

const (
	OpSend Op = iota
	OpReceive
)

func (o Op) String() string {
	switch o {
	case OpSend:
		return "send"
	case OpReceive:
		return "receive"
	default:
		return "unknown"
	}
}

type Option func(*Options)

type Options struct {
	Observer Observer
}

func defaultOptions() Options { return Options{} }

func WithObserver(obs Observer) Option { return func(o *Options) { o.Observer = obs } }

// Observer receives channel events. Hooks run after the channel lock is
// released and must not block for long.
type Observer interface {
	// Completed is called when an element entered or left the buffer.
	// depth is the occupancy right after the operation.
	Completed(op Op, depth int, wait time.Duration)
	// Expired is called when a bounded wait ran out before the operation
	// could proceed.
	Expired(op Op, wait time.Duration)
	// Refused is called for a send on a closed channel and for a receive
	// on a closed, drained channel.
	Refused(op Op)
	// Closed is called by the call that closed the channel, with the number
	// of elements left for receivers. Shutdown on an already closed channel
	// that still held elements calls it again with 0.
	Closed(remaining int)
}

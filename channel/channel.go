package channel

import (
	"context"
	"fmt"
	"iter"
	"sync"
	"time"

	"github.com/NetPo4ki/go-mpmc/ring"
)

type outcome int

const (
	delivered outcome = iota
	refused           // closed (send) or closed and drained (receive)
	expired           // done fired while the operation was still blocked
)

// alreadyDone makes a wait give up immediately.
var alreadyDone = func() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// Channel is a bounded FIFO shared by any number of senders and receivers.
// The zero value is not usable; create one with New.
type Channel[E any] struct {
	mu     sync.Mutex
	cv     *cond
	store  *ring.Store[E] // guarded by mu
	closed bool           // guarded by mu

	opts Options
	obs  Observer
}

// New creates a channel buffering up to capacity elements.
// It returns ErrInvalidCapacity if capacity < 1.
func New[E any](capacity int, optFns ...Option) (*Channel[E], error) {
	if capacity < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCapacity, capacity)
	}
	c := &Channel[E]{store: ring.New[E](capacity), opts: defaultOptions()}
	c.cv = newCond(&c.mu)
	for _, fn := range optFns {
		fn(&c.opts)
	}
	c.obs = c.opts.Observer
	return c, nil
}

// MustNew is like New but panics on an invalid capacity.
func MustNew[E any](capacity int, optFns ...Option) *Channel[E] {
	c, err := New[E](capacity, optFns...)
	if err != nil {
		panic(err)
	}
	return c
}

// Send blocks while the channel is full and open. It returns ErrClosed,
// without enqueuing e, once the channel is closed.
func (c *Channel[E]) Send(e E) error {
	if c.send(nil, e) == refused {
		return ErrClosed
	}
	return nil
}

// SendContext is Send bounded by ctx. It returns ctx.Err() if ctx is done
// before e could be enqueued.
func (c *Channel[E]) SendContext(ctx context.Context, e E) error {
	switch c.send(ctx.Done(), e) {
	case refused:
		return ErrClosed
	case expired:
		return ctx.Err()
	}
	return nil
}

// SendTimeout is Send bounded by d. A timeout is reported as (false, nil);
// a closed channel as (false, ErrClosed).
func (c *Channel[E]) SendTimeout(e E, d time.Duration) (bool, error) {
	if d <= 0 {
		return c.TrySend(e)
	}
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	return sendResult(c.send(ctx.Done(), e))
}

// TrySend enqueues e only if there is room right now.
func (c *Channel[E]) TrySend(e E) (bool, error) {
	return sendResult(c.send(alreadyDone, e))
}

func sendResult(o outcome) (bool, error) {
	switch o {
	case refused:
		return false, ErrClosed
	case expired:
		return false, nil
	}
	return true, nil
}

// Receive blocks while the channel is empty and open. Buffered elements are
// still delivered after Close; ok is false only once the channel is closed
// and drained.
func (c *Channel[E]) Receive() (E, bool) {
	e, o := c.receive(nil)
	return e, o == delivered
}

// ReceiveContext is Receive bounded by ctx. End of stream is reported as
// ErrClosed and cancellation as ctx.Err().
func (c *Channel[E]) ReceiveContext(ctx context.Context) (E, error) {
	e, o := c.receive(ctx.Done())
	switch o {
	case refused:
		return e, ErrClosed
	case expired:
		return e, ctx.Err()
	}
	return e, nil
}

// ReceiveTimeout is Receive bounded by d. A timeout is reported as
// (zero, false, nil); end of stream as (zero, false, ErrClosed).
func (c *Channel[E]) ReceiveTimeout(d time.Duration) (E, bool, error) {
	if d <= 0 {
		return c.TryReceive()
	}
	ctx, cancel := context.WithTimeout(context.Background(), d)
	defer cancel()
	e, o := c.receive(ctx.Done())
	return receiveResult(e, o)
}

// TryReceive dequeues an element only if one is buffered right now.
func (c *Channel[E]) TryReceive() (E, bool, error) {
	e, o := c.receive(alreadyDone)
	return receiveResult(e, o)
}

func receiveResult[E any](e E, o outcome) (E, bool, error) {
	switch o {
	case refused:
		return e, false, ErrClosed
	case expired:
		return e, false, nil
	}
	return e, true, nil
}

// Close stops the channel from accepting elements and wakes every waiter.
// Buffered elements stay available to receivers. It reports whether this
// call performed the transition; closing twice is a no-op.
func (c *Channel[E]) Close() bool {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return false
	}
	c.closed = true
	remaining := c.store.Len()
	c.cv.broadcast()
	c.mu.Unlock()
	if c.obs != nil {
		c.obs.Closed(remaining)
	}
	return true
}

// Shutdown closes the channel and hands back everything still buffered, in
// FIFO order. Receivers observe end of stream immediately afterwards.
// On an already closed channel it only takes back what is left to drain.
func (c *Channel[E]) Shutdown() []E {
	c.mu.Lock()
	wasOpen := !c.closed
	c.closed = true
	rest := c.store.Drain()
	c.cv.broadcast()
	c.mu.Unlock()
	if (wasOpen || len(rest) > 0) && c.obs != nil {
		c.obs.Closed(0)
	}
	return rest
}

// All yields received elements until the channel is closed and drained.
// An element taken from the channel is consumed even if the loop body
// breaks on it.
func (c *Channel[E]) All() iter.Seq[E] {
	return func(yield func(E) bool) {
		for {
			e, ok := c.Receive()
			if !ok || !yield(e) {
				return
			}
		}
	}
}

func (c *Channel[E]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.Len()
}

func (c *Channel[E]) Cap() int { return c.store.Cap() }

func (c *Channel[E]) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

func (c *Channel[E]) send(done <-chan struct{}, e E) outcome {
	var start time.Time
	if c.obs != nil {
		start = time.Now()
	}
	c.mu.Lock()
	for !c.closed && c.store.IsFull() {
		if isDone(done) {
			c.mu.Unlock()
			if c.obs != nil {
				c.obs.Expired(OpSend, time.Since(start))
			}
			return expired
		}
		c.cv.wait(done)
	}
	if c.closed {
		c.mu.Unlock()
		if c.obs != nil {
			c.obs.Refused(OpSend)
		}
		return refused
	}
	c.store.Push(e)
	depth := c.store.Len()
	c.cv.broadcast()
	c.mu.Unlock()
	if c.obs != nil {
		c.obs.Completed(OpSend, depth, time.Since(start))
	}
	return delivered
}

func (c *Channel[E]) receive(done <-chan struct{}) (E, outcome) {
	var start time.Time
	if c.obs != nil {
		start = time.Now()
	}
	c.mu.Lock()
	for !c.closed && c.store.IsEmpty() {
		if isDone(done) {
			c.mu.Unlock()
			if c.obs != nil {
				c.obs.Expired(OpReceive, time.Since(start))
			}
			var zero E
			return zero, expired
		}
		c.cv.wait(done)
	}
	e, ok := c.store.Pop()
	if !ok {
		c.mu.Unlock()
		if c.obs != nil {
			c.obs.Refused(OpReceive)
		}
		return e, refused
	}
	depth := c.store.Len()
	c.cv.broadcast()
	c.mu.Unlock()
	if c.obs != nil {
		c.obs.Completed(OpReceive, depth, time.Since(start))
	}
	return e, delivered
}

func isDone(done <-chan struct{}) bool {
	select {
	case <-done:
		return true
	default:
		return false
	}
}

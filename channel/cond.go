package channel

import "sync"

// cond is a condition variable bound to a mutex whose wait can also be cut
// short by a done channel, which sync.Cond cannot do.
//
// Each broadcast closes the current generation channel and installs a new
// one. A waiter captures the generation while holding the lock, so a
// broadcast issued after it releases the lock is never missed.
type cond struct {
	l   *sync.Mutex
	gen chan struct{}
}

func newCond(l *sync.Mutex) *cond {
	return &cond{l: l, gen: make(chan struct{})}
}

// broadcast wakes every waiter. c.l must be held.
func (c *cond) broadcast() {
	close(c.gen)
	c.gen = make(chan struct{})
}

// wait releases c.l, parks until a broadcast or until done is closed, and
// reacquires c.l. A nil done never fires. Callers re-check their predicate
// on return. c.l must be held.
func (c *cond) wait(done <-chan struct{}) {
	gen := c.gen
	c.l.Unlock()
	defer c.l.Lock()
	select {
	case <-gen:
	case <-done:
	}
}

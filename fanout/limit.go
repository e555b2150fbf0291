package fanout

import (
	"context"

	"github.com/NetPo4ki/go-mpmc/channel"
)

// Limiter bounds how many producers run at once. Release is called once
// for every successful Acquire.
type Limiter interface {
	Acquire(ctx context.Context) error
	Release()
}

// tokenLimiter is a counting semaphore: each running producer holds one
// element of a bounded channel.
type tokenLimiter struct {
	tokens *channel.Channel[struct{}]
}

func newTokenLimiter(n int) Limiter {
	if n <= 0 {
		return nil
	}
	return &tokenLimiter{tokens: channel.MustNew[struct{}](n)}
}

func (l *tokenLimiter) Acquire(ctx context.Context) error {
	return l.tokens.SendContext(ctx, struct{}{})
}

func (l *tokenLimiter) Release() {
	_, _, _ = l.tokens.TryReceive()
}

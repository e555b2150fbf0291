package fanout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/NetPo4ki/go-mpmc/channel"
)

type Policy int

const (
	// FailFast cancels every producer and consumer on the first error.
	FailFast Policy = iota
	// Supervisor keeps going and reports all errors joined.
	Supervisor
)

var ErrNilConsumer = errors.New("fanout: nil consumer")

type Option func(*Options)

type Options struct {
	Policy         Policy
	Consumers      int
	MaxConcurrency int
	Limiter        Limiter
	PanicAsError   bool
}

func defaultOptions() Options { return Options{Policy: FailFast, Consumers: 1, PanicAsError: true} }

func WithPolicy(p Policy) Option { return func(o *Options) { o.Policy = p } }

func WithConsumers(n int) Option { return func(o *Options) { o.Consumers = n } }

// WithMaxConcurrency limits how many producers run at the same time.
func WithMaxConcurrency(n int) Option { return func(o *Options) { o.MaxConcurrency = n } }

// WithLimiter gates every producer on lim. It takes precedence over
// WithMaxConcurrency.
func WithLimiter(lim Limiter) Option { return func(o *Options) { o.Limiter = lim } }

func WithPanicAsError(v bool) Option { return func(o *Options) { o.PanicAsError = v } }

// Producer emits values through send until it is done. send fails with
// channel.ErrClosed or a context error once the run is shutting down.
type Producer[E any] func(ctx context.Context, send func(E) error) error

// Consumer handles one received value.
type Consumer[E any] func(ctx context.Context, v E) error

type runner struct {
	opts Options
	lim  Limiter

	mu     sync.Mutex
	errs   []error
	ctxErr bool // a context error is already in errs
}

// Run starts every producer and opts.Consumers consumers, closes ch when the
// last producer returns, and waits until consumers have drained it.
//
// Under FailFast the first error cancels the rest and is returned. Under
// Supervisor every error is collected and returned via errors.Join.
func Run[E any](ctx context.Context, ch *channel.Channel[E], producers []Producer[E], consume Consumer[E], optFns ...Option) error {
	if consume == nil {
		return ErrNilConsumer
	}
	if ctx == nil {
		ctx = context.Background()
	}
	r := &runner{opts: defaultOptions()}
	for _, fn := range optFns {
		fn(&r.opts)
	}
	if r.opts.Consumers < 1 {
		r.opts.Consumers = 1
	}
	switch {
	case r.opts.Limiter != nil:
		r.lim = r.opts.Limiter
	case r.opts.MaxConcurrency > 0:
		r.lim = newTokenLimiter(r.opts.MaxConcurrency)
	}

	var g *errgroup.Group
	gctx := ctx
	if r.opts.Policy == FailFast {
		g, gctx = errgroup.WithContext(ctx)
	} else {
		g = new(errgroup.Group)
	}

	// A ready channel operation succeeds on a done context; stop here instead.
	send := func(v E) error {
		if err := gctx.Err(); err != nil {
			return err
		}
		return ch.SendContext(gctx, v)
	}

	var producing sync.WaitGroup
	producing.Add(len(producers))
	for _, p := range producers {
		g.Go(func() error {
			defer producing.Done()
			if p == nil {
				return nil
			}
			if r.lim != nil {
				if err := r.lim.Acquire(gctx); err != nil {
					return r.fail(err)
				}
				defer r.lim.Release()
			}
			return r.fail(r.call(func() error { return p(gctx, send) }))
		})
	}
	g.Go(func() error {
		producing.Wait()
		ch.Close()
		return nil
	})

	for i := 0; i < r.opts.Consumers; i++ {
		g.Go(func() error {
			for {
				if err := gctx.Err(); err != nil {
					return r.fail(err)
				}
				v, err := ch.ReceiveContext(gctx)
				if errors.Is(err, channel.ErrClosed) {
					return nil
				}
				if err != nil {
					return r.fail(err)
				}
				if err := r.fail(r.call(func() error { return consume(gctx, v) })); err != nil {
					return err
				}
			}
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return errors.Join(r.errs...)
}

// fail passes err through under FailFast and records it under Supervisor.
// Context errors are recorded once no matter how many tasks observe them.
func (r *runner) fail(err error) error {
	if err == nil || r.opts.Policy == FailFast {
		return err
	}
	isCtx := errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
	r.mu.Lock()
	defer r.mu.Unlock()
	if isCtx {
		if r.ctxErr {
			return nil
		}
		r.ctxErr = true
	}
	r.errs = append(r.errs, err)
	return nil
}

func (r *runner) call(fn func() error) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			if !r.opts.PanicAsError {
				panic(rec)
			}
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return fn()
}

package channel

import (
	"sync"
	"testing"
	"time"
)

func TestCondBroadcastWakesAll(t *testing.T) {
	t.Parallel()
	var mu sync.Mutex
	cv := newCond(&mu)
	ready := false
	const waiters = 5

	var wg sync.WaitGroup
	wg.Add(waiters)
	for i := 0; i < waiters; i++ {
		go func() {
			defer wg.Done()
			mu.Lock()
			for !ready {
				cv.wait(nil)
			}
			mu.Unlock()
		}()
	}
	time.Sleep(10 * time.Millisecond)
	mu.Lock()
	ready = true
	cv.broadcast()
	mu.Unlock()

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast did not wake every waiter")
	}
}

func TestCondWaitReturnsOnDone(t *testing.T) {
	t.Parallel()
	var mu sync.Mutex
	cv := newCond(&mu)
	done := make(chan struct{})
	time.AfterFunc(10*time.Millisecond, func() { close(done) })

	mu.Lock()
	cv.wait(done)
	// lock is held again on return
	if mu.TryLock() {
		t.Fatal("wait returned without reacquiring the lock")
	}
	mu.Unlock()
}

package ring

import (
	"testing"

	"github.com/eapache/queue"
	"github.com/valyala/fastrand"
)

func TestPushPopSequential(t *testing.T) {
	t.Parallel()
	const capacity = 8
	s := New[int](capacity)
	for i := 0; i < capacity; i++ {
		if !s.Push(i) {
			t.Fatalf("push failed at %d (store unexpectedly full)", i)
		}
	}
	if s.Push(999) {
		t.Fatal("expected overflow (push should return false), but got true")
	}
	if !s.IsFull() || s.Len() != capacity {
		t.Fatalf("expected full store, len=%d", s.Len())
	}
	for i := 0; i < capacity; i++ {
		v, ok := s.Pop()
		if !ok {
			t.Fatalf("pop failed at %d (store unexpectedly empty)", i)
		}
		if v != i {
			t.Fatalf("expected %d, got %d (FIFO violated)", i, v)
		}
	}
	if v, ok := s.Pop(); ok {
		t.Fatalf("expected empty store at the end, got value=%v", v)
	}
	if !s.IsEmpty() {
		t.Fatal("expected IsEmpty after draining")
	}
}

func TestWraparound(t *testing.T) {
	t.Parallel()
	s := New[int](3)
	next, want := 0, 0
	for round := 0; round < 10; round++ {
		for s.Push(next) {
			next++
		}
		// leave one element behind so head and tail drift around the ring
		for s.Len() > 1 {
			v, _ := s.Pop()
			if v != want {
				t.Fatalf("round %d: expected %d, got %d", round, want, v)
			}
			want++
		}
	}
	if s.Len() != 1 {
		t.Fatalf("expected one element left, got %d", s.Len())
	}
}

func TestCapacityOne(t *testing.T) {
	t.Parallel()
	s := New[string](1)
	if !s.Push("a") || s.Push("b") {
		t.Fatal("capacity-1 store must accept exactly one element")
	}
	if v, ok := s.Peek(); !ok || v != "a" {
		t.Fatalf("peek: got (%q, %v)", v, ok)
	}
	if v, ok := s.Pop(); !ok || v != "a" {
		t.Fatalf("pop: got (%q, %v)", v, ok)
	}
	if !s.Push("c") {
		t.Fatal("push after pop should succeed")
	}
}

func TestPopZeroesSlot(t *testing.T) {
	t.Parallel()
	s := New[*int](2)
	x := 7
	s.Push(&x)
	if _, ok := s.Pop(); !ok {
		t.Fatal("pop failed")
	}
	for i, p := range s.slots {
		if p != nil {
			t.Fatalf("slot %d still references a popped element", i)
		}
	}
}

func TestDrain(t *testing.T) {
	t.Parallel()
	s := New[int](4)
	if got := s.Drain(); got != nil {
		t.Fatalf("drain of empty store: got %v", got)
	}
	s.Push(1)
	s.Push(2)
	s.Pop()
	s.Push(3)
	s.Push(4)
	s.Push(5)
	got := s.Drain()
	want := []int{2, 3, 4, 5}
	if len(got) != len(want) {
		t.Fatalf("drain: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("drain: got %v, want %v", got, want)
		}
	}
	if !s.IsEmpty() {
		t.Fatal("store not empty after drain")
	}
}

func TestNewPanicsOnZeroCapacity(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for capacity 0")
		}
	}()
	New[int](0)
}

// Random push/pop sequences checked against an unbounded reference queue.
func TestMatchesReferenceQueue(t *testing.T) {
	t.Parallel()
	const (
		capacity = 5
		steps    = 20_000
	)
	s := New[int](capacity)
	ref := queue.New()
	for i := 0; i < steps; i++ {
		if fastrand.Uint32n(2) == 0 {
			ok := s.Push(i)
			if ok != (ref.Length() < capacity) {
				t.Fatalf("step %d: push=%v with reference length %d", i, ok, ref.Length())
			}
			if ok {
				ref.Add(i)
			}
		} else {
			v, ok := s.Pop()
			if ok != (ref.Length() > 0) {
				t.Fatalf("step %d: pop=%v with reference length %d", i, ok, ref.Length())
			}
			if ok {
				want := ref.Peek().(int)
				ref.Remove()
				if v != want {
					t.Fatalf("step %d: got %d, want %d", i, v, want)
				}
			}
		}
		if s.Len() != ref.Length() || s.Len() < 0 || s.Len() > capacity {
			t.Fatalf("step %d: len %d, reference %d", i, s.Len(), ref.Length())
		}
	}
}

package ring

// Store is a FIFO ring of at most Cap() elements.
// A slot is occupied iff it lies in [head, head+count) modulo capacity;
// vacated slots hold the zero value.
type Store[E any] struct {
	slots []E
	head  int // oldest occupied slot
	tail  int // next slot to fill
	count int
}

// New allocates a Store holding up to capacity elements.
// It panics if capacity < 1.
func New[E any](capacity int) *Store[E] {
	if capacity < 1 {
		panic("ring: capacity must be > 0")
	}
	return &Store[E]{slots: make([]E, capacity)}
}

// Push appends e at the tail. It returns false if the store is full.
func (s *Store[E]) Push(e E) bool {
	if s.IsFull() {
		return false
	}
	s.slots[s.tail] = e
	s.tail = s.next(s.tail)
	s.count++
	return true
}

// Pop removes and returns the oldest element.
// It returns (zero, false) if the store is empty.
func (s *Store[E]) Pop() (E, bool) {
	var zero E
	if s.IsEmpty() {
		return zero, false
	}
	e := s.slots[s.head]
	s.slots[s.head] = zero
	s.head = s.next(s.head)
	s.count--
	return e, true
}

// Peek returns the oldest element without removing it.
func (s *Store[E]) Peek() (E, bool) {
	if s.IsEmpty() {
		var zero E
		return zero, false
	}
	return s.slots[s.head], true
}

// Drain pops every element in FIFO order. The result is nil when empty.
func (s *Store[E]) Drain() []E {
	if s.IsEmpty() {
		return nil
	}
	out := make([]E, 0, s.count)
	for {
		e, ok := s.Pop()
		if !ok {
			return out
		}
		out = append(out, e)
	}
}

func (s *Store[E]) IsFull() bool  { return s.count == len(s.slots) }
func (s *Store[E]) IsEmpty() bool { return s.count == 0 }
func (s *Store[E]) Len() int      { return s.count }
func (s *Store[E]) Cap() int      { return len(s.slots) }

func (s *Store[E]) next(i int) int {
	i++
	if i == len(s.slots) {
		return 0
	}
	return i
}

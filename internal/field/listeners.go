package field

// Listeners is an ordered registry of callbacks. It is not safe for
// concurrent use; hosts call it from their frame goroutine only.
type Listeners[F any] struct {
	next  int
	order []int
	fns   map[int]F
}

// Add registers fn and returns a cancel func. Cancel is idempotent.
func (l *Listeners[F]) Add(fn F) (cancel func()) {
	if l.fns == nil {
		l.fns = make(map[int]F)
	}
	id := l.next
	l.next++
	l.fns[id] = fn
	l.order = append(l.order, id)
	return func() { l.remove(id) }
}

func (l *Listeners[F]) remove(id int) {
	if _, ok := l.fns[id]; !ok {
		return
	}
	delete(l.fns, id)
	for i, v := range l.order {
		if v == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// Each calls visit for every registered callback in registration order.
// Callbacks cancelled during the walk are skipped.
func (l *Listeners[F]) Each(visit func(F)) {
	ids := append([]int(nil), l.order...)
	for _, id := range ids {
		if fn, ok := l.fns[id]; ok {
			visit(fn)
		}
	}
}

func (l *Listeners[F]) Len() int { return len(l.fns) }

// FrameID identifies a pending frame request. Zero is never issued.
type FrameID uint64

// FrameSlot holds at most one pending frame callback, the way a display
// refresh callback chain does.
type FrameSlot struct {
	last    FrameID
	pending FrameID
	fn      func(Surface)
}

// Request replaces any pending callback with fn.
func (s *FrameSlot) Request(fn func(Surface)) FrameID {
	s.last++
	s.pending = s.last
	s.fn = fn
	return s.pending
}

// Cancel drops the pending callback if id still refers to it.
func (s *FrameSlot) Cancel(id FrameID) {
	if id != 0 && id == s.pending {
		s.pending = 0
		s.fn = nil
	}
}

// Take removes and returns the pending callback, or nil.
func (s *FrameSlot) Take() func(Surface) {
	fn := s.fn
	s.pending = 0
	s.fn = nil
	return fn
}

func (s *FrameSlot) Pending() bool { return s.fn != nil }

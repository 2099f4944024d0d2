package core

import "fmt"

// Handle is a validity-checked reference to an entity owned by the world.
// The zero Handle refers to nothing.
type Handle struct {
	Index uint32
	Gen   uint32
}

// IsZero reports whether h is the empty handle
func (h Handle) IsZero() bool { return h.Gen == 0 }

func (h Handle) String() string {
	if h.IsZero() {
		return "#-"
	}
	return fmt.Sprintf("#%d.%d", h.Index, h.Gen)
}

type slot[T any] struct {
	gen  uint32
	used bool
	val  T
}

// Arena stores values in reusable slots. Removing a value bumps the slot
// generation so every handle to it goes stale.
type Arena[T any] struct {
	slots []slot[T]
	free  []uint32
	live  int
}

// Insert stores v and returns its handle
func (a *Arena[T]) Insert(v T) Handle {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		a.slots = append(a.slots, slot[T]{})
		idx = uint32(len(a.slots) - 1)
	}
	s := &a.slots[idx]
	s.gen++
	s.used = true
	s.val = v
	a.live++
	return Handle{Index: idx, Gen: s.gen}
}

// Get returns the value for h, or false if h is stale
func (a *Arena[T]) Get(h Handle) (T, bool) {
	var zero T
	if h.IsZero() || int(h.Index) >= len(a.slots) {
		return zero, false
	}
	s := &a.slots[h.Index]
	if !s.used || s.gen != h.Gen {
		return zero, false
	}
	return s.val, true
}

// Remove deletes the value for h. Removing a stale handle is a no-op.
func (a *Arena[T]) Remove(h Handle) bool {
	if _, ok := a.Get(h); !ok {
		return false
	}
	s := &a.slots[h.Index]
	var zero T
	s.val = zero
	s.used = false
	a.free = append(a.free, h.Index)
	a.live--
	return true
}

// Len returns the number of live values
func (a *Arena[T]) Len() int { return a.live }

// Handles returns the live handles in slot order
func (a *Arena[T]) Handles() []Handle {
	out := make([]Handle, 0, a.live)
	for i := range a.slots {
		if a.slots[i].used {
			out = append(out, Handle{Index: uint32(i), Gen: a.slots[i].gen})
		}
	}
	return out
}

// Each calls fn for every live value in slot order
func (a *Arena[T]) Each(fn func(Handle, T)) {
	for i := range a.slots {
		s := &a.slots[i]
		if s.used {
			fn(Handle{Index: uint32(i), Gen: s.gen}, s.val)
		}
	}
}

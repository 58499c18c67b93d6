package main

// Pool recycles entity instances through a free list.
//
// Release does not clear fields. Whoever acquires an instance must fully
// reinitialize it (every entity kind has a Reset method for that).
type Pool[T any] struct {
	free      []*T
	allocated int
}

// NewPool creates a pool with n instances preallocated on the free list
func NewPool[T any](n int) *Pool[T] {
	p := &Pool[T]{free: make([]*T, 0, n)}
	for i := 0; i < n; i++ {
		p.free = append(p.free, new(T))
		p.allocated++
	}
	return p
}

// Acquire pops a released instance or allocates a new one
func (p *Pool[T]) Acquire() *T {
	if n := len(p.free); n > 0 {
		v := p.free[n-1]
		p.free[n-1] = nil
		p.free = p.free[:n-1]
		return v
	}
	p.allocated++
	return new(T)
}

// Release puts an instance back on the free list. nil is ignored.
func (p *Pool[T]) Release(v *T) {
	if v == nil {
		return
	}
	p.free = append(p.free, v)
}

// Free returns the free list length
func (p *Pool[T]) Free() int {
	return len(p.free)
}

// Allocated returns how many instances this pool has ever created
func (p *Pool[T]) Allocated() int {
	return p.allocated
}

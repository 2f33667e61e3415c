package re2

import "fmt"

// Allocator provides the buffers results are copied into. Alloc returns a
// slice of length n or an error; it must not return a shorter slice.
type Allocator interface {
	Alloc(n int) ([]byte, error)
}

// AllocatorFunc adapts a function to [Allocator].
type AllocatorFunc func(n int) ([]byte, error)

// Alloc calls f(n).
func (f AllocatorFunc) Alloc(n int) ([]byte, error) {
	return f(n)
}

// HeapAllocator allocates from the Go heap and never fails.
type HeapAllocator struct{}

// Alloc returns make([]byte, n).
func (HeapAllocator) Alloc(n int) ([]byte, error) {
	return make([]byte, n), nil
}

// budget limits the bytes a single call may allocate.
type budget struct {
	alloc     Allocator
	remaining int64
	limited   bool
}

func newBudget(alloc Allocator, limit int64) *budget {
	return &budget{alloc: alloc, remaining: limit, limited: limit > 0}
}

func (b *budget) Alloc(n int) ([]byte, error) {
	if b.limited {
		if int64(n) > b.remaining {
			return nil, fmt.Errorf("%w: %d bytes over the %d byte result limit", ErrAllocationFailure, n, b.remaining)
		}
		b.remaining -= int64(n)
	}

	buf, err := b.alloc.Alloc(n)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrAllocationFailure, err)
	}

	if len(buf) < n {
		return nil, fmt.Errorf("%w: allocator returned %d of %d bytes", ErrAllocationFailure, len(buf), n)
	}

	return buf[:n], nil
}

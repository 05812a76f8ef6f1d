package vector

import "errors"

// MaxCapacity is the maximum number of elements a Vector can hold.
const MaxCapacity = 1<<31 - 1

// ErrTooLarge is returned when an operation would need a buffer larger than
// MaxCapacity.
var ErrTooLarge = errors.New("vector: capacity too large")

// A buffer is the reference-counted heap storage of a Vector. Its capacity is
// fixed at creation. The number of live elements is known by the owners only.
type buffer[T any] struct {
	refs int
	data []T
}

// newBuffer allocates a buffer with the given capacity and a single owner.
func newBuffer[T any](capacity int) (*buffer[T], error) {
	if capacity < 0 || capacity > MaxCapacity {
		return nil, ErrTooLarge
	}
	return &buffer[T]{refs: 1, data: make([]T, capacity)}, nil
}

func (b *buffer[T]) capacity() int {
	return len(b.data)
}

// shared reports whether the buffer has more than one owner.
func (b *buffer[T]) shared() bool {
	return b.refs > 1
}

// retain adds an owner to the buffer.
func (b *buffer[T]) retain() {
	b.refs++
}

// release removes an owner from the buffer. When the last owner goes away,
// the first size elements are destroyed and the storage is dropped. size
// must be the number of live elements as seen by the caller.
func (b *buffer[T]) release(size int) {
	b.refs--
	if b.refs == 0 {
		destroy(b.data[:size])
		b.data = nil
	}
}

package vector

// unshare moves the elements of v to a new private buffer with the given
// capacity, which must not be less than v.Len(). If a copy fails, v is left
// unchanged.
func (v *Vector[T, A]) unshare(capacity int) error {
	b, err := newBuffer[T](capacity)
	if err != nil {
		return err
	}
	if err := copyN(b.data, v.View()); err != nil {
		return err
	}
	v.destroyStorage()
	v.buf = b
	return nil
}

// copyToSmall copies src into the inline storage of v, which must be using a
// buffer, then releases the buffer. If a copy fails, v keeps its buffer.
func (v *Vector[T, A]) copyToSmall(src []T) error {
	b := v.buf
	v.buf = nil
	if err := copyN(v.slots(), src); err != nil {
		v.buf = b
		return err
	}
	b.release(v.size)
	return nil
}

// newWithCapacity returns an empty vector using a private buffer of the given
// capacity, even if it would fit inline.
func newWithCapacity[T any, A Inline[T]](capacity int) (*Vector[T, A], error) {
	b, err := newBuffer[T](capacity)
	if err != nil {
		return nil, err
	}
	return &Vector[T, A]{buf: b}, nil
}

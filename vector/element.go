package vector

// A Copier is an element type with its own copy semantics. Copy returns a copy
// of the receiver, or an error if the copy cannot be made.
type Copier[T any] interface {
	Copy() (T, error)
}

// A Destroyer is an element type that is notified when a Vector drops one of
// its elements.
type Destroyer interface {
	Destroy()
}

// copyOf returns a copy of x.
func copyOf[T any](x T) (T, error) {
	if c, ok := any(x).(Copier[T]); ok {
		return c.Copy()
	}
	return x, nil
}

// copyN copies the elements of src into dst, which must be at least as long.
// If a copy fails, the elements already copied are destroyed and dst is left
// zeroed.
func copyN[T any](dst, src []T) error {
	for i := range src {
		x, err := copyOf(src[i])
		if err != nil {
			destroy(dst[:i])
			return err
		}
		dst[i] = x
	}
	return nil
}

// destroy destroys the elements of s and zeroes the slots.
func destroy[T any](s []T) {
	var zero T
	for i := range s {
		if d, ok := any(s[i]).(Destroyer); ok {
			d.Destroy()
		}
		s[i] = zero
	}
}

// swapRanges exchanges the elements of x and y, which must have the same
// length.
func swapRanges[T any](x, y []T) {
	for i := range x {
		x[i], y[i] = y[i], x[i]
	}
}

// rotateRight rotates s to the right by k positions using swaps only.
func rotateRight[T any](s []T, k int) {
	if k == 0 || k == len(s) {
		return
	}
	reverse(s)
	reverse(s[:k])
	reverse(s[k:])
}

func reverse[T any](s []T) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

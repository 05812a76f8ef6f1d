package vector

import "github.com/hashicorp/go-multierror"

// Clone returns a copy of v. If v uses a heap buffer, the copy shares it and
// no element is copied.
func (v *Vector[T, A]) Clone() (*Vector[T, A], error) {
	c := new(Vector[T, A])
	if err := c.Assign(v); err != nil {
		return nil, err
	}
	return c, nil
}

// Assign replaces the content of v with a copy of the content of src. If src
// uses a heap buffer, v shares it and no element is copied. If a copy fails,
// v is left unchanged.
func (v *Vector[T, A]) Assign(src *Vector[T, A]) error {
	if v == src {
		return nil
	}
	switch {
	case src.buf != nil:
		src.buf.retain()
		v.destroyStorage()
		v.buf = src.buf
	case v.buf != nil:
		if err := v.copyToSmall(src.View()); err != nil {
			return err
		}
	default:
		if err := v.assignSmall(src); err != nil {
			return err
		}
	}
	v.size = src.size
	return nil
}

// assignSmall reconciles the inline elements of v with those of src. The
// copies of the common prefix are built in scratch storage first, so that a
// failing copy leaves v untouched.
func (v *Vector[T, A]) assignSmall(src *Vector[T, A]) error {
	n := min(v.size, src.size)
	var scratch A
	tmp := inlineSlots[T](&scratch)[:n]
	from := src.View()
	if err := copyN(tmp, from[:n]); err != nil {
		return err
	}
	dst := v.slots()
	if v.size < src.size {
		if err := copyN(dst[v.size:src.size], from[v.size:]); err != nil {
			destroy(tmp)
			return err
		}
	} else {
		destroy(dst[src.size:v.size])
	}
	swapRanges(dst[:n], tmp)
	destroy(tmp)
	return nil
}

// Swap exchanges the contents of v and other.
//
// If v and other are both inline, elements are exchanged in place. Otherwise
// the exchange goes through a temporary copy, which is cheap as at least one
// of them uses a heap buffer. If a copy fails, both vectors remain valid and
// other is restored when possible.
func (v *Vector[T, A]) Swap(other *Vector[T, A]) error {
	if v == other {
		return nil
	}
	if v.size > other.size {
		return other.Swap(v)
	}
	if v.buf == nil && other.buf == nil {
		dst, src := v.slots(), other.slots()
		if err := copyN(dst[v.size:other.size], src[v.size:other.size]); err != nil {
			return err
		}
		destroy(src[v.size:other.size])
		v.size, other.size = other.size, v.size
		swapRanges(dst[:other.size], src[:other.size])
		return nil
	}

	tmp, err := other.Clone()
	if err != nil {
		return err
	}
	defer tmp.Release()
	if err := other.Assign(v); err != nil {
		return err
	}
	if err := v.Assign(tmp); err != nil {
		if rerr := other.Assign(tmp); rerr != nil {
			return multierror.Append(err, rerr)
		}
		return err
	}
	return nil
}

package vector

import "fmt"

// PushBack appends a copy of x to v.
func (v *Vector[T, A]) PushBack(x T) error {
	_, err := v.Insert(v.size, x)
	return err
}

// Append appends copies of xs to v.
func (v *Vector[T, A]) Append(xs ...T) error {
	_, err := v.InsertRange(v.size, xs...)
	return err
}

// PopBack removes the last element of v.
//
// Panics if v is empty.
func (v *Vector[T, A]) PopBack() error {
	if v.size == 0 {
		panic("vector: PopBack on empty vector")
	}
	_, err := v.Erase(v.size - 1)
	return err
}

// Insert inserts a copy of x at index pos and returns pos. If v has to grow or
// its storage is shared, the new content is built aside and v is left
// unchanged on failure.
//
// Panics if pos is out of range.
func (v *Vector[T, A]) Insert(pos int, x T) (int, error) {
	return v.InsertRange(pos, x)
}

// InsertRange inserts copies of xs at index pos and returns pos. If v has to
// grow or its storage is shared, the new content is built aside and v is left
// unchanged on failure.
//
// Panics if pos is out of range.
func (v *Vector[T, A]) InsertRange(pos int, xs ...T) (int, error) {
	if pos < 0 || pos > v.size {
		panic(fmt.Sprintf("vector: insert position out of range [%d] with length %d", pos, v.size))
	}
	k := len(xs)
	if k == 0 {
		return pos, nil
	}
	if k > MaxCapacity-v.size {
		return pos, ErrTooLarge
	}
	need := v.size + k
	if need > v.Cap() || v.shared() {
		capacity := grow(v.Cap(), need)
		tmp, err := newWithCapacity[T, A](capacity)
		if err != nil {
			return pos, err
		}
		defer tmp.Release()
		from, dst := v.View(), tmp.slots()
		if err := copyN(dst, from[:pos]); err != nil {
			return pos, err
		}
		tmp.size = pos
		if err := copyN(dst[pos:], xs); err != nil {
			return pos, err
		}
		tmp.size += k
		if err := copyN(dst[pos+k:], from[pos:]); err != nil {
			return pos, err
		}
		tmp.size = need
		return pos, v.Assign(tmp)
	}

	s := v.slots()
	if err := copyN(s[v.size:need], xs); err != nil {
		return pos, err
	}
	v.size = need
	rotateRight(s[pos:need], k)
	return pos, nil
}

// grow returns the capacity of a buffer replacing one of the given capacity
// so that it holds need elements. The capacity is kept unless it is too
// small, in which case it is doubled as many times as necessary.
func grow(capacity, need int) int {
	if capacity == 0 {
		capacity = 1
	}
	for capacity < need {
		if capacity > MaxCapacity/2 {
			return MaxCapacity
		}
		capacity *= 2
	}
	return capacity
}

// Erase removes the element at index pos and returns pos.
//
// Panics if pos is out of range.
func (v *Vector[T, A]) Erase(pos int) (int, error) {
	v.check(pos, v.size)
	return v.EraseRange(pos, pos+1)
}

// EraseRange removes the elements in [first, last) and returns first, the
// index of the element that followed the removed ones. If the storage of v is
// shared, the remaining elements are copied to a private buffer of the same
// capacity and v is left unchanged on failure.
//
// Panics if the range is invalid.
func (v *Vector[T, A]) EraseRange(first, last int) (int, error) {
	if first < 0 || first > last || last > v.size {
		panic(fmt.Sprintf("vector: erase range [%d:%d] out of range with length %d", first, last, v.size))
	}
	if first == last {
		return first, nil
	}
	if v.shared() {
		tmp, err := newWithCapacity[T, A](v.Cap())
		if err != nil {
			return first, err
		}
		defer tmp.Release()
		from, dst := v.View(), tmp.slots()
		if err := copyN(dst, from[:first]); err != nil {
			return first, err
		}
		tmp.size = first
		if err := copyN(dst[first:], from[last:]); err != nil {
			return first, err
		}
		tmp.size = v.size - (last - first)
		return first, v.Swap(tmp)
	}

	s := v.slots()
	i, j := first, last
	for ; j < v.size; i, j = i+1, j+1 {
		s[i], s[j] = s[j], s[i]
	}
	destroy(s[i:v.size])
	v.size = i
	return first, nil
}

// Reserve makes sure v can hold n elements without allocating. If the storage
// of v is shared, v gets a private copy of it, inline if n allows it, so that
// subsequent mutations do not copy. v is left unchanged on failure.
func (v *Vector[T, A]) Reserve(n int) error {
	if n <= v.size {
		return nil
	}
	if v.shared() && n <= len(v.small) {
		return v.copyToSmall(v.View())
	}
	if v.shared() || n > v.Cap() {
		return v.unshare(n)
	}
	return nil
}

// ShrinkToFit reduces the capacity of v to the minimum able to hold its
// elements: inline if they fit, or a buffer of exactly v.Len() elements. v is
// left unchanged on failure.
func (v *Vector[T, A]) ShrinkToFit() error {
	if v.buf == nil || v.Cap() <= v.size {
		return nil
	}
	if v.size <= len(v.small) {
		return v.copyToSmall(v.View())
	}
	return v.unshare(v.size)
}

// Clear removes all the elements of v. A shared buffer is released rather than
// copied, and v becomes inline. A private buffer is kept.
func (v *Vector[T, A]) Clear() {
	if v.shared() {
		v.buf.release(v.size)
		v.buf = nil
	} else {
		destroy(v.slots()[:v.size])
	}
	v.size = 0
}

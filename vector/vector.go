package vector

import (
	"fmt"
	"iter"
	"unsafe"
)

// Inline is the set of inline array types a Vector can be parameterized with.
// The array length is the number of elements stored without allocating.
type Inline[T any] interface {
	~[1]T | ~[2]T | ~[3]T | ~[4]T | ~[5]T | ~[6]T | ~[7]T | ~[8]T |
		~[12]T | ~[16]T | ~[24]T | ~[32]T | ~[48]T | ~[64]T | ~[128]T
}

// A Vector is a sequence of elements of type T. Up to len(A) elements are
// stored inline, larger sequences use a heap buffer that is shared between
// copies until one of them is mutated.
//
// The zero value is empty and ready to use.
type Vector[T any, A Inline[T]] struct {
	_ noCopy

	size int

	// buf is nil when elements are stored in small.
	buf   *buffer[T]
	small A
}

// noCopy makes go vet report Vector values copied by assignment.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// New creates a Vector holding copies of xs.
func New[T any, A Inline[T]](xs ...T) (*Vector[T, A], error) {
	v := new(Vector[T, A])
	if err := v.Reserve(len(xs)); err != nil {
		return nil, err
	}
	if _, err := v.InsertRange(0, xs...); err != nil {
		return nil, err
	}
	return v, nil
}

// Len returns the number of elements in v.
func (v *Vector[T, A]) Len() int {
	return v.size
}

// Cap returns the number of elements v can hold without allocating.
func (v *Vector[T, A]) Cap() int {
	if v.buf == nil {
		return len(v.small)
	}
	return v.buf.capacity()
}

// Empty reports whether v has no elements.
func (v *Vector[T, A]) Empty() bool {
	return v.size == 0
}

// IsInlined reports whether the elements of v are stored inline.
func (v *Vector[T, A]) IsInlined() bool {
	return v.buf == nil
}

// View returns the elements of v without copying them. The slice may be
// shared with other vectors and must not be written to.
func (v *Vector[T, A]) View() []T {
	return v.slots()[:v.size:v.size]
}

// Data returns the elements of v for modification. If the storage of v is
// shared, v first gets a private copy of the same capacity.
func (v *Vector[T, A]) Data() ([]T, error) {
	if v.shared() {
		if err := v.unshare(v.Cap()); err != nil {
			return nil, err
		}
	}
	return v.View(), nil
}

// At returns the element at index i.
//
// Panics if the index is out of range.
func (v *Vector[T, A]) At(i int) T {
	v.check(i, v.size)
	return v.slots()[i]
}

// Set replaces the element at index i with a copy of x.
//
// Panics if the index is out of range.
func (v *Vector[T, A]) Set(i int, x T) error {
	v.check(i, v.size)
	c, err := copyOf(x)
	if err != nil {
		return err
	}
	data, err := v.Data()
	if err != nil {
		destroy([]T{c})
		return err
	}
	destroy(data[i : i+1])
	data[i] = c
	return nil
}

// Front returns the first element of v.
//
// Panics if v is empty.
func (v *Vector[T, A]) Front() T {
	if v.size == 0 {
		panic("vector: Front on empty vector")
	}
	return v.slots()[0]
}

// Back returns the last element of v.
//
// Panics if v is empty.
func (v *Vector[T, A]) Back() T {
	if v.size == 0 {
		panic("vector: Back on empty vector")
	}
	return v.slots()[v.size-1]
}

// All returns an iterator over the indices and elements of v. It never causes
// the storage of v to be copied.
func (v *Vector[T, A]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i, x := range v.View() {
			if !yield(i, x) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements of v.
func (v *Vector[T, A]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, x := range v.View() {
			if !yield(x) {
				return
			}
		}
	}
}

// String implements [fmt.Stringer].
func (v *Vector[T, A]) String() string {
	return fmt.Sprint(v.View())
}

// Release drops the elements of v and its reference to a shared buffer,
// leaving v empty and inline.
func (v *Vector[T, A]) Release() {
	v.destroyStorage()
	v.buf = nil
	v.size = 0
}

// slots returns the whole storage of v, including unused capacity, without
// unsharing it.
func (v *Vector[T, A]) slots() []T {
	if v.buf == nil {
		return inlineSlots[T](&v.small)
	}
	return v.buf.data
}

// inlineSlots returns a slice aliasing the inline array a.
func inlineSlots[T any, A Inline[T]](a *A) []T {
	return unsafe.Slice((*T)(unsafe.Pointer(a)), len(*a))
}

// shared reports whether v uses a buffer owned by other vectors too.
func (v *Vector[T, A]) shared() bool {
	return v.buf != nil && v.buf.shared()
}

// destroyStorage destroys inline elements, or releases the buffer.
func (v *Vector[T, A]) destroyStorage() {
	if v.buf == nil {
		destroy(v.slots()[:v.size])
		return
	}
	v.buf.release(v.size)
}

func (*Vector[T, A]) check(i, n int) {
	if i < 0 || i >= n {
		panic(fmt.Sprintf("vector: index out of range [%d] with length %d", i, n))
	}
}

package vector

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var errCopy = errors.New("copy failed")

// counter records the life of tracked elements.
type counter struct {
	live   int
	copies int
	// failAt makes the copy with this number fail, if not zero. With
	// failEvery, all the copies after it fail too.
	failAt    int
	failEvery bool
}

// tracked is an element type that counts copies and live instances.
type tracked struct {
	id int
	c  *counter
}

func (x tracked) Copy() (tracked, error) {
	x.c.copies++
	if x.c.failAt != 0 && (x.c.copies == x.c.failAt || x.c.failEvery && x.c.copies > x.c.failAt) {
		return tracked{}, errCopy
	}
	x.c.live++
	return x, nil
}

func (x tracked) Destroy() {
	if x.c != nil {
		x.c.live--
	}
}

type tvec = Vector[tracked, [4]tracked]

func (c *counter) elems(ids ...int) []tracked {
	xs := make([]tracked, len(ids))
	for i, id := range ids {
		xs[i] = tracked{id: id, c: c}
	}
	return xs
}

func (c *counter) vector(t *testing.T, ids ...int) *tvec {
	t.Helper()
	v, err := New[tracked, [4]tracked](c.elems(ids...)...)
	require.NoError(t, err)
	return v
}

// failNext makes the n-th copy from now fail.
func (c *counter) failNext(n int) {
	c.failAt = c.copies + n
}

func ids(v *tvec) []int {
	out := make([]int, 0, v.Len())
	for x := range v.Values() {
		out = append(out, x.id)
	}
	return out
}

func seq(from, to int) []int {
	out := []int{}
	for i := from; i <= to; i++ {
		out = append(out, i)
	}
	return out
}

// state captures everything observable about a vector.
type state struct {
	Len, Cap int
	Inlined  bool
	IDs      []int
}

func stateOf(v *tvec) state {
	return state{Len: v.Len(), Cap: v.Cap(), Inlined: v.IsInlined(), IDs: ids(v)}
}

func refs[T any, A Inline[T]](v *Vector[T, A]) int {
	if v.buf == nil {
		return 0
	}
	return v.buf.refs
}

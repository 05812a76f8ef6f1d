package vector

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sharedPair returns a vector holding ids and a clone sharing its buffer.
func sharedPair(t *testing.T, c *counter, ids ...int) []*tvec {
	t.Helper()
	a := c.vector(t, ids...)
	b, err := a.Clone()
	require.NoError(t, err)
	return []*tvec{b, a}
}

func TestStrongGuarantee(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(*testing.T, *counter) []*tvec
		op    func(*counter, []*tvec) error
	}{
		{
			name: "assign small to longer small",
			setup: func(t *testing.T, c *counter) []*tvec {
				return []*tvec{c.vector(t, 1, 2), c.vector(t, 10, 11, 12)}
			},
			op: func(_ *counter, vs []*tvec) error { return vs[0].Assign(vs[1]) },
		},
		{
			name: "assign small to shorter small",
			setup: func(t *testing.T, c *counter) []*tvec {
				return []*tvec{c.vector(t, 1, 2, 3, 4), c.vector(t, 10, 11)}
			},
			op: func(_ *counter, vs []*tvec) error { return vs[0].Assign(vs[1]) },
		},
		{
			name: "assign small to big",
			setup: func(t *testing.T, c *counter) []*tvec {
				return []*tvec{c.vector(t, seq(1, 8)...), c.vector(t, 10, 11, 12)}
			},
			op: func(_ *counter, vs []*tvec) error { return vs[0].Assign(vs[1]) },
		},
		{
			name: "assign small to shared big",
			setup: func(t *testing.T, c *counter) []*tvec {
				return append(sharedPair(t, c, seq(1, 8)...), c.vector(t, 10, 11, 12))
			},
			op: func(_ *counter, vs []*tvec) error { return vs[0].Assign(vs[2]) },
		},
		{
			name:  "data on shared",
			setup: func(t *testing.T, c *counter) []*tvec { return sharedPair(t, c, seq(1, 7)...) },
			op: func(_ *counter, vs []*tvec) error {
				_, err := vs[0].Data()
				return err
			},
		},
		{
			name:  "set on shared",
			setup: func(t *testing.T, c *counter) []*tvec { return sharedPair(t, c, seq(1, 7)...) },
			op: func(c *counter, vs []*tvec) error {
				return vs[0].Set(3, tracked{id: 100, c: c})
			},
		},
		{
			name:  "insert into full small",
			setup: func(t *testing.T, c *counter) []*tvec { return []*tvec{c.vector(t, 1, 2, 3, 4)} },
			op: func(c *counter, vs []*tvec) error {
				_, err := vs[0].Insert(2, tracked{id: 100, c: c})
				return err
			},
		},
		{
			name:  "insert into small with room",
			setup: func(t *testing.T, c *counter) []*tvec { return []*tvec{c.vector(t, 1, 2)} },
			op: func(c *counter, vs []*tvec) error {
				_, err := vs[0].Insert(0, tracked{id: 100, c: c})
				return err
			},
		},
		{
			name:  "insert into shared",
			setup: func(t *testing.T, c *counter) []*tvec { return sharedPair(t, c, seq(1, 6)...) },
			op: func(c *counter, vs []*tvec) error {
				_, err := vs[0].Insert(3, tracked{id: 100, c: c})
				return err
			},
		},
		{
			name:  "insert range with growth",
			setup: func(t *testing.T, c *counter) []*tvec { return []*tvec{c.vector(t, 1, 2, 3)} },
			op: func(c *counter, vs []*tvec) error {
				_, err := vs[0].InsertRange(1, c.elems(seq(100, 104)...)...)
				return err
			},
		},
		{
			name:  "insert range in place",
			setup: func(t *testing.T, c *counter) []*tvec { return []*tvec{c.vector(t, 1)} },
			op: func(c *counter, vs []*tvec) error {
				_, err := vs[0].InsertRange(0, c.elems(100, 101, 102)...)
				return err
			},
		},
		{
			name:  "erase from shared",
			setup: func(t *testing.T, c *counter) []*tvec { return sharedPair(t, c, seq(1, 8)...) },
			op: func(_ *counter, vs []*tvec) error {
				_, err := vs[0].EraseRange(2, 4)
				return err
			},
		},
		{
			name:  "pop from shared",
			setup: func(t *testing.T, c *counter) []*tvec { return sharedPair(t, c, seq(1, 6)...) },
			op:    func(_ *counter, vs []*tvec) error { return vs[0].PopBack() },
		},
		{
			name:  "reserve grows",
			setup: func(t *testing.T, c *counter) []*tvec { return []*tvec{c.vector(t, 1, 2, 3)} },
			op:    func(_ *counter, vs []*tvec) error { return vs[0].Reserve(10) },
		},
		{
			name: "reserve demotes shared",
			setup: func(t *testing.T, c *counter) []*tvec {
				a := c.vector(t, seq(1, 6)...)
				_, err := a.EraseRange(3, 6)
				require.NoError(t, err)
				b, err := a.Clone()
				require.NoError(t, err)
				return []*tvec{b, a}
			},
			op: func(_ *counter, vs []*tvec) error { return vs[0].Reserve(4) },
		},
		{
			name:  "reserve unshares",
			setup: func(t *testing.T, c *counter) []*tvec { return sharedPair(t, c, seq(1, 6)...) },
			op:    func(_ *counter, vs []*tvec) error { return vs[0].Reserve(7) },
		},
		{
			name: "shrink demotes",
			setup: func(t *testing.T, c *counter) []*tvec {
				v := c.vector(t, 1, 2, 3)
				require.NoError(t, v.Reserve(10))
				return []*tvec{v}
			},
			op: func(_ *counter, vs []*tvec) error { return vs[0].ShrinkToFit() },
		},
		{
			name: "shrink unshares",
			setup: func(t *testing.T, c *counter) []*tvec {
				v := c.vector(t, seq(1, 6)...)
				require.NoError(t, v.Reserve(10))
				return []*tvec{v}
			},
			op: func(_ *counter, vs []*tvec) error { return vs[0].ShrinkToFit() },
		},
		{
			name:  "clone small",
			setup: func(t *testing.T, c *counter) []*tvec { return []*tvec{c.vector(t, 1, 2, 3)} },
			op: func(_ *counter, vs []*tvec) error {
				v, err := vs[0].Clone()
				if err == nil {
					v.Release()
				}
				return err
			},
		},
		{
			name: "swap small",
			setup: func(t *testing.T, c *counter) []*tvec {
				return []*tvec{c.vector(t, 1), c.vector(t, 10, 11, 12, 13)}
			},
			op: func(_ *counter, vs []*tvec) error { return vs[0].Swap(vs[1]) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			for k := 1; ; k++ {
				c := new(counter)
				vs := tt.setup(t, c)
				before := make([]state, len(vs))
				for i, v := range vs {
					before[i] = stateOf(v)
				}

				c.failNext(k)
				err := tt.op(c, vs)
				if err != nil {
					require.ErrorIs(t, err, errCopy)
					for i, v := range vs {
						if diff := cmp.Diff(before[i], stateOf(v)); diff != "" {
							t.Fatalf("copy %d failed, vector %d changed (-before +after):\n%s", k, i, diff)
						}
					}
				}
				for _, v := range vs {
					v.Release()
				}
				assert.Equal(t, 0, c.live, "leaked elements after failing copy %d", k)
				if err == nil {
					require.Greater(t, k, 1, "operation must copy at least one element")
					return
				}
			}
		})
	}
}

func TestSwapFailureKeepsVectorsValid(t *testing.T) {
	t.Parallel()

	for k := 1; ; k++ {
		c := new(counter)
		a := c.vector(t, seq(1, 8)...)
		b := c.vector(t, 10, 11)

		c.failNext(k)
		err := a.Swap(b)
		if err == nil {
			assert.Equal(t, []int{10, 11}, ids(a))
			assert.Equal(t, seq(1, 8), ids(b))
		} else {
			assert.ErrorIs(t, err, errCopy)
			assert.Equal(t, seq(1, 8), ids(a))
			assert.Equal(t, []int{10, 11}, ids(b))
		}
		for _, v := range []*tvec{a, b} {
			assert.LessOrEqual(t, v.Len(), v.Cap())
			v.Release()
		}
		assert.Equal(t, 0, c.live)
		if err == nil {
			return
		}
	}
}

// swapPair returns a vector using a private buffer and a shorter inline one,
// so that swapping them ends with a copy into the buffer-backed vector.
func swapPair(t *testing.T, c *counter) (*tvec, *tvec) {
	t.Helper()
	a := c.vector(t, seq(1, 6)...)
	_, err := a.EraseRange(3, 6)
	require.NoError(t, err)
	return a, c.vector(t, 10, 11, 12, 13)
}

func TestSwapRestoresOther(t *testing.T) {
	t.Parallel()

	for k := 1; ; k++ {
		c := new(counter)
		a, b := swapPair(t, c)

		c.failNext(k)
		err := a.Swap(b)
		if err == nil {
			assert.Equal(t, []int{10, 11, 12, 13}, ids(a))
			assert.Equal(t, []int{1, 2, 3}, ids(b))
		} else {
			assert.ErrorIs(t, err, errCopy)
			assert.Equal(t, []int{1, 2, 3}, ids(a))
			assert.Equal(t, []int{10, 11, 12, 13}, ids(b))
		}
		a.Release()
		b.Release()
		assert.Equal(t, 0, c.live)
		if err == nil {
			require.Greater(t, k, 8)
			return
		}
	}
}

func TestSwapRollbackFailure(t *testing.T) {
	t.Parallel()

	c := new(counter)
	a, b := swapPair(t, c)

	// The temporary copy of b succeeds, every copy after it fails.
	c.failNext(5)
	c.failEvery = true
	err := a.Swap(b)
	require.ErrorIs(t, err, errCopy)
	var merr *multierror.Error
	require.ErrorAs(t, err, &merr)
	assert.Len(t, merr.Errors, 2)

	assert.Equal(t, []int{1, 2, 3}, ids(a))
	assert.Equal(t, []int{1, 2, 3}, ids(b))
	assert.Same(t, a.buf, b.buf)

	a.Release()
	b.Release()
	assert.Equal(t, 0, c.live)
}

func TestGrow(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 8, grow(8, 8))
	assert.Equal(t, 16, grow(8, 9))
	assert.Equal(t, 32, grow(8, 17))
	assert.Equal(t, 1, grow(0, 1))
	assert.Equal(t, MaxCapacity, grow(MaxCapacity/2+1, MaxCapacity))
}

package workload

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/tidwall/btree"

	"github.com/geofduf/socow/vector"
)

// Vector is the type of the vectors held by a Store.
type Vector = vector.Vector[int64, [8]int64]

var (
	// ErrUnknownOp is returned for statements with an unknown operation.
	ErrUnknownOp = errors.New("unknown operation")
	// ErrNoKey is returned for statements referring to a missing vector.
	ErrNoKey = errors.New("key does not exist")
	// ErrCorrupt is returned by Load for data not produced by Dump.
	ErrCorrupt = errors.New("cannot decode the store")
)

// MaxReserve is the largest capacity a reserve statement can request.
const MaxReserve = 1 << 24

// A Store represents a collection of named vectors. A Store can be used
// simultaneously from multiple goroutines.
type Store struct {
	m  *btree.Map[string, *Vector]
	mu sync.RWMutex
}

// NewStore creates and intializes a new Store.
func NewStore() *Store {
	return &Store{m: new(btree.Map[string, *Vector])}
}

// New creates an empty vector in the store using key as its identifier. If a
// vector already exists for the identifier it is silently replaced.
func (s *Store) New(key string) {
	s.mu.Lock()
	s.replace(key, new(Vector))
	s.mu.Unlock()
}

// Add adds a vector holding values to the store using key as its identifier.
// If a vector already exists for the identifier it is silently replaced.
func (s *Store) Add(key string, values []int64) error {
	v, err := vector.New[int64, [8]int64](values...)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.replace(key, v)
	s.mu.Unlock()
	return nil
}

// Get returns a copy of the values of the vector associated to key. The second
// return value is true if the key exists in the store and false if not.
func (s *Store) Get(key string) ([]int64, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m.Get(key)
	if !ok {
		return nil, false
	}
	return append([]int64{}, v.View()...), true
}

// Delete removes the vector associated to key.
func (s *Store) Delete(key string) {
	s.mu.Lock()
	if v, ok := s.m.Delete(key); ok {
		v.Release()
	}
	s.mu.Unlock()
}

// Len returns the number of vectors in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m.Len()
}

// Keys returns the identifiers known in the store, in ascending order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.m.Keys()
}

// Execute executes a statement against the store, returning an error if the
// statement cannot be executed or if the underlying operation returned an error.
func (s *Store) Execute(statement Statement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.executeUnsafe(statement)
}

// Batch executes multiple statements against the store. Individual errors are
// non blocking. If one or more statements failed, the returned error is a
// *multierror.Error with an entry per failed statement.
func (s *Store) Batch(statements []Statement) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result *multierror.Error
	for i, v := range statements {
		if err := s.executeUnsafe(v); err != nil {
			result = multierror.Append(result, fmt.Errorf("statement %d: %w", i, err))
		}
	}
	return result.ErrorOrNil()
}

// Dump allows to export the store as a slice of bytes.
func (s *Store) Dump() ([]byte, error) {
	var buf bytes.Buffer
	container := make([]byte, binary.MaxVarintLen64)
	put := func(x int64) error {
		n := binary.PutVarint(container, x)
		_, err := buf.Write(container[:n])
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	var err error
	s.m.Scan(func(key string, v *Vector) bool {
		if err = put(int64(len(key))); err != nil {
			return false
		}
		if _, err = buf.WriteString(key); err != nil {
			return false
		}
		if err = put(int64(v.Len())); err != nil {
			return false
		}
		for x := range v.Values() {
			if err = put(x); err != nil {
				return false
			}
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Load loads the content of a store previously exported using the Dump method,
// replacing the current content. The store is left unchanged on error.
func (s *Store) Load(data []byte) error {
	m := new(btree.Map[string, *Vector])
	release := func() {
		m.Scan(func(_ string, v *Vector) bool {
			v.Release()
			return true
		})
	}
	i := 0
	next := func() (int64, error) {
		x, n := binary.Varint(data[i:])
		if n <= 0 {
			return 0, ErrCorrupt
		}
		i += n
		return x, nil
	}
	for i < len(data) {
		n, err := next()
		if err != nil || n < 0 || n > int64(len(data)-i) {
			release()
			return ErrCorrupt
		}
		key := string(data[i : i+int(n)])
		i += int(n)
		count, err := next()
		if err != nil || count < 0 || count > int64(len(data)-i) {
			release()
			return ErrCorrupt
		}
		v := new(Vector)
		if err := v.Reserve(int(count)); err != nil {
			release()
			return err
		}
		for range count {
			x, err := next()
			if err != nil {
				v.Release()
				release()
				return ErrCorrupt
			}
			if err := v.PushBack(x); err != nil {
				v.Release()
				release()
				return err
			}
		}
		if old, ok := m.Set(key, v); ok {
			old.Release()
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m.Scan(func(_ string, v *Vector) bool {
		v.Release()
		return true
	})
	s.m = m
	return nil
}

// replace stores v for key, releasing the vector it replaces. The caller must
// hold the write lock.
func (s *Store) replace(key string, v *Vector) {
	if old, ok := s.m.Set(key, v); ok {
		old.Release()
	}
}

// executeUnsafe executes a statement against the store, returning an error if the
// statement cannot be executed or if the underlying operation returned an error.
// This method is not goroutine-safe. The caller is responsible for properly
// acquiring / releasing the lock on the store.
func (s *Store) executeUnsafe(statement Statement) error {
	if statement.Op >= opUnknown {
		return fmt.Errorf("%w %d", ErrUnknownOp, uint8(statement.Op))
	}
	x, ok := s.m.Get(statement.Key)
	if ok {
		return s.apply(x, statement)
	}
	if !statement.CreateIfNotExists {
		return fmt.Errorf("%w: %q", ErrNoKey, statement.Key)
	}
	x = new(Vector)
	if err := s.apply(x, statement); err != nil {
		x.Release()
		return err
	}
	s.m.Set(statement.Key, x)
	return nil
}

// apply executes statement against x. The caller must hold the write lock.
func (s *Store) apply(x *Vector, statement Statement) error {
	switch statement.Op {
	case OpPush:
		return x.Append(statement.values()...)
	case OpPop:
		if x.Empty() {
			return fmt.Errorf("pop on empty vector %q", statement.Key)
		}
		return x.PopBack()
	case OpInsert:
		if statement.Index < 0 || statement.Index > x.Len() {
			return fmt.Errorf("insert index %d out of range with length %d", statement.Index, x.Len())
		}
		_, err := x.InsertRange(statement.Index, statement.values()...)
		return err
	case OpErase:
		first, last := statement.Index, statement.Last
		if last == 0 {
			last = first + 1
		}
		if first < 0 || first > last || last > x.Len() {
			return fmt.Errorf("erase range [%d:%d] out of range with length %d", first, last, x.Len())
		}
		_, err := x.EraseRange(first, last)
		return err
	case OpReserve:
		if statement.Index > MaxReserve {
			return fmt.Errorf("%w: reserve %d exceeds %d", vector.ErrTooLarge, statement.Index, MaxReserve)
		}
		return x.Reserve(statement.Index)
	case OpShrink:
		return x.ShrinkToFit()
	case OpClear:
		x.Clear()
		return nil
	}

	y, ok := s.m.Get(statement.Source)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNoKey, statement.Source)
	}
	if statement.Op == OpCopy {
		return x.Assign(y)
	}
	return x.Swap(y)
}

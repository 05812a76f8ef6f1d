package workload

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// An Op is the type of operation performed by a Statement.
type Op uint8

// Statement types.
const (
	OpPush    Op = iota // append Value and Values
	OpPop               // remove the last value
	OpInsert            // insert Value and Values at Index
	OpErase             // erase [Index, Last)
	OpReserve           // reserve Index values
	OpShrink            // shrink to fit
	OpClear             // remove all values
	OpCopy              // replace the vector with a copy of Source
	OpSwap              // exchange the vector with Source
	opUnknown
)

var opNames = [...]string{
	OpPush:    "push",
	OpPop:     "pop",
	OpInsert:  "insert",
	OpErase:   "erase",
	OpReserve: "reserve",
	OpShrink:  "shrink",
	OpClear:   "clear",
	OpCopy:    "copy",
	OpSwap:    "swap",
}

// ParseOp returns the Op named s.
func ParseOp(s string) (Op, error) {
	for i, name := range opNames {
		if name == s {
			return Op(i), nil
		}
	}
	return opUnknown, fmt.Errorf("%w %q", ErrUnknownOp, s)
}

// String implements [fmt.Stringer].
func (op Op) String() string {
	if op >= opUnknown {
		return fmt.Sprintf("Op(%d)", uint8(op))
	}
	return opNames[op]
}

// MarshalYAML implements [yaml.Marshaler].
func (op Op) MarshalYAML() (any, error) {
	if op >= opUnknown {
		return nil, fmt.Errorf("%w %d", ErrUnknownOp, uint8(op))
	}
	return op.String(), nil
}

// UnmarshalYAML implements [yaml.Unmarshaler].
func (op *Op) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	x, err := ParseOp(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*op = x
	return nil
}

// A Statement represents an operation to perform on a store.
type Statement struct {
	Key    string  `yaml:"key"`
	Op     Op      `yaml:"op"`
	Index  int     `yaml:"index,omitempty"`
	Last   int     `yaml:"last,omitempty"`
	Value  *int64  `yaml:"value,omitempty"`
	Values []int64 `yaml:"values,omitempty"`
	Source string  `yaml:"source,omitempty"`

	// CreateIfNotExists creates an empty vector for Key if there is none.
	CreateIfNotExists bool `yaml:"create,omitempty"`
}

// values returns the values carried by the statement, Value first.
func (s Statement) values() []int64 {
	if s.Value == nil {
		return s.Values
	}
	return append([]int64{*s.Value}, s.Values...)
}

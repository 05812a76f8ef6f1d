/*
Package workload drives collections of vectors from statements. It defines the
type Store, a collection of named vectors safe to use from multiple goroutines,
and the type Statement, an operation to perform on a store.

Stored vectors hold int64 values with an inline capacity of 8:

	type Vector = vector.Vector[int64, [8]int64]

A Store never exposes its vectors. Reads return plain copies of the values, so
that no vector outside the store shares a buffer with one inside it.

Statements can be decoded from YAML scripts:

	name: grow-and-share
	statements:
	  - {key: a, op: push, value: 1, create: true}
	  - {key: b, op: copy, source: a, create: true}
	  - {key: b, op: insert, index: 0, values: [7, 8, 9]}

A Store can be exported as []byte with Dump and restored with Load.
*/
package workload

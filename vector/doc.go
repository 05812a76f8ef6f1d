/*
Package vector implements a sequence container combining small-size
optimization with copy-on-write sharing. It defines the type Vector, with
methods for reading, appending, inserting and erasing elements, and for
managing capacity.

A Vector is parameterized by its element type and by an inline array type
whose length is the inline capacity:

	var v vector.Vector[int, [4]int]

Up to 4 elements are stored in the Vector value itself. Beyond that, elements
move to a reference-counted heap buffer. Copying a Vector that uses a heap
buffer, with Clone or Assign, only shares the buffer. The buffer is duplicated
the first time one of its owners is mutated.

Vectors must not be copied by assignment, since that would alias a buffer
without accounting for it. Use Clone or Assign instead. A Vector should be
released with Release once it is no longer used, so that other owners of its
buffer can mutate it in place.

Element types may implement Copier to customize how they are copied, and
Destroyer to be notified when an element is removed from a Vector. An error
returned by Copy aborts the operation in progress, and the Vector is left as
it was before the call.

A Vector, and all vectors sharing a buffer with it, must not be used from
multiple goroutines simultaneously.
*/
package vector

package models

type fieldOp int

const (
	opNone fieldOp = iota
	opSet
	opClear
)

// FieldUpdate represents an optional change to a single field in a partial
// update: either set a new value, clear the field entirely, or leave it
// untouched. This makes "remove this field" a first-class typed variant
// instead of a sentinel value threaded through plain maps.
type FieldUpdate[T any] struct {
	value T
	op    fieldOp
}

// Set returns a FieldUpdate that assigns v.
func Set[T any](v T) FieldUpdate[T] {
	return FieldUpdate[T]{value: v, op: opSet}
}

// Clear returns a FieldUpdate that removes the field.
func Clear[T any]() FieldUpdate[T] {
	return FieldUpdate[T]{op: opClear}
}

// Get returns the value to assign and whether the update is a set.
func (f FieldUpdate[T]) Get() (T, bool) {
	return f.value, f.op == opSet
}

// IsClear reports whether the update removes the field.
func (f FieldUpdate[T]) IsClear() bool {
	return f.op == opClear
}

// IsZero reports whether the field is left untouched.
func (f FieldUpdate[T]) IsZero() bool {
	return f.op == opNone
}

package domain

// Field is an optional value used in partial-update payloads. It distinguishes
// "not present in the payload" (zero Field) from "present, possibly nil/zero"
// (set via Set). Mutation classification and audit derivation depend on this
// distinction: only touched fields participate.
type Field[T any] struct {
	value T
	set   bool
}

// Set returns a Field carrying v, marked as present.
func Set[T any](v T) Field[T] {
	return Field[T]{value: v, set: true}
}

// IsSet reports whether the field was present in the payload.
func (f Field[T]) IsSet() bool {
	return f.set
}

// Value returns the carried value. The zero value of T is returned when the
// field is not set; callers should check IsSet first.
func (f Field[T]) Value() T {
	return f.value
}

// Get returns the carried value and whether it was set.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.set
}

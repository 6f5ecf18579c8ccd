package utils

// Ptr returns a pointer to a copy of value.
func Ptr[T any](value T) *T {
	return &value
}

package repositories

import "errors"

// ErrNotFound is returned when a lookup matches no record. Callers wrap
// it with the lookup key so services can build a precise message while
// still classifying the failure with errors.Is.
var ErrNotFound = errors.New("record not found")

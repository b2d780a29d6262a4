// Package seed builds the deterministic datasets used to populate empty
// collections. The same sizes always produce the same records, timestamps
// included.
package seed

import "time"

// Cycle is a pool of values picked round-robin by index.
type Cycle[T any] []T

// At returns the value for index i.
func (c Cycle[T]) At(i int) T {
	return c[i%len(c)]
}

// Pair returns the values at i and i+1, used for two-image galleries.
func (c Cycle[T]) Pair(i int) []T {
	return []T{c.At(i), c.At(i + 1)}
}

// Steps is a value that grows by Step for each index and wraps every Period.
type Steps struct {
	Base   int64
	Step   int64
	Period int
}

// At returns Base + (i mod Period) * Step.
func (s Steps) At(i int) int64 {
	if s.Period <= 0 {
		return s.Base
	}
	return s.Base + int64(i%s.Period)*s.Step
}

// Int is At as an int.
func (s Steps) Int(i int) int {
	return int(s.At(i))
}

// stamp spaces generated records one hour apart from epoch.
func stamp(epoch time.Time, i int) time.Time {
	return epoch.Add(time.Duration(i) * time.Hour)
}

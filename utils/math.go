// Package utils holds small, dependency-free helpers shared across layers:
// overflow-checked arithmetic and a multi-error accumulator.
package utils

import "errors"

// ErrOverflow is returned by the Add64/Sub64 helpers on overflow/underflow.
var ErrOverflow = errors.New("utils: overflow")

// Add64 returns a+b, erroring on uint64 overflow.
func Add64(a, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, ErrOverflow
	}
	return sum, nil
}

// Sub64 returns a-b, erroring if b > a.
func Sub64(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrOverflow
	}
	return a - b, nil
}


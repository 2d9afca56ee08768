package field

import (
	"fmt"
)

// candidates are the Fermat primes bounding the usual image bit depths:
// 17 covers 4-bit samples, 257 covers 8-bit, 65537 covers 16-bit.
var candidates = []uint32{17, 257, 65537}

// Select returns the smallest candidate prime p with p > maxValue and
// p − 1 ≥ n, so that every pixel value is a field element and n distinct
// nonzero x-coordinates exist.
func Select(maxValue uint32, n int) (uint32, error) {
	for _, p := range candidates {
		if p > maxValue && uint64(p-1) >= uint64(n) {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: no candidate fits max value %d and %d shares",
		ErrPrimeTooSmall, maxValue, n)
}

// Check validates an explicitly supplied modulus against the same two
// conditions Select guarantees, and that it is in fact prime.
func Check(prime, maxValue uint32, n int) error {
	if _, err := New(prime); err != nil {
		return err
	}
	if prime <= maxValue {
		return fmt.Errorf("%w: %d does not exceed max value %d",
			ErrPrimeTooSmall, prime, maxValue)
	}
	if uint64(prime-1) < uint64(n) {
		return fmt.Errorf("%w: %d leaves fewer than %d nonzero coordinates",
			ErrPrimeTooSmall, prime, n)
	}
	return nil
}

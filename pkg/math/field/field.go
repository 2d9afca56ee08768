// Package field implements arithmetic over the prime fields used to hide
// pixel values, ℤp for a modulus wide enough to hold every intensity.
//
// All operations normalize their results to [0, prime−1] and are pure
// functions of their inputs; a Field carries no mutable state and is safe
// for concurrent use.
package field

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/cronokirby/saferith"
)

var (
	// ErrPrimeTooSmall indicates the modulus cannot represent every pixel
	// value, or does not leave enough nonzero residues for the requested
	// number of share coordinates.
	ErrPrimeTooSmall = errors.New("field: prime too small")

	// ErrZeroInverse indicates a multiplicative inverse of 0 was requested.
	ErrZeroInverse = errors.New("field: inverse of 0 does not exist")

	// ErrNotPrime indicates the supplied modulus is composite.
	ErrNotPrime = errors.New("field: modulus is not prime")
)

// Field performs modular arithmetic over ℤp for a fixed prime p.
// The zero value is not usable; construct one with New.
type Field struct {
	p   uint64
	mod *saferith.Modulus
}

// New creates the field ℤp. The modulus must be an odd prime small enough
// that products of two reduced elements fit in a uint64, which holds for
// every 32-bit prime.
func New(prime uint32) (Field, error) {
	if prime < 2 || !new(big.Int).SetUint64(uint64(prime)).ProbablyPrime(20) {
		return Field{}, fmt.Errorf("%w: %d", ErrNotPrime, prime)
	}
	mod := saferith.ModulusFromNat(new(saferith.Nat).SetUint64(uint64(prime)))
	return Field{p: uint64(prime), mod: mod}, nil
}

// Prime returns the field modulus.
func (f Field) Prime() uint32 {
	return uint32(f.p)
}

// Contains reports whether a is a reduced element of the field.
func (f Field) Contains(a uint32) bool {
	return uint64(a) < f.p
}

// Add returns a + b (mod p).
func (f Field) Add(a, b uint32) uint32 {
	return uint32((uint64(a)%f.p + uint64(b)%f.p) % f.p)
}

// Sub returns a − b (mod p).
func (f Field) Sub(a, b uint32) uint32 {
	return uint32((uint64(a)%f.p + f.p - uint64(b)%f.p) % f.p)
}

// Neg returns −a (mod p).
func (f Field) Neg(a uint32) uint32 {
	return uint32((f.p - uint64(a)%f.p) % f.p)
}

// Mul returns a ⋅ b (mod p).
func (f Field) Mul(a, b uint32) uint32 {
	return uint32((uint64(a) % f.p) * (uint64(b) % f.p) % f.p)
}

// Exp returns aᵉ (mod p) by square and multiply.
func (f Field) Exp(a uint32, e uint64) uint32 {
	base := uint64(a) % f.p
	result := uint64(1) % f.p
	for ; e > 0; e >>= 1 {
		if e&1 == 1 {
			result = result * base % f.p
		}
		base = base * base % f.p
	}
	return uint32(result)
}

// Inv returns a⁻¹ (mod p), computed with the extended Euclidean algorithm.
// Because p is prime it always exists for nonzero a, and equals
// Exp(a, p−2) by Fermat's little theorem.
func (f Field) Inv(a uint32) (uint32, error) {
	reduced := uint64(a) % f.p
	if reduced == 0 {
		return 0, ErrZeroInverse
	}
	inv := new(saferith.Nat).ModInverse(new(saferith.Nat).SetUint64(reduced), f.mod)
	return uint32(inv.Big().Uint64()), nil
}

// AddSlice sets dst[i] = a[i] + b[i] (mod p). All slices must have the same
// length; dst may alias a or b.
func (f Field) AddSlice(dst, a, b []uint32) {
	for i := range a {
		dst[i] = uint32((uint64(a[i])%f.p + uint64(b[i])%f.p) % f.p)
	}
}

// SubSlice sets dst[i] = a[i] − b[i] (mod p).
func (f Field) SubSlice(dst, a, b []uint32) {
	for i := range a {
		dst[i] = uint32((uint64(a[i])%f.p + f.p - uint64(b[i])%f.p) % f.p)
	}
}

// MulSlice sets dst[i] = a[i] ⋅ b[i] (mod p).
func (f Field) MulSlice(dst, a, b []uint32) {
	for i := range a {
		dst[i] = uint32((uint64(a[i]) % f.p) * (uint64(b[i]) % f.p) % f.p)
	}
}

// ScaleSlice sets dst[i] = s ⋅ a[i] (mod p).
func (f Field) ScaleSlice(dst, a []uint32, s uint32) {
	scalar := uint64(s) % f.p
	for i := range a {
		dst[i] = uint32(scalar * (uint64(a[i]) % f.p) % f.p)
	}
}

// ScaleAddSlice sets dst[i] = dst[i] + s ⋅ a[i] (mod p). This is the
// accumulation kernel of Lagrange interpolation.
func (f Field) ScaleAddSlice(dst, a []uint32, s uint32) {
	scalar := uint64(s) % f.p
	for i := range a {
		dst[i] = uint32((uint64(dst[i]) + scalar*(uint64(a[i])%f.p)) % f.p)
	}
}

// ReduceSlice sets dst[i] = a[i] (mod p).
func (f Field) ReduceSlice(dst, a []uint32) {
	for i := range a {
		dst[i] = uint32(uint64(a[i]) % f.p)
	}
}

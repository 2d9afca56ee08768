// Package shamir implements (k,n)-threshold secret sharing applied
// independently to every pixel/channel value of an image. Any k of the n
// generated shares reconstruct the image exactly; fewer than k reveal
// nothing about it.
package shamir

import (
	"errors"
	"fmt"
	"io"

	"github.com/shardpix/shardpix/pkg/math/field"
	"github.com/shardpix/shardpix/pkg/math/polynomial"
	"github.com/shardpix/shardpix/pkg/pixmap"
	"github.com/shardpix/shardpix/pkg/pool"
)

var (
	// ErrInvalidThreshold indicates k and n violate 1 ≤ k ≤ n ≤ prime−1.
	ErrInvalidThreshold = errors.New("shamir: threshold must satisfy 1 ≤ k ≤ n ≤ prime-1")

	// ErrIncompatibleShares indicates shares presented together disagree on
	// prime, mode or original shape.
	ErrIncompatibleShares = errors.New("shamir: incompatible shares")

	// ErrDuplicateX indicates two shares carry the same x-coordinate.
	ErrDuplicateX = errors.New("shamir: duplicate x-coordinate")

	// ErrInvalidShareIndex indicates an x-coordinate that is not a nonzero
	// field element; 0 is reserved as the point that recovers the secret.
	ErrInvalidShareIndex = errors.New("shamir: x-coordinate must be a nonzero field element")

	// ErrNoShares indicates an empty share set.
	ErrNoShares = errors.New("shamir: no shares provided")

	// ErrEmptySecret indicates a secret array with no values.
	ErrEmptySecret = errors.New("shamir: empty secret array")
)

// Share is one evaluation of the per-pixel secret polynomials at a fixed
// x-coordinate, together with the metadata that makes it self-describing.
// The metadata alone suffices to validate a share set and reshape the
// reconstructed array; no filename convention is ever needed.
//
// The threshold k is deliberately not part of the metadata, matching the
// on-disk contract: a share reveals how it was made only through the number
// of siblings needed, which it does not know.
type Share struct {
	// X is the field element the polynomials were evaluated at, constant
	// across all positions of this share.
	X uint32
	// Prime is the field modulus.
	Prime uint32
	// Mode is the channel layout of the original image.
	Mode pixmap.Mode
	// Shape is the original image's channel-aware dimensions.
	Shape pixmap.Shape
	// Values holds one evaluated polynomial output per position, in the
	// same row-major order as the original array.
	Values []uint32
}

// Pixmap reshapes the share's raw values into a pixel array. Shares look
// like uniform noise; this is mainly useful for visualization.
func (s *Share) Pixmap() *pixmap.Pixmap {
	return &pixmap.Pixmap{Mode: s.Mode, Shape: s.Shape, Values: s.Values}
}

// Split creates n shares of secret with threshold k, evaluating at the
// default x-coordinates 1..n. If prime is 0 the smallest suitable candidate
// modulus is selected; otherwise the supplied prime is validated against the
// secret's value range and n.
//
// rand must be exclusively owned by this call for the duration of the split.
// pl may be nil to run on the calling goroutine.
func Split(rand io.Reader, pl *pool.Pool, secret *pixmap.Pixmap, k, n int, prime uint32) ([]*Share, error) {
	if prime == 0 {
		selected, err := field.Select(secret.Max(), n)
		if err != nil {
			return nil, err
		}
		prime = selected
	} else if err := field.Check(prime, secret.Max(), n); err != nil {
		return nil, err
	}

	if n < 1 || n > int(prime-1) {
		return nil, fmt.Errorf("%w: n=%d, prime=%d", ErrInvalidThreshold, n, prime)
	}
	xs := make([]uint32, n)
	for i := range xs {
		xs[i] = uint32(i + 1)
	}
	return SplitAt(rand, pl, secret, k, prime, xs)
}

// SplitAt is Split with explicit x-coordinates, which must be distinct
// nonzero field elements. The supplied prime is validated the same way.
func SplitAt(rand io.Reader, pl *pool.Pool, secret *pixmap.Pixmap, k int, prime uint32, xs []uint32) ([]*Share, error) {
	if len(secret.Values) == 0 {
		return nil, ErrEmptySecret
	}
	if err := field.Check(prime, secret.Max(), len(xs)); err != nil {
		return nil, err
	}
	f, err := field.New(prime)
	if err != nil {
		return nil, err
	}

	n := len(xs)
	if k < 1 || k > n || n > int(prime-1) {
		return nil, fmt.Errorf("%w: k=%d, n=%d, prime=%d", ErrInvalidThreshold, k, n, prime)
	}
	if err := checkCoordinates(f, xs); err != nil {
		return nil, err
	}

	// All validation is done; only now is randomness consumed. The k−1
	// random planes are drawn serially from rand, one uniform element per
	// position per plane, so per-position independence holds no matter how
	// evaluation is parallelized afterwards.
	batch := polynomial.NewBatch(rand, f, secret.Values, k-1)

	shares := make([]*Share, n)
	spans := pool.Chunks(batch.Len(), pl.Workers())
	for i, x := range xs {
		values := make([]uint32, batch.Len())
		x := x
		pl.Parallelize(len(spans), func(j int) {
			batch.EvaluateRange(x, values, spans[j].Lo, spans[j].Hi)
		})
		shares[i] = &Share{
			X:      x,
			Prime:  prime,
			Mode:   secret.Mode,
			Shape:  secret.Shape,
			Values: values,
		}
	}
	return shares, nil
}

// Reconstruct recovers the original pixel array from a set of shares by
// elementwise Lagrange interpolation at x=0.
//
// The share count is not, and cannot be, checked against the threshold the
// shares were generated with: k is not stored in share metadata. Supplying
// fewer than k shares therefore yields a deterministic but wrong image with
// no error raised; callers are responsible for providing at least k shares.
func Reconstruct(pl *pool.Pool, shares []*Share) (*pixmap.Pixmap, error) {
	if len(shares) == 0 {
		return nil, ErrNoShares
	}

	ref := shares[0]
	if !ref.Mode.Valid() || ref.Mode.Channels() != ref.Shape.Channels {
		return nil, fmt.Errorf("%w: share x=%d declares mode %v with shape %v",
			ErrIncompatibleShares, ref.X, ref.Mode, ref.Shape)
	}
	f, err := field.New(ref.Prime)
	if err != nil {
		return nil, err
	}
	count := ref.Shape.Count()

	xs := make([]uint32, len(shares))
	for i, s := range shares {
		if s.Prime != ref.Prime || s.Mode != ref.Mode || s.Shape != ref.Shape {
			return nil, fmt.Errorf("%w: share x=%d has prime=%d mode=%v shape=%v, want prime=%d mode=%v shape=%v",
				ErrIncompatibleShares, s.X, s.Prime, s.Mode, s.Shape, ref.Prime, ref.Mode, ref.Shape)
		}
		if len(s.Values) != count {
			return nil, fmt.Errorf("%w: share x=%d holds %d values, shape %v needs %d",
				ErrIncompatibleShares, s.X, len(s.Values), s.Shape, count)
		}
		xs[i] = s.X
	}
	if err := checkCoordinates(f, xs); err != nil {
		return nil, err
	}

	coefficients, err := polynomial.CoefficientsAtZero(f, xs)
	if err != nil {
		return nil, err
	}

	// secret = Σⱼ lⱼ ⋅ yⱼ (mod p), elementwise over the whole array.
	values := make([]uint32, count)
	spans := pool.Chunks(count, pl.Workers())
	pl.Parallelize(len(spans), func(i int) {
		lo, hi := spans[i].Lo, spans[i].Hi
		for j, s := range shares {
			f.ScaleAddSlice(values[lo:hi], s.Values[lo:hi], coefficients[j])
		}
	})

	return &pixmap.Pixmap{Mode: ref.Mode, Shape: ref.Shape, Values: values}, nil
}

// checkCoordinates enforces that every x is a nonzero reduced field element
// and that no x repeats.
func checkCoordinates(f field.Field, xs []uint32) error {
	seen := make(map[uint32]struct{}, len(xs))
	for _, x := range xs {
		if x == 0 || !f.Contains(x) {
			return fmt.Errorf("%w: x=%d, prime=%d", ErrInvalidShareIndex, x, f.Prime())
		}
		if _, ok := seen[x]; ok {
			return fmt.Errorf("%w: x=%d", ErrDuplicateX, x)
		}
		seen[x] = struct{}{}
	}
	return nil
}

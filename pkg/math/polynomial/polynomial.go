// Package polynomial implements the per-pixel secret polynomials of the
// sharing scheme: one random polynomial of degree k−1 per array position,
// with the position's secret as constant term.
package polynomial

import (
	"io"

	"github.com/shardpix/shardpix/pkg/math/field"
	"github.com/shardpix/shardpix/pkg/math/sample"
)

// Batch holds one polynomial fᵢ(X) = sᵢ + a₁ᵢ⋅X + … + a_dᵢ⋅Xᵈ per array
// position i, stored as d+1 coefficient planes over all positions.
type Batch struct {
	field  field.Field
	planes [][]uint32
}

// NewBatch samples a fresh batch of degree-d polynomials whose constant
// plane is a copy of secrets, reduced into the field. The remaining d planes
// are drawn independently and uniformly from rand, so a degree of 0 consumes
// no randomness at all.
func NewBatch(rand io.Reader, f field.Field, secrets []uint32, degree int) *Batch {
	planes := make([][]uint32, degree+1)
	planes[0] = make([]uint32, len(secrets))
	f.ReduceSlice(planes[0], secrets)
	for j := 1; j <= degree; j++ {
		planes[j] = make([]uint32, len(secrets))
		sample.Slice(rand, f, planes[j])
	}
	return &Batch{field: f, planes: planes}
}

// Degree is the common degree of the batched polynomials.
func (b *Batch) Degree() int {
	return len(b.planes) - 1
}

// Len is the number of positions, i.e. polynomials, in the batch.
func (b *Batch) Len() int {
	return len(b.planes[0])
}

// Constant returns the constant coefficient plane, the secrets themselves.
func (b *Batch) Constant() []uint32 {
	return b.planes[0]
}

// Evaluate computes fᵢ(x) for every position i using Horner's method,
// vectorized across the whole batch.
func (b *Batch) Evaluate(x uint32) []uint32 {
	dst := make([]uint32, b.Len())
	b.EvaluateRange(x, dst, 0, b.Len())
	return dst
}

// EvaluateRange evaluates positions [lo, hi) into dst[lo:hi], so disjoint
// ranges can run concurrently. Evaluating at 0 panics: f(0) is the secret
// plane and must never be handed out as a share.
func (b *Batch) EvaluateRange(x uint32, dst []uint32, lo, hi int) {
	if x%b.field.Prime() == 0 {
		panic("polynomial: attempt to leak secret")
	}
	window := dst[lo:hi]
	for i := range window {
		window[i] = 0
	}
	for j := len(b.planes) - 1; j >= 0; j-- {
		// bₙ₋₁ = bₙ ⋅ x + aₙ₋₁
		b.field.ScaleSlice(window, window, x)
		b.field.AddSlice(window, window, b.planes[j][lo:hi])
	}
}

package polynomial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shardpix/shardpix/internal/test"
	"github.com/shardpix/shardpix/pkg/math/field"
)

// The Lagrange coefficients at 0 of any interpolation domain sum to 1,
// because they exactly reproduce the constant polynomial f(X) = 1.
func TestCoefficientsSumToOne(t *testing.T) {
	f := mustField(t, 257)

	for _, xs := range [][]uint32{
		{1, 2, 3, 4, 5, 6, 7, 8, 9, 10},
		{1, 2, 3},
		{5, 17, 200, 256},
		{42},
	} {
		coefficients, err := CoefficientsAtZero(f, xs)
		require.NoError(t, err)
		sum := uint32(0)
		for _, c := range coefficients {
			sum = f.Add(sum, c)
		}
		assert.EqualValues(t, 1, sum, "xs=%v", xs)
	}
}

func TestInterpolationRecoversConstant(t *testing.T) {
	f := mustField(t, 257)
	// f(x) = 200 + 3x + 7x²
	b := &Batch{field: f, planes: [][]uint32{{200}, {3}, {7}}}

	xs := []uint32{1, 2, 3, 4, 5}
	ys := make([]uint32, len(xs))
	for i, x := range xs {
		ys[i] = b.Evaluate(x)[0]
	}

	// any 3 of the 5 samples determine f(0)
	for i := 0; i < len(xs); i++ {
		for j := i + 1; j < len(xs); j++ {
			for k := j + 1; k < len(xs); k++ {
				sub := []uint32{xs[i], xs[j], xs[k]}
				coefficients, err := CoefficientsAtZero(f, sub)
				require.NoError(t, err)
				secret := uint32(0)
				for m, c := range coefficients {
					secret = f.Add(secret, f.Mul(c, []uint32{ys[i], ys[j], ys[k]}[m]))
				}
				assert.EqualValues(t, 200, secret, "subset %v", sub)
			}
		}
	}
}

func TestInterpolationRandomPolynomial(t *testing.T) {
	f := mustField(t, 65537)
	secrets := []uint32{12345}
	b := NewBatch(test.Rand("lagrange"), f, secrets, 4)

	xs := []uint32{3, 9, 11, 50001, 65536}
	coefficients, err := CoefficientsAtZero(f, xs)
	require.NoError(t, err)

	secret := uint32(0)
	for i, x := range xs {
		secret = f.Add(secret, f.Mul(coefficients[i], b.Evaluate(x)[0]))
	}
	assert.EqualValues(t, 12345, secret)
}

func TestCoefficientsRejectDegenerateDomains(t *testing.T) {
	f := mustField(t, 257)

	_, err := CoefficientsAtZero(f, []uint32{1, 2, 2})
	assert.ErrorIs(t, err, field.ErrZeroInverse)

	_, err = CoefficientsAtZero(f, []uint32{0, 1, 2})
	assert.ErrorIs(t, err, field.ErrZeroInverse)
}

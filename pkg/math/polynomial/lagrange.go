package polynomial

import (
	"fmt"

	"github.com/shardpix/shardpix/pkg/math/field"
)

// CoefficientsAtZero returns the Lagrange coefficients lⱼ(0) for the
// interpolation points xs, so that f(0) = Σⱼ yⱼ ⋅ lⱼ(0) for any polynomial
// of degree < len(xs) with samples yⱼ = f(xⱼ).
//
// The shared numerator x₀⋯xₖ is computed once:
//
//	                 x₀ ⋅⋅⋅ xₖ
//	lⱼ(0) =	--------------------------------------------------
//	        xⱼ⋅(x₀ - xⱼ)⋅⋅⋅(xⱼ₋₁ - xⱼ)⋅(xⱼ₊₁ - xⱼ)⋅⋅⋅(xₖ - xⱼ)
//
// A zero or repeated x makes a denominator vanish, which surfaces as
// field.ErrZeroInverse.
func CoefficientsAtZero(f field.Field, xs []uint32) ([]uint32, error) {
	numerator := uint32(1)
	for _, x := range xs {
		numerator = f.Mul(numerator, x)
	}

	coefficients := make([]uint32, len(xs))
	for j, xj := range xs {
		denominator := xj
		for i, xi := range xs {
			if i == j {
				continue
			}
			denominator = f.Mul(denominator, f.Sub(xi, xj))
		}
		inv, err := f.Inv(denominator)
		if err != nil {
			return nil, fmt.Errorf("polynomial: lagrange coefficient for x=%d: %w", xj, err)
		}
		coefficients[j] = f.Mul(numerator, inv)
	}
	return coefficients, nil
}

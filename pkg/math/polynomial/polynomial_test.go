package polynomial

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shardpix/shardpix/internal/test"
	"github.com/shardpix/shardpix/pkg/math/field"
)

func mustField(t *testing.T, prime uint32) field.Field {
	t.Helper()
	f, err := field.New(prime)
	require.NoError(t, err)
	return f
}

// failReader fails every read; handing it to code that must not consume
// randomness proves the code never asked.
type failReader struct{}

func (failReader) Read([]byte) (int, error) {
	return 0, errors.New("no randomness available")
}

func TestEvaluateKnownPolynomial(t *testing.T) {
	f := mustField(t, 257)
	// f(x) = 1 + x² at one position
	b := &Batch{field: f, planes: [][]uint32{{1}, {0}, {1}}}

	for x := uint32(1); x < 257; x++ {
		want := (1 + uint64(x)*uint64(x)) % 257
		got := b.Evaluate(x)
		require.Len(t, got, 1)
		require.EqualValues(t, want, got[0], "x=%d", x)
	}
}

func TestEvaluateAtZeroPanics(t *testing.T) {
	f := mustField(t, 257)
	b := &Batch{field: f, planes: [][]uint32{{5}, {1}}}

	require.Panics(t, func() { b.Evaluate(0) })
	// 257 ≡ 0 (mod 257)
	require.Panics(t, func() { b.Evaluate(257) })
}

func TestNewBatchConstant(t *testing.T) {
	f := mustField(t, 257)
	secrets := []uint32{0, 1, 200, 256, 300}

	b := NewBatch(test.Rand("batch"), f, secrets, 2)
	assert.Equal(t, 2, b.Degree())
	assert.Equal(t, len(secrets), b.Len())
	// constants are the secrets, reduced into the field
	assert.Equal(t, []uint32{0, 1, 200, 256, 43}, b.Constant())
}

func TestNewBatchDegreeZeroReadsNothing(t *testing.T) {
	f := mustField(t, 257)
	secrets := []uint32{42, 13}

	var b *Batch
	require.NotPanics(t, func() { b = NewBatch(failReader{}, f, secrets, 0) })
	// a constant polynomial evaluates to its secret everywhere
	for _, x := range []uint32{1, 2, 100, 256} {
		assert.Equal(t, secrets, b.Evaluate(x))
	}
}

func TestNewBatchDeterministic(t *testing.T) {
	f := mustField(t, 65537)
	secrets := []uint32{9, 8, 7, 6, 5}

	a := NewBatch(test.Rand("det"), f, secrets, 3)
	b := NewBatch(test.Rand("det"), f, secrets, 3)
	for _, x := range []uint32{1, 2, 3} {
		assert.Equal(t, a.Evaluate(x), b.Evaluate(x))
	}

	c := NewBatch(test.Rand("det-2"), f, secrets, 3)
	assert.NotEqual(t, a.Evaluate(1), c.Evaluate(1))
}

func TestEvaluateRangeMatchesFull(t *testing.T) {
	f := mustField(t, 257)
	secrets := make([]uint32, 100)
	for i := range secrets {
		secrets[i] = uint32(i * 2)
	}
	b := NewBatch(test.Rand("range"), f, secrets, 4)

	full := b.Evaluate(7)
	chunked := make([]uint32, len(secrets))
	b.EvaluateRange(7, chunked, 0, 33)
	b.EvaluateRange(7, chunked, 33, 90)
	b.EvaluateRange(7, chunked, 90, 100)
	assert.Equal(t, full, chunked)
}

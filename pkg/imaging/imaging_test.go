package imaging_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shardpix/shardpix/internal/test"
	"github.com/shardpix/shardpix/pkg/imaging"
	"github.com/shardpix/shardpix/pkg/pixmap"
	"github.com/shardpix/shardpix/pkg/shamir"
)

func encodeDecode(t *testing.T, p *pixmap.Pixmap, forceGray bool) *pixmap.Pixmap {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, p))
	got, err := imaging.Decode(&buf, forceGray)
	require.NoError(t, err)
	return got
}

func TestPNGRoundTripGray8(t *testing.T) {
	p := imaging.Gradient(pixmap.Grayscale, 8, 32, 8)
	got := encodeDecode(t, p, false)
	assert.True(t, p.Equal(got))
}

func TestPNGRoundTripGray16(t *testing.T) {
	p := imaging.Gradient(pixmap.Grayscale, 8, 32, 16)
	require.Equal(t, 16, p.BitDepth())
	got := encodeDecode(t, p, false)
	assert.True(t, p.Equal(got))
}

func TestPNGRoundTripRGB(t *testing.T) {
	p := imaging.Noise([]byte("rgb round trip"), pixmap.RGB, 8, 8, 8)
	got := encodeDecode(t, p, false)
	assert.True(t, p.Equal(got))
}

func TestDecodeForceGray(t *testing.T) {
	p := imaging.Noise([]byte("force gray"), pixmap.RGB, 6, 6, 8)
	got := encodeDecode(t, p, true)
	assert.Equal(t, pixmap.Grayscale, got.Mode)
	assert.Equal(t, pixmap.Shape{Height: 6, Width: 6, Channels: 1}, got.Shape)
}

func TestDecodeGarbage(t *testing.T) {
	_, err := imaging.Decode(bytes.NewReader([]byte("not an image")), false)
	assert.Error(t, err)
}

func TestGradientRange(t *testing.T) {
	p := imaging.Gradient(pixmap.Grayscale, 4, 64, 4)
	assert.EqualValues(t, 15, p.Max())
	assert.EqualValues(t, 0, p.Values[0])
}

func TestCheckerboardValues(t *testing.T) {
	p := imaging.Checkerboard(pixmap.Grayscale, 8, 8, 8, 2)
	for _, v := range p.Values {
		require.True(t, v == 0 || v == 255)
	}
	assert.EqualValues(t, 255, p.Values[0])
	assert.EqualValues(t, 0, p.Values[p.Offset(0, 2, 0)])
}

func TestNoiseDeterministic(t *testing.T) {
	a := imaging.Noise([]byte("seed"), pixmap.Grayscale, 8, 8, 8)
	b := imaging.Noise([]byte("seed"), pixmap.Grayscale, 8, 8, 8)
	assert.True(t, a.Equal(b))

	c := imaging.Noise([]byte("other"), pixmap.Grayscale, 8, 8, 8)
	assert.False(t, a.Equal(c))

	assert.LessOrEqual(t, a.Max(), uint32(255))
	deep := imaging.Noise([]byte("seed"), pixmap.Grayscale, 32, 32, 16)
	assert.Greater(t, deep.Max(), uint32(255))
}

func TestRenderShare(t *testing.T) {
	secret := imaging.Gradient(pixmap.Grayscale, 4, 16, 8)
	shares, err := shamir.Split(test.Rand("render"), nil, secret, 2, 3, 0)
	require.NoError(t, err)

	rendered := imaging.RenderShare(shares[0])
	assert.Equal(t, secret.Mode, rendered.Mode)
	assert.Equal(t, secret.Shape, rendered.Shape)
	assert.LessOrEqual(t, rendered.Max(), uint32(255))

	// rendered shares stay encodable
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, rendered))
}

func TestCompare(t *testing.T) {
	a := imaging.Gradient(pixmap.RGB, 4, 4, 8)
	b := a.Clone()

	diff, err := imaging.Compare(a, b)
	require.NoError(t, err)
	assert.True(t, diff.Identical())
	assert.Equal(t, len(a.Values), diff.Positions)

	b.Values[7] += 12
	b.Values[9] += 3
	diff, err = imaging.Compare(a, b)
	require.NoError(t, err)
	assert.False(t, diff.Identical())
	assert.Equal(t, 2, diff.Mismatched)
	assert.EqualValues(t, 12, diff.MaxDelta)

	_, err = imaging.Compare(a, imaging.Gradient(pixmap.Grayscale, 4, 4, 8))
	assert.ErrorIs(t, err, imaging.ErrShapeMismatch)
}

// The full pipeline: encoded image in, shares, reconstruction, encoded
// image out, bit for bit.
func TestEndToEnd(t *testing.T) {
	original := imaging.Noise([]byte("end to end"), pixmap.RGB, 16, 16, 8)

	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, original))
	decoded, err := imaging.Decode(&buf, false)
	require.NoError(t, err)
	require.True(t, original.Equal(decoded))

	shares, err := shamir.Split(test.Rand("e2e"), nil, decoded, 3, 5, 0)
	require.NoError(t, err)

	subset := []*shamir.Share{shares[0], shares[2], shares[4]}
	recovered, err := shamir.Reconstruct(nil, subset)
	require.NoError(t, err)
	require.True(t, original.Equal(recovered))

	var out bytes.Buffer
	require.NoError(t, imaging.Encode(&out, recovered))
	roundTripped, err := imaging.Decode(&out, false)
	require.NoError(t, err)
	assert.True(t, original.Equal(roundTripped))
}

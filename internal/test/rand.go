// Package test provides deterministic randomness and fixtures for tests.
package test

import (
	"io"

	"github.com/zeebo/blake3"

	"github.com/shardpix/shardpix/pkg/math/field"
	"github.com/shardpix/shardpix/pkg/math/sample"
	"github.com/shardpix/shardpix/pkg/pixmap"
)

// Rand returns a deterministic stream of bytes derived from seed, by using
// a blake3 XOF as a PRG. Two calls with the same seed return identical
// streams, so splits under test are reproducible.
func Rand(seed string) io.Reader {
	prg := blake3.New()
	_, _ = prg.Write([]byte(seed))
	return prg.Digest()
}

// RandomPixmap builds a pixel array filled with deterministic pseudo-random
// field elements below maxValue+1.
func RandomPixmap(seed string, mode pixmap.Mode, height, width int, maxValue uint32) *pixmap.Pixmap {
	f, err := field.New(nextPrimeAbove(maxValue))
	if err != nil {
		panic(err)
	}
	p := pixmap.New(mode, height, width)
	rand := Rand(seed)
	for i := range p.Values {
		for {
			v := sample.Uniform(rand, f)
			if v <= maxValue {
				p.Values[i] = v
				break
			}
		}
	}
	return p
}

// nextPrimeAbove maps the usual max values onto the candidate moduli; tests
// only ever ask for 4-, 8- or 16-bit ranges.
func nextPrimeAbove(maxValue uint32) uint32 {
	switch {
	case maxValue <= 15:
		return 17
	case maxValue <= 255:
		return 257
	default:
		return 65537
	}
}

// Package sample draws uniform field elements from an io.Reader source of
// randomness. Nothing here owns a randomness source; callers pass one in,
// typically crypto/rand.Reader.
package sample

import (
	"bufio"
	"fmt"
	"io"
	"math/bits"

	"github.com/shardpix/shardpix/pkg/math/field"
)

const maxIterations = 255

// ErrMaxIterations is thrown as a panic when the randomness source keeps
// failing; a broken source is not recoverable by the caller.
var ErrMaxIterations = fmt.Errorf("sample: failed to read randomness after %d attempts", maxIterations)

func mustReadBits(rand io.Reader, buf []byte) {
	for i := 0; i < maxIterations; i++ {
		if _, err := io.ReadFull(rand, buf); err == nil {
			return
		}
	}
	panic(ErrMaxIterations)
}

// Uniform samples a single element of ℤp, uniformly, by masked rejection.
func Uniform(rand io.Reader, f field.Field) uint32 {
	width, mask := widthAndMask(f.Prime())
	var buf [4]byte
	for {
		mustReadBits(rand, buf[:width])
		v := decode(buf[:width]) & mask
		if f.Contains(v) {
			return v
		}
	}
}

// Slice fills out with independent uniform elements of ℤp. Reads are
// buffered, so a single Slice call touches the source far fewer times than
// one Uniform call per element would.
func Slice(rand io.Reader, f field.Field, out []uint32) {
	if len(out) == 0 {
		return
	}
	width, mask := widthAndMask(f.Prime())
	buffered := bufio.NewReaderSize(rand, 4096)
	var buf [4]byte
	for i := range out {
		for {
			mustReadBits(buffered, buf[:width])
			v := decode(buf[:width]) & mask
			if f.Contains(v) {
				out[i] = v
				break
			}
		}
	}
}

// widthAndMask returns the number of random bytes needed per candidate and
// the bit mask that keeps rejection cheap: masked candidates land in
// [0, 2^bits(p−1)), so at least half of them are accepted.
func widthAndMask(prime uint32) (int, uint32) {
	bitLen := bits.Len32(prime - 1)
	return (bitLen + 7) / 8, uint32(1)<<bitLen - 1
}

func decode(buf []byte) uint32 {
	var v uint32
	for _, b := range buf {
		v = v<<8 | uint32(b)
	}
	return v
}

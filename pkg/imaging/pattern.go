package imaging

import (
	"io"

	"github.com/zeebo/blake3"

	"github.com/shardpix/shardpix/pkg/pixmap"
)

// Gradient produces a horizontal intensity ramp covering the full value
// range of the given bit depth. RGB images get a phase-shifted ramp per
// channel so all three channels carry distinct values.
func Gradient(mode pixmap.Mode, height, width, depth int) *pixmap.Pixmap {
	p := pixmap.New(mode, height, width)
	max := maxForDepth(depth)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			base := uint64(x) * uint64(max) / uint64(maxInt(width-1, 1))
			for c := 0; c < p.Shape.Channels; c++ {
				p.Values[p.Offset(y, x, c)] = uint32((base + uint64(c)*uint64(max)/3) % (uint64(max) + 1))
			}
		}
	}
	return p
}

// Checkerboard produces alternating cells of minimum and maximum intensity.
func Checkerboard(mode pixmap.Mode, height, width, depth, cell int) *pixmap.Pixmap {
	if cell < 1 {
		cell = 1
	}
	p := pixmap.New(mode, height, width)
	max := maxForDepth(depth)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := uint32(0)
			if (y/cell+x/cell)%2 == 0 {
				v = max
			}
			for c := 0; c < p.Shape.Channels; c++ {
				p.Values[p.Offset(y, x, c)] = v
			}
		}
	}
	return p
}

// Noise produces a reproducible random image: the seed is expanded through
// a blake3 XOF and masked down to the requested bit depth.
func Noise(seed []byte, mode pixmap.Mode, height, width, depth int) *pixmap.Pixmap {
	prg := blake3.New()
	_, _ = prg.Write(seed)
	stream := prg.Digest()

	p := pixmap.New(mode, height, width)
	max := maxForDepth(depth)
	buf := make([]byte, 2)
	for i := range p.Values {
		if _, err := io.ReadFull(stream, buf); err != nil {
			panic("imaging: blake3 stream failed: " + err.Error())
		}
		p.Values[i] = (uint32(buf[0])<<8 | uint32(buf[1])) & max
	}
	return p
}

// maxForDepth returns the largest sample value of a bit depth, capped at 16
// bits which is the deepest an encoded image can carry.
func maxForDepth(depth int) uint32 {
	if depth < 1 {
		depth = 1
	}
	if depth > 16 {
		depth = 16
	}
	return uint32(1)<<depth - 1
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

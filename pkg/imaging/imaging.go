// Package imaging converts between encoded images and the pixmap contract
// consumed by the sharing engine, and renders shares for visual inspection.
//
// Decoding accepts PNG and JPEG. Encoding always produces PNG: the scheme
// reconstructs images exactly, and a lossy envelope would throw that away.
package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"

	_ "image/jpeg"

	"github.com/shardpix/shardpix/pkg/pixmap"
	"github.com/shardpix/shardpix/pkg/shamir"
)

// ErrShapeMismatch indicates two pixel arrays that cannot be compared.
var ErrShapeMismatch = errors.New("imaging: mode or shape mismatch")

// Decode reads one PNG or JPEG image from r. Grayscale sources stay
// grayscale (8- or 16-bit); everything else becomes 8-bit RGB, or 8-bit
// grayscale when forceGray is set.
func Decode(r io.Reader, forceGray bool) (*pixmap.Pixmap, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("imaging: decoding image: %w", err)
	}
	return fromImage(img, forceGray), nil
}

// DecodeFile reads one image from path. See Decode.
func DecodeFile(path string, forceGray bool) (*pixmap.Pixmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imaging: %w", err)
	}
	defer f.Close()
	return Decode(f, forceGray)
}

func fromImage(img image.Image, forceGray bool) *pixmap.Pixmap {
	bounds := img.Bounds()
	h, w := bounds.Dy(), bounds.Dx()

	switch src := img.(type) {
	case *image.Gray:
		p := pixmap.New(pixmap.Grayscale, h, w)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				p.Values[p.Offset(y, x, 0)] = uint32(src.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
			}
		}
		return p
	case *image.Gray16:
		p := pixmap.New(pixmap.Grayscale, h, w)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				p.Values[p.Offset(y, x, 0)] = uint32(src.Gray16At(bounds.Min.X+x, bounds.Min.Y+y).Y)
			}
		}
		return p
	}

	if forceGray {
		p := pixmap.New(pixmap.Grayscale, h, w)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				g := color.GrayModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
				p.Values[p.Offset(y, x, 0)] = uint32(g.Y)
			}
		}
		return p
	}

	p := pixmap.New(pixmap.RGB, h, w)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			i := p.Offset(y, x, 0)
			p.Values[i] = uint32(r >> 8)
			p.Values[i+1] = uint32(g >> 8)
			p.Values[i+2] = uint32(b >> 8)
		}
	}
	return p
}

// Encode writes p to w as PNG. Grayscale arrays with 16-bit values become
// Gray16; everything else is clamped to 8 bits per sample.
func Encode(w io.Writer, p *pixmap.Pixmap) error {
	img, err := toImage(p)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("imaging: encoding png: %w", err)
	}
	return nil
}

// EncodeFile writes p to path as PNG. See Encode.
func EncodeFile(path string, p *pixmap.Pixmap) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("imaging: %w", err)
	}
	if err := Encode(f, p); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func toImage(p *pixmap.Pixmap) (image.Image, error) {
	h, w := p.Shape.Height, p.Shape.Width
	switch p.Mode {
	case pixmap.Grayscale:
		if p.BitDepth() > 8 {
			img := image.NewGray16(image.Rect(0, 0, w, h))
			for y := 0; y < h; y++ {
				for x := 0; x < w; x++ {
					img.SetGray16(x, y, color.Gray16{Y: clamp16(p.Values[p.Offset(y, x, 0)])})
				}
			}
			return img, nil
		}
		img := image.NewGray(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				img.SetGray(x, y, color.Gray{Y: clamp8(p.Values[p.Offset(y, x, 0)])})
			}
		}
		return img, nil
	case pixmap.RGB:
		img := image.NewNRGBA(image.Rect(0, 0, w, h))
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				i := p.Offset(y, x, 0)
				img.SetNRGBA(x, y, color.NRGBA{
					R: clamp8(p.Values[i]),
					G: clamp8(p.Values[i+1]),
					B: clamp8(p.Values[i+2]),
					A: 255,
				})
			}
		}
		return img, nil
	default:
		return nil, fmt.Errorf("imaging: %w %d", pixmap.ErrUnknownMode, p.Mode)
	}
}

func clamp8(v uint32) uint8 {
	if v > 255 {
		return 255
	}
	return uint8(v)
}

func clamp16(v uint32) uint16 {
	if v > 65535 {
		return 65535
	}
	return uint16(v)
}

// RenderShare normalizes a share's field values from [0, prime−1] down to
// 8 bits so the share can be written out and looked at. The result is
// expected to look like uniform noise.
func RenderShare(s *shamir.Share) *pixmap.Pixmap {
	p := s.Pixmap().Clone()
	span := uint64(s.Prime) - 1
	if span == 0 {
		span = 1
	}
	for i, v := range p.Values {
		p.Values[i] = uint32(uint64(v) * 255 / span)
	}
	return p
}

// Diff summarizes a pixelwise comparison.
type Diff struct {
	// Positions is the number of values compared.
	Positions int
	// Mismatched counts positions whose values differ.
	Mismatched int
	// MaxDelta is the largest absolute difference seen.
	MaxDelta uint32
}

// Identical reports whether no position differed.
func (d Diff) Identical() bool {
	return d.Mismatched == 0
}

// Compare performs an exact pixelwise comparison of two arrays with the
// same mode and shape.
func Compare(a, b *pixmap.Pixmap) (Diff, error) {
	if a.Mode != b.Mode || a.Shape != b.Shape {
		return Diff{}, fmt.Errorf("%w: %v/%v vs %v/%v", ErrShapeMismatch, a.Mode, a.Shape, b.Mode, b.Shape)
	}
	d := Diff{Positions: len(a.Values)}
	for i, v := range a.Values {
		other := b.Values[i]
		if v == other {
			continue
		}
		d.Mismatched++
		delta := v - other
		if other > v {
			delta = other - v
		}
		if delta > d.MaxDelta {
			d.MaxDelta = delta
		}
	}
	return d, nil
}

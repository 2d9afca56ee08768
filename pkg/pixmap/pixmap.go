// Package pixmap defines the integer pixel array contract shared by the
// sharing engine and its collaborators: a flat value slice with a declared
// mode and channel-aware shape.
package pixmap

import (
	"errors"
	"fmt"
)

// Mode declares the channel layout of a pixel array.
type Mode uint8

const (
	// Grayscale images carry one channel per pixel.
	Grayscale Mode = iota + 1
	// RGB images carry a trailing channel axis of size 3.
	RGB
)

// ErrUnknownMode indicates a mode value outside the known enum.
var ErrUnknownMode = errors.New("pixmap: unknown mode")

func (m Mode) String() string {
	switch m {
	case Grayscale:
		return "grayscale"
	case RGB:
		return "rgb"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// Channels returns the channel count implied by the mode.
func (m Mode) Channels() int {
	switch m {
	case Grayscale:
		return 1
	case RGB:
		return 3
	default:
		return 0
	}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	return m == Grayscale || m == RGB
}

// ParseMode converts the textual form back into a Mode.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "grayscale":
		return Grayscale, nil
	case "rgb":
		return RGB, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Shape is the ordered, channel-aware dimension tuple of a pixel array.
type Shape struct {
	Height, Width, Channels int
}

// Count is the number of values a conforming array holds.
func (s Shape) Count() int {
	return s.Height * s.Width * s.Channels
}

func (s Shape) String() string {
	if s.Channels == 1 {
		return fmt.Sprintf("%dx%d", s.Height, s.Width)
	}
	return fmt.Sprintf("%dx%dx%d", s.Height, s.Width, s.Channels)
}

// Pixmap is an integer pixel array in row-major, channel-interleaved order.
type Pixmap struct {
	Mode   Mode
	Shape  Shape
	Values []uint32
}

// New allocates a zero pixmap of the given mode and dimensions.
func New(mode Mode, height, width int) *Pixmap {
	shape := Shape{Height: height, Width: width, Channels: mode.Channels()}
	return &Pixmap{
		Mode:   mode,
		Shape:  shape,
		Values: make([]uint32, shape.Count()),
	}
}

// Offset returns the flat index of (row y, column x, channel c).
func (p *Pixmap) Offset(y, x, c int) int {
	return (y*p.Shape.Width+x)*p.Shape.Channels + c
}

// Max returns the largest value in the array, 0 for an empty one.
func (p *Pixmap) Max() uint32 {
	var max uint32
	for _, v := range p.Values {
		if v > max {
			max = v
		}
	}
	return max
}

// BitDepth buckets the value range into the usual sample depths:
// 4 for values up to 15, then 8, 16 and 32.
func (p *Pixmap) BitDepth() int {
	switch max := p.Max(); {
	case max <= 15:
		return 4
	case max <= 255:
		return 8
	case max <= 65535:
		return 16
	default:
		return 32
	}
}

// Clone returns a deep copy.
func (p *Pixmap) Clone() *Pixmap {
	values := make([]uint32, len(p.Values))
	copy(values, p.Values)
	return &Pixmap{Mode: p.Mode, Shape: p.Shape, Values: values}
}

// Equal reports whether q has the same mode, shape and values.
func (p *Pixmap) Equal(q *Pixmap) bool {
	if p.Mode != q.Mode || p.Shape != q.Shape || len(p.Values) != len(q.Values) {
		return false
	}
	for i, v := range p.Values {
		if v != q.Values[i] {
			return false
		}
	}
	return true
}

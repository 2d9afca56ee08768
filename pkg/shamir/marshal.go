package shamir

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/shardpix/shardpix/pkg/pixmap"
)

// shareMarshal mirrors Share for serialization. A uint32 value slice is wide
// enough for every candidate prime up to 65537.
type shareMarshal struct {
	X      uint32
	Prime  uint32
	Mode   uint8
	Height int32
	Width  int32
	Values []uint32
}

// MarshalBinary encodes the share as CBOR. The channel count is implied by
// the mode and not stored separately.
func (s *Share) MarshalBinary() ([]byte, error) {
	if !s.Mode.Valid() {
		return nil, fmt.Errorf("shamir: cannot marshal share with %w %d", pixmap.ErrUnknownMode, s.Mode)
	}
	return cbor.Marshal(&shareMarshal{
		X:      s.X,
		Prime:  s.Prime,
		Mode:   uint8(s.Mode),
		Height: int32(s.Shape.Height),
		Width:  int32(s.Shape.Width),
		Values: s.Values,
	})
}

// UnmarshalBinary decodes a share from CBOR and checks that the metadata is
// internally consistent: known mode, value count matching the shape.
func (s *Share) UnmarshalBinary(data []byte) error {
	var sm shareMarshal
	if err := cbor.Unmarshal(data, &sm); err != nil {
		return fmt.Errorf("shamir: decoding share: %w", err)
	}
	mode := pixmap.Mode(sm.Mode)
	if !mode.Valid() {
		return fmt.Errorf("shamir: decoding share: %w %d", pixmap.ErrUnknownMode, sm.Mode)
	}
	shape := pixmap.Shape{
		Height:   int(sm.Height),
		Width:    int(sm.Width),
		Channels: mode.Channels(),
	}
	if shape.Height < 0 || shape.Width < 0 || len(sm.Values) != shape.Count() {
		return fmt.Errorf("shamir: decoding share: %d values do not fit shape %v", len(sm.Values), shape)
	}
	s.X = sm.X
	s.Prime = sm.Prime
	s.Mode = mode
	s.Shape = shape
	s.Values = sm.Values
	return nil
}

// Package sharefile reads and writes the on-disk share container. A share
// file is fully self-describing: a fixed magic, a format version, and the
// CBOR-encoded share with all of its metadata. Filenames carry no meaning.
package sharefile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/shardpix/shardpix/pkg/shamir"
)

// Ext is the conventional share file extension. Purely cosmetic; readers
// never rely on it.
const Ext = ".pxs"

var magic = []byte("PXSH")

const version = 1

var (
	// ErrBadMagic indicates the file does not start with the share container magic.
	ErrBadMagic = errors.New("sharefile: not a share file")

	// ErrVersion indicates a container format this build does not know.
	ErrVersion = errors.New("sharefile: unsupported share file version")
)

// Write writes one share to w in container format.
func Write(w io.Writer, s *shamir.Share) error {
	body, err := s.MarshalBinary()
	if err != nil {
		return err
	}
	header := append(append([]byte{}, magic...), version)
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("sharefile: writing header: %w", err)
	}
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("sharefile: writing body: %w", err)
	}
	return nil
}

// Read reads one share in container format from r.
func Read(r io.Reader) (*shamir.Share, error) {
	header := make([]byte, len(magic)+1)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("sharefile: reading header: %w", err)
	}
	if !bytes.Equal(header[:len(magic)], magic) {
		return nil, ErrBadMagic
	}
	if header[len(magic)] != version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, header[len(magic)])
	}
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("sharefile: reading body: %w", err)
	}
	var s shamir.Share
	if err := s.UnmarshalBinary(body); err != nil {
		return nil, err
	}
	return &s, nil
}

// WriteFile writes one share to path, creating or truncating it.
func WriteFile(path string, s *shamir.Share) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("sharefile: %w", err)
	}
	if err := Write(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadFile reads one share from path.
func ReadFile(path string) (*shamir.Share, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("sharefile: %w", err)
	}
	defer f.Close()
	s, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%w (%s)", err, path)
	}
	return s, nil
}

// ReadAll reads every path into a share set, in the given order.
func ReadAll(paths []string) ([]*shamir.Share, error) {
	shares := make([]*shamir.Share, 0, len(paths))
	for _, path := range paths {
		s, err := ReadFile(path)
		if err != nil {
			return nil, err
		}
		shares = append(shares, s)
	}
	return shares, nil
}

package sharefile_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shardpix/shardpix/internal/test"
	"github.com/shardpix/shardpix/pkg/pixmap"
	"github.com/shardpix/shardpix/pkg/shamir"
	"github.com/shardpix/shardpix/pkg/sharefile"
)

func makeShares(t *testing.T, k, n int) []*shamir.Share {
	t.Helper()
	secret := test.RandomPixmap("file", pixmap.Grayscale, 4, 4, 255)
	shares, err := shamir.Split(test.Rand("file"), nil, secret, k, n, 0)
	require.NoError(t, err)
	return shares
}

func TestWriteReadRoundTrip(t *testing.T) {
	shares := makeShares(t, 2, 3)

	var buf bytes.Buffer
	require.NoError(t, sharefile.Write(&buf, shares[0]))

	got, err := sharefile.Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, shares[0], got)
}

func TestFileRoundTrip(t *testing.T) {
	shares := makeShares(t, 3, 5)
	dir := t.TempDir()

	// filenames deliberately say nothing about the share inside
	paths := make([]string, len(shares))
	for i, s := range shares {
		paths[i] = filepath.Join(dir, string(rune('a'+i))+sharefile.Ext)
		require.NoError(t, sharefile.WriteFile(paths[i], s))
	}

	loaded, err := sharefile.ReadAll(paths[:3])
	require.NoError(t, err)
	require.Len(t, loaded, 3)
	for i, s := range loaded {
		assert.Equal(t, shares[i].X, s.X)
		assert.Equal(t, shares[i].Values, s.Values)
	}
}

func TestReadRejectsBadMagic(t *testing.T) {
	_, err := sharefile.Read(bytes.NewReader([]byte("JUNKJUNKJUNK")))
	assert.ErrorIs(t, err, sharefile.ErrBadMagic)
}

func TestReadRejectsUnknownVersion(t *testing.T) {
	_, err := sharefile.Read(bytes.NewReader([]byte{'P', 'X', 'S', 'H', 99}))
	assert.ErrorIs(t, err, sharefile.ErrVersion)
}

func TestReadRejectsTruncatedFile(t *testing.T) {
	_, err := sharefile.Read(bytes.NewReader([]byte{'P', 'X'}))
	assert.Error(t, err)
}

func TestReadAllStopsAtFirstError(t *testing.T) {
	shares := makeShares(t, 2, 2)
	dir := t.TempDir()

	good := filepath.Join(dir, "good"+sharefile.Ext)
	require.NoError(t, sharefile.WriteFile(good, shares[0]))
	bad := filepath.Join(dir, "bad"+sharefile.Ext)
	require.NoError(t, os.WriteFile(bad, []byte("garbage bytes"), 0o644))

	_, err := sharefile.ReadAll([]string{good, bad})
	assert.ErrorIs(t, err, sharefile.ErrBadMagic)
}

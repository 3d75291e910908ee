package storage

import (
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_PutRead(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	path := filepath.Join("receipts", "0b3c", "1714816800-gofpdf.pdf")
	rel, err := s.Put([]byte("v1"), path)
	require.NoError(t, err)
	assert.Equal(t, path, rel)

	_, err = s.Put([]byte("v2"), rel)
	require.NoError(t, err)
	data, err := s.Read(rel)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))
}

func TestLocalStorage_ReadMissing(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = s.Read(filepath.Join("receipts", "none.pdf"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLocalStorage_RejectsEscapingPaths(t *testing.T) {
	s, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	for _, p := range []string{"../outside.pdf", "a/../../outside.pdf", "/etc/passwd", ""} {
		_, err := s.Put([]byte("x"), p)
		assert.ErrorIs(t, err, ErrInvalidPath, p)
		_, err = s.Read(p)
		assert.ErrorIs(t, err, ErrInvalidPath, p)
	}
}

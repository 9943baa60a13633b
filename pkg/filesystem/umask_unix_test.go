//go:build unix

package filesystem_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/pkgactions/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithUmask(t *testing.T) {
	before := filesystem.CurrentUmask()
	root := t.TempDir()
	dir := filepath.Join(root, "cache")

	err := filesystem.WithUmask(0, func() error {
		return os.Mkdir(dir, 0777)
	})
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0777), info.Mode().Perm())
	assert.Equal(t, before, filesystem.CurrentUmask())
}

func TestWithUmask_RestoresOnError(t *testing.T) {
	before := filesystem.CurrentUmask()
	boom := errors.New("mkdir failed")

	err := filesystem.WithUmask(0, func() error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, before, filesystem.CurrentUmask())
}

func TestWithUmask_RestoresOnPanic(t *testing.T) {
	before := filesystem.CurrentUmask()

	assert.Panics(t, func() {
		_ = filesystem.WithUmask(0, func() error { panic("boom") })
	})
	assert.Equal(t, before, filesystem.CurrentUmask())
}

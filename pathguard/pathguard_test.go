package pathguard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainment(t *testing.T) {
	root := t.TempDir()
	g, err := New(root, nil, false)
	assert.NoError(t, err)

	full, err := g.Authorize("/a/b/c.txt")
	assert.NoError(t, err)
	assert.Equal(t, filepath.Join(g.Root(), "a", "b", "c.txt"), full)

	_, err = g.Authorize("/../outside")
	assert.NoError(t, err) // Clean folds the traversal back to /outside
	_, err = g.Authorize("/a/../../outside")
	assert.NoError(t, err)

	full, err = g.Authorize("..")
	assert.NoError(t, err)
	assert.Equal(t, g.Root(), full)
}

func TestSymlinkEscape(t *testing.T) {
	base := t.TempDir()
	root := filepath.Join(base, "root")
	outside := filepath.Join(base, "outside")
	assert.NoError(t, os.Mkdir(root, 0755))
	assert.NoError(t, os.Mkdir(outside, 0755))
	assert.NoError(t, os.Symlink(outside, filepath.Join(root, "leak")))

	g, err := New(root, nil, false)
	assert.NoError(t, err)
	_, err = g.Authorize("/leak/data.txt")
	assert.ErrorIs(t, err, ErrEscapesRoot)
	_, err = g.Authorize("/safe/data.txt")
	assert.NoError(t, err)
}

func TestHiddenItems(t *testing.T) {
	root := t.TempDir()
	g, err := New(root, nil, false)
	assert.NoError(t, err)
	_, err = g.Authorize("/.secret")
	assert.ErrorIs(t, err, ErrHiddenItem)
	_, err = g.Authorize("/a/.hidden/b.txt")
	assert.ErrorIs(t, err, ErrHiddenItem)

	g, err = New(root, nil, true)
	assert.NoError(t, err)
	_, err = g.Authorize("/.secret")
	assert.NoError(t, err)
}

func TestExtensionAllowList(t *testing.T) {
	root := t.TempDir()
	g, err := New(root, []string{".txt", "PDF"}, false)
	assert.NoError(t, err)

	_, err = g.Authorize("/doc.txt")
	assert.NoError(t, err)
	_, err = g.Authorize("/doc.PDF")
	assert.NoError(t, err)
	_, err = g.Authorize("/doc.exe")
	assert.ErrorIs(t, err, ErrExtensionNotAllowed)
	// extension-less names pass, collections have no extension
	_, err = g.Authorize("/somedir")
	assert.NoError(t, err)
	// only the final component is checked
	_, err = g.Authorize("/a.exe/doc.txt")
	assert.NoError(t, err)
}

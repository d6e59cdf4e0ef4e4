package fsmgr

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageAndPromote(t *testing.T) {
	ctx := context.Background()
	mgr := NewFileManager()
	root := t.TempDir()
	dst := filepath.Join(root, "a.txt")

	tmp, err := mgr.StageFile(ctx, dst, strings.NewReader("hello"))
	assert.NoError(t, err)
	assert.NotEqual(t, dst, tmp)
	// staging never touches the destination
	_, err = os.Stat(dst)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, mgr.PromoteFile(ctx, tmp, dst))
	raw, err := os.ReadFile(dst)
	assert.NoError(t, err)
	assert.Equal(t, "hello", string(raw))
	_, err = os.Stat(tmp)
	assert.True(t, os.IsNotExist(err))
}

func TestStageAndDiscard(t *testing.T) {
	ctx := context.Background()
	mgr := NewFileManager()
	root := t.TempDir()
	dst := filepath.Join(root, "a.txt")

	tmp, err := mgr.StageFile(ctx, dst, strings.NewReader("junk"))
	assert.NoError(t, err)
	assert.NoError(t, mgr.DiscardFile(ctx, tmp))
	_, err = os.Stat(tmp)
	assert.True(t, os.IsNotExist(err))
}

func TestStatAndList(t *testing.T) {
	ctx := context.Background()
	mgr := NewFileManager()
	root := t.TempDir()
	assert.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("12345"), 0644))
	assert.NoError(t, mgr.Mkdir(ctx, filepath.Join(root, "sub")))

	item, err := mgr.Stat(ctx, filepath.Join(root, "a.txt"))
	assert.NoError(t, err)
	assert.Equal(t, "a.txt", item.Name)
	assert.Equal(t, int64(5), item.Size)
	assert.False(t, item.IsDir)
	assert.NotZero(t, item.Mtime)

	items, err := mgr.List(ctx, root)
	assert.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestCopyTree(t *testing.T) {
	ctx := context.Background()
	mgr := NewFileManager()
	root := t.TempDir()
	src := filepath.Join(root, "src")
	assert.NoError(t, os.MkdirAll(filepath.Join(src, "deep"), 0755))
	assert.NoError(t, os.WriteFile(filepath.Join(src, "a.txt"), []byte("aa"), 0644))
	assert.NoError(t, os.WriteFile(filepath.Join(src, "deep", "b.txt"), []byte("bb"), 0644))

	dst := filepath.Join(root, "dst")
	assert.NoError(t, mgr.Copy(ctx, src, dst))
	raw, err := os.ReadFile(filepath.Join(dst, "deep", "b.txt"))
	assert.NoError(t, err)
	assert.Equal(t, "bb", string(raw))
	// source stays put
	_, err = os.Stat(filepath.Join(src, "a.txt"))
	assert.NoError(t, err)
}

func TestMove(t *testing.T) {
	ctx := context.Background()
	mgr := NewFileManager()
	root := t.TempDir()
	src := filepath.Join(root, "a.txt")
	dst := filepath.Join(root, "b.txt")
	assert.NoError(t, os.WriteFile(src, []byte("data"), 0644))

	assert.NoError(t, mgr.Move(ctx, src, dst))
	_, err := os.Stat(src)
	assert.True(t, os.IsNotExist(err))
	raw, err := os.ReadFile(dst)
	assert.NoError(t, err)
	assert.Equal(t, "data", string(raw))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	mgr := NewFileManager()
	root := t.TempDir()
	name := filepath.Join(root, "a.txt")
	assert.NoError(t, os.WriteFile(name, []byte("0123456789"), 0644))

	f, err := mgr.Open(ctx, name)
	assert.NoError(t, err)
	defer f.Close()
	_, err = f.Seek(5, io.SeekStart)
	assert.NoError(t, err)
	raw, err := io.ReadAll(f)
	assert.NoError(t, err)
	assert.Equal(t, "56789", string(raw))
}

package fsmgr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/davfile/davfile/entity"
	"github.com/google/uuid"
)

type localFileManager struct{}

func NewFileManager() IFileManager {
	return &localFileManager{}
}

func (m *localFileManager) Stat(ctx context.Context, name string) (*entity.ResourceItem, error) {
	info, err := os.Stat(name)
	if err != nil {
		return nil, err
	}
	return infoToItem(info), nil
}

func (m *localFileManager) List(ctx context.Context, dir string) ([]*entity.ResourceItem, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	rs := make([]*entity.ResourceItem, 0, len(ents))
	for _, ent := range ents {
		info, err := ent.Info()
		if err != nil {
			// entry vanished between ReadDir and Info
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, err
		}
		rs = append(rs, infoToItem(info))
	}
	return rs, nil
}

func (m *localFileManager) Open(ctx context.Context, name string) (io.ReadSeekCloser, error) {
	return os.Open(name)
}

func (m *localFileManager) StageFile(ctx context.Context, dst string, r io.Reader) (string, error) {
	tmp := dst + "." + uuid.NewString() + ".upload"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("create staging file failed, err:%w", err)
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", fmt.Errorf("write staging file failed, err:%w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("close staging file failed, err:%w", err)
	}
	return tmp, nil
}

func (m *localFileManager) PromoteFile(ctx context.Context, tmp string, dst string) error {
	return os.Rename(tmp, dst)
}

func (m *localFileManager) DiscardFile(ctx context.Context, tmp string) error {
	return os.Remove(tmp)
}

func (m *localFileManager) Mkdir(ctx context.Context, dir string) error {
	return os.Mkdir(dir, 0755)
}

func (m *localFileManager) Remove(ctx context.Context, name string) error {
	return os.RemoveAll(name)
}

func (m *localFileManager) Copy(ctx context.Context, src string, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	return copyTree(src, dst, info)
}

// Move renames src onto dst and falls back to copy-then-delete when
// the rename crosses a volume boundary. A crash between the two steps
// leaves both copies present rather than losing data.
func (m *localFileManager) Move(ctx context.Context, src string, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}
	if err := m.Copy(ctx, src, dst); err != nil {
		return fmt.Errorf("cross-volume copy failed, err:%w", err)
	}
	return os.RemoveAll(src)
}

func copyTree(src string, dst string, info fs.FileInfo) error {
	if info.IsDir() {
		if err := os.MkdirAll(dst, info.Mode().Perm()); err != nil {
			return err
		}
		ents, err := os.ReadDir(src)
		if err != nil {
			return err
		}
		for _, ent := range ents {
			sub, err := ent.Info()
			if err != nil {
				return err
			}
			if err := copyTree(filepath.Join(src, ent.Name()), filepath.Join(dst, ent.Name()), sub); err != nil {
				return err
			}
		}
		return nil
	}
	return copyFile(src, dst, info)
}

func copyFile(src string, dst string, info fs.FileInfo) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	return os.Chtimes(dst, info.ModTime(), info.ModTime())
}

func infoToItem(info fs.FileInfo) *entity.ResourceItem {
	return &entity.ResourceItem{
		Name:  info.Name(),
		Size:  info.Size(),
		Mode:  uint32(info.Mode().Perm()),
		Ctime: creationTimeOf(info),
		Mtime: info.ModTime().UnixMilli(),
		IsDir: info.IsDir(),
	}
}

// creationTimeOf falls back to the modification time, POSIX has no
// portable birth time.
func creationTimeOf(info fs.FileInfo) int64 {
	return info.ModTime().UnixMilli()
}

package fsmgr

import (
	"context"
	"io"

	"github.com/davfile/davfile/entity"
)

// IFileManager is the storage layer of the server. Paths are absolute
// filesystem paths already validated by the security gate. All calls
// are synchronous and may block the calling worker.
type IFileManager interface {
	Stat(ctx context.Context, name string) (*entity.ResourceItem, error)
	List(ctx context.Context, dir string) ([]*entity.ResourceItem, error)
	Open(ctx context.Context, name string) (io.ReadSeekCloser, error)
	// StageFile spools r into a temporary file next to dst so the
	// commit is an atomic same-volume rename.
	StageFile(ctx context.Context, dst string, r io.Reader) (string, error)
	PromoteFile(ctx context.Context, tmp string, dst string) error
	DiscardFile(ctx context.Context, tmp string) error
	Mkdir(ctx context.Context, dir string) error
	Remove(ctx context.Context, name string) error
	Copy(ctx context.Context, src string, dst string) error
	Move(ctx context.Context, src string, dst string) error
}

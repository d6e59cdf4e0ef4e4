package client

import (
	"context"
	"io"
	"time"
)

// EntryInfo describes one remote resource as reported by the server.
type EntryInfo struct {
	Path        string
	Name        string
	Size        int64
	IsDir       bool
	ContentType string
	Mtime       time.Time
}

type IClient interface {
	Stat(ctx context.Context, remote string) (*EntryInfo, error)
	List(ctx context.Context, remote string) ([]*EntryInfo, error)
	Get(ctx context.Context, remote string) (io.ReadCloser, error)
	Put(ctx context.Context, remote string, r io.Reader) error
	Delete(ctx context.Context, remote string) error
	Mkcol(ctx context.Context, remote string) error
	Move(ctx context.Context, src string, dst string, overwrite bool) error
	Copy(ctx context.Context, src string, dst string, overwrite bool) error
}

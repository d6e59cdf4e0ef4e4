package davclient

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"

	"github.com/davfile/davfile/davclient/client"

	"github.com/dustin/go-humanize"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/retry"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DavClient layers retry and parallel tree transfer on top of the raw
// protocol client.
type DavClient struct {
	c *config
}

func New(opts ...Option) *DavClient {
	c := &config{
		Thread: 4,
	}
	for _, opt := range opts {
		opt(c)
	}
	return &DavClient{c: c}
}

func (c *DavClient) Raw() client.IClient {
	return c.c.Client
}

// UploadFile puts one local file, reopening it on each retry so a
// half-sent body never poisons the next attempt.
func (c *DavClient) UploadFile(ctx context.Context, src string, remote string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	start := time.Now()
	if err := retry.RetryDo(ctx, 3, 2*time.Second, func(ctx context.Context) error {
		f, err := os.Open(src)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := c.c.Client.Put(ctx, remote, f); err != nil {
			logutil.GetLogger(ctx).Error("put file failed, wait retry", zap.Error(err), zap.String("remote", remote))
			return err
		}
		return nil
	}); err != nil {
		return err
	}
	cost := time.Since(start)
	speed := "-"
	if cost > 0 {
		speed = humanize.IBytes(uint64(float64(info.Size()) * 1000 / float64(int64(cost/time.Millisecond)+1)))
	}
	logutil.GetLogger(ctx).Debug("upload file finish", zap.String("remote", remote),
		zap.Duration("cost", cost), zap.String("speed", speed+"/s"))
	return nil
}

// UploadTree mirrors a local directory to remote. Collections are
// created depth first, then files go up in parallel.
func (c *DavClient) UploadTree(ctx context.Context, srcDir string, remoteDir string) error {
	var dirs []string
	var files []string
	err := filepath.WalkDir(srcDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			dirs = append(dirs, p)
			return nil
		}
		files = append(files, p)
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk local tree failed, dir:%s, err:%w", srcDir, err)
	}
	sort.Strings(dirs)
	for _, dir := range dirs {
		remote, err := c.remotePathOf(srcDir, remoteDir, dir)
		if err != nil {
			return err
		}
		if err := c.c.Client.Mkcol(ctx, remote); err != nil {
			return fmt.Errorf("mkcol failed, remote:%s, err:%w", remote, err)
		}
	}
	eg, subctx := errgroup.WithContext(ctx)
	eg.SetLimit(c.c.Thread)
	logutil.GetLogger(ctx).Debug("start upload tree", zap.Int("dir_cnt", len(dirs)), zap.Int("file_cnt", len(files)))
	for _, file := range files {
		file := file
		remote, err := c.remotePathOf(srcDir, remoteDir, file)
		if err != nil {
			return err
		}
		eg.Go(func() error {
			return c.UploadFile(subctx, file, remote)
		})
	}
	if err := eg.Wait(); err != nil {
		logutil.GetLogger(ctx).Error("upload tree failed", zap.Error(err))
		return err
	}
	return nil
}

func (c *DavClient) remotePathOf(srcDir string, remoteDir string, local string) (string, error) {
	rel, err := filepath.Rel(srcDir, local)
	if err != nil {
		return "", fmt.Errorf("resolve relative path failed, err:%w", err)
	}
	return path.Join(remoteDir, filepath.ToSlash(rel)), nil
}

// DownloadFile fetches one remote file into dst.
func (c *DavClient) DownloadFile(ctx context.Context, remote string, dst string) error {
	r, err := c.c.Client.Get(ctx, remote)
	if err != nil {
		return err
	}
	defer r.Close()
	f, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer f.Close()
	n, err := io.Copy(f, r)
	if err != nil {
		return fmt.Errorf("write local file failed, dst:%s, err:%w", dst, err)
	}
	logutil.GetLogger(ctx).Debug("download file finish", zap.String("remote", remote),
		zap.String("size", humanize.IBytes(uint64(n))))
	return nil
}

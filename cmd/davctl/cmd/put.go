package cmd

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

type putArgs struct {
	file   string
	remote string
}

func NewPutCmd(c *Context) *cobra.Command {
	args := &putArgs{}
	ctx := context.Background()
	subc := &cobra.Command{
		Use:   "put",
		Short: "Upload a file or directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return onRunPut(ctx, c, args)
		},
	}
	subc.PersistentFlags().StringVarP(&args.file, "file", "f", "", "local file or directory to upload")
	subc.PersistentFlags().StringVarP(&args.remote, "remote", "r", "", "remote destination, defaults to /<basename>")
	return subc
}

func onRunPut(ctx context.Context, c *Context, args *putArgs) error {
	if len(args.file) == 0 {
		return fmt.Errorf("no upload file found")
	}
	info, err := os.Stat(args.file)
	if err != nil {
		return fmt.Errorf("stat local file failed, err:%w", err)
	}
	remote := args.remote
	if len(remote) == 0 {
		remote = path.Join("/", filepath.Base(args.file))
	}
	start := time.Now()
	if info.IsDir() {
		err = c.DAV.UploadTree(ctx, args.file, remote)
	} else {
		err = c.DAV.UploadFile(ctx, args.file, remote)
	}
	if err != nil {
		return fmt.Errorf("upload failed, err:%w", err)
	}
	logutil.GetLogger(ctx).Info("upload succ", zap.String("remote", remote), zap.Duration("cost", time.Since(start)))
	return nil
}

func init() {
	register(NewPutCmd)
}

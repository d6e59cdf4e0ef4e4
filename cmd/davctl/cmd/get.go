package cmd

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

type getArgs struct {
	remote string
	out    string
}

func NewGetCmd(c *Context) *cobra.Command {
	args := &getArgs{}
	ctx := context.Background()
	subc := &cobra.Command{
		Use:   "get",
		Short: "Download a file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return onRunGet(ctx, c, args)
		},
	}
	subc.PersistentFlags().StringVarP(&args.remote, "remote", "r", "", "remote file to download")
	subc.PersistentFlags().StringVarP(&args.out, "out", "o", "", "local destination, defaults to ./<basename>")
	return subc
}

func onRunGet(ctx context.Context, c *Context, args *getArgs) error {
	if len(args.remote) == 0 {
		return fmt.Errorf("no remote file found")
	}
	out := args.out
	if len(out) == 0 {
		out = path.Base(args.remote)
	}
	start := time.Now()
	if err := c.DAV.DownloadFile(ctx, args.remote, out); err != nil {
		return fmt.Errorf("download failed, err:%w", err)
	}
	logutil.GetLogger(ctx).Info("download succ", zap.String("out", out), zap.Duration("cost", time.Since(start)))
	return nil
}

func init() {
	register(NewGetCmd)
}

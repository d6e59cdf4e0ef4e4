package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

func NewCpCmd(c *Context) *cobra.Command {
	return newRebindCmd(c, "cp", "Copy a remote file or collection", onRunCp)
}

func onRunCp(ctx context.Context, c *Context, args *rebindArgs) error {
	if err := c.DAV.Raw().Copy(ctx, args.src, args.dst, args.overwrite); err != nil {
		return fmt.Errorf("copy failed, err:%w", err)
	}
	logutil.GetLogger(ctx).Info("copy succ", zap.String("src", args.src), zap.String("dst", args.dst))
	return nil
}

func init() {
	register(NewCpCmd)
}

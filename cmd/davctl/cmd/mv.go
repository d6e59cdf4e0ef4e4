package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

type rebindArgs struct {
	src       string
	dst       string
	overwrite bool
}

func newRebindCmd(c *Context, use string, short string,
	run func(ctx context.Context, c *Context, args *rebindArgs) error) *cobra.Command {

	args := &rebindArgs{}
	ctx := context.Background()
	subc := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(args.src) == 0 || len(args.dst) == 0 {
				return fmt.Errorf("both src and dst are required")
			}
			return run(ctx, c, args)
		},
	}
	subc.PersistentFlags().StringVarP(&args.src, "src", "s", "", "remote source path")
	subc.PersistentFlags().StringVarP(&args.dst, "dst", "d", "", "remote destination path")
	subc.PersistentFlags().BoolVarP(&args.overwrite, "overwrite", "w", false, "overwrite existing destination")
	return subc
}

func NewMvCmd(c *Context) *cobra.Command {
	return newRebindCmd(c, "mv", "Move a remote file or collection", onRunMv)
}

func onRunMv(ctx context.Context, c *Context, args *rebindArgs) error {
	if err := c.DAV.Raw().Move(ctx, args.src, args.dst, args.overwrite); err != nil {
		return fmt.Errorf("move failed, err:%w", err)
	}
	logutil.GetLogger(ctx).Info("move succ", zap.String("src", args.src), zap.String("dst", args.dst))
	return nil
}

func init() {
	register(NewMvCmd)
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

type rmArgs struct {
	remote string
}

func NewRmCmd(c *Context) *cobra.Command {
	args := &rmArgs{}
	ctx := context.Background()
	subc := &cobra.Command{
		Use:   "rm",
		Short: "Delete a remote file or collection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return onRunRm(ctx, c, args)
		},
	}
	subc.PersistentFlags().StringVarP(&args.remote, "remote", "r", "", "remote path to delete")
	return subc
}

func onRunRm(ctx context.Context, c *Context, args *rmArgs) error {
	if len(args.remote) == 0 {
		return fmt.Errorf("no remote path found")
	}
	if err := c.DAV.Raw().Delete(ctx, args.remote); err != nil {
		return fmt.Errorf("delete failed, err:%w", err)
	}
	logutil.GetLogger(ctx).Info("delete succ", zap.String("remote", args.remote))
	return nil
}

func init() {
	register(NewRmCmd)
}

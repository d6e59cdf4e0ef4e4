package cmd

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

type lsArgs struct {
	remote string
}

func NewLsCmd(c *Context) *cobra.Command {
	args := &lsArgs{}
	ctx := context.Background()
	subc := &cobra.Command{
		Use:   "ls",
		Short: "List a remote collection",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return onRunLs(ctx, c, args)
		},
	}
	subc.PersistentFlags().StringVarP(&args.remote, "remote", "r", "/", "remote path to list")
	return subc
}

func onRunLs(ctx context.Context, c *Context, args *lsArgs) error {
	items, err := c.DAV.Raw().List(ctx, args.remote)
	if err != nil {
		return fmt.Errorf("list failed, err:%w", err)
	}
	for _, item := range items {
		kind := "-"
		size := humanize.IBytes(uint64(item.Size))
		if item.IsDir {
			kind = "d"
			size = "-"
		}
		fmt.Printf("%s %10s %s %s\n", kind, size, item.Mtime.Format("2006-01-02 15:04:05"), item.Name)
	}
	return nil
}

func init() {
	register(NewLsCmd)
}

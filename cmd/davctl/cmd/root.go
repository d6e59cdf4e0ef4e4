package cmd

import (
	"fmt"
	"os"

	"github.com/davfile/davfile/cmd/davctl/config"
	"github.com/davfile/davfile/davclient"
	"github.com/davfile/davfile/davclient/client"

	"github.com/spf13/cobra"
	"github.com/xxxsen/common/logger"
)

const (
	defaultConfigFileEnv = "DAVCTL_CONFIG"
)

var cmds []CreateFunc

type Context struct {
	DAV    *davclient.DavClient
	Config *config.Config
}

type CreateFunc func(ctx *Context) *cobra.Command

func register(cr CreateFunc) {
	cmds = append(cmds, cr)
}

func initContext(ctx *Context, cfgs []string) error {
	var c *config.Config
	var err error
	for _, cfg := range cfgs {
		c, err = config.Parse(cfg)
		if err != nil {
			continue
		}
	}
	if err != nil {
		return fmt.Errorf("no valid config file found, last err:%w", err)
	}
	ctx.Config = c
	logger.Init("", c.LogLevel, 0, 0, 0, true)
	cli, err := client.New(client.WithSchema(c.Schema), client.WithHost(c.Host),
		client.WithPrefix(c.Prefix), client.WithAuth(c.AccessKey, c.SecretKey))
	if err != nil {
		return err
	}
	ctx.DAV = davclient.New(davclient.WithClient(cli), davclient.WithThread(c.Thread))
	return nil
}

func NewRoot() *cobra.Command {
	var configFile string
	ctx := &Context{}
	var rootCmd = &cobra.Command{
		Use:   "davctl",
		Short: "WebDAV CLI tool",
	}
	for _, cr := range cmds {
		rootCmd.AddCommand(cr(ctx))
	}
	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		envConfigFile, _ := os.LookupEnv(defaultConfigFileEnv)
		return initContext(ctx, []string{configFile, "/etc/davctl/davctl_config.json", "C:/davctl/davctl_config.json", envConfigFile})
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file")
	return rootCmd
}

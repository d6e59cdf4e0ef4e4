package main

import (
	"flag"
	"time"

	"github.com/davfile/davfile/config"
	"github.com/davfile/davfile/server"

	"github.com/xxxsen/common/logger"
	"go.uber.org/zap"
)

var file = flag.String("config", "./config.json", "config file path")

func main() {
	flag.Parse()

	c, err := config.Parse(*file)
	if err != nil {
		panic(err)
	}
	logitem := c.LogInfo
	logger := logger.Init(logitem.File, logitem.Level, int(logitem.FileCount), int(logitem.FileSize), int(logitem.KeepDays), logitem.Console)
	logger.Info("recv config", zap.Any("config", c))
	logger.Info("-- serve root", zap.String("root", c.Webdav.Root), zap.String("prefix", c.Webdav.Prefix))
	logger.Info("-- item filter", zap.Strings("allowed_extensions", c.Webdav.AllowedExtensions), zap.Bool("allow_hidden", c.Webdav.AllowHidden))
	svr, err := server.New(c.Bind,
		server.WithUser(c.UserInfo),
		server.WithRoot(c.Webdav.Root),
		server.WithPrefix(c.Webdav.Prefix),
		server.WithAllowedExtensions(c.Webdav.AllowedExtensions),
		server.WithAllowHidden(c.Webdav.AllowHidden),
		server.WithMaxLockTimeout(time.Duration(c.Webdav.MaxLockSeconds)*time.Second),
	)
	if err != nil {
		logger.Fatal("init server fail", zap.Error(err))
	}
	logger.Info("init server succ, start it...")
	if err := svr.Run(); err != nil {
		logger.Fatal("run server fail", zap.Error(err))
	}
}

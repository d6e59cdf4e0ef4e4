package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type WebdavConfig struct {
	Root              string   `json:"root"`
	Prefix            string   `json:"prefix"`
	AllowedExtensions []string `json:"allowed_extensions"`
	AllowHidden       bool     `json:"allow_hidden"`
	MaxLockSeconds    int64    `json:"max_lock_seconds"`
}

type Config struct {
	Bind     string            `json:"bind"`
	LogInfo  logger.LogConfig  `json:"log_info"`
	UserInfo map[string]string `json:"user_info"`
	Webdav   WebdavConfig      `json:"webdav"`
}

func Parse(f string) (*Config, error) {
	raw, err := os.ReadFile(f)
	if err != nil {
		return nil, fmt.Errorf("read file:%w", err)
	}
	c := &Config{
		Webdav: WebdavConfig{
			Prefix: "/webdav",
		},
	}
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("decode json failed, err:%w", err)
	}
	return c, nil
}

package server

import (
	"time"

	"github.com/davfile/davfile/hooks"
)

type config struct {
	userMap     map[string]string
	root        string
	prefix      string
	allowedExts []string
	allowHidden bool
	maxLock     time.Duration
	auth        hooks.Authorizer
	notify      hooks.Notifier
}

type Option func(c *config)

func WithUser(m map[string]string) Option {
	return func(c *config) {
		c.userMap = m
	}
}

func WithRoot(root string) Option {
	return func(c *config) {
		c.root = root
	}
}

func WithPrefix(prefix string) Option {
	return func(c *config) {
		c.prefix = prefix
	}
}

func WithAllowedExtensions(exts []string) Option {
	return func(c *config) {
		c.allowedExts = exts
	}
}

func WithMaxLockTimeout(d time.Duration) Option {
	return func(c *config) {
		c.maxLock = d
	}
}

func WithAllowHidden(v bool) Option {
	return func(c *config) {
		c.allowHidden = v
	}
}

func WithAuthorizer(a hooks.Authorizer) Option {
	return func(c *config) {
		c.auth = a
	}
}

func WithNotifier(n hooks.Notifier) Option {
	return func(c *config) {
		c.notify = n
	}
}

func applyOpts(opts ...Option) *config {
	c := &config{
		prefix: "/webdav",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

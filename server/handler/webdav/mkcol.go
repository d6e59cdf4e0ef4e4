package webdav

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi/proxyutil"
	"go.uber.org/zap"
)

func (h *WebdavHandler) handleMkcol(c *gin.Context) {
	ctx := c.Request.Context()
	if c.Request.ContentLength > 0 {
		// MKCOL request bodies are not supported
		c.AbortWithStatus(http.StatusUnsupportedMediaType)
		return
	}
	rel := h.buildSrcPath(c)
	full, ok := h.authorize(c, rel)
	if !ok {
		return
	}
	if _, err := h.fmgr.Stat(ctx, full); err == nil {
		c.AbortWithStatus(http.StatusMethodNotAllowed)
		return
	}
	parent, err := h.fmgr.Stat(ctx, filepath.Dir(full))
	if isNotExist(err) || (err == nil && !parent.IsDir) {
		c.AbortWithStatus(http.StatusConflict)
		return
	}
	if err != nil {
		proxyutil.FailStatus(c, http.StatusInternalServerError, fmt.Errorf("stat parent failed, path:%s, err:%w", rel, err))
		return
	}
	if !h.auth.ShouldCreateDirectory(ctx, rel) {
		logutil.GetLogger(ctx).Info("mkcol denied by hook", zap.String("path", rel))
		c.AbortWithStatus(http.StatusForbidden)
		return
	}
	if err := h.fmgr.Mkdir(ctx, full); err != nil {
		proxyutil.FailStatus(c, http.StatusInternalServerError, fmt.Errorf("mkdir failed, path:%s, err:%w", rel, err))
		return
	}
	h.notify.DidCreateDirectory(rel)
	c.Status(http.StatusCreated)
}

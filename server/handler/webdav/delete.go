package webdav

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi/proxyutil"
	"go.uber.org/zap"
)

func (h *WebdavHandler) handleDelete(c *gin.Context) {
	ctx := c.Request.Context()
	rel := h.buildSrcPath(c)
	if rel == "/" {
		// the served root itself is not deletable
		c.AbortWithStatus(http.StatusForbidden)
		return
	}
	full, ok := h.authorize(c, rel)
	if !ok {
		return
	}
	if _, err := h.fmgr.Stat(ctx, full); err != nil {
		if isNotExist(err) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		proxyutil.FailStatus(c, http.StatusInternalServerError, fmt.Errorf("stat failed, path:%s, err:%w", rel, err))
		return
	}
	if !h.auth.ShouldDeleteItem(ctx, rel) {
		logutil.GetLogger(ctx).Info("delete denied by hook", zap.String("path", rel))
		c.AbortWithStatus(http.StatusForbidden)
		return
	}
	if err := h.fmgr.Remove(ctx, full); err != nil {
		proxyutil.FailStatus(c, http.StatusInternalServerError, fmt.Errorf("remove failed, path:%s, err:%w", rel, err))
		return
	}
	h.notify.DidDeleteItem(rel)
	c.Status(http.StatusNoContent)
}

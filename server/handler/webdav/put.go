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

func (h *WebdavHandler) handlePut(c *gin.Context) {
	ctx := c.Request.Context()
	rel := h.buildSrcPath(c)
	full, ok := h.authorize(c, rel)
	if !ok {
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
	existing, err := h.fmgr.Stat(ctx, full)
	replaced := err == nil
	if replaced && existing.IsDir {
		c.AbortWithStatus(http.StatusMethodNotAllowed)
		return
	}
	tmp, err := h.fmgr.StageFile(ctx, full, c.Request.Body)
	if err != nil {
		proxyutil.FailStatus(c, http.StatusInternalServerError, fmt.Errorf("stage upload failed, path:%s, err:%w", rel, err))
		return
	}
	if !h.auth.ShouldUploadFile(ctx, rel, tmp) {
		_ = h.fmgr.DiscardFile(ctx, tmp)
		logutil.GetLogger(ctx).Info("upload denied by hook", zap.String("path", rel))
		c.AbortWithStatus(http.StatusForbidden)
		return
	}
	if err := h.fmgr.PromoteFile(ctx, tmp, full); err != nil {
		_ = h.fmgr.DiscardFile(ctx, tmp)
		proxyutil.FailStatus(c, http.StatusInternalServerError, fmt.Errorf("promote upload failed, path:%s, err:%w", rel, err))
		return
	}
	h.notify.DidUploadFile(rel)
	if replaced {
		c.Status(http.StatusNoContent)
		return
	}
	c.Status(http.StatusCreated)
}

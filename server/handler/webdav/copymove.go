package webdav

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi/proxyutil"
	"go.uber.org/zap"
)

func (h *WebdavHandler) handleCopyMove(c *gin.Context, isMove bool) {
	ctx := c.Request.Context()
	src := h.buildSrcPath(c)
	srcFull, ok := h.authorize(c, src)
	if !ok {
		return
	}
	dst, err := h.buildDstPath(c)
	if err != nil {
		proxyutil.FailStatus(c, http.StatusBadRequest, fmt.Errorf("build dst path failed, err:%w", err))
		return
	}
	dstFull, ok := h.authorize(c, dst)
	if !ok {
		return
	}
	if src == dst || strings.HasPrefix(dst, src+"/") {
		// a tree cannot be placed onto or under itself
		c.AbortWithStatus(http.StatusForbidden)
		return
	}
	if _, err := h.fmgr.Stat(ctx, srcFull); err != nil {
		if isNotExist(err) {
			c.AbortWithStatus(http.StatusNotFound)
			return
		}
		proxyutil.FailStatus(c, http.StatusInternalServerError, fmt.Errorf("stat src failed, path:%s, err:%w", src, err))
		return
	}
	overwrite := c.GetHeader("Overwrite") != "F"
	_, err = h.fmgr.Stat(ctx, dstFull)
	dstExists := err == nil
	if dstExists && !overwrite {
		c.AbortWithStatus(http.StatusPreconditionFailed)
		return
	}
	parent, err := h.fmgr.Stat(ctx, filepath.Dir(dstFull))
	if isNotExist(err) || (err == nil && !parent.IsDir) {
		c.AbortWithStatus(http.StatusConflict)
		return
	}
	if err != nil {
		proxyutil.FailStatus(c, http.StatusInternalServerError, fmt.Errorf("stat dst parent failed, path:%s, err:%w", dst, err))
		return
	}
	var allowed bool
	if isMove {
		allowed = h.auth.ShouldMoveItem(ctx, src, dst)
	} else {
		allowed = h.auth.ShouldCopyItem(ctx, src, dst)
	}
	if !allowed {
		logutil.GetLogger(ctx).Info("copy/move denied by hook",
			zap.Bool("is_move", isMove), zap.String("src", src), zap.String("dst", dst))
		c.AbortWithStatus(http.StatusForbidden)
		return
	}
	if dstExists {
		if err := h.fmgr.Remove(ctx, dstFull); err != nil {
			proxyutil.FailStatus(c, http.StatusInternalServerError, fmt.Errorf("remove dst failed, path:%s, err:%w", dst, err))
			return
		}
	}
	if isMove {
		err = h.fmgr.Move(ctx, srcFull, dstFull)
	} else {
		err = h.fmgr.Copy(ctx, srcFull, dstFull)
	}
	if err != nil {
		proxyutil.FailStatus(c, http.StatusInternalServerError, fmt.Errorf("copy/move failed, src:%s, dst:%s, err:%w", src, dst, err))
		return
	}
	if isMove {
		h.notify.DidMoveItem(src, dst)
	} else {
		h.notify.DidCopyItem(src, dst)
	}
	if dstExists {
		c.Status(http.StatusNoContent)
		return
	}
	c.Status(http.StatusCreated)
}

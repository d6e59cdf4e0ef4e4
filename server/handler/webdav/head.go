package webdav

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/davfile/davfile/server/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/webapi/proxyutil"
)

func (h *WebdavHandler) handleHead(c *gin.Context) {
	ctx := c.Request.Context()
	rel := h.buildSrcPath(c)
	full, ok := h.authorize(c, rel)
	if !ok {
		return
	}
	item, err := h.fmgr.Stat(ctx, full)
	if isNotExist(err) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	if err != nil {
		proxyutil.FailStatus(c, http.StatusInternalServerError, fmt.Errorf("stat failed, path:%s, err:%w", rel, err))
		return
	}
	if !item.IsDir {
		c.Writer.Header().Set("Content-Length", strconv.FormatInt(item.Size, 10))
	}
	c.Writer.Header().Set("Content-Type", httpkit.DetermineResourceMimeType(rel, item.IsDir))
	c.Writer.Header().Set("ETag", httpkit.EtagOf(rel, item))
	c.Writer.Header().Set("Last-Modified", time.UnixMilli(item.Mtime).UTC().Format(http.TimeFormat))
	c.Status(http.StatusOK)
}

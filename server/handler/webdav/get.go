package webdav

import (
	"fmt"
	"net/http"
	"time"

	"github.com/davfile/davfile/server/httpkit"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/webapi/proxyutil"
)

func (h *WebdavHandler) handleGet(c *gin.Context) {
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
	if item.IsDir {
		c.AbortWithStatus(http.StatusMethodNotAllowed)
		return
	}
	stream, err := h.fmgr.Open(ctx, full)
	if err != nil {
		proxyutil.FailStatus(c, http.StatusInternalServerError, fmt.Errorf("open stream failed, path:%s, err:%w", rel, err))
		return
	}
	defer stream.Close()
	httpkit.SetDefaultDownloadHeader(c, rel, item)
	http.ServeContent(c.Writer, c.Request, item.Name, time.UnixMilli(item.Mtime), stream)
	// ServeContent may answer 304/416 itself, only a served body counts
	// as a download
	if status := c.Writer.Status(); status >= http.StatusOK && status < http.StatusMultipleChoices {
		h.notify.DidDownloadFile(rel)
	}
}

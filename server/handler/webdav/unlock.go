package webdav

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/davfile/davfile/lockmgr"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/webapi/proxyutil"
)

func (h *WebdavHandler) handleUnlock(c *gin.Context) {
	rel := h.buildSrcPath(c)
	if _, ok := h.authorize(c, rel); !ok {
		return
	}
	token := strings.TrimSpace(c.GetHeader("Lock-Token"))
	token = strings.TrimSuffix(strings.TrimPrefix(token, "<"), ">")
	if len(token) == 0 {
		proxyutil.FailStatus(c, http.StatusBadRequest, fmt.Errorf("missing lock token"))
		return
	}
	if err := h.locks.Unlock(rel, token); err != nil {
		if errors.Is(err, lockmgr.ErrNotLocked) {
			proxyutil.FailStatus(c, http.StatusConflict, fmt.Errorf("unlock failed, err:%w", err))
			return
		}
		proxyutil.FailStatus(c, http.StatusPreconditionFailed, fmt.Errorf("unlock failed, err:%w", err))
		return
	}
	c.Status(http.StatusNoContent)
}

package webdav

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/davfile/davfile/lockmgr"
	"github.com/davfile/davfile/server/model"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi/proxyutil"
	"go.uber.org/zap"
)

func (h *WebdavHandler) handleLock(c *gin.Context) {
	ctx := c.Request.Context()
	rel := h.buildSrcPath(c)
	if _, ok := h.authorize(c, rel); !ok {
		return
	}
	info, err := model.ParseLockInfo(c.Request.Body)
	if err != nil {
		proxyutil.FailStatus(c, http.StatusBadRequest, fmt.Errorf("parse lockinfo failed, err:%w", err))
		return
	}
	presented := parseIfToken(c.GetHeader("If"))
	if info == nil && len(presented) == 0 {
		proxyutil.FailStatus(c, http.StatusBadRequest, fmt.Errorf("lock refresh without token"))
		return
	}
	scope := lockmgr.ScopeExclusive
	owner := ""
	if info != nil {
		if info.Scope == "shared" {
			scope = lockmgr.ScopeShared
		}
		owner = info.Owner
	}
	timeout := parseTimeoutHeader(c.GetHeader("Timeout"))
	token := h.locks.Lock(rel, scope, owner, timeout, presented)
	logutil.GetLogger(ctx).Debug("lock granted", zap.String("path", rel), zap.String("token", token.ID))
	h.sendLockResponse(c, rel, token, c.GetHeader("Depth"))
}

func (h *WebdavHandler) sendLockResponse(c *gin.Context, rel string, token *lockmgr.Token, depth string) {
	if depth != "0" {
		depth = "infinity"
	}
	active := model.ActiveLock{
		Depth:     depth,
		Owner:     token.Owner,
		Timeout:   formatTimeout(token.ExpiresAt),
		LockToken: model.Href{Href: token.ID},
		LockRoot:  model.Href{Href: h.hrefOf(rel, false)},
	}
	if token.Scope == lockmgr.ScopeShared {
		active.LockScope.Shared = &struct{}{}
	} else {
		active.LockScope.Exclusive = &struct{}{}
	}
	body := &model.PropLockDiscovery{
		XMLNS: "DAV:",
		LockDiscovery: model.LockDiscovery{
			Active: []model.ActiveLock{active},
		},
	}
	c.Header("Lock-Token", "<"+token.ID+">")
	if err := h.writeDavResponse(c, http.StatusOK, body); err != nil {
		logutil.GetLogger(c.Request.Context()).Error("write lock response failed", zap.Error(err))
	}
}

// parseTimeoutHeader reads the first usable value of a Timeout header
// ("Second-600, Infinite"). Zero means the lock manager default;
// Infinite is clamped by the manager's maximum anyway.
func parseTimeoutHeader(v string) time.Duration {
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		low := strings.ToLower(part)
		if strings.HasPrefix(low, "second-") {
			n, err := strconv.ParseInt(part[len("second-"):], 10, 64)
			if err != nil || n <= 0 {
				continue
			}
			return time.Duration(n) * time.Second
		}
		if low == "infinite" {
			return 365 * 24 * time.Hour
		}
	}
	return 0
}

func formatTimeout(expiry time.Time) string {
	secs := int64(time.Until(expiry) / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("Second-%d", secs)
}

// parseIfToken pulls the first coded-url token out of an If header,
// e.g. `(<urn:uuid:...>)`. The full RFC 4918 condition grammar is not
// needed for refresh detection.
func parseIfToken(v string) string {
	start := strings.Index(v, "<")
	if start < 0 {
		return ""
	}
	end := strings.Index(v[start:], ">")
	if end < 0 {
		return ""
	}
	return v[start+1 : start+end]
}

package webdav

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/davfile/davfile/fsmgr"
	"github.com/davfile/davfile/hooks"
	"github.com/davfile/davfile/lockmgr"
	"github.com/davfile/davfile/pathguard"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"
)

// WebdavHandler implements a class-1 (partially class-2) WebDAV server
// over a local directory root.
type WebdavHandler struct {
	fmgr   fsmgr.IFileManager
	gate   *pathguard.Gate
	locks  *lockmgr.Manager
	auth   hooks.Authorizer
	notify hooks.Notifier
	prefix string
	quirks *quirkDetector
}

func NewWebdavHandler(fmgr fsmgr.IFileManager, gate *pathguard.Gate, locks *lockmgr.Manager,
	auth hooks.Authorizer, notify hooks.Notifier, basePath string) *WebdavHandler {
	if auth == nil {
		auth = hooks.AllowAll{}
	}
	if notify == nil {
		notify = hooks.NopNotifier{}
	}
	return &WebdavHandler{
		fmgr:   fmgr,
		gate:   gate,
		locks:  locks,
		auth:   auth,
		notify: notify,
		prefix: strings.TrimSuffix(basePath, "/"),
		quirks: newQuirkDetector(),
	}
}

func (h *WebdavHandler) Handler(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodOptions:
		h.handleOptions(c)
	case http.MethodGet:
		h.handleGet(c)
	case http.MethodHead:
		h.handleHead(c)
	case http.MethodPut:
		h.handlePut(c)
	case http.MethodDelete:
		h.handleDelete(c)
	case "MKCOL":
		h.handleMkcol(c)
	case "COPY":
		h.handleCopyMove(c, false)
	case "MOVE":
		h.handleCopyMove(c, true)
	case "PROPFIND":
		h.handlePropfind(c)
	case "LOCK":
		h.handleLock(c)
	case "UNLOCK":
		h.handleUnlock(c)
	default:
		c.AbortWithStatus(http.StatusForbidden)
		logutil.GetLogger(c.Request.Context()).Error("unsupported method", zap.String("method", c.Request.Method))
	}
}

// buildSrcPath strips the route prefix so path checks and hrefs work
// on the resource path inside the served root.
func (h *WebdavHandler) buildSrcPath(c *gin.Context) string {
	p := c.Request.URL.Path
	if len(h.prefix) > 0 {
		p = strings.TrimPrefix(p, h.prefix)
	}
	return path.Clean("/" + p)
}

// buildDstPath resolves the Destination header onto the same root.
func (h *WebdavHandler) buildDstPath(c *gin.Context) (string, error) {
	raw := c.GetHeader("Destination")
	if len(raw) == 0 {
		return "", fmt.Errorf("no destination header")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parse destination failed, dst:%s, err:%w", raw, err)
	}
	p := u.Path
	if len(h.prefix) > 0 {
		if !strings.HasPrefix(p, h.prefix+"/") && p != h.prefix {
			return "", fmt.Errorf("destination outside served prefix, dst:%s", p)
		}
		p = strings.TrimPrefix(p, h.prefix)
	}
	return path.Clean("/" + p), nil
}

func (h *WebdavHandler) hrefOf(rel string, isDir bool) string {
	p := h.prefix + rel
	if isDir && !strings.HasSuffix(p, "/") {
		p += "/"
	}
	u := url.URL{Path: p}
	return u.EscapedPath()
}

// authorize runs the security gate; on rejection it answers 403 with
// no side effects.
func (h *WebdavHandler) authorize(c *gin.Context, rel string) (string, bool) {
	full, err := h.gate.Authorize(rel)
	if err != nil {
		logutil.GetLogger(c.Request.Context()).Error("path rejected",
			zap.String("path", rel), zap.Error(err))
		c.AbortWithStatus(http.StatusForbidden)
		return "", false
	}
	return full, true
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func (h *WebdavHandler) writeDavResponse(c *gin.Context, status int, body interface{}) error {
	c.Header("Content-Type", "application/xml; charset=utf-8")
	c.Status(status)
	if _, err := c.Writer.Write([]byte(xml.Header)); err != nil {
		return err
	}
	enc := xml.NewEncoder(c.Writer)
	enc.Indent("", "  ")
	return enc.Encode(body)
}

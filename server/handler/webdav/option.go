package webdav

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (h *WebdavHandler) handleOptions(c *gin.Context) {
	dav := "1"
	switch h.quirks.Detect(c.Request.Header) {
	case QuirkMacFinder:
		// locking is a shim, advertised only to the client that
		// refuses to mount without it
		dav = "1, 2"
	case QuirkWindowsRedirector:
		c.Writer.Header().Set("MS-Author-Via", "DAV")
	}
	c.Writer.Header().Set("DAV", dav)
	c.Writer.Header().Set("Allow", strings.Join(AllowMethods, ", "))
	c.Status(http.StatusOK)
}

package webdav

import (
	"fmt"
	"net/http"
	"path"

	"github.com/davfile/davfile/server/model"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"github.com/xxxsen/common/webapi/proxyutil"
	"go.uber.org/zap"
)

type depthValue int

const (
	depthZero depthValue = iota
	depthOne
	depthInfinity
)

// parseDepth follows RFC 4918: a missing header means infinity, which
// this server refuses to enumerate.
func parseDepth(v string) depthValue {
	switch v {
	case "0":
		return depthZero
	case "1":
		return depthOne
	default:
		return depthInfinity
	}
}

func (h *WebdavHandler) handlePropfind(c *gin.Context) {
	ctx := c.Request.Context()
	rel := h.buildSrcPath(c)
	full, ok := h.authorize(c, rel)
	if !ok {
		return
	}
	depth := parseDepth(c.GetHeader("Depth"))
	if depth == depthInfinity {
		// recursive enumeration is unbounded and can chase symlink
		// cycles, refuse it outright
		logutil.GetLogger(ctx).Error("reject infinite depth propfind", zap.String("path", rel))
		c.AbortWithStatus(http.StatusForbidden)
		return
	}
	flags, unknownNames, err := model.ParsePropfind(c.Request.Body)
	if err != nil {
		proxyutil.FailStatus(c, http.StatusBadRequest, fmt.Errorf("parse propfind body failed, err:%w", err))
		return
	}
	unknown := make([]model.EmptyElement, 0, len(unknownNames))
	for _, n := range unknownNames {
		unknown = append(unknown, model.EmptyElement{XMLName: n})
	}
	base, err := h.fmgr.Stat(ctx, full)
	if isNotExist(err) {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}
	if err != nil {
		proxyutil.FailStatus(c, http.StatusInternalServerError, fmt.Errorf("stat failed, path:%s, err:%w", rel, err))
		return
	}
	ms := &model.Multistatus{XMLNS: "DAV:"}
	ms.Responses = append(ms.Responses, h.propResponse(rel, base, flags, unknown))
	if depth == depthOne && base.IsDir {
		children, err := h.fmgr.List(ctx, full)
		if err != nil {
			proxyutil.FailStatus(c, http.StatusInternalServerError, fmt.Errorf("list failed, path:%s, err:%w", rel, err))
			return
		}
		for _, child := range children {
			childRel := path.Join(rel, child.Name)
			// items the gate would refuse to serve stay out of the
			// listing too
			if _, err := h.gate.Authorize(childRel); err != nil {
				continue
			}
			ms.Responses = append(ms.Responses, h.propResponse(childRel, child, flags, unknown))
		}
	}
	if err := h.writeDavResponse(c, http.StatusMultiStatus, ms); err != nil {
		logutil.GetLogger(ctx).Error("write multistatus failed", zap.Error(err))
	}
}

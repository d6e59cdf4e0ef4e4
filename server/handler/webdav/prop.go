package webdav

import (
	"net/http"
	"path"
	"time"

	"github.com/davfile/davfile/entity"
	"github.com/davfile/davfile/server/httpkit"
	"github.com/davfile/davfile/server/model"
)

// propResponse renders the propstat blocks of one resource: a 200
// block carrying the requested properties this server can answer and,
// when the request named properties it does not serve, a 404 block
// echoing those names back empty.
func (h *WebdavHandler) propResponse(rel string, item *entity.ResourceItem, flags model.PropFlag, unknown []model.EmptyElement) *model.Response {
	var found model.Prop
	if flags&model.PropResourceType != 0 {
		rt := &model.ResourceType{}
		if item.IsDir {
			rt.Collection = &struct{}{}
		}
		found.ResourceType = rt
	}
	if flags&model.PropCreationDate != 0 {
		found.CreationDate = time.UnixMilli(item.Ctime).UTC().Format(time.RFC3339)
	}
	if flags&model.PropLastModified != 0 {
		found.LastModified = time.UnixMilli(item.Mtime).UTC().Format(http.TimeFormat)
	}
	if flags&model.PropContentLength != 0 {
		size := item.Size
		if item.IsDir {
			// collections have no defined length
			size = 0
		}
		found.ContentLength = &size
	}
	if flags&model.PropContentType != 0 {
		found.ContentType = httpkit.DetermineResourceMimeType(rel, item.IsDir)
	}
	if flags&model.PropDisplayName != 0 {
		found.DisplayName = displayNameOf(rel)
	}
	if flags&model.PropPermissions != 0 {
		found.Permissions = permissionsOf(item)
	}
	propstats := []model.Propstat{{
		Prop:   found,
		Status: "HTTP/1.1 200 OK",
	}}
	if len(unknown) > 0 {
		propstats = append(propstats, model.Propstat{
			Prop:   model.Prop{Missing: unknown},
			Status: "HTTP/1.1 404 Not Found",
		})
	}
	return &model.Response{
		Href:      h.hrefOf(rel, item.IsDir),
		Propstats: propstats,
	}
}

func displayNameOf(rel string) string {
	if rel == "/" {
		return "/"
	}
	return path.Base(rel)
}

// permissionsOf reports a fixed readable/executable flag string, not a
// real ACL.
func permissionsOf(item *entity.ResourceItem) string {
	if item.IsDir || item.Mode&0100 != 0 {
		return "RX"
	}
	return "R"
}

package webdav

import "net/http"

var AllowMethods = []string{
	http.MethodOptions,
	http.MethodGet,
	http.MethodHead,
	http.MethodPut,
	http.MethodDelete,
	"MKCOL",
	"COPY",
	"MOVE",
	"PROPFIND",
	"LOCK",
	"UNLOCK",
}

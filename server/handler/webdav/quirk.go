package webdav

import (
	"net/http"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// ClientQuirk identifies WebDAV clients that need capability-report
// adjustments. Detection is a pure function of the request headers and
// stays out of the protocol handlers.
type ClientQuirk int

const (
	QuirkNone ClientQuirk = iota
	// QuirkMacFinder is the macOS WebDAV client, it refuses to mount a
	// share read-write unless the server claims class-2 support.
	QuirkMacFinder
	// QuirkWindowsRedirector is the Windows WebDAV mini-redirector, it
	// wants MS-Author-Via before allowing authoring.
	QuirkWindowsRedirector
)

func DetectClientQuirk(h http.Header) ClientQuirk {
	ua := h.Get("User-Agent")
	switch {
	case strings.Contains(ua, "WebDAVFS") || strings.Contains(ua, "WebDAVLib"):
		return QuirkMacFinder
	case strings.Contains(ua, "Microsoft-WebDAV-MiniRedir"):
		return QuirkWindowsRedirector
	default:
		return QuirkNone
	}
}

const (
	defaultMaxQuirkCacheSize    = 128
	defaultQuirkCacheExpireTime = time.Hour
)

type quirkDetector struct {
	cache *lru.LRU[string, ClientQuirk]
}

func newQuirkDetector() *quirkDetector {
	return &quirkDetector{
		cache: lru.NewLRU[string, ClientQuirk](defaultMaxQuirkCacheSize, nil, defaultQuirkCacheExpireTime),
	}
}

func (d *quirkDetector) Detect(h http.Header) ClientQuirk {
	ua := h.Get("User-Agent")
	if len(ua) == 0 {
		return QuirkNone
	}
	if q, ok := d.cache.Get(ua); ok {
		return q
	}
	q := DetectClientQuirk(h)
	d.cache.Add(ua, q)
	return q
}

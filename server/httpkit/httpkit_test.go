package httpkit

import (
	"strings"
	"testing"

	"github.com/davfile/davfile/entity"

	"github.com/stretchr/testify/assert"
)

func TestDetermineResourceMimeType(t *testing.T) {
	assert.Equal(t, "httpd/unix-directory", DetermineResourceMimeType("/any", true))
	assert.True(t, strings.HasPrefix(DetermineResourceMimeType("/a.html", false), "text/html"))
	assert.Equal(t, "application/octet-stream", DetermineResourceMimeType("/a.unknownext", false))
}

func TestEtagOf(t *testing.T) {
	item := &entity.ResourceItem{Size: 10, Mtime: 1700000000000}
	tag := EtagOf("/a.txt", item)
	assert.True(t, strings.HasPrefix(tag, `W/"`))
	assert.Equal(t, tag, EtagOf("/a.txt", item))
	// identity and metadata both feed the tag
	assert.NotEqual(t, tag, EtagOf("/b.txt", item))
	changed := &entity.ResourceItem{Size: 11, Mtime: 1700000000000}
	assert.NotEqual(t, tag, EtagOf("/a.txt", changed))
}

package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePropfindEmptyBody(t *testing.T) {
	flags, unknown, err := ParsePropfind(strings.NewReader(""))
	assert.NoError(t, err)
	assert.Equal(t, PropAll, flags)
	assert.Empty(t, unknown)
}

func TestParsePropfindAllprop(t *testing.T) {
	body := `<?xml version="1.0"?><D:propfind xmlns:D="DAV:"><D:allprop/></D:propfind>`
	flags, unknown, err := ParsePropfind(strings.NewReader(body))
	assert.NoError(t, err)
	assert.Equal(t, PropAll, flags)
	assert.Empty(t, unknown)
}

func TestParsePropfindNamedProps(t *testing.T) {
	body := `<?xml version="1.0"?><D:propfind xmlns:D="DAV:"><D:prop>
		<D:resourcetype/><D:getcontentlength/><D:displayname/>
	</D:prop></D:propfind>`
	flags, unknown, err := ParsePropfind(strings.NewReader(body))
	assert.NoError(t, err)
	assert.Equal(t, PropResourceType|PropContentLength|PropDisplayName, flags)
	assert.Empty(t, unknown)
}

func TestParsePropfindUnknownProps(t *testing.T) {
	body := `<?xml version="1.0"?><D:propfind xmlns:D="DAV:"><D:prop>
		<D:getetag/><D:resourcetype/>
	</D:prop></D:propfind>`
	flags, unknown, err := ParsePropfind(strings.NewReader(body))
	assert.NoError(t, err)
	assert.Equal(t, PropResourceType, flags)
	assert.Len(t, unknown, 1)
	assert.Equal(t, "getetag", unknown[0].Local)
}

func TestParsePropfindGarbage(t *testing.T) {
	_, _, err := ParsePropfind(strings.NewReader("<not-closed"))
	assert.Error(t, err)
}

func TestParseLockInfo(t *testing.T) {
	body := `<?xml version="1.0"?><D:lockinfo xmlns:D="DAV:">
		<D:lockscope><D:exclusive/></D:lockscope>
		<D:locktype><D:write/></D:locktype>
		<D:owner><D:href>http://example.com/~alice</D:href></D:owner>
	</D:lockinfo>`
	req, err := ParseLockInfo(strings.NewReader(body))
	assert.NoError(t, err)
	assert.Equal(t, "exclusive", req.Scope)
	assert.Equal(t, "http://example.com/~alice", req.Owner)
}

func TestParseLockInfoShared(t *testing.T) {
	body := `<D:lockinfo xmlns:D="DAV:"><D:lockscope><D:shared/></D:lockscope><D:owner>bob</D:owner></D:lockinfo>`
	req, err := ParseLockInfo(strings.NewReader(body))
	assert.NoError(t, err)
	assert.Equal(t, "shared", req.Scope)
	assert.Equal(t, "bob", req.Owner)
}

func TestParseLockInfoEmptyBody(t *testing.T) {
	req, err := ParseLockInfo(strings.NewReader("  "))
	assert.NoError(t, err)
	assert.Nil(t, req)
}

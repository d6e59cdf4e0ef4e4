package httpkit

import (
	"encoding/binary"
	"fmt"
	"mime"
	"path"

	"github.com/cespare/xxhash/v2"
	"github.com/davfile/davfile/entity"
	"github.com/gin-gonic/gin"
)

const dirMimeType = "httpd/unix-directory"

func DetermineMimeType(filename string) string {
	ext := path.Ext(filename)
	mimeType := mime.TypeByExtension(ext)
	if mimeType == "" {
		return "application/octet-stream"
	}
	return mimeType
}

// DetermineResourceMimeType resolves collections to a directory
// indicator type and files by extension.
func DetermineResourceMimeType(name string, isDir bool) string {
	if isDir {
		return dirMimeType
	}
	return DetermineMimeType(name)
}

// EtagOf derives a weak ETag from the resource identity and its
// current metadata.
func EtagOf(name string, item *entity.ResourceItem) string {
	d := xxhash.New()
	_, _ = d.WriteString(name)
	buf := make([]byte, 16)
	binary.BigEndian.PutUint64(buf[:8], uint64(item.Mtime))
	binary.BigEndian.PutUint64(buf[8:], uint64(item.Size))
	_, _ = d.Write(buf)
	return fmt.Sprintf("W/\"%016x\"", d.Sum64())
}

func SetDefaultDownloadHeader(c *gin.Context, name string, item *entity.ResourceItem) {
	c.Writer.Header().Set("Content-Type", DetermineResourceMimeType(name, item.IsDir))
	c.Writer.Header().Set("Cache-Control", "public, max-age=604800") //默认可以缓存7d
	c.Writer.Header().Set("ETag", EtagOf(name, item))
}

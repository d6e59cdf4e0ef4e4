package client

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"
)

var (
	defaultHttpClient = &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			IdleConnTimeout:     20 * time.Second,
			MaxIdleConns:        5,
			MaxIdleConnsPerHost: 1,
		},
	}
)

const propfindAllBody = `<?xml version="1.0" encoding="utf-8"?><D:propfind xmlns:D="DAV:"><D:allprop/></D:propfind>`

type defaultClient struct {
	c *config
}

func New(opts ...Option) (IClient, error) {
	c := &config{
		Schema: "https",
		Prefix: "/webdav",
	}
	for _, opt := range opts {
		opt(c)
	}
	if len(c.Host) == 0 {
		return nil, fmt.Errorf("no host found")
	}
	c.Prefix = strings.TrimSuffix(c.Prefix, "/")
	return &defaultClient{c: c}, nil
}

func (d *defaultClient) buildUrl(remote string) string {
	u := url.URL{Path: d.c.Prefix + path.Clean("/"+remote)}
	return fmt.Sprintf("%s://%s%s", d.c.Schema, d.c.Host, u.EscapedPath())
}

func (d *defaultClient) applyAuth(req *http.Request) {
	if len(d.c.AccessKey) == 0 {
		return
	}
	req.SetBasicAuth(d.c.AccessKey, d.c.SecretKey)
}

func (d *defaultClient) do(ctx context.Context, method string, remote string, hdr map[string]string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, d.buildUrl(remote), body)
	if err != nil {
		return nil, err
	}
	d.applyAuth(req)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	return defaultHttpClient.Do(req)
}

func (d *defaultClient) doDiscard(ctx context.Context, method string, remote string, hdr map[string]string, body io.Reader) (int, error) {
	rsp, err := d.do(ctx, method, remote, hdr, body)
	if err != nil {
		return 0, err
	}
	defer rsp.Body.Close()
	_, _ = io.Copy(io.Discard, rsp.Body)
	return rsp.StatusCode, nil
}

// encoding/xml matches bare local names against any namespace, so the
// decode structs stay prefix free.
type multistatusDoc struct {
	XMLName   xml.Name      `xml:"multistatus"`
	Responses []responseDoc `xml:"response"`
}

type responseDoc struct {
	Href      string        `xml:"href"`
	Propstats []propstatDoc `xml:"propstat"`
}

type propstatDoc struct {
	Status string  `xml:"status"`
	Prop   propDoc `xml:"prop"`
}

type propDoc struct {
	DisplayName   string `xml:"displayname"`
	ContentLength int64  `xml:"getcontentlength"`
	ContentType   string `xml:"getcontenttype"`
	LastModified  string `xml:"getlastmodified"`
	ResourceType  struct {
		Collection *struct{} `xml:"collection"`
	} `xml:"resourcetype"`
}

func (d *defaultClient) propfind(ctx context.Context, remote string, depth string) ([]*EntryInfo, error) {
	hdr := map[string]string{
		"Depth":        depth,
		"Content-Type": "application/xml; charset=utf-8",
	}
	rsp, err := d.do(ctx, "PROPFIND", remote, hdr, strings.NewReader(propfindAllBody))
	if err != nil {
		return nil, err
	}
	defer rsp.Body.Close()
	if rsp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("remote not found, path:%s", remote)
	}
	if rsp.StatusCode != http.StatusMultiStatus {
		return nil, fmt.Errorf("status code not ok, code:%d", rsp.StatusCode)
	}
	doc := &multistatusDoc{}
	if err := xml.NewDecoder(rsp.Body).Decode(doc); err != nil {
		return nil, fmt.Errorf("decode multistatus failed, err:%w", err)
	}
	items := make([]*EntryInfo, 0, len(doc.Responses))
	for _, r := range doc.Responses {
		item, err := d.toEntryInfo(&r)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (d *defaultClient) toEntryInfo(r *responseDoc) (*EntryInfo, error) {
	ref, err := url.PathUnescape(r.Href)
	if err != nil {
		return nil, fmt.Errorf("unescape href failed, href:%s, err:%w", r.Href, err)
	}
	ref = strings.TrimPrefix(ref, d.c.Prefix)
	ref = strings.TrimSuffix(ref, "/")
	if len(ref) == 0 {
		ref = "/"
	}
	item := &EntryInfo{
		Path: ref,
		Name: path.Base(ref),
	}
	for _, ps := range r.Propstats {
		if !strings.Contains(ps.Status, "200") {
			continue
		}
		item.Size = ps.Prop.ContentLength
		item.ContentType = ps.Prop.ContentType
		item.IsDir = ps.Prop.ResourceType.Collection != nil
		if len(ps.Prop.DisplayName) > 0 {
			item.Name = ps.Prop.DisplayName
		}
		if t, err := http.ParseTime(ps.Prop.LastModified); err == nil {
			item.Mtime = t
		}
	}
	return item, nil
}

func (d *defaultClient) Stat(ctx context.Context, remote string) (*EntryInfo, error) {
	items, err := d.propfind(ctx, remote, "0")
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("empty multistatus, path:%s", remote)
	}
	return items[0], nil
}

func (d *defaultClient) List(ctx context.Context, remote string) ([]*EntryInfo, error) {
	items, err := d.propfind(ctx, remote, "1")
	if err != nil {
		return nil, err
	}
	// first response is the collection itself
	if len(items) > 0 {
		items = items[1:]
	}
	return items, nil
}

func (d *defaultClient) Get(ctx context.Context, remote string) (io.ReadCloser, error) {
	rsp, err := d.do(ctx, http.MethodGet, remote, nil, nil)
	if err != nil {
		return nil, err
	}
	if rsp.StatusCode != http.StatusOK && rsp.StatusCode != http.StatusPartialContent {
		rsp.Body.Close()
		return nil, fmt.Errorf("status code not ok, code:%d", rsp.StatusCode)
	}
	return rsp.Body, nil
}

func (d *defaultClient) Put(ctx context.Context, remote string, r io.Reader) error {
	code, err := d.doDiscard(ctx, http.MethodPut, remote, nil, r)
	if err != nil {
		return err
	}
	if code != http.StatusCreated && code != http.StatusNoContent {
		return fmt.Errorf("status code not ok, code:%d", code)
	}
	return nil
}

func (d *defaultClient) Delete(ctx context.Context, remote string) error {
	code, err := d.doDiscard(ctx, http.MethodDelete, remote, nil, nil)
	if err != nil {
		return err
	}
	if code != http.StatusNoContent {
		return fmt.Errorf("status code not ok, code:%d", code)
	}
	return nil
}

func (d *defaultClient) Mkcol(ctx context.Context, remote string) error {
	code, err := d.doDiscard(ctx, "MKCOL", remote, nil, nil)
	if err != nil {
		return err
	}
	if code != http.StatusCreated && code != http.StatusMethodNotAllowed {
		return fmt.Errorf("status code not ok, code:%d", code)
	}
	return nil
}

func (d *defaultClient) Move(ctx context.Context, src string, dst string, overwrite bool) error {
	return d.rebind(ctx, "MOVE", src, dst, overwrite)
}

func (d *defaultClient) Copy(ctx context.Context, src string, dst string, overwrite bool) error {
	return d.rebind(ctx, "COPY", src, dst, overwrite)
}

func (d *defaultClient) rebind(ctx context.Context, method string, src string, dst string, overwrite bool) error {
	ow := "F"
	if overwrite {
		ow = "T"
	}
	hdr := map[string]string{
		"Destination": d.buildUrl(dst),
		"Overwrite":   ow,
	}
	code, err := d.doDiscard(ctx, method, src, hdr, nil)
	if err != nil {
		return err
	}
	if code != http.StatusCreated && code != http.StatusNoContent {
		return fmt.Errorf("status code not ok, code:%d", code)
	}
	return nil
}

package model

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// PropFlag is a bitmask over the DAV properties this server serves.
type PropFlag uint32

const (
	PropResourceType PropFlag = 1 << iota
	PropCreationDate
	PropLastModified
	PropContentLength
	PropContentType
	PropDisplayName
	PropPermissions

	PropAll = PropResourceType | PropCreationDate | PropLastModified |
		PropContentLength | PropContentType | PropDisplayName | PropPermissions
)

var propElementFlags = map[string]PropFlag{
	"resourcetype":     PropResourceType,
	"creationdate":     PropCreationDate,
	"getlastmodified":  PropLastModified,
	"getcontentlength": PropContentLength,
	"getcontenttype":   PropContentType,
	"displayname":      PropDisplayName,
	"permissions":      PropPermissions,
}

// ParsePropfind reads a PROPFIND request body. An empty body or
// <allprop/> selects every property. Requested elements this server
// does not serve are returned by name so the response can report them
// as not found; they are never an error.
func ParsePropfind(r io.Reader) (PropFlag, []xml.Name, error) {
	d := xml.NewDecoder(r)
	var flags PropFlag
	var unknown []xml.Name
	inProp := false
	seen := false
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, nil, fmt.Errorf("decode propfind body failed, err:%w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			seen = true
			name := strings.ToLower(t.Name.Local)
			switch {
			case name == "propfind":
			case name == "allprop":
				return PropAll, nil, nil
			case name == "prop" && !inProp:
				inProp = true
			case inProp:
				if f, ok := propElementFlags[name]; ok {
					flags |= f
				} else {
					unknown = append(unknown, t.Name)
				}
				if err := d.Skip(); err != nil {
					return 0, nil, fmt.Errorf("decode propfind body failed, err:%w", err)
				}
			}
		case xml.EndElement:
			if strings.ToLower(t.Name.Local) == "prop" {
				inProp = false
			}
		}
	}
	if !seen {
		// no body means allprop per RFC 4918
		return PropAll, nil, nil
	}
	return flags, unknown, nil
}

// LockInfoRequest is the parsed LOCK request body.
type LockInfoRequest struct {
	Scope string // "exclusive" or "shared"
	Owner string
}

type lockInfoDoc struct {
	XMLName   xml.Name `xml:"lockinfo"`
	LockScope struct {
		Exclusive *struct{} `xml:"exclusive"`
		Shared    *struct{} `xml:"shared"`
	} `xml:"lockscope"`
	Owner struct {
		Href string `xml:"href"`
		Text string `xml:",chardata"`
	} `xml:"owner"`
}

// ParseLockInfo reads a LOCK request body. A missing body yields nil,
// which the handler treats as a refresh of an existing lock.
func ParseLockInfo(r io.Reader) (*LockInfoRequest, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read lockinfo body failed, err:%w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil
	}
	var doc lockInfoDoc
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode lockinfo body failed, err:%w", err)
	}
	req := &LockInfoRequest{Scope: "exclusive"}
	if doc.LockScope.Shared != nil {
		req.Scope = "shared"
	}
	req.Owner = strings.TrimSpace(doc.Owner.Href)
	if len(req.Owner) == 0 {
		req.Owner = strings.TrimSpace(doc.Owner.Text)
	}
	return req, nil
}

package model

import "encoding/xml"

// Multistatus 是 PROPFIND 返回的根结构
type Multistatus struct {
	XMLName   xml.Name    `xml:"D:multistatus"`
	XMLNS     string      `xml:"xmlns:D,attr"`
	Responses []*Response `xml:"D:response"`
}

// Response 代表每个文件或目录的信息
type Response struct {
	Href      string     `xml:"D:href"`
	Propstats []Propstat `xml:"D:propstat"`
}

// Propstat groups properties sharing one result status.
type Propstat struct {
	Prop   Prop   `xml:"D:prop"`
	Status string `xml:"D:status"`
}

// Prop holds WebDAV resource properties. Fields are emitted only when
// set; Missing carries the empty elements of the not-found propstat.
type Prop struct {
	ResourceType  *ResourceType  `xml:"D:resourcetype,omitempty"`
	CreationDate  string         `xml:"D:creationdate,omitempty"`
	LastModified  string         `xml:"D:getlastmodified,omitempty"`
	ContentLength *int64         `xml:"D:getcontentlength,omitempty"`
	ContentType   string         `xml:"D:getcontenttype,omitempty"`
	DisplayName   string         `xml:"D:displayname,omitempty"`
	Permissions   string         `xml:"D:permissions,omitempty"`
	Missing       []EmptyElement `xml:",omitempty"`
}

// EmptyElement renders a named empty element, the name comes from the
// request so unsupported properties echo back verbatim.
type EmptyElement struct {
	XMLName xml.Name
}

// ResourceType 用于区分文件和目录
type ResourceType struct {
	Collection *struct{} `xml:"D:collection,omitempty"`
}

// PropLockDiscovery is the LOCK response body.
type PropLockDiscovery struct {
	XMLName       xml.Name      `xml:"D:prop"`
	XMLNS         string        `xml:"xmlns:D,attr"`
	LockDiscovery LockDiscovery `xml:"D:lockdiscovery"`
}

type LockDiscovery struct {
	Active []ActiveLock `xml:"D:activelock"`
}

type ActiveLock struct {
	LockScope LockScope `xml:"D:lockscope"`
	LockType  LockType  `xml:"D:locktype"`
	Depth     string    `xml:"D:depth"`
	Owner     string    `xml:"D:owner,omitempty"`
	Timeout   string    `xml:"D:timeout"`
	LockToken Href      `xml:"D:locktoken"`
	LockRoot  Href      `xml:"D:lockroot"`
}

type LockScope struct {
	Exclusive *struct{} `xml:"D:exclusive,omitempty"`
	Shared    *struct{} `xml:"D:shared,omitempty"`
}

type LockType struct {
	Write struct{} `xml:"D:write"`
}

type Href struct {
	Href string `xml:"D:href"`
}

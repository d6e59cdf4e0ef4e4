package entity

// ResourceItem carries the metadata of a single file or collection.
// It is derived from the filesystem per request and never cached
// across requests.
type ResourceItem struct {
	Name  string `json:"name"`
	Size  int64  `json:"size"`
	Mode  uint32 `json:"mode"`
	Ctime int64  `json:"ctime"`
	Mtime int64  `json:"mtime"`
	IsDir bool   `json:"is_dir"`
}

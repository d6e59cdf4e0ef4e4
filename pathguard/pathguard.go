package pathguard

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

var (
	ErrEscapesRoot         = errors.New("path escapes served root")
	ErrHiddenItem          = errors.New("hidden items are not allowed")
	ErrExtensionNotAllowed = errors.New("file extension is not allowed")
)

// Gate validates request paths before any filesystem access happens.
// A path passes only if it stays inside the served root after
// canonicalization and symlink resolution, contains no dot-prefixed
// component (unless hidden items are allowed) and carries an allowed
// extension (empty allow-list means every extension passes).
type Gate struct {
	root        string
	allowHidden bool
	exts        map[string]struct{}
}

func New(root string, allowedExts []string, allowHidden bool) (*Gate, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root failed, root:%s, err:%w", root, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("root not accessible, root:%s, err:%w", abs, err)
	}
	g := &Gate{
		root:        resolved,
		allowHidden: allowHidden,
	}
	if len(allowedExts) > 0 {
		g.exts = make(map[string]struct{}, len(allowedExts))
		for _, ext := range allowedExts {
			g.exts[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
		}
	}
	return g, nil
}

// Root returns the canonical served root.
func (g *Gate) Root() string {
	return g.root
}

// Authorize maps a slash-separated request path to an absolute
// filesystem path under the root, or fails. The returned path may not
// exist yet; containment is verified against the deepest existing
// ancestor so a symlinked subtree cannot point outside the root.
func (g *Gate) Authorize(name string) (string, error) {
	rel := path.Clean("/" + name)
	if rel != "/" {
		segs := strings.Split(rel[1:], "/")
		for _, seg := range segs {
			if !g.allowHidden && strings.HasPrefix(seg, ".") {
				return "", fmt.Errorf("reject segment %q: %w", seg, ErrHiddenItem)
			}
		}
		if err := g.checkExtension(segs[len(segs)-1]); err != nil {
			return "", err
		}
	}
	full := filepath.Join(g.root, filepath.FromSlash(rel))
	anchor := resolveExistingAncestor(full)
	if anchor != g.root && !strings.HasPrefix(anchor, g.root+string(filepath.Separator)) {
		return "", fmt.Errorf("reject path %q: %w", name, ErrEscapesRoot)
	}
	return full, nil
}

func (g *Gate) checkExtension(base string) error {
	if g.exts == nil {
		return nil
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(base), "."))
	if len(ext) == 0 {
		// extension-less names are collections or plain files, the
		// allow-list only constrains named extensions
		return nil
	}
	if _, ok := g.exts[ext]; !ok {
		return fmt.Errorf("reject extension %q: %w", ext, ErrExtensionNotAllowed)
	}
	return nil
}

// resolveExistingAncestor resolves symlinks on the deepest prefix of p
// that exists on disk.
func resolveExistingAncestor(p string) string {
	for {
		resolved, err := filepath.EvalSymlinks(p)
		if err == nil {
			return resolved
		}
		parent := filepath.Dir(p)
		if parent == p {
			return p
		}
		p = parent
	}
}

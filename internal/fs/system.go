// Package fs lists directory trees for the host. Rule matching never
// touches the file system; the host walks, then asks about each entry.
package fs

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"

	"github.com/justyntemme/colorfolder/internal/debug"
)

// Entry is one walked file or folder.
type Entry struct {
	Name  string
	Rel   string // forward-slash path relative to the walk root, prefixed with the root's name
	IsDir bool
	Depth int // 0 for direct children of the root
}

// Options controls Walk.
type Options struct {
	MaxDepth   int  // 0 walks only direct children; negative is unlimited
	ShowHidden bool // include dotfiles
}

// skipDirRoots contains top-level directories to skip (without trailing slash)
var skipDirRoots = map[string]bool{
	"dev":        true,
	"proc":       true,
	"sys":        true,
	"run":        true,
	"snap":       true,
	"boot":       true,
	"lost+found": true,
}

// shouldSkipPath returns true for virtual system directories under "/".
func shouldSkipPath(path string) bool {
	// Must start with "/" (Unix absolute path)
	if len(path) < 2 || path[0] != '/' {
		return false
	}
	rest := path[1:]
	slashIdx := strings.IndexByte(rest, '/')
	var firstComponent string
	if slashIdx == -1 {
		firstComponent = rest
	} else {
		firstComponent = rest[:slashIdx]
	}
	return skipDirRoots[firstComponent]
}

// Walk lists root's tree in display order: siblings sorted by name with a
// folder's contents directly after it.
func Walk(ctx context.Context, root string, opts Options) ([]Entry, error) {
	root = filepath.Clean(root)
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	base := filepath.Base(abs)
	debug.Log(debug.FS, "walk %q depth=%d", abs, opts.MaxDepth)

	var result []Entry
	var mu sync.Mutex

	conf := &fastwalk.Config{Follow: false}
	err = fastwalk.Walk(conf, root, func(fullPath string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			debug.Log(debug.FS, "walk error at %q: %v", fullPath, err)
			return nil // Skip errors, continue walking
		}
		if fullPath == root {
			return nil
		}

		rel, err := filepath.Rel(root, fullPath)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		depth := strings.Count(rel, "/")

		if !opts.ShowHidden && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fastwalk.SkipDir
			}
			return nil
		}
		if d.IsDir() && shouldSkipPath(filepath.ToSlash(filepath.Join(abs, rel))) {
			return fastwalk.SkipDir
		}

		mu.Lock()
		result = append(result, Entry{
			Name:  d.Name(),
			Rel:   base + "/" + rel,
			IsDir: d.IsDir(),
			Depth: depth,
		})
		mu.Unlock()

		if d.IsDir() && opts.MaxDepth >= 0 && depth >= opts.MaxDepth {
			return fastwalk.SkipDir
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(result, func(i, j int) bool {
		return treeLess(result[i].Rel, result[j].Rel)
	})
	debug.Log(debug.FS, "walk %q: %d entries", abs, len(result))
	return result, nil
}

// treeLess orders paths segment by segment so children follow their parent.
func treeLess(a, b string) bool {
	as, bs := strings.Split(a, "/"), strings.Split(b, "/")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if as[i] != bs[i] {
			return strings.ToLower(as[i]) < strings.ToLower(bs[i]) ||
				(strings.EqualFold(as[i], bs[i]) && as[i] < bs[i])
		}
	}
	return len(as) < len(bs)
}

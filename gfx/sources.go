package gfx

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
)

// CopyPass is the plain texture draw every other pass falls back to.
const CopyPass = "copy"

//go:embed shaders/*.frag
var builtin embed.FS

// Sources returns the fragment shader sources by pass name. Every
// <name>.frag in dir replaces the built-in shader of that name or adds a new
// one; an empty dir uses the built-in set only.
func Sources(dir string) (map[string]string, error) {
	sources := make(map[string]string)
	if err := readFrags(builtin, "shaders", sources); err != nil {
		return nil, err
	}
	if dir == "" {
		return sources, nil
	}

	before := make(map[string]string, len(sources))
	for k, v := range sources {
		before[k] = v
	}
	if err := readFrags(os.DirFS(dir), ".", sources); err != nil {
		return nil, fmt.Errorf("loading shaders from %s: %w", dir, err)
	}
	for name, src := range sources {
		if b, ok := before[name]; !ok {
			glog.Infof("shaders: added %s from %s", name, dir)
		} else if b != src {
			glog.Infof("shaders: %s replaced from %s", name, dir)
		}
	}
	return sources, nil
}

func readFrags(fsys fs.FS, dir string, dst map[string]string) error {
	paths, err := fs.Glob(fsys, filepath.ToSlash(filepath.Join(dir, "*.frag")))
	if err != nil {
		return err
	}
	for _, p := range paths {
		b, err := fs.ReadFile(fsys, p)
		if err != nil {
			return err
		}
		dst[strings.TrimSuffix(filepath.Base(p), ".frag")] = string(b)
	}
	return nil
}

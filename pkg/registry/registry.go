// pkg/registry/registry.go
package registry

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultLibrary is the library set resolved when none is configured
const DefaultLibrary = "alsa"

// ErrNotFound indicates the registry has no entry for a name
var ErrNotFound = errors.New("registry: library not found")

//go:embed deps/*.toml
var depsFS embed.FS

// Entry describes one native library set, from deps/<name>.toml
type Entry struct {
	Name      string            `toml:"name"`
	PkgConfig string            `toml:"pkg_config"`
	Libs      []string          `toml:"libs"`
	Headers   []string          `toml:"headers"`
	Backends  map[string]string `toml:"backends"`
}

// Registry provides lookup into library set descriptions
type Registry struct {
	fsys fs.FS
	dir  string
}

// New creates a Registry over the embedded deps directory
func New() *Registry {
	return &Registry{fsys: depsFS, dir: "deps"}
}

// NewFS creates a Registry reading <dir>/<name>.toml from fsys
func NewFS(fsys fs.FS, dir string) *Registry {
	return &Registry{fsys: fsys, dir: dir}
}

// Load reads and parses <dir>/<name>.toml
func (r *Registry) Load(name string) (*Entry, error) {
	data, err := fs.ReadFile(r.fsys, path.Join(r.dir, name+".toml"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("registry: reading '%s': %w", name, err)
	}

	var entry Entry
	if _, err := toml.Decode(string(data), &entry); err != nil {
		return nil, fmt.Errorf("registry: failed to parse '%s': %w", name, err)
	}
	if entry.Name == "" {
		entry.Name = name
	}
	if entry.PkgConfig == "" {
		entry.PkgConfig = entry.Name
	}
	if len(entry.Libs) == 0 {
		return nil, fmt.Errorf("registry: '%s' lists no libs", name)
	}

	return &entry, nil
}

// Names lists every entry in the registry
func (r *Registry) Names() ([]string, error) {
	matches, err := fs.Glob(r.fsys, path.Join(r.dir, "*.toml"))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, strings.TrimSuffix(path.Base(m), ".toml"))
	}
	sort.Strings(names)
	return names, nil
}

// Hint returns an install suggestion for the given package manager,
// e.g. Hint("apt") -> "install libasound2-dev (apt)"
func (e *Entry) Hint(backend string) string {
	if backend == "" {
		return ""
	}
	pkg, ok := e.Backends[backend]
	if !ok {
		return ""
	}
	return fmt.Sprintf("install %s (%s)", pkg, backend)
}

// pkg/probe/types.go
package probe

import (
	"github.com/arc-language/alsa-sys/pkg/platform"
)

// Patterns lists artifact file name patterns for one platform family.
// Each pattern holds a single %s for the library base name.
type Patterns struct {
	Static  []string
	Dynamic []string
}

// Library represents a found library file
type Library struct {
	Name     string // Library base name (e.g., "asound")
	File     string // File name as found (e.g., "libasound.so")
	Path     string // Path to the file inside the probed directory
	Version  string // Version suffix of a shared object (e.g., "2" from libasound.so.2)
	IsStatic bool
}

// Capability records which artifacts exist for one library name
type Capability struct {
	Name    string
	Static  *Library // nil when no static artifact matched
	Dynamic *Library // nil when no dynamic artifact matched
}

// Report is the result of probing one directory for a set of names
type Report struct {
	Dir        string
	Family     platform.Family
	Libraries  []Capability
	CanStatic  bool // every name has a static artifact
	CanDynamic bool // every name has a dynamic artifact
}

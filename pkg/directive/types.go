// pkg/directive/types.go
package directive

import (
	"io"

	"github.com/arc-language/alsa-sys/pkg/core"
)

// Kind identifies what a directive asks of the build system
type Kind string

const (
	KindRerunIfEnvChanged Kind = "rerun-if-env-changed"
	KindLinkSearch        Kind = "link-search"
	KindInclude           Kind = "include"
	KindDefine            Kind = "define"
	KindLinkLib           Kind = "link-lib"
	KindLinkFramework     Kind = "link-framework"
)

// Directive is one instruction for the enclosing build
type Directive struct {
	Kind  Kind
	Value string        // variable, directory, define or library name
	Mode  core.LinkMode // KindLinkLib only
	Path  string        // static archive for KindLinkLib, when known
}

// Renderer writes directives in one build system's syntax
type Renderer interface {
	Render(w io.Writer, directives []Directive) error
}

// Options tunes renderers
type Options struct {
	Package string   // Go package of the generated cgo file
	Source  string   // tool name written into generated headers
	Headers []string // C headers the generated cgo file includes
}

// RerunIfEnvChanged builds a re-run trigger
func RerunIfEnvChanged(name string) Directive {
	return Directive{Kind: KindRerunIfEnvChanged, Value: name}
}

// LinkSearch builds a native library search path
func LinkSearch(dir string) Directive {
	return Directive{Kind: KindLinkSearch, Value: dir}
}

// Include builds an include path
func Include(dir string) Directive {
	return Directive{Kind: KindInclude, Value: dir}
}

// Define builds a preprocessor define (NAME or NAME=VALUE)
func Define(def string) Directive {
	return Directive{Kind: KindDefine, Value: def}
}

// LinkLib builds a link directive. path may be empty.
func LinkLib(name string, mode core.LinkMode, path string) Directive {
	return Directive{Kind: KindLinkLib, Value: name, Mode: mode, Path: path}
}

// LinkFramework builds a Darwin framework link
func LinkFramework(name string) Directive {
	return Directive{Kind: KindLinkFramework, Value: name}
}

// Filter returns the directives of the given kinds, keeping order
func Filter(directives []Directive, kinds ...Kind) []Directive {
	var out []Directive
	for _, d := range directives {
		for _, k := range kinds {
			if d.Kind == k {
				out = append(out, d)
				break
			}
		}
	}
	return out
}

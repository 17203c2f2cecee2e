// pkg/directive/flags.go
package directive

import (
	"fmt"
	"io"

	"github.com/kballard/go-shellquote"
)

// Flags renders a single compiler/linker command line fragment,
// -I... -D... -L... -l..., in the style of pkg-config --cflags --libs
type Flags struct{}

// CompilerFlags holds compiler and linker flags
type CompilerFlags struct {
	IncludeFlags []string // -I and -D flags
	LibraryFlags []string // -L flags
	LinkFlags    []string // -l flags, archive paths and frameworks
}

// Collect sorts directives into compiler and linker flags
func Collect(directives []Directive) CompilerFlags {
	var f CompilerFlags
	for _, d := range directives {
		switch d.Kind {
		case KindInclude:
			f.IncludeFlags = append(f.IncludeFlags, "-I"+d.Value)
		case KindDefine:
			f.IncludeFlags = append(f.IncludeFlags, "-D"+d.Value)
		case KindLinkSearch:
			f.LibraryFlags = append(f.LibraryFlags, "-L"+d.Value)
		case KindLinkLib:
			f.LinkFlags = append(f.LinkFlags, linkFlag(d))
		case KindLinkFramework:
			f.LinkFlags = append(f.LinkFlags, "-framework", d.Value)
		}
	}
	return f
}

// All returns every flag in command line order
func (f CompilerFlags) All() []string {
	all := make([]string, 0, len(f.IncludeFlags)+len(f.LibraryFlags)+len(f.LinkFlags))
	all = append(all, f.IncludeFlags...)
	all = append(all, f.LibraryFlags...)
	all = append(all, f.LinkFlags...)
	return all
}

// Render implements Renderer
func (Flags) Render(w io.Writer, directives []Directive) error {
	_, err := fmt.Fprintln(w, shellquote.Join(Collect(directives).All()...))
	return err
}

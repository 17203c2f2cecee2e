// pkg/directive/render.go
package directive

import (
	"fmt"

	"github.com/arc-language/alsa-sys/pkg/core"
)

// New returns the renderer for a format (cargo, cgo, flags)
func New(format string, opts Options) (Renderer, error) {
	if opts.Source == "" {
		opts.Source = "alsa-sys"
	}

	switch format {
	case core.FormatCargo, "":
		return Cargo{}, nil
	case core.FormatCgo:
		if opts.Package == "" {
			opts.Package = "alsa"
		}
		return Cgo{opts: opts}, nil
	case core.FormatFlags:
		return Flags{}, nil
	default:
		return nil, fmt.Errorf("unknown directive format %q", format)
	}
}

// linkFlag renders a link directive for cc-style command lines. Static
// links with a known archive are passed by path.
func linkFlag(d Directive) string {
	if d.Mode.IsStatic() && d.Path != "" {
		return d.Path
	}
	return "-l" + d.Value
}

// pkg/directive/cargo.go
package directive

import (
	"bufio"
	"fmt"
	"io"
)

// Cargo renders cargo build script output (cargo:key=value lines)
type Cargo struct{}

// Render implements Renderer. Defines have no cargo form and are skipped.
func (Cargo) Render(w io.Writer, directives []Directive) error {
	bw := bufio.NewWriter(w)
	for _, d := range directives {
		line, ok := cargoLine(d)
		if !ok {
			continue
		}
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func cargoLine(d Directive) (string, bool) {
	switch d.Kind {
	case KindRerunIfEnvChanged:
		return "cargo:rerun-if-env-changed=" + d.Value, true
	case KindLinkSearch:
		return "cargo:rustc-link-search=native=" + d.Value, true
	case KindInclude:
		return "cargo:include=" + d.Value, true
	case KindLinkLib:
		kind := "dylib"
		if d.Mode.IsStatic() {
			kind = "static"
		}
		return "cargo:rustc-link-lib=" + kind + "=" + d.Value, true
	case KindLinkFramework:
		return "cargo:rustc-link-lib=framework=" + d.Value, true
	default:
		return "", false
	}
}

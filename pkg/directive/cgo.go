// pkg/directive/cgo.go
package directive

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"strings"
)

// Cgo renders a Go source file whose preamble carries #cgo CFLAGS and
// LDFLAGS lines
type Cgo struct {
	opts Options
}

// Render implements Renderer
func (c Cgo) Render(w io.Writer, directives []Directive) error {
	var cflags, ldflags, inputs []string

	for _, d := range directives {
		switch d.Kind {
		case KindRerunIfEnvChanged:
			inputs = append(inputs, d.Value)
		case KindInclude:
			cflags = append(cflags, cgoQuote("-I"+d.Value))
		case KindDefine:
			cflags = append(cflags, cgoQuote("-D"+d.Value))
		case KindLinkSearch:
			ldflags = append(ldflags, cgoQuote("-L"+d.Value))
		case KindLinkLib:
			ldflags = append(ldflags, cgoQuote(linkFlag(d)))
		case KindLinkFramework:
			ldflags = append(ldflags, "-framework", cgoQuote(d.Value))
		}
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by %s; DO NOT EDIT.\n", c.opts.Source)
	if len(inputs) > 0 {
		buf.WriteString("//\n// Regenerate when any of these change:\n")
		for _, name := range inputs {
			fmt.Fprintf(&buf, "//\t%s\n", name)
		}
	}
	fmt.Fprintf(&buf, "\npackage %s\n\n/*\n", c.opts.Package)
	if len(cflags) > 0 {
		fmt.Fprintf(&buf, "#cgo CFLAGS: %s\n", strings.Join(cflags, " "))
	}
	if len(ldflags) > 0 {
		fmt.Fprintf(&buf, "#cgo LDFLAGS: %s\n", strings.Join(ldflags, " "))
	}
	for _, h := range c.opts.Headers {
		fmt.Fprintf(&buf, "#include <%s>\n", h)
	}
	buf.WriteString("*/\nimport \"C\"\n")

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("formatting generated cgo file: %w", err)
	}
	_, err = w.Write(src)
	return err
}

// cgoQuote double-quotes flags containing whitespace; cgo splits the
// flag list like a shell
func cgoQuote(s string) string {
	if !strings.ContainsAny(s, " \t\"'\\") {
		return s
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		if r == '"' || r == '\\' {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

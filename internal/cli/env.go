// internal/cli/env.go
package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/arc-language/alsa-sys/pkg/env"
	"github.com/arc-language/alsa-sys/pkg/pkgconfig"
	"github.com/arc-language/alsa-sys/pkg/registry"
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "List the environment variables the resolver reads",
	Long: `List every variable consulted for the target, target-prefixed form
first, with its current value. Changing any of them should trigger a rebuild.`,
	Args: cobra.NoArgs,
	RunE: runEnv,
}

func runEnv(cmd *cobra.Command, args []string) error {
	r, err := newResolver()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Target: %s (prefix %s)\n", r.Platform().Target, r.Platform().Target.EnvPrefix())
	writeLibrary(out, r.Entry())
	fmt.Fprintln(out)

	names := append(r.Consulted(), pkgconfig.Tracked(r.Platform())...)
	return writeEnv(cmd.OutOrStdout(), env.OS(), names)
}

func writeLibrary(w io.Writer, e *registry.Entry) {
	fmt.Fprintf(w, "Library: %s (pkg-config %s)\n", e.Name, e.PkgConfig)
	fmt.Fprintf(w, "  libs:    %s\n", strings.Join(e.Libs, ", "))
	if len(e.Headers) > 0 {
		fmt.Fprintf(w, "  headers: %s\n", strings.Join(e.Headers, ", "))
	}
}

func writeEnv(w io.Writer, src env.Source, names []string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		value := "(unset)"
		if v, ok := src.LookupEnv(name); ok {
			value = fmt.Sprintf("%q", v)
		}
		fmt.Fprintf(tw, "%s\t%s\n", name, value)
	}
	return tw.Flush()
}

// internal/cli/probe.go
package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arc-language/alsa-sys/pkg/env"
	"github.com/arc-language/alsa-sys/pkg/platform"
	"github.com/arc-language/alsa-sys/pkg/probe"
	"github.com/arc-language/alsa-sys/pkg/registry"
)

var (
	probeLibs   string
	probeVerify bool
)

var probeCmd = &cobra.Command{
	Use:   "probe DIR",
	Short: "Show which library artifacts a directory provides",
	Long: `Check DIR for static and dynamic artifacts of each library name and
print the link mode the resolver would pick for it.`,
	Args: cobra.ExactArgs(1),
	RunE: runProbe,
}

func init() {
	probeCmd.Flags().StringVar(&probeLibs, "libs", "", "colon-separated library names (default from the registry)")
	probeCmd.Flags().BoolVar(&probeVerify, "verify", false, "open static archives and check their members")
}

func runProbe(cmd *cobra.Command, args []string) error {
	plat, err := platform.Detect(targetTriple(), "")
	if err != nil {
		return fmt.Errorf("detecting platform: %w", err)
	}

	libs, err := probeNames(probeLibs, config.Library)
	if err != nil {
		return err
	}

	return writeProbe(cmd.OutOrStdout(), args[0], libs, plat.Target.Family(), probeVerify)
}

// probeNames splits the --libs value like the LIBS variable, falling back
// to the registry entry
func probeNames(flag, library string) ([]string, error) {
	ov := &env.Overrides{Libs: env.Value{Value: flag, Set: flag != ""}}
	if names := ov.LibNames(); len(names) > 0 {
		return names, nil
	}
	entry, err := registry.New().Load(library)
	if err != nil {
		return nil, err
	}
	return entry.Libs, nil
}

func writeProbe(w io.Writer, dir string, libs []string, family platform.Family, verify bool) error {
	report, err := probe.Probe(dir, libs, family)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Directory: %s (%s)\n\n", report.Dir, report.Family)
	for _, c := range report.Libraries {
		fmt.Fprintf(w, "  %s\n", c.Name)
		fmt.Fprintf(w, "    static:  %s\n", artifact(c.Static))
		fmt.Fprintf(w, "    dynamic: %s\n", artifact(c.Dynamic))
	}

	var failed []string
	if verify {
		fmt.Fprintf(w, "\nArchives:\n")
		for _, c := range report.Libraries {
			if c.Static == nil {
				continue
			}
			info, err := probe.VerifyArchive(c)
			if err != nil {
				fmt.Fprintf(w, "  %s: %v\n", c.Static.File, err)
				failed = append(failed, c.Static.File)
				continue
			}
			fmt.Fprintf(w, "  %s: %d members, %d bytes\n", c.Static.File, len(info.Members), info.Size)
		}
	}

	all, err := probe.Scan(dir, family)
	if err == nil && len(all) > 0 {
		fmt.Fprintf(w, "\nAll artifacts:\n")
		for _, lib := range all {
			kind := "dynamic"
			if lib.IsStatic {
				kind = "static"
			}
			if lib.Version != "" {
				kind += " " + lib.Version
			}
			fmt.Fprintf(w, "  %-24s %s (%s)\n", lib.File, lib.Name, kind)
		}
	}

	missingStatic, missingDynamic := report.Missing()
	if len(missingStatic) > 0 {
		fmt.Fprintf(w, "\nNo static artifact for: %s\n", strings.Join(missingStatic, ", "))
	}
	if len(missingDynamic) > 0 {
		fmt.Fprintf(w, "\nNo dynamic artifact for: %s\n", strings.Join(missingDynamic, ", "))
	}

	mode, err := report.Mode()
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\nMode: %s\n", mode)

	if len(failed) > 0 {
		return fmt.Errorf("invalid archives: %s", strings.Join(failed, ", "))
	}
	return nil
}

func artifact(lib *probe.Library) string {
	if lib == nil {
		return "-"
	}
	return lib.Path
}

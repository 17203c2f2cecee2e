// internal/cli/version.go
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "alsa-sys version %s\n", version)
		fmt.Fprintln(out, "Native link resolver for libasound")
		fmt.Fprintln(out, "https://github.com/arc-language/alsa-sys")
	},
}

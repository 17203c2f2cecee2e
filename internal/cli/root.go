// internal/cli/root.go
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	alsasys "github.com/arc-language/alsa-sys"
	"github.com/arc-language/alsa-sys/pkg/core"
	"github.com/arc-language/alsa-sys/pkg/probe"
)

var (
	cfgFile string
	target  string // empty means $TARGET, then the host
	format  string
	output  string
	pkgName string
	debug   bool
	config  *core.Config
	logger  = zap.NewNop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "alsa-sys",
	Short: "Resolve how to link the ALSA client library",
	Long: `alsa-sys - native link resolver for libasound

Decides where the ALSA library and headers live and whether to link them
statically or dynamically, then prints the directives for the enclosing
build. Explicit ALSA_LIB_DIR/ALSA_INCLUDE_DIR overrides win; otherwise
pkg-config is asked.`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initConfig,
	RunE:              runResolve,
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/alsa-sys/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&target, "target", "", "target triple (default $TARGET, then the host)")
	rootCmd.PersistentFlags().StringVar(&format, "format", "", "directive format (cargo, cgo, flags)")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "", "write directives to file instead of stdout")
	rootCmd.PersistentFlags().StringVar(&pkgName, "package", "", "Go package name for the cgo format")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add commands
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(probeCmd)
	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig(cmd *cobra.Command, args []string) error {
	var err error
	config, err = core.LoadConfig(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Override config with flags
	if format != "" {
		config.Format = format
	}
	if pkgName != "" {
		config.Package = pkgName
	}
	if debug {
		config.Debug = true
	}

	if config.Debug {
		logger = newLogger()
		probe.SetLogger(logger.Named("probe"))
	}
	return config.Validate()
}

// newLogger builds a development logger on stderr; stdout carries directives
func newLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	l, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		return zap.NewNop()
	}
	return l
}

// targetTriple returns --target, falling back to $TARGET
func targetTriple() string {
	if target != "" {
		return target
	}
	return os.Getenv("TARGET")
}

func newResolver() (*alsasys.Resolver, error) {
	return alsasys.NewResolver(&alsasys.Config{
		Target:    target,
		Library:   config.Library,
		PkgConfig: config.PkgConfig,
		EnvPrefix: config.EnvPrefix,
		Debug:     config.Debug,
		Logger:    logger,
	})
}

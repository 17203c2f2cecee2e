// pkg/pkgconfig/types.go
package pkgconfig

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/arc-language/alsa-sys/pkg/core"
	"github.com/arc-language/alsa-sys/pkg/env"
	"github.com/arc-language/alsa-sys/pkg/platform"
)

// Runner executes pkg-config. env holds KEY=VALUE pairs added to the
// child's environment.
type Runner interface {
	Run(ctx context.Context, name string, args []string, env []string) ([]byte, error)
}

// Config configures a Discoverer
type Config struct {
	Lookup   *env.Lookup        // environment, records consulted names
	Platform *platform.Platform // host and target
	Runner   Runner             // Default: ExecRunner
	Timeout  time.Duration      // Default: 30s
	Debug    bool
	Logger   *zap.Logger // Custom logger (optional)
}

// Discoverer finds libraries through pkg-config
type Discoverer struct {
	config *Config
	runner Runner
	logger *zap.Logger
}

// Link is one library to link
type Link struct {
	Name string
	Mode core.LinkMode
	Path string // static archive, set only for static links
}

// Library is what pkg-config reported for a module
type Library struct {
	Module       string
	LinkPaths    []string // -L
	Links        []Link   // -l
	Frameworks   []string // -framework
	IncludePaths []string // -I
	Defines      []string // -D, without the flag
	Static       bool     // pkg-config was run with --static
}

// Flags is the raw output of pkg-config split into tokens
type Flags []string

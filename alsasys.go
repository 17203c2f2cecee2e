// alsasys.go
package alsasys

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/arc-language/alsa-sys/pkg/core"
	"github.com/arc-language/alsa-sys/pkg/directive"
	"github.com/arc-language/alsa-sys/pkg/env"
	"github.com/arc-language/alsa-sys/pkg/pkgconfig"
	"github.com/arc-language/alsa-sys/pkg/platform"
	"github.com/arc-language/alsa-sys/pkg/probe"
	"github.com/arc-language/alsa-sys/pkg/registry"
)

// Re-export types for convenience
type (
	LinkMode  = core.LinkMode
	Directive = directive.Directive
	// RegistryEntry describes the library set being resolved
	RegistryEntry = registry.Entry
)

// Re-export link modes
const (
	LinkStatic  = core.LinkStatic
	LinkDynamic = core.LinkDynamic
)

// Source records where the link information came from
type Source string

const (
	// SourceOverride means the LIB_DIR/INCLUDE_DIR pair was used
	SourceOverride Source = "override"
	// SourcePkgConfig means system discovery supplied everything
	SourcePkgConfig Source = "pkg-config"
)

// Discoverer is the system package discovery mechanism
type Discoverer interface {
	Find(ctx context.Context, req pkgconfig.Request) (*pkgconfig.Library, error)
}

// Config holds everything a Resolver reads. Zero values select defaults.
type Config struct {
	// Env is the environment; default is the process environment
	Env env.Source

	// Target and Host are triples; empty falls back to the TARGET and
	// HOST variables and then to the running system
	Target string
	Host   string

	// Library is the registry entry to resolve (default "alsa")
	Library string

	// PkgConfig overrides the registry's pkg-config module name
	PkgConfig string

	// EnvPrefix prefixes the override variables (default "ALSA")
	EnvPrefix string

	// Registry supplies library set descriptions; default is embedded
	Registry *registry.Registry

	// Discoverer replaces pkg-config, mainly for tests
	Discoverer Discoverer

	// Runner executes pkg-config when Discoverer is nil
	Runner pkgconfig.Runner

	// Debug enables debug logging
	Debug bool

	// Logger for custom logging
	Logger *zap.Logger
}

// Paths is the outcome of resolve-paths
type Paths struct {
	LibDir     string
	IncludeDir string
	Delegate   bool // neither override is set; use system discovery
}

// Plan is the result of one resolver pass
type Plan struct {
	Target     *platform.Target
	Source     Source
	LibDir     string   // override source only
	IncludeDir string   // override source only
	Libs       []string // in link order
	Headers    []string // C headers of the library set
	Mode       core.LinkMode
	Forced     bool          // Mode came from the STATIC variable
	Report     *probe.Report // probing result, nil unless probed
	Discovered *pkgconfig.Library
	Directives []directive.Directive
	Consulted  []string // environment names, in lookup order
}

// Resolver decides how to link the native library for one build
type Resolver struct {
	config    *Config
	platform  *platform.Platform
	lookup    *env.Lookup
	overrides *env.Overrides
	entry     *registry.Entry
	discover  Discoverer
	logger    *zap.Logger
}

// NewResolver reads the environment once and prepares a Resolver
func NewResolver(cfg *Config) (*Resolver, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	if cfg.Env == nil {
		cfg.Env = env.OS()
	}
	if cfg.Library == "" {
		cfg.Library = registry.DefaultLibrary
	}
	if cfg.EnvPrefix == "" {
		cfg.EnvPrefix = env.DefaultPrefix
	}
	if cfg.Registry == nil {
		cfg.Registry = registry.New()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	target, host := cfg.Target, cfg.Host
	if target == "" {
		target, _ = cfg.Env.LookupEnv("TARGET")
	}
	if host == "" {
		host, _ = cfg.Env.LookupEnv("HOST")
	}

	plat, err := platform.Detect(target, host)
	if err != nil {
		return nil, &Error{Op: "detect platform", Err: fmt.Errorf("%w: %v", ErrPlatformNotSupported, err)}
	}

	entry, err := cfg.Registry.Load(cfg.Library)
	if err != nil {
		if errors.Is(err, registry.ErrNotFound) {
			if names, lerr := cfg.Registry.Names(); lerr == nil {
				err = fmt.Errorf("%w (available: %s)", err, strings.Join(names, ", "))
			}
		}
		return nil, &Error{Op: "load registry", Var: cfg.Library, Err: err}
	}
	if cfg.PkgConfig != "" {
		entry.PkgConfig = cfg.PkgConfig
	}

	lookup := env.NewLookup(cfg.Env, plat.Target.EnvPrefix())
	overrides := env.Load(lookup, cfg.EnvPrefix)

	discover := cfg.Discoverer
	if discover == nil {
		d, err := pkgconfig.New(&pkgconfig.Config{
			Lookup:   lookup,
			Platform: plat,
			Runner:   cfg.Runner,
			Debug:    cfg.Debug,
			Logger:   logger,
		})
		if err != nil {
			return nil, err
		}
		discover = d
	}

	if cfg.Debug {
		logger.Debug("initialized resolver",
			zap.String("platform", plat.String()),
			zap.String("library", entry.Name),
			zap.String("env_prefix", lookup.Prefix()))
	}

	return &Resolver{
		config:    cfg,
		platform:  plat,
		lookup:    lookup,
		overrides: overrides,
		entry:     entry,
		discover:  discover,
		logger:    logger,
	}, nil
}

// Resolve runs the decision procedure once
func (r *Resolver) Resolve(ctx context.Context) (*Plan, error) {
	paths, err := ResolvePaths(r.overrides)
	if err != nil {
		return nil, err
	}

	if paths.Delegate {
		r.logger.Debug("no directory overrides, delegating to pkg-config",
			zap.String("module", r.entry.PkgConfig))
		return r.resolveSystem(ctx)
	}

	libs := ResolveLibraryNames(r.overrides, r.entry.Libs)
	family := r.platform.Target.Family()

	mode, report, err := DetermineLinkMode(r.overrides, paths.LibDir, libs, family)
	if err != nil {
		return nil, err
	}

	r.logger.Debug("resolved override link",
		zap.String("lib_dir", paths.LibDir),
		zap.String("include_dir", paths.IncludeDir),
		zap.Strings("libs", libs),
		zap.String("mode", mode.String()),
		zap.Bool("probed", report != nil))

	plan := &Plan{
		Target:     r.platform.Target,
		Source:     SourceOverride,
		LibDir:     paths.LibDir,
		IncludeDir: paths.IncludeDir,
		Libs:       libs,
		Headers:    r.entry.Headers,
		Mode:       mode,
		Forced:     report == nil,
		Report:     report,
		Consulted:  r.lookup.Consulted(),
	}
	plan.Directives = append(rerunDirectives(plan.Consulted),
		EmitLinkDirectives(paths.LibDir, paths.IncludeDir, libs, mode, staticPaths(paths.LibDir, libs, family, report))...)

	return plan, nil
}

func (r *Resolver) resolveSystem(ctx context.Context) (*Plan, error) {
	lib, err := r.discover.Find(ctx, pkgconfig.Request{
		Module:      r.entry.PkgConfig,
		Static:      r.overrides.Static,
		NoPkgConfig: r.overrides.NoPkgConfig,
	})
	if err != nil {
		if hint := r.entry.Hint(r.platform.Preferred); hint != "" {
			err = fmt.Errorf("%w (hint: %s, or set %s and %s)", err, hint,
				r.overrides.Names.LibDir, r.overrides.Names.IncludeDir)
		}
		return nil, &Error{Op: "discover", Var: r.entry.PkgConfig, Err: fmt.Errorf("%w: %w", ErrDiscovery, err)}
	}

	plan := &Plan{
		Target:     r.platform.Target,
		Source:     SourcePkgConfig,
		Headers:    r.entry.Headers,
		Mode:       core.LinkDynamic,
		Discovered: lib,
		Consulted:  r.lookup.Consulted(),
	}
	if lib.Static {
		plan.Mode = core.LinkStatic
	}

	plan.Directives = rerunDirectives(plan.Consulted)
	for _, dir := range lib.LinkPaths {
		plan.Directives = append(plan.Directives, directive.LinkSearch(dir))
	}
	for _, dir := range lib.IncludePaths {
		plan.Directives = append(plan.Directives, directive.Include(dir))
	}
	for _, def := range lib.Defines {
		plan.Directives = append(plan.Directives, directive.Define(def))
	}
	for _, link := range lib.Links {
		plan.Libs = append(plan.Libs, link.Name)
		plan.Directives = append(plan.Directives, directive.LinkLib(link.Name, link.Mode, link.Path))
	}
	for _, fw := range lib.Frameworks {
		plan.Directives = append(plan.Directives, directive.LinkFramework(fw))
	}

	return plan, nil
}

// Platform returns the detected host and target
func (r *Resolver) Platform() *platform.Platform {
	return r.platform
}

// Entry returns the registry entry being resolved
func (r *Resolver) Entry() *registry.Entry {
	return r.entry
}

// Consulted returns every environment name read so far
func (r *Resolver) Consulted() []string {
	return r.lookup.Consulted()
}

// ResolvePaths applies the override pairing rule: both directories set
// means use them verbatim, neither means delegate, one alone is an error
func ResolvePaths(ov *env.Overrides) (Paths, error) {
	lib, inc := ov.LibDir, ov.IncludeDir

	switch {
	case lib.Set && inc.Set:
		return Paths{LibDir: lib.Value, IncludeDir: inc.Value}, nil
	case lib.Set:
		return Paths{}, &Error{Op: "resolve paths", Var: ov.Names.IncludeDir, Err: fmt.Errorf(
			"%w: %s is set but %s is not set; set both to bypass pkg-config",
			ErrConfig, lib.Name, ov.Names.IncludeDir)}
	case inc.Set:
		return Paths{}, &Error{Op: "resolve paths", Var: ov.Names.LibDir, Err: fmt.Errorf(
			"%w: %s is set but %s is not set; set both to bypass pkg-config",
			ErrConfig, inc.Name, ov.Names.LibDir)}
	default:
		return Paths{Delegate: true}, nil
	}
}

// ResolveLibraryNames returns the LIBS override split on ':' or, when it
// names nothing, a copy of defaults
func ResolveLibraryNames(ov *env.Overrides, defaults []string) []string {
	if names := ov.LibNames(); len(names) > 0 {
		return names
	}
	out := make([]string, len(defaults))
	copy(out, defaults)
	return out
}

// DetermineLinkMode honours the STATIC switch ("0" dynamic, anything else
// static) and otherwise probes libDir. The report is nil when the switch
// decided.
func DetermineLinkMode(ov *env.Overrides, libDir string, libs []string, family platform.Family) (core.LinkMode, *probe.Report, error) {
	if ov.StaticSet() {
		if ov.Static.Value == "0" {
			return core.LinkDynamic, nil, nil
		}
		return core.LinkStatic, nil, nil
	}

	report, err := probe.Probe(libDir, libs, family)
	if err != nil {
		return "", nil, &Error{Op: "probe", Var: libDir, Err: fmt.Errorf("%w: %w", ErrProbe, err)}
	}

	mode, err := report.Mode()
	if err != nil {
		return "", report, &Error{Op: "determine link mode", Var: libDir, Err: err}
	}
	return mode, report, nil
}

// EmitLinkDirectives declares the search path, the include path and one
// link per library, all with the same mode. staticPaths maps names to
// archive files for renderers that link archives by path.
func EmitLinkDirectives(libDir, includeDir string, libs []string, mode core.LinkMode, staticPaths map[string]string) []directive.Directive {
	ds := make([]directive.Directive, 0, len(libs)+2)
	ds = append(ds, directive.LinkSearch(libDir), directive.Include(includeDir))
	for _, name := range libs {
		path := ""
		if mode.IsStatic() {
			path = staticPaths[name]
		}
		ds = append(ds, directive.LinkLib(name, mode, path))
	}
	return ds
}

func rerunDirectives(names []string) []directive.Directive {
	ds := make([]directive.Directive, 0, len(names))
	for _, name := range names {
		ds = append(ds, directive.RerunIfEnvChanged(name))
	}
	return ds
}

// staticPaths maps names to their archive files. A probe report is used
// as is; without one each static spelling of the family is checked on
// disk, and names with no archive are left out so they link by -l.
func staticPaths(libDir string, libs []string, family platform.Family, report *probe.Report) map[string]string {
	paths := make(map[string]string, len(libs))
	if report != nil {
		for _, c := range report.Libraries {
			if c.Static != nil {
				paths[c.Name] = c.Static.Path
			}
		}
		return paths
	}

	patterns := probe.PatternsFor(family).Static
	for _, name := range libs {
		if lib := probe.Locate(libDir, name, patterns, true); lib != nil {
			paths[name] = lib.Path
		}
	}
	return paths
}

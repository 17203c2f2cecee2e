// pkg/pkgconfig/manager.go
package pkgconfig

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/arc-language/alsa-sys/pkg/core"
	"github.com/arc-language/alsa-sys/pkg/env"
	"github.com/arc-language/alsa-sys/pkg/platform"
)

var (
	// ErrDisabled indicates pkg-config was switched off for the library
	ErrDisabled = errors.New("pkg-config disabled")

	// ErrCrossCompile indicates a cross build without PKG_CONFIG_ALLOW_CROSS
	ErrCrossCompile = errors.New("pkg-config has not been configured to support cross-compilation")

	// ErrFailed indicates pkg-config ran but could not find the module
	ErrFailed = errors.New("pkg-config failed")
)

// Request names the module to find and the library-specific switches
type Request struct {
	Module      string
	Static      env.Value // <LIB>_STATIC: "0" dynamic, other non-empty static
	NoPkgConfig env.Value // <LIB>_NO_PKG_CONFIG
}

// New creates a Discoverer
func New(cfg *Config) (*Discoverer, error) {
	if cfg == nil || cfg.Lookup == nil || cfg.Platform == nil {
		return nil, fmt.Errorf("pkgconfig: lookup and platform are required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	runner := cfg.Runner
	if runner == nil {
		runner = ExecRunner{}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	d := &Discoverer{
		config: cfg,
		runner: runner,
		logger: logger.Named("pkg-config"),
	}

	if cfg.Debug {
		d.logger.Debug("initialized pkg-config discovery",
			zap.String("host", cfg.Platform.Host.Triple),
			zap.String("target", cfg.Platform.Target.Triple),
			zap.Duration("timeout", cfg.Timeout))
	}

	return d, nil
}

// Find runs pkg-config for req.Module and returns the reported paths and
// links
func (d *Discoverer) Find(ctx context.Context, req Request) (*Library, error) {
	if req.NoPkgConfig.Set {
		return nil, fmt.Errorf("%s is set: %w", req.NoPkgConfig.Name, ErrDisabled)
	}

	binary := d.targeted(VarBinary)
	allowCross := d.targeted(VarAllowCross)
	allStatic := d.targeted(VarAllStatic)
	allDynamic := d.targeted(VarAllDynamic)

	childEnv := make([]string, 0, len(passThrough))
	values := make(map[string]env.Value, len(passThrough))
	for _, name := range passThrough {
		v := d.targeted(name)
		values[name] = v
		if v.Set {
			childEnv = append(childEnv, name+"="+v.Value)
		}
	}

	sysroot := values[VarSysroot]
	if d.config.Platform.IsCross() {
		allowed := allowCross.Set && allowCross.Value != "0"
		if !allowed && (!sysroot.Set || sysroot.Value == "") {
			return nil, fmt.Errorf("%w: host %s, target %s; set PKG_CONFIG_ALLOW_CROSS=1 or PKG_CONFIG_SYSROOT_DIR",
				ErrCrossCompile, d.config.Platform.Host, d.config.Platform.Target)
		}
	}

	static := wantStatic(req.Static, allStatic, allDynamic)

	name := DefaultBinary
	if binary.Set && binary.Value != "" {
		name = binary.Value
	}
	args := []string{"--libs", "--cflags"}
	if static {
		args = append(args, "--static")
	}
	args = append(args, req.Module)

	d.logger.Debug("running pkg-config",
		zap.String("binary", name),
		zap.Strings("args", args),
		zap.Strings("env", childEnv))

	ctx, cancel := context.WithTimeout(ctx, d.config.Timeout)
	defer cancel()

	out, err := d.runner.Run(ctx, name, args, childEnv)
	if err != nil {
		return nil, fmt.Errorf("%w for %s: %v", ErrFailed, req.Module, err)
	}

	flags, err := SplitFlags(string(out))
	if err != nil {
		return nil, fmt.Errorf("%w for %s: parsing output: %v", ErrFailed, req.Module, err)
	}

	lib, err := Parse(req.Module, flags, core.LinkDynamic)
	if err != nil {
		return nil, fmt.Errorf("%w for %s: %v", ErrFailed, req.Module, err)
	}
	lib.Static = static

	if static {
		roots := systemRoots
		if sysroot.Set && sysroot.Value != "" {
			roots = []string{sysroot.Value}
		}
		for i := range lib.Links {
			if path, ok := staticArchive(lib.Links[i].Name, lib.LinkPaths, roots); ok {
				lib.Links[i].Mode = core.LinkStatic
				lib.Links[i].Path = path
			}
		}
	}

	d.logger.Debug("pkg-config result",
		zap.String("module", req.Module),
		zap.Strings("link_paths", lib.LinkPaths),
		zap.Strings("include_paths", lib.IncludePaths),
		zap.Int("links", len(lib.Links)),
		zap.Bool("static", static))

	return lib, nil
}

// targeted reads a pkg-config variable preferring, in order,
// NAME_<target>, NAME_<target_underscored>, TARGET_NAME (HOST_NAME for
// native builds) and NAME
func (d *Discoverer) targeted(name string) env.Value {
	p := d.config.Platform
	kind := "HOST"
	if p.IsCross() {
		kind = "TARGET"
	}
	return d.config.Lookup.First(
		name+"_"+p.Target.Triple,
		name+"_"+p.Target.Underscored(),
		kind+"_"+name,
		name,
	)
}

func wantStatic(lib, allStatic, allDynamic env.Value) bool {
	if lib.Set && lib.Value != "" {
		return lib.Value != "0"
	}
	return allStatic.Set && !allDynamic.Set
}

// staticArchive looks for lib<name>.a in the link paths outside the
// system roots
func staticArchive(name string, linkPaths, roots []string) (string, bool) {
	for _, dir := range linkPaths {
		if underRoot(dir, roots) {
			continue
		}
		path := filepath.Join(dir, "lib"+name+".a")
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

func underRoot(dir string, roots []string) bool {
	dir = filepath.Clean(dir)
	for _, root := range roots {
		root = filepath.Clean(root)
		if dir == root || strings.HasPrefix(dir, root+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// Tracked returns the pkg-config variable names consulted for plat, in
// lookup order, without reading them
func Tracked(plat *platform.Platform) []string {
	l := env.NewLookup(env.Map{}, "")
	d := &Discoverer{config: &Config{Lookup: l, Platform: plat}}
	for _, name := range []string{VarBinary, VarAllowCross, VarAllStatic, VarAllDynamic} {
		d.targeted(name)
	}
	for _, name := range passThrough {
		d.targeted(name)
	}
	return l.Consulted()
}

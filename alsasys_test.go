// alsasys_test.go
package alsasys

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/alsa-sys/pkg/core"
	"github.com/arc-language/alsa-sys/pkg/directive"
	"github.com/arc-language/alsa-sys/pkg/env"
	"github.com/arc-language/alsa-sys/pkg/pkgconfig"
	"github.com/arc-language/alsa-sys/pkg/platform"
	"github.com/arc-language/alsa-sys/pkg/registry"
)

const (
	testTarget = "x86_64-unknown-linux-gnu"
	testPrefix = "X86_64_UNKNOWN_LINUX_GNU"
)

type fakeDiscoverer struct {
	lib   *pkgconfig.Library
	err   error
	calls []pkgconfig.Request
}

func (f *fakeDiscoverer) Find(_ context.Context, req pkgconfig.Request) (*pkgconfig.Library, error) {
	f.calls = append(f.calls, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.lib, nil
}

func newResolver(t *testing.T, vars env.Map, d Discoverer) *Resolver {
	t.Helper()
	r, err := NewResolver(&Config{
		Env:        vars,
		Target:     testTarget,
		Host:       testTarget,
		Discoverer: d,
	})
	require.NoError(t, err)
	return r
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}
}

func overrides(vars env.Map) *env.Overrides {
	return env.Load(env.NewLookup(vars, testPrefix), env.DefaultPrefix)
}

func TestResolvePaths(t *testing.T) {
	t.Run("both set", func(t *testing.T) {
		p, err := ResolvePaths(overrides(env.Map{
			"ALSA_LIB_DIR":     "/opt/alsa/lib",
			"ALSA_INCLUDE_DIR": "/opt/alsa/include",
		}))
		require.NoError(t, err)
		assert.Equal(t, Paths{LibDir: "/opt/alsa/lib", IncludeDir: "/opt/alsa/include"}, p)
	})

	t.Run("neither set", func(t *testing.T) {
		p, err := ResolvePaths(overrides(env.Map{}))
		require.NoError(t, err)
		assert.True(t, p.Delegate)
	})

	t.Run("only lib dir", func(t *testing.T) {
		_, err := ResolvePaths(overrides(env.Map{"ALSA_LIB_DIR": "/opt/alsa/lib"}))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrConfig))
		assert.Contains(t, err.Error(), "ALSA_INCLUDE_DIR")

		var e *Error
		require.True(t, errors.As(err, &e))
		assert.Equal(t, "ALSA_INCLUDE_DIR", e.Var)
	})

	t.Run("only include dir", func(t *testing.T) {
		_, err := ResolvePaths(overrides(env.Map{"ALSA_INCLUDE_DIR": "/opt/alsa/include"}))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrConfig))
		assert.Contains(t, err.Error(), "ALSA_LIB_DIR")
	})

	t.Run("prefixed wins", func(t *testing.T) {
		p, err := ResolvePaths(overrides(env.Map{
			testPrefix + "_ALSA_LIB_DIR": "/cross/lib",
			"ALSA_LIB_DIR":               "/native/lib",
			"ALSA_INCLUDE_DIR":           "/native/include",
		}))
		require.NoError(t, err)
		assert.Equal(t, "/cross/lib", p.LibDir)
		assert.Equal(t, "/native/include", p.IncludeDir)
	})

	t.Run("empty values count as set", func(t *testing.T) {
		p, err := ResolvePaths(overrides(env.Map{"ALSA_LIB_DIR": "", "ALSA_INCLUDE_DIR": ""}))
		require.NoError(t, err)
		assert.False(t, p.Delegate)
	})
}

func TestResolveLibraryNames(t *testing.T) {
	defaults := []string{"asound"}

	tests := []struct {
		name string
		vars env.Map
		want []string
	}{
		{"unset", env.Map{}, []string{"asound"}},
		{"single", env.Map{"ALSA_LIBS": "asound"}, []string{"asound"}},
		{"several", env.Map{"ALSA_LIBS": "asound:atopology"}, []string{"asound", "atopology"}},
		{"empty segments", env.Map{"ALSA_LIBS": ":asound::"}, []string{"asound"}},
		{"empty value", env.Map{"ALSA_LIBS": ""}, []string{"asound"}},
		{"prefixed", env.Map{testPrefix + "_ALSA_LIBS": "x", "ALSA_LIBS": "y"}, []string{"x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveLibraryNames(overrides(tt.vars), defaults))
		})
	}

	got := ResolveLibraryNames(overrides(env.Map{}), defaults)
	got[0] = "changed"
	assert.Equal(t, "asound", defaults[0])
}

func TestDetermineLinkMode(t *testing.T) {
	libs := []string{"asound"}

	t.Run("static switch zero", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "libasound.a")

		mode, report, err := DetermineLinkMode(overrides(env.Map{"ALSA_STATIC": "0"}), dir, libs, platform.FamilyELF)
		require.NoError(t, err)
		assert.Equal(t, core.LinkDynamic, mode)
		assert.Nil(t, report)
	})

	t.Run("static switch set", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "libasound.so")

		for _, v := range []string{"1", "yes", "false"} {
			mode, report, err := DetermineLinkMode(overrides(env.Map{"ALSA_STATIC": v}), dir, libs, platform.FamilyELF)
			require.NoError(t, err)
			assert.Equal(t, core.LinkStatic, mode, v)
			assert.Nil(t, report)
		}
	})

	t.Run("switch skips missing directory", func(t *testing.T) {
		mode, _, err := DetermineLinkMode(overrides(env.Map{"ALSA_STATIC": "1"}),
			filepath.Join(t.TempDir(), "missing"), libs, platform.FamilyELF)
		require.NoError(t, err)
		assert.Equal(t, core.LinkStatic, mode)
	})

	probes := []struct {
		name  string
		files []string
		libs  []string
		want  core.LinkMode
	}{
		{"static only", []string{"libasound.a"}, libs, core.LinkStatic},
		{"dynamic only", []string{"libasound.so"}, libs, core.LinkDynamic},
		{"both prefers dynamic", []string{"libasound.a", "libasound.so"}, libs, core.LinkDynamic},
		{"mixed falls back to static", []string{"libasound.a", "libasound.so", "libatopology.a"},
			[]string{"asound", "atopology"}, core.LinkStatic},
	}
	for _, tt := range probes {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			touch(t, dir, tt.files...)

			mode, report, err := DetermineLinkMode(overrides(env.Map{}), dir, tt.libs, platform.FamilyELF)
			require.NoError(t, err)
			assert.Equal(t, tt.want, mode)
			require.NotNil(t, report)
		})
	}

	t.Run("no artifacts", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "README")

		_, _, err := DetermineLinkMode(overrides(env.Map{}), dir, libs, platform.FamilyELF)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoArtifacts))
		assert.Contains(t, err.Error(), dir)
	})

	t.Run("unreadable directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "missing")

		_, _, err := DetermineLinkMode(overrides(env.Map{}), dir, libs, platform.FamilyELF)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrProbe))
		assert.False(t, errors.Is(err, ErrNoArtifacts))
	})

	t.Run("empty switch probes", func(t *testing.T) {
		dir := t.TempDir()
		touch(t, dir, "libasound.a")

		mode, report, err := DetermineLinkMode(overrides(env.Map{"ALSA_STATIC": ""}), dir, libs, platform.FamilyELF)
		require.NoError(t, err)
		assert.Equal(t, core.LinkStatic, mode)
		assert.NotNil(t, report)
	})
}

func TestEmitLinkDirectives(t *testing.T) {
	ds := EmitLinkDirectives("/opt/alsa/lib", "/opt/alsa/include", []string{"asound", "atopology"},
		core.LinkStatic, map[string]string{"asound": "/opt/alsa/lib/libasound.a"})

	assert.Equal(t, []directive.Directive{
		directive.LinkSearch("/opt/alsa/lib"),
		directive.Include("/opt/alsa/include"),
		directive.LinkLib("asound", core.LinkStatic, "/opt/alsa/lib/libasound.a"),
		directive.LinkLib("atopology", core.LinkStatic, ""),
	}, ds)

	ds = EmitLinkDirectives("/l", "/i", []string{"asound"}, core.LinkDynamic, map[string]string{"asound": "/l/libasound.a"})
	assert.Equal(t, directive.LinkLib("asound", core.LinkDynamic, ""), ds[2])
}

func render(t *testing.T, plan *Plan) string {
	t.Helper()
	r, err := directive.New(core.FormatCargo, directive.Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, plan.Directives))
	return buf.String()
}

func TestResolveOverrideCargoOutput(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "libasound.so")

	d := &fakeDiscoverer{err: errors.New("must not be called")}
	r := newResolver(t, env.Map{
		"ALSA_LIB_DIR":     dir,
		"ALSA_INCLUDE_DIR": "/opt/alsa/include",
	}, d)

	plan, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.Empty(t, d.calls)

	assert.Equal(t, SourceOverride, plan.Source)
	assert.Equal(t, core.LinkDynamic, plan.Mode)
	assert.False(t, plan.Forced)
	assert.Equal(t, []string{"asound"}, plan.Libs)
	assert.Equal(t, []string{"alsa/asoundlib.h"}, plan.Headers)

	want := "" +
		"cargo:rerun-if-env-changed=" + testPrefix + "_ALSA_LIB_DIR\n" +
		"cargo:rerun-if-env-changed=ALSA_LIB_DIR\n" +
		"cargo:rerun-if-env-changed=" + testPrefix + "_ALSA_INCLUDE_DIR\n" +
		"cargo:rerun-if-env-changed=ALSA_INCLUDE_DIR\n" +
		"cargo:rerun-if-env-changed=" + testPrefix + "_ALSA_LIBS\n" +
		"cargo:rerun-if-env-changed=ALSA_LIBS\n" +
		"cargo:rerun-if-env-changed=" + testPrefix + "_ALSA_STATIC\n" +
		"cargo:rerun-if-env-changed=ALSA_STATIC\n" +
		"cargo:rerun-if-env-changed=" + testPrefix + "_ALSA_NO_PKG_CONFIG\n" +
		"cargo:rerun-if-env-changed=ALSA_NO_PKG_CONFIG\n" +
		"cargo:rustc-link-search=native=" + dir + "\n" +
		"cargo:include=/opt/alsa/include\n" +
		"cargo:rustc-link-lib=dylib=asound\n"
	assert.Equal(t, want, render(t, plan))
}

func TestResolveOverrideForcedStatic(t *testing.T) {
	r := newResolver(t, env.Map{
		"ALSA_LIB_DIR":     "/opt/alsa/lib",
		"ALSA_INCLUDE_DIR": "/opt/alsa/include",
		"ALSA_LIBS":        "asound:atopology",
		"ALSA_STATIC":      "1",
	}, &fakeDiscoverer{})

	plan, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.True(t, plan.Forced)
	assert.Nil(t, plan.Report)

	links := directive.Filter(plan.Directives, directive.KindLinkLib)
	require.Len(t, links, 2)
	assert.Equal(t, directive.LinkLib("asound", core.LinkStatic, ""), links[0])
	assert.Equal(t, directive.LinkLib("atopology", core.LinkStatic, ""), links[1])
}

func TestResolveForcedStaticMSVC(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "asound.lib", "libatopology.a")

	r, err := NewResolver(&Config{
		Env: env.Map{
			"ALSA_LIB_DIR":     dir,
			"ALSA_INCLUDE_DIR": "/i",
			"ALSA_LIBS":        "asound:atopology:missing",
			"ALSA_STATIC":      "1",
		},
		Target:     "x86_64-pc-windows-msvc",
		Host:       testTarget,
		Discoverer: &fakeDiscoverer{},
	})
	require.NoError(t, err)

	plan, err := r.Resolve(context.Background())
	require.NoError(t, err)
	assert.True(t, plan.Forced)

	links := directive.Filter(plan.Directives, directive.KindLinkLib)
	require.Len(t, links, 3)
	assert.Equal(t, filepath.Join(dir, "asound.lib"), links[0].Path)
	assert.Equal(t, filepath.Join(dir, "libatopology.a"), links[1].Path)
	assert.Empty(t, links[2].Path)

	rd, err := directive.New(core.FormatFlags, directive.Options{})
	require.NoError(t, err)
	var buf bytes.Buffer
	require.NoError(t, rd.Render(&buf, plan.Directives))
	assert.Equal(t, "-I/i -L"+dir+" "+filepath.Join(dir, "asound.lib")+" "+
		filepath.Join(dir, "libatopology.a")+" -lmissing\n", buf.String())
}

func TestResolvePartialPair(t *testing.T) {
	d := &fakeDiscoverer{}
	r := newResolver(t, env.Map{"ALSA_LIB_DIR": "/opt/alsa/lib"}, d)

	_, err := r.Resolve(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrConfig))
	assert.Empty(t, d.calls)
}

func TestResolveDelegates(t *testing.T) {
	d := &fakeDiscoverer{lib: &pkgconfig.Library{
		Module:       "alsa",
		LinkPaths:    []string{"/usr/lib/x86_64-linux-gnu"},
		IncludePaths: []string{"/usr/include/alsa"},
		Links:        []pkgconfig.Link{{Name: "asound", Mode: core.LinkDynamic}},
	}}
	r := newResolver(t, env.Map{"ALSA_STATIC": "0"}, d)

	plan, err := r.Resolve(context.Background())
	require.NoError(t, err)

	require.Len(t, d.calls, 1)
	assert.Equal(t, "alsa", d.calls[0].Module)
	assert.Equal(t, "0", d.calls[0].Static.Value)

	assert.Equal(t, SourcePkgConfig, plan.Source)
	assert.Equal(t, core.LinkDynamic, plan.Mode)
	assert.Equal(t, []string{"asound"}, plan.Libs)

	out := render(t, plan)
	assert.Contains(t, out, "cargo:rerun-if-env-changed=ALSA_LIB_DIR\n")
	assert.Contains(t, out, "cargo:rustc-link-search=native=/usr/lib/x86_64-linux-gnu\n")
	assert.Contains(t, out, "cargo:include=/usr/include/alsa\n")
	assert.Contains(t, out, "cargo:rustc-link-lib=dylib=asound\n")
}

func TestResolveDiscoveryFailure(t *testing.T) {
	d := &fakeDiscoverer{err: pkgconfig.ErrFailed}
	r := newResolver(t, env.Map{}, d)

	_, err := r.Resolve(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDiscovery))
	assert.True(t, errors.Is(err, pkgconfig.ErrFailed))
}

func TestNewResolverTargetFromEnv(t *testing.T) {
	r, err := NewResolver(&Config{
		Env:        env.Map{"TARGET": "aarch64-unknown-linux-gnu", "HOST": testTarget},
		Discoverer: &fakeDiscoverer{},
	})
	require.NoError(t, err)
	assert.Equal(t, "aarch64-unknown-linux-gnu", r.Platform().Target.Triple)
	assert.True(t, r.Platform().IsCross())
	assert.Contains(t, r.Consulted(), "AARCH64_UNKNOWN_LINUX_GNU_ALSA_LIB_DIR")
	assert.NotContains(t, r.Consulted(), "TARGET")
}

func TestNewResolverBadTarget(t *testing.T) {
	_, err := NewResolver(&Config{
		Env:        env.Map{},
		Target:     "nonsense",
		Discoverer: &fakeDiscoverer{},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPlatformNotSupported))
}

func TestNewResolverUnknownLibrary(t *testing.T) {
	_, err := NewResolver(&Config{
		Env:        env.Map{},
		Target:     testTarget,
		Library:    "nope",
		Discoverer: &fakeDiscoverer{},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, registry.ErrNotFound)
	assert.Contains(t, err.Error(), "available: alsa")
}

// pkg/probe/library.go
package probe

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/arc-language/alsa-sys/pkg/core"
	"github.com/arc-language/alsa-sys/pkg/platform"
)

// ErrNoArtifacts means a directory lacks static and dynamic artifacts for
// at least one requested name
var ErrNoArtifacts = errors.New("no usable library artifacts")

// Probe reads the immediate entries of dir once and checks every name
// against the static and dynamic patterns of family
func Probe(dir string, names []string, family platform.Family) (*Report, error) {
	files, err := readNames(dir)
	if err != nil {
		return nil, err
	}

	patterns := PatternsFor(family)
	report := &Report{
		Dir:        dir,
		Family:     family,
		Libraries:  make([]Capability, 0, len(names)),
		CanStatic:  true,
		CanDynamic: true,
	}

	for _, name := range names {
		c := Capability{
			Name:    name,
			Static:  match(dir, name, patterns.Static, files, true),
			Dynamic: match(dir, name, patterns.Dynamic, files, false),
		}
		report.CanStatic = report.CanStatic && c.Static != nil
		report.CanDynamic = report.CanDynamic && c.Dynamic != nil
		report.Libraries = append(report.Libraries, c)

		Logger().Debug("probed library",
			zap.String("dir", dir),
			zap.String("name", name),
			zap.Bool("static", c.Static != nil),
			zap.Bool("dynamic", c.Dynamic != nil))
	}

	return report, nil
}

// Mode applies the decision table to the report. Dynamic linking wins
// when both kinds of artifact are present for every name.
func (r *Report) Mode() (core.LinkMode, error) {
	mode, ok := Decide(r.CanStatic, r.CanDynamic)
	if !ok {
		return "", fmt.Errorf("library directory %s does not contain the files to link %s statically or dynamically: %w",
			r.Dir, strings.Join(r.Names(), ", "), ErrNoArtifacts)
	}
	return mode, nil
}

// Missing returns names lacking a static artifact and names lacking a
// dynamic artifact
func (r *Report) Missing() (static, dynamic []string) {
	for _, c := range r.Libraries {
		if c.Static == nil {
			static = append(static, c.Name)
		}
		if c.Dynamic == nil {
			dynamic = append(dynamic, c.Name)
		}
	}
	return static, dynamic
}

// Names returns the probed library names in order
func (r *Report) Names() []string {
	names := make([]string, 0, len(r.Libraries))
	for _, c := range r.Libraries {
		names = append(names, c.Name)
	}
	return names
}

// Decide maps static and dynamic capability to a link mode.
// ok is false when neither kind is available.
func Decide(canStatic, canDynamic bool) (mode core.LinkMode, ok bool) {
	switch {
	case canStatic && !canDynamic:
		return core.LinkStatic, true
	case canDynamic:
		return core.LinkDynamic, true
	default:
		return "", false
	}
}

// Scan returns every library artifact in dir recognised by the family's
// patterns, including versioned shared objects (libasound.so.2)
func Scan(dir string, family platform.Family) ([]*Library, error) {
	files, err := readNames(dir)
	if err != nil {
		return nil, err
	}

	patterns := PatternsFor(family)
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	var libraries []*Library
	for _, file := range names {
		if lib := classify(dir, file, patterns); lib != nil {
			libraries = append(libraries, lib)
		}
	}
	return libraries, nil
}

// Locate stats each pattern for name in dir and returns the first regular
// file found, or nil. It does not list the directory.
func Locate(dir, name string, patterns []string, static bool) *Library {
	for _, pattern := range patterns {
		file := fmt.Sprintf(pattern, name)
		path := filepath.Join(dir, file)
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		return &Library{Name: name, File: file, Path: path, IsStatic: static}
	}
	return nil
}

func readNames(dir string) (map[string]bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading library directory %s: %w", dir, err)
	}

	files := make(map[string]bool, len(entries))
	for _, entry := range entries {
		files[entry.Name()] = true
	}
	return files, nil
}

func match(dir, name string, patterns []string, files map[string]bool, static bool) *Library {
	for _, pattern := range patterns {
		file := fmt.Sprintf(pattern, name)
		if files[file] {
			return &Library{
				Name:     name,
				File:     file,
				Path:     filepath.Join(dir, file),
				IsStatic: static,
			}
		}
	}
	return nil
}

// classify tries dynamic patterns first so that lib%s.dll.a is not taken
// for the static lib%s.a
func classify(dir, file string, patterns Patterns) *Library {
	for _, pattern := range patterns.Dynamic {
		if name, version, ok := baseName(file, pattern, true); ok {
			return &Library{Name: name, File: file, Path: filepath.Join(dir, file), Version: version}
		}
	}
	for _, pattern := range patterns.Static {
		if name, _, ok := baseName(file, pattern, false); ok {
			return &Library{Name: name, File: file, Path: filepath.Join(dir, file), IsStatic: true}
		}
	}
	return nil
}

// baseName extracts the %s part of pattern from file. With versioned set,
// a trailing .N[.N...] after the suffix is accepted and returned.
func baseName(file, pattern string, versioned bool) (name, version string, ok bool) {
	i := strings.Index(pattern, "%s")
	if i < 0 {
		return "", "", false
	}
	prefix, suffix := pattern[:i], pattern[i+2:]
	if !strings.HasPrefix(file, prefix) {
		return "", "", false
	}
	rest := file[len(prefix):]

	if strings.HasSuffix(rest, suffix) && len(rest) > len(suffix) {
		return rest[:len(rest)-len(suffix)], "", true
	}

	if !versioned {
		return "", "", false
	}
	j := strings.LastIndex(rest, suffix+".")
	if j <= 0 {
		return "", "", false
	}
	version = rest[j+len(suffix)+1:]
	for _, r := range version {
		if (r < '0' || r > '9') && r != '.' {
			return "", "", false
		}
	}
	return rest[:j], version, true
}

// pkg/platform/detect.go
package platform

import (
	"fmt"
	"runtime"
	"strings"
	"unicode"
)

// Family groups targets that share library file naming conventions
type Family string

const (
	FamilyELF     Family = "elf"
	FamilyDarwin  Family = "darwin"
	FamilyWindows Family = "windows"
	FamilyUnknown Family = "unknown"
)

// Target is a parsed target triple
type Target struct {
	Triple string // x86_64-unknown-linux-gnu
	Arch   string // x86_64
	Vendor string // unknown, apple, pc (may be empty)
	OS     string // linux, darwin, windows
	Env    string // gnu, musl, msvc (may be empty)
}

// Platform describes the host, the build target and the tooling found on the host
type Platform struct {
	Host      *Target
	Target    *Target
	Available []string // package managers found on the host
	Preferred string   // package manager used for install hints
}

var knownOS = map[string]Family{
	"linux":     FamilyELF,
	"android":   FamilyELF,
	"freebsd":   FamilyELF,
	"netbsd":    FamilyELF,
	"openbsd":   FamilyELF,
	"dragonfly": FamilyELF,
	"solaris":   FamilyELF,
	"illumos":   FamilyELF,
	"fuchsia":   FamilyELF,
	"darwin":    FamilyDarwin,
	"macos":     FamilyDarwin,
	"ios":       FamilyDarwin,
	"tvos":      FamilyDarwin,
	"watchos":   FamilyDarwin,
	"visionos":  FamilyDarwin,
	"windows":   FamilyWindows,
}

// Parse splits a target triple into its components.
// Both arch-vendor-os[-env] and arch-os[-env] forms are accepted.
func Parse(triple string) (*Target, error) {
	triple = strings.TrimSpace(triple)
	parts := strings.Split(triple, "-")
	if len(parts) < 2 {
		return nil, fmt.Errorf("invalid target triple %q", triple)
	}
	for _, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("invalid target triple %q", triple)
		}
	}

	t := &Target{Triple: triple, Arch: parts[0]}

	if _, ok := knownOS[parts[1]]; ok || len(parts) == 2 {
		t.OS = parts[1]
		t.Env = strings.Join(parts[2:], "-")
		return t, nil
	}

	t.Vendor = parts[1]
	t.OS = parts[2]
	t.Env = strings.Join(parts[3:], "-")
	return t, nil
}

// Family returns the naming family of the target
func (t *Target) Family() Family {
	if f, ok := knownOS[t.OS]; ok {
		return f
	}
	if t.Vendor == "apple" {
		return FamilyDarwin
	}
	return FamilyUnknown
}

// EnvPrefix returns the triple in upper snake case, as used for
// target-specific environment variables (X86_64_UNKNOWN_LINUX_GNU).
func (t *Target) EnvPrefix() string {
	return EnvPrefix(t.Triple)
}

// Underscored returns the triple with dashes replaced by underscores
func (t *Target) Underscored() string {
	return strings.ReplaceAll(t.Triple, "-", "_")
}

func (t *Target) String() string {
	return t.Triple
}

// EnvPrefix uppercases s and replaces every non-alphanumeric rune with '_'
func EnvPrefix(s string) string {
	return strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return unicode.ToUpper(r)
		}
		return '_'
	}, s)
}

var archTriples = map[string]string{
	"amd64":    "x86_64",
	"arm64":    "aarch64",
	"386":      "i686",
	"arm":      "armv7",
	"riscv64":  "riscv64gc",
	"ppc64le":  "powerpc64le",
	"ppc64":    "powerpc64",
	"s390x":    "s390x",
	"loong64":  "loongarch64",
	"mips64le": "mips64el",
}

// HostTriple builds a target triple from Go's GOOS/GOARCH names
func HostTriple(goos, goarch string) string {
	arch, ok := archTriples[goarch]
	if !ok {
		arch = goarch
	}

	switch goos {
	case "linux":
		if arch == "armv7" {
			return arch + "-unknown-linux-gnueabihf"
		}
		return arch + "-unknown-linux-gnu"
	case "android":
		return arch + "-linux-android"
	case "darwin":
		return arch + "-apple-darwin"
	case "ios":
		return arch + "-apple-ios"
	case "windows":
		return arch + "-pc-windows-msvc"
	case "freebsd", "netbsd", "openbsd", "dragonfly":
		return arch + "-unknown-" + goos
	default:
		return arch + "-unknown-" + goos
	}
}

// Detect resolves the host and target triples and the package managers
// available on the host. Empty triples fall back to the running system.
func Detect(targetTriple, hostTriple string) (*Platform, error) {
	if hostTriple == "" {
		hostTriple = HostTriple(runtime.GOOS, runtime.GOARCH)
	}
	host, err := Parse(hostTriple)
	if err != nil {
		return nil, fmt.Errorf("parsing host: %w", err)
	}

	target := host
	if targetTriple != "" {
		target, err = Parse(targetTriple)
		if err != nil {
			return nil, fmt.Errorf("parsing target: %w", err)
		}
	}

	p := &Platform{
		Host:      host,
		Target:    target,
		Available: []string{},
	}

	for _, pm := range packageManagers {
		if commandExists(pm.command) {
			p.Available = append(p.Available, pm.name)
		}
	}
	if len(p.Available) > 0 {
		p.Preferred = p.Available[0]
	}

	return p, nil
}

// IsCross reports whether the target differs from the host
func (p *Platform) IsCross() bool {
	return p.Host.Triple != p.Target.Triple
}

// String returns a string representation of the platform
func (p *Platform) String() string {
	return fmt.Sprintf("%s -> %s (available: %v, preferred: %s)",
		p.Host, p.Target, p.Available, p.Preferred)
}

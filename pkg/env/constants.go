// pkg/env/constants.go
package env

// DefaultPrefix is the prefix of every library variable (ALSA_LIB_DIR, ...)
const DefaultPrefix = "ALSA"

// Variable suffixes, joined to the library prefix with '_'
const (
	LibDirSuffix      = "LIB_DIR"
	IncludeDirSuffix  = "INCLUDE_DIR"
	LibsSuffix        = "LIBS"
	StaticSuffix      = "STATIC"
	NoPkgConfigSuffix = "NO_PKG_CONFIG"
)

// LibsSeparator separates library names in the LIBS variable
const LibsSeparator = ":"

// Names holds the bare variable names for one library prefix
type Names struct {
	LibDir      string
	IncludeDir  string
	Libs        string
	Static      string
	NoPkgConfig string
}

// NamesFor returns the variable names for prefix (ALSA -> ALSA_LIB_DIR, ...)
func NamesFor(prefix string) Names {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return Names{
		LibDir:      prefix + "_" + LibDirSuffix,
		IncludeDir:  prefix + "_" + IncludeDirSuffix,
		Libs:        prefix + "_" + LibsSuffix,
		Static:      prefix + "_" + StaticSuffix,
		NoPkgConfig: prefix + "_" + NoPkgConfigSuffix,
	}
}

// pkg/pkgconfig/constants.go
package pkgconfig

import "time"

const (
	// DefaultBinary is the pkg-config executable looked up in PATH
	DefaultBinary = "pkg-config"

	// DefaultTimeout bounds a single pkg-config invocation
	DefaultTimeout = 30 * time.Second
)

// Variables read with target-specific fallbacks
const (
	VarBinary     = "PKG_CONFIG"
	VarPath       = "PKG_CONFIG_PATH"
	VarLibDir     = "PKG_CONFIG_LIBDIR"
	VarSysroot    = "PKG_CONFIG_SYSROOT_DIR"
	VarAllowCross = "PKG_CONFIG_ALLOW_CROSS"
	VarAllStatic  = "PKG_CONFIG_ALL_STATIC"
	VarAllDynamic = "PKG_CONFIG_ALL_DYNAMIC"
)

// passThrough are handed to the child process under their plain names
var passThrough = []string{VarPath, VarLibDir, VarSysroot}

// systemRoots hold libraries that are never linked statically
var systemRoots = []string{"/usr", "/lib", "/lib64"}

// pkg/core/mode.go
package core

// LinkMode selects how a native library is linked
type LinkMode string

const (
	// LinkStatic copies the archive into the final binary
	LinkStatic LinkMode = "static"
	// LinkDynamic loads the shared library at process start
	LinkDynamic LinkMode = "dynamic"
)

// IsStatic reports whether m is LinkStatic
func (m LinkMode) IsStatic() bool {
	return m == LinkStatic
}

func (m LinkMode) String() string {
	return string(m)
}

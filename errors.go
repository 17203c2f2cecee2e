// errors.go
package alsasys

import (
	"errors"
	"fmt"

	"github.com/arc-language/alsa-sys/pkg/probe"
)

var (
	// ErrConfig indicates an invalid combination of override variables
	ErrConfig = errors.New("configuration error")

	// ErrDiscovery indicates system package discovery could not find the library
	ErrDiscovery = errors.New("system discovery failed")

	// ErrProbe indicates the library directory could not be read
	ErrProbe = errors.New("cannot probe library directory")

	// ErrNoArtifacts indicates the library directory lacks the files to link
	// every requested library either statically or dynamically
	ErrNoArtifacts = probe.ErrNoArtifacts

	// ErrPlatformNotSupported indicates the target triple could not be parsed
	ErrPlatformNotSupported = errors.New("platform not supported")
)

// Error wraps an error with additional context
type Error struct {
	Op  string // Operation that failed
	Var string // Variable, directory or module involved, if any
	Err error  // Underlying error
}

func (e *Error) Error() string {
	if e.Var != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Var, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

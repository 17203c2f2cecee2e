// pkg/env/types.go
package env

import (
	"os"
)

// Source looks up environment variables
type Source interface {
	LookupEnv(key string) (string, bool)
}

// Value is the result of a lookup
type Value struct {
	Name  string // variable the value came from, or the bare name when unset
	Value string
	Set   bool
}

// Overrides holds every library variable for one build, read once at start
type Overrides struct {
	Names       Names
	LibDir      Value
	IncludeDir  Value
	Libs        Value
	Static      Value
	NoPkgConfig Value
}

type osSource struct{}

func (osSource) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// OS returns a Source reading the process environment
func OS() Source {
	return osSource{}
}

// Map is a Source backed by a map
type Map map[string]string

// LookupEnv implements Source
func (m Map) LookupEnv(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// pkg/env/lookup.go
package env

import (
	"strings"
)

// Lookup reads variables for one target and records every name it consults
type Lookup struct {
	src    Source
	prefix string
	seen   []string
	known  map[string]bool
}

// NewLookup creates a Lookup. prefix is the upper snake case target
// triple; an empty prefix disables the prefixed form.
func NewLookup(src Source, prefix string) *Lookup {
	if src == nil {
		src = OS()
	}
	return &Lookup{
		src:    src,
		prefix: prefix,
		known:  make(map[string]bool),
	}
}

// Get looks up <prefix>_<name> and then name. Both names are recorded
// whether or not the prefixed one is set.
func (l *Lookup) Get(name string) Value {
	if l.prefix == "" {
		return l.Bare(name)
	}

	prefixed := l.prefix + "_" + name
	l.Track(prefixed, name)

	if v, ok := l.src.LookupEnv(prefixed); ok {
		return Value{Name: prefixed, Value: v, Set: true}
	}
	v, ok := l.src.LookupEnv(name)
	return Value{Name: name, Value: v, Set: ok}
}

// Bare looks up name without the target prefix
func (l *Lookup) Bare(name string) Value {
	l.Track(name)
	v, ok := l.src.LookupEnv(name)
	return Value{Name: name, Value: v, Set: ok}
}

// First returns the first of names that is set, recording all of them.
// When none is set the returned Value carries the last name.
func (l *Lookup) First(names ...string) Value {
	l.Track(names...)
	for _, name := range names {
		if v, ok := l.src.LookupEnv(name); ok {
			return Value{Name: name, Value: v, Set: true}
		}
	}
	if len(names) == 0 {
		return Value{}
	}
	return Value{Name: names[len(names)-1]}
}

// Track records names as consulted without reading them
func (l *Lookup) Track(names ...string) {
	for _, name := range names {
		if l.known[name] {
			continue
		}
		l.known[name] = true
		l.seen = append(l.seen, name)
	}
}

// Consulted returns every recorded name in first-seen order
func (l *Lookup) Consulted() []string {
	out := make([]string, len(l.seen))
	copy(out, l.seen)
	return out
}

// Prefix returns the target prefix
func (l *Lookup) Prefix() string {
	return l.prefix
}

// Load reads every library variable for prefix (ALSA by default)
func Load(l *Lookup, prefix string) *Overrides {
	names := NamesFor(prefix)
	return &Overrides{
		Names:       names,
		LibDir:      l.Get(names.LibDir),
		IncludeDir:  l.Get(names.IncludeDir),
		Libs:        l.Get(names.Libs),
		Static:      l.Get(names.Static),
		NoPkgConfig: l.Get(names.NoPkgConfig),
	}
}

// LibNames splits the LIBS variable on ':'. Empty segments are dropped;
// nil means the variable is unset or names nothing.
func (o *Overrides) LibNames() []string {
	if !o.Libs.Set {
		return nil
	}
	var names []string
	for _, part := range strings.Split(o.Libs.Value, LibsSeparator) {
		part = strings.TrimSpace(part)
		if part != "" {
			names = append(names, part)
		}
	}
	return names
}

// StaticSet reports whether the STATIC switch carries a value
func (o *Overrides) StaticSet() bool {
	return o.Static.Set && o.Static.Value != ""
}

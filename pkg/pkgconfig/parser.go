// pkg/pkgconfig/parser.go
package pkgconfig

import (
	"fmt"

	"github.com/kballard/go-shellquote"

	"github.com/arc-language/alsa-sys/pkg/core"
)

// SplitFlags splits pkg-config output into words with POSIX shell
// quoting rules
func SplitFlags(s string) (Flags, error) {
	words, err := shellquote.Split(s)
	if err != nil {
		return nil, fmt.Errorf("splitting %q: %w", s, err)
	}
	return Flags(words), nil
}

// Parse sorts flags into the fields of a Library. Every -l link gets
// mode; flags it does not understand are ignored.
func Parse(module string, flags Flags, mode core.LinkMode) (*Library, error) {
	lib := &Library{Module: module}

	for i := 0; i < len(flags); i++ {
		flag := flags[i]

		switch {
		case flag == "-framework":
			if i+1 >= len(flags) {
				return nil, fmt.Errorf("-framework without a name")
			}
			i++
			lib.Frameworks = appendUnique(lib.Frameworks, flags[i])
			continue
		case len(flag) < 2 || flag[0] != '-':
			continue
		}

		opt, value := flag[:2], flag[2:]
		switch opt {
		case "-L", "-l", "-I", "-D":
		default:
			continue
		}
		if value == "" {
			if i+1 >= len(flags) {
				return nil, fmt.Errorf("%s without a value", opt)
			}
			i++
			value = flags[i]
		}

		switch opt {
		case "-L":
			lib.LinkPaths = appendUnique(lib.LinkPaths, value)
		case "-l":
			if !hasLink(lib.Links, value) {
				lib.Links = append(lib.Links, Link{Name: value, Mode: mode})
			}
		case "-I":
			lib.IncludePaths = appendUnique(lib.IncludePaths, value)
		case "-D":
			lib.Defines = appendUnique(lib.Defines, value)
		}
	}

	return lib, nil
}

func appendUnique(list []string, v string) []string {
	for _, s := range list {
		if s == v {
			return list
		}
	}
	return append(list, v)
}

func hasLink(links []Link, name string) bool {
	for _, l := range links {
		if l.Name == name {
			return true
		}
	}
	return false
}

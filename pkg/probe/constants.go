// pkg/probe/constants.go
package probe

import (
	"github.com/arc-language/alsa-sys/pkg/platform"
)

var patternTable = map[platform.Family]Patterns{
	// linux, android, the BSDs
	platform.FamilyELF: {
		Static:  []string{"lib%s.a"},
		Dynamic: []string{"lib%s.so"},
	},
	platform.FamilyDarwin: {
		Static:  []string{"lib%s.a"},
		Dynamic: []string{"lib%s.dylib"},
	},
	// MSVC archives and import libraries share the .lib suffix, so .lib
	// counts as static. MinGW import libraries end in .dll.a.
	platform.FamilyWindows: {
		Static:  []string{"lib%s.a", "%s.lib"},
		Dynamic: []string{"%s.dll", "lib%s.dll", "lib%s.dll.a"},
	},
	// Unknown targets accept every known spelling
	platform.FamilyUnknown: {
		Static:  []string{"lib%s.a", "%s.lib"},
		Dynamic: []string{"lib%s.so", "%s.dll", "lib%s.dylib"},
	},
}

// PatternsFor returns the artifact patterns for a platform family
func PatternsFor(family platform.Family) Patterns {
	if p, ok := patternTable[family]; ok {
		return p
	}
	return patternTable[platform.FamilyUnknown]
}

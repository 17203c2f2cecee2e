// pkg/env/doc.go

/*
Package env reads the build environment for alsa-sys.

Every variable is looked up twice: first with the target triple as an
upper snake case prefix, then bare. For the target x86_64-unknown-linux-gnu:

	X86_64_UNKNOWN_LINUX_GNU_ALSA_LIB_DIR  (wins when set)
	ALSA_LIB_DIR

Both names are recorded as consulted so the caller can ask the build system
to re-run when either one changes.

Basic Usage:

	lookup := env.NewLookup(env.OS(), target.EnvPrefix())
	ov := env.Load(lookup, env.DefaultPrefix)
	if ov.LibDir.Set {
		fmt.Println(ov.LibDir.Name, ov.LibDir.Value)
	}
	for _, name := range lookup.Consulted() {
		fmt.Println("cargo:rerun-if-env-changed=" + name)
	}

Overrides is built once at start and passed around, so the decision code
never touches the process environment and can be tested with a Map.
*/
package env

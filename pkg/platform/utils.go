// pkg/platform/utils.go
package platform

import (
	"os/exec"
)

// packageManagers is checked in order; the first one found becomes Preferred
var packageManagers = []struct {
	name    string
	command string
}{
	{"apt", "apt-get"},
	{"dnf", "dnf"},
	{"pacman", "pacman"},
	{"apk", "apk"},
	{"zypper", "zypper"},
	{"brew", "brew"},
	{"nix", "nix-env"},
}

// commandExists checks if a command is available in PATH
func commandExists(cmd string) bool {
	_, err := exec.LookPath(cmd)
	return err == nil
}

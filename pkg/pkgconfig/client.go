// pkg/pkgconfig/client.go
package pkgconfig

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ExecRunner runs pkg-config as a child process
type ExecRunner struct{}

// Run implements Runner
func (ExecRunner) Run(ctx context.Context, name string, args []string, env []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Env = append(os.Environ(), env...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("running %s %s: %w", name, strings.Join(args, " "), err)
		}
		return nil, fmt.Errorf("running %s %s: %w\n%s", name, strings.Join(args, " "), err, msg)
	}

	return stdout.Bytes(), nil
}

// internal/cli/resolve.go
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/arc-language/alsa-sys/pkg/directive"
	"github.com/arc-language/alsa-sys/pkg/pkgconfig"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve link settings and print build directives",
	Long: `Run one resolution pass and print the directives in the configured format.

This is also what alsa-sys does when run without a subcommand.`,
	Args: cobra.NoArgs,
	RunE: runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), pkgconfig.DefaultTimeout)
	defer cancel()

	r, err := newResolver()
	if err != nil {
		return err
	}

	plan, err := r.Resolve(ctx)
	if err != nil {
		return err
	}

	logger.Debug("resolved",
		zap.String("target", plan.Target.Triple),
		zap.String("source", string(plan.Source)),
		zap.String("mode", plan.Mode.String()),
		zap.Strings("libs", plan.Libs))

	renderer, err := directive.New(config.Format, directive.Options{Package: config.Package, Headers: plan.Headers})
	if err != nil {
		return err
	}

	w, err := openOutput(cmd.OutOrStdout(), output)
	if err != nil {
		return err
	}
	if err := renderer.Render(w, plan.Directives); err != nil {
		w.Close()
		return fmt.Errorf("writing directives: %w", err)
	}
	return w.Close()
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns stdout when path is empty, otherwise a new file
func openOutput(stdout io.Writer, path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	return f, nil
}

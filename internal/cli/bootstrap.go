// Package cli contains the cobra commands of the launchgate host.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/example/launchgate/internal/config"
	"github.com/example/launchgate/internal/wire"
)

// NewContext returns a context cancelled on SIGINT or SIGTERM.
func NewContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// openContainer loads the config selected by --config-dir and builds the
// services. The caller closes the container.
func openContainer(cmd *cobra.Command) (*wire.Container, error) {
	dir, _ := cmd.Flags().GetString("config-dir")
	if dir == "" {
		var err error
		dir, err = config.DefaultDir()
		if err != nil {
			return nil, err
		}
	}

	cfg, err := config.LoadConfig(dir)
	if err != nil {
		return nil, err
	}

	c, err := wire.New(cfg, wire.Options{In: cmd.InOrStdin(), Err: cmd.ErrOrStderr()})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize: %w", err)
	}
	return c, nil
}

// withContainer runs fn with an open container and closes it afterwards.
func withContainer(cmd *cobra.Command, fn func(ctx context.Context, c *wire.Container, out io.Writer) error) error {
	ctx, cancel := NewContext()
	defer cancel()

	c, err := openContainer(cmd)
	if err != nil {
		return err
	}
	defer c.Close()

	return fn(ctx, c, cmd.OutOrStdout())
}

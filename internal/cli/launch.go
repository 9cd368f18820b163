package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	cliadapter "github.com/example/launchgate/internal/adapters/cli"
	"github.com/example/launchgate/internal/wire"
)

// LaunchCmd returns the launch command
func LaunchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "launch",
		Short: "Run one launch session",
		Long: `Run a launch session to its outcome.

The splash is held until the lock preference has been read. With the lock
on, the passphrase challenge is shown; a cancelled or failed challenge ends
the session with a non-zero exit. Once content is shown the update check
runs, and --regain simulates returning to the foreground afterwards.

Usage:
  launchgate launch              # Launch once
  launchgate launch --regain 2   # Launch, then regain the foreground twice`,
		Args: cobra.NoArgs,
		RunE: runLaunch,
	}

	cmd.Flags().Int("regain", 0, "Foreground-regain signals to send after the session decided")

	return cmd
}

func runLaunch(cmd *cobra.Command, args []string) error {
	regains, _ := cmd.Flags().GetInt("regain")
	if regains < 0 {
		return fmt.Errorf("--regain must not be negative")
	}

	return withContainer(cmd, func(ctx context.Context, c *wire.Container, out io.Writer) error {
		_, err := c.LaunchAdapter(out).Launch(ctx, cliadapter.LaunchOptions{
			Tick:    c.Config.SplashTick(),
			Regains: regains,
		})
		if cliadapter.IsTermination(err) {
			return fmt.Errorf("launch terminated: %w", err)
		}
		return err
	})
}

// ResumeCmd returns the resume command
func ResumeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resume",
		Short: "Send one foreground-regain signal",
		Long:  "Restart an immediate update flow the store still reports as in progress.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, func(ctx context.Context, c *wire.Container, out io.Writer) error {
				c.UpdateAdapter(out).Resume(ctx)
				return nil
			})
		},
	}
}

// HistoryCmd returns the history command
func HistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded launch events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sessionID, _ := cmd.Flags().GetString("session")
			limit, _ := cmd.Flags().GetInt("limit")

			return withContainer(cmd, func(ctx context.Context, c *wire.Container, out io.Writer) error {
				return c.LaunchAdapter(out).History(ctx, sessionID, limit)
			})
		},
	}

	cmd.Flags().StringP("session", "s", "", "Only events of this session")
	cmd.Flags().IntP("limit", "n", 50, "Maximum events to list (0 for all)")

	return cmd
}

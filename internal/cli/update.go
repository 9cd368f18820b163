package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/example/launchgate/internal/wire"
)

// UpdateCmd returns the update command
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Inspect and drive in-app updates",
		Long: `Inspect and drive the simulated store.

publish and complete play the store's part; check and resume run the
application's update supervision outside a launch session.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the store's update state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, func(ctx context.Context, c *wire.Container, out io.Writer) error {
				return c.UpdateAdapter(out).Status(ctx)
			})
		},
	})

	publishCmd := &cobra.Command{
		Use:   "publish [version]",
		Short: "Make a new version available",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			immediate, _ := cmd.Flags().GetBool("immediate")
			return withContainer(cmd, func(ctx context.Context, c *wire.Container, out io.Writer) error {
				return c.UpdateAdapter(out).Publish(ctx, args[0], immediate)
			})
		},
	}
	publishCmd.Flags().Bool("immediate", false, "Allow the immediate (blocking) update flow")
	cmd.AddCommand(publishCmd)

	cmd.AddCommand(&cobra.Command{
		Use:   "complete",
		Short: "Install the pending update",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, func(ctx context.Context, c *wire.Container, out io.Writer) error {
				return c.UpdateAdapter(out).Complete(ctx)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "check",
		Short: "Run the post-unlock update check",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, func(ctx context.Context, c *wire.Container, out io.Writer) error {
				c.UpdateAdapter(out).Check(ctx)
				return nil
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "resume",
		Short: "Resume a stuck immediate update",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, func(ctx context.Context, c *wire.Container, out io.Writer) error {
				c.UpdateAdapter(out).Resume(ctx)
				return nil
			})
		},
	})

	return cmd
}

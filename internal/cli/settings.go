package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/example/launchgate/internal/wire"
)

// SettingsCmd returns the settings command
func SettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change launch settings",
		Long: `Show and change the lock, theme and passphrase settings.

Turning the lock on or off asks for the current passphrase first. Changes
apply to the next launch; a running session is not re-locked.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, func(ctx context.Context, c *wire.Container, out io.Writer) error {
				return c.SettingsAdapter(out).Show(ctx)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:       "biometric [on|off]",
		Short:     "Turn the launch lock on or off",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"on", "off"},
		RunE: func(cmd *cobra.Command, args []string) error {
			enabled := args[0] == "on"
			return withContainer(cmd, func(ctx context.Context, c *wire.Container, out io.Writer) error {
				return c.SettingsAdapter(out).SetBiometric(ctx, enabled)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "theme [system|light|dark]",
		Short: "Set the theme preference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, func(ctx context.Context, c *wire.Container, out io.Writer) error {
				return c.SettingsAdapter(out).SetTheme(ctx, args[0])
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "enroll",
		Short: "Enroll or replace the lock passphrase",
		Long: `Enroll the lock passphrase.

On a terminal the new passphrase is read twice with echo disabled;
otherwise it is the first line of stdin. Replacing an enrolled passphrase
asks for the old one afterwards.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, func(ctx context.Context, c *wire.Container, out io.Writer) error {
				passphrase, err := readNewPassphrase(cmd.InOrStdin(), cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				return c.SettingsAdapter(out).Enroll(ctx, passphrase)
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "watch",
		Short: "Print settings on every change until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withContainer(cmd, func(ctx context.Context, c *wire.Container, out io.Writer) error {
				return c.SettingsAdapter(out).Watch(ctx)
			})
		},
	})

	return cmd
}

// readNewPassphrase reads the passphrase to enroll.
func readNewPassphrase(in io.Reader, prompt io.Writer) (string, error) {
	f, ok := in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return readLine(in)
	}

	fd := int(f.Fd())
	fmt.Fprint(prompt, "New passphrase: ")
	first, err := term.ReadPassword(fd)
	fmt.Fprintln(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}

	fmt.Fprint(prompt, "Confirm passphrase: ")
	second, err := term.ReadPassword(fd)
	fmt.Fprintln(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}

	if string(first) != string(second) {
		return "", errors.New("passphrases do not match")
	}
	return string(first), nil
}

// readLine reads one line a byte at a time, leaving the rest of in for the
// challenge prompt.
func readLine(in io.Reader) (string, error) {
	var line []byte
	buf := make([]byte, 1)
	for {
		n, err := in.Read(buf)
		if n == 1 {
			if buf[0] == '\n' {
				break
			}
			line = append(line, buf[0])
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read passphrase: %w", err)
		}
	}
	if len(line) > 0 && line[len(line)-1] == '\r' {
		line = line[:len(line)-1]
	}
	return string(line), nil
}

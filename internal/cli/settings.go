package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrlokans/libraryhub/internal/domain"
)

// SettingsStore reads and writes the system settings.
type SettingsStore interface {
	Get(ctx context.Context) (domain.SystemSettings, error)
	Update(ctx context.Context, key string, value any) (domain.SystemSettings, error)
}

func newSettingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show the system settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()
			return ShowSettings(cmd.Context(), app.Settings, cmd.OutOrStdout())
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <json>",
		Short: "Merge a JSON object into one settings section",
		Long: `Keys are business_rules, library_info and notifications. Fields missing from the
JSON object keep their current value, e.g.

  libraryhub settings set business_rules '{"maxLoanDays": 21}'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := openApp()
			if err != nil {
				return err
			}
			defer app.Close()
			return SetSetting(cmd.Context(), app.Settings, args[0], args[1], cmd.OutOrStdout())
		},
	})
	return cmd
}

// ShowSettings writes the current settings as indented JSON.
func ShowSettings(ctx context.Context, store SettingsStore, out io.Writer) error {
	settings, err := store.Get(ctx)
	if err != nil {
		return err
	}
	return printJSON(out, settings)
}

// SetSetting merges the JSON object raw into the settings section key and prints the result.
func SetSetting(ctx context.Context, store SettingsStore, key, raw string, out io.Writer) error {
	var value map[string]any
	if err := json.Unmarshal([]byte(raw), &value); err != nil {
		return fmt.Errorf("value must be a JSON object: %w", err)
	}
	settings, err := store.Update(ctx, key, value)
	if err != nil {
		return err
	}
	return printJSON(out, settings)
}

func printJSON(out io.Writer, v any) error {
	if out == nil {
		out = os.Stdout
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

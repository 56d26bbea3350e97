package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/folio/internal/document"
	"github.com/roach88/folio/internal/settings"
)

// NewSettingsCommand creates the settings command group.
func NewSettingsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect and change workspace settings",
	}
	cmd.AddCommand(newSettingsGetCommand(rootOpts))
	cmd.AddCommand(newSettingsSetCommand(rootOpts))
	return cmd
}

func newSettingsGetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "get",
		Short:         "Print current settings",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettingsGet(rootOpts, cmd)
		},
	}
}

func newSettingsSetCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Long: `Change one setting and persist the whole settings record.

Keys:
  theme             ui theme name (system, light, dark, ...)
  autosave-seconds  autosave interval; 0 disables autosave
  default-kind      kind used by create when --kind is omitted
  assist-model      model name for the assist command`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettingsSet(rootOpts, cmd, args[0], args[1])
		},
	}
}

func runSettingsGet(opts *RootOptions, cmd *cobra.Command) error {
	app, err := openApp(opts)
	if err != nil {
		return err
	}
	defer app.Close()

	prefs, err := app.Registry.Load(cmd.Context())
	if err != nil {
		return err
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return out.Success(prefs, func(w io.Writer) {
		printSettings(w, prefs)
	})
}

func runSettingsSet(opts *RootOptions, cmd *cobra.Command, key, value string) error {
	app, err := openApp(opts)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := cmd.Context()

	prefs, err := app.Registry.Load(ctx)
	if err != nil {
		return err
	}

	switch key {
	case "theme":
		prefs.Theme = value
	case "autosave-seconds":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return WrapExitError(ExitCommandError, fmt.Sprintf("autosave-seconds must be a non-negative integer, got %q", value), nil)
		}
		prefs.AutosaveSeconds = n
	case "default-kind":
		kind, err := document.ParseKind(value)
		if err != nil {
			return WrapExitError(ExitCommandError, "invalid default-kind", err)
		}
		prefs.DefaultKind = kind
	case "assist-model":
		prefs.AssistModel = value
	default:
		return WrapExitError(ExitCommandError, fmt.Sprintf("unknown setting %q", key), nil)
	}

	if err := app.Registry.Save(ctx, prefs); err != nil {
		return err
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return out.Success(prefs, func(w io.Writer) {
		printSettings(w, prefs)
	})
}

func printSettings(w io.Writer, prefs settings.Settings) {
	fmt.Fprintf(w, "theme             %s\n", prefs.Theme)
	fmt.Fprintf(w, "autosave-seconds  %d\n", prefs.AutosaveSeconds)
	fmt.Fprintf(w, "default-kind      %s\n", prefs.DefaultKind)
	fmt.Fprintf(w, "assist-model      %s\n", prefs.AssistModel)
}

package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/folio/internal/assist"
)

// AssistOptions holds flags for the assist command.
type AssistOptions struct {
	*RootOptions
	Model string
}

// NewAssistCommand creates the assist command.
func NewAssistCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &AssistOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "assist <prompt>",
		Short: "Generate text with the configured model",
		Long: `Send a prompt to the configured generation model and print the
response. Requires GEMINI_API_KEY in the environment. The model comes
from settings unless overridden with --model.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssist(opts, cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Model, "model", "", "model name (defaults to the assist-model setting)")

	return cmd
}

func runAssist(opts *AssistOptions, cmd *cobra.Command, prompt string) error {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return WrapExitError(ExitCommandError, "GEMINI_API_KEY is not set", nil)
	}

	app, err := openApp(opts.RootOptions)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := cmd.Context()

	model := opts.Model
	if model == "" {
		prefs, err := app.Registry.Load(ctx)
		if err != nil {
			return err
		}
		model = prefs.AssistModel
	}

	client, err := assist.NewClient(ctx, assist.Config{APIKey: apiKey, Model: model}, app.Log)
	if err != nil {
		return err
	}

	text, err := client.Generate(ctx, prompt)
	if err != nil {
		return err
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return out.Success(map[string]string{"model": model, "text": text}, func(w io.Writer) {
		fmt.Fprintln(w, text)
	})
}

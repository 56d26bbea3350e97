package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/folio/internal/document"
)

// docSummary is the JSON shape commands print for one document.
type docSummary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
	SavedAt   time.Time `json:"saved_at"`
}

func summarize(d *document.Document) docSummary {
	return docSummary{
		ID:        d.ID,
		Name:      d.Name,
		Kind:      string(d.Kind),
		CreatedAt: d.CreatedAt,
		SavedAt:   d.SavedAt,
	}
}

// CreateOptions holds flags for the create command.
type CreateOptions struct {
	*RootOptions
	Kind string
	Name string
}

// NewCreateCommand creates the create command.
func NewCreateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CreateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new document",
		Long: `Create a new document with kind-appropriate empty content.

The document is persisted immediately. When --kind is omitted the
default kind from settings is used.

Example:
  folio create --kind spreadsheet --name "Q3 budget"`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCreate(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Kind, "kind", "", "document kind (richtext|spreadsheet|slidedeck)")
	cmd.Flags().StringVar(&opts.Name, "name", "Untitled", "document name")

	return cmd
}

func runCreate(opts *CreateOptions, cmd *cobra.Command) error {
	app, err := openApp(opts.RootOptions)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := cmd.Context()

	kindStr := opts.Kind
	if kindStr == "" {
		prefs, err := app.Registry.Load(ctx)
		if err != nil {
			return err
		}
		kindStr = string(prefs.DefaultKind)
	}
	kind, err := document.ParseKind(kindStr)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --kind", err)
	}

	doc, err := app.Repo.Create(ctx, kind, opts.Name)
	if err != nil {
		return err
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return out.Success(summarize(doc), func(w io.Writer) {
		fmt.Fprintf(w, "created %s document %s (%q)\n", doc.Kind, doc.ID, doc.Name)
	})
}

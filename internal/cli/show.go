package cli

import (
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/roach88/folio/internal/document"
	"github.com/roach88/folio/internal/formula"
	"github.com/roach88/folio/internal/repo"
)

// showResult extends the summary with kind-specific content detail.
type showResult struct {
	docSummary
	Markup string            `json:"markup,omitempty"`
	Grid   map[string]string `json:"grid,omitempty"`
	Slides []document.Slide  `json:"slides,omitempty"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show one document",
		Long: `Show a document's metadata and content.

Spreadsheet cells are evaluated before display, so formula cells show
their computed value or error marker rather than the stored text.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(rootOpts, cmd, args[0])
		},
	}
	return cmd
}

func runShow(opts *RootOptions, cmd *cobra.Command, id string) error {
	app, err := openApp(opts)
	if err != nil {
		return err
	}
	defer app.Close()

	doc, err := app.Repo.Get(cmd.Context(), id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return WrapExitError(ExitFailure, fmt.Sprintf("document %s", id), err)
		}
		return err
	}

	result := showResult{docSummary: summarize(doc)}
	switch c := doc.Content.(type) {
	case document.RichTextContent:
		result.Markup = c.Markup
	case document.SheetContent:
		result.Grid = formula.New().Grid(c.Cells)
	case document.DeckContent:
		result.Slides = c.Slides
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return out.Success(result, func(w io.Writer) {
		fmt.Fprintf(w, "%s  %s  %q\n", result.ID, result.Kind, result.Name)
		fmt.Fprintf(w, "created %s, saved %s\n", result.CreatedAt.Format("2006-01-02 15:04:05"), result.SavedAt.Format("2006-01-02 15:04:05"))
		switch {
		case result.Markup != "":
			fmt.Fprintln(w)
			fmt.Fprintln(w, result.Markup)
		case result.Grid != nil:
			addrs := make([]string, 0, len(result.Grid))
			for addr := range result.Grid {
				addrs = append(addrs, addr)
			}
			sort.Strings(addrs)
			if len(addrs) > 0 {
				fmt.Fprintln(w)
			}
			for _, addr := range addrs {
				fmt.Fprintf(w, "%s\t%s\n", addr, result.Grid[addr])
			}
		case result.Slides != nil:
			for i, s := range result.Slides {
				fmt.Fprintf(w, "\nslide %d: %s\n%s\n", i+1, s.Title, s.Body)
			}
		}
	})
}

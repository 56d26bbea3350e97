package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/folio/internal/document"
	"github.com/roach88/folio/internal/formula"
	"github.com/roach88/folio/internal/repo"
	"github.com/roach88/folio/internal/session"
)

// NewSetCellCommand creates the set-cell command.
func NewSetCellCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set-cell <id> <address> <value>",
		Short: "Set a spreadsheet cell",
		Long: `Set one cell of a spreadsheet document and save.

A value starting with '=' is stored as a formula. An empty value clears
the cell. The command prints the cell's evaluated display value.

Example:
  folio set-cell 0190… B2 "=SUM(A1:A9)"`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSetCell(rootOpts, cmd, args[0], args[1], args[2])
		},
	}
	return cmd
}

func runSetCell(opts *RootOptions, cmd *cobra.Command, id, addr, value string) error {
	app, err := openApp(opts)
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := cmd.Context()

	doc, err := app.Repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return WrapExitError(ExitFailure, fmt.Sprintf("document %s", id), err)
		}
		return err
	}
	sheet, ok := doc.Content.(document.SheetContent)
	if !ok {
		return WrapExitError(ExitFailure, fmt.Sprintf("document %s is a %s, not a spreadsheet", id, doc.Kind), nil)
	}

	ctl := session.New(app.Repo, app.View, session.WithAutosaveInterval(0), session.WithLogger(app.Log))
	if err := ctl.Open(doc); err != nil {
		return err
	}
	defer ctl.Close()

	next := sheet.Clone().(document.SheetContent)
	if value == "" {
		delete(next.Cells, addr)
	} else {
		next.Cells[addr] = document.CellEntry{Raw: value}
	}
	if err := ctl.MutateContent(next); err != nil {
		return err
	}
	if err := ctl.SaveNow(ctx); err != nil {
		return err
	}

	display := formula.New().Display(next.Cells, addr)

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	data := map[string]string{"id": id, "address": addr, "raw": value, "display": display}
	return out.Success(data, func(w io.Writer) {
		fmt.Fprintf(w, "%s = %s\n", addr, display)
	})
}

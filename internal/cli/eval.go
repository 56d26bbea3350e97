package cli

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/folio/internal/document"
	"github.com/roach88/folio/internal/formula"
	"github.com/roach88/folio/internal/repo"
)

// NewEvalCommand creates the eval command.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <id> <cell-or-formula>",
		Short: "Evaluate a cell or formula against a spreadsheet",
		Long: `Evaluate against a spreadsheet document without modifying it,
and print the display value. The argument is either a cell address,
whose current value is shown, or a formula.

Examples:
  folio eval 0190… B2
  folio eval 0190… "=AVERAGE(B1:B20)"`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(rootOpts, cmd, args[0], args[1])
		},
	}
	return cmd
}

func runEval(opts *RootOptions, cmd *cobra.Command, id, expr string) error {
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
	sheet, ok := doc.Content.(document.SheetContent)
	if !ok {
		return WrapExitError(ExitFailure, fmt.Sprintf("document %s is a %s, not a spreadsheet", id, doc.Kind), nil)
	}

	cells := sheet.Clone().(document.SheetContent).Cells

	var display string
	if cellAddrPattern.MatchString(expr) {
		display = formula.New().Display(cells, strings.ToUpper(expr))
	} else {
		addr := scratchAddr(cells)
		if addr == "" {
			return WrapExitError(ExitFailure, "spreadsheet has no free cell to evaluate in", nil)
		}
		if !strings.HasPrefix(expr, "=") {
			expr = "=" + expr
		}
		cells[addr] = document.CellEntry{Raw: expr}
		display = formula.New().Display(cells, addr)
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	data := map[string]string{"input": expr, "display": display}
	return out.Success(data, func(w io.Writer) {
		fmt.Fprintln(w, display)
	})
}

var cellAddrPattern = regexp.MustCompile(`^[A-Za-z]+[1-9][0-9]*$`)

// scratchAddr finds an in-bounds address the sheet does not use, so a
// throwaway formula can be evaluated without shadowing real cells.
// Scans from the bottom of the grid where sheets are usually sparse.
func scratchAddr(cells map[string]document.CellEntry) string {
	used := make(map[string]struct{}, len(cells))
	for addr := range cells {
		used[strings.ToUpper(addr)] = struct{}{}
	}
	for row := formula.DefaultMaxRows; row >= 1; row-- {
		for col := 'Z'; col >= 'A'; col-- {
			addr := fmt.Sprintf("%c%d", col, row)
			if _, ok := used[addr]; !ok {
				return addr
			}
		}
	}
	return ""
}

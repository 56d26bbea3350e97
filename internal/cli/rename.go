package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/folio/internal/repo"
	"github.com/roach88/folio/internal/session"
)

// NewRenameCommand creates the rename command.
func NewRenameCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rename <id> <name>",
		Short:         "Rename a document",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRename(rootOpts, cmd, args[0], args[1])
		},
	}
	return cmd
}

func runRename(opts *RootOptions, cmd *cobra.Command, id, name string) error {
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

	ctl := session.New(app.Repo, app.View, session.WithAutosaveInterval(0), session.WithLogger(app.Log))
	if err := ctl.Open(doc); err != nil {
		return err
	}
	defer ctl.Close()

	if err := ctl.Rename(ctx, name); err != nil {
		return err
	}
	renamed := ctl.Active()

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return out.Success(summarize(renamed), func(w io.Writer) {
		fmt.Fprintf(w, "renamed %s to %q\n", renamed.ID, renamed.Name)
	})
}

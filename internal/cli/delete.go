package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewDeleteCommand creates the delete command.
func NewDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "delete <id>",
		Short:         "Delete a document",
		Long:          "Delete a document by id. Deleting an id that does not exist is not an error.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDelete(rootOpts, cmd, args[0])
		},
	}
	return cmd
}

func runDelete(opts *RootOptions, cmd *cobra.Command, id string) error {
	app, err := openApp(opts)
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.Repo.Delete(cmd.Context(), id); err != nil {
		return err
	}

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
	return out.Success(map[string]string{"id": id}, func(w io.Writer) {
		fmt.Fprintf(w, "deleted %s\n", id)
	})
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskflow/internal/app"
)

func newExportCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Write tasks and account to a JSON file",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = flags.withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
		id, err := requireIdentity(a)
		if err != nil {
			return err
		}
		snap, err := a.Tasks.Export(args[0], &id)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d %s to %s\n", len(snap.Tasks), plural(len(snap.Tasks), "task"), args[0])
		return nil
	})
	return cmd
}

func newImportCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Add tasks from a JSON export",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = flags.withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
		if _, err := requireIdentity(a); err != nil {
			return err
		}
		res, err := a.Tasks.Import(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d %s (%d skipped)\n", res.Added, plural(res.Added, "task"), res.Skipped)
		return nil
	})
	return cmd
}

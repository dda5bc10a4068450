// Package cli is the taskflow command line: the interactive TUI by default and
// headless subcommands for scripting.
package cli

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskflow/internal/app"
	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/update"
)

var ErrNotSignedIn = errors.New("not signed in; run `taskflow login <provider>` first")

type rootFlags struct {
	configPath  string
	dbPath      string
	metricsAddr string
	ephemeral   bool
}

func (f *rootFlags) options() app.Options {
	return app.Options{
		ConfigPath:  f.configPath,
		DBPath:      f.dbPath,
		MetricsAddr: f.metricsAddr,
		Ephemeral:   f.ephemeral,
	}
}

type runFunc func(cmd *cobra.Command, args []string, a *app.App) error

// withApp opens the runtime for one command and closes it afterwards.
func (f *rootFlags) withApp(fn runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		a, err := app.New(cmd.Context(), f.options())
		if err != nil {
			return err
		}
		defer func() {
			if cerr := a.Close(cmd.Context()); err == nil {
				err = cerr
			}
		}()
		return fn(cmd, args, a)
	}
}

func requireIdentity(a *app.App) (model.Identity, error) {
	id, ok := a.Identity.Current()
	if !ok {
		return model.Identity{}, ErrNotSignedIn
	}
	return id, nil
}

// NewRootCmd builds the full command tree.
func NewRootCmd(version string) *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:   "taskflow",
		Short: "TaskFlow - organize your life, one task at a time",
		Long: `TaskFlow is a personal task tracker for the terminal.

Run without a subcommand to open the interactive app, or use the subcommands
to manage tasks from scripts.`,
		RunE:          flags.withApp(runTUI),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	pf := root.PersistentFlags()
	pf.StringVar(&flags.configPath, "config", "", "config file (default ~/.taskflow/config.yaml)")
	pf.StringVar(&flags.dbPath, "db", "", "database path (overrides db_path)")
	pf.StringVar(&flags.metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address")
	pf.BoolVar(&flags.ephemeral, "ephemeral", false, "keep all state in memory")

	root.AddCommand(
		newListCmd(flags),
		newAddCmd(flags),
		newEditCmd(flags),
		newDoneCmd(flags),
		newReopenCmd(flags),
		newRemoveCmd(flags),
		newClearCompletedCmd(flags),
		newLoginCmd(flags),
		newLogoutCmd(flags),
		newWhoamiCmd(flags),
		newStatsCmd(flags),
		newExportCmd(flags),
		newImportCmd(flags),
		newConfigCmd(flags),
		newVersionCmd(version),
	)
	return root
}

// Execute runs the root command.
func Execute(version string) error {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

func runTUI(cmd *cobra.Command, _ []string, a *app.App) error {
	if err := a.StartMetrics(); err != nil {
		return err
	}
	m := update.NewModel(update.Deps{
		Context:  cmd.Context(),
		Tasks:    a.Tasks,
		Identity: a.Identity,
		Toasts:   a.Toasts,
		Logger:   a.Logger,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "taskflow %s\n", version)
		},
	}
}

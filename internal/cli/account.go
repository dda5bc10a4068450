package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskflow/internal/app"
	"github.com/sandeepkv93/taskflow/internal/insights"
	"github.com/sandeepkv93/taskflow/internal/model"
)

func providerNames() string {
	names := make([]string, 0, len(model.Providers))
	for _, p := range model.Providers {
		names = append(names, string(p))
	}
	return strings.Join(names, ", ")
}

func newLoginCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <provider>",
		Short: "Sign in with a social provider (" + providerNames() + ")",
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = flags.withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
		p, err := model.ParseProvider(args[0])
		if err != nil {
			return fmt.Errorf("%w (choose one of %s)", err, providerNames())
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Signing in with %s...\n", p.DisplayName())
		id, err := a.Identity.SignIn(cmd.Context(), p)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Signed in as %s <%s>\n", id.Name, id.Email)
		return nil
	})
	return cmd
}

func newLogoutCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Sign out",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = flags.withApp(func(cmd *cobra.Command, _ []string, a *app.App) error {
		if _, err := requireIdentity(a); err != nil {
			return err
		}
		a.Identity.SignOut(cmd.Context())
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Signed out.")
		if a.Config.PurgeTasksOnSignOut {
			fmt.Fprintln(out, "Local tasks were removed.")
		}
		return nil
	})
	return cmd
}

func newWhoamiCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = flags.withApp(func(cmd *cobra.Command, _ []string, a *app.App) error {
		id, err := requireIdentity(a)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s <%s> via %s\n", id.Name, id.Email, id.Provider.DisplayName())
		return nil
	})
	return cmd
}

func newStatsCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show productivity statistics",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = flags.withApp(func(cmd *cobra.Command, _ []string, a *app.App) error {
		id, err := requireIdentity(a)
		if err != nil {
			return err
		}
		now := time.Now()
		tasks := a.Tasks.Tasks()
		p := insights.Profile(tasks, now)
		s := insights.Summarize(tasks, now)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s, %s\n\n", s.Greeting, id.Name)
		fmt.Fprintf(out, "Productivity Score: %d%%  %s\n", p.CompletionRate, p.Encouragement)
		fmt.Fprintf(out, "Total: %d  Completed: %d  Active: %d  This week: %d\n", p.Total, p.Completed, p.Open, p.ThisWeek)
		fmt.Fprintf(out, "Due today: %d  Due tomorrow: %d  Overdue: %d  High priority open: %d\n",
			len(s.DueToday), len(s.DueTomorrow), len(s.Overdue), len(s.HighPriority))
		fmt.Fprintf(out, "Level: %s\n", p.Level)
		return nil
	})
	return cmd
}

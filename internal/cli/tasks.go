package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/taskflow/internal/app"
	"github.com/sandeepkv93/taskflow/internal/commands"
	"github.com/sandeepkv93/taskflow/internal/insights"
	"github.com/sandeepkv93/taskflow/internal/model"
)

func newListCmd(flags *rootFlags) *cobra.Command {
	var filter, sortKey, search string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Args:  cobra.NoArgs,
	}
	cmd.Flags().StringVar(&filter, "filter", string(model.FilterAll), "all, open or complete")
	cmd.Flags().StringVar(&sortKey, "sort", "", "dueDate, priority, created or updated (default from config)")
	cmd.Flags().StringVar(&search, "search", "", "case-insensitive text in title or description")
	cmd.RunE = flags.withApp(func(cmd *cobra.Command, _ []string, a *app.App) error {
		if _, err := requireIdentity(a); err != nil {
			return err
		}
		f, err := model.ParseFilter(filter)
		if err != nil {
			return err
		}
		if err := a.Tasks.SetFilter(f); err != nil {
			return err
		}
		if sortKey != "" {
			k, err := model.ParseSortKey(sortKey)
			if err != nil {
				return err
			}
			if err := a.Tasks.SetSort(k); err != nil {
				return err
			}
		}
		a.Tasks.SetSearchQuery(search)
		writeTaskTable(cmd.OutOrStdout(), a.Tasks.Filtered(), time.Now())
		return nil
	})
	return cmd
}

func writeTaskTable(w io.Writer, tasks []model.Task, now time.Time) {
	if len(tasks) == 0 {
		fmt.Fprintln(w, "No tasks found.")
		return
	}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		mark := "[ ]"
		if t.IsComplete() {
			mark = "[x]"
		}
		due := t.DueDate.In(now.Location()).Format(model.DueDateLayout)
		if insights.IsOverdue(t, now) {
			due += " (overdue)"
		}
		rows = append(rows, []string{shortID(t.ID), mark, t.Title, due, string(t.Priority)})
	}
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ID", "", "TITLE", "DUE", "PRIORITY").
		Rows(rows...)
	fmt.Fprintln(w, tbl.Render())
	fmt.Fprintf(w, "%d %s\n", len(tasks), plural(len(tasks), "task"))
}

func newAddCmd(flags *rootFlags) *cobra.Command {
	var due, priority, description, status string
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a task",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.Flags().StringVar(&due, "due", "", "due date YYYY-MM-DD (default tomorrow)")
	cmd.Flags().StringVarP(&priority, "priority", "p", string(model.PriorityMedium), "low, medium or high")
	cmd.Flags().StringVarP(&description, "description", "d", "", "task description (markdown)")
	cmd.Flags().StringVar(&status, "status", string(model.StatusOpen), "open or complete")
	cmd.RunE = flags.withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
		if _, err := requireIdentity(a); err != nil {
			return err
		}
		d := model.Draft{Title: strings.Join(args, " "), Description: description}
		var err error
		if due == "" {
			d.DueDate = model.DefaultDueDate(time.Now())
		} else if d.DueDate, err = model.ParseDueDate(due, time.Local); err != nil {
			return err
		}
		if d.Priority, err = model.ParsePriority(priority); err != nil {
			return err
		}
		if d.Status, err = model.ParseStatus(status); err != nil {
			return err
		}
		t, err := a.Tasks.AddTask(cmd.Context(), d)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %s %s (due %s)\n", shortID(t.ID), t.Title, t.DueDate.Format(model.DueDateLayout))
		return nil
	})
	return cmd
}

func newEditCmd(flags *rootFlags) *cobra.Command {
	var title, description, due, priority, status string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a task",
		Args:  cobra.ExactArgs(1),
	}
	cmd.Flags().StringVar(&title, "title", "", "new title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "new description")
	cmd.Flags().StringVar(&due, "due", "", "new due date YYYY-MM-DD")
	cmd.Flags().StringVarP(&priority, "priority", "p", "", "low, medium or high")
	cmd.Flags().StringVar(&status, "status", "", "open or complete")
	cmd.RunE = flags.withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
		if _, err := requireIdentity(a); err != nil {
			return err
		}
		id, err := commands.ResolveID(args[0], a.Tasks.Tasks())
		if err != nil {
			return err
		}
		var p model.Patch
		changed := cmd.Flags().Changed
		if changed("title") {
			p.Title = &title
		}
		if changed("description") {
			p.Description = &description
		}
		if changed("due") {
			d, err := model.ParseDueDate(due, time.Local)
			if err != nil {
				return err
			}
			p.DueDate = &d
		}
		if changed("priority") {
			pr, err := model.ParsePriority(priority)
			if err != nil {
				return err
			}
			p.Priority = &pr
		}
		if changed("status") {
			s, err := model.ParseStatus(status)
			if err != nil {
				return err
			}
			p.Status = &s
		}
		if p.IsEmpty() {
			return errors.New("nothing to change; pass at least one of --title, --description, --due, --priority, --status")
		}
		t, err := a.Tasks.UpdateTask(cmd.Context(), id, p)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s %s\n", shortID(t.ID), t.Title)
		return nil
	})
	return cmd
}

func newDoneCmd(flags *rootFlags) *cobra.Command {
	return newStatusCmd(flags, "done <id>", "Mark a task complete", model.StatusComplete, "Completed")
}

func newReopenCmd(flags *rootFlags) *cobra.Command {
	return newStatusCmd(flags, "reopen <id>", "Mark a task open again", model.StatusOpen, "Reopened")
}

// newStatusCmd toggles a task only when it is not already in want.
func newStatusCmd(flags *rootFlags, use, short string, want model.Status, verb string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
	}
	cmd.RunE = flags.withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
		if _, err := requireIdentity(a); err != nil {
			return err
		}
		id, err := commands.ResolveID(args[0], a.Tasks.Tasks())
		if err != nil {
			return err
		}
		t, _ := a.Tasks.Get(id)
		if t.Status == want {
			fmt.Fprintf(cmd.OutOrStdout(), "Already %s: %s\n", want, t.Title)
			return nil
		}
		if t, err = a.Tasks.ToggleComplete(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", verb, shortID(t.ID), t.Title)
		return nil
	})
	return cmd
}

func newRemoveCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
	}
	cmd.RunE = flags.withApp(func(cmd *cobra.Command, args []string, a *app.App) error {
		if _, err := requireIdentity(a); err != nil {
			return err
		}
		id, err := commands.ResolveID(args[0], a.Tasks.Tasks())
		if err != nil {
			return err
		}
		t, _ := a.Tasks.Get(id)
		if err := a.Tasks.DeleteTask(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", shortID(t.ID), t.Title)
		return nil
	})
	return cmd
}

func newClearCompletedCmd(flags *rootFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear-completed",
		Short: "Delete every completed task",
		Args:  cobra.NoArgs,
	}
	cmd.RunE = flags.withApp(func(cmd *cobra.Command, _ []string, a *app.App) error {
		if _, err := requireIdentity(a); err != nil {
			return err
		}
		n := a.Tasks.ClearCompleted(cmd.Context())
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d completed %s.\n", n, plural(n, "task"))
		return nil
	})
	return cmd
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func plural(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}

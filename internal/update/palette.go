package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskflow/internal/commands"
	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/views"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "enter":
		return m.executePaletteCommand(), nil
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	return m, cmd
}

func (m Model) closePalette() Model {
	m.Palette.Active = false
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.commandInput.Value())
	m = m.closePalette()
	cmd, err := commands.Parse(raw, m.now().Location())
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			due := a.Due
			if due.IsZero() {
				due = model.DefaultDueDate(m.now())
			}
			t, err := m.tasks.AddTask(m.ctx, model.Draft{Title: a.Title, DueDate: due, Priority: a.Priority})
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			return commands.Result{Message: fmt.Sprintf("added task: %s", t.Title)}, nil
		},
		Filter: func(f commands.FilterArgs) (commands.Result, error) {
			if !isListTab(m.CurrentTab) {
				m = m.switchTab(TabTasks)
			}
			if err := m.tasks.SetFilter(f.Filter); err != nil {
				return commands.Result{}, err
			}
			m.Cursor = 0
			return commands.Result{Message: fmt.Sprintf("filter: %s", f.Filter)}, nil
		},
		Sort: func(s commands.SortArgs) (commands.Result, error) {
			if err := m.tasks.SetSort(s.Key); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("sort: %s", s.Key.Label())}, nil
		},
		Search: func(s commands.SearchArgs) (commands.Result, error) {
			m.searchInput.SetValue(s.Query)
			m = m.switchTab(TabSearch)
			m.searchInput.Blur()
			if s.Query == "" {
				return commands.Result{Message: "search cleared"}, nil
			}
			return commands.Result{Message: fmt.Sprintf("search: %s", s.Query)}, nil
		},
		Done: func(d commands.DoneArgs) (commands.Result, error) {
			id, err := commands.ResolveID(d.IDPrefix, m.tasks.Tasks())
			if err != nil {
				return commands.Result{}, err
			}
			t, _ := m.tasks.Get(id)
			if t.IsComplete() {
				return commands.Result{Message: fmt.Sprintf("already complete: %s", t.Title)}, nil
			}
			t, err = m.tasks.ToggleComplete(m.ctx, id)
			if err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("completed: %s", t.Title)}, nil
		},
		Clear: func() (commands.Result, error) {
			n := m.tasks.ClearCompleted(m.ctx)
			return commands.Result{Message: fmt.Sprintf("cleared %d completed task(s)", n)}, nil
		},
		Logout: func() (commands.Result, error) {
			m = m.signOut()
			return commands.Result{Message: "signed out"}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m.Status = StatusBar{Text: res.Message}
	return m
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.commandInput.View())
}

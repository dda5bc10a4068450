package update

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskflow/internal/insights"
	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/store"
	"github.com/sandeepkv93/taskflow/internal/views"
)

// switchTab opens t. List tabs reset the status filter to their default and
// the search query only applies while the Search tab is open.
func (m Model) switchTab(t Tab) Model {
	m.CurrentTab = t
	m.Cursor = 0
	m.ShowDetails = false
	if f, ok := tabFilter(t); ok {
		if err := m.tasks.SetFilter(f); err != nil {
			m.logger.Error("set tab filter", "tab", string(t), "err", err)
		}
	}
	if t == TabSearch {
		m.tasks.SetSearchQuery(m.searchInput.Value())
		m.searchInput.Focus()
	} else {
		m.tasks.SetSearchQuery("")
		m.searchInput.Blur()
	}
	return m
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.Cursor < len(m.visible)-1 {
			m.Cursor++
		}
	case "k", "up":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "home":
		m.Cursor = 0
	case "end", "G":
		m.Cursor = len(m.visible) - 1
	case "enter":
		m.ShowDetails = !m.ShowDetails
	case " ":
		return m.toggleSelected(), nil
	case "e":
		if sel, ok := m.selectedTask(); ok {
			return m.openForm(&sel), nil
		}
	case "x", "delete":
		return m.deleteSelected(), nil
	case "f":
		next := m.tasks.Params().Filter.Next()
		_ = m.tasks.SetFilter(next)
		m.Cursor = 0
		m.Status = StatusBar{Text: fmt.Sprintf("filter: %s", next)}
	case "s":
		next := m.tasks.Params().Sort.Next()
		_ = m.tasks.SetSort(next)
		m.Status = StatusBar{Text: fmt.Sprintf("sort: %s", next.Label())}
	case "r":
		if m.Refreshing {
			return m, nil
		}
		m.Refreshing = true
		return m, tea.Batch(m.spin.Tick, tea.Tick(refreshDuration, func(time.Time) tea.Msg { return refreshDoneMsg{} }))
	case "C":
		if m.CurrentTab == TabDone {
			n := m.tasks.ClearCompleted(m.ctx)
			m.Cursor = 0
			m.Status = StatusBar{Text: fmt.Sprintf("cleared %d completed task(s)", n)}
		}
	case "i":
		if m.CurrentTab == TabSearch {
			m.searchInput.Focus()
		}
	}
	return m, nil
}

func (m Model) handleSearchInputKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "enter", "down":
		m.searchInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	m.tasks.SetSearchQuery(m.searchInput.Value())
	m.Cursor = 0
	return m, cmd
}

func (m Model) toggleSelected() Model {
	sel, ok := m.selectedTask()
	if !ok {
		return m
	}
	t, err := m.tasks.ToggleComplete(m.ctx, sel.ID)
	if err != nil {
		return m.fail(err)
	}
	if t.IsComplete() {
		m.Status = StatusBar{Text: fmt.Sprintf("completed: %s", t.Title)}
	} else {
		m.Status = StatusBar{Text: fmt.Sprintf("reopened: %s", t.Title)}
	}
	return m
}

func (m Model) deleteSelected() Model {
	sel, ok := m.selectedTask()
	if !ok {
		return m
	}
	if err := m.tasks.DeleteTask(m.ctx, sel.ID); err != nil {
		return m.fail(err)
	}
	m.ShowDetails = false
	m.Status = StatusBar{Text: fmt.Sprintf("deleted: %s", sel.Title)}
	return m
}

func (m Model) fail(err error) Model {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	if !errors.Is(err, store.ErrTaskNotFound) {
		m.logger.Error("task action failed", "err", err)
	}
	return m
}

func (m Model) renderListView() string {
	p := m.tasks.Params()
	data := views.TaskListData{
		Heading:     listHeading(m.CurrentTab),
		FilterLabel: string(p.Filter),
		SortLabel:   p.Sort.Label(),
		Query:       p.Query,
		ShowSearch:  m.CurrentTab == TabSearch,
		SearchView:  m.searchInput.View(),
		TableView:   m.taskTable.View(),
		Count:       len(m.visible),
		EmptyText:   emptyText(m.CurrentTab, p),
		Refreshing:  m.Refreshing,
		SpinnerView: m.spin.View(),
		Actions:     listActions(m.CurrentTab),
	}
	if sel, ok := m.selectedTask(); ok && m.ShowDetails {
		detail := taskDetail(sel, m.now())
		detail.DescriptionView = m.detailsPane.View()
		data.Detail = &detail
	}
	return views.RenderTaskList(data)
}

func listHeading(t Tab) string {
	switch t {
	case TabDone:
		return "Completed Tasks"
	case TabSearch:
		return "Search"
	default:
		return "My Tasks"
	}
}

func emptyText(t Tab, p model.ViewParams) string {
	switch {
	case p.Query != "":
		return fmt.Sprintf("No tasks match %q.", p.Query)
	case t == TabDone:
		return "No completed tasks yet."
	case p.Filter == model.FilterOpen:
		return "Nothing open. Press n to add a task."
	default:
		return "No tasks found."
	}
}

func listActions(t Tab) string {
	base := "[j/k]move [space]toggle [enter]details [e]edit [x]delete [f]filter [s]sort [r]refresh"
	switch t {
	case TabDone:
		return base + " [C]clear completed"
	case TabSearch:
		return base + " [i]type query"
	default:
		return base
	}
}

func taskDetail(t model.Task, now time.Time) views.TaskDetailData {
	loc := now.Location()
	return views.TaskDetailData{
		ID:          t.ID,
		Title:       t.Title,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		Due:         t.DueDate.In(loc).Format("Mon Jan 2, 2006"),
		DueRelative: insights.RelativeDue(t.DueDate, now),
		Overdue:     insights.IsOverdue(t, now),
		Created:     t.CreatedAt.In(loc).Format("2006-01-02 15:04"),
		Updated:     t.UpdatedAt.In(loc).Format("2006-01-02 15:04"),
	}
}

func dueLabel(t model.Task, now time.Time) string {
	label := t.DueDate.In(now.Location()).Format("Jan 02")
	if insights.IsOverdue(t, now) {
		return label + " !"
	}
	return label
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

package update

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/views"
)

func (m *Model) initBubbleComponents() {
	cols := []table.Column{
		{Title: "", Width: 3},
		{Title: "Title", Width: 30},
		{Title: "Due", Width: 11},
		{Title: "Priority", Width: 8},
		{Title: "ID", Width: 10},
	}
	m.taskTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithFocused(true), table.WithHeight(10))

	m.searchInput = textinput.New()
	m.searchInput.Prompt = "search> "
	m.searchInput.Placeholder = "Search tasks..."
	m.searchInput.CharLimit = 256
	m.searchInput.Width = 48

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.titleInput = textinput.New()
	m.titleInput.Placeholder = "What needs to be done?"
	m.titleInput.CharLimit = 256
	m.titleInput.Width = 48

	m.dueInput = textinput.New()
	m.dueInput.Placeholder = model.DueDateLayout
	m.dueInput.CharLimit = len(model.DueDateLayout)
	m.dueInput.Width = 12

	m.descArea = textarea.New()
	m.descArea.SetWidth(54)
	m.descArea.SetHeight(4)
	m.descArea.ShowLineNumbers = false
	m.descArea.Placeholder = "Add details (markdown)"

	m.rateBar = progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))

	m.spin = spinner.New()
	m.spin.Spinner = spinner.Dot

	m.helpModel = help.New()
	m.detailsPane = viewport.New(views.DefaultWidth-6, 10)
}

// syncBubbleData refreshes the derived view and pushes it into the table.
func (m *Model) syncBubbleData() {
	if m.tasks == nil {
		return
	}
	m.visible = m.tasks.Filtered()
	if m.Cursor >= len(m.visible) {
		m.Cursor = len(m.visible) - 1
	}
	if m.Cursor < 0 {
		m.Cursor = 0
	}

	now := m.now()
	rows := make([]table.Row, 0, len(m.visible))
	for _, t := range m.visible {
		mark := "[ ]"
		if t.IsComplete() {
			mark = "[x]"
		}
		rows = append(rows, table.Row{mark, t.Title, dueLabel(t, now), string(t.Priority), shortID(t.ID)})
	}
	m.taskTable.SetRows(rows)
	if len(rows) > 0 {
		m.taskTable.SetCursor(m.Cursor)
	}

	if sel, ok := m.selectedTask(); ok && m.ShowDetails {
		key := detailsKey{id: sel.ID, updatedAt: sel.UpdatedAt, width: m.width}
		if key != m.detailsKey {
			md := sel.Description
			if strings.TrimSpace(md) == "" {
				md = "_No description_"
			}
			m.detailsPane.SetContent(views.RenderMarkdown(md, m.width))
			m.detailsKey = key
		}
	}
}

func (m Model) selectedTask() (model.Task, bool) {
	if m.Cursor < 0 || m.Cursor >= len(m.visible) {
		return model.Task{}, false
	}
	return m.visible[m.Cursor], true
}

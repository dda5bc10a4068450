package update

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/views"
)

// openForm shows the task form, prefilled from task when editing.
func (m Model) openForm(task *model.Task) Model {
	m.Form = FormState{Active: true, Field: FieldTitle, Priority: model.PriorityMedium, Status: model.StatusOpen}
	loc := m.now().Location()
	if task == nil {
		m.titleInput.SetValue("")
		m.descArea.SetValue("")
		m.dueInput.SetValue(dueInputValue(m.now()))
	} else {
		m.Form.EditingID = task.ID
		m.Form.Priority = task.Priority
		m.Form.Status = task.Status
		m.titleInput.SetValue(task.Title)
		m.descArea.SetValue(task.Description)
		m.dueInput.SetValue(task.DueDate.In(loc).Format(model.DueDateLayout))
	}
	m.focusField()
	return m
}

func (m Model) closeForm() Model {
	m.Form = FormState{}
	m.titleInput.Blur()
	m.descArea.Blur()
	m.dueInput.Blur()
	return m
}

func (m *Model) focusField() {
	m.titleInput.Blur()
	m.descArea.Blur()
	m.dueInput.Blur()
	switch m.Form.Field {
	case FieldTitle:
		m.titleInput.Focus()
	case FieldDescription:
		m.descArea.Focus()
	case FieldDue:
		m.dueInput.Focus()
	}
}

func (m Model) handleFormKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closeForm()
		m.Status = StatusBar{Text: "edit cancelled"}
		return m, nil
	case "ctrl+s":
		return m.submitForm(), nil
	case "tab":
		m.Form.Field = (m.Form.Field + 1) % formFieldCount
		m.focusField()
		return m, nil
	case "shift+tab":
		m.Form.Field = (m.Form.Field + formFieldCount - 1) % formFieldCount
		m.focusField()
		return m, nil
	case "enter":
		switch m.Form.Field {
		case FieldDescription:
		case FieldStatus:
			return m.submitForm(), nil
		default:
			m.Form.Field++
			m.focusField()
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.Form.Field {
	case FieldTitle:
		m.titleInput, cmd = m.titleInput.Update(msg)
		m.Form.TitleErr = ""
	case FieldDescription:
		m.descArea, cmd = m.descArea.Update(msg)
	case FieldDue:
		m.dueInput, cmd = m.dueInput.Update(msg)
		m.Form.DueErr = ""
	case FieldPriority:
		switch msg.String() {
		case "left", "h":
			m.Form.Priority = m.Form.Priority.Prev()
		case "right", "l", " ":
			m.Form.Priority = m.Form.Priority.Next()
		}
	case FieldStatus:
		switch msg.String() {
		case "left", "h", "right", "l", " ":
			m.Form.Status = m.Form.Status.Toggled()
		}
	}
	return m, cmd
}

// submitForm validates the fields and only then touches the store.
func (m Model) submitForm() Model {
	title := strings.TrimSpace(m.titleInput.Value())
	due, dueErr := model.ParseDueDate(m.dueInput.Value(), m.now().Location())

	m.Form.TitleErr, m.Form.DueErr = "", ""
	if title == "" {
		m.Form.TitleErr = "Task title is required"
	}
	if dueErr != nil {
		if errors.Is(dueErr, model.ErrDueDateRequired) {
			m.Form.DueErr = "Due date is required"
		} else {
			m.Form.DueErr = "Use the format YYYY-MM-DD"
		}
	}
	if m.Form.TitleErr != "" || m.Form.DueErr != "" {
		if m.Form.TitleErr != "" {
			m.Form.Field = FieldTitle
		} else {
			m.Form.Field = FieldDue
		}
		m.focusField()
		return m
	}

	description := strings.TrimSpace(m.descArea.Value())
	if m.Form.EditingID == "" {
		t, err := m.tasks.AddTask(m.ctx, model.Draft{
			Title:       title,
			Description: description,
			DueDate:     due,
			Status:      m.Form.Status,
			Priority:    m.Form.Priority,
		})
		if err != nil {
			return m.fail(err)
		}
		m = m.closeForm()
		m.Status = StatusBar{Text: fmt.Sprintf("added: %s", t.Title)}
		return m
	}

	priority, status := m.Form.Priority, m.Form.Status
	t, err := m.tasks.UpdateTask(m.ctx, m.Form.EditingID, model.Patch{
		Title:       &title,
		Description: &description,
		DueDate:     &due,
		Status:      &status,
		Priority:    &priority,
	})
	if err != nil {
		m = m.closeForm()
		return m.fail(err)
	}
	m = m.closeForm()
	m.Status = StatusBar{Text: fmt.Sprintf("updated: %s", t.Title)}
	return m
}

func (m Model) renderFormView() string {
	heading := "Create New Task"
	if m.Form.EditingID != "" {
		heading = "Edit Task"
	}
	priorities := make([]string, 0, len(model.Priorities))
	for _, p := range model.Priorities {
		priorities = append(priorities, string(p))
	}
	return views.RenderForm(views.FormData{
		Heading:         heading,
		TitleView:       m.titleInput.View(),
		TitleErr:        m.Form.TitleErr,
		DescriptionView: m.descArea.View(),
		DueView:         m.dueInput.View(),
		DueErr:          m.Form.DueErr,
		Priority:        string(m.Form.Priority),
		Priorities:      priorities,
		Status:          string(m.Form.Status),
		Field:           int(m.Form.Field),
	})
}

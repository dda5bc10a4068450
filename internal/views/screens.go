package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	activeTabStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("12")).Padding(0, 1)
	inactiveTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("7")).Padding(0, 1)
	badgeStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	overdueStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	sectionStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	fieldErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	focusMarkStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
)

type ProviderData struct {
	Key  string
	Name string
}

type LoginData struct {
	Providers   []ProviderData
	Loading     bool
	Pending     string
	SpinnerView string
}

type TabData struct {
	Key    string
	Label  string
	Badge  int
	Active bool
}

type HomeSectionData struct {
	Title string
	Count int
	Lines []string
	More  string
}

type HomeData struct {
	Greeting     string
	Name         string
	Open         int
	Completed    int
	Rate         int
	ProgressView string
	Sections     []HomeSectionData
	Empty        bool
}

type TaskDetailData struct {
	ID              string
	Title           string
	Status          string
	Priority        string
	Due             string
	DueRelative     string
	Overdue         bool
	DescriptionView string
	Created         string
	Updated         string
}

type TaskListData struct {
	Heading     string
	FilterLabel string
	SortLabel   string
	Query       string
	SearchView  string
	ShowSearch  bool
	TableView   string
	Count       int
	EmptyText   string
	Refreshing  bool
	SpinnerView string
	Detail      *TaskDetailData
	Actions     string
}

type ProfileData struct {
	Name                  string
	Email                 string
	Provider              string
	Rate                  int
	Encouragement         string
	Total                 int
	Completed             int
	Open                  int
	ThisWeek              int
	Level                 string
	HighPriorityCompleted int
}

type FormData struct {
	Heading         string
	TitleView       string
	TitleErr        string
	DescriptionView string
	DueView         string
	DueErr          string
	Priority        string
	Priorities      []string
	Status          string
	Field           int
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderLogin(data LoginData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("TaskFlow") + "\n")
	b.WriteString("Organize your life, one task at a time.\n\n")
	if data.Loading {
		b.WriteString(fmt.Sprintf("%s Signing in with %s...\n", data.SpinnerView, data.Pending))
		return strings.TrimSpace(b.String())
	}
	b.WriteString("Continue with:\n")
	for _, p := range data.Providers {
		b.WriteString(fmt.Sprintf("  [%s] %s\n", p.Key, p.Name))
	}
	b.WriteString("\n" + mutedStyle.Render("Sign-in is simulated; no account data leaves this machine."))
	return b.String()
}

func RenderTabBar(tabs []TabData) string {
	parts := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		label := fmt.Sprintf("%s %s", tab.Key, tab.Label)
		if tab.Badge > 0 {
			label += " " + badgeStyle.Render(badge(tab.Badge))
		}
		if tab.Active {
			parts = append(parts, activeTabStyle.Render(label))
		} else {
			parts = append(parts, inactiveTabStyle.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func badge(n int) string {
	if n > 99 {
		return "(99+)"
	}
	return fmt.Sprintf("(%d)", n)
}

func RenderHome(data HomeData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(data.Greeting) + "\n")
	b.WriteString(data.Name + "\n\n")
	b.WriteString(fmt.Sprintf("%d Active | %d Done | %d%% Complete\n", data.Open, data.Completed, data.Rate))
	b.WriteString(data.ProgressView + "\n")
	if data.Empty {
		b.WriteString("\n" + sectionStyle.Render("Welcome to TaskFlow!") + "\n")
		b.WriteString("Start organizing your life by creating your first task.\n")
		b.WriteString(mutedStyle.Render("Press n to get started"))
		return b.String()
	}
	for _, s := range data.Sections {
		if s.Count == 0 {
			continue
		}
		b.WriteString(fmt.Sprintf("\n%s %s\n", sectionStyle.Render(s.Title), badge(s.Count)))
		for _, line := range s.Lines {
			b.WriteString("  " + line + "\n")
		}
		if s.More != "" {
			b.WriteString("  " + mutedStyle.Render(s.More) + "\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderTaskList(data TaskListData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(data.Heading))
	if data.Refreshing {
		b.WriteString(" " + data.SpinnerView + " refreshing")
	}
	b.WriteString("\n")
	if data.ShowSearch {
		b.WriteString(data.SearchView + "\n")
	}
	b.WriteString(mutedStyle.Render(fmt.Sprintf("filter: %s | sort: %s | %d shown", data.FilterLabel, data.SortLabel, data.Count)) + "\n")
	if data.Count == 0 {
		b.WriteString("\n" + data.EmptyText + "\n")
	} else {
		b.WriteString(data.TableView + "\n")
	}
	if data.Detail != nil {
		b.WriteString("\n" + RenderTaskDetail(*data.Detail) + "\n")
	}
	if data.Actions != "" {
		b.WriteString(mutedStyle.Render(data.Actions))
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderTaskDetail(d TaskDetailData) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render(d.Title) + "\n")
	due := fmt.Sprintf("due: %s (%s)", d.Due, d.DueRelative)
	if d.Overdue {
		due = overdueStyle.Render(due + " overdue")
	}
	b.WriteString(fmt.Sprintf("id: %s | status: %s | priority: %s\n", d.ID, d.Status, d.Priority))
	b.WriteString(due + "\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("created %s | updated %s", d.Created, d.Updated)) + "\n")
	if d.DescriptionView != "" {
		b.WriteString("\n" + d.DescriptionView)
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderProfile(data ProfileData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(data.Name) + "\n")
	b.WriteString(data.Email + "\n")
	b.WriteString(mutedStyle.Render("Signed in with "+data.Provider) + "\n\n")
	b.WriteString(fmt.Sprintf("Productivity Score: %d%%  %s\n\n", data.Rate, data.Encouragement))
	b.WriteString(sectionStyle.Render("Your Activity") + "\n")
	b.WriteString(fmt.Sprintf("  Total Tasks: %d\n  Completed:   %d\n  Active:      %d\n  This Week:   %d\n", data.Total, data.Completed, data.Open, data.ThisWeek))
	b.WriteString("\n" + sectionStyle.Render("Achievements") + "\n")
	b.WriteString(fmt.Sprintf("  Task Master: completed %d tasks [%s]\n", data.Completed, data.Level))
	if data.HighPriorityCompleted > 0 {
		b.WriteString(fmt.Sprintf("  Priority Focused: completed %d high priority tasks\n", data.HighPriorityCompleted))
	}
	b.WriteString("\n" + mutedStyle.Render("[L] sign out"))
	return b.String()
}

func RenderForm(data FormData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(data.Heading) + "\n\n")
	field := func(idx int, label, view, errText string) {
		mark := "  "
		if data.Field == idx {
			mark = focusMarkStyle.Render("> ")
		}
		b.WriteString(mark + label + "\n" + view + "\n")
		if errText != "" {
			b.WriteString(fieldErrorStyle.Render("  "+errText) + "\n")
		}
	}
	field(0, "Title *", data.TitleView, data.TitleErr)
	field(1, "Description", data.DescriptionView, "")
	field(2, "Due date * (YYYY-MM-DD)", data.DueView, data.DueErr)

	opts := make([]string, 0, len(data.Priorities))
	for _, p := range data.Priorities {
		if p == data.Priority {
			opts = append(opts, "["+p+"]")
		} else {
			opts = append(opts, " "+p+" ")
		}
	}
	field(3, "Priority", "  "+strings.Join(opts, " "), "")
	field(4, "Status", "  ["+data.Status+"]", "")
	b.WriteString("\n" + mutedStyle.Render("[tab] next field  [ctrl+s] save  [esc] cancel"))
	return b.String()
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return "command: " + inputView
}

// RenderToast formats the latest notification for the line under the body.
func RenderToast(severity, title, description string) string {
	if strings.TrimSpace(title) == "" && strings.TrimSpace(description) == "" {
		return ""
	}
	style := statusStyle
	switch severity {
	case "destructive":
		style = errorStyle
	case "info":
		style = headerStyle
	}
	text := title
	if description != "" {
		text = fmt.Sprintf("%s: %s", title, description)
	}
	return style.Render("notification: " + text)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help (%s):\n%s\n\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

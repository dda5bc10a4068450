package views

import (
	"strings"
	"testing"
)

func TestRenderLogin(t *testing.T) {
	out := RenderLogin(LoginData{Providers: []ProviderData{{Key: "g", Name: "Google"}, {Key: "h", Name: "GitHub"}}})
	for _, want := range []string{"TaskFlow", "Continue with:", "[g] Google", "[h] GitHub"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in login view:\n%s", want, out)
		}
	}

	loading := RenderLogin(LoginData{Loading: true, Pending: "Apple", SpinnerView: "*"})
	if !strings.Contains(loading, "* Signing in with Apple...") || strings.Contains(loading, "Continue with:") {
		t.Fatalf("unexpected loading view:\n%s", loading)
	}
}

func TestRenderTabBarBadges(t *testing.T) {
	out := RenderTabBar([]TabData{
		{Key: "1", Label: "Home", Active: true},
		{Key: "2", Label: "Tasks", Badge: 3},
		{Key: "3", Label: "Done", Badge: 150},
	})
	for _, want := range []string{"1 Home", "2 Tasks", "(3)", "(99+)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in tab bar: %s", want, out)
		}
	}
	if strings.Contains(out, "(0)") {
		t.Fatalf("zero badge should be hidden: %s", out)
	}
}

func TestRenderHome(t *testing.T) {
	empty := RenderHome(HomeData{Greeting: "Good morning", Name: "Sam", Empty: true})
	if !strings.Contains(empty, "Welcome to TaskFlow!") {
		t.Fatalf("expected empty state:\n%s", empty)
	}

	out := RenderHome(HomeData{
		Greeting: "Good evening",
		Open:     5,
		Rate:     40,
		Sections: []HomeSectionData{
			{Title: "Due Today", Count: 4, Lines: []string{"a", "b", "c"}, More: "+1 more tasks due today"},
			{Title: "Overdue", Count: 0},
		},
	})
	if !strings.Contains(out, "Due Today") || !strings.Contains(out, "+1 more tasks due today") {
		t.Fatalf("expected due today section:\n%s", out)
	}
	if strings.Contains(out, "Overdue") {
		t.Fatalf("empty sections should be skipped:\n%s", out)
	}
	if !strings.Contains(out, "5 Active | 0 Done | 40% Complete") {
		t.Fatalf("expected counters:\n%s", out)
	}
}

func TestRenderTaskListEmptyAndDetail(t *testing.T) {
	out := RenderTaskList(TaskListData{Heading: "My Tasks", FilterLabel: "open", SortLabel: "Due date", EmptyText: "No tasks found.", TableView: "TABLE"})
	if !strings.Contains(out, "No tasks found.") || strings.Contains(out, "TABLE") {
		t.Fatalf("expected empty text instead of table:\n%s", out)
	}

	out = RenderTaskList(TaskListData{
		Heading:    "Search",
		Count:      1,
		TableView:  "TABLE",
		ShowSearch: true,
		SearchView: "search> milk",
		Detail:     &TaskDetailData{ID: "abc", Title: "Buy milk", Status: "open", Priority: "high", Due: "Thu Feb 12, 2026", DueRelative: "in 1 day"},
	})
	for _, want := range []string{"TABLE", "search> milk", "Buy milk", "priority: high", "in 1 day"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in list view:\n%s", want, out)
		}
	}
}

func TestRenderFormShowsErrorsAndPriority(t *testing.T) {
	out := RenderForm(FormData{
		Heading:    "Create New Task",
		TitleErr:   "Task title is required",
		Priority:   "high",
		Priorities: []string{"low", "medium", "high"},
		Status:     "open",
	})
	for _, want := range []string{"Create New Task", "Task title is required", "[high]", " low ", "[open]"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in form:\n%s", want, out)
		}
	}
}

func TestRenderToast(t *testing.T) {
	if got := RenderToast("success", "", ""); got != "" {
		t.Fatalf("expected empty toast, got %q", got)
	}
	got := RenderToast("destructive", "Task deleted", "Your task has been removed.")
	if !strings.Contains(got, "notification: Task deleted: Your task has been removed.") {
		t.Fatalf("unexpected toast: %q", got)
	}
}

func TestRenderCommandPalette(t *testing.T) {
	if RenderCommandPalette(false, "/add") != "" {
		t.Fatal("inactive palette should render nothing")
	}
	if got := RenderCommandPalette(true, "/add"); got != "command: /add" {
		t.Fatalf("unexpected palette: %q", got)
	}
}

func TestRenderAppUsesOverlay(t *testing.T) {
	out := RenderApp(AppData{Header: "TaskFlow", Body: "BODY", Overlay: "FORM", StatusLine: "status: ok", Footer: "keys"})
	if strings.Contains(out, "BODY") || !strings.Contains(out, "FORM") {
		t.Fatalf("overlay should replace the body:\n%s", out)
	}
	if !strings.Contains(out, "status: ok") || !strings.Contains(out, "keys") {
		t.Fatalf("expected status and footer:\n%s", out)
	}
}

func TestRenderMarkdownFallsBackOnEmpty(t *testing.T) {
	if got := RenderMarkdown("   ", 80); got != "" {
		t.Fatalf("expected empty render, got %q", got)
	}
	if got := RenderMarkdown("**bold** text", 80); !strings.Contains(got, "text") {
		t.Fatalf("expected rendered markdown to keep text, got %q", got)
	}
}

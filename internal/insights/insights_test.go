package insights

import (
	"testing"
	"time"

	"github.com/sandeepkv93/taskflow/internal/model"
)

// Wednesday.
var ref = time.Date(2026, 2, 11, 10, 30, 0, 0, time.UTC)

func task(id string, due time.Time, status model.Status, p model.Priority) model.Task {
	return model.Task{ID: id, Title: id, DueDate: due, Status: status, Priority: p, CreatedAt: ref, UpdatedAt: ref}
}

func TestGreeting(t *testing.T) {
	cases := []struct {
		hour int
		want string
	}{
		{0, "Good morning"},
		{11, "Good morning"},
		{12, "Good afternoon"},
		{16, "Good afternoon"},
		{17, "Good evening"},
		{23, "Good evening"},
	}
	for _, tc := range cases {
		now := time.Date(2026, 2, 11, tc.hour, 0, 0, 0, time.UTC)
		if got := Greeting(now); got != tc.want {
			t.Fatalf("hour %d: got %q want %q", tc.hour, got, tc.want)
		}
	}
}

func TestSummarizeBuckets(t *testing.T) {
	tasks := []model.Task{
		task("today-late", time.Date(2026, 2, 11, 23, 59, 59, 0, time.UTC), model.StatusOpen, model.PriorityLow),
		task("today-past", time.Date(2026, 2, 11, 8, 0, 0, 0, time.UTC), model.StatusOpen, model.PriorityHigh),
		task("tomorrow", time.Date(2026, 2, 12, 23, 59, 59, 0, time.UTC), model.StatusOpen, model.PriorityMedium),
		task("last-week", time.Date(2026, 2, 4, 23, 59, 59, 0, time.UTC), model.StatusOpen, model.PriorityMedium),
		task("done", time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), model.StatusComplete, model.PriorityHigh),
	}
	s := Summarize(tasks, ref)

	if s.Open != 4 || s.Completed != 1 {
		t.Fatalf("unexpected counts: open=%d completed=%d", s.Open, s.Completed)
	}
	if s.CompletionRate != 20 {
		t.Fatalf("expected 20%% completion, got %v", s.CompletionRate)
	}
	if len(s.DueToday) != 2 || len(s.DueTomorrow) != 1 {
		t.Fatalf("unexpected due buckets: today=%d tomorrow=%d", len(s.DueToday), len(s.DueTomorrow))
	}
	if len(s.Overdue) != 2 || s.Overdue[0].ID != "today-past" || s.Overdue[1].ID != "last-week" {
		t.Fatalf("unexpected overdue: %+v", s.Overdue)
	}
	if len(s.HighPriority) != 1 || s.HighPriority[0].ID != "today-past" {
		t.Fatalf("completed tasks must not count as high priority: %+v", s.HighPriority)
	}
	if s.Greeting != "Good morning" {
		t.Fatalf("unexpected greeting %q", s.Greeting)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, ref)
	if !s.Empty() || s.CompletionRate != 0 {
		t.Fatalf("expected empty summary, got %+v", s)
	}
}

func TestProfile(t *testing.T) {
	sunday := time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		task("a", ref, model.StatusComplete, model.PriorityHigh),
		task("b", ref, model.StatusComplete, model.PriorityLow),
		task("c", ref, model.StatusOpen, model.PriorityHigh),
	}
	tasks[0].CreatedAt = sunday
	tasks[1].CreatedAt = sunday.Add(-time.Second)

	p := Profile(tasks, ref)
	if p.Total != 3 || p.Completed != 2 || p.Open != 1 {
		t.Fatalf("unexpected totals: %+v", p)
	}
	if p.ThisWeek != 2 {
		t.Fatalf("expected 2 tasks created this week, got %d", p.ThisWeek)
	}
	if p.CompletionRate != 67 {
		t.Fatalf("expected rounded 67%%, got %d", p.CompletionRate)
	}
	if p.HighPriorityCompleted != 1 {
		t.Fatalf("expected 1 high priority completed, got %d", p.HighPriorityCompleted)
	}
	if p.Level != "Starter" || p.Encouragement != "Good job!" {
		t.Fatalf("unexpected labels: %q %q", p.Level, p.Encouragement)
	}
}

func TestLevelAndEncouragementThresholds(t *testing.T) {
	levels := map[int]string{0: "Starter", 4: "Starter", 5: "Beginner", 19: "Beginner", 20: "Advanced", 49: "Advanced", 50: "Expert"}
	for n, want := range levels {
		if got := Level(n); got != want {
			t.Fatalf("Level(%d) = %q want %q", n, got, want)
		}
	}
	rates := map[int]string{0: "Keep going!", 59: "Keep going!", 60: "Good job!", 79: "Good job!", 80: "Excellent!", 100: "Excellent!"}
	for r, want := range rates {
		if got := Encouragement(r); got != want {
			t.Fatalf("Encouragement(%d) = %q want %q", r, got, want)
		}
	}
}

func TestWeekBoundsStartOnSunday(t *testing.T) {
	start, end := WeekBounds(ref)
	if start.Weekday() != time.Sunday || !start.Equal(time.Date(2026, 2, 8, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected week start %v", start)
	}
	if end.Sub(start) != 7*24*time.Hour {
		t.Fatalf("unexpected week length %v", end.Sub(start))
	}
}

func TestIsOverdue(t *testing.T) {
	past := task("p", ref.Add(-time.Minute), model.StatusOpen, model.PriorityLow)
	if !IsOverdue(past, ref) {
		t.Fatal("open task due in the past should be overdue")
	}
	past.Status = model.StatusComplete
	if IsOverdue(past, ref) {
		t.Fatal("completed task is never overdue")
	}
	if IsOverdue(task("f", ref.Add(time.Minute), model.StatusOpen, model.PriorityLow), ref) {
		t.Fatal("future task is not overdue")
	}
}

func TestRelativeDue(t *testing.T) {
	cases := []struct {
		offset time.Duration
		want   string
	}{
		{10 * time.Second, "just now"},
		{5 * time.Minute, "in 5 minutes"},
		{-3 * time.Hour, "about 3 hours ago"},
		{2 * 24 * time.Hour, "in 2 days"},
		{-24 * time.Hour, "1 day ago"},
		{60 * 24 * time.Hour, "in 2 months"},
	}
	for _, tc := range cases {
		if got := RelativeDue(ref.Add(tc.offset), ref); got != tc.want {
			t.Fatalf("offset %v: got %q want %q", tc.offset, got, tc.want)
		}
	}
}

package store

import (
	"sort"
	"testing"
	"time"

	"github.com/sandeepkv93/taskflow/internal/model"
)

func viewFixture() []model.Task {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return []model.Task{
		{ID: "1", Title: "Buy Milk", DueDate: base.Add(48 * time.Hour), Status: model.StatusOpen, Priority: model.PriorityLow, CreatedAt: base, UpdatedAt: base.Add(3 * time.Hour)},
		{ID: "2", Title: "File taxes", Description: "before the deadline", DueDate: base.Add(24 * time.Hour), Status: model.StatusComplete, Priority: model.PriorityHigh, CreatedAt: base.Add(time.Hour), UpdatedAt: base.Add(time.Hour)},
		{ID: "3", Title: "Call mom", Description: "ask about MILK recipe", DueDate: base.Add(72 * time.Hour), Status: model.StatusOpen, Priority: model.PriorityMedium, CreatedAt: base.Add(2 * time.Hour), UpdatedAt: base.Add(2 * time.Hour)},
	}
}

func ids(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestDeriveAllIsPermutation(t *testing.T) {
	tasks := viewFixture()
	for _, key := range model.SortKeys {
		got := ids(Derive(tasks, model.ViewParams{Filter: model.FilterAll, Sort: key}))
		sort.Strings(got)
		if !equalStrings(got, []string{"1", "2", "3"}) {
			t.Fatalf("sort %s: expected permutation of all ids, got %v", key, got)
		}
	}
}

func TestDeriveSortOrders(t *testing.T) {
	tasks := viewFixture()
	cases := []struct {
		key  model.SortKey
		want []string
	}{
		{model.SortDueDate, []string{"2", "1", "3"}},
		{model.SortPriority, []string{"2", "3", "1"}},
		{model.SortCreated, []string{"3", "2", "1"}},
		{model.SortUpdated, []string{"1", "3", "2"}},
	}
	for _, tc := range cases {
		got := ids(Derive(tasks, model.ViewParams{Filter: model.FilterAll, Sort: tc.key}))
		if !equalStrings(got, tc.want) {
			t.Fatalf("sort %s = %v, want %v", tc.key, got, tc.want)
		}
	}
}

func TestDerivePrioritySortIsStable(t *testing.T) {
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	tasks := []model.Task{
		{ID: "a", Priority: model.PriorityLow, DueDate: base},
		{ID: "b", Priority: model.PriorityHigh, DueDate: base},
		{ID: "c", Priority: model.PriorityMedium, DueDate: base},
		{ID: "d", Priority: model.PriorityHigh, DueDate: base},
	}
	got := ids(Derive(tasks, model.ViewParams{Sort: model.SortPriority}))
	if !equalStrings(got, []string{"b", "d", "c", "a"}) {
		t.Fatalf("unexpected priority order: %v", got)
	}
	if tasks[0].ID != "a" {
		t.Fatal("Derive mutated its input")
	}
}

func TestDeriveFilterByStatus(t *testing.T) {
	tasks := viewFixture()
	if got := ids(Derive(tasks, model.ViewParams{Filter: model.FilterOpen, Sort: model.SortDueDate})); !equalStrings(got, []string{"1", "3"}) {
		t.Fatalf("open filter = %v", got)
	}
	if got := ids(Derive(tasks, model.ViewParams{Filter: model.FilterComplete, Sort: model.SortDueDate})); !equalStrings(got, []string{"2"}) {
		t.Fatalf("complete filter = %v", got)
	}
}

func TestDeriveSearchIsCaseInsensitive(t *testing.T) {
	tasks := viewFixture()
	got := ids(Derive(tasks, model.ViewParams{Filter: model.FilterAll, Sort: model.SortDueDate, Query: "milk"}))
	if !equalStrings(got, []string{"1", "3"}) {
		t.Fatalf("search milk = %v, want title and description matches", got)
	}

	got = ids(Derive(tasks, model.ViewParams{Filter: model.FilterOpen, Sort: model.SortDueDate, Query: "  DEADLINE "}))
	if len(got) != 0 {
		t.Fatalf("search must combine with status filter, got %v", got)
	}

	got = ids(Derive(tasks, model.ViewParams{Filter: model.FilterAll, Sort: model.SortDueDate, Query: "   "}))
	if len(got) != 3 {
		t.Fatalf("blank query should match everything, got %v", got)
	}
}

package store

import (
	"sort"
	"strings"

	"github.com/sandeepkv93/taskflow/internal/model"
)

// Derive filters tasks by status and search query, then stable-sorts them by
// the sort key. It never mutates its input.
func Derive(tasks []model.Task, p model.ViewParams) []model.Task {
	query := strings.ToLower(strings.TrimSpace(p.Query))
	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		if p.Filter != "" && !p.Filter.Matches(t.Status) {
			continue
		}
		if query != "" && !matchesQuery(t, query) {
			continue
		}
		out = append(out, t)
	}
	if less := lessFor(p.Sort); less != nil {
		sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	}
	return out
}

func matchesQuery(t model.Task, lowered string) bool {
	return strings.Contains(strings.ToLower(t.Title), lowered) ||
		strings.Contains(strings.ToLower(t.Description), lowered)
}

func lessFor(key model.SortKey) func(a, b model.Task) bool {
	switch key {
	case model.SortDueDate:
		return func(a, b model.Task) bool { return a.DueDate.Before(b.DueDate) }
	case model.SortPriority:
		return func(a, b model.Task) bool { return a.Priority.Rank() > b.Priority.Rank() }
	case model.SortCreated:
		return func(a, b model.Task) bool { return a.CreatedAt.After(b.CreatedAt) }
	case model.SortUpdated:
		return func(a, b model.Task) bool { return a.UpdatedAt.After(b.UpdatedAt) }
	default:
		return nil
	}
}

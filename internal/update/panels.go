package update

import (
	"fmt"
	"math"
	"time"

	"github.com/sandeepkv93/taskflow/internal/insights"
	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/views"
)

func (m Model) renderTabBar() string {
	open, done := 0, 0
	for _, t := range m.tasks.Tasks() {
		if t.IsComplete() {
			done++
		} else {
			open++
		}
	}
	keys := map[Tab]string{
		TabHome:    m.Keys.Home,
		TabTasks:   m.Keys.Tasks,
		TabDone:    m.Keys.Done,
		TabSearch:  m.Keys.Search,
		TabProfile: m.Keys.Profile,
	}
	tabs := make([]views.TabData, 0, len(Tabs))
	for _, t := range Tabs {
		data := views.TabData{Key: keys[t], Label: string(t), Active: t == m.CurrentTab}
		switch t {
		case TabTasks:
			data.Badge = open
		case TabDone:
			data.Badge = done
		}
		tabs = append(tabs, data)
	}
	return views.RenderTabBar(tabs)
}

func (m Model) renderHomeView() string {
	now := m.now()
	s := insights.Summarize(m.tasks.Tasks(), now)
	id, _ := m.identity.Current()
	rate := int(math.Round(s.CompletionRate))
	return views.RenderHome(views.HomeData{
		Greeting:     s.Greeting,
		Name:         id.Name,
		Open:         s.Open,
		Completed:    s.Completed,
		Rate:         rate,
		ProgressView: m.rateBar.ViewAs(s.CompletionRate / 100),
		Empty:        s.Empty(),
		Sections: []views.HomeSectionData{
			homeSection("Due Today", s.DueToday, 3, "more tasks due today", now),
			homeSection("Overdue", s.Overdue, 2, "more overdue tasks", now),
			homeSection("High Priority", s.HighPriority, 2, "", now),
			homeSection("Tomorrow", s.DueTomorrow, 3, "", now),
		},
	})
}

func homeSection(title string, tasks []model.Task, limit int, moreLabel string, now time.Time) views.HomeSectionData {
	out := views.HomeSectionData{Title: title, Count: len(tasks)}
	for i, t := range tasks {
		if i == limit {
			break
		}
		out.Lines = append(out.Lines, fmt.Sprintf("[ ] %s  (%s, %s)", t.Title, t.Priority, insights.RelativeDue(t.DueDate, now)))
	}
	if len(tasks) > limit && moreLabel != "" {
		out.More = fmt.Sprintf("+%d %s", len(tasks)-limit, moreLabel)
	}
	return out
}

func (m Model) renderProfileView() string {
	id, _ := m.identity.Current()
	p := insights.Profile(m.tasks.Tasks(), m.now())
	return views.RenderProfile(views.ProfileData{
		Name:                  id.Name,
		Email:                 id.Email,
		Provider:              id.Provider.DisplayName(),
		Rate:                  p.CompletionRate,
		Encouragement:         p.Encouragement,
		Total:                 p.Total,
		Completed:             p.Completed,
		Open:                  p.Open,
		ThisWeek:              p.ThisWeek,
		Level:                 p.Level,
		HighPriorityCompleted: p.HighPriorityCompleted,
	})
}

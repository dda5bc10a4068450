package insights

import (
	"fmt"
	"math"
	"time"

	"github.com/sandeepkv93/taskflow/internal/model"
)

// HomeSummary feeds the Home tab. Task slices keep the order they were given in.
type HomeSummary struct {
	Greeting       string
	Open           int
	Completed      int
	CompletionRate float64
	DueToday       []model.Task
	DueTomorrow    []model.Task
	Overdue        []model.Task
	HighPriority   []model.Task
}

func (h HomeSummary) Empty() bool {
	return h.Open == 0 && h.Completed == 0
}

type ProfileStats struct {
	Total                 int
	Completed             int
	Open                  int
	ThisWeek              int
	CompletionRate        int
	HighPriorityCompleted int
	Level                 string
	Encouragement         string
}

func Greeting(now time.Time) string {
	switch hour := now.Hour(); {
	case hour < 12:
		return "Good morning"
	case hour < 17:
		return "Good afternoon"
	default:
		return "Good evening"
	}
}

// Summarize buckets open tasks relative to now. Dates are compared in now's location.
func Summarize(tasks []model.Task, now time.Time) HomeSummary {
	out := HomeSummary{Greeting: Greeting(now)}
	today := dayStart(now)
	tomorrow := today.AddDate(0, 0, 1)
	for _, t := range tasks {
		if t.IsComplete() {
			out.Completed++
			continue
		}
		out.Open++
		due := dayStart(t.DueDate.In(now.Location()))
		switch {
		case due.Equal(today):
			out.DueToday = append(out.DueToday, t)
		case due.Equal(tomorrow):
			out.DueTomorrow = append(out.DueTomorrow, t)
		}
		if IsOverdue(t, now) {
			out.Overdue = append(out.Overdue, t)
		}
		if t.Priority == model.PriorityHigh {
			out.HighPriority = append(out.HighPriority, t)
		}
	}
	if total := out.Open + out.Completed; total > 0 {
		out.CompletionRate = float64(out.Completed) / float64(total) * 100
	}
	return out
}

func Profile(tasks []model.Task, now time.Time) ProfileStats {
	var out ProfileStats
	weekStart, weekEnd := WeekBounds(now)
	for _, t := range tasks {
		out.Total++
		if t.IsComplete() {
			out.Completed++
			if t.Priority == model.PriorityHigh {
				out.HighPriorityCompleted++
			}
		} else {
			out.Open++
		}
		created := t.CreatedAt.In(now.Location())
		if !created.Before(weekStart) && created.Before(weekEnd) {
			out.ThisWeek++
		}
	}
	if out.Total > 0 {
		out.CompletionRate = int(math.Round(float64(out.Completed) / float64(out.Total) * 100))
	}
	out.Level = Level(out.Completed)
	out.Encouragement = Encouragement(out.CompletionRate)
	return out
}

func Level(completed int) string {
	switch {
	case completed >= 50:
		return "Expert"
	case completed >= 20:
		return "Advanced"
	case completed >= 5:
		return "Beginner"
	default:
		return "Starter"
	}
}

func Encouragement(rate int) string {
	switch {
	case rate >= 80:
		return "Excellent!"
	case rate >= 60:
		return "Good job!"
	default:
		return "Keep going!"
	}
}

// WeekBounds returns [start, end) of the Sunday-start week containing now.
func WeekBounds(now time.Time) (time.Time, time.Time) {
	start := dayStart(now).AddDate(0, 0, -int(now.Weekday()))
	return start, start.AddDate(0, 0, 7)
}

func IsOverdue(t model.Task, now time.Time) bool {
	return !t.IsComplete() && t.DueDate.Before(now)
}

// RelativeDue renders due relative to now, e.g. "in 2 days" or "3 hours ago".
func RelativeDue(due, now time.Time) string {
	d := due.Sub(now)
	past := d < 0
	if past {
		d = -d
	}
	phrase := distance(d)
	if phrase == "" {
		return "just now"
	}
	if past {
		return phrase + " ago"
	}
	return "in " + phrase
}

func distance(d time.Duration) string {
	const day = 24 * time.Hour
	switch {
	case d < 45*time.Second:
		return ""
	case d < 90*time.Second:
		return "1 minute"
	case d < 45*time.Minute:
		return count(int(math.Round(d.Minutes())), "minute")
	case d < 90*time.Minute:
		return "about 1 hour"
	case d < day:
		return "about " + count(int(math.Round(d.Hours())), "hour")
	case d < 30*day:
		return count(int(math.Round(d.Hours()/24)), "day")
	case d < 365*day:
		return count(int(math.Round(d.Hours()/24/30)), "month")
	default:
		return count(int(math.Round(d.Hours()/24/365)), "year")
	}
}

func count(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

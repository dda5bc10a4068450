package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidStatus   = errors.New("model: invalid task status")
	ErrInvalidPriority = errors.New("model: invalid task priority")
	ErrTitleRequired   = errors.New("model: task title is required")
	ErrDueDateRequired = errors.New("model: task due date is required")
	ErrInvalidDueDate  = errors.New("model: invalid due date")
)

const DueDateLayout = "2006-01-02"

type Status string

const (
	StatusOpen     Status = "open"
	StatusComplete Status = "complete"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusComplete:
		return true
	default:
		return false
	}
}

func (s Status) Toggled() Status {
	if s == StatusComplete {
		return StatusOpen
	}
	return StatusComplete
}

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
	}
	return s, nil
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Priorities lists priorities from lowest to highest.
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Rank orders priorities for sorting: high=3, medium=2, low=1, unknown=0.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

func (p Priority) Next() Priority {
	return Priorities[(indexOf(Priorities, p)+1)%len(Priorities)]
}

func (p Priority) Prev() Priority {
	i := indexOf(Priorities, p)
	if i < 0 {
		return PriorityMedium
	}
	return Priorities[(i+len(Priorities)-1)%len(Priorities)]
}

func ParsePriority(raw string) (Priority, error) {
	p := Priority(strings.ToLower(strings.TrimSpace(raw)))
	if !p.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, raw)
	}
	return p, nil
}

type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	Status      Status    `json:"status"`
	Priority    Priority  `json:"priority"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrTitleRequired
	}
	if t.DueDate.IsZero() {
		return ErrDueDateRequired
	}
	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	if t.UpdatedAt.Before(t.CreatedAt) {
		return errors.New("model: task updated_at must not precede created_at")
	}
	return nil
}

func (t Task) IsComplete() bool {
	return t.Status == StatusComplete
}

// Draft carries the caller-supplied fields of a task that does not exist yet.
type Draft struct {
	Title       string
	Description string
	DueDate     time.Time
	Status      Status
	Priority    Priority
}

// Normalize fills the defaults the task form starts with.
func (d Draft) Normalize() Draft {
	d.Title = strings.TrimSpace(d.Title)
	d.Description = strings.TrimSpace(d.Description)
	if d.Status == "" {
		d.Status = StatusOpen
	}
	if d.Priority == "" {
		d.Priority = PriorityMedium
	}
	return d
}

func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return ErrTitleRequired
	}
	if d.DueDate.IsZero() {
		return ErrDueDateRequired
	}
	if d.Status != "" && !d.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, d.Status)
	}
	if d.Priority != "" && !d.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, d.Priority)
	}
	return nil
}

// Patch is a partial update; nil fields are left untouched.
type Patch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Status      *Status
	Priority    *Priority
}

func (p Patch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.DueDate == nil && p.Status == nil && p.Priority == nil
}

func (p Patch) Validate() error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return ErrTitleRequired
	}
	if p.DueDate != nil && p.DueDate.IsZero() {
		return ErrDueDateRequired
	}
	if p.Status != nil && !p.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, *p.Status)
	}
	if p.Priority != nil && !p.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, *p.Priority)
	}
	return nil
}

// Apply merges the patch into t. Identity fields and timestamps are not touched.
func (p Patch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		t.Description = strings.TrimSpace(*p.Description)
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	return t
}

// ParseDueDate turns a YYYY-MM-DD date into the last second of that day in loc.
func ParseDueDate(raw string, loc *time.Location) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, ErrDueDateRequired
	}
	if loc == nil {
		loc = time.Local
	}
	day, err := time.ParseInLocation(DueDateLayout, trimmed, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDueDate, raw)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 23, 59, 59, 0, loc), nil
}

// DefaultDueDate is where a new task's due date starts: the end of the day
// after now, in now's location.
func DefaultDueDate(now time.Time) time.Time {
	y, m, d := now.AddDate(0, 0, 1).Date()
	return time.Date(y, m, d, 23, 59, 59, 0, now.Location())
}

package model

import (
	"errors"
	"testing"
	"time"
)

func TestTaskValidateSuccess(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        "task-1",
		Title:     "Implement model validation",
		DueDate:   now.Add(24 * time.Hour),
		Status:    StatusOpen,
		Priority:  PriorityHigh,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateUpdatedBeforeCreated(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        "task-1",
		Title:     "Clock skew",
		DueDate:   now,
		Status:    StatusOpen,
		Priority:  PriorityLow,
		CreatedAt: now,
		UpdatedAt: now.Add(-time.Second),
	}
	if err := task.Validate(); err == nil {
		t.Fatal("expected error for updated_at before created_at")
	}
}

func TestTaskValidateInvalidEnums(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task := Task{
		ID:        "task-1",
		Title:     "Bad status",
		DueDate:   now,
		Status:    Status("archived"),
		Priority:  PriorityLow,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := task.Validate()
	if err == nil || !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got: %v", err)
	}

	task.Status = StatusOpen
	task.Priority = Priority("urgent")
	err = task.Validate()
	if err == nil || !errors.Is(err, ErrInvalidPriority) {
		t.Fatalf("expected ErrInvalidPriority, got: %v", err)
	}
}

func TestPriorityRank(t *testing.T) {
	if !(PriorityHigh.Rank() > PriorityMedium.Rank() && PriorityMedium.Rank() > PriorityLow.Rank()) {
		t.Fatalf("unexpected rank order: high=%d medium=%d low=%d", PriorityHigh.Rank(), PriorityMedium.Rank(), PriorityLow.Rank())
	}
	if Priority("bogus").Rank() != 0 {
		t.Fatal("expected unknown priority to rank 0")
	}
}

func TestDraftNormalizeAndValidate(t *testing.T) {
	d := Draft{Title: "  Buy milk  ", DueDate: time.Now()}.Normalize()
	if d.Title != "Buy milk" || d.Status != StatusOpen || d.Priority != PriorityMedium {
		t.Fatalf("unexpected normalized draft: %+v", d)
	}
	if err := d.Validate(); err != nil {
		t.Fatalf("expected valid draft, got %v", err)
	}

	if err := (Draft{Title: "   ", DueDate: time.Now()}).Validate(); !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired, got %v", err)
	}
	if err := (Draft{Title: "x"}).Validate(); !errors.Is(err, ErrDueDateRequired) {
		t.Fatalf("expected ErrDueDateRequired, got %v", err)
	}
}

func TestPatchApplyLeavesUnsetFields(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	base := Task{ID: "t1", Title: "Old", Description: "keep", DueDate: now, Status: StatusOpen, Priority: PriorityLow, CreatedAt: now, UpdatedAt: now}
	title := "New"
	high := PriorityHigh
	got := Patch{Title: &title, Priority: &high}.Apply(base)
	if got.Title != "New" || got.Priority != PriorityHigh {
		t.Fatalf("patch not applied: %+v", got)
	}
	if got.Description != "keep" || got.ID != "t1" || !got.CreatedAt.Equal(now) {
		t.Fatalf("patch touched unrelated fields: %+v", got)
	}

	empty := ""
	if err := (Patch{Title: &empty}).Validate(); !errors.Is(err, ErrTitleRequired) {
		t.Fatalf("expected ErrTitleRequired for blank title patch, got %v", err)
	}
}

func TestParseDueDate(t *testing.T) {
	loc := time.FixedZone("test", 2*60*60)
	got, err := ParseDueDate("2026-03-14", loc)
	if err != nil {
		t.Fatalf("parse due date: %v", err)
	}
	want := time.Date(2026, 3, 14, 23, 59, 59, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("due date = %v, want %v", got, want)
	}

	if _, err := ParseDueDate("", loc); !errors.Is(err, ErrDueDateRequired) {
		t.Fatalf("expected ErrDueDateRequired, got %v", err)
	}
	if _, err := ParseDueDate("14/03/2026", loc); !errors.Is(err, ErrInvalidDueDate) {
		t.Fatalf("expected ErrInvalidDueDate, got %v", err)
	}
}

func TestParseViewEnums(t *testing.T) {
	if f, err := ParseFilter("OPEN"); err != nil || f != FilterOpen {
		t.Fatalf("ParseFilter(OPEN) = %q, %v", f, err)
	}
	if _, err := ParseFilter("done"); !errors.Is(err, ErrInvalidFilter) {
		t.Fatalf("expected ErrInvalidFilter, got %v", err)
	}
	if k, err := ParseSortKey("duedate"); err != nil || k != SortDueDate {
		t.Fatalf("ParseSortKey(duedate) = %q, %v", k, err)
	}
	if k, err := ParseSortKey("due"); err != nil || k != SortDueDate {
		t.Fatalf("ParseSortKey(due) = %q, %v", k, err)
	}
	if FilterComplete.Next() != FilterAll || SortUpdated.Next() != SortDueDate {
		t.Fatal("expected Next to wrap around")
	}
	if _, err := ParseProvider("myspace"); !errors.Is(err, ErrInvalidProvider) {
		t.Fatalf("expected ErrInvalidProvider, got %v", err)
	}
}

func TestPriorityCycling(t *testing.T) {
	if PriorityLow.Next() != PriorityMedium || PriorityHigh.Next() != PriorityLow {
		t.Fatal("unexpected Next order")
	}
	if PriorityLow.Prev() != PriorityHigh || PriorityHigh.Prev() != PriorityMedium {
		t.Fatal("unexpected Prev order")
	}
	if Priority("").Prev() != PriorityMedium {
		t.Fatal("unknown priority should fall back to medium")
	}
}

func TestParseStatus(t *testing.T) {
	if s, err := ParseStatus(" Complete "); err != nil || s != StatusComplete {
		t.Fatalf("expected complete, got %q err=%v", s, err)
	}
	if _, err := ParseStatus("archived"); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected invalid status error, got %v", err)
	}
}

func TestDefaultDueDate(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	now := time.Date(2026, 12, 31, 22, 15, 0, 0, loc)
	got := DefaultDueDate(now)
	want := time.Date(2027, 1, 1, 23, 59, 59, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
	parsed, err := ParseDueDate(got.Format(DueDateLayout), loc)
	if err != nil || !parsed.Equal(got) {
		t.Fatalf("expected default to match a typed date, got %s err=%v", parsed, err)
	}
}

package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidFilter  = errors.New("model: invalid status filter")
	ErrInvalidSortKey = errors.New("model: invalid sort key")
)

type Filter string

const (
	FilterAll      Filter = "all"
	FilterOpen     Filter = "open"
	FilterComplete Filter = "complete"
)

var Filters = []Filter{FilterAll, FilterOpen, FilterComplete}

func (f Filter) IsValid() bool {
	switch f {
	case FilterAll, FilterOpen, FilterComplete:
		return true
	default:
		return false
	}
}

func (f Filter) Matches(s Status) bool {
	if f == FilterAll {
		return true
	}
	return Status(f) == s
}

func (f Filter) Next() Filter {
	return Filters[(indexOf(Filters, f)+1)%len(Filters)]
}

func ParseFilter(raw string) (Filter, error) {
	f := Filter(strings.ToLower(strings.TrimSpace(raw)))
	if !f.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilter, raw)
	}
	return f, nil
}

type SortKey string

const (
	SortDueDate  SortKey = "dueDate"
	SortPriority SortKey = "priority"
	SortCreated  SortKey = "created"
	SortUpdated  SortKey = "updated"
)

var SortKeys = []SortKey{SortDueDate, SortPriority, SortCreated, SortUpdated}

func (k SortKey) IsValid() bool {
	switch k {
	case SortDueDate, SortPriority, SortCreated, SortUpdated:
		return true
	default:
		return false
	}
}

func (k SortKey) Next() SortKey {
	return SortKeys[(indexOf(SortKeys, k)+1)%len(SortKeys)]
}

func (k SortKey) Label() string {
	switch k {
	case SortDueDate:
		return "due date"
	case SortPriority:
		return "priority"
	case SortCreated:
		return "created"
	case SortUpdated:
		return "updated"
	default:
		return string(k)
	}
}

// ParseSortKey accepts the canonical keys case-insensitively, plus "due".
func ParseSortKey(raw string) (SortKey, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.EqualFold(trimmed, "due") {
		return SortDueDate, nil
	}
	for _, k := range SortKeys {
		if strings.EqualFold(trimmed, string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidSortKey, raw)
}

// ViewParams are the transient settings that shape the derived task list.
type ViewParams struct {
	Filter Filter
	Sort   SortKey
	Query  string
}

func DefaultViewParams() ViewParams {
	return ViewParams{Filter: FilterAll, Sort: SortDueDate}
}

func indexOf[T comparable](items []T, target T) int {
	for i, item := range items {
		if item == target {
			return i
		}
	}
	return -1
}

package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/taskflow/internal/model"
)

type Type string

const (
	TypeAdd    Type = "add"
	TypeFilter Type = "filter"
	TypeSort   Type = "sort"
	TypeSearch Type = "search"
	TypeDone   Type = "done"
	TypeClear  Type = "clear"
	TypeLogout Type = "logout"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
	ErrCodeNotFound        ErrorCode = "not_found"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func invalid(format string, args ...any) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

type AddArgs struct {
	Title string
	// Due is zero when the command did not name a date.
	Due      time.Time
	Priority model.Priority
}

type FilterArgs struct {
	Filter model.Filter
}

type SortArgs struct {
	Key model.SortKey
}

type SearchArgs struct {
	Query string
}

type DoneArgs struct {
	IDPrefix string
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Filter *FilterArgs
	Sort   *SortArgs
	Search *SearchArgs
	Done   *DoneArgs
}

// Parse reads a palette command. Due dates are interpreted in loc.
func Parse(input string, loc *time.Location) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if loc == nil {
		loc = time.Local
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args, loc)
	case TypeFilter:
		return parseFilter(input, args)
	case TypeSort:
		return parseSort(input, args)
	case TypeSearch:
		rest := strings.TrimSpace(raw[len(parts[0]):])
		return Command{Type: TypeSearch, Raw: input, Search: &SearchArgs{Query: rest}}, nil
	case TypeDone:
		if len(args) != 1 {
			return Command{}, invalid("done requires one task id")
		}
		return Command{Type: TypeDone, Raw: input, Done: &DoneArgs{IDPrefix: args[0]}}, nil
	case TypeClear, TypeLogout:
		if len(args) != 0 {
			return Command{}, invalid("%s takes no arguments", head)
		}
		return Command{Type: Type(head), Raw: input}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string, loc *time.Location) (Command, error) {
	out := AddArgs{}
	words := make([]string, 0, len(args))
	for _, arg := range args {
		lower := strings.ToLower(arg)
		switch {
		case strings.HasPrefix(lower, "due:"):
			due, err := model.ParseDueDate(arg[len("due:"):], loc)
			if err != nil {
				return Command{}, invalid("due date must look like %s", model.DueDateLayout)
			}
			out.Due = due
		case strings.HasPrefix(lower, "p:"), strings.HasPrefix(lower, "priority:"):
			p, err := model.ParsePriority(arg[strings.Index(arg, ":")+1:])
			if err != nil {
				return Command{}, invalid("priority must be low, medium or high")
			}
			out.Priority = p
		default:
			words = append(words, arg)
		}
	}
	out.Title = strings.TrimSpace(strings.Join(words, " "))
	if out.Title == "" {
		return Command{}, invalid("add requires a title")
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &out}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("filter requires one of all, open, complete")
	}
	f, err := model.ParseFilter(args[0])
	if err != nil {
		return Command{}, invalid("filter requires one of all, open, complete")
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Filter: f}}, nil
}

func parseSort(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("sort requires one of dueDate, priority, created, updated")
	}
	k, err := model.ParseSortKey(args[0])
	if err != nil {
		return Command{}, invalid("sort requires one of dueDate, priority, created, updated")
	}
	return Command{Type: TypeSort, Raw: raw, Sort: &SortArgs{Key: k}}, nil
}

// ResolveID finds the task whose id equals prefix, or else the single task
// whose id starts with it.
func ResolveID(prefix string, tasks []model.Task) (string, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return "", invalid("task id is empty")
	}
	for _, t := range tasks {
		if t.ID == prefix {
			return t.ID, nil
		}
	}
	match := ""
	for _, t := range tasks {
		if strings.HasPrefix(t.ID, prefix) {
			if match != "" {
				return "", invalid("task id %q is ambiguous", prefix)
			}
			match = t.ID
		}
	}
	if match == "" {
		return "", &CommandError{Code: ErrCodeNotFound, Message: fmt.Sprintf("no task with id %q", prefix)}
	}
	return match, nil
}

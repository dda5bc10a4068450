package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sandeepkv93/taskflow/internal/metrics"
	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/notify"
	"github.com/sandeepkv93/taskflow/internal/storage"
)

var (
	ErrNilKV        = errors.New("store: nil key-value storage")
	ErrTaskNotFound = errors.New("store: task not found")
)

// TaskStore owns the task set and the view parameters. It is not safe for
// concurrent use; the UI event loop is its single writer.
type TaskStore struct {
	kv     storage.KV
	opts   Options
	tasks  []model.Task
	params model.ViewParams

	rev   uint64
	cache derivedCache
}

type derivedCache struct {
	valid  bool
	rev    uint64
	params model.ViewParams
	tasks  []model.Task
}

func NewTaskStore(ctx context.Context, kv storage.KV, opts Options) (*TaskStore, error) {
	if kv == nil {
		return nil, ErrNilKV
	}
	s := &TaskStore{
		kv:     kv,
		opts:   opts.withDefaults(),
		params: model.DefaultViewParams(),
	}
	s.tasks = s.load(ctx)
	return s, nil
}

func (s *TaskStore) load(ctx context.Context) []model.Task {
	raw, ok, err := s.kv.Get(ctx, storage.KeyTasks)
	if err != nil {
		s.opts.Logger.Error("read persisted tasks", "key", storage.KeyTasks, "err", err)
		return []model.Task{}
	}
	if !ok {
		return []model.Task{}
	}
	var decoded []model.Task
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		s.opts.Logger.Warn("discarding corrupt task collection", "key", storage.KeyTasks, "err", err)
		s.opts.Metrics.RecordLoadRecovery(storage.KeyTasks)
		return []model.Task{}
	}
	out := make([]model.Task, 0, len(decoded))
	for _, t := range decoded {
		if err := t.Validate(); err != nil {
			s.opts.Logger.Warn("skipping invalid persisted task", "id", t.ID, "err", err)
			continue
		}
		out = append(out, t)
	}
	return out
}

func (s *TaskStore) persist(ctx context.Context) {
	payload, err := json.Marshal(s.tasks)
	if err == nil {
		err = s.kv.Set(ctx, storage.KeyTasks, string(payload))
	}
	if err != nil {
		s.opts.Logger.Error("persist tasks", "key", storage.KeyTasks, "count", len(s.tasks), "err", err)
		s.opts.Metrics.RecordPersistFailure(storage.KeyTasks)
	}
}

// commit bumps the revision and writes the task set through to storage.
func (s *TaskStore) commit(ctx context.Context) {
	s.rev++
	s.persist(ctx)
}

func (s *TaskStore) now() time.Time {
	return s.opts.Now().UTC()
}

// touch returns a fresh updatedAt that never precedes prev.
func (s *TaskStore) touch(prev time.Time) time.Time {
	now := s.now()
	if now.Before(prev) {
		return prev
	}
	return now
}

func (s *TaskStore) indexOf(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *TaskStore) notify(title, description string, severity notify.Severity) {
	s.opts.Notifier.Notify(notify.Notification{Title: title, Description: description, Severity: severity, At: s.now()})
}

// AddTask creates a task from d and prepends it, so the newest task comes first.
func (s *TaskStore) AddTask(ctx context.Context, d model.Draft) (model.Task, error) {
	d = d.Normalize()
	if err := d.Validate(); err != nil {
		return model.Task{}, err
	}
	id, err := s.opts.NewID()
	if err != nil {
		return model.Task{}, fmt.Errorf("store: generate task id: %w", err)
	}
	now := s.now()
	task := model.Task{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		DueDate:     d.DueDate,
		Status:      d.Status,
		Priority:    d.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.tasks = append([]model.Task{task}, s.tasks...)
	s.commit(ctx)
	s.opts.Metrics.RecordTaskMutation(metrics.OpCreate)
	s.notify("Task created", "Your new task has been added successfully.", notify.SeveritySuccess)
	return task, nil
}

func (s *TaskStore) UpdateTask(ctx context.Context, id string, p model.Patch) (model.Task, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	if err := p.Validate(); err != nil {
		return model.Task{}, err
	}
	prev := s.tasks[idx]
	next := p.Apply(prev)
	next.UpdatedAt = s.touch(prev.UpdatedAt)
	s.tasks[idx] = next
	s.commit(ctx)
	s.opts.Metrics.RecordTaskMutation(metrics.OpUpdate)
	s.notify("Task updated", "Your task has been updated successfully.", notify.SeveritySuccess)
	return next, nil
}

func (s *TaskStore) DeleteTask(ctx context.Context, id string) error {
	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	s.tasks = append(s.tasks[:idx:idx], s.tasks[idx+1:]...)
	s.commit(ctx)
	s.opts.Metrics.RecordTaskMutation(metrics.OpDelete)
	s.notify("Task deleted", "Your task has been removed.", notify.SeverityDestructive)
	return nil
}

func (s *TaskStore) ToggleComplete(ctx context.Context, id string) (model.Task, error) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	t := s.tasks[idx]
	t.Status = t.Status.Toggled()
	t.UpdatedAt = s.touch(t.UpdatedAt)
	s.tasks[idx] = t
	s.commit(ctx)
	s.opts.Metrics.RecordTaskMutation(metrics.OpToggle)
	return t, nil
}

// ClearCompleted drops every complete task in one step and reports how many went.
func (s *TaskStore) ClearCompleted(ctx context.Context) int {
	kept := make([]model.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.IsComplete() {
			kept = append(kept, t)
		}
	}
	removed := len(s.tasks) - len(kept)
	s.tasks = kept
	s.commit(ctx)
	s.opts.Metrics.RecordTasksCleared(removed)
	s.notify("Completed tasks cleared", fmt.Sprintf("Removed %d completed %s.", removed, plural(removed, "task")), notify.SeverityInfo)
	return removed
}

// Purge removes every task. Sign-out uses it to isolate accounts.
func (s *TaskStore) Purge(ctx context.Context) {
	s.tasks = []model.Task{}
	s.commit(ctx)
	s.opts.Metrics.RecordTaskMutation(metrics.OpPurge)
}

func (s *TaskStore) SetFilter(f model.Filter) error {
	if !f.IsValid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidFilter, f)
	}
	s.params.Filter = f
	return nil
}

func (s *TaskStore) SetSort(k model.SortKey) error {
	if !k.IsValid() {
		return fmt.Errorf("%w: %q", model.ErrInvalidSortKey, k)
	}
	s.params.Sort = k
	return nil
}

func (s *TaskStore) SetSearchQuery(q string) {
	s.params.Query = q
}

func (s *TaskStore) Params() model.ViewParams {
	return s.params
}

// Tasks returns a copy of the task set in insertion order (newest first).
func (s *TaskStore) Tasks() []model.Task {
	out := make([]model.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *TaskStore) Len() int {
	return len(s.tasks)
}

func (s *TaskStore) Get(id string) (model.Task, bool) {
	idx := s.indexOf(id)
	if idx < 0 {
		return model.Task{}, false
	}
	return s.tasks[idx], true
}

// Filtered is the derived view for the current parameters. The last result is
// memoized by revision and parameters; callers receive their own copy.
func (s *TaskStore) Filtered() []model.Task {
	if !s.cache.valid || s.cache.rev != s.rev || s.cache.params != s.params {
		s.cache = derivedCache{
			valid:  true,
			rev:    s.rev,
			params: s.params,
			tasks:  Derive(s.tasks, s.params),
		}
	}
	out := make([]model.Task, len(s.cache.tasks))
	copy(out, s.cache.tasks)
	return out
}

func plural(n int, noun string) string {
	if n == 1 {
		return noun
	}
	return noun + "s"
}

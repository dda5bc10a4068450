package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/notify"
	"github.com/sandeepkv93/taskflow/internal/storage"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type sequentialIDs struct {
	n int
}

func (s *sequentialIDs) Next() (string, error) {
	s.n++
	return fmt.Sprintf("task-%03d", s.n), nil
}

type failingKV struct {
	*storage.MemoryKV
	failSet bool
}

func (f *failingKV) Set(ctx context.Context, key, value string) error {
	if f.failSet {
		return errors.New("disk full")
	}
	return f.MemoryKV.Set(ctx, key, value)
}

type harness struct {
	clock *fakeClock
	feed  *notify.Feed
	opts  Options
}

func newHarness() *harness {
	clock := &fakeClock{now: time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)}
	feed := notify.NewFeed(50)
	ids := &sequentialIDs{}
	return &harness{
		clock: clock,
		feed:  feed,
		opts: Options{
			Notifier: feed,
			Now:      clock.Now,
			NewID:    ids.Next,
			Sleep:    func(time.Duration) {},
		},
	}
}

func newTaskStore(t *testing.T, kv storage.KV, h *harness) *TaskStore {
	t.Helper()
	s, err := NewTaskStore(context.Background(), kv, h.opts)
	if err != nil {
		t.Fatalf("new task store: %v", err)
	}
	return s
}

func mustAdd(t *testing.T, s *TaskStore, d model.Draft) model.Task {
	t.Helper()
	task, err := s.AddTask(context.Background(), d)
	if err != nil {
		t.Fatalf("add task %q: %v", d.Title, err)
	}
	return task
}

func titles(tasks []model.Task) []string {
	out := make([]string, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.Title)
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/sandeepkv93/taskflow/internal/metrics"
	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/notify"
	"github.com/sandeepkv93/taskflow/internal/storage"
)

const SnapshotVersion = 1

// Snapshot is the portable export of one account's data.
type Snapshot struct {
	Version    int             `json:"version"`
	ExportedAt time.Time       `json:"exportedAt"`
	Identity   *model.Identity `json:"identity,omitempty"`
	Tasks      []model.Task    `json:"tasks"`
}

type ImportResult struct {
	Added   int
	Skipped int
}

// Export writes the current task set, and the identity when one is given, to path.
func (s *TaskStore) Export(path string, id *model.Identity) (Snapshot, error) {
	snap := Snapshot{
		Version:    SnapshotVersion,
		ExportedAt: s.now(),
		Identity:   id,
		Tasks:      s.Tasks(),
	}
	if err := storage.WriteSnapshot(path, snap); err != nil {
		return Snapshot{}, err
	}
	s.opts.Logger.Info("exported tasks", "path", path, "count", len(snap.Tasks))
	return snap, nil
}

// Import reads a snapshot from path and appends its tasks. Invalid tasks and
// tasks whose id already exists are skipped.
func (s *TaskStore) Import(ctx context.Context, path string) (ImportResult, error) {
	var snap Snapshot
	if err := storage.ReadSnapshot(path, &snap); err != nil {
		return ImportResult{}, err
	}
	if snap.Version > SnapshotVersion {
		return ImportResult{}, fmt.Errorf("store: snapshot version %d is newer than supported %d", snap.Version, SnapshotVersion)
	}

	var res ImportResult
	for _, t := range snap.Tasks {
		if err := t.Validate(); err != nil {
			s.opts.Logger.Warn("skipping invalid imported task", "id", t.ID, "err", err)
			res.Skipped++
			continue
		}
		if s.indexOf(t.ID) >= 0 {
			res.Skipped++
			continue
		}
		s.tasks = append(s.tasks, t)
		res.Added++
	}
	if res.Added > 0 {
		s.commit(ctx)
		s.opts.Metrics.RecordTaskMutation(metrics.OpImport)
	}
	s.notify("Tasks imported", fmt.Sprintf("Imported %d %s.", res.Added, plural(res.Added, "task")), notify.SeverityInfo)
	return res, nil
}

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrEmptySnapshotPath = errors.New("storage: empty snapshot path")

// WriteSnapshot encodes v as indented JSON and replaces path atomically
// through a sibling temp file.
func WriteSnapshot(path string, v any) error {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ErrEmptySnapshotPath
	}
	if dir := filepath.Dir(trimmed); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot dir: %w", err)
		}
	}
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	tmp := trimmed + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, trimmed); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

// ReadSnapshot decodes the JSON document at path into v.
func ReadSnapshot(path string, v any) error {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return ErrEmptySnapshotPath
	}
	raw, err := os.ReadFile(trimmed)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode snapshot %s: %w", trimmed, err)
	}
	return nil
}

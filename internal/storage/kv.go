package storage

import (
	"context"
	"errors"
)

var ErrEmptyKey = errors.New("storage: empty key")

// Keys under which the stores persist their state.
const (
	KeyIdentity = "todo-user"
	KeyTasks    = "todo-tasks"
)

// KV is the on-device key-value facility the stores persist into.
// Get reports ok=false for an absent key.
type KV interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

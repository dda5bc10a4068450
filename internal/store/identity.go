package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/notify"
	"github.com/sandeepkv93/taskflow/internal/storage"
)

var (
	ErrUnknownProvider  = errors.New("store: unknown sign-in provider")
	ErrSignInInProgress = errors.New("store: sign-in already in progress")
	ErrNoSignInPending  = errors.New("store: no sign-in pending")
	ErrPurgerRequired   = errors.New("store: task purger required when sign-out purges tasks")
)

const DefaultSignInLatency = 1500 * time.Millisecond

// TaskPurger drops every task. *TaskStore satisfies it.
type TaskPurger interface {
	Purge(ctx context.Context)
}

type IdentityConfig struct {
	// SignInDelay is the simulated provider round-trip.
	SignInDelay time.Duration
	// PurgeTasksOnSignOut deletes all tasks when the user signs out.
	PurgeTasksOnSignOut bool
}

func DefaultIdentityConfig() IdentityConfig {
	return IdentityConfig{
		SignInDelay:         DefaultSignInLatency,
		PurgeTasksOnSignOut: true,
	}
}

// IdentityStore holds at most one signed-in identity.
type IdentityStore struct {
	kv      storage.KV
	purger  TaskPurger
	cfg     IdentityConfig
	opts    Options
	current *model.Identity
	loading bool
	pending model.Provider
}

func NewIdentityStore(ctx context.Context, kv storage.KV, purger TaskPurger, cfg IdentityConfig, opts Options) (*IdentityStore, error) {
	if kv == nil {
		return nil, ErrNilKV
	}
	if cfg.PurgeTasksOnSignOut && purger == nil {
		return nil, ErrPurgerRequired
	}
	if cfg.SignInDelay < 0 {
		cfg.SignInDelay = 0
	}
	s := &IdentityStore{
		kv:     kv,
		purger: purger,
		cfg:    cfg,
		opts:   opts.withDefaults(),
	}
	s.current = s.load(ctx)
	return s, nil
}

func (s *IdentityStore) load(ctx context.Context) *model.Identity {
	raw, ok, err := s.kv.Get(ctx, storage.KeyIdentity)
	if err != nil {
		s.opts.Logger.Error("read persisted identity", "key", storage.KeyIdentity, "err", err)
		return nil
	}
	if !ok {
		return nil
	}
	var id model.Identity
	if err = json.Unmarshal([]byte(raw), &id); err == nil {
		err = id.Validate()
	}
	if err != nil {
		s.opts.Logger.Warn("discarding corrupt identity", "key", storage.KeyIdentity, "err", err)
		s.opts.Metrics.RecordLoadRecovery(storage.KeyIdentity)
		if rmErr := s.kv.Remove(ctx, storage.KeyIdentity); rmErr != nil {
			s.opts.Logger.Error("remove corrupt identity", "key", storage.KeyIdentity, "err", rmErr)
		}
		return nil
	}
	return &id
}

func (s *IdentityStore) Current() (model.Identity, bool) {
	if s.current == nil {
		return model.Identity{}, false
	}
	return *s.current, true
}

func (s *IdentityStore) SignedIn() bool {
	return s.current != nil
}

// Loading is true between BeginSignIn and CompleteSignIn.
func (s *IdentityStore) Loading() bool {
	return s.loading
}

// Pending is the provider of the sign-in in flight, if any.
func (s *IdentityStore) Pending() model.Provider {
	return s.pending
}

func (s *IdentityStore) SignInDelay() time.Duration {
	return s.cfg.SignInDelay
}

// BeginSignIn marks a sign-in with provider as in flight. The caller waits
// SignInDelay and then calls CompleteSignIn.
func (s *IdentityStore) BeginSignIn(p model.Provider) error {
	if s.loading {
		return ErrSignInInProgress
	}
	if _, ok := cannedIdentity(p); !ok {
		s.notify("Sign in failed", "Please try again later.", notify.SeverityDestructive)
		return fmt.Errorf("%w: %q", ErrUnknownProvider, p)
	}
	s.loading = true
	s.pending = p
	return nil
}

// CompleteSignIn installs the identity for the pending provider, replacing
// any prior identity, and persists it. The loading flag is always cleared.
func (s *IdentityStore) CompleteSignIn(ctx context.Context) (model.Identity, error) {
	defer func() {
		s.loading = false
		s.pending = ""
	}()
	if !s.loading {
		return model.Identity{}, ErrNoSignInPending
	}
	id, ok := cannedIdentity(s.pending)
	if !ok {
		s.notify("Sign in failed", "Please try again later.", notify.SeverityDestructive)
		return model.Identity{}, fmt.Errorf("%w: %q", ErrUnknownProvider, s.pending)
	}
	s.current = &id
	s.persist(ctx)
	s.opts.Metrics.RecordSignIn(string(id.Provider))
	s.notify("Welcome back!", fmt.Sprintf("Successfully signed in with %s.", id.Provider), notify.SeveritySuccess)
	return id, nil
}

// SignIn runs a whole sign-in, blocking for the simulated round-trip.
func (s *IdentityStore) SignIn(ctx context.Context, p model.Provider) (model.Identity, error) {
	if err := s.BeginSignIn(p); err != nil {
		return model.Identity{}, err
	}
	if s.cfg.SignInDelay > 0 {
		s.opts.Sleep(s.cfg.SignInDelay)
	}
	return s.CompleteSignIn(ctx)
}

// SignOut forgets the identity and, when configured, deletes every task.
func (s *IdentityStore) SignOut(ctx context.Context) {
	s.current = nil
	s.loading = false
	s.pending = ""
	if err := s.kv.Remove(ctx, storage.KeyIdentity); err != nil {
		s.opts.Logger.Error("remove identity", "key", storage.KeyIdentity, "err", err)
		s.opts.Metrics.RecordPersistFailure(storage.KeyIdentity)
	}
	if s.cfg.PurgeTasksOnSignOut && s.purger != nil {
		s.purger.Purge(ctx)
	}
	s.opts.Metrics.RecordSignOut()
	s.notify("Signed out", "You have been successfully signed out.", notify.SeverityInfo)
}

func (s *IdentityStore) persist(ctx context.Context) {
	payload, err := json.Marshal(s.current)
	if err == nil {
		err = s.kv.Set(ctx, storage.KeyIdentity, string(payload))
	}
	if err != nil {
		s.opts.Logger.Error("persist identity", "key", storage.KeyIdentity, "err", err)
		s.opts.Metrics.RecordPersistFailure(storage.KeyIdentity)
	}
}

func (s *IdentityStore) notify(title, description string, severity notify.Severity) {
	s.opts.Notifier.Notify(notify.Notification{Title: title, Description: description, Severity: severity, At: s.opts.Now().UTC()})
}

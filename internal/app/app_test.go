package app

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/taskflow/internal/model"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("TASKFLOW_LOG_PATH", filepath.Join(home, "taskflow.log"))
	return home
}

func TestNewEphemeral(t *testing.T) {
	home := isolate(t)
	ctx := context.Background()
	a, err := New(ctx, Options{Ephemeral: true})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	t.Cleanup(func() { _ = a.Close(ctx) })

	if a.Tasks.Len() != 0 || a.Identity.SignedIn() {
		t.Fatal("expected fresh state")
	}
	if _, err := os.Stat(filepath.Join(home, ".taskflow", "taskflow.db")); !os.IsNotExist(err) {
		t.Fatalf("ephemeral run should not create a database, stat err=%v", err)
	}
}

func TestStatePersistsAcrossRuns(t *testing.T) {
	home := isolate(t)
	t.Setenv("TASKFLOW_SIGN_IN_DELAY", "0s")
	ctx := context.Background()
	db := filepath.Join(home, "data", "tasks.db")

	a, err := New(ctx, Options{DBPath: db})
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	if _, err := a.Identity.SignIn(ctx, model.ProviderApple); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	due := time.Now().Add(24 * time.Hour)
	if _, err := a.Tasks.AddTask(ctx, model.Draft{Title: "persist me", DueDate: due}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := a.Close(ctx); err != nil {
		t.Fatalf("close: %v", err)
	}

	b, err := New(ctx, Options{DBPath: db})
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	t.Cleanup(func() { _ = b.Close(ctx) })
	id, ok := b.Identity.Current()
	if !ok || id.Provider != model.ProviderApple {
		t.Fatalf("expected apple identity restored, got %+v", id)
	}
	tasks := b.Tasks.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "persist me" {
		t.Fatalf("expected task restored, got %+v", tasks)
	}
}

func TestConfigDefaultSortApplied(t *testing.T) {
	home := isolate(t)
	ctx := context.Background()
	cfgPath := filepath.Join(home, "custom.yaml")
	if err := os.WriteFile(cfgPath, []byte("default_sort: priority\nsign_in_delay: 0s\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	a, err := New(ctx, Options{ConfigPath: cfgPath, Ephemeral: true})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	t.Cleanup(func() { _ = a.Close(ctx) })
	if got := a.Tasks.Params().Sort; got != model.SortPriority {
		t.Fatalf("expected priority sort, got %q", got)
	}
	if a.Identity.SignInDelay() != 0 {
		t.Fatalf("expected zero delay, got %s", a.Identity.SignInDelay())
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	isolate(t)
	t.Setenv("TASKFLOW_LOG_LEVEL", "chatty")
	if _, err := New(context.Background(), Options{Ephemeral: true}); err == nil {
		t.Fatal("expected invalid log level to fail")
	}
}

func TestMetricsServer(t *testing.T) {
	isolate(t)
	ctx := context.Background()
	a, err := New(ctx, Options{Ephemeral: true, MetricsAddr: "127.0.0.1:0"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	t.Cleanup(func() { _ = a.Close(ctx) })
	if err := a.StartMetrics(); err != nil {
		t.Fatalf("start metrics: %v", err)
	}
	if _, err := a.Tasks.AddTask(ctx, model.Draft{Title: "count me", DueDate: time.Now().Add(time.Hour)}); err != nil {
		t.Fatalf("add: %v", err)
	}

	resp, err := http.Get("http://" + a.MetricsAddr() + "/metrics")
	if err != nil {
		t.Fatalf("get metrics: %v", err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status %d", resp.StatusCode)
	}
	if !strings.Contains(string(body), `taskflow_task_mutations_total{op="create"} 1`) {
		t.Fatalf("expected create counter in metrics:\n%s", body)
	}
}

func TestStartMetricsWithoutAddrIsNoop(t *testing.T) {
	isolate(t)
	ctx := context.Background()
	a, err := New(ctx, Options{Ephemeral: true})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	t.Cleanup(func() { _ = a.Close(ctx) })
	if err := a.StartMetrics(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if a.MetricsAddr() != "" {
		t.Fatalf("expected no metrics address, got %q", a.MetricsAddr())
	}
}

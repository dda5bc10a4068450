package notify

import (
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

type Severity string

const (
	SeverityInfo        Severity = "info"
	SeveritySuccess     Severity = "success"
	SeverityDestructive Severity = "destructive"
)

type Notification struct {
	Title       string
	Description string
	Severity    Severity
	At          time.Time
}

// Notifier is a fire-and-forget surface for short user-facing confirmations.
type Notifier interface {
	Notify(Notification)
}

type Noop struct{}

func (Noop) Notify(Notification) {}

// Multi fans a notification out to every non-nil notifier.
type Multi []Notifier

func (m Multi) Notify(n Notification) {
	for _, target := range m {
		if target != nil {
			target.Notify(n)
		}
	}
}

// Log writes notifications to a structured logger.
type Log struct {
	Logger *slog.Logger
}

func (l Log) Notify(n Notification) {
	if l.Logger == nil {
		return
	}
	l.Logger.Info("notification", "title", n.Title, "description", n.Description, "severity", string(n.Severity))
}

// Desktop shells out to the platform notifier without blocking the caller.
// Errors are reported to OnError from the notifier goroutine.
type Desktop struct {
	OnError func(error)
	// Run executes the notifier command; nil runs it with os/exec.
	Run func(name string, args ...string) error
}

func (d Desktop) Notify(n Notification) {
	name, args, ok := desktopCommand(runtime.GOOS, n)
	if !ok {
		return
	}
	run := d.Run
	if run == nil {
		run = execRun
	}
	go func() {
		if err := run(name, args...); err != nil && d.OnError != nil {
			d.OnError(err)
		}
	}()
}

func desktopCommand(goos string, n Notification) (string, []string, bool) {
	switch goos {
	case "linux":
		return "notify-send", []string{n.Title, n.Description}, true
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Description), escapeAppleScript(n.Title))
		return "osascript", []string{"-e", script}, true
	}
	return "", nil, false
}

func execRun(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func escapeAppleScript(s string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s)
}

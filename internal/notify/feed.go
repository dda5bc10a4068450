package notify

import "time"

const DefaultFeedLimit = 40

// Feed keeps the most recent notifications for the UI toast line.
type Feed struct {
	items []Notification
	limit int
	now   func() time.Time
}

func NewFeed(limit int) *Feed {
	if limit <= 0 {
		limit = DefaultFeedLimit
	}
	return &Feed{limit: limit, now: time.Now}
}

func (f *Feed) Notify(n Notification) {
	if n.Title == "" && n.Description == "" {
		return
	}
	if n.At.IsZero() {
		n.At = f.now().UTC()
	}
	if n.Severity == "" {
		n.Severity = SeverityInfo
	}
	f.items = append(f.items, n)
	if len(f.items) > f.limit {
		f.items = f.items[len(f.items)-f.limit:]
	}
}

func (f *Feed) Latest() (Notification, bool) {
	if len(f.items) == 0 {
		return Notification{}, false
	}
	return f.items[len(f.items)-1], true
}

func (f *Feed) Len() int {
	return len(f.items)
}

// Dismiss drops every stored notification.
func (f *Feed) Dismiss() {
	f.items = nil
}

package update

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/notify"
	"github.com/sandeepkv93/taskflow/internal/store"
)

type Tab string

const (
	TabHome    Tab = "Home"
	TabTasks   Tab = "Tasks"
	TabDone    Tab = "Done"
	TabSearch  Tab = "Search"
	TabProfile Tab = "Profile"
)

var Tabs = []Tab{TabHome, TabTasks, TabDone, TabSearch, TabProfile}

// tabFilter is the status filter a tab applies when it is opened.
func tabFilter(t Tab) (model.Filter, bool) {
	switch t {
	case TabTasks:
		return model.FilterOpen, true
	case TabDone:
		return model.FilterComplete, true
	case TabSearch:
		return model.FilterAll, true
	default:
		return "", false
	}
}

func isListTab(t Tab) bool {
	_, ok := tabFilter(t)
	return ok
}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Home    string
	Tasks   string
	Done    string
	Search  string
	Profile string
	New     string
	Help    string
	Quit    string
}

type FormField int

const (
	FieldTitle FormField = iota
	FieldDescription
	FieldDue
	FieldPriority
	FieldStatus
)

const formFieldCount = 5

type FormState struct {
	Active    bool
	EditingID string
	Field     FormField
	Priority  model.Priority
	Status    model.Status
	TitleErr  string
	DueErr    string
}

type CommandPaletteState struct {
	Active bool
}

const refreshDuration = time.Second

type Deps struct {
	Context  context.Context
	Tasks    *store.TaskStore
	Identity *store.IdentityStore
	Toasts   *notify.Feed
	Logger   *slog.Logger
	Now      func() time.Time
}

type Model struct {
	CurrentTab  Tab
	Form        FormState
	Palette     CommandPaletteState
	HelpVisible bool
	ShowDetails bool
	Status      StatusBar
	Keys        GlobalKeyMap
	Quitting    bool
	LastError   error
	Cursor      int
	Refreshing  bool

	ctx      context.Context
	tasks    *store.TaskStore
	identity *store.IdentityStore
	toasts   *notify.Feed
	logger   *slog.Logger
	now      func() time.Time
	width    int

	taskTable    table.Model
	searchInput  textinput.Model
	commandInput textinput.Model
	titleInput   textinput.Model
	dueInput     textinput.Model
	descArea     textarea.Model
	spin         spinner.Model
	rateBar      progress.Model
	helpModel    help.Model
	detailsPane  viewport.Model
	detailsKey   detailsKey
	visible      []model.Task
}

// detailsKey identifies what the details pane last rendered.
type detailsKey struct {
	id        string
	updatedAt time.Time
	width     int
}

type SwitchTabMsg struct {
	Tab Tab
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type signInDoneMsg struct{}

type refreshDoneMsg struct{}

func NewModel(deps Deps) Model {
	if deps.Context == nil {
		deps.Context = context.Background()
	}
	if deps.Toasts == nil {
		deps.Toasts = notify.NewFeed(notify.DefaultFeedLimit)
	}
	if deps.Logger == nil {
		deps.Logger = slog.New(slog.DiscardHandler)
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	m := Model{
		CurrentTab: TabHome,
		Keys: GlobalKeyMap{
			Home:    "1",
			Tasks:   "2",
			Done:    "3",
			Search:  "4",
			Profile: "5",
			New:     "n",
			Help:    "?",
			Quit:    "q",
		},
		ctx:      deps.Context,
		tasks:    deps.Tasks,
		identity: deps.Identity,
		toasts:   deps.Toasts,
		logger:   deps.Logger,
		now:      deps.Now,
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

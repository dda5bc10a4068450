package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/taskflow/internal/views"
)

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}

func (m Model) renderHelpView() string {
	var plain []string
	for _, kb := range m.viewBindings() {
		plain = append(plain, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentTab),
		Bindings:    plain,
		HelpView: m.helpModel.View(helpKeyMap{
			short: toKeyBindings(m.globalBindings()),
			full:  [][]key.Binding{toKeyBindings(m.globalBindings())},
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Home, Action: "home"},
		{Key: m.Keys.Tasks, Action: "tasks"},
		{Key: m.Keys.Done, Action: "done"},
		{Key: m.Keys.Search, Action: "search"},
		{Key: m.Keys.Profile, Action: "profile"},
		{Key: m.Keys.New, Action: "new task"},
		{Key: "/", Action: "command palette"},
		{Key: m.Keys.Help, Action: "help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	list := []KeyBinding{
		{Key: "j/k", Action: "move selection"},
		{Key: "space", Action: "toggle complete"},
		{Key: "enter", Action: "show details"},
		{Key: "e/x", Action: "edit / delete"},
		{Key: "f/s", Action: "cycle filter / sort"},
		{Key: "r", Action: "refresh"},
	}
	switch m.CurrentTab {
	case TabTasks:
		return list
	case TabDone:
		return append(list, KeyBinding{Key: "C", Action: "clear completed"})
	case TabSearch:
		return append(list, KeyBinding{Key: "i", Action: "edit search query"})
	case TabProfile:
		return []KeyBinding{{Key: "L", Action: "sign out"}}
	default:
		return []KeyBinding{{Key: "tab", Action: "next tab"}}
	}
}

func toKeyBindings(in []KeyBinding) []key.Binding {
	out := make([]key.Binding, 0, len(in))
	for _, kb := range in {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}

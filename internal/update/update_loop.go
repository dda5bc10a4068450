package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskflow/internal/views"
)

func (m Model) Init() tea.Cmd {
	return tea.SetWindowTitle("TaskFlow")
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.detailsPane.Width = views.DefaultWidth - 6
		if typed.Width > 0 {
			m.detailsPane.Width = typed.Width - 6
		}
		return m, nil
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if !m.identity.SignedIn() {
			return m.handleLoginKey(typed)
		}
		if m.Form.Active {
			return m.handleFormKey(typed)
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed)
		}
		if m.CurrentTab == TabSearch && m.searchInput.Focused() {
			return m.handleSearchInputKey(typed)
		}
		return m.handleKey(typed)
	case spinner.TickMsg:
		if m.spinning() {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(typed)
			return m, cmd
		}
	case signInDoneMsg:
		return m.completeSignIn(), nil
	case refreshDoneMsg:
		m.Refreshing = false
		m.Status = StatusBar{Text: "tasks up to date"}
		return m, nil
	case SwitchTabMsg:
		if isKnownTab(typed.Tab) && m.identity.SignedIn() {
			m = m.switchTab(typed.Tab)
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.logger.Error("ui error", "err", typed.Err)
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch keyStr := msg.String(); keyStr {
	case "/":
		m.Palette.Active = true
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
		return m, nil
	case m.Keys.Home:
		return m.switchTab(TabHome), nil
	case m.Keys.Tasks:
		return m.switchTab(TabTasks), nil
	case m.Keys.Done:
		return m.switchTab(TabDone), nil
	case m.Keys.Search:
		return m.switchTab(TabSearch), nil
	case m.Keys.Profile:
		return m.switchTab(TabProfile), nil
	case "tab":
		return m.switchTab(Tabs[(tabIndex(m.CurrentTab)+1)%len(Tabs)]), nil
	case "shift+tab":
		return m.switchTab(Tabs[(tabIndex(m.CurrentTab)+len(Tabs)-1)%len(Tabs)]), nil
	case m.Keys.New:
		if m.CurrentTab == TabProfile {
			return m, nil
		}
		return m.openForm(nil), nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		if m.HelpVisible {
			m.Status = StatusBar{Text: "help shown"}
		} else {
			m.Status = StatusBar{Text: "help hidden"}
		}
		return m, nil
	case "esc":
		m.HelpVisible = false
		m.ShowDetails = false
		m.toasts.Dismiss()
		return m, nil
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}
	if isListTab(m.CurrentTab) {
		return m.handleListKey(msg)
	}
	if m.CurrentTab == TabProfile && msg.String() == "L" {
		return m.signOut(), nil
	}
	return m, nil
}

func (m Model) spinning() bool {
	return m.Refreshing || m.identity.Loading()
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	toast := ""
	if n, ok := m.toasts.Latest(); ok {
		toast = views.RenderToast(string(n.Severity), n.Title, n.Description)
	}

	if !m.identity.SignedIn() {
		return views.RenderApp(views.AppData{
			Header:     "TaskFlow",
			Body:       m.renderLoginView(),
			StatusLine: status,
			IsError:    m.Status.IsError,
			Toast:      toast,
			Footer:     "keys: g google | h github | f facebook | a apple | q quit",
			Width:      m.width,
		})
	}

	body := ""
	switch m.CurrentTab {
	case TabHome:
		body = m.renderHomeView()
	case TabTasks, TabDone, TabSearch:
		body = m.renderListView()
	case TabProfile:
		body = m.renderProfileView()
	}
	extras := strings.TrimSpace(strings.Join([]string{m.renderCommandPalette(), m.renderHelpIfVisible()}, "\n"))
	if extras != "" {
		body += "\n\n" + extras
	}
	overlay := ""
	if m.Form.Active {
		overlay = m.renderFormView()
	}

	id, _ := m.identity.Current()
	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("TaskFlow | %s | %s", id.Name, m.CurrentTab),
		TabBar:     m.renderTabBar(),
		Body:       body,
		Overlay:    overlay,
		StatusLine: status,
		IsError:    m.Status.IsError,
		Toast:      toast,
		Footer:     fmt.Sprintf("keys: %s-%s tabs | %s new | / cmd | %s help | %s quit", m.Keys.Home, m.Keys.Profile, m.Keys.New, m.Keys.Help, m.Keys.Quit),
		Width:      m.width,
	})
}

func isKnownTab(t Tab) bool {
	return tabIndex(t) >= 0
}

func tabIndex(t Tab) int {
	for i, tab := range Tabs {
		if tab == t {
			return i
		}
	}
	return -1
}

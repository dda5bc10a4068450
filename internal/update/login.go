package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/taskflow/internal/model"
	"github.com/sandeepkv93/taskflow/internal/views"
)

var providerKeys = map[string]model.Provider{
	"g": model.ProviderGoogle,
	"h": model.ProviderGitHub,
	"f": model.ProviderFacebook,
	"a": model.ProviderApple,
}

func providerKey(p model.Provider) string {
	for k, v := range providerKeys {
		if v == p {
			return k
		}
	}
	return ""
}

func (m Model) handleLoginKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.String() == m.Keys.Quit {
		m.Quitting = true
		return m, tea.Quit
	}
	p, ok := providerKeys[msg.String()]
	if !ok {
		return m, nil
	}
	if m.identity.Loading() {
		m.Status = StatusBar{Text: "sign-in already in progress"}
		return m, nil
	}
	if err := m.identity.BeginSignIn(p); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}
	m.Status = StatusBar{Text: fmt.Sprintf("signing in with %s", p.DisplayName())}
	return m, tea.Batch(m.spin.Tick, tea.Tick(m.identity.SignInDelay(), func(time.Time) tea.Msg { return signInDoneMsg{} }))
}

func (m Model) completeSignIn() Model {
	id, err := m.identity.CompleteSignIn(m.ctx)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}
	m = m.switchTab(TabHome)
	m.Status = StatusBar{Text: fmt.Sprintf("signed in as %s", id.Name)}
	return m
}

func (m Model) signOut() Model {
	m.identity.SignOut(m.ctx)
	m.searchInput.SetValue("")
	m.searchInput.Blur()
	m.tasks.SetSearchQuery("")
	_ = m.tasks.SetFilter(model.FilterAll)
	m.Form = FormState{}
	m.Palette = CommandPaletteState{}
	m.HelpVisible = false
	m.ShowDetails = false
	m.Refreshing = false
	m.CurrentTab = TabHome
	m.Cursor = 0
	m.Status = StatusBar{Text: "signed out"}
	return m
}

func (m Model) renderLoginView() string {
	data := views.LoginData{
		Loading:     m.identity.Loading(),
		Pending:     m.identity.Pending().DisplayName(),
		SpinnerView: m.spin.View(),
	}
	for _, p := range model.Providers {
		data.Providers = append(data.Providers, views.ProviderData{Key: providerKey(p), Name: p.DisplayName()})
	}
	return views.RenderLogin(data)
}

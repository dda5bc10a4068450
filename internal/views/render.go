package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

const DefaultWidth = 76

type AppData struct {
	Header     string
	TabBar     string
	Body       string
	Overlay    string
	StatusLine string
	IsError    bool
	Toast      string
	Footer     string
	Width      int
}

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	overlayStyle = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("12")).Padding(0, 1)
	footerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	titleStyle   = lipgloss.NewStyle().Bold(true)
)

func panelWidth(w int) int {
	if w <= 0 {
		w = DefaultWidth
	}
	return w - 4
}

func RenderApp(data AppData) string {
	width := panelWidth(data.Width)
	lines := []string{headerStyle.Render(data.Header)}
	if data.TabBar != "" {
		lines = append(lines, data.TabBar)
	}
	body := data.Body
	if data.Overlay != "" {
		body = overlayStyle.Width(width).Render(data.Overlay)
	} else {
		body = panelStyle.Width(width).Render(body)
	}
	lines = append(lines, body)

	if data.StatusLine != "" {
		if data.IsError {
			lines = append(lines, errorStyle.Render(data.StatusLine))
		} else {
			lines = append(lines, statusStyle.Render(data.StatusLine))
		}
	}
	if data.Toast != "" {
		lines = append(lines, data.Toast)
	}
	if data.Footer != "" {
		lines = append(lines, footerStyle.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

func RenderMarkdown(md string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	r, err := glamour.NewTermRenderer(glamour.WithStandardStyle("dark"), glamour.WithWordWrap(panelWidth(width)-2))
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

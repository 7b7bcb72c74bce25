package views

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
)

type Pane string

const (
	PaneTimer Pane = "timer"
	PaneBoard Pane = "board"
	PaneMusic Pane = "music"
)

type AppData struct {
	Theme      Theme
	Width      int
	Header     string
	Focus      Pane
	TimerPane  string
	BoardPane  string
	MusicPane  string
	StatusLine string
	IsError    bool
	Overlay    string
	Footer     string
}

func panelStyle(t Theme, focused bool, width int) lipgloss.Style {
	border := t.Border
	if focused {
		border = t.Focused
	}
	s := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(border).Padding(0, 1)
	if width > 0 {
		s = s.Width(width)
	}
	return s
}

// RenderApp lays out timer and music side by side with the board underneath.
func RenderApp(data AppData) string {
	t := data.Theme
	total := data.Width
	if total <= 0 {
		total = 120
	}
	half := total/2 - 4
	if half < 30 {
		half = 30
	}

	timer := panelStyle(t, data.Focus == PaneTimer, half).Render(data.TimerPane)
	music := panelStyle(t, data.Focus == PaneMusic, half).Render(data.MusicPane)
	top := lipgloss.JoinHorizontal(lipgloss.Top, timer, music)
	board := panelStyle(t, data.Focus == PaneBoard, total-4).Render(data.BoardPane)

	lines := []string{
		t.Header.Render(data.Header),
		top,
		board,
	}
	if data.StatusLine != "" {
		if data.IsError {
			lines = append(lines, t.Error.Render(data.StatusLine))
		} else {
			lines = append(lines, t.Status.Render(data.StatusLine))
		}
	}
	if data.Overlay != "" {
		lines = append(lines, panelStyle(t, true, 0).Render(data.Overlay))
	}
	if data.Footer != "" {
		lines = append(lines, t.Dim.Render(data.Footer))
	}
	return strings.Join(lines, "\n")
}

// RenderMarkdown renders md with the given glamour style, returning md unchanged on error.
func RenderMarkdown(md, style string, width int) string {
	if strings.TrimSpace(md) == "" {
		return ""
	}
	if style == "" {
		style = "dark"
	}
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle(style)}
	if width > 0 {
		opts = append(opts, glamour.WithWordWrap(width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return md
	}
	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimSpace(out)
}

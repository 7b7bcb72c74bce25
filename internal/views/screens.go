package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

type TimerPanelData struct {
	Phase        string
	IsBreak      bool
	Profile      string
	Clock        string
	Running      bool
	ProgressView string
	Sessions     int
	NextPhase    string
	AutoStart    bool
}

type BoardTaskData struct {
	ID       string
	Title    string
	Selected bool
	Done     bool
}

type BoardColumnData struct {
	Label   string
	Icon    string
	Focused bool
	Tasks   []BoardTaskData
}

type BoardPanelData struct {
	Columns     []BoardColumnData
	ColumnWidth int
	Detail      string
	Focused     bool
}

type MusicPanelData struct {
	Player    string
	VideoID   string
	URL       string
	State     string
	Volume    int
	Loop      bool
	Editing   bool
	InputView string
	ErrorText string
}

type AddTaskModalData struct {
	TitleView       string
	DescriptionView string
	ErrorText       string
}

type HelpPanelData struct {
	Pane     string
	Bindings []string
	HelpView string
}

func RenderTimerPanel(t Theme, data TimerPanelData) string {
	var b strings.Builder
	phase := t.Accent.Render(strings.ToUpper(data.Phase))
	if data.IsBreak {
		phase = t.Break.Render(strings.ToUpper(data.Phase))
	}
	state := "paused"
	if data.Running {
		state = "running"
	}
	b.WriteString(fmt.Sprintf("timer: %s (%s)\n", phase, state))
	b.WriteString(t.Header.Render(data.Clock) + "\n")
	if data.ProgressView != "" {
		b.WriteString(data.ProgressView + "\n")
	}
	b.WriteString(fmt.Sprintf("sessions: %d | next: %s\n", data.Sessions, data.NextPhase))
	profile := fmt.Sprintf("profile: %s", data.Profile)
	if !data.AutoStart {
		profile += " | auto-start off"
	}
	b.WriteString(t.Dim.Render(profile) + "\n")
	b.WriteString(t.Dim.Render("[space]start/pause [r]reset [n]skip [d]dev"))
	return b.String()
}

func RenderBoardPanel(t Theme, data BoardPanelData) string {
	width := data.ColumnWidth
	if width <= 0 {
		width = 34
	}
	cols := make([]string, 0, len(data.Columns))
	for _, col := range data.Columns {
		var b strings.Builder
		header := fmt.Sprintf("%s %s (%d)", col.Icon, col.Label, len(col.Tasks))
		if col.Focused && data.Focused {
			b.WriteString(t.Selected.Render(header) + "\n")
		} else {
			b.WriteString(t.Accent.Render(header) + "\n")
		}
		if len(col.Tasks) == 0 {
			b.WriteString(t.Dim.Render("  (empty)"))
		}
		for i, task := range col.Tasks {
			cursor := " "
			style := t.Text
			if task.Done {
				style = t.Done
			}
			if task.Selected && col.Focused {
				cursor = ">"
				style = t.Selected
			}
			b.WriteString(style.Render(cursor + " " + truncate(task.Title, width-4)))
			if i < len(col.Tasks)-1 {
				b.WriteString("\n")
			}
		}
		cols = append(cols, lipgloss.NewStyle().Width(width).MarginRight(1).Render(b.String()))
	}
	out := "board:\n" + lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	if strings.TrimSpace(data.Detail) != "" {
		out += "\n\n" + data.Detail
	}
	return out + "\n" + t.Dim.Render("[h/l]column [j/k]task [a]add [H/L]move [J/K]reorder [x]delete")
}

func RenderMusicPanel(t Theme, data MusicPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("music: %s\n", data.Player))
	if data.VideoID == "" {
		b.WriteString(t.Dim.Render("no track loaded") + "\n")
	} else {
		b.WriteString(fmt.Sprintf("track: %s [%s]\n", t.Accent.Render(data.VideoID), data.State))
		b.WriteString(t.Dim.Render(data.URL) + "\n")
	}
	loop := "off"
	if data.Loop {
		loop = "on"
	}
	b.WriteString(fmt.Sprintf("volume: %d%% | loop: %s\n", data.Volume, loop))
	if data.Editing {
		b.WriteString(data.InputView + "\n")
	}
	if data.ErrorText != "" {
		b.WriteString(t.Error.Render(data.ErrorText) + "\n")
	}
	b.WriteString(t.Dim.Render("[u]url [p]play [s]pause [+/-]volume [o]loop [0]restart"))
	return b.String()
}

func RenderAddTaskModal(t Theme, data AddTaskModalData) string {
	var b strings.Builder
	b.WriteString(t.Header.Render("new task") + "\n")
	b.WriteString(data.TitleView + "\n")
	b.WriteString(data.DescriptionView + "\n")
	if data.ErrorText != "" {
		b.WriteString(t.Error.Render(data.ErrorText) + "\n")
	}
	b.WriteString(t.Dim.Render("[tab]field [ctrl+s/enter on title]save [esc]cancel"))
	return b.String()
}

func RenderPermissionPrompt(t Theme) string {
	return t.Header.Render("desktop notifications") + "\n" +
		"Show a desktop notification when a phase ends?\n" +
		t.Dim.Render("[y]enable [n]no thanks [esc]ask later")
}

func RenderCommandPalette(t Theme, active bool, inputView string, suggestions []string) string {
	if !active {
		return ""
	}
	out := "command:\n" + inputView
	if len(suggestions) > 0 {
		out += "\n" + t.Dim.Render(strings.Join(suggestions, "  "))
	}
	return out
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal + %s:\n%s\n%s",
		strings.ToLower(data.Pane),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func truncate(s string, n int) string {
	if n <= 1 || ansi.StringWidth(s) <= n {
		return s
	}
	return ansi.Truncate(s, n, "…")
}

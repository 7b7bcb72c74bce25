package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/pomobubby/internal/commands"
	"github.com/sandeepkv93/pomobubby/internal/model"
	"github.com/sandeepkv93/pomobubby/internal/storage"
	"github.com/sandeepkv93/pomobubby/internal/timer"
	"github.com/sandeepkv93/pomobubby/internal/views"
)

func (m Model) openPalette() Model {
	m.Palette = CommandPaletteState{Active: true}
	m.commandInput.SetValue("")
	m.commandInput.Focus()
	return m
}

func (m Model) closePalette() Model {
	m.Palette = CommandPaletteState{}
	m.commandInput.SetValue("")
	m.commandInput.Blur()
	return m
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m = m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
		return m, nil
	case "tab":
		if s := m.paletteSuggestions(); len(s) > 0 {
			m.commandInput.SetValue(strings.TrimPrefix(s[0], "/") + " ")
			m.commandInput.CursorEnd()
			m.Palette.Input = m.commandInput.Value()
		}
		return m, nil
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		return m.executePaletteCommand()
	}
	var cmd tea.Cmd
	m.commandInput, cmd = m.commandInput.Update(msg)
	m.Palette.Input = m.commandInput.Value()
	return m, cmd
}

// paletteSuggestions lists commands whose name starts with the typed word.
func (m Model) paletteSuggestions() []string {
	head := strings.ToLower(strings.TrimSpace(m.Palette.Input))
	if strings.Contains(head, " ") {
		return nil
	}
	out := make([]string, 0, len(commands.Names))
	for _, name := range commands.Names {
		if strings.HasPrefix(string(name), head) {
			out = append(out, "/"+string(name))
		}
	}
	return out
}

func (m Model) executePaletteCommand() (Model, tea.Cmd) {
	raw := strings.TrimSpace(m.Palette.Input)
	cmd, err := commands.Parse(raw)
	if err != nil {
		m = m.closePalette()
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m, nil
	}

	var out tea.Cmd
	before := m.failures
	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			next, err := m.addTask(a.Title, a.Description)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			m = next
			m.Focus = views.PaneBoard
			return commands.Result{Message: fmt.Sprintf("added task: %s", a.Title)}, nil
		},
		Move: func(a commands.MoveArgs) (commands.Result, error) {
			t, ok := m.board.FindByPrefix(a.Target)
			if !ok {
				return commands.Result{}, notFound(a.Target)
			}
			m = m.moveTask(t, model.ParseStatus(a.Status))
			return commands.Result{Message: m.Status.Text}, nil
		},
		Delete: func(a commands.DeleteArgs) (commands.Result, error) {
			t, ok := m.board.FindByPrefix(a.Target)
			if !ok {
				return commands.Result{}, notFound(a.Target)
			}
			m = m.deleteTask(t)
			return commands.Result{Message: fmt.Sprintf("deleted task: %s", t.Title)}, nil
		},
		Music: func(a commands.MusicArgs) (commands.Result, error) {
			next, load, err := m.loadMusic(a.URL)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: invalidURLMessage}
			}
			m, out = next, load
			return commands.Result{Message: fmt.Sprintf("loading %s", m.Music.VideoID)}, nil
		},
		Volume: func(a commands.VolumeArgs) (commands.Result, error) {
			m, out, _ = m.setVolume(a.Level)
			return commands.Result{Message: fmt.Sprintf("volume %d%%", m.Music.Volume)}, nil
		},
		Theme: func(a commands.ThemeArgs) (commands.Result, error) {
			m = m.setTheme(a.Theme)
			return commands.Result{Message: fmt.Sprintf("theme: %s", m.ThemeName)}, nil
		},
		Profile: func(a commands.ProfileArgs) (commands.Result, error) {
			if a.Profile == "toggle" {
				m, out, _ = m.toggleProfile()
				return commands.Result{Message: m.Status.Text}, nil
			}
			p, err := timer.ParseProfile(a.Profile)
			if err != nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: err.Error()}
			}
			m, out, _ = m.switchProfile(p)
			return commands.Result{Message: m.Status.Text}, nil
		},
		Reset: func() (commands.Result, error) {
			m, out, _ = m.withEffects(m.timer.Reset())
			return commands.Result{Message: "timer reset"}, nil
		},
		Skip: func() (commands.Result, error) {
			m, out, _ = m.withEffects(m.timer.Skip())
			return commands.Result{Message: m.Status.Text}, nil
		},
	})
	m = m.closePalette()
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.log.Debug().Err(err).Str("input", raw).Msg("command failed")
		return m, out
	}
	m.info(before, res.Message)
	return m, out
}

// setTheme applies "dark", "light" or "toggle" and persists the result.
func (m Model) setTheme(name string) Model {
	switch name {
	case storage.ThemeDark, storage.ThemeLight:
		m.ThemeName = name
	default:
		if m.ThemeName == storage.ThemeLight {
			m.ThemeName = storage.ThemeDark
		} else {
			m.ThemeName = storage.ThemeLight
		}
	}
	m.applyTheme()
	m.saveTheme()
	return m
}

func notFound(ref string) error {
	return &commands.CommandError{
		Code:    commands.ErrCodeInvalidArgument,
		Message: fmt.Sprintf("%v: %s", model.ErrTaskNotFound, ref),
	}
}

package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/pomobubby/internal/views"
)

var paneOrder = []views.Pane{views.PaneTimer, views.PaneBoard, views.PaneMusic}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForWakeupCmd(m.scheduler),
		waitForChangeCmd(m.changes),
		m.restoreMusicCmd(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case tea.WindowSizeMsg:
		m.width = typed.Width
		m.timerProgress.Width = clampInt(typed.Width/2-12, 10, 60)
		return m, nil
	case TickMsg:
		return m.onTick(typed)
	case WakeupMsg:
		return m.onWakeup(typed.Event)
	case tea.FocusMsg, tea.ResumeMsg:
		return m.reconcile()
	case StoreChangedMsg:
		return m.onStoreChanged(typed.Keys)
	case MusicResultMsg:
		return m.onMusicResult(typed), nil
	case EffectErrMsg:
		m.log.Warn().Err(typed.Err).Str("source", typed.Source).Msg("completion effect failed")
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
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	switch keyStr {
	case "ctrl+c":
		return m.quit()
	case m.Keys.Suspend:
		// The deadline keeps running on the wall clock; ResumeMsg reconciles it.
		return m, tea.Suspend
	}

	switch {
	case m.PermissionPrompt:
		return m.handlePermissionKey(msg), nil
	case m.AddTask.Active:
		return m.handleAddTaskKey(msg)
	case m.Music.Editing:
		return m.handleURLKey(msg)
	case m.Palette.Active:
		return m.handlePaletteKey(msg)
	}

	switch keyStr {
	case m.Keys.Quit:
		return m.quit()
	case "/":
		return m.openPalette(), nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case "esc":
		m.HelpVisible = false
		return m, nil
	case m.Keys.Timer:
		m.Focus = views.PaneTimer
		return m, nil
	case m.Keys.Board:
		m.Focus = views.PaneBoard
		return m, nil
	case m.Keys.Music:
		m.Focus = views.PaneMusic
		return m, nil
	case "tab":
		m.Focus = nextPane(m.Focus, 1)
		return m, nil
	case "shift+tab":
		m.Focus = nextPane(m.Focus, -1)
		return m, nil
	case "T":
		before := m.failures
		m = m.setTheme("toggle")
		m.info(before, fmt.Sprintf("theme: %s", m.ThemeName))
		return m, nil
	}

	switch m.Focus {
	case views.PaneBoard:
		if next, ok := m.handleBoardKey(msg); ok {
			return next, nil
		}
	case views.PaneMusic:
		if next, cmd, ok := m.handleMusicKey(msg); ok {
			return next, cmd
		}
	}
	if next, cmd, ok := m.handleTimerKey(msg); ok {
		return next, cmd
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.Quitting = true
	m.cancelWakeup()
	return m, tea.Quit
}

func (m Model) View() string {
	if m.Quitting {
		return ""
	}
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	return views.RenderApp(views.AppData{
		Theme:      m.theme(),
		Width:      m.width,
		Header:     m.renderHeader(),
		Focus:      m.Focus,
		TimerPane:  m.renderTimerView(),
		BoardPane:  m.renderBoardView(),
		MusicPane:  m.renderMusicView(),
		StatusLine: status,
		IsError:    m.Status.IsError,
		Overlay:    m.renderOverlay(),
		Footer: fmt.Sprintf("keys: %s timer | %s board | %s music | space start/pause | / cmd | %s help | %s quit",
			m.Keys.Timer, m.Keys.Board, m.Keys.Music, m.Keys.Help, m.Keys.Quit),
	})
}

func nextPane(cur views.Pane, delta int) views.Pane {
	for i, p := range paneOrder {
		if p == cur {
			return paneOrder[(i+delta+len(paneOrder))%len(paneOrder)]
		}
	}
	return views.PaneTimer
}

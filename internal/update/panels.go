package update

import (
	"fmt"

	"github.com/sandeepkv93/pomobubby/internal/model"
	"github.com/sandeepkv93/pomobubby/internal/timer"
	"github.com/sandeepkv93/pomobubby/internal/views"
)

func (m Model) theme() views.Theme {
	return views.ThemeFor(m.ThemeName)
}

func (m Model) renderTimerView() string {
	st := m.timer.State()
	next := timer.NextPhase(st.Phase, st.Sessions)
	if st.Phase == timer.PhaseFocus {
		next = timer.NextPhase(st.Phase, st.Sessions+1)
	}
	return views.RenderTimerPanel(m.theme(), views.TimerPanelData{
		Phase:        st.Phase.Label(),
		IsBreak:      st.Phase.IsBreak(),
		Profile:      st.Profile.Label(),
		Clock:        timer.FormatClock(st.Remaining),
		Running:      st.Running,
		ProgressView: m.timerProgress.ViewAs(m.timer.Progress()),
		Sessions:     st.Sessions,
		NextPhase:    next.Label(),
		AutoStart:    m.timer.Config().AutoStart,
	})
}

func (m Model) renderBoardView() string {
	cols := make([]views.BoardColumnData, 0, len(model.Columns))
	for i, status := range model.Columns {
		tasks := m.board.Column(status)
		items := make([]views.BoardTaskData, 0, len(tasks))
		for j, t := range tasks {
			items = append(items, views.BoardTaskData{
				ID:       t.ID,
				Title:    t.Title,
				Selected: j == m.Board.Cursor[i],
				Done:     t.Status == model.StatusDone,
			})
		}
		cols = append(cols, views.BoardColumnData{
			Label:   status.Label(),
			Icon:    status.Icon(),
			Focused: i == m.Board.Column,
			Tasks:   items,
		})
	}
	detail := ""
	if t, ok := m.selectedTask(); ok && m.Focus == views.PaneBoard && t.Description != "" {
		detail = views.RenderMarkdown(t.Description, m.theme().Glamour, m.boardWidth()-4)
	}
	return views.RenderBoardPanel(m.theme(), views.BoardPanelData{
		Columns:     cols,
		ColumnWidth: m.boardWidth()/len(model.Columns) - 2,
		Detail:      detail,
		Focused:     m.Focus == views.PaneBoard,
	})
}

func (m Model) renderMusicView() string {
	return views.RenderMusicPanel(m.theme(), views.MusicPanelData{
		Player:    m.playerName,
		VideoID:   m.Music.VideoID,
		URL:       m.Music.URL,
		State:     m.Music.State,
		Volume:    m.Music.Volume,
		Loop:      m.Music.Loop,
		Editing:   m.Music.Editing,
		InputView: m.urlInput.View(),
		ErrorText: m.Music.Err,
	})
}

func (m Model) renderOverlay() string {
	t := m.theme()
	switch {
	case m.PermissionPrompt:
		return views.RenderPermissionPrompt(t)
	case m.AddTask.Active:
		return views.RenderAddTaskModal(t, views.AddTaskModalData{
			TitleView:       m.titleInput.View(),
			DescriptionView: m.descArea.View(),
			ErrorText:       m.AddTask.Err,
		})
	case m.Palette.Active:
		return views.RenderCommandPalette(t, true, m.commandInput.View(), m.paletteSuggestions())
	case m.HelpVisible:
		return m.renderHelpView()
	}
	return ""
}

func (m Model) renderHeader() string {
	st := m.timer.State()
	return fmt.Sprintf("PomoBubby | %s %s | sessions: %d | %s theme",
		st.Phase.Label(), timer.FormatClock(st.Remaining), st.Sessions, m.ThemeName)
}

func (m Model) boardWidth() int {
	if m.width <= 0 {
		return 116
	}
	return m.width - 4
}

package update

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/sandeepkv93/pomobubby/internal/model"
	"github.com/sandeepkv93/pomobubby/internal/notify"
	"github.com/sandeepkv93/pomobubby/internal/storage"
	"github.com/sandeepkv93/pomobubby/internal/video"
)

func (m Model) storeCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(m.ctx, ioTimeout)
}

// loadPersisted restores the board, theme, music and notification state, returning the
// saved session count.
func (m *Model) loadPersisted(themeDefault string) int {
	m.ThemeName = resolveTheme("", false, themeDefault)
	if m.store == nil {
		return 0
	}
	ctx, cancel := m.storeCtx()
	defer cancel()

	var problems []error
	sessions, err := m.store.SessionCount(ctx)
	if err != nil {
		problems = append(problems, fmt.Errorf("load session count: %w", err))
	}

	tasks, err := m.store.Tasks(ctx)
	if err != nil {
		problems = append(problems, fmt.Errorf("load tasks: %w", err))
	}
	m.board = model.NewBoardFromTasks(tasks)

	saved, ok, err := m.store.Theme(ctx)
	if err != nil {
		problems = append(problems, fmt.Errorf("load theme: %w", err))
	}
	m.ThemeName = resolveTheme(saved, ok, themeDefault)

	perm, err := m.store.NotificationPermission(ctx)
	if err != nil {
		problems = append(problems, fmt.Errorf("load notification permission: %w", err))
	}
	m.Permission = notify.ParsePermission(perm)

	vol, err := m.store.Volume(ctx, m.Music.Volume)
	if err != nil {
		problems = append(problems, fmt.Errorf("load volume: %w", err))
	}
	m.Music.Volume = vol

	url, err := m.store.MusicURL(ctx)
	if err != nil {
		problems = append(problems, fmt.Errorf("load music url: %w", err))
	}
	if id, idErr := video.ExtractID(url); idErr == nil {
		m.Music.URL = url
		m.Music.VideoID = id
		m.Music.State = "cued"
	}

	if len(problems) > 0 {
		err := errors.Join(problems...)
		m.log.Error().Err(err).Msg("failed to restore saved state")
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	}
	return sessions
}

// resolveTheme prefers the saved theme, then the configured one, then the terminal background.
func resolveTheme(saved string, ok bool, configured string) string {
	if ok && (saved == storage.ThemeDark || saved == storage.ThemeLight) {
		return saved
	}
	switch configured {
	case storage.ThemeDark, storage.ThemeLight:
		return configured
	}
	if lipgloss.HasDarkBackground() {
		return storage.ThemeDark
	}
	return storage.ThemeLight
}

func (m *Model) saveBoard() {
	if m.store == nil {
		return
	}
	ctx, cancel := m.storeCtx()
	defer cancel()
	if err := m.store.SaveTasks(ctx, m.board.Tasks()); err != nil {
		m.persistFailed("tasks", err)
	}
}

func (m *Model) saveSessions(n int) {
	if m.store == nil {
		return
	}
	ctx, cancel := m.storeCtx()
	defer cancel()
	if err := m.store.SetSessionCount(ctx, n); err != nil {
		m.persistFailed("session count", err)
	}
}

func (m *Model) saveTheme() {
	if m.store == nil {
		return
	}
	ctx, cancel := m.storeCtx()
	defer cancel()
	if err := m.store.SetTheme(ctx, m.ThemeName); err != nil {
		m.persistFailed("theme", err)
	}
}

func (m *Model) saveMusicURL() {
	if m.store == nil {
		return
	}
	ctx, cancel := m.storeCtx()
	defer cancel()
	if err := m.store.SetMusicURL(ctx, m.Music.URL); err != nil {
		m.persistFailed("music url", err)
	}
}

func (m *Model) saveVolume() {
	if m.store == nil {
		return
	}
	ctx, cancel := m.storeCtx()
	defer cancel()
	if err := m.store.SetVolume(ctx, m.Music.Volume); err != nil {
		m.persistFailed("volume", err)
	}
}

func (m *Model) savePermission() {
	if m.store == nil {
		return
	}
	ctx, cancel := m.storeCtx()
	defer cancel()
	if err := m.store.SetNotificationPermission(ctx, string(m.Permission)); err != nil {
		m.persistFailed("notification permission", err)
	}
}

func (m *Model) persistFailed(what string, err error) {
	m.log.Error().Err(err).Str("what", what).Msg("persist failed")
	m.failures++
	m.LastError = err
	m.Status = StatusBar{Text: fmt.Sprintf("save %s failed: %v", what, err), IsError: true}
}

// info sets an informational status unless a save failed since before.
func (m *Model) info(before int, text string) {
	if m.failures != before {
		return
	}
	m.Status = StatusBar{Text: text}
}

func (m *Model) startWatch() {
	if m.watcher == nil {
		return
	}
	ch, err := m.watcher.Watch(m.ctx)
	if err != nil {
		m.log.Warn().Err(err).Msg("store watch unavailable")
		return
	}
	m.changes = ch
}

func waitForChangeCmd(ch <-chan storage.Change) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		change, ok := <-ch
		if !ok {
			return nil
		}
		return StoreChangedMsg{Keys: change.Keys}
	}
}

// onStoreChanged reloads keys edited by another process.
func (m Model) onStoreChanged(keys []string) (Model, tea.Cmd) {
	if m.store == nil {
		return m, nil
	}
	ctx, cancel := m.storeCtx()
	defer cancel()

	var cmds []tea.Cmd
	for _, key := range keys {
		switch key {
		case storage.KeyTasks:
			tasks, err := m.store.Tasks(ctx)
			if err != nil {
				m.log.Warn().Err(err).Msg("reload tasks failed")
				m.Status = StatusBar{Text: fmt.Sprintf("reload tasks failed: %v", err), IsError: true}
				continue
			}
			m.board = model.NewBoardFromTasks(tasks)
			m.clampBoardCursor()
			m.Status = StatusBar{Text: "board reloaded from disk"}
		case storage.KeyTheme:
			if saved, ok, err := m.store.Theme(ctx); err == nil && ok {
				m.ThemeName = saved
				m.applyTheme()
			}
		case storage.KeyMusicURL:
			url, err := m.store.MusicURL(ctx)
			if err != nil || url == m.Music.URL {
				continue
			}
			if id, idErr := video.ExtractID(url); idErr == nil {
				m.Music.URL = url
				m.Music.VideoID = id
				m.Music.State = "cued"
				cmds = append(cmds, m.musicCmd("cue", func(ctx context.Context) error { return m.player.Cue(ctx, id) }))
			}
		case storage.KeyNotifications:
			if perm, err := m.store.NotificationPermission(ctx); err == nil {
				m.Permission = notify.ParsePermission(perm)
			}
		default:
			m.log.Debug().Str("key", key).Msg("ignoring external change")
		}
	}
	cmds = append(cmds, waitForChangeCmd(m.changes))
	return m, tea.Batch(cmds...)
}

package update

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/pomobubby/internal/video"
)

const invalidURLMessage = "Please paste a valid YouTube video URL."

func (m Model) handleMusicKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	player := m.player
	switch msg.String() {
	case "u", "enter":
		m.Music.Editing = true
		m.Music.Err = ""
		m.urlInput.SetValue(m.Music.URL)
		m.urlInput.CursorEnd()
		return m, m.urlInput.Focus(), true
	case "p":
		if m.Music.VideoID == "" {
			return m, nil, true
		}
		m.Music.State = "playing"
		return m, m.musicCmd("play", player.Play), true
	case "s":
		if m.Music.VideoID == "" {
			return m, nil, true
		}
		m.Music.State = "paused"
		return m, m.musicCmd("pause", player.Pause), true
	case "+", "=":
		return m.setVolume(m.Music.Volume + volumeStep)
	case "-", "_":
		return m.setVolume(m.Music.Volume - volumeStep)
	case "o":
		m.Music.Loop = !m.Music.Loop
		loop := m.Music.Loop
		return m, m.musicCmd("loop", func(ctx context.Context) error { return player.SetLoop(ctx, loop) }), true
	case "0":
		return m, m.musicCmd("seek", func(ctx context.Context) error { return player.SeekTo(ctx, 0) }), true
	}
	return m, nil, false
}

func (m Model) handleURLKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.Music.Editing = false
		m.Music.Err = ""
		m.urlInput.Blur()
		return m, nil
	case "enter":
		next, cmd, err := m.loadMusic(m.urlInput.Value())
		if err != nil {
			m.Music.Err = invalidURLMessage
			return m, nil
		}
		next.Music.Editing = false
		next.urlInput.Blur()
		return next, cmd
	}
	var cmd tea.Cmd
	m.urlInput, cmd = m.urlInput.Update(msg)
	return m, cmd
}

// loadMusic validates raw, persists it and starts playback. An invalid URL leaves
// every piece of state untouched.
func (m Model) loadMusic(raw string) (Model, tea.Cmd, error) {
	raw = strings.TrimSpace(raw)
	id, err := video.ExtractID(raw)
	if err != nil {
		return m, nil, err
	}
	m.Music.URL = raw
	m.Music.VideoID = id
	m.Music.State = "playing"
	m.Music.Err = ""
	before := m.failures
	m.saveMusicURL()
	m.info(before, fmt.Sprintf("loading %s", id))
	player := m.player
	return m, m.musicCmd("load", func(ctx context.Context) error { return player.Load(ctx, id) }), nil
}

func (m Model) setVolume(v int) (Model, tea.Cmd, bool) {
	m.Music.Volume = clampPercent(v)
	before := m.failures
	m.saveVolume()
	m.info(before, fmt.Sprintf("volume %d%%", m.Music.Volume))
	player, vol := m.player, m.Music.Volume
	return m, m.musicCmd("volume", func(ctx context.Context) error { return player.SetVolume(ctx, vol) }), true
}

// restoreMusicCmd applies the saved volume and loop setting and cues the saved track.
func (m Model) restoreMusicCmd() tea.Cmd {
	player, id, vol, loop := m.player, m.Music.VideoID, m.Music.Volume, m.Music.Loop
	return m.musicCmd("restore", func(ctx context.Context) error {
		if id == "" {
			return nil
		}
		if err := player.Cue(ctx, id); err != nil {
			return err
		}
		if err := player.SetVolume(ctx, vol); err != nil {
			return err
		}
		return player.SetLoop(ctx, loop)
	})
}

func (m Model) musicCmd(action string, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, ioTimeout)
		defer cancel()
		return MusicResultMsg{Action: action, Err: fn(ctx)}
	}
}

func (m Model) onMusicResult(msg MusicResultMsg) Model {
	if msg.Err == nil {
		if msg.Action == "load" || msg.Action == "restore" {
			m.Music.Err = ""
		}
		return m
	}
	m.log.Warn().Err(msg.Err).Str("action", msg.Action).Msg("player command failed")
	m.Music.Err = fmt.Sprintf("%s failed: %v", msg.Action, msg.Err)
	if msg.Action == "play" || msg.Action == "load" {
		m.Music.State = "stopped"
	}
	return m
}

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sandeepkv93/pomobubby/internal/model"
)

const (
	KeySessionCount  = "pomo_session_count"
	KeyMusicURL      = "pomo_music_url"
	KeyTheme         = "pomo_theme"
	KeyTasks         = "pomo_tasks"
	KeyNotifications = "pomo_notifications"
	KeyVolume        = "pomo_volume"
)

const (
	ThemeDark  = "dark"
	ThemeLight = "light"
)

var ErrCorruptBoard = errors.New("storage: corrupt board data")

// State is the typed view over the persisted keys.
type State struct {
	kv  KV
	log zerolog.Logger
}

func NewState(kv KV, log zerolog.Logger) *State {
	return &State{kv: kv, log: log.With().Str("component", "state").Logger()}
}

func (s *State) KV() KV {
	return s.kv
}

// SessionCount loads the completed focus count. Missing or unparseable values load as 0.
func (s *State) SessionCount(ctx context.Context) (int, error) {
	raw, ok, err := s.kv.Get(ctx, KeySessionCount)
	if err != nil || !ok {
		return 0, err
	}
	n, convErr := strconv.Atoi(strings.TrimSpace(raw))
	if convErr != nil || n < 0 {
		s.log.Warn().Str("value", raw).Msg("ignoring invalid session count")
		return 0, nil
	}
	return n, nil
}

func (s *State) SetSessionCount(ctx context.Context, n int) error {
	if n < 0 {
		n = 0
	}
	return s.kv.Set(ctx, KeySessionCount, strconv.Itoa(n))
}

func (s *State) MusicURL(ctx context.Context) (string, error) {
	raw, _, err := s.kv.Get(ctx, KeyMusicURL)
	return raw, err
}

func (s *State) SetMusicURL(ctx context.Context, url string) error {
	return s.kv.Set(ctx, KeyMusicURL, url)
}

// Theme returns the saved theme and whether one was saved at all.
func (s *State) Theme(ctx context.Context) (string, bool, error) {
	raw, ok, err := s.kv.Get(ctx, KeyTheme)
	if err != nil || !ok {
		return "", false, err
	}
	return normalizeTheme(raw), true, nil
}

func (s *State) SetTheme(ctx context.Context, theme string) error {
	return s.kv.Set(ctx, KeyTheme, normalizeTheme(theme))
}

func (s *State) NotificationPermission(ctx context.Context) (string, error) {
	raw, _, err := s.kv.Get(ctx, KeyNotifications)
	return raw, err
}

func (s *State) SetNotificationPermission(ctx context.Context, value string) error {
	return s.kv.Set(ctx, KeyNotifications, value)
}

// Volume returns the saved player volume clamped to 0..100, or fallback when unset.
func (s *State) Volume(ctx context.Context, fallback int) (int, error) {
	raw, ok, err := s.kv.Get(ctx, KeyVolume)
	if err != nil || !ok {
		return clampVolume(fallback), err
	}
	n, convErr := strconv.Atoi(strings.TrimSpace(raw))
	if convErr != nil {
		return clampVolume(fallback), nil
	}
	return clampVolume(n), nil
}

func (s *State) SetVolume(ctx context.Context, v int) error {
	return s.kv.Set(ctx, KeyVolume, strconv.Itoa(clampVolume(v)))
}

// Tasks loads the board. Legacy records are normalized and written back. Corrupt data is
// logged and reported with ErrCorruptBoard alongside an empty board.
func (s *State) Tasks(ctx context.Context) ([]model.Task, error) {
	raw, ok, err := s.kv.Get(ctx, KeyTasks)
	if err != nil {
		return nil, err
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []model.Task{}, nil
	}
	var stored []model.StoredTask
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.log.Error().Err(err).Msg("failed to parse stored tasks")
		return []model.Task{}, fmt.Errorf("%w: %v", ErrCorruptBoard, err)
	}
	tasks, changed := model.Normalize(stored)
	if changed {
		if err := s.SaveTasks(ctx, tasks); err != nil {
			s.log.Warn().Err(err).Msg("failed to write back normalized tasks")
		}
	}
	return tasks, nil
}

func (s *State) SaveTasks(ctx context.Context, tasks []model.Task) error {
	data, err := json.Marshal(model.ToStored(tasks))
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	return s.kv.Set(ctx, KeyTasks, string(data))
}

// Forget removes key; an absent key is not an error.
func (s *State) Forget(ctx context.Context, key string) error {
	if err := s.kv.Delete(ctx, key); err != nil && !errors.Is(err, ErrNotFound) {
		return err
	}
	return nil
}

func normalizeTheme(raw string) string {
	if strings.EqualFold(strings.TrimSpace(raw), ThemeLight) {
		return ThemeLight
	}
	return ThemeDark
}

func clampVolume(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

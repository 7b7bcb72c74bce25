package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/pomobubby/internal/timer"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("HOME", dir)
	return dir
}

func TestLoadDefaultsWithoutFile(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg.Timer.FocusMinutes != 25 || cfg.Timer.ShortBreakMinutes != 5 || cfg.Timer.LongBreakMinutes != 15 {
		t.Fatalf("unexpected timer defaults: %+v", cfg.Timer)
	}
	if !cfg.Timer.AutoStart || cfg.Profile() != timer.ProfileStandard {
		t.Fatalf("unexpected timer behaviour defaults: %+v", cfg.Timer)
	}
	if cfg.Storage.Type != "sqlite" {
		t.Fatalf("unexpected storage default: %q", cfg.Storage.Type)
	}
	wantData := filepath.Join(dir, "data", "pomobubby")
	if cfg.DataDir != wantData {
		t.Fatalf("data dir = %q, want %q", cfg.DataDir, wantData)
	}
	if cfg.StoragePath() != filepath.Join(wantData, "pomobubby.db") || cfg.LogPath() != filepath.Join(wantData, "pomobubby.log") {
		t.Fatalf("unexpected derived paths: %s %s", cfg.StoragePath(), cfg.LogPath())
	}
	if cfg.TickInterval() != 250*time.Millisecond {
		t.Fatalf("unexpected tick interval: %s", cfg.TickInterval())
	}
}

func TestLoadFileAndEnvOverrides(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "pomobubby.yaml")
	body := strings.Join([]string{
		"timer:",
		"  focus_minutes: 50",
		"  auto_start: false",
		"  profile: dev",
		"storage:",
		"  type: json",
		"music:",
		"  volume: 30",
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("POMOBUBBY_TIMER_SHORT_BREAK_MINUTES", "10")
	t.Setenv("POMOBUBBY_STORAGE_REDIS_NAMESPACE", "work")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	tc := cfg.TimerConfig()
	if tc.Standard.Focus != 50*time.Minute || tc.Standard.ShortBreak != 10*time.Minute || tc.AutoStart {
		t.Fatalf("unexpected timer config: %+v", tc)
	}
	if tc.Accelerated.Focus != 10*time.Second {
		t.Fatalf("accelerated profile must keep its fixed durations: %+v", tc.Accelerated)
	}
	if cfg.Profile() != timer.ProfileAccelerated {
		t.Fatalf("expected accelerated profile, got %s", cfg.Profile())
	}
	if cfg.Storage.Type != "json" || !strings.HasSuffix(cfg.StoragePath(), "pomobubby.json") {
		t.Fatalf("unexpected storage: %+v %s", cfg.Storage, cfg.StoragePath())
	}
	if cfg.Storage.Redis.Namespace != "work" || cfg.Music.Volume != 30 {
		t.Fatalf("unexpected overrides: %+v %+v", cfg.Storage.Redis, cfg.Music)
	}
}

func TestLoadMissingExplicitFileFails(t *testing.T) {
	dir := isolate(t)
	if _, err := Load(filepath.Join(dir, "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"POMOBUBBY_TIMER_FOCUS_MINUTES": "0",
		"POMOBUBBY_TIMER_PROFILE":       "turbo",
		"POMOBUBBY_STORAGE_TYPE":        "etcd",
		"POMOBUBBY_LOGGING_FORMAT":      "xml",
		"POMOBUBBY_MUSIC_VOLUME":        "101",
		"POMOBUBBY_UI_THEME":            "sepia",
		"POMOBUBBY_MUSIC_PLAYER":        "vlc",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			isolate(t)
			t.Setenv(key, value)
			if _, err := Load(""); err == nil {
				t.Fatalf("expected %s=%s to be rejected", key, value)
			}
		})
	}
}

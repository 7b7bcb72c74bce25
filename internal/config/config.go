package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sandeepkv93/pomobubby/internal/timer"
)

const appName = "pomobubby"

// Config holds the complete application configuration
type Config struct {
	DataDir       string              `mapstructure:"data_dir"`
	Timer         TimerConfig         `mapstructure:"timer"`
	Storage       StorageConfig       `mapstructure:"storage"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Notifications NotificationsConfig `mapstructure:"notifications"`
	Music         MusicConfig         `mapstructure:"music"`
	UI            UIConfig            `mapstructure:"ui"`
}

type TimerConfig struct {
	FocusMinutes      int    `mapstructure:"focus_minutes"`
	ShortBreakMinutes int    `mapstructure:"short_break_minutes"`
	LongBreakMinutes  int    `mapstructure:"long_break_minutes"`
	Profile           string `mapstructure:"profile"`
	AutoStart         bool   `mapstructure:"auto_start"`
	TickMillis        int    `mapstructure:"tick_millis"`
	SchedulerBuffer   int    `mapstructure:"scheduler_buffer"`
}

type StorageConfig struct {
	Type  string      `mapstructure:"type"`
	Path  string      `mapstructure:"path"`
	Redis RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	Namespace string `mapstructure:"namespace"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

type NotificationsConfig struct {
	Desktop      bool     `mapstructure:"desktop"`
	Bell         bool     `mapstructure:"bell"`
	SoundCommand []string `mapstructure:"sound_command"`
}

type MusicConfig struct {
	Player string `mapstructure:"player"`
	Binary string `mapstructure:"binary"`
	Socket string `mapstructure:"socket"`
	Launch bool   `mapstructure:"launch"`
	Volume int    `mapstructure:"volume"`
	Loop   bool   `mapstructure:"loop"`
}

type UIConfig struct {
	Theme string `mapstructure:"theme"`
}

// Load reads configPath (or the default location when empty), then POMOBUBBY_*
// environment overrides. A missing default file is not an error; a missing explicit
// file is.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	explicit := configPath != ""
	if !explicit {
		configPath = DefaultConfigPath()
	}
	v.SetConfigFile(configPath)
	v.SetEnvPrefix("POMOBUBBY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, statErr := os.Stat(configPath); statErr == nil || explicit {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", DefaultDataDir())

	v.SetDefault("timer.focus_minutes", 25)
	v.SetDefault("timer.short_break_minutes", 5)
	v.SetDefault("timer.long_break_minutes", 15)
	v.SetDefault("timer.profile", "standard")
	v.SetDefault("timer.auto_start", true)
	v.SetDefault("timer.tick_millis", 250)
	v.SetDefault("timer.scheduler_buffer", 16)

	v.SetDefault("storage.type", "sqlite")
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.redis.addr", "localhost:6379")
	v.SetDefault("storage.redis.password", "")
	v.SetDefault("storage.redis.db", 0)
	v.SetDefault("storage.redis.namespace", "default")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "")

	v.SetDefault("notifications.desktop", true)
	v.SetDefault("notifications.bell", true)
	v.SetDefault("notifications.sound_command", []string{})

	v.SetDefault("music.player", "mpv")
	v.SetDefault("music.binary", "mpv")
	v.SetDefault("music.socket", "")
	v.SetDefault("music.launch", true)
	v.SetDefault("music.volume", 60)
	v.SetDefault("music.loop", false)

	v.SetDefault("ui.theme", "auto")
}

func validate(cfg *Config) error {
	if cfg.Timer.FocusMinutes <= 0 || cfg.Timer.ShortBreakMinutes <= 0 || cfg.Timer.LongBreakMinutes <= 0 {
		return errors.New("timer durations must be positive")
	}
	if _, err := timer.ParseProfile(cfg.Timer.Profile); err != nil {
		return err
	}
	if cfg.Timer.TickMillis <= 0 || cfg.Timer.TickMillis > 1000 {
		return fmt.Errorf("timer.tick_millis must be within 1..1000, got %d", cfg.Timer.TickMillis)
	}
	if cfg.Timer.SchedulerBuffer <= 0 {
		cfg.Timer.SchedulerBuffer = 16
	}

	switch strings.ToLower(cfg.Storage.Type) {
	case "sqlite", "json", "redis":
		cfg.Storage.Type = strings.ToLower(cfg.Storage.Type)
	default:
		return fmt.Errorf("unknown storage type: %q", cfg.Storage.Type)
	}

	switch strings.ToLower(cfg.Logging.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("unknown logging format: %q", cfg.Logging.Format)
	}

	switch cfg.Music.Player {
	case "mpv", "none":
	default:
		return fmt.Errorf("unknown music player: %q", cfg.Music.Player)
	}
	if cfg.Music.Volume < 0 || cfg.Music.Volume > 100 {
		return fmt.Errorf("music.volume must be within 0..100, got %d", cfg.Music.Volume)
	}

	switch cfg.UI.Theme {
	case "auto", "dark", "light":
	default:
		return fmt.Errorf("unknown theme: %q", cfg.UI.Theme)
	}

	if cfg.DataDir == "" {
		return errors.New("data directory is required")
	}
	return nil
}

// TimerConfig converts the minute-based settings into the timer's durations.
func (c *Config) TimerConfig() timer.Config {
	out := timer.DefaultConfig()
	out.Standard = timer.Durations{
		Focus:      time.Duration(c.Timer.FocusMinutes) * time.Minute,
		ShortBreak: time.Duration(c.Timer.ShortBreakMinutes) * time.Minute,
		LongBreak:  time.Duration(c.Timer.LongBreakMinutes) * time.Minute,
	}
	out.AutoStart = c.Timer.AutoStart
	return out
}

func (c *Config) Profile() timer.Profile {
	p, err := timer.ParseProfile(c.Timer.Profile)
	if err != nil {
		return timer.ProfileStandard
	}
	return p
}

func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Timer.TickMillis) * time.Millisecond
}

// StoragePath is the configured store location, defaulting inside DataDir.
func (c *Config) StoragePath() string {
	if c.Storage.Path != "" {
		return c.Storage.Path
	}
	if c.Storage.Type == "json" {
		return filepath.Join(c.DataDir, appName+".json")
	}
	return filepath.Join(c.DataDir, appName+".db")
}

func (c *Config) LogPath() string {
	if c.Logging.File != "" {
		return c.Logging.File
	}
	return filepath.Join(c.DataDir, appName+".log")
}

func (c *Config) MusicSocket() string {
	if c.Music.Socket != "" {
		return c.Music.Socket
	}
	return filepath.Join(c.DataDir, "mpv.sock")
}

// DefaultDataDir is $XDG_DATA_HOME/pomobubby or ~/.local/share/pomobubby.
func DefaultDataDir() string {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), appName)
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, appName)
}

// DefaultConfigPath is <user config dir>/pomobubby/config.yaml.
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(DefaultDataDir(), "config.yaml")
	}
	return filepath.Join(dir, appName, "config.yaml")
}

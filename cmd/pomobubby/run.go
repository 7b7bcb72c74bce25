package main

import (
	"context"
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/pomobubby/internal/config"
	"github.com/sandeepkv93/pomobubby/internal/notify"
	"github.com/sandeepkv93/pomobubby/internal/scheduler"
	"github.com/sandeepkv93/pomobubby/internal/storage"
	"github.com/sandeepkv93/pomobubby/internal/timer"
	"github.com/sandeepkv93/pomobubby/internal/update"
	"github.com/sandeepkv93/pomobubby/internal/video"
)

var errNotTerminal = errors.New("pomobubby needs an interactive terminal; try `pomobubby status` instead")

func runTUI(cmd *cobra.Command, opts *rootOptions) error {
	if !term.IsTerminal(os.Stdin.Fd()) || !term.IsTerminal(os.Stdout.Fd()) {
		return errNotTerminal
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	e, err := opts.open(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	clock := timer.RealClock{}
	engine := scheduler.NewEngine(e.cfg.Timer.SchedulerBuffer, scheduler.WithClock(clock.Now))
	engine.Start()
	defer engine.Stop()

	player, playerName := newPlayer(e.cfg, e.log)
	defer func() {
		if err := player.Close(); err != nil {
			e.log.Warn().Err(err).Msg("failed to close player")
		}
	}()

	deps := update.Deps{
		Context:      ctx,
		Timer:        e.cfg.TimerConfig(),
		Profile:      e.cfg.Profile(),
		Clock:        clock,
		Store:        e.state,
		Scheduler:    engine,
		Player:       player,
		PlayerName:   playerName,
		Notifier:     newNotifier(e.cfg),
		Signaler:     newSignaler(e.cfg),
		Logger:       e.log,
		Theme:        e.cfg.UI.Theme,
		TickInterval: e.cfg.TickInterval(),
		Volume:       e.cfg.Music.Volume,
		Loop:         e.cfg.Music.Loop,
	}
	if w, ok := e.kv.(storage.Watcher); ok {
		deps.Watcher = w
	}

	e.log.Info().
		Str("version", version).
		Str("storage", e.cfg.Storage.Type).
		Str("profile", string(deps.Profile)).
		Str("player", playerName).
		Msg("starting pomobubby")

	program := tea.NewProgram(update.NewModel(deps), tea.WithAltScreen(), tea.WithReportFocus(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		e.log.Error().Err(err).Msg("ui exited with error")
		return err
	}
	e.log.Info().Msg("pomobubby stopped")
	return nil
}

func newPlayer(cfg *config.Config, log zerolog.Logger) (video.Player, string) {
	if cfg.Music.Player == "none" {
		return video.NoopPlayer{}, "none"
	}
	return video.NewMPVPlayer(video.MPVOptions{
		Binary: cfg.Music.Binary,
		Socket: cfg.MusicSocket(),
		Launch: cfg.Music.Launch,
	}, log), "mpv"
}

func newNotifier(cfg *config.Config) notify.Notifier {
	if !cfg.Notifications.Desktop {
		return notify.NoopNotifier{}
	}
	return notify.NewExecNotifier()
}

// newSignaler prefers the configured sound command and falls back to the bell.
func newSignaler(cfg *config.Config) notify.Signaler {
	var chain notify.FallbackSignaler
	if len(cfg.Notifications.SoundCommand) > 0 {
		chain = append(chain, notify.NewCommandSignaler(cfg.Notifications.SoundCommand))
	}
	if cfg.Notifications.Bell {
		chain = append(chain, notify.BellSignaler{})
	}
	return chain
}

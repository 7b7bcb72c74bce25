package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/pomobubby/internal/config"
	"github.com/sandeepkv93/pomobubby/internal/logging"
	"github.com/sandeepkv93/pomobubby/internal/storage"
)

type rootOptions struct {
	configPath string
	dataDir    string
	storage    string
	dev        bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "pomobubby",
		Short: "Pomodoro timer, kanban board and focus music in one terminal",
		Long: `PomoBubby runs a pomodoro timer next to a three-column task board and a
background music player. Without a subcommand it starts the interactive UI.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, opts)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file (default <config dir>/pomobubby/config.yaml)")
	flags.StringVar(&opts.dataDir, "data-dir", "", "Directory for the store and log file")
	flags.StringVar(&opts.storage, "storage", "", "Storage backend: sqlite, json or redis")
	flags.BoolVar(&opts.dev, "dev", false, "Start with the accelerated developer timings")

	cmd.AddCommand(
		newStatusCmd(opts),
		newExportCmd(opts),
		newTasksCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// loadConfig reads the config file and environment, then applies flag overrides.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.dataDir != "" {
		cfg.DataDir = o.dataDir
	}
	if o.storage != "" {
		switch o.storage {
		case storage.BackendSQLite, storage.BackendJSON, storage.BackendRedis:
			cfg.Storage.Type = o.storage
		default:
			return nil, fmt.Errorf("unknown storage type: %q", o.storage)
		}
	}
	if o.dev {
		cfg.Timer.Profile = "dev"
	}
	return cfg, nil
}

// env is everything a command needs once config, logging and storage are up.
type env struct {
	cfg     *config.Config
	log     zerolog.Logger
	kv      storage.KV
	state   *storage.State
	closers []io.Closer
}

func (o *rootOptions) open(ctx context.Context) (*env, error) {
	cfg, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	log, logCloser, err := logging.Open(cfg.LogPath(), cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, err
	}
	kv, err := storage.Open(ctx, storage.Options{
		Backend: cfg.Storage.Type,
		Path:    cfg.StoragePath(),
		Redis: storage.RedisOptions{
			Addr:      cfg.Storage.Redis.Addr,
			Password:  cfg.Storage.Redis.Password,
			DB:        cfg.Storage.Redis.DB,
			Namespace: cfg.Storage.Redis.Namespace,
		},
	})
	if err != nil {
		log.Error().Err(err).Str("backend", cfg.Storage.Type).Msg("failed to open store")
		logCloser.Close()
		return nil, fmt.Errorf("open %s store: %w", cfg.Storage.Type, err)
	}
	log.Debug().Str("backend", cfg.Storage.Type).Str("path", cfg.StoragePath()).Msg("store opened")
	return &env{
		cfg:     cfg,
		log:     log,
		kv:      kv,
		state:   storage.NewState(kv, log),
		closers: []io.Closer{kv, logCloser},
	}, nil
}

func (e *env) Close() {
	for _, c := range e.closers {
		if err := c.Close(); err != nil {
			e.log.Warn().Err(err).Msg("close failed")
		}
	}
}

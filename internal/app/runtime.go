package app

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/hielopolar/polar/internal/assetsync"
	"github.com/hielopolar/polar/internal/config"
	"github.com/hielopolar/polar/internal/logging"
	"github.com/hielopolar/polar/internal/mirror"
	"github.com/hielopolar/polar/internal/notify"
	"github.com/hielopolar/polar/internal/remote"
	"github.com/hielopolar/polar/internal/state"
)

// Runtime holds the components every entry point shares.
type Runtime struct {
	Config  config.Config
	Logger  *zap.Logger
	Mirror  *mirror.Mirror
	Service *assetsync.Service
	Notices *notify.Queue
	Store   *state.Store
}

// Open loads configuration and wires the mirror, the optional remote store,
// the sync service and the state store. The store is not loaded yet.
func Open(configPath string) (*Runtime, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return OpenConfig(cfg)
}

// OpenConfig is Open with an already resolved configuration.
func OpenConfig(cfg config.Config) (*Runtime, error) {
	logger, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	backend, err := mirror.Open(cfg.MirrorBackend, cfg.DataDir)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("open mirror: %w", err)
	}
	m := mirror.New(backend, logger)

	var upstream remote.Store
	if cfg.Remote.Enabled() {
		client, err := remote.NewClient(cfg.Remote.URL, cfg.Remote.APIKey, cfg.Remote.Table)
		if err != nil {
			_ = m.Close()
			_ = logger.Sync()
			return nil, fmt.Errorf("init remote client: %w", err)
		}
		upstream = client
	}

	svc := assetsync.New(m, assetsync.Options{
		Key:      cfg.MirrorKey,
		SeedFile: cfg.SeedFile,
		Remote:   upstream,
		Logger:   logger,
	})

	queue := notify.NewQueue(0)
	store := state.New(svc, state.Options{
		Sink:   notify.Multi{queue, notify.LogSink{Logger: logger}},
		Logger: logger,
	})

	logger.Info("runtime ready",
		zap.String("mirror_backend", cfg.MirrorBackend),
		zap.String("data_dir", cfg.DataDir),
		zap.Bool("remote", upstream != nil),
	)
	return &Runtime{
		Config:  cfg,
		Logger:  logger,
		Mirror:  m,
		Service: svc,
		Notices: queue,
		Store:   store,
	}, nil
}

// InitialPull merges the remote store once, bounded by timeout. Without a
// remote store it does nothing.
func (r *Runtime) InitialPull(ctx context.Context, timeout time.Duration) error {
	if !r.Service.HasRemote() {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := r.Store.Pull(ctx); err != nil {
		r.Notices.Notify(notify.New(notify.Error, "Error", "No se pudo sincronizar con la base de datos remota."))
		return err
	}
	return nil
}

// Close drains pending remote writes and releases the mirror.
func (r *Runtime) Close() error {
	r.Store.Close()
	err := r.Mirror.Close()
	_ = r.Logger.Sync()
	return err
}

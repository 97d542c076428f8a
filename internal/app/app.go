package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hielopolar/polar/internal/prefs"
	"github.com/hielopolar/polar/internal/ui"
)

// Options configure the console.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/polar/prefs.toml
	PullEvery  int    // seconds; zero keeps the configured value
}

// Run boots the console until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	rt, err := Open(opts.ConfigPath)
	if err != nil {
		return err
	}
	defer rt.Close()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}
	userPrefs, err := prefs.Load(prefsPath)
	if err != nil {
		rt.Logger.Warn("prefs unavailable, using defaults", zap.String("path", prefsPath), zap.Error(err))
	}

	rt.Store.Load()

	if rt.Config.Remote.PullOnStart {
		if err := rt.InitialPull(ctx, defaultPullTimeout); err != nil {
			rt.Logger.Warn("initial pull failed", zap.Error(err))
		}
	}

	interval := rt.Config.Remote.PullEvery
	if opts.PullEvery > 0 {
		interval = time.Duration(opts.PullEvery) * time.Second
	}
	pollCtx, stopPoller := context.WithCancel(ctx)
	var pollerDone <-chan struct{}
	if rt.Service.HasRemote() {
		pollerDone = StartPoller(pollCtx, rt.Store, interval, rt.Logger)
	}
	defer func() {
		stopPoller()
		if pollerDone != nil {
			<-pollerDone
		}
	}()

	return ui.Run(ui.Options{
		Context:      ctx,
		Store:        rt.Store,
		Notices:      rt.Notices.C(),
		LogPath:      rt.Config.LogFile,
		ThemeName:    userPrefs.Theme,
		StatusFilter: userPrefs.StatusFilter,
		PrefsPath:    prefsPath,
		Remote:       rt.Service.HasRemote(),
		Logger:       rt.Logger,
	})
}

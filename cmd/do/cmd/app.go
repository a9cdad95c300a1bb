package cmd

import (
	"context"
	"time"

	"github.com/objectifs/objectifs/internal/app"
	"github.com/objectifs/objectifs/internal/config"
	"github.com/objectifs/objectifs/internal/logger"
)

// withApp loads the environment configuration, opens the migrated database
// and hands the wired application to fn.
func withApp(ctx context.Context, fn func(a *app.App) error) error {
	cfg := config.Load()
	logger.Init(cfg.IsDevelopment(), cfg.SentryDSN)
	defer logger.Flush(2 * time.Second)

	a, err := app.New(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	return fn(a)
}

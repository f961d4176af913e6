// cmd/pixisphere/serve.go
package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"pixisphere/internal/common/config"
	"pixisphere/internal/common/logger"
	"pixisphere/internal/common/notify"
	"pixisphere/internal/common/observability"
	"pixisphere/internal/dataclient"
	"pixisphere/internal/debounce"
	"pixisphere/internal/search"
	"pixisphere/internal/searchbar"
	"pixisphere/internal/server"
	"pixisphere/internal/store"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			zapLog, log, err := newLogger(cfg.Logging)
			if err != nil {
				return err
			}
			defer zapLog.Sync()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, cfg, zapLog, log)
		},
	}
}

func runServe(ctx context.Context, cfg *config.Config, zapLog *zap.Logger, log logger.Logger) error {
	zapLog.Info("starting pixisphere",
		zap.String("environment", cfg.App.Environment),
		zap.String("collection", cfg.API.CollectionURL()),
	)

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		zapLog.Warn("observability disabled", zap.Error(err))
		obs = observability.NewNoop()
	}
	defer obs.Shutdown()

	matcher, err := search.New(cfg.Search.Engine, cfg.Search.Threshold)
	if err != nil {
		return err
	}

	api := dataclient.NewClient(cfg.API, log, dataclient.WithTracer(obs.Tracer()))
	st := store.New(api, matcher, log,
		store.WithFeaturedCount(cfg.Search.FeaturedCount),
		store.WithObservability(obs),
	)

	if cfg.Notifications.Redis.Enabled {
		pub, err := connectPublisher(ctx, cfg.Notifications.Redis, zapLog)
		if err != nil {
			return err
		}
		defer pub.Close()
		unsubscribe := st.Subscribe(pub.Subscriber(ctx, log))
		defer unsubscribe()
	}

	broker := server.NewBroker()
	sb := searchbar.New(st, log,
		searchbar.WithClock(debounce.RealClock{}),
		searchbar.WithDelay(config.GetDuration(cfg.Search.DebounceMs)),
		searchbar.WithOnChange(broker.QueryChanged),
		searchbar.WithContext(ctx),
	)
	defer sb.Stop()

	srv := server.New(cfg, server.Deps{
		Store:     st,
		SearchBar: sb,
		Fetcher:   api,
		Broker:    broker,
	}, log)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		st.Load(gctx, "")
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server stopped: %w", err)
	}
	zapLog.Info("pixisphere stopped")
	return nil
}

// connectPublisher pings Redis with exponential backoff before giving up.
func connectPublisher(ctx context.Context, cfg config.RedisConfig, zapLog *zap.Logger) (*notify.RedisPublisher, error) {
	pub := notify.NewRedisPublisher(cfg)
	delay := 500 * time.Millisecond
	const maxRetries = 5

	var err error
	for i := 0; i < maxRetries; i++ {
		if err = pub.Ping(ctx); err == nil {
			zapLog.Info("redis publisher connected", zap.String("channel", pub.Channel()))
			return pub, nil
		}
		if i == maxRetries-1 {
			break
		}
		zapLog.Warn("redis ping failed, retrying",
			zap.Error(err),
			zap.Int("attempt", i+1),
			zap.Duration("nextRetryIn", delay),
		)
		select {
		case <-ctx.Done():
			_ = pub.Close()
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	_ = pub.Close()
	return nil, fmt.Errorf("redis publisher failed after %d attempts: %w", maxRetries, err)
}

package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/sync/errgroup"

	"github.com/mine-games/mine/internal/cache/cachelru"
	"github.com/mine-games/mine/internal/database"
	roomDb "github.com/mine-games/mine/internal/database/room/database"
	roundDb "github.com/mine-games/mine/internal/database/round/database"
	"github.com/mine-games/mine/internal/logging"
	"github.com/mine-games/mine/internal/mine"
	"github.com/mine-games/mine/internal/mine/pubsub"
	"github.com/mine-games/mine/internal/server"
	"github.com/mine-games/mine/internal/shutdown"
)

func main() {
	ctx, done := shutdown.New()
	defer done()

	logger := logging.FromContext(ctx)
	if err := realMain(ctx); err != nil {
		logger.Fatalf("main.realMain: %v", err)
	}
}

func realMain(ctx context.Context) error {
	logger := logging.FromContext(ctx)

	config := mine.Config{}
	if err := envconfig.Process("", &config); err != nil {
		return fmt.Errorf("processing the config: %w", err)
	}

	ctx = logging.WithLogger(ctx, logging.NewLogger(config.Debug))

	db, err := database.NewFromEnv(ctx, &config.Db)
	if err != nil {
		return fmt.Errorf("new database from env: %w", err)
	}
	defer db.Close(ctx)

	roomCache, err := cachelru.NewLRU(config.CacheSize)
	if err != nil {
		return fmt.Errorf("can not create lru cache: %w", err)
	}

	srv, err := server.New(config.Port)
	if err != nil {
		return fmt.Errorf("server.New: %w", err)
	}

	mux := http.NewServeMux()
	mux.Handle("/health", server.HandleHealth(ctx))

	hub := pubsub.NewHub()
	hub.Run(ctx)

	manager := mine.NewManager(&config, roomDb.New(db, roomCache), roundDb.New(db), hub)

	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return srv.ServeHTTP(ctx, &http.Server{Handler: mux})
	})
	group.Go(func() error {
		return http.ListenAndServe(":"+config.ProfPort, nil)
	})
	group.Go(func() error {
		return manager.Run(ctx)
	})

	_, _ = fmt.Fprintf(os.Stdout, "mine server is up, health on :%s\n", config.Port)

	if err := group.Wait(); err != nil {
		return fmt.Errorf("run: %w", err)
	}

	logger.Infof("server stopped")
	return nil
}

package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/yt-feed/internal/api"
	"github.com/yt-feed/internal/config"
	"github.com/yt-feed/internal/feed"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		slog.Warn(".env file not found")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fetcher, err := newFetcher(ctx, cfg)
	if err != nil {
		logger.Error("failed to initialize YouTube client", slog.Any("error", err))
		os.Exit(1)
	}

	view := feed.NewView(fetcher, feed.WithLogger(logger))
	view.Select(ctx, cfg.DefaultCategory)

	server := api.NewServer(cfg, view, fetcher, logger)
	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server starting",
			slog.String("port", cfg.Port),
			slog.String("client", cfg.YouTubeClient),
		)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

func newFetcher(ctx context.Context, cfg *config.Config) (feed.Fetcher, error) {
	if cfg.YouTubeClient == config.ClientSDK {
		// The generated client wants the API root, not the /youtube/v3 base.
		endpoint := ""
		if cfg.YouTubeAPIBaseURL != "" {
			endpoint = strings.TrimSuffix(strings.TrimRight(cfg.YouTubeAPIBaseURL, "/"), "/youtube/v3") + "/"
		}
		return api.NewYouTubeAPI(ctx, cfg.YouTubeAPIKey, endpoint)
	}
	return api.NewYouTubeClient(cfg.YouTubeAPIKey, api.WithBaseURL(cfg.YouTubeAPIBaseURL)), nil
}

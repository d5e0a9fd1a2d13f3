package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MikeSquared-Agency/synthpanel/internal/api"
	"github.com/MikeSquared-Agency/synthpanel/internal/backend"
	"github.com/MikeSquared-Agency/synthpanel/internal/chat"
	"github.com/MikeSquared-Agency/synthpanel/internal/config"
	"github.com/MikeSquared-Agency/synthpanel/internal/evaluator"
	"github.com/MikeSquared-Agency/synthpanel/internal/hermes"
	"github.com/MikeSquared-Agency/synthpanel/internal/processor"
	"github.com/MikeSquared-Agency/synthpanel/internal/store"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("synthpanel starting", "port", cfg.Port, "store", cfg.StoreBackend)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Store
	kv, err := openStore(ctx, cfg)
	if err != nil {
		slog.Error("failed to open store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer kv.Close()
	docs := store.NewDocuments(kv)
	slog.Info("store ready", "backend", cfg.StoreBackend)

	// NATS/Hermes (optional; events are dropped without it)
	var events hermes.Publisher = hermes.Nop{}
	var hermesClient *hermes.Client
	if cfg.NatsURL != "" {
		hermesClient, err = hermes.NewClient(ctx, cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer hermesClient.Close()
		events = hermesClient
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS not configured, lifecycle events disabled")
	}

	// Evaluation pipeline
	eval := evaluator.New(evaluator.Config{
		DelayMin: cfg.EvalDelayMin,
		DelayMax: cfg.EvalDelayMax,
		Seed:     cfg.Seed,
	}, slog.Default())
	proc := processor.New(eval, docs, events, slog.Default())

	if hermesClient != nil {
		if err := hermesClient.Subscribe(hermes.SubjectEvaluationRequested, proc.HandleEvaluationRequested); err != nil {
			slog.Error("failed to subscribe to evaluation requests", "error", err)
			os.Exit(1)
		}
	}

	// Interview chat
	remote := backend.NewClient(cfg.BackendURL, cfg.BackendToken, cfg.BackendTimeout)
	responder := chat.NewResponder(remote, chat.ResponderConfig{
		RemoteEnabled:   cfg.RemoteChatEnabled,
		HealthTimeout:   cfg.HealthTimeout,
		TypingDelayMin:  cfg.TypingDelayMin,
		TypingDelayMax:  cfg.TypingDelayMax,
		CreativityLevel: cfg.CreativityLevel,
		Seed:            cfg.Seed,
	}, slog.Default())
	if cfg.RemoteChatEnabled {
		if responder.CheckHealth(ctx) {
			slog.Info("remote chat backend reachable", "url", cfg.BackendURL)
		} else {
			slog.Warn("remote chat backend unreachable, chat starts in static mode", "url", cfg.BackendURL)
		}
		if cfg.HealthCheckInterval > 0 {
			go responder.MonitorHealth(ctx, cfg.HealthCheckInterval)
		}
	} else {
		slog.Info("remote chat disabled, chat runs in static mode")
	}
	chats := chat.NewManager(responder, docs, events, slog.Default())

	// HTTP API
	opts := api.Options{
		Port:           cfg.Port,
		APIToken:       cfg.APIToken,
		AllowedOrigins: cfg.AllowedOrigins,
	}
	if hermesClient != nil {
		opts.EventsConnected = hermesClient.Connected
	}
	srv := api.NewServer(opts, proc, chats, slog.Default())
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
			cancel()
		}
	}()

	slog.Info("synthpanel ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
	case <-ctx.Done():
	}
	slog.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	chats.CloseAll(shutdownCtx)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Warn("HTTP shutdown failed", "error", err)
	}
	if err := proc.Shutdown(shutdownCtx); err != nil {
		slog.Warn("background evaluations did not finish", "error", err)
	}
	cancel()
	slog.Info("synthpanel stopped")
}

func openStore(ctx context.Context, cfg config.Config) (store.KV, error) {
	switch cfg.StoreBackend {
	case "memory", "":
		return store.NewMemoryKV(), nil
	case "redis":
		return store.OpenRedis(ctx, cfg.RedisURL, cfg.RedisTTL)
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
		pg, err := store.NewPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, err
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			pg.Close()
			return nil, err
		}
		return pg, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}

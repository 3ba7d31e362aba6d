package main

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/signalcraft/outreach/internal/api"
	"github.com/signalcraft/outreach/internal/config"
	"github.com/signalcraft/outreach/internal/events"
	"github.com/signalcraft/outreach/internal/outcome"
	"github.com/signalcraft/outreach/internal/pipeline"
	"github.com/signalcraft/outreach/internal/poller"
	"github.com/signalcraft/outreach/internal/store"
	"github.com/signalcraft/outreach/internal/subject"
	"github.com/signalcraft/outreach/internal/textgen"
	"github.com/signalcraft/outreach/internal/triggers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("outreach starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	if cfg.DatabaseURL == "" {
		slog.Error("DATABASE_URL is required")
		os.Exit(1)
	}
	db, err := store.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	slog.Info("database connected")

	// Generation client with bounded retry
	if cfg.AnthropicAPIKey == "" {
		slog.Error("ANTHROPIC_API_KEY is required")
		os.Exit(1)
	}
	gen := textgen.NewRetrying(
		textgen.NewClient(cfg.AnthropicAPIKey, cfg.Model),
		cfg.GenMaxAttempts,
		time.Duration(cfg.GenBaseDelayMS)*time.Millisecond,
		time.Duration(cfg.GenTimeoutSec)*time.Second,
		slog.Default(),
	)
	slog.Info("generation client ready", "model", cfg.Model)

	// Template bank and seedable RNG for trigger rendering
	bank, err := triggers.BankFromFile(cfg.TemplatesPath)
	if err != nil {
		slog.Error("failed to load template bank", "error", err)
		os.Exit(1)
	}
	seed := cfg.RandomSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	selector := triggers.NewSelector(bank, rand.New(rand.NewSource(seed)))

	// Engine components
	tracker := outcome.NewTracker(db, slog.Default())
	optimizer := subject.NewOptimizer(gen, db, slog.Default())
	runner := pipeline.NewRunner(
		pipeline.PayloadProvider{},
		pipeline.PayloadAnalyzer{},
		selector,
		optimizer,
		db,
		tracker,
		slog.Default(),
	)

	// NATS
	nc, err := events.NewClient(cfg.NatsURL, cfg.NatsToken, slog.Default())
	if err != nil {
		slog.Error("failed to connect to NATS", "error", err)
		os.Exit(1)
	}
	defer nc.Close()
	slog.Info("NATS connected", "url", cfg.NatsURL)

	// Push-delivered outcome events
	if err := nc.Subscribe(events.SubjectOutcomeEvent, func(_ string, data []byte) {
		var payload outcome.EventPayload
		if err := json.Unmarshal(data, &payload); err != nil {
			slog.Error("failed to parse outcome event", "error", err)
			return
		}
		ev, err := payload.Event()
		if err != nil {
			slog.Error("invalid outcome event", "error", err)
			return
		}
		if err := tracker.Ingest(context.Background(), ev); err != nil {
			slog.Error("event ingestion failed", "message_id", ev.MessageID, "error", err)
		}
	}); err != nil {
		slog.Error("failed to subscribe to outcome events", "error", err)
		os.Exit(1)
	}

	// Queued pipeline targets
	if err := nc.Subscribe(events.SubjectTargetQueued, func(_ string, data []byte) {
		var target pipeline.Target
		if err := json.Unmarshal(data, &target); err != nil {
			slog.Error("failed to parse target", "error", err)
			return
		}
		result := runner.RunUnit(context.Background(), target)
		if err := nc.Publish(events.SubjectUnitCompleted, result); err != nil {
			slog.Error("failed to publish unit result", "error", err)
		}
	}); err != nil {
		slog.Error("failed to subscribe to queued targets", "error", err)
		os.Exit(1)
	}

	// Pull-mode outcome polling (optional)
	var outcomePoller *poller.Poller
	if cfg.OutcomeSourceURL != "" {
		outcomePoller = poller.New(poller.NewHTTPSource(cfg.OutcomeSourceURL), tracker, slog.Default())
		if err := outcomePoller.Start(cfg.PollCron); err != nil {
			slog.Error("failed to start outcome poller", "error", err)
			os.Exit(1)
		}
	} else {
		slog.Warn("no outcome source configured, pull-mode polling disabled")
	}

	// HTTP API
	srv := api.NewServer(cfg.Port, tracker, runner, db, cfg.Workers, slog.Default())
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	slog.Info("outreach ready", "port", cfg.Port, "workers", cfg.Workers)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	if outcomePoller != nil {
		outcomePoller.Stop()
	}
	cancel()
	slog.Info("outreach stopped")
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

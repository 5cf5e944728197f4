package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/easycod/platform/internal/domain"
	"github.com/easycod/platform/internal/infra"
	"github.com/easycod/platform/internal/repository"
)

// The analytics consumer reads tracked pixel events off the audit topic and
// folds them into daily per-shop counters for the dashboard report. It never
// talks to ad platforms: delivery already happened, fire-and-forget, at
// dispatch time.
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("analytics consumer failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := infra.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pool, err := infra.NewPostgresPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()
	logger.Info("analytics-consumer connected to postgres")

	consumer := infra.NewKafkaConsumer(cfg.KafkaBrokers, infra.TopicFor("pixel"), "easycod-analytics", cfg.KafkaEnabled, logger)
	defer consumer.Close()
	if !consumer.Enabled() {
		return fmt.Errorf("KAFKA_ENABLED must be true for the analytics consumer")
	}

	stats := repository.NewStatsRepository()
	logger.Info("analytics-consumer starting")

	for {
		msg, err := consumer.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				logger.Info("analytics-consumer shutting down")
				return nil
			}
			logger.Error("read message failed", "error", err)
			continue
		}

		if err := handleMessage(ctx, pool, stats, msg.Value); err != nil {
			logger.Error("handle message failed", "error", err)
		}
	}
}

// trackedEvent is the envelope the outbox poller publishes.
type trackedEvent struct {
	EventType string `json:"event_type"`
	Payload   struct {
		Shop  string                `json:"shop"`
		Event domain.CanonicalEvent `json:"event"`
	} `json:"payload"`
}

func handleMessage(ctx context.Context, db repository.DBTX, stats repository.StatsRepository, raw []byte) error {
	var evt trackedEvent
	if err := json.Unmarshal(raw, &evt); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}
	if evt.Payload.Shop == "" || evt.Payload.Event == "" {
		// Not a pixel tracked event; topic filtering already narrows this.
		return nil
	}
	return stats.IncrementDaily(ctx, db, evt.Payload.Shop, string(evt.Payload.Event))
}

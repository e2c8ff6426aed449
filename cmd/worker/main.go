package main

import (
	"context"
	"encoding/json"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MrsLondon/vivahub-api/config"
	"github.com/MrsLondon/vivahub-api/internal/email"
	"github.com/MrsLondon/vivahub-api/internal/model"
	"github.com/MrsLondon/vivahub-api/internal/repository"
	"github.com/MrsLondon/vivahub-api/internal/repository/postgres"
	"github.com/MrsLondon/vivahub-api/pkg/logger"
	"github.com/MrsLondon/vivahub-api/pkg/messaging"
	"github.com/MrsLondon/vivahub-api/pkg/messaging/redis"
	"github.com/MrsLondon/vivahub-api/pkg/metrics"
	"github.com/MrsLondon/vivahub-api/pkg/worker"
)

// The worker drains the transactional outbox onto the broker and consumes
// the broker channels to send the customer-facing emails.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	appLogger := logger.NewLogger(nil)
	appMetrics := metrics.NewMetrics("vivahub_worker")

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	outboxRepo := postgres.NewOutboxRepository(postgres.NewBaseRepository(db))

	broker, err := redis.NewRedisBroker(redis.Config{
		URL:          cfg.Redis.URL,
		MaxRetries:   cfg.Redis.MaxRetries,
		RetryBackoff: cfg.Redis.RetryBackoff,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	}, appLogger.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to Redis")
	}
	defer broker.Close()

	emailSvc := email.NewSMTPService(cfg.SMTP)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	processor := worker.NewOutboxProcessor(outboxRepo, broker, worker.OutboxProcessorConfig{
		BatchSize:     cfg.Outbox.BatchSize,
		PollInterval:  cfg.Outbox.PollInterval,
		RetryAttempts: cfg.Outbox.RetryAttempts,
		RetryDelay:    cfg.Outbox.RetryDelay,
	}, appLogger, appMetrics)
	go processor.Start(ctx)
	go sweepProcessedEvents(ctx, outboxRepo, appLogger)

	consumer := &eventConsumer{broker: broker, emails: emailSvc, logger: appLogger}
	for _, channel := range []string{model.EventBookingCreated, model.EventBookingCancelled, model.EventUserRegistered, model.EventPasswordReset} {
		if err := consumer.consume(ctx, channel); err != nil {
			log.Fatal().Err(err).Str("channel", channel).Msg("failed to subscribe")
		}
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down worker...")
}

// Processed events only matter for debugging; keep a week of history.
const outboxRetention = 7 * 24 * time.Hour

func sweepProcessedEvents(ctx context.Context, repo repository.OutboxRepository, log *logger.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			deleted, err := repo.DeleteProcessedBefore(ctx, time.Now().Add(-outboxRetention))
			if err != nil {
				log.Error(err, "failed to sweep processed events")
				continue
			}
			if deleted > 0 {
				log.Info("swept processed outbox events", "deleted", deleted)
			}
		}
	}
}

type eventConsumer struct {
	broker messaging.Broker
	emails email.Service
	logger *logger.Logger
}

func (c *eventConsumer) consume(ctx context.Context, channel string) error {
	messages, err := c.broker.Subscribe(ctx, channel)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			if err := c.handle(ctx, channel, msg); err != nil {
				c.logger.Error(err, "failed to handle event", "channel", channel)
			}
		}
	}()
	return nil
}

func (c *eventConsumer) handle(ctx context.Context, channel string, msg []byte) error {
	switch channel {
	case model.EventBookingCreated:
		var payload model.BookingEventPayload
		if err := json.Unmarshal(msg, &payload); err != nil {
			return err
		}
		return c.emails.SendBookingConfirmation(ctx, &payload)
	case model.EventBookingCancelled:
		var payload model.BookingEventPayload
		if err := json.Unmarshal(msg, &payload); err != nil {
			return err
		}
		return c.emails.SendBookingCancellation(ctx, &payload)
	case model.EventUserRegistered:
		var payload struct {
			Email string `json:"email"`
			Name  string `json:"name"`
		}
		if err := json.Unmarshal(msg, &payload); err != nil {
			return err
		}
		return c.emails.SendWelcome(ctx, payload.Email, payload.Name)
	case model.EventPasswordReset:
		var payload struct {
			Email string `json:"email"`
			Name  string `json:"name"`
			Token string `json:"token"`
		}
		if err := json.Unmarshal(msg, &payload); err != nil {
			return err
		}
		return c.emails.SendPasswordReset(ctx, payload.Email, payload.Name, payload.Token)
	}
	return nil
}

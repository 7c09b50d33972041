package producer

import (
	"context"
	"time"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/messaging/kafka"

	"go.uber.org/zap"
)

const (
	outboxBatchSize      = 50
	defaultPollInterval  = 3 * time.Second
	defaultSentRetention = 72 * time.Hour
	purgeEveryNTicks     = 200
)

// Relay moves committed outbox rows (payroll_run_requested, payroll_run_completed)
// onto Kafka.
type Relay struct {
	repo          kafka.OutboxRepository
	writer        MessageWriter
	log           *zap.Logger
	pollInterval  time.Duration
	sentRetention time.Duration
	now           func() time.Time
}

type RelayOptions struct {
	PollInterval  time.Duration
	SentRetention time.Duration
}

func NewRelay(repo kafka.OutboxRepository, writer MessageWriter, opts RelayOptions, logger *zap.Logger) *Relay {
	if logger == nil {
		logger = zap.L()
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	if opts.SentRetention <= 0 {
		opts.SentRetention = defaultSentRetention
	}
	return &Relay{
		repo:          repo,
		writer:        writer,
		log:           logger.Named("kafka.producer.relay"),
		pollInterval:  opts.PollInterval,
		sentRetention: opts.SentRetention,
		now:           time.Now,
	}
}

// Run polls until ctx is done. Failed publishes are retried by a later claim
// once their backoff has passed.
func (r *Relay) Run(ctx context.Context) {
	ticker := time.NewTicker(r.pollInterval)
	defer ticker.Stop()

	r.log.Info("outbox relay started", zap.Duration("poll_interval", r.pollInterval))

	ticks := 0
	for {
		select {
		case <-ctx.Done():
			r.log.Info("outbox relay stopped")
			return
		case <-ticker.C:
			if _, err := r.relayBatch(ctx); err != nil {
				r.log.Error("relay outbox batch failed", zap.Error(err))
			}
			ticks++
			if ticks%purgeEveryNTicks == 0 {
				r.purge(ctx)
			}
		}
	}
}

// relayBatch returns the number of events published.
func (r *Relay) relayBatch(ctx context.Context) (int, error) {
	pending, err := r.repo.ClaimPending(ctx, outboxBatchSize)
	if err != nil {
		return 0, err
	}
	if len(pending) == 0 {
		return 0, nil
	}

	r.log.Debug("relaying outbox events", zap.Int("count", len(pending)))

	sent := 0
	for _, event := range pending {
		fields := []zap.Field{
			zap.String("outbox_id", event.ID),
			zap.String("event_type", event.EventType),
			zap.String("topic", event.Topic),
		}

		if err := publishEvent(ctx, r.writer, event); err != nil {
			r.log.Error("publish outbox event failed", append(fields, zap.Int("attempt", event.RetryCount+1), zap.Error(err))...)
			if event.RetryCount+1 >= kafka.MaxOutboxAttempts {
				r.log.Warn("outbox event dead-lettered", fields...)
			}
			if markErr := r.repo.MarkFailed(ctx, event.ID, err.Error()); markErr != nil {
				r.log.Error("record outbox failure failed", append(fields, zap.Error(markErr))...)
			}
			continue
		}

		if err := r.repo.MarkSent(ctx, event.ID); err != nil {
			r.log.Error("mark outbox sent failed", append(fields, zap.Error(err))...)
			continue
		}
		sent++
		r.log.Info("outbox event sent", fields...)
	}

	return sent, nil
}

func (r *Relay) purge(ctx context.Context) {
	n, err := r.repo.PurgeSent(ctx, r.now().Add(-r.sentRetention))
	if err != nil {
		r.log.Error("purge sent outbox events failed", zap.Error(err))
		return
	}
	if n > 0 {
		r.log.Info("purged sent outbox events", zap.Int64("count", n))
	}
}

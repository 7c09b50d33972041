// Package activitylog records who did what to payroll data. Recording is fire and
// forget: callers never wait on storage and never see its errors.
package activitylog

import (
	"context"
	"sync"
	"time"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/contextutil"

	"go.uber.org/zap"
)

type Entry struct {
	OrganizationID string         `json:"organization_id"`
	ActorID        string         `json:"actor_id"`
	Action         string         `json:"action"`
	EntityType     string         `json:"entity_type"`
	EntityID       string         `json:"entity_id"`
	Message        string         `json:"message"`
	Meta           map[string]any `json:"meta,omitempty"`
	RequestID      string         `json:"request_id,omitempty"`
	OccurredAt     time.Time      `json:"occurred_at"`
}

type Sink interface {
	Record(ctx context.Context, entry Entry)
}

// Writer persists a single entry somewhere durable.
type Writer interface {
	Write(ctx context.Context, entry Entry) error
}

type nopSink struct{}

func (nopSink) Record(context.Context, Entry) {}

func NewNopSink() Sink {
	return nopSink{}
}

// AsyncSink queues entries in memory and hands them to its writers on a
// background goroutine. A full queue drops the entry with a warning.
type AsyncSink struct {
	writers []Writer
	queue   chan Entry
	logger  *zap.Logger

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewAsyncSink(buffer int, logger *zap.Logger, writers ...Writer) *AsyncSink {
	if buffer <= 0 {
		buffer = 256
	}
	if logger == nil {
		logger = zap.L()
	}
	s := &AsyncSink{
		writers: writers,
		queue:   make(chan Entry, buffer),
		logger:  logger.Named("activitylog"),
		done:    make(chan struct{}),
	}
	go s.run()
	return s
}

func (s *AsyncSink) Record(ctx context.Context, entry Entry) {
	if entry.OccurredAt.IsZero() {
		entry.OccurredAt = time.Now().UTC()
	}
	if entry.RequestID == "" && ctx != nil {
		entry.RequestID = contextutil.GetRequestID(ctx)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		s.logger.Warn("activity log closed, dropping entry", zap.String("action", entry.Action))
		return
	}

	select {
	case s.queue <- entry:
	default:
		s.logger.Warn("activity log buffer full, dropping entry",
			zap.String("action", entry.Action),
			zap.String("entity_id", entry.EntityID),
		)
	}
}

// Close stops accepting entries and waits until queued ones are written or ctx ends.
func (s *AsyncSink) Close(ctx context.Context) error {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.queue)
	}
	s.mu.Unlock()

	select {
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *AsyncSink) run() {
	defer close(s.done)
	for entry := range s.queue {
		for _, w := range s.writers {
			if err := w.Write(context.Background(), entry); err != nil {
				s.logger.Warn("write activity entry failed",
					zap.String("action", entry.Action),
					zap.String("entity_id", entry.EntityID),
					zap.Error(err),
				)
			}
		}
	}
}

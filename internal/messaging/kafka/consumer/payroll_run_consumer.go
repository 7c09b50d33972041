package consumer

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/events"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/payroll"
	payrollerrors "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/payroll/errors"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the part of *kafkago.Reader the consumers use.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumePayrollRunRequested processes runs queued with ?async=true. A message is
// committed once handled or once retrying cannot help; any other failure leaves
// it uncommitted so the group redelivers it.
func ConsumePayrollRunRequested(
	ctx context.Context,
	reader MessageReader,
	payrollService payroll.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payroll_run")
	log.Info("payroll run consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll run consumer stopped")
				return
			}
			log.Error("fetch payroll run message failed", zap.Error(err))
			continue
		}

		var event events.PayrollRunRequestedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payroll run event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		msgCtx := ctx
		if requestID := headerValue(msg, "request_id"); requestID != "" {
			msgCtx = contextutil.WithRequestID(ctx, requestID)
		}

		resp, err := payrollService.Process(msgCtx, event.OrganizationID, event.RequestedBy, event.RunID, false)
		if err != nil {
			fields := []zap.Field{
				zap.String("payroll_run_id", event.RunID),
				zap.String("organization_id", event.OrganizationID),
				zap.Error(err),
			}
			if !retryable(err) {
				log.Warn("payroll run request dropped", fields...)
				_ = reader.CommitMessages(ctx, msg)
				continue
			}
			log.Error("process payroll run failed", fields...)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payroll run message failed", zap.Error(err))
			continue
		}

		log.Info("payroll run processed from queue",
			zap.String("payroll_run_id", event.RunID),
			zap.String("organization_id", event.OrganizationID),
			zap.Int("processed", resp.ProcessedEmployees),
			zap.Int("failed", resp.FailedEmployeesCount),
		)
	}
}

// retryable is false when a redelivery would fail the same way.
func retryable(err error) bool {
	switch {
	case errors.Is(err, payrollerrors.ErrRunInProgress),
		errors.Is(err, payrollerrors.ErrRunNotProcessable),
		errors.Is(err, payrollerrors.ErrPayrollRunNotFound),
		errors.Is(err, payrollerrors.ErrInvalidActorID):
		return false
	}
	return true
}

func headerValue(msg kafkago.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

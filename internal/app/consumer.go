package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/activitylog"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/config"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/events"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/messaging/kafka/consumer"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/connection"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer processes payroll runs queued through the outbox. It shares the
// period lock with the API, so a queued run never overlaps a synchronous one.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Postgres, cfg.ConnectRetries)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.ConnectRetries)
		if err != nil {
			return err
		}
		defer rdb.Close()
	} else {
		logger.Warn("REDIS_ADDR not set, payroll lock is local to this process")
	}

	activity := activitylog.NewAsyncSink(cfg.ActivityLogBuffer, logger, activitylog.NewZapWriter(logger))
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = activity.Close(ctx)
	}()

	pm := newPayrollModule(cfg, sqlDB, gormDB, rdb, activity, logger)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.PayrollRunRequestedTopic,
		GroupID:        cfg.ConsumerGroupPrefix + "-payroll-run",
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		consumer.ConsumePayrollRunRequested(ctx, reader, pm.service, logger)
		close(done)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()
	<-done

	return nil
}

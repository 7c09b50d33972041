package app

import (
	"context"
	"time"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/activitylog"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/config"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/connection"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// App holds what the API process must close on shutdown.
type App struct {
	Activity *activitylog.AsyncSink
	closers  []func() error
}

func (a *App) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.Activity.Close(ctx)

	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			zap.L().Warn("close resource failed", zap.Error(err))
		}
	}
}

func BuildApp(router *gin.Engine, cfg config.Config) (*App, error) {
	logger := zap.L()
	a := &App{}

	// 1. Infrastructure
	gormDB, err := connection.ConnectGORMWithRetry(cfg.Postgres, cfg.ConnectRetries)
	if err != nil {
		return nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, sqlDB.Close)
	logger.Info("database connection established")

	// Redis is optional: without it the salary component cache, idempotency keys
	// and the cross-process payroll lock fall back to their local behaviour.
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb, err = connection.ConnectRedisWithRetry(cfg.RedisAddr, cfg.ConnectRetries)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, rdb.Close)
		logger.Info("redis connection established")
	}

	writers := []activitylog.Writer{activitylog.NewZapWriter(logger)}
	if cfg.KafkaBroker != "" && cfg.ActivityLogTopic != "" {
		kw := &kafkago.Writer{
			Addr:                   kafkago.TCP(cfg.KafkaBroker),
			Balancer:               &kafkago.Hash{},
			AllowAutoTopicCreation: true,
			Async:                  true,
		}
		a.closers = append(a.closers, kw.Close)
		writers = append(writers, activitylog.NewKafkaWriter(kw, cfg.ActivityLogTopic))
	}
	a.Activity = activitylog.NewAsyncSink(cfg.ActivityLogBuffer, logger, writers...)

	// 2. Modules and routes
	if err := registerModules(router, cfg, sqlDB, gormDB, rdb, a.Activity, logger); err != nil {
		a.Close()
		return nil, err
	}

	return a, nil
}

package main

import (
	"time"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/app"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/bootstrap"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/config"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger := newLogger(cfg.Env)
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	// build dependency + routes
	application, err := app.BuildApp(r, cfg)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer application.Close()

	bootstrap.StartHTTPServer(
		r,
		bootstrap.ServerConfig{
			Port:            cfg.Port,
			ReadTimeout:     5 * time.Second,
			WriteTimeout:    5 * time.Minute,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		application.Activity,
	)
}

func newLogger(env string) *zap.Logger {
	build := zap.NewDevelopment
	if env == "production" {
		build = zap.NewProduction
	}
	logger, err := build()
	if err != nil {
		panic(err)
	}
	return logger
}

package main

import (
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/app"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/config"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/apperror"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	if cfg.Env == "production" {
		if logger, err = zap.NewProduction(); err != nil {
			panic(err)
		}
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	if err := app.RunWorker(cfg); err != nil {
		logger.Fatal("run worker failed", zap.Error(err))
	}
}

package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	httpadp "github.com/zoeccivil/licitaciones-engine/internal/adapter/http"
	leaseadp "github.com/zoeccivil/licitaciones-engine/internal/adapter/lease"
	"github.com/zoeccivil/licitaciones-engine/internal/adapter/middleware"
	"github.com/zoeccivil/licitaciones-engine/internal/adapter/repository/sqlstore"
	"github.com/zoeccivil/licitaciones-engine/internal/config"
	"github.com/zoeccivil/licitaciones-engine/internal/infrastructure/cache"
	"github.com/zoeccivil/licitaciones-engine/internal/infrastructure/db"
	"github.com/zoeccivil/licitaciones-engine/internal/infrastructure/logger"
	"github.com/zoeccivil/licitaciones-engine/internal/infrastructure/metrics"
	evaluc "github.com/zoeccivil/licitaciones-engine/internal/usecase/evaluation"
	remuc "github.com/zoeccivil/licitaciones-engine/internal/usecase/remediation"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.Init(cfg.LogLevel, cfg.Environment)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN())
	if err != nil {
		zlog.Fatal("db open", zap.Error(err))
	}
	if err := sqlstore.Migrate(gdb); err != nil {
		zlog.Fatal("db migrate", zap.Error(err))
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		zlog.Fatal("redis open", zap.Error(err))
	}

	tx := sqlstore.NewGormUoW(gdb)
	locker := leaseadp.NewRedisLocker(rdb)
	leaseTTL := time.Duration(cfg.LeaseTTLSecs) * time.Second

	orchestrator := evaluc.NewOrchestrator(tx, locker, leaseTTL, zlog)
	remediations := remuc.NewUsecase(tx, zlog)

	h := httpadp.NewHandler()
	evalH := httpadp.NewEvaluationHandler(orchestrator)
	remH := httpadp.NewRemediationHandler(remediations)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(echomw.Logger(), echomw.Recover())
	e.Use(middleware.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second, zlog))

	// routes
	e.GET("/health", h.Health)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	e.POST("/tenders/:tender_id/evaluate", evalH.Evaluate)
	e.GET("/tenders/:tender_id/results", evalH.Results)
	e.GET("/tenders/:tender_id/summary", evalH.Summary)
	e.GET("/tenders/:tender_id/disqualifications", evalH.Disqualifications)
	e.GET("/bidders/:bidder_name/wins", evalH.BidderWins)

	e.POST("/remediations", remH.Create)
	e.POST("/remediations/:request_id/deliver", remH.Deliver)
	e.POST("/remediations/sweep", remH.Sweep)
	e.GET("/tenders/:tender_id/remediations", remH.History)

	addr := ":" + cfg.AppPort
	zlog.Info("listening", zap.String("addr", addr))
	if err := e.Start(addr); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

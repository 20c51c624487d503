package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/config"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/api/handler"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/api/router"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/ledger"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/profile"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/repository"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/service"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/internal/tracker"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/pkg/database"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/pkg/jwt"
	applogger "github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/pkg/logger"
	"github.com/ArisStiawan/Sistem-Absensi-Berbasis-FaceRecognition/pkg/redis"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting attendance server",
		zap.Int("port", cfg.Server.Port),
		zap.String("ledger_dir", cfg.Attendance.Dir),
	)

	// PostgreSQL only mirrors the ledger for reporting, so a down database
	// degrades the server instead of stopping it: device-facing attendance
	// endpoints keep running on the CSV ledger.
	var repo *repository.Repository
	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		logger.Warn("database unavailable, running ledger-only", zap.Error(err))
	} else {
		sqlDB, err := db.DB()
		if err != nil {
			logger.Fatal("unwrap sql.DB", zap.Error(err))
		}
		if err := database.RunMigrations(sqlDB, logger); err != nil {
			logger.Fatal("run migrations", zap.Error(err))
		}
		repo = repository.NewRepository(db)
		logger.Info("database connected")
	}

	// Redis is optional as well: without it the token blacklist and rate
	// limits are skipped.
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, blacklist and rate limits disabled", zap.Error(err))
		rdb = nil
	}

	jwtMgr := jwt.NewManager(&cfg.Auth)
	store := ledger.NewStore(cfg.Attendance.Dir, logger)
	profiles := profile.NewStore(cfg.Attendance.ProfilePath, logger)
	trk := tracker.New(cfg.Attendance.Cooldown)

	svc := service.NewService(cfg, repo, store, profiles, trk, jwtMgr, rdb, logger)
	h := handler.NewHandler(svc)
	engine := router.Setup(cfg, h, jwtMgr, rdb, logger, repo != nil)

	// Background auto-checkout sweep.
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	if cfg.Feature.AutoCheckout {
		go runAutoCheckout(sweepCtx, svc.Attendance, cfg.Feature.AutoCheckoutInterval, logger)
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	logger.Info("shutdown signal received", zap.String("signal", sig.String()))
	stopSweep()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown failed", zap.Error(err))
	}

	// The recognizer process should not outlive the server.
	if err := svc.Capture.Stop(); err == nil {
		logger.Info("capture process stopped")
	}

	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}
	if rdb != nil {
		rdb.Close()
	}

	logger.Info("server stopped")
}

// runAutoCheckout sweeps the ledger on a ticker until ctx is cancelled.
func runAutoCheckout(ctx context.Context, svc service.AttendanceService, interval time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	logger.Info("auto-checkout sweeper started", zap.Duration("interval", interval))

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := svc.AutoCheckout(ctx); err != nil {
				logger.Error("auto-checkout sweep failed", zap.Error(err))
			}
		}
	}
}

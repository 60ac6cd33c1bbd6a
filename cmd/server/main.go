package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/FarahAbdullah11/NU-CLUBS/config"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/api/handler"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/api/router"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/repository"
	"github.com/FarahAbdullah11/NU-CLUBS/internal/service"
	"github.com/FarahAbdullah11/NU-CLUBS/pkg/database"
	"github.com/FarahAbdullah11/NU-CLUBS/pkg/jwt"
	applogger "github.com/FarahAbdullah11/NU-CLUBS/pkg/logger"
	"github.com/FarahAbdullah11/NU-CLUBS/pkg/metrics"
	"github.com/FarahAbdullah11/NU-CLUBS/pkg/redis"
)

func main() {
	app := &cli.App{
		Name:  "nu-clubs",
		Usage: "club administration portal API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to the configuration file",
				EnvVars: []string{"CLUBS_CONFIG"},
			},
		},
		Action: serve,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "run migrations and start the HTTP server",
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply pending database migrations and exit",
				Action: migrate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "nu-clubs: %v\n", err)
		os.Exit(1)
	}
}

// bootstrap loads config, logger and database shared by every command
func bootstrap(c *cli.Context) (*config.Config, *zap.Logger, *gorm.DB, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("get sql.DB: %w", err)
	}
	if err := database.RunMigrations(sqlDB, logger); err != nil {
		return nil, nil, nil, fmt.Errorf("run migrations: %w", err)
	}

	return cfg, logger, db, nil
}

func migrate(c *cli.Context) error {
	_, logger, db, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer logger.Sync()

	logger.Info("migrations applied")
	closeDB(db)
	return nil
}

func serve(c *cli.Context) error {
	cfg, logger, db, err := bootstrap(c)
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer closeDB(db)

	logger.Info("starting",
		zap.Int("port", cfg.Server.Port),
		zap.String("log_level", cfg.Log.Level),
		zap.Bool("student_life_can_decide", cfg.Feature.StudentLifeCanDecide),
	)

	// Redis is optional: without it logout cannot revoke and login is not rate limited
	rdb, err := redis.NewClient(&cfg.Redis, logger)
	if err != nil {
		logger.Warn("redis unavailable, running without session revocation", zap.Error(err))
		rdb = nil
	}
	defer rdb.Close()

	var m *metrics.Metrics
	if cfg.Feature.MetricsEnabled {
		m = metrics.New()
	}

	jwtMgr := jwt.NewManager(&cfg.Auth)

	repo := repository.NewRepository(db)
	svc, err := service.NewService(cfg, repo, jwtMgr, rdb, m, logger)
	if err != nil {
		return fmt.Errorf("init services: %w", err)
	}
	h := handler.NewHandler(svc)

	gin.SetMode(gin.ReleaseMode)
	engine := router.Setup(router.Deps{
		Config:  cfg,
		Handler: h,
		JWT:     jwtMgr,
		Redis:   rdb,
		DB:      db,
		Metrics: m,
		Logger:  logger,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}

	logger.Info("server stopped")
	return nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

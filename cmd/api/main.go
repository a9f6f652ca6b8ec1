package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	"health-companion/internal/adapters/storage/postgres"
	"health-companion/internal/config"
	"health-companion/internal/platform/logger"
	"health-companion/internal/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewFromEnv().Error("invalid configuration", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})

	engineCfg, err := cfg.Engine()
	if err != nil {
		log.Error("invalid engine configuration", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	var db *sql.DB
	if cfg.DBDSN != "" {
		db, err = postgres.Open(cfg.DBDSN, postgres.Pool{
			MaxOpenConns:    cfg.DBMaxOpenConns,
			MaxIdleConns:    cfg.DBMaxIdleConns,
			ConnMaxIdleTime: cfg.DBConnMaxIdle,
			ConnMaxLifetime: cfg.DBConnMaxLife,
			PingTimeout:     cfg.DBPingTimeout,
		})
		if err != nil {
			log.Error("database connection failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()
		log.Info("using postgres storage", nil)
	} else {
		log.Warn("DB_DSN not set, using in-memory storage", nil)
	}

	r := router.NewRouter(router.Options{
		DB:     db,
		Logger: log,
		Engine: &engineCfg,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": srv.Addr, "env": cfg.Env})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

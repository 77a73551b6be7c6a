package main

import (
	"context"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"research-saver/config"
	"research-saver/internal/handler"
	"research-saver/internal/journal"
	"research-saver/internal/logging"
	"research-saver/internal/metrics"
	"research-saver/internal/service"
	"research-saver/internal/store"
)

func main() {
	// 加载 .env 文件（如果存在）
	envErr := godotenv.Load()

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		logger.Debug("No .env file found, using environment variables")
	}
	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}

	// 配置了数据库才记录保存日志
	var saveJournal journal.Journal = journal.Discard
	if cfg.DatabaseURL != "" {
		pgJournal, err := journal.NewPostgresJournal(cfg.DatabaseURL)
		if err != nil {
			logger.WithError(err).Warn("Failed to connect to PostgreSQL, save journal disabled")
		} else {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			err := pgJournal.EnsureSchema(ctx)
			cancel()
			if err != nil {
				logger.WithError(err).Warn("Failed to prepare save journal table, save journal disabled")
				pgJournal.Close()
			} else {
				logger.Info("Using PostgreSQL save journal")
				saveJournal = pgJournal
				defer pgJournal.Close()
			}
		}
	} else {
		logger.Info("DATABASE_URL not configured, save journal disabled")
	}

	m := metrics.New()
	researchStore := store.NewFileStore(cfg.ResearchRoot)
	researchService := service.NewResearchService(researchStore, saveJournal, m, logger)
	saveHandler := handler.NewSaveHandler(researchService, m, logger, cfg.StrictWrites)

	// 设置路由
	mux := http.NewServeMux()
	mux.HandleFunc("/health", saveHandler.Health)
	if cfg.MetricsEnabled {
		mux.Handle("/metrics", m.Handler())
	}
	mux.HandleFunc(cfg.SavePath, saveHandler.Save)

	h := handler.CORS(handler.RequestID(handler.AccessLog(logger, mux)))

	logger.WithFields(logrus.Fields{
		"port":          cfg.Port,
		"research_root": researchStore.Root(),
		"save_path":     cfg.SavePath,
		"strict_writes": cfg.StrictWrites,
	}).Info("Server starting")
	if err := http.ListenAndServe(":"+cfg.Port, h); err != nil {
		logger.WithError(err).Fatal("Server stopped")
	}
}

package api

import (
	"context"
	"fmt"

	"backend/internal/app/backup"
	"backend/internal/app/config"
	"backend/internal/app/dsn"
	"backend/internal/app/handler"
	"backend/internal/app/middleware"
	"backend/internal/app/redis"
	"backend/internal/app/repository"
	"backend/internal/app/stats"
	"backend/internal/app/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// @title Carwash Backend API
// @version 1.0
// @description Бэкенд учёта автомойки: клиенты, автомобили, заказ-наряды, расходы и статистика

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// StartServer собирает все зависимости и запускает HTTP-сервер
func StartServer() {
	logrus.Info("Starting server")

	// Денежные суммы отдаем числами, а не строками
	decimal.MarshalJSONWithoutQuotes = true

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("error loading config: %v", err)
	}

	dsnStr := dsn.FromEnv()
	if dsnStr == "" {
		logrus.Fatal("DSN string is empty. Check your .env file")
	}
	repo, err := repository.New(dsnStr)
	if err != nil {
		logrus.Fatalf("error initializing repository: %v", err)
	}

	ctx := context.Background()
	redisClient, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		logrus.Fatalf("error initializing redis client: %v", err)
	}
	defer redisClient.Close()

	// MinIO опционален: без него сервис работает, но изображения услуг недоступны
	var minioClient *storage.MinIOClient
	if cfg.Minio.Endpoint != "" {
		minioClient, err = storage.NewMinIOClient(cfg.Minio.Endpoint, cfg.Minio.AccessKey,
			cfg.Minio.SecretKey, cfg.Minio.Bucket, cfg.Minio.UseSSL)
		if err != nil {
			logrus.Warnf("minio unavailable, service images disabled: %v", err)
			minioClient = nil
		}
	} else {
		logrus.Warn("MINIO_ENDPOINT not set, service images disabled")
	}

	aggregator := stats.NewAggregator(repo)
	engine := backup.NewEngine(repo)

	authHandler := handler.NewAuthHandler(repo, redisClient, cfg)
	apiHandler := handler.NewAPIHandler(repo, minioClient, aggregator, engine, cfg.BackupDir, authHandler)
	authMiddleware := middleware.NewAuthMiddleware(repo, redisClient, cfg)

	// Ночной автобэкап, включается настройкой auto_backup_enabled
	scheduler := backup.NewScheduler(engine, repo, cfg.BackupDir)
	if err := scheduler.Start(); err != nil {
		logrus.Fatalf("error starting backup scheduler: %v", err)
	}
	defer scheduler.Stop()

	r := gin.Default()
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	corsConfig.AllowCredentials = false
	r.Use(cors.New(corsConfig))

	apiHandler.RegisterAPIRoutes(r, authMiddleware)

	addr := fmt.Sprintf("%s:%d", cfg.ServiceHost, cfg.ServicePort)
	if err := r.Run(addr); err != nil {
		logrus.Fatalf("server stopped: %v", err)
	}

	logrus.Info("Server down")
}

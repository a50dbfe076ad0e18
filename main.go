package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"glow/config"
	_ "glow/docs"
	"glow/internal/cache"
	"glow/internal/repository"
	"glow/internal/service"
	"glow/internal/storage"
	"glow/internal/transport/rest"
	"glow/internal/transport/websocket"
	"glow/pkg/database"
	"glow/pkg/logger"
)

// @title Glow API
// @version 1.0
// @description API маркетплейса бьюти-услуг: запись к мастерам, расписания, отзывы, чат

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	log, err := logger.NewLogger()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal("не удалось загрузить конфигурацию", zap.Error(err))
	}

	db, err := database.NewPostgresDB(cfg.Postgres)
	if err != nil {
		log.Fatal("не удалось подключиться к БД", zap.Error(err))
	}
	defer db.Close()

	log.Info("запуск миграций базы данных")
	if err := database.RunMigrations(db, "./migrations", log); err != nil {
		log.Fatal("ошибка при выполнении миграций", zap.Error(err))
	}

	var fileStorage storage.FileStorage
	if cfg.S3.Endpoint != "" {
		s3Storage, err := storage.NewS3Storage(cfg.S3, log)
		if err != nil {
			log.Fatal("не удалось инициализировать S3 хранилище", zap.Error(err))
		}
		fileStorage = s3Storage
		log.Info("S3 хранилище инициализировано", zap.String("endpoint", cfg.S3.Endpoint))
	} else {
		log.Warn("S3 хранилище не настроено, загрузка файлов будет недоступна")
	}

	var draftCache cache.DraftCache
	redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		log.Warn("Redis недоступен, черновики расписаний отключены", zap.Error(err))
	} else {
		defer redisClient.Close()
		draftCache = cache.NewScheduleDraftCache(redisClient, cfg.Redis.DraftTTL)
		log.Info("Redis инициализирован", zap.String("addr", cfg.Redis.Addr))
	}

	repos := repository.NewRepositories(db)

	services := service.NewServices(service.Deps{
		Repos:       repos,
		Logger:      log,
		Config:      cfg,
		FileStorage: fileStorage,
		DraftCache:  draftCache,
	})

	hub := websocket.NewHub(log, services)
	go hub.Run()

	handler := rest.NewHandler(services, log, cfg, hub)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())

	handler.InitRoutes(router)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTP.Port,
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("ошибка запуска сервера", zap.Error(err))
		}
	}()

	log.Info("сервер запущен", zap.String("addr", srv.Addr))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("выключение сервера...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("ошибка при остановке сервера", zap.Error(err))
	}

	log.Info("сервер остановлен")
}

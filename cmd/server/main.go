package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sitecraft/agency-backend/internal/config"
	"github.com/sitecraft/agency-backend/internal/db"
	"github.com/sitecraft/agency-backend/internal/estimator"
	httpHandlers "github.com/sitecraft/agency-backend/internal/http/handlers"
	httpRouter "github.com/sitecraft/agency-backend/internal/http/router"
	"github.com/sitecraft/agency-backend/internal/logger"
	"github.com/sitecraft/agency-backend/internal/repository"
	"github.com/sitecraft/agency-backend/internal/service"
	"github.com/sitecraft/agency-backend/internal/storage"
	"github.com/sitecraft/agency-backend/internal/ws"
)

func main() {
	// Готовим контекст для graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("main: ошибка загрузки конфигурации: %v", err)
	}

	// Инициализация логгера
	if cfg.Env == "development" {
		logger.Init("debug")
		logger.SetTextFormatter()
	} else {
		logger.Init("info")
	}

	// Подключение к базе и миграции.
	dbConn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("main: ошибка подключения к базе: %v", err)
	}
	defer safeClose(dbConn)

	if err := db.RunMigrations(ctx, dbConn, cfg.MigrationsPath); err != nil {
		log.Fatalf("main: ошибка миграций: %v", err)
	}

	// Прайс-лист: встроенный или из файла.
	catalog := estimator.DefaultCatalog()
	if cfg.CatalogPath != "" {
		catalog, err = estimator.LoadCatalogFile(cfg.CatalogPath)
		if err != nil {
			log.Fatalf("main: не удалось загрузить прайс-лист: %v", err)
		}
	}

	tokenManager := service.NewTokenManager(cfg.JWTSecret, cfg.RefreshSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	fileStorage, err := storage.NewFileStorage(cfg.MediaStoragePath, cfg.MaxUploadSizeMB)
	if err != nil {
		log.Fatalf("main: не удалось подготовить файловое хранилище: %v", err)
	}

	// Репозитории.
	userRepo := repository.NewUserRepository(dbConn)
	taskRepo := repository.NewTaskRepository(dbConn)
	scheduleRepo := repository.NewScheduleRepository(dbConn)
	mediaRepo := repository.NewMediaRepository(dbConn)

	// Вебсокеты.
	hub := ws.NewHub()
	go hub.Run()

	// Сервисы.
	authService := service.NewAuthService(userRepo, tokenManager)
	taskService := service.NewTaskService(taskRepo, userRepo, catalog, ws.NewTaskNotifier(hub))
	employeeService := service.NewEmployeeService(userRepo, taskRepo)
	scheduleService := service.NewScheduleService(scheduleRepo)

	// HTTP хэндлеры.
	authHandler := httpHandlers.NewAuthHandler(authService)
	estimateHandler := httpHandlers.NewEstimateHandler(taskService, catalog)
	taskHandler := httpHandlers.NewTaskHandler(taskService)
	employeeHandler := httpHandlers.NewEmployeeHandler(employeeService)
	scheduleHandler := httpHandlers.NewScheduleHandler(scheduleService)
	mediaHandler := httpHandlers.NewMediaHandler(mediaRepo, fileStorage, taskService)
	wsHandler := httpHandlers.NewWSHandler(hub, tokenManager)
	healthHandler := httpHandlers.NewHealthHandler(dbConn)

	// Роутер.
	engine := httpRouter.SetupRouter(cfg, authHandler, estimateHandler, taskHandler,
		employeeHandler, scheduleHandler, mediaHandler, wsHandler, healthHandler, tokenManager)

	server := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: engine,
	}

	// Завершаем сервер при получении сигнала.
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("main: ошибка остановки http сервера: %v", err)
		}
	}()

	log.Printf("main: HTTP сервер запущен на порту %s", cfg.HTTPPort)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("main: сервер завершился с ошибкой: %v", err)
	}
}

// safeClose закрывает соединение с базой.
func safeClose(db *sqlx.DB) {
	if err := db.Close(); err != nil {
		log.Printf("main: ошибка закрытия базы: %v", err)
	}
}

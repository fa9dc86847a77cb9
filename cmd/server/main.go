package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/ignatzorin/specialist-hub/internal/config"
	"github.com/ignatzorin/specialist-hub/internal/db"
	"github.com/ignatzorin/specialist-hub/internal/goroutine"
	"github.com/ignatzorin/specialist-hub/internal/http/handlers"
	"github.com/ignatzorin/specialist-hub/internal/http/router"
	"github.com/ignatzorin/specialist-hub/internal/logger"
	"github.com/ignatzorin/specialist-hub/internal/repository"
	"github.com/ignatzorin/specialist-hub/internal/service"
	"github.com/ignatzorin/specialist-hub/internal/ws"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Init("error")
		logger.Log.WithError(err).Fatal("не удалось загрузить конфигурацию")
	}

	if cfg.Env == "production" {
		logger.Init("info")
	} else {
		logger.Init("debug")
		logger.SetTextFormatter()
	}
	log := logger.WithComponent("main")

	conn, err := db.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("не удалось подключиться к базе")
	}
	defer safeClose(conn.Close)

	if err := db.RunMigrations(ctx, conn, cfg.MigrationsPath); err != nil {
		log.WithError(err).Fatal("не удалось применить миграции")
	}

	// Репозитории
	userRepo := repository.NewUserRepository(conn)
	specialistRepo := repository.NewSpecialistRepository(conn)
	engagementRepo := repository.NewEngagementRepository(conn)
	ratingRepo := repository.NewRatingRepository(conn)
	notificationRepo := repository.NewNotificationRepository(conn)

	// Вебсокет хаб и нотификатор
	hub := ws.NewHub()
	goroutine.SafeGo(hub.Run)
	defer hub.Stop()

	notificationService := service.NewNotificationService(notificationRepo)
	notifier := ws.NewNotifier(hub, notificationService)

	// Сервисы
	tokens := service.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	authService := service.NewAuthService(userRepo, tokens)
	directoryService := service.NewDirectoryService(userRepo, specialistRepo)
	matcherService := service.NewMatcherService(specialistRepo)
	engagementService := service.NewEngagementService(engagementRepo, specialistRepo, notifier)
	ratingService := service.NewRatingService(ratingRepo, engagementRepo, notifier)

	// Периодическая чистка просроченных refresh сессий.
	goroutine.SafeGoWithContext(ctx, func(ctx context.Context) {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if deleted, err := userRepo.DeleteExpiredSessions(ctx); err != nil {
					log.WithError(err).Warn("не удалось почистить сессии")
				} else if deleted > 0 {
					log.WithField("deleted", deleted).Debug("просроченные сессии удалены")
				}
			}
		}
	})

	// Обработчики
	engine := router.New(cfg, tokens, router.Handlers{
		Auth:         handlers.NewAuthHandler(authService),
		Profile:      handlers.NewProfileHandler(directoryService),
		Search:       handlers.NewSearchHandler(matcherService),
		Engagement:   handlers.NewEngagementHandler(engagementService),
		Rating:       handlers.NewRatingHandler(ratingService),
		Notification: handlers.NewNotificationHandler(notificationService),
		Health:       handlers.NewHealthHandler(conn),
		WS:           handlers.NewWSHandler(hub, cfg.AllowedOrigins),
	})

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	goroutine.SafeGo(func() {
		log.WithField("port", cfg.HTTPPort).Info("сервер запущен")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("ошибка http сервера")
		}
	})

	<-ctx.Done()
	log.Info("получен сигнал остановки, завершаем работу")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("не удалось корректно остановить сервер")
	}
}

func safeClose(closeFn func() error) {
	if err := closeFn(); err != nil {
		logger.WithComponent("main").WithError(err).Error("ошибка при закрытии ресурса")
	}
}

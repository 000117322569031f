package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	getDaySlotsHandler "github.com/m04kA/SMC-BookingCalendar/internal/api/handlers/get_day_slots"
	getExceptionsHandler "github.com/m04kA/SMC-BookingCalendar/internal/api/handlers/get_exceptions"
	getMonthCalendarHandler "github.com/m04kA/SMC-BookingCalendar/internal/api/handlers/get_month_calendar"
	invalidateDaySlotsHandler "github.com/m04kA/SMC-BookingCalendar/internal/api/handlers/invalidate_day_slots"
	"github.com/m04kA/SMC-BookingCalendar/internal/api/middleware"
	"github.com/m04kA/SMC-BookingCalendar/internal/config"
	"github.com/m04kA/SMC-BookingCalendar/internal/infra/cache/dayslots"
	bookingRepo "github.com/m04kA/SMC-BookingCalendar/internal/infra/storage/booking"
	exceptionsRepo "github.com/m04kA/SMC-BookingCalendar/internal/infra/storage/exceptions"
	getDaySlotsUC "github.com/m04kA/SMC-BookingCalendar/internal/usecase/get_day_slots"
	getExceptionsUC "github.com/m04kA/SMC-BookingCalendar/internal/usecase/get_exceptions"
	getMonthCalendarUC "github.com/m04kA/SMC-BookingCalendar/internal/usecase/get_month_calendar"
	invalidateDaySlotsUC "github.com/m04kA/SMC-BookingCalendar/internal/usecase/invalidate_day_slots"
	"github.com/m04kA/SMC-BookingCalendar/pkg/logger"
	"github.com/m04kA/SMC-BookingCalendar/pkg/metrics"
)

func main() {
	configPath := "config.toml"
	if env := os.Getenv("CONFIG_PATH"); env != "" {
		configPath = env
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-BookingCalendar...")
	log.Info("Configuration loaded from %s", configPath)

	// Настройки календаря уже проверены в config.Load
	settings, err := cfg.Calendar.Settings()
	if err != nil {
		log.Fatal("Invalid calendar settings: %v", err)
	}

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Кэш слотов в Redis (опционально)
	var (
		slotsCache        getDaySlotsUC.SlotsCache
		slotsInvalidation invalidateDaySlotsUC.SlotsCache
	)
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			log.Fatal("Failed to ping redis at %s: %v", cfg.Redis.Addr, err)
		}

		redisSlots := dayslots.New(rdb, cfg.Redis.TTL(), cfg.Redis.KeyPrefix)
		slotsCache = redisSlots
		slotsInvalidation = redisSlots
		log.Info("Redis slot cache enabled (addr=%s, ttl=%s)", cfg.Redis.Addr, cfg.Redis.TTL())
	}

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(db)
	exceptionsRepository := exceptionsRepo.NewRepository(db)

	// Инициализируем use cases
	getDaySlotsUseCase := getDaySlotsUC.NewUseCase(
		bookingRepository,
		exceptionsRepository,
		slotsCache,
		settings,
		log,
	)
	getMonthCalendarUseCase := getMonthCalendarUC.NewUseCase(
		bookingRepository,
		exceptionsRepository,
		settings,
		log,
	)
	getExceptionsUseCase := getExceptionsUC.NewUseCase(
		exceptionsRepository,
		settings,
		log,
	)

	// Инициализируем handlers
	getDaySlots := getDaySlotsHandler.NewHandler(getDaySlotsUseCase, log)
	getMonthCalendar := getMonthCalendarHandler.NewHandler(getMonthCalendarUseCase, log)
	getExceptions := getExceptionsHandler.NewHandler(getExceptionsUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(log))

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// Календарь мастера на месяц
	api.HandleFunc("/professionals/{professionalId}/calendar",
		getMonthCalendar.Handle).Methods(http.MethodGet)

	// Слоты мастера на день
	api.HandleFunc("/professionals/{professionalId}/slots",
		getDaySlots.Handle).Methods(http.MethodGet)

	// Сброс закэшированных слотов после изменения бронирований (только с Redis)
	if slotsInvalidation != nil {
		invalidateDaySlots := invalidateDaySlotsHandler.NewHandler(
			invalidateDaySlotsUC.NewUseCase(slotsInvalidation, log),
			log,
		)
		api.HandleFunc("/professionals/{professionalId}/slots",
			invalidateDaySlots.Handle).Methods(http.MethodDelete)
	}

	// Исключения календаря мастера (для клиентов, проверяющих даты у себя)
	api.HandleFunc("/professionals/{professionalId}/exceptions",
		getExceptions.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

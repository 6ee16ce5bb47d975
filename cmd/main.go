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
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	getRegistrationsHandler "github.com/amirsdt/SCC-ReservationService/internal/api/handlers/get_registrations"
	getSlotsHandler "github.com/amirsdt/SCC-ReservationService/internal/api/handlers/get_slots"
	"github.com/amirsdt/SCC-ReservationService/internal/api/middleware"
	"github.com/amirsdt/SCC-ReservationService/internal/bot"
	"github.com/amirsdt/SCC-ReservationService/internal/config"
	botuserRepo "github.com/amirsdt/SCC-ReservationService/internal/infra/storage/botuser"
	registrationRepo "github.com/amirsdt/SCC-ReservationService/internal/infra/storage/registration"
	rosterRepo "github.com/amirsdt/SCC-ReservationService/internal/infra/storage/roster"
	slotRepo "github.com/amirsdt/SCC-ReservationService/internal/infra/storage/slot"
	"github.com/amirsdt/SCC-ReservationService/internal/jobs"
	reportsService "github.com/amirsdt/SCC-ReservationService/internal/service/reports"
	rosterService "github.com/amirsdt/SCC-ReservationService/internal/service/roster"
	scheduleService "github.com/amirsdt/SCC-ReservationService/internal/service/schedule"
	registerPlayerUC "github.com/amirsdt/SCC-ReservationService/internal/usecase/register_player"
	"github.com/amirsdt/SCC-ReservationService/pkg/logger"
	"github.com/amirsdt/SCC-ReservationService/pkg/metrics"
	"github.com/amirsdt/SCC-ReservationService/pkg/txmanager"
)

func main() {
	// .env удобен для локальной разработки, в проде его может не быть
	_ = godotenv.Load()

	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting SCC-ReservationService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики
	metricsCollector := metrics.New(cfg.Metrics.ServiceName)
	stopMetricsCh := make(chan struct{})

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

	if cfg.Metrics.Enabled {
		go metricsCollector.CollectDBStats(db, stopMetricsCh)
		log.Info("Database metrics collection started")
	}

	// Инициализируем репозитории
	rosterRepository := rosterRepo.NewRepository(db)
	slotRepository := slotRepo.NewRepository(db)
	registrationRepository := registrationRepo.NewRepository(db)
	botUserRepository := botuserRepo.NewRepository(db)

	txMgr := txmanager.NewTransactionManager(db)
	timeProvider := scheduleService.RealTimeProvider{}

	// Инициализируем сервисы
	rosterSvc := rosterService.NewService(rosterRepository, txMgr, log)
	scheduleSvc := scheduleService.NewService(slotRepository, txMgr, timeProvider, log)
	reportsSvc := reportsService.NewService(slotRepository, registrationRepository, txMgr, timeProvider, log)

	// Инициализируем use case записи на слот
	registerUseCase := registerPlayerUC.NewUseCase(
		slotRepository,
		rosterRepository,
		registrationRepository,
		txMgr,
		log,
	)

	// Инициализируем Telegram бота
	botApp, err := bot.New(
		cfg.Telegram,
		rosterSvc,
		scheduleSvc,
		reportsSvc,
		registerUseCase,
		botUserRepository,
		metricsCollector,
		log,
	)
	if err != nil {
		log.Fatal("Failed to initialize bot: %v", err)
	}

	// Инициализируем ночной отчет
	dailyReport, err := jobs.NewDailyReport(
		scheduleSvc,
		reportsSvc,
		botApp,
		metricsCollector,
		log,
		cfg.Telegram.ReportTime,
	)
	if err != nil {
		log.Fatal("Failed to initialize daily report job: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := botApp.Run(ctx); err != nil && err != context.Canceled {
			log.Error("Bot stopped: %v", err)
		}
	}()
	log.Info("Telegram bot started")

	go func() {
		if err := dailyReport.Run(ctx); err != nil && err != context.Canceled {
			log.Error("Daily report job stopped: %v", err)
		}
	}()
	log.Info("Daily report job scheduled at %s", cfg.Telegram.ReportTime)

	// Инициализируем handlers административного API
	getSlots := getSlotsHandler.NewHandler(scheduleSvc, log)
	getRegistrations := getRegistrationsHandler.NewHandler(reportsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	// Админский API только для чтения, закрыт статическим токеном
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(middleware.Auth(cfg.Server.AdminToken, log))

	api.HandleFunc("/sports/{sport}/slots", getSlots.Handle).Methods(http.MethodGet)
	api.HandleFunc("/slots/{slotId}/registrations", getRegistrations.Handle).Methods(http.MethodGet)

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

	log.Info("Shutting down...")

	// Останавливаем бота и фоновые задачи
	cancel()

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

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

	createBookingHandler "github.com/m04kA/EquipShare-BookingService/internal/api/handlers/create_booking"
	createEquipmentHandler "github.com/m04kA/EquipShare-BookingService/internal/api/handlers/create_equipment"
	deleteEquipmentHandler "github.com/m04kA/EquipShare-BookingService/internal/api/handlers/delete_equipment"
	getBookedDatesHandler "github.com/m04kA/EquipShare-BookingService/internal/api/handlers/get_booked_dates"
	getBookingHandler "github.com/m04kA/EquipShare-BookingService/internal/api/handlers/get_booking"
	getEquipmentHandler "github.com/m04kA/EquipShare-BookingService/internal/api/handlers/get_equipment"
	getOwnerBookingsHandler "github.com/m04kA/EquipShare-BookingService/internal/api/handlers/get_owner_bookings"
	getOwnerEquipmentHandler "github.com/m04kA/EquipShare-BookingService/internal/api/handlers/get_owner_equipment"
	getPriceQuoteHandler "github.com/m04kA/EquipShare-BookingService/internal/api/handlers/get_price_quote"
	getRenterBookingsHandler "github.com/m04kA/EquipShare-BookingService/internal/api/handlers/get_renter_bookings"
	searchEquipmentHandler "github.com/m04kA/EquipShare-BookingService/internal/api/handlers/search_equipment"
	updateBookingStatusHandler "github.com/m04kA/EquipShare-BookingService/internal/api/handlers/update_booking_status"
	updateEquipmentHandler "github.com/m04kA/EquipShare-BookingService/internal/api/handlers/update_equipment"
	"github.com/m04kA/EquipShare-BookingService/internal/api/middleware"
	"github.com/m04kA/EquipShare-BookingService/internal/config"
	bookingRepo "github.com/m04kA/EquipShare-BookingService/internal/infra/storage/booking"
	equipmentRepo "github.com/m04kA/EquipShare-BookingService/internal/infra/storage/equipment"
	"github.com/m04kA/EquipShare-BookingService/internal/service/availability"
	bookingsService "github.com/m04kA/EquipShare-BookingService/internal/service/bookings"
	equipmentService "github.com/m04kA/EquipShare-BookingService/internal/service/equipment"
	pricingService "github.com/m04kA/EquipShare-BookingService/internal/service/pricing"
	createBookingUC "github.com/m04kA/EquipShare-BookingService/internal/usecase/create_booking"
	updateBookingStatusUC "github.com/m04kA/EquipShare-BookingService/internal/usecase/update_booking_status"
	"github.com/m04kA/EquipShare-BookingService/pkg/dbmetrics"
	"github.com/m04kA/EquipShare-BookingService/pkg/keylock"
	"github.com/m04kA/EquipShare-BookingService/pkg/logger"
	"github.com/m04kA/EquipShare-BookingService/pkg/metrics"
	"github.com/m04kA/EquipShare-BookingService/pkg/txmanager"
)

// bookingMetrics счётчики, которые use cases пишут при создании и смене статуса
type bookingMetrics interface {
	IncBookingCreated()
	IncBookingConflict()
	IncStatusUpdate(status string)
}

func main() {
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

	log.Info("Starting EquipShare-BookingService...")

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		domainMetrics    bookingMetrics = metrics.Noop{}
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		domainMetrics = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Одна обёртка над пулом для репозиториев и менеджера транзакций.
	// Без метрик она просто проксирует вызовы.
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	txMgr := txmanager.New(wrappedDB, log)

	// Инициализируем репозитории
	bookingRepository := bookingRepo.NewRepository(wrappedDB)
	equipmentRepository := equipmentRepo.NewRepository(wrappedDB)

	// Калькулятор цены и проверка доступности
	calculator, err := pricingService.NewCalculator(cfg.Pricing.FeeRate())
	if err != nil {
		log.Fatal("Failed to create price calculator: %v", err)
	}
	log.Info("Platform fee rate: %s", calculator.FeeRate().String())

	checker := availability.NewChecker(bookingRepository)

	// Инициализируем сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, equipmentRepository, log)
	equipmentSvc := equipmentService.NewService(equipmentRepository, log)
	pricingSvc := pricingService.NewService(equipmentRepository, calculator, log)

	// Инициализируем use cases
	createOpts := []createBookingUC.Option{
		createBookingUC.WithLockTimeout(time.Duration(cfg.Booking.LockTimeout) * time.Second),
		createBookingUC.WithSerializationRetries(cfg.Booking.TxAttempts, 10*time.Millisecond),
	}
	if !cfg.Booking.RejectPastDates {
		createOpts = append(createOpts, createBookingUC.WithPastDatesAllowed())
	}

	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository,
		equipmentRepository,
		checker,
		calculator,
		txMgr,
		keylock.New[int64](),
		domainMetrics,
		log,
		createOpts...,
	)

	updateBookingStatusUseCase := updateBookingStatusUC.NewUseCase(
		bookingRepository,
		txMgr,
		domainMetrics,
		log,
	)

	// Инициализируем handlers
	searchEquipment := searchEquipmentHandler.NewHandler(equipmentSvc, log)
	getEquipment := getEquipmentHandler.NewHandler(equipmentSvc, log)
	createEquipment := createEquipmentHandler.NewHandler(equipmentSvc, log)
	updateEquipment := updateEquipmentHandler.NewHandler(equipmentSvc, log)
	deleteEquipment := deleteEquipmentHandler.NewHandler(equipmentSvc, log)
	getOwnerEquipment := getOwnerEquipmentHandler.NewHandler(equipmentSvc, log)
	getBookedDates := getBookedDatesHandler.NewHandler(bookingSvc, log)
	getPriceQuote := getPriceQuoteHandler.NewHandler(pricingSvc, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(updateBookingStatusUseCase, log)
	getRenterBookings := getRenterBookingsHandler.NewHandler(bookingSvc, log)
	getOwnerBookings := getOwnerBookingsHandler.NewHandler(bookingSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог оборудования
	api.HandleFunc("/equipment", searchEquipment.Handle).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{equipmentId:[0-9]+}", getEquipment.Handle).Methods(http.MethodGet)

	// Календарь занятости и расчёт стоимости
	api.HandleFunc("/equipment/{equipmentId:[0-9]+}/booked-dates", getBookedDates.Handle).Methods(http.MethodGet)
	api.HandleFunc("/equipment/{equipmentId:[0-9]+}/price-quote", getPriceQuote.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Оборудование владельца ---
	protected.HandleFunc("/equipment", createEquipment.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/equipment/{equipmentId:[0-9]+}", updateEquipment.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/equipment/{equipmentId:[0-9]+}", deleteEquipment.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/me/equipment", getOwnerEquipment.Handle).Methods(http.MethodGet)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId:[0-9]+}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// Бронирования текущего пользователя как арендатора и заявки на его оборудование
	protected.HandleFunc("/me/bookings", getRenterBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/me/booking-requests", getOwnerBookings.Handle).Methods(http.MethodGet)

	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

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

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}

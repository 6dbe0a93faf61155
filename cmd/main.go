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

	checkAvailabilityHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/check_availability"
	createRatingHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/create_rating"
	createReservationHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/create_reservation"
	createVehicleHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/create_vehicle"
	deleteRatingHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/delete_rating"
	deleteVehicleHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/delete_vehicle"
	getAllReservationsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_all_reservations"
	getReservationHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_reservation"
	getSiteSettingsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_site_settings"
	getUserReservationsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_user_reservations"
	getVehicleHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_vehicle"
	listRatingsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/list_ratings"
	listVehiclesHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/list_vehicles"
	updateReservationStatusHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/update_reservation_status"
	updateSiteSettingsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/update_site_settings"
	updateVehicleHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/update_vehicle"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/config"
	availabilityCache "github.com/m04kA/SMC-RentalService/internal/infra/cache/availability"
	"github.com/m04kA/SMC-RentalService/internal/infra/events"
	ratingRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/rating"
	reservationRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/reservation"
	settingsRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/sitesettings"
	vehicleRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/vehicle"
	ratingsService "github.com/m04kA/SMC-RentalService/internal/service/ratings"
	reservationsService "github.com/m04kA/SMC-RentalService/internal/service/reservations"
	settingsService "github.com/m04kA/SMC-RentalService/internal/service/sitesettings"
	vehiclesService "github.com/m04kA/SMC-RentalService/internal/service/vehicles"
	checkAvailabilityUC "github.com/m04kA/SMC-RentalService/internal/usecase/check_availability"
	createReservationUC "github.com/m04kA/SMC-RentalService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/metrics"
	"github.com/m04kA/SMC-RentalService/pkg/simpletxmanager"
	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
)

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

	log.Info("Starting SMC-RentalService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	stopMetricsCh := make(chan struct{})

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

	// Инициализируем кеш доступности (если включен)
	var cache *availabilityCache.Cache
	if cfg.Redis.Enabled {
		cache = availabilityCache.New(
			cfg.Redis.Addr,
			cfg.Redis.Password,
			cfg.Redis.DB,
			time.Duration(cfg.Redis.TTLSeconds)*time.Second,
		)
		defer cache.Close()
		log.Info("Availability cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
	}

	// Инициализируем публикацию событий (если включена)
	var publisher *events.Publisher
	if cfg.Kafka.Enabled {
		publisher = events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer publisher.Close()
		log.Info("Event publishing enabled (topic=%s)", cfg.Kafka.Topic)
	}

	// Инициализируем репозитории и transaction manager (с метриками или без)
	var (
		reservationRepository *reservationRepo.Repository
		vehicleRepository     *vehicleRepo.Repository
		ratingRepository      *ratingRepo.Repository
		settingsRepository    *settingsRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")

		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		vehicleRepository = vehicleRepo.NewRepository(wrappedDB)
		ratingRepository = ratingRepo.NewRepository(wrappedDB)
		settingsRepository = settingsRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		reservationRepository = reservationRepo.NewRepository(db)
		vehicleRepository = vehicleRepo.NewRepository(db)
		ratingRepository = ratingRepo.NewRepository(db)
		settingsRepository = settingsRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Интерфейсные значения для опциональных зависимостей: присваиваем
	// только при включенной интеграции, иначе typed-nil пройдет проверку != nil
	var (
		reservationsCache  reservationsService.AvailabilityCache
		reservationsEvents reservationsService.EventPublisher
		vehiclesCache      vehiclesService.AvailabilityCache
		createResCache     createReservationUC.AvailabilityCache
		createResEvents    createReservationUC.EventPublisher
		checkAvailCache    checkAvailabilityUC.AvailabilityCache
	)
	if cache != nil {
		reservationsCache = cache
		vehiclesCache = cache
		createResCache = cache
		checkAvailCache = cache
	}
	if publisher != nil {
		reservationsEvents = publisher
		createResEvents = publisher
	}

	// Инициализируем сервисы
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		reservationsEvents,
		reservationsCache,
		log,
	)
	vehicleSvc := vehiclesService.NewService(
		vehicleRepository,
		vehiclesCache,
		log,
	)
	ratingSvc := ratingsService.NewService(
		ratingRepository,
		vehicleRepository,
		reservationRepository,
		txMgr,
		log,
	)
	settingsSvc := settingsService.NewService(
		settingsRepository,
		log,
	)

	// Инициализируем use cases
	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		vehicleRepository,
		txMgr,
		createResEvents,
		createResCache,
		log,
	)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		reservationRepository,
		vehicleRepository,
		checkAvailCache,
		log,
	)

	// Инициализируем handlers
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	getUserReservations := getUserReservationsHandler.NewHandler(reservationSvc, log)
	getAllReservations := getAllReservationsHandler.NewHandler(reservationSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationSvc, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)

	createVehicle := createVehicleHandler.NewHandler(vehicleSvc, log)
	getVehicle := getVehicleHandler.NewHandler(vehicleSvc, log)
	listVehicles := listVehiclesHandler.NewHandler(vehicleSvc, log)
	updateVehicle := updateVehicleHandler.NewHandler(vehicleSvc, log)
	deleteVehicle := deleteVehicleHandler.NewHandler(vehicleSvc, log)

	createRating := createRatingHandler.NewHandler(ratingSvc, log)
	deleteRating := deleteRatingHandler.NewHandler(ratingSvc, log)
	listRatings := listRatingsHandler.NewHandler(ratingSvc, log)

	getSiteSettings := getSiteSettingsHandler.NewHandler(settingsSvc, log)
	updateSiteSettings := updateSiteSettingsHandler.NewHandler(settingsSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог автомобилей
	api.HandleFunc("/vehicles", listVehicles.Handle).Methods(http.MethodGet)
	api.HandleFunc("/vehicles/{vehicleId}", getVehicle.Handle).Methods(http.MethodGet)

	// Проверка доступности автомобиля на даты
	api.HandleFunc("/vehicles/{vehicleId}/availability", checkAvailability.Handle).Methods(http.MethodGet)

	// Оценки автомобиля
	api.HandleFunc("/vehicles/{vehicleId}/ratings", listRatings.Handle).Methods(http.MethodGet)

	// Настройки сайта
	api.HandleFunc("/settings", getSiteSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют JWT)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth(cfg.Auth.JWTSecret, log))

	// --- Бронирования ---
	protected.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/reservations", getAllReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/my", getUserReservations.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)

	// --- Каталог (для администраторов) ---
	protected.HandleFunc("/vehicles", createVehicle.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/vehicles/{vehicleId}", updateVehicle.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/vehicles/{vehicleId}", deleteVehicle.Handle).Methods(http.MethodDelete)

	// --- Оценки ---
	protected.HandleFunc("/vehicles/{vehicleId}/ratings", createRating.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/ratings/{ratingId}", deleteRating.Handle).Methods(http.MethodDelete)

	// --- Настройки сайта (для администраторов) ---
	protected.HandleFunc("/settings", updateSiteSettings.Handle).Methods(http.MethodPut)

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

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

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

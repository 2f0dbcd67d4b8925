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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelAppointmentHandler "github.com/m04kA/randevu-service/internal/api/handlers/cancel_appointment"
	copyAvailabilityHandler "github.com/m04kA/randevu-service/internal/api/handlers/copy_availability"
	createAppointmentHandler "github.com/m04kA/randevu-service/internal/api/handlers/create_appointment"
	createAvailabilityHandler "github.com/m04kA/randevu-service/internal/api/handlers/create_availability"
	createBusyBlockHandler "github.com/m04kA/randevu-service/internal/api/handlers/create_busy_block"
	deleteAvailabilityHandler "github.com/m04kA/randevu-service/internal/api/handlers/delete_availability"
	deleteBusinessSettingsHandler "github.com/m04kA/randevu-service/internal/api/handlers/delete_business_settings"
	deleteBusyBlockHandler "github.com/m04kA/randevu-service/internal/api/handlers/delete_busy_block"
	getAppointmentHandler "github.com/m04kA/randevu-service/internal/api/handlers/get_appointment"
	getAvailableSlotsHandler "github.com/m04kA/randevu-service/internal/api/handlers/get_available_slots"
	getBusinessAppointmentsHandler "github.com/m04kA/randevu-service/internal/api/handlers/get_business_appointments"
	getBusinessSettingsHandler "github.com/m04kA/randevu-service/internal/api/handlers/get_business_settings"
	getMyAppointmentsHandler "github.com/m04kA/randevu-service/internal/api/handlers/get_my_appointments"
	healthHandler "github.com/m04kA/randevu-service/internal/api/handlers/health"
	listAvailabilityHandler "github.com/m04kA/randevu-service/internal/api/handlers/list_availability"
	listBusinessSettingsHandler "github.com/m04kA/randevu-service/internal/api/handlers/list_business_settings"
	toggleAvailabilityHandler "github.com/m04kA/randevu-service/internal/api/handlers/toggle_availability"
	updateAppointmentStatusHandler "github.com/m04kA/randevu-service/internal/api/handlers/update_appointment_status"
	updateBusinessSettingsHandler "github.com/m04kA/randevu-service/internal/api/handlers/update_business_settings"
	"github.com/m04kA/randevu-service/internal/api/middleware"
	"github.com/m04kA/randevu-service/internal/config"
	"github.com/m04kA/randevu-service/internal/domain"
	appointmentRepo "github.com/m04kA/randevu-service/internal/infra/storage/appointment"
	availabilityRepo "github.com/m04kA/randevu-service/internal/infra/storage/availability"
	catalogRepo "github.com/m04kA/randevu-service/internal/infra/storage/catalog"
	settingsRepo "github.com/m04kA/randevu-service/internal/infra/storage/settings"
	"github.com/m04kA/randevu-service/internal/integrations/events"
	"github.com/m04kA/randevu-service/internal/integrations/identity"
	"github.com/m04kA/randevu-service/internal/service/access"
	appointmentsService "github.com/m04kA/randevu-service/internal/service/appointments"
	availabilityService "github.com/m04kA/randevu-service/internal/service/availability"
	settingsService "github.com/m04kA/randevu-service/internal/service/settings"
	createAppointmentUC "github.com/m04kA/randevu-service/internal/usecase/create_appointment"
	getAvailableSlotsUC "github.com/m04kA/randevu-service/internal/usecase/get_available_slots"
	"github.com/m04kA/randevu-service/pkg/dbmetrics"
	"github.com/m04kA/randevu-service/pkg/logger"
	"github.com/m04kA/randevu-service/pkg/metrics"
	"github.com/m04kA/randevu-service/pkg/txmanager"
)

const (
	configPath = "config.toml"

	rateLimitCleanupInterval = time.Minute
	rateLimitIdleTTL         = 3 * time.Minute
)

// eventPublisher общий интерфейс Kafka и no-op публикаторов
type eventPublisher interface {
	PublishAppointmentCreated(ctx context.Context, appointment *domain.Appointment) error
	PublishStatusChanged(ctx context.Context, appointment *domain.Appointment, previous domain.AppointmentStatus) error
	Close() error
}

// tokenVerifier проверка токена у провайдера или локально по подписи
type tokenVerifier interface {
	Verify(ctx context.Context, token string) (*identity.User, error)
}

func main() {
	// Загружаем конфигурацию
	path := configPath
	if env := os.Getenv("RANDEVU_CONFIG"); env != "" {
		path = env
	}

	cfg, err := config.Load(path)
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

	log.Info("Starting randevu-service...")
	log.Info("Configuration loaded from %s", path)

	location, err := cfg.Booking.Location()
	if err != nil {
		log.Fatal("Failed to load timezone %s: %v", cfg.Booking.Timezone, err)
	}

	// Метрики собираются всегда, флаг управляет только их публикацией
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metricsCollector := metrics.New(cfg.Metrics.ServiceName, registry)
	stopCh := make(chan struct{})

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

	wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, stopCh)

	// Инициализируем интеграции
	var verifier tokenVerifier
	switch cfg.Auth.Mode {
	case config.AuthModeJWT:
		verifier = identity.NewJWTVerifier(cfg.Auth.JWTSecret, cfg.Auth.Audience)
		log.Info("Token verification: local HS256 (audience=%s)", cfg.Auth.Audience)
	default:
		verifier = identity.NewClient(
			cfg.Auth.URL,
			cfg.Auth.APIKey,
			time.Duration(cfg.Auth.Timeout)*time.Second,
			log,
		)
		log.Info("Token verification: remote (url=%s, timeout=%ds)", cfg.Auth.URL, cfg.Auth.Timeout)
	}

	var publisher eventPublisher = events.Noop{}
	if cfg.Events.Enabled {
		publisher = events.NewKafkaPublisher(
			cfg.Events.Brokers,
			cfg.Events.Topic,
			time.Duration(cfg.Events.WriteTimeout)*time.Second,
			log,
		)
		log.Info("Appointment events enabled (brokers=%s, topic=%s)", cfg.Events.Brokers, cfg.Events.Topic)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Error("Failed to close event publisher: %v", err)
		}
	}()

	// Инициализируем репозитории
	appointmentRepository := appointmentRepo.NewRepository(wrappedDB)
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	catalogRepository := catalogRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)

	txMgr := txmanager.NewTransactionManager(wrappedDB)
	accessChecker := access.NewChecker(catalogRepository)

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		accessChecker,
		publisher,
		log,
	)
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		catalogRepository,
		accessChecker,
		txMgr,
		log,
		location,
	)
	settingsSvc := settingsService.NewService(
		settingsRepository,
		catalogRepository,
		accessChecker,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		availabilityRepository,
		appointmentRepository,
		settingsRepository,
		catalogRepository,
		metricsCollector,
		log,
		getAvailableSlotsUC.Options{
			Location:           location,
			ExcludeBookedSlots: cfg.Booking.ExcludeBookedSlots,
		},
	)
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		availabilityRepository,
		settingsRepository,
		catalogRepository,
		publisher,
		metricsCollector,
		txMgr,
		log,
		location,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	getMyAppointments := getMyAppointmentsHandler.NewHandler(appointmentSvc, log)
	getBusinessAppointments := getBusinessAppointmentsHandler.NewHandler(appointmentSvc, log)
	getBusinessSettings := getBusinessSettingsHandler.NewHandler(settingsSvc, log)
	updateBusinessSettings := updateBusinessSettingsHandler.NewHandler(settingsSvc, log)
	listBusinessSettings := listBusinessSettingsHandler.NewHandler(settingsSvc, log)
	deleteBusinessSettings := deleteBusinessSettingsHandler.NewHandler(settingsSvc, log)
	listAvailability := listAvailabilityHandler.NewHandler(availabilitySvc, log)
	createAvailability := createAvailabilityHandler.NewHandler(availabilitySvc, log)
	copyAvailability := copyAvailabilityHandler.NewHandler(availabilitySvc, log)
	toggleAvailability := toggleAvailabilityHandler.NewHandler(availabilitySvc, log)
	deleteAvailability := deleteAvailabilityHandler.NewHandler(availabilitySvc, log)
	createBusyBlock := createBusyBlockHandler.NewHandler(availabilitySvc, log)
	deleteBusyBlock := deleteBusyBlockHandler.NewHandler(availabilitySvc, log)
	health := healthHandler.NewHandler(wrappedDB, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	r.HandleFunc("/health", health.Handle).Methods(http.MethodGet)

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации, с ограничением частоты)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	if cfg.RateLimit.Enabled {
		trustedProxies, err := cfg.RateLimit.TrustedNetworks()
		if err != nil {
			log.Fatal("Failed to parse trusted proxies: %v", err)
		}
		limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst, trustedProxies, log)
		go limiter.RunCleanup(rateLimitCleanupInterval, rateLimitIdleTTL, stopCh)
		public.Use(limiter.Middleware)
		log.Info("Rate limiting enabled (rps=%.1f, burst=%d, trusted_proxies=%d)",
			cfg.RateLimit.RPS, cfg.RateLimit.Burst, len(trustedProxies))
	}

	// Свободные слоты сотрудника на дату
	public.HandleFunc("/staff/{staffId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Запись клиента
	public.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Правила записи бизнеса
	public.HandleFunc("/businesses/{businessId}/settings", getBusinessSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют Bearer токен)
	// ============================================================

	auth := middleware.NewAuth(verifier, catalogRepository, log)
	protected := api.PathPrefix("").Subrouter()
	protected.Use(auth.Middleware)

	// --- Записи ---
	protected.HandleFunc("/appointments/{id}", getAppointment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/appointments/{id}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/appointments/{id}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/me/appointments", getMyAppointments.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/businesses/{businessId}/appointments", getBusinessAppointments.Handle).Methods(http.MethodGet)

	// --- Правила записи ---
	protected.HandleFunc("/businesses/{businessId}/settings", updateBusinessSettings.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/businesses/{businessId}/settings", deleteBusinessSettings.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/businesses/{businessId}/settings/all", listBusinessSettings.Handle).Methods(http.MethodGet)

	// --- Рабочие часы и блокировки ---
	protected.HandleFunc("/staff/{staffId}/availability", listAvailability.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/staff/{staffId}/availability", createAvailability.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/staff/{staffId}/availability/copy", copyAvailability.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/availability/{id}/toggle", toggleAvailability.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/availability/{id}", deleteAvailability.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/staff/{staffId}/busy-blocks", createBusyBlock.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/busy-blocks/{id}", deleteBusyBlock.Handle).Methods(http.MethodDelete)

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

	// Останавливаем сбор статистики пула и очистку лимитера
	close(stopCh)

	log.Info("Server stopped gracefully")
}

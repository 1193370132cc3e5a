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

	cancelAppointmentHandler "github.com/m04kA/HMS-SchedulingService/internal/api/handlers/cancel_appointment"
	copySchedulesHandler "github.com/m04kA/HMS-SchedulingService/internal/api/handlers/copy_schedules"
	createAppointmentHandler "github.com/m04kA/HMS-SchedulingService/internal/api/handlers/create_appointment"
	createScheduleHandler "github.com/m04kA/HMS-SchedulingService/internal/api/handlers/create_schedule"
	deactivateScheduleHandler "github.com/m04kA/HMS-SchedulingService/internal/api/handlers/deactivate_schedule"
	getAppointmentHandler "github.com/m04kA/HMS-SchedulingService/internal/api/handlers/get_appointment"
	getAppointmentsHandler "github.com/m04kA/HMS-SchedulingService/internal/api/handlers/get_appointments"
	getDaySlotsHandler "github.com/m04kA/HMS-SchedulingService/internal/api/handlers/get_day_slots"
	getDoctorAppointmentsHandler "github.com/m04kA/HMS-SchedulingService/internal/api/handlers/get_doctor_appointments"
	listLeavesHandler "github.com/m04kA/HMS-SchedulingService/internal/api/handlers/list_leaves"
	listSchedulesHandler "github.com/m04kA/HMS-SchedulingService/internal/api/handlers/list_schedules"
	markLeaveHandler "github.com/m04kA/HMS-SchedulingService/internal/api/handlers/mark_leave"
	updateAppointmentStatusHandler "github.com/m04kA/HMS-SchedulingService/internal/api/handlers/update_appointment_status"
	"github.com/m04kA/HMS-SchedulingService/internal/api/middleware"
	"github.com/m04kA/HMS-SchedulingService/internal/config"
	appointmentRepo "github.com/m04kA/HMS-SchedulingService/internal/infra/storage/appointment"
	leaveRepo "github.com/m04kA/HMS-SchedulingService/internal/infra/storage/leave"
	scheduleRepo "github.com/m04kA/HMS-SchedulingService/internal/infra/storage/schedule"
	patientServiceClient "github.com/m04kA/HMS-SchedulingService/internal/integrations/patientservice"
	staffServiceClient "github.com/m04kA/HMS-SchedulingService/internal/integrations/staffservice"
	appointmentsService "github.com/m04kA/HMS-SchedulingService/internal/service/appointments"
	schedulesService "github.com/m04kA/HMS-SchedulingService/internal/service/schedules"
	copySchedulesUC "github.com/m04kA/HMS-SchedulingService/internal/usecase/copy_schedules"
	createAppointmentUC "github.com/m04kA/HMS-SchedulingService/internal/usecase/create_appointment"
	getDaySlotsUC "github.com/m04kA/HMS-SchedulingService/internal/usecase/get_day_slots"
	"github.com/m04kA/HMS-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/HMS-SchedulingService/pkg/logger"
	"github.com/m04kA/HMS-SchedulingService/pkg/metrics"
	"github.com/m04kA/HMS-SchedulingService/pkg/simpletxmanager"
	"github.com/m04kA/HMS-SchedulingService/pkg/txmanager"
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

	log.Info("Starting HMS-SchedulingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
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

	// Инициализируем интеграционных клиентов
	staffClient := staffServiceClient.NewClient(
		cfg.StaffService.URL,
		time.Duration(cfg.StaffService.Timeout)*time.Second,
		log,
	)
	patientClient := patientServiceClient.NewClient(
		cfg.PatientService.URL,
		time.Duration(cfg.PatientService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (StaffService=%s timeout=%ds, PatientService=%s timeout=%ds)",
		cfg.StaffService.URL, cfg.StaffService.Timeout, cfg.PatientService.URL, cfg.PatientService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		appointmentRepository *appointmentRepo.Repository
		scheduleRepository    *scheduleRepo.Repository
		leaveRepository       *leaveRepo.Repository
	)

	// Интерфейс для transaction manager (используется в usecases)
	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		appointmentRepository = appointmentRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		leaveRepository = leaveRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		appointmentRepository = appointmentRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		leaveRepository = leaveRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Инициализируем сервисы
	appointmentSvc := appointmentsService.NewService(
		appointmentRepository,
		log,
	)
	scheduleSvc := schedulesService.NewService(
		scheduleRepository,
		leaveRepository,
		appointmentRepository,
		staffClient,
		log,
	)

	// Инициализируем use cases
	createAppointmentUseCase := createAppointmentUC.NewUseCase(
		appointmentRepository,
		leaveRepository,
		staffClient,
		patientClient,
		txMgr,
		log,
	)

	getDaySlotsUseCase := getDaySlotsUC.NewUseCase(
		appointmentRepository,
		leaveRepository,
		staffClient,
		log,
	)

	copySchedulesUseCase := copySchedulesUC.NewUseCase(
		scheduleRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createAppointment := createAppointmentHandler.NewHandler(createAppointmentUseCase, log)
	getDaySlots := getDaySlotsHandler.NewHandler(getDaySlotsUseCase, log)
	copySchedules := copySchedulesHandler.NewHandler(copySchedulesUseCase, log)
	getAppointment := getAppointmentHandler.NewHandler(appointmentSvc, log)
	getAppointments := getAppointmentsHandler.NewHandler(appointmentSvc, log)
	getDoctorAppointments := getDoctorAppointmentsHandler.NewHandler(appointmentSvc, log)
	cancelAppointment := cancelAppointmentHandler.NewHandler(appointmentSvc, log)
	updateAppointmentStatus := updateAppointmentStatusHandler.NewHandler(appointmentSvc, log)
	listSchedules := listSchedulesHandler.NewHandler(scheduleSvc, log)
	createSchedule := createScheduleHandler.NewHandler(scheduleSvc, log)
	deactivateSchedule := deactivateScheduleHandler.NewHandler(scheduleSvc, log)
	markLeave := markLeaveHandler.NewHandler(scheduleSvc, log)
	listLeaves := listLeavesHandler.NewHandler(scheduleSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Сквозной идентификатор запроса
	r.Use(middleware.RequestID)

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Сетка слотов врача на день
	api.HandleFunc("/doctors/{doctorId}/slots", getDaySlots.Handle).Methods(http.MethodGet)

	// Реестр расписаний с фильтрацией
	api.HandleFunc("/schedules", listSchedules.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Записи на прием ---
	// Создание записи
	protected.HandleFunc("/appointments", createAppointment.Handle).Methods(http.MethodPost)

	// Список записей с фильтрацией
	protected.HandleFunc("/appointments", getAppointments.Handle).Methods(http.MethodGet)

	// Получение записи по ID
	protected.HandleFunc("/appointments/{appointmentId}", getAppointment.Handle).Methods(http.MethodGet)

	// Обновление статуса записи
	protected.HandleFunc("/appointments/{appointmentId}/status", updateAppointmentStatus.Handle).Methods(http.MethodPatch)

	// Отмена записи
	protected.HandleFunc("/appointments/{appointmentId}/cancel", cancelAppointment.Handle).Methods(http.MethodPatch)

	// Записи врача на день
	protected.HandleFunc("/doctors/{doctorId}/appointments", getDoctorAppointments.Handle).Methods(http.MethodGet)

	// --- Управление расписаниями (для регистратуры) ---
	// Создание расписания
	protected.HandleFunc("/schedules", createSchedule.Handle).Methods(http.MethodPost)

	// Еженедельное копирование расписаний
	protected.HandleFunc("/schedules/copy", copySchedules.Handle).Methods(http.MethodPost)

	// Деактивация расписания
	protected.HandleFunc("/schedules/{scheduleId}/deactivate", deactivateSchedule.Handle).Methods(http.MethodPatch)

	// --- Отпуска врачей ---
	// Отметка отпуска
	protected.HandleFunc("/doctors/{doctorId}/leaves", markLeave.Handle).Methods(http.MethodPost)

	// Список отпусков врача
	protected.HandleFunc("/doctors/{doctorId}/leaves", listLeaves.Handle).Methods(http.MethodGet)

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

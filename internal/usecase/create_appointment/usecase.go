package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/randevu-service/internal/domain"
	appointmentRepo "github.com/m04kA/randevu-service/internal/infra/storage/appointment"
	catalogRepo "github.com/m04kA/randevu-service/internal/infra/storage/catalog"
	settingsRepo "github.com/m04kA/randevu-service/internal/infra/storage/settings"
	"github.com/m04kA/randevu-service/internal/scheduling"
	"github.com/m04kA/randevu-service/pkg/ptr"
	"github.com/m04kA/randevu-service/pkg/txmanager"
)

// Результаты создания записи для метрик
const (
	resultCreated  = "created"
	resultConflict = "conflict"
	resultRejected = "rejected"
	resultError    = "error"
)

// UseCase use case для онлайн-записи клиента
type UseCase struct {
	appointmentRepo  AppointmentRepository
	availabilityRepo AvailabilityRepository
	settingsRepo     SettingsRepository
	catalogRepo      CatalogRepository
	publisher        EventPublisher
	metrics          MetricsCollector
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
	location         *time.Location
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	availabilityRepo AvailabilityRepository,
	settingsRepo SettingsRepository,
	catalogRepo CatalogRepository,
	publisher EventPublisher,
	metrics MetricsCollector,
	txManager TransactionManager,
	logger Logger,
	location *time.Location,
) *UseCase {
	if location == nil {
		location = time.Local
	}

	return &UseCase{
		appointmentRepo:  appointmentRepo,
		availabilityRepo: availabilityRepo,
		settingsRepo:     settingsRepo,
		catalogRepo:      catalogRepo,
		publisher:        publisher,
		metrics:          metrics,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
		location:         location,
	}
}

// Execute выполняет use case создания записи.
// Проверка слота и вставка выполняются в сериализуемой транзакции: из двух
// конкурирующих запросов на одно время успешен только первый
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	result, err := uc.execute(ctx, req)
	uc.observe(err)
	return result, err
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Нормализация и валидация входных данных
	if req != nil {
		normalizeRequest(req)
	}
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время и дата записи в часовом поясе бизнеса
	now := uc.timeProvider.Now().In(uc.location)
	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, uc.location)

	uc.logger.Info("CreateAppointment: staff=%s, service=%s, date=%s, time=%s",
		req.StaffID, req.ServiceID, date.Format(domain.DateFormat), req.Time)

	// 3. Сотрудник, услуга и их связь
	staff, service, err := uc.loadCatalog(ctx, req)
	if err != nil {
		return nil, err
	}
	duration := service.EffectiveDuration()

	var created *domain.Appointment

	// 4. Проверка слота и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Правила записи с учетом иерархии
		settings, err := uc.settingsRepo.GetWithHierarchy(txCtx, staff.BusinessID, ptr.Ptr(service.ID))
		if err != nil && !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Error("CreateAppointment: failed to get settings: %v", err)
			return fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}
		if settings == nil {
			settings = domain.DefaultBookingSettings(staff.BusinessID)
		}

		// 4.2. Валидация даты и минимального времени до записи
		if err := validateDate(date, now, settings.AdvanceBookingDays); err != nil {
			uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
			return err
		}
		if err := validateBookingTime(date, req.Time, now, settings.MinBookingNoticeMinutes); err != nil {
			uc.logger.Warn("CreateAppointment: booking time validation failed: %v", err)
			return err
		}

		// 4.3. Время должно совпадать с одним из рассчитанных слотов
		windows, err := uc.availabilityRepo.ListByStaffAndDay(txCtx, staff.ID, domain.DayOfWeek(date))
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get availability: %v", err)
			return fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
		}

		slots, err := scheduling.Compute(scheduling.Params{
			Windows:         windows,
			DurationMinutes: duration,
			Date:            date,
			Now:             now,
			LeadTimeMinutes: settings.MinBookingNoticeMinutes,
		})
		switch {
		case err == nil:
		case errors.Is(err, scheduling.ErrPastDate):
			return ErrPastDate
		case errors.Is(err, scheduling.ErrNoAvailability):
			uc.logger.Warn("CreateAppointment: no slots for staff=%s on %s", staff.ID, date.Format(domain.DateFormat))
			return ErrInvalidTimeSlot
		default:
			uc.logger.Error("CreateAppointment: failed to compute slots: %v", err)
			return fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
		}

		if !containsSlot(slots, req.Time) {
			uc.logger.Warn("CreateAppointment: time %s is not a valid slot for staff=%s", req.Time, staff.ID)
			return ErrInvalidTimeSlot
		}

		// 4.4. Разовые блокировки сотрудника
		blocks, err := uc.availabilityRepo.ListBusyBlocksByStaffAndDate(txCtx, staff.ID, date)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get busy blocks: %v", err)
			return fmt.Errorf("%w: failed to get busy blocks: %v", ErrInternal, err)
		}
		if len(scheduling.ExcludeBusy([]domain.TimeSlot{{Time: req.Time, Available: true}}, duration, blocks)) == 0 {
			uc.logger.Warn("CreateAppointment: time %s is blocked for staff=%s", req.Time, staff.ID)
			return ErrSlotNotAvailable
		}

		// 4.5. Активные записи сотрудника на дату (строки блокируются до конца транзакции)
		existing, err := uc.appointmentRepo.ListActiveByStaffAndDate(txCtx, staff.ID, date)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}
		if scheduling.CountOverlapping(req.Time, duration, existing) > 0 {
			uc.logger.Warn("CreateAppointment: time %s overlaps an active appointment of staff=%s", req.Time, staff.ID)
			return ErrSlotNotAvailable
		}

		// 4.6. Создаем запись
		appointment := &domain.Appointment{
			BusinessID:      staff.BusinessID,
			ServiceID:       service.ID,
			StaffID:         staff.ID,
			CustomerName:    req.CustomerName,
			CustomerEmail:   req.CustomerEmail,
			CustomerPhone:   req.CustomerPhone,
			Date:            date,
			Time:            req.Time,
			DurationMinutes: duration,
			Status:          domain.StatusPending,
			Notes:           ptr.Ptr(buildNotes(service.Name, duration, req.Notes)),
			KVKKConsent:     req.KVKKConsent,
			ETKConsent:      req.ETKConsent,
		}

		created, err = uc.appointmentRepo.Create(txCtx, appointment)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotNotAvailable) {
				uc.logger.Warn("CreateAppointment: slot %s already taken for staff=%s", req.Time, staff.ID)
				return ErrSlotNotAvailable
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		return nil
	})

	if err != nil {
		// Конфликт сериализации при коммите означает, что слот занял параллельный запрос
		if txmanager.IsSerializationFailure(err) {
			uc.logger.Warn("CreateAppointment: serialization conflict for staff=%s at %s", req.StaffID, req.Time)
			return nil, ErrSlotNotAvailable
		}
		return nil, err
	}

	uc.logger.Info("CreateAppointment: created appointment id=%s for staff=%s at %s %s",
		created.ID, created.StaffID, created.Date.Format(domain.DateFormat), created.Time)

	// 5. Профиль клиента и событие - после коммита, ошибки не отменяют запись
	uc.saveCustomerProfile(ctx, req, now)
	uc.publishCreated(ctx, created)

	return toResponse(created), nil
}

func (uc *UseCase) loadCatalog(ctx context.Context, req *Request) (*domain.Staff, *domain.Service, error) {
	staff, err := uc.catalogRepo.GetStaff(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			uc.logger.Warn("CreateAppointment: staff id=%s not found", req.StaffID)
			return nil, nil, ErrStaffNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get staff id=%s: %v", req.StaffID, err)
		return nil, nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%s not found", req.ServiceID)
			return nil, nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("CreateAppointment: service id=%s is disabled", req.ServiceID)
		return nil, nil, ErrServiceNotFound
	}
	if service.BusinessID != staff.BusinessID {
		uc.logger.Warn("CreateAppointment: service id=%s belongs to another business", req.ServiceID)
		return nil, nil, ErrServiceNotProvided
	}

	provides, err := uc.catalogRepo.StaffProvidesService(ctx, staff.ID, service.ID)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to check staff services: %v", err)
		return nil, nil, fmt.Errorf("%w: failed to check staff services: %v", ErrInternal, err)
	}
	if !provides {
		uc.logger.Warn("CreateAppointment: staff id=%s does not provide service id=%s", staff.ID, service.ID)
		return nil, nil, ErrServiceNotProvided
	}

	return staff, service, nil
}

func (uc *UseCase) saveCustomerProfile(ctx context.Context, req *Request, now time.Time) {
	err := uc.catalogRepo.UpsertCustomerProfile(ctx, &domain.CustomerProfile{
		Email:       req.CustomerEmail,
		Name:        req.CustomerName,
		Phone:       req.CustomerPhone,
		KVKKConsent: req.KVKKConsent,
		ETKConsent:  req.ETKConsent,
		ConsentAt:   now,
	})
	if err != nil {
		uc.logger.Warn("CreateAppointment: failed to save customer profile email=%s: %v", req.CustomerEmail, err)
	}
}

func (uc *UseCase) publishCreated(ctx context.Context, appointment *domain.Appointment) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.PublishAppointmentCreated(ctx, appointment); err != nil {
		uc.logger.Warn("CreateAppointment: failed to publish event for appointment id=%s: %v", appointment.ID, err)
	}
}

func (uc *UseCase) observe(err error) {
	if uc.metrics == nil {
		return
	}

	switch {
	case err == nil:
		uc.metrics.IncAppointments(resultCreated)
	case errors.Is(err, ErrSlotNotAvailable):
		uc.metrics.IncAppointments(resultConflict)
	case errors.Is(err, ErrInternal):
		uc.metrics.IncAppointments(resultError)
	default:
		uc.metrics.IncAppointments(resultRejected)
	}
}

// buildNotes формирует примечание записи: услуга и длительность, затем комментарий клиента
func buildNotes(serviceName string, duration int, customerNotes *string) string {
	notes := fmt.Sprintf("Hizmet: %s, Süre: %d dakika", serviceName, duration)
	if customerNotes != nil {
		notes += "\n" + *customerNotes
	}
	return notes
}

func toResponse(a *domain.Appointment) *Response {
	return &Response{
		ID:              a.ID,
		BusinessID:      a.BusinessID,
		ServiceID:       a.ServiceID,
		StaffID:         a.StaffID,
		CustomerName:    a.CustomerName,
		CustomerEmail:   a.CustomerEmail,
		CustomerPhone:   a.CustomerPhone,
		Date:            a.Date,
		Time:            a.Time,
		DurationMinutes: a.DurationMinutes,
		Status:          string(a.Status),
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
	}
}

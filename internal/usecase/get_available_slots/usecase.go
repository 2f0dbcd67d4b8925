package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/randevu-service/internal/domain"
	catalogRepo "github.com/m04kA/randevu-service/internal/infra/storage/catalog"
	settingsRepo "github.com/m04kA/randevu-service/internal/infra/storage/settings"
	"github.com/m04kA/randevu-service/internal/scheduling"
	"github.com/m04kA/randevu-service/pkg/ptr"
)

// Options параметры поведения use case
type Options struct {
	// Location часовой пояс бизнеса: в нём определяются "сегодня" и момент начала слота
	Location *time.Location
	// ExcludeBookedSlots помечать недоступными слоты, занятые активными записями
	ExcludeBookedSlots bool
}

// UseCase use case для получения доступных слотов сотрудника
type UseCase struct {
	availabilityRepo AvailabilityRepository
	appointmentRepo  AppointmentRepository
	settingsRepo     SettingsRepository
	catalogRepo      CatalogRepository
	metrics          MetricsCollector
	timeProvider     TimeProvider
	logger           Logger
	opts             Options
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	settingsRepo SettingsRepository,
	catalogRepo CatalogRepository,
	metrics MetricsCollector,
	logger Logger,
	opts Options,
) *UseCase {
	if opts.Location == nil {
		opts.Location = time.Local
	}

	return &UseCase{
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		settingsRepo:     settingsRepo,
		catalogRepo:      catalogRepo,
		metrics:          metrics,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
		opts:             opts,
	}
}

// Execute выполняет use case получения доступных слотов.
// Для ErrNoWorkingHours и ErrNoFreeSlots вместе с ошибкой возвращается ответ
// с пустым списком слотов и заполненным Reason
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Текущее время и дата запроса в часовом поясе бизнеса
	now := uc.timeProvider.Now().In(uc.opts.Location)
	date := time.Date(req.Date.Year(), req.Date.Month(), req.Date.Day(), 0, 0, 0, 0, uc.opts.Location)

	uc.logger.Info("GetAvailableSlots: staff=%s, service=%s, date=%s",
		req.StaffID, req.ServiceID, date.Format(domain.DateFormat))

	// 3. Сотрудник, услуга и их связь
	staff, err := uc.catalogRepo.GetStaff(ctx, req.StaffID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			uc.logger.Warn("GetAvailableSlots: staff id=%s not found", req.StaffID)
			return nil, ErrStaffNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get staff id=%s: %v", req.StaffID, err)
		return nil, fmt.Errorf("%w: failed to get staff: %v", ErrInternal, err)
	}

	service, err := uc.catalogRepo.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%s not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !service.Active {
		uc.logger.Warn("GetAvailableSlots: service id=%s is disabled", req.ServiceID)
		return nil, ErrServiceNotFound
	}
	if service.BusinessID != staff.BusinessID {
		uc.logger.Warn("GetAvailableSlots: service id=%s belongs to another business", req.ServiceID)
		return nil, ErrServiceNotProvided
	}

	provides, err := uc.catalogRepo.StaffProvidesService(ctx, staff.ID, service.ID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to check staff services: %v", err)
		return nil, fmt.Errorf("%w: failed to check staff services: %v", ErrInternal, err)
	}
	if !provides {
		uc.logger.Warn("GetAvailableSlots: staff id=%s does not provide service id=%s", staff.ID, service.ID)
		return nil, ErrServiceNotProvided
	}

	// 4. Правила записи с учетом иерархии
	settings, err := uc.settingsRepo.GetWithHierarchy(ctx, staff.BusinessID, ptr.Ptr(service.ID))
	if err != nil && !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		uc.logger.Error("GetAvailableSlots: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}
	if settings == nil {
		settings = domain.DefaultBookingSettings(staff.BusinessID)
	}

	// 5. Валидация даты
	if err := validateDate(date, now, settings.AdvanceBookingDays); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	duration := service.EffectiveDuration()
	response := &Response{
		Date:            date,
		StaffID:         staff.ID,
		ServiceID:       service.ID,
		DurationMinutes: duration,
		Slots:           []Slot{},
	}

	// 6. Окна сотрудника на день недели (воскресенье = 0, как в хранилище)
	windows, err := uc.availabilityRepo.ListByStaffAndDay(ctx, staff.ID, domain.DayOfWeek(date))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get availability: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	// 7. Расчёт слотов
	computed, err := scheduling.Compute(scheduling.Params{
		Windows:         windows,
		DurationMinutes: duration,
		Date:            date,
		Now:             now,
		LeadTimeMinutes: settings.MinBookingNoticeMinutes,
	})
	switch {
	case err == nil:
	case errors.Is(err, scheduling.ErrPastDate):
		return nil, ErrPastDate
	case errors.Is(err, scheduling.ErrNoWorkingHours):
		return uc.empty(response, ReasonNoWorkingHours), ErrNoWorkingHours
	case errors.Is(err, scheduling.ErrNoFreeSlots):
		return uc.empty(response, ReasonNoFreeSlots), ErrNoFreeSlots
	case errors.Is(err, scheduling.ErrValidation):
		uc.logger.Error("GetAvailableSlots: invalid availability for staff id=%s: %v", staff.ID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidData, err)
	default:
		return nil, fmt.Errorf("%w: failed to compute slots: %v", ErrInternal, err)
	}

	// 8. Разовые блокировки на дату
	blocks, err := uc.availabilityRepo.ListBusyBlocksByStaffAndDate(ctx, staff.ID, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get busy blocks: %v", err)
		return nil, fmt.Errorf("%w: failed to get busy blocks: %v", ErrInternal, err)
	}
	computed = scheduling.ExcludeBusy(computed, duration, blocks)
	if len(computed) == 0 {
		return uc.empty(response, ReasonNoFreeSlots), ErrNoFreeSlots
	}

	// 9. Занятые записями слоты
	if uc.opts.ExcludeBookedSlots {
		appointments, err := uc.appointmentRepo.ListActiveByStaffAndDate(ctx, staff.ID, date)
		if err != nil {
			uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
			return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}
		computed = scheduling.MarkBooked(computed, duration, appointments)
	}

	response.Slots = make([]Slot, len(computed))
	for i, s := range computed {
		response.Slots[i] = Slot{
			StartTime:       s.Time,
			DurationMinutes: duration,
			Available:       s.Available,
		}
	}

	uc.observe(len(response.Slots))
	uc.logger.Info("GetAvailableSlots: generated %d slots for staff=%s, service=%s, date=%s",
		len(response.Slots), staff.ID, service.ID, date.Format(domain.DateFormat))

	return response, nil
}

func (uc *UseCase) empty(response *Response, reason string) *Response {
	uc.observe(0)
	uc.logger.Info("GetAvailableSlots: no slots for staff=%s on %s: %s",
		response.StaffID, response.Date.Format(domain.DateFormat), reason)

	response.Reason = reason
	return response
}

func (uc *UseCase) observe(count int) {
	if uc.metrics != nil {
		uc.metrics.ObserveSlotsGenerated(count)
	}
}

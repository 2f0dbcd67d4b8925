package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/randevu-service/internal/domain"
	availabilityRepo "github.com/m04kA/randevu-service/internal/infra/storage/availability"
	catalogRepo "github.com/m04kA/randevu-service/internal/infra/storage/catalog"
	"github.com/m04kA/randevu-service/internal/scheduling"
	"github.com/m04kA/randevu-service/internal/service/access"
	"github.com/m04kA/randevu-service/internal/service/availability/models"
	"github.com/m04kA/randevu-service/pkg/types"
)

// Service сервис управления рабочим временем сотрудников
type Service struct {
	availabilityRepo AvailabilityRepository
	catalogRepo      CatalogRepository
	access           AccessChecker
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
	location         *time.Location
}

// NewService создает новый экземпляр сервиса доступности
func NewService(
	availabilityRepo AvailabilityRepository,
	catalogRepo CatalogRepository,
	accessChecker AccessChecker,
	txManager TransactionManager,
	logger Logger,
	location *time.Location,
) *Service {
	if location == nil {
		location = time.Local
	}

	return &Service{
		availabilityRepo: availabilityRepo,
		catalogRepo:      catalogRepo,
		access:           accessChecker,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
		location:         location,
	}
}

// List возвращает окна сотрудника, упорядоченные по дню недели и времени начала
func (s *Service) List(ctx context.Context, identity *domain.Identity, staffID uuid.UUID) (*models.WindowListResponse, error) {
	s.logger.Info("List: fetching availability for staff=%s", staffID)

	if _, err := s.authorizeStaff(ctx, identity, staffID); err != nil {
		return nil, err
	}

	windows, err := s.availabilityRepo.ListByStaff(ctx, staffID)
	if err != nil {
		s.logger.Error("List: repository error for staff=%s: %v", staffID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d windows for staff=%s", len(windows), staffID)
	return models.FromDomainWindowList(windows), nil
}

// Create добавляет активное окно доступности
func (s *Service) Create(ctx context.Context, identity *domain.Identity, staffID uuid.UUID, req *models.CreateWindowRequest) (*models.WindowResponse, error) {
	s.logger.Info("Create: adding window day=%d %s-%s for staff=%s", req.DayOfWeek, req.StartTime, req.EndTime, staffID)

	if err := validateWindow(req); err != nil {
		s.logger.Warn("Create: validation failed: %v", err)
		return nil, err
	}

	if _, err := s.authorizeStaff(ctx, identity, staffID); err != nil {
		return nil, err
	}

	created, err := s.availabilityRepo.Create(ctx, &domain.AvailabilityWindow{
		StaffID:   staffID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Active:    true,
	})
	if err != nil {
		s.logger.Error("Create: repository error for staff=%s: %v", staffID, err)
		return nil, fmt.Errorf("%w: Create - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Create: created window id=%s for staff=%s", created.ID, staffID)
	return models.FromDomainWindow(created), nil
}

// Toggle переключает активность окна
func (s *Service) Toggle(ctx context.Context, identity *domain.Identity, id uuid.UUID) (*models.WindowResponse, error) {
	s.logger.Info("Toggle: toggling window id=%s", id)

	window, err := s.getWindow(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.authorizeStaff(ctx, identity, window.StaffID); err != nil {
		return nil, err
	}

	window.Active = !window.Active
	if err := s.availabilityRepo.SetActive(ctx, id, window.Active); err != nil {
		if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
			return nil, ErrWindowNotFound
		}
		s.logger.Error("Toggle: repository error for window id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Toggle - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Toggle: window id=%s is now active=%t", id, window.Active)
	return models.FromDomainWindow(window), nil
}

// Delete удаляет окно доступности
func (s *Service) Delete(ctx context.Context, identity *domain.Identity, id uuid.UUID) error {
	s.logger.Info("Delete: deleting window id=%s", id)

	window, err := s.getWindow(ctx, id)
	if err != nil {
		return err
	}

	if _, err := s.authorizeStaff(ctx, identity, window.StaffID); err != nil {
		return err
	}

	if err := s.availabilityRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
			return ErrWindowNotFound
		}
		s.logger.Error("Delete: repository error for window id=%s: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted window id=%s", id)
	return nil
}

// Copy копирует все окна сотрудника (вместе с флагом активности) другим сотрудникам того же бизнеса.
// Все вставки выполняются в одной транзакции
func (s *Service) Copy(ctx context.Context, identity *domain.Identity, sourceStaffID uuid.UUID, req *models.CopyRequest) (*models.CopyResponse, error) {
	s.logger.Info("Copy: copying availability of staff=%s to %d staff", sourceStaffID, len(req.TargetStaffIDs))

	targetIDs, err := uniqueTargets(sourceStaffID, req.TargetStaffIDs)
	if err != nil {
		s.logger.Warn("Copy: validation failed: %v", err)
		return nil, err
	}

	source, err := s.authorizeStaff(ctx, identity, sourceStaffID)
	if err != nil {
		return nil, err
	}

	targets, err := s.catalogRepo.ListStaffByIDs(ctx, targetIDs)
	if err != nil {
		s.logger.Error("Copy: failed to get target staff: %v", err)
		return nil, fmt.Errorf("%w: Copy - failed to get target staff: %v", ErrInternal, err)
	}
	if len(targets) != len(targetIDs) {
		s.logger.Warn("Copy: found %d of %d target staff", len(targets), len(targetIDs))
		return nil, ErrStaffNotFound
	}
	for _, target := range targets {
		if target.BusinessID != source.BusinessID {
			s.logger.Warn("Copy: staff=%s belongs to business=%s, source business=%s",
				target.ID, target.BusinessID, source.BusinessID)
			return nil, ErrDifferentBusiness
		}
	}

	var copied int64
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		windows, err := s.availabilityRepo.ListByStaff(txCtx, sourceStaffID)
		if err != nil {
			return fmt.Errorf("%w: Copy - failed to get source windows: %v", ErrInternal, err)
		}
		if len(windows) == 0 {
			return nil
		}

		batch := make([]domain.AvailabilityWindow, 0, len(windows)*len(targets))
		for _, target := range targets {
			for _, w := range windows {
				batch = append(batch, domain.AvailabilityWindow{
					StaffID:   target.ID,
					DayOfWeek: w.DayOfWeek,
					StartTime: w.StartTime,
					EndTime:   w.EndTime,
					Active:    w.Active,
				})
			}
		}

		copied, err = s.availabilityRepo.CreateBatch(txCtx, batch)
		if err != nil {
			return fmt.Errorf("%w: Copy - failed to insert windows: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Copy: transaction failed for staff=%s: %v", sourceStaffID, err)
		if errors.Is(err, ErrInternal) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	s.logger.Info("Copy: copied %d windows from staff=%s to %d staff", copied, sourceStaffID, len(targets))
	return &models.CopyResponse{Copied: copied, Targets: len(targets)}, nil
}

// CreateBusyBlock блокирует время сотрудника на конкретную дату.
// Конец блокировки = начало + длительность, не позже 24:00
func (s *Service) CreateBusyBlock(ctx context.Context, identity *domain.Identity, staffID uuid.UUID, req *models.CreateBusyBlockRequest) (*models.BusyBlockResponse, error) {
	s.logger.Info("CreateBusyBlock: staff=%s, date=%s, start=%s, duration=%d",
		staffID, req.Date, req.StartTime, req.DurationMinutes)

	date, end, err := s.validateBusyBlock(req)
	if err != nil {
		s.logger.Warn("CreateBusyBlock: validation failed: %v", err)
		return nil, err
	}

	if _, err := s.authorizeStaff(ctx, identity, staffID); err != nil {
		return nil, err
	}

	created, err := s.availabilityRepo.CreateBusyBlock(ctx, &domain.BusyBlock{
		StaffID:   staffID,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   end,
		Reason:    req.Reason,
	})
	if err != nil {
		s.logger.Error("CreateBusyBlock: repository error for staff=%s: %v", staffID, err)
		return nil, fmt.Errorf("%w: CreateBusyBlock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBusyBlock: created block id=%s for staff=%s", created.ID, staffID)
	return models.FromDomainBusyBlock(created), nil
}

// DeleteBusyBlock удаляет блокировку
func (s *Service) DeleteBusyBlock(ctx context.Context, identity *domain.Identity, id uuid.UUID) error {
	s.logger.Info("DeleteBusyBlock: deleting block id=%s", id)

	block, err := s.availabilityRepo.GetBusyBlockByID(ctx, id)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrBusyBlockNotFound) {
			s.logger.Warn("DeleteBusyBlock: block id=%s not found", id)
			return ErrBusyBlockNotFound
		}
		s.logger.Error("DeleteBusyBlock: repository error for block id=%s: %v", id, err)
		return fmt.Errorf("%w: DeleteBusyBlock - repository error: %v", ErrInternal, err)
	}

	if _, err := s.authorizeStaff(ctx, identity, block.StaffID); err != nil {
		return err
	}

	if err := s.availabilityRepo.DeleteBusyBlock(ctx, id); err != nil {
		if errors.Is(err, availabilityRepo.ErrBusyBlockNotFound) {
			return ErrBusyBlockNotFound
		}
		s.logger.Error("DeleteBusyBlock: repository error for block id=%s: %v", id, err)
		return fmt.Errorf("%w: DeleteBusyBlock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBusyBlock: deleted block id=%s", id)
	return nil
}

func (s *Service) getWindow(ctx context.Context, id uuid.UUID) (*domain.AvailabilityWindow, error) {
	window, err := s.availabilityRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrWindowNotFound) {
			s.logger.Warn("getWindow: window id=%s not found", id)
			return nil, ErrWindowNotFound
		}
		s.logger.Error("getWindow: repository error for window id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: getWindow - repository error: %v", ErrInternal, err)
	}
	return window, nil
}

// authorizeStaff загружает сотрудника и проверяет права на его бизнес
func (s *Service) authorizeStaff(ctx context.Context, identity *domain.Identity, staffID uuid.UUID) (*domain.Staff, error) {
	staff, err := s.catalogRepo.GetStaff(ctx, staffID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrStaffNotFound) {
			s.logger.Warn("authorizeStaff: staff id=%s not found", staffID)
			return nil, ErrStaffNotFound
		}
		s.logger.Error("authorizeStaff: failed to get staff id=%s: %v", staffID, err)
		return nil, fmt.Errorf("%w: authorizeStaff - failed to get staff: %v", ErrInternal, err)
	}

	if err := s.access.CheckBusiness(ctx, identity, staff.BusinessID); err != nil {
		if errors.Is(err, access.ErrAccessDenied) || errors.Is(err, access.ErrUnauthenticated) {
			s.logger.Warn("authorizeStaff: access denied to staff=%s", staffID)
			return nil, ErrAccessDenied
		}
		s.logger.Error("authorizeStaff: failed to check access to staff=%s: %v", staffID, err)
		return nil, fmt.Errorf("%w: authorizeStaff - %v", ErrInternal, err)
	}

	return staff, nil
}

func validateWindow(req *models.CreateWindowRequest) error {
	if !domain.IsValidDayOfWeek(req.DayOfWeek) {
		return fmt.Errorf("%w: dayOfWeek must be between 0 and 6", ErrInvalidInput)
	}

	start, err := req.StartTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	end, err := req.EndTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid endTime: %v", ErrInvalidInput, err)
	}
	if start >= end {
		return fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	return nil
}

func (s *Service) validateBusyBlock(req *models.CreateBusyBlockRequest) (time.Time, types.TimeString, error) {
	date, err := time.ParseInLocation(domain.DateFormat, req.Date, s.location)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: invalid date format, expected YYYY-MM-DD", ErrInvalidInput)
	}

	if scheduling.IsPastDate(date, s.timeProvider.Now().In(s.location)) {
		return time.Time{}, "", ErrPastDate
	}

	if req.DurationMinutes <= 0 || req.DurationMinutes > domain.MaxServiceDurationMinutes {
		return time.Time{}, "", fmt.Errorf("%w: durationMinutes must be between 1 and %d",
			ErrInvalidInput, domain.MaxServiceDurationMinutes)
	}

	if err := req.StartTime.ValidateStart(); err != nil {
		return time.Time{}, "", fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}

	end, err := req.StartTime.AddMinutes(req.DurationMinutes)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("%w: busy block must end by 24:00", ErrInvalidInput)
	}

	return date, end, nil
}

// uniqueTargets убирает повторы и проверяет, что источник не входит в список целей
func uniqueTargets(sourceID uuid.UUID, targetIDs []uuid.UUID) ([]uuid.UUID, error) {
	if len(targetIDs) == 0 {
		return nil, fmt.Errorf("%w: targetStaffIds is required", ErrInvalidInput)
	}

	seen := make(map[uuid.UUID]struct{}, len(targetIDs))
	result := make([]uuid.UUID, 0, len(targetIDs))
	for _, id := range targetIDs {
		if id == uuid.Nil || id == sourceID {
			return nil, fmt.Errorf("%w: invalid target staff id %s", ErrInvalidInput, id)
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}

	return result, nil
}

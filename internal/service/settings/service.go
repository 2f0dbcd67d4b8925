package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/randevu-service/internal/domain"
	catalogRepo "github.com/m04kA/randevu-service/internal/infra/storage/catalog"
	settingsRepo "github.com/m04kA/randevu-service/internal/infra/storage/settings"
	"github.com/m04kA/randevu-service/internal/service/access"
	"github.com/m04kA/randevu-service/internal/service/settings/models"
)

// Service сервис для работы с правилами записи бизнеса
type Service struct {
	settingsRepo SettingsRepository
	catalogRepo  CatalogRepository
	access       AccessChecker
	logger       Logger
}

// NewService создает новый экземпляр сервиса правил записи
func NewService(
	settingsRepo SettingsRepository,
	catalogRepo CatalogRepository,
	accessChecker AccessChecker,
	logger Logger,
) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		catalogRepo:  catalogRepo,
		access:       accessChecker,
		logger:       logger,
	}
}

// Get получает действующие правила с учетом иерархии.
// Приоритет: услуга > бизнес > значения по умолчанию. Публичный метод
func (s *Service) Get(ctx context.Context, businessID uuid.UUID, serviceID *uuid.UUID) (*models.SettingsResponse, error) {
	s.logger.Info("Get: fetching settings for business=%s, service=%v", businessID, serviceID)

	if err := s.ensureBusiness(ctx, "Get", businessID); err != nil {
		return nil, err
	}

	settings, err := s.settingsRepo.GetWithHierarchy(ctx, businessID, serviceID)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Error("Get: repository error for business=%s: %v", businessID, err)
			return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
		}
		s.logger.Info("Get: using default settings for business=%s", businessID)
		settings = domain.DefaultBookingSettings(businessID)
	}

	resp := models.FromDomainSettings(settings)
	s.logger.Info("Get: resolved settings for business=%s (level: %s)", businessID, resp.Level)
	return resp, nil
}

// List получает все правила бизнеса. Доступно только администраторам бизнеса
func (s *Service) List(ctx context.Context, identity *domain.Identity, businessID uuid.UUID) (*models.SettingsListResponse, error) {
	s.logger.Info("List: fetching settings for business=%s", businessID)

	if err := s.checkBusinessAccess(ctx, identity, businessID); err != nil {
		return nil, err
	}

	list, err := s.settingsRepo.ListByBusiness(ctx, businessID)
	if err != nil {
		s.logger.Error("List: repository error for business=%s: %v", businessID, err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d settings for business=%s", len(list), businessID)
	return models.FromDomainSettingsList(list), nil
}

// Upsert создает правила для бизнеса (или услуги) либо обновляет существующие.
// Доступно только администраторам бизнеса
func (s *Service) Upsert(ctx context.Context, identity *domain.Identity, req *models.UpsertSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Upsert: saving settings for business=%s, service=%v", req.BusinessID, req.ServiceID)

	// 1. Валидируем входные данные
	if err := validateSettings(req.MinBookingNoticeMinutes, req.AdvanceBookingDays); err != nil {
		s.logger.Warn("Upsert: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем бизнес и права доступа
	if err := s.ensureBusiness(ctx, "Upsert", req.BusinessID); err != nil {
		return nil, err
	}
	if err := s.checkBusinessAccess(ctx, identity, req.BusinessID); err != nil {
		return nil, err
	}

	// 3. Услуга должна принадлежать бизнесу
	if req.ServiceID != nil {
		service, err := s.catalogRepo.GetService(ctx, *req.ServiceID)
		if err != nil {
			if errors.Is(err, catalogRepo.ErrServiceNotFound) {
				s.logger.Warn("Upsert: service id=%s not found", *req.ServiceID)
				return nil, ErrServiceNotFound
			}
			s.logger.Error("Upsert: failed to get service id=%s: %v", *req.ServiceID, err)
			return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
		}
		if service.BusinessID != req.BusinessID {
			s.logger.Warn("Upsert: service id=%s belongs to another business", *req.ServiceID)
			return nil, ErrServiceNotFound
		}
	}

	// 4. Обновляем существующие правила или создаем новые
	existing, err := s.settingsRepo.GetByBusinessAndService(ctx, req.BusinessID, req.ServiceID)
	if err != nil && !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
		s.logger.Error("Upsert: failed to check existing settings: %v", err)
		return nil, fmt.Errorf("%w: failed to check existing settings: %v", ErrInternal, err)
	}

	var saved *domain.BookingSettings
	if existing != nil {
		saved, err = s.settingsRepo.Update(ctx, existing.ID, req.ToDomainSettings())
	} else {
		saved, err = s.settingsRepo.Create(ctx, req.ToDomainSettings())
	}
	if err != nil {
		s.logger.Error("Upsert: repository error for business=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: saved settings id=%s for business=%s", saved.ID, req.BusinessID)
	return models.FromDomainSettings(saved), nil
}

// Delete удаляет правила бизнеса или услуги. Доступно только администраторам бизнеса
func (s *Service) Delete(ctx context.Context, identity *domain.Identity, businessID uuid.UUID, serviceID *uuid.UUID) error {
	s.logger.Info("Delete: deleting settings for business=%s, service=%v", businessID, serviceID)

	if err := s.checkBusinessAccess(ctx, identity, businessID); err != nil {
		return err
	}

	if err := s.settingsRepo.Delete(ctx, businessID, serviceID); err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Warn("Delete: settings for business=%s, service=%v not found", businessID, serviceID)
			return ErrSettingsNotFound
		}
		s.logger.Error("Delete: repository error for business=%s: %v", businessID, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: deleted settings for business=%s, service=%v", businessID, serviceID)
	return nil
}

func (s *Service) ensureBusiness(ctx context.Context, op string, businessID uuid.UUID) error {
	if _, err := s.catalogRepo.GetBusiness(ctx, businessID); err != nil {
		if errors.Is(err, catalogRepo.ErrBusinessNotFound) {
			s.logger.Warn("%s: business id=%s not found", op, businessID)
			return ErrBusinessNotFound
		}
		s.logger.Error("%s: failed to get business id=%s: %v", op, businessID, err)
		return fmt.Errorf("%w: %s - failed to get business: %v", ErrInternal, op, err)
	}
	return nil
}

func (s *Service) checkBusinessAccess(ctx context.Context, identity *domain.Identity, businessID uuid.UUID) error {
	err := s.access.CheckBusiness(ctx, identity, businessID)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, access.ErrAccessDenied), errors.Is(err, access.ErrUnauthenticated):
		s.logger.Warn("checkBusinessAccess: access denied to business=%s", businessID)
		return ErrAccessDenied
	default:
		s.logger.Error("checkBusinessAccess: failed to check access to business=%s: %v", businessID, err)
		return fmt.Errorf("%w: checkBusinessAccess - %v", ErrInternal, err)
	}
}

// validateSettings проверяет диапазоны правил записи
func validateSettings(minBookingNoticeMinutes, advanceBookingDays int) error {
	if minBookingNoticeMinutes < domain.MinBookingNoticeMinutes || minBookingNoticeMinutes > domain.MaxBookingNoticeMinutes {
		return fmt.Errorf("%w: minBookingNoticeMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinBookingNoticeMinutes, domain.MaxBookingNoticeMinutes)
	}

	if advanceBookingDays < domain.MinAdvanceBookingDays || advanceBookingDays > domain.MaxAdvanceBookingDays {
		return fmt.Errorf("%w: advanceBookingDays must be between %d and %d",
			ErrInvalidInput, domain.MinAdvanceBookingDays, domain.MaxAdvanceBookingDays)
	}

	return nil
}

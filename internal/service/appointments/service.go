package appointments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/randevu-service/internal/domain"
	appointmentRepo "github.com/m04kA/randevu-service/internal/infra/storage/appointment"
	"github.com/m04kA/randevu-service/internal/service/access"
	"github.com/m04kA/randevu-service/internal/service/appointments/models"
)

// Service сервис для работы с записями
type Service struct {
	appointmentRepo AppointmentRepository
	access          AccessChecker
	publisher       EventPublisher
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	accessChecker AccessChecker,
	publisher EventPublisher,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		access:          accessChecker,
		publisher:       publisher,
		logger:          logger,
	}
}

// GetByID получает запись по ID.
// Доступно клиенту, чей email совпадает с email записи, и администраторам бизнеса
func (s *Service) GetByID(ctx context.Context, identity *domain.Identity, id uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s", id)

	appointment, err := s.getAppointment(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if !isCustomer(identity, appointment) {
		if err := s.checkBusinessAccess(ctx, identity, appointment.BusinessID); err != nil {
			s.logger.Warn("GetByID: access denied to appointment id=%s", id)
			return nil, err
		}
	}

	s.logger.Info("GetByID: successfully fetched appointment id=%s", id)
	return models.FromDomainAppointment(appointment), nil
}

// GetCustomerAppointments получает записи текущего пользователя по его email.
// Опционально фильтрует по статусу
func (s *Service) GetCustomerAppointments(ctx context.Context, identity *domain.Identity, status *string) (*models.AppointmentListResponse, error) {
	if identity == nil || identity.Email == "" {
		return nil, ErrAccessDenied
	}

	email := normalizeEmail(identity.Email)
	s.logger.Info("GetCustomerAppointments: fetching appointments for email=%s, status=%v", email, status)

	filter := domain.AppointmentsFilter{
		CustomerEmail:    &email,
		IncludeCancelled: true,
	}
	if status != nil {
		domainStatus, err := models.ToDomainStatus(*status)
		if err != nil {
			s.logger.Warn("GetCustomerAppointments: invalid status=%s", *status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &domainStatus
	}

	appointments, err := s.appointmentRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetCustomerAppointments: repository error for email=%s: %v", email, err)
		return nil, fmt.Errorf("%w: GetCustomerAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerAppointments: fetched %d appointments for email=%s", len(appointments), email)
	return models.FromDomainAppointmentList(appointments), nil
}

// GetBusinessAppointments получает записи бизнеса с фильтрацией по периоду, сотруднику и статусу.
// Доступно только администраторам бизнеса
func (s *Service) GetBusinessAppointments(ctx context.Context, identity *domain.Identity, req *models.GetBusinessAppointmentsRequest) (*models.AppointmentListResponse, error) {
	logMsg := fmt.Sprintf("GetBusinessAppointments: fetching appointments for business=%s", req.BusinessID)
	if req.StaffID != nil {
		logMsg += fmt.Sprintf(", staff=%s", *req.StaffID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeCancelled {
		logMsg += ", includeCancelled=true"
	}
	s.logger.Info(logMsg)

	if err := s.checkBusinessAccess(ctx, identity, req.BusinessID); err != nil {
		return nil, err
	}

	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		return nil, fmt.Errorf("%w: endDate is before startDate", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetBusinessAppointments: invalid filter for business=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBusinessAppointments: repository error for business=%s: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: GetBusinessAppointments - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBusinessAppointments: fetched %d appointments for business=%s", len(appointments), req.BusinessID)
	return models.FromDomainAppointmentList(appointments), nil
}

// UpdateStatus обновляет статус записи. Доступно только администраторам бизнеса
func (s *Service) UpdateStatus(ctx context.Context, identity *domain.Identity, id uuid.UUID, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: updating appointment id=%s to status=%s", id, req.Status)

	newStatus, err := models.ToDomainStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s", req.Status)
		return nil, ErrInvalidStatus
	}

	appointment, err := s.getAppointment(ctx, "UpdateStatus", id)
	if err != nil {
		return nil, err
	}

	if err := s.checkBusinessAccess(ctx, identity, appointment.BusinessID); err != nil {
		return nil, err
	}

	previous := appointment.Status
	if previous == newStatus {
		return models.FromDomainAppointment(appointment), nil
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		switch {
		case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
			return nil, ErrAppointmentNotFound
		case errors.Is(err, appointmentRepo.ErrSlotNotAvailable):
			s.logger.Warn("UpdateStatus: appointment id=%s overlaps an active appointment", id)
			return nil, ErrSlotNotAvailable
		default:
			s.logger.Error("UpdateStatus: repository error for appointment id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
		}
	}

	appointment.Status = newStatus
	s.publishStatusChanged(ctx, appointment, previous)

	s.logger.Info("UpdateStatus: appointment id=%s status %s -> %s", id, previous, newStatus)
	return models.FromDomainAppointment(appointment), nil
}

// Cancel отменяет запись. Клиент может отменить свою запись, администратор - любую запись бизнеса.
// Отменить можно только записи в статусе pending или confirmed
func (s *Service) Cancel(ctx context.Context, identity *domain.Identity, id uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("Cancel: cancelling appointment id=%s", id)

	appointment, err := s.getAppointment(ctx, "Cancel", id)
	if err != nil {
		return nil, err
	}

	if !isCustomer(identity, appointment) {
		if err := s.checkBusinessAccess(ctx, identity, appointment.BusinessID); err != nil {
			s.logger.Warn("Cancel: access denied to appointment id=%s", id)
			return nil, err
		}
	}

	if !appointment.CanBeCancelled() {
		s.logger.Warn("Cancel: appointment id=%s cannot be cancelled, status=%s", id, appointment.Status)
		return nil, ErrCannotCancel
	}

	if err := s.appointmentRepo.Cancel(ctx, id); err != nil {
		if errors.Is(err, appointmentRepo.ErrCannotCancel) {
			s.logger.Warn("Cancel: appointment id=%s changed status concurrently", id)
			return nil, ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for appointment id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	previous := appointment.Status
	appointment.Status = domain.StatusCancelled
	s.publishStatusChanged(ctx, appointment, previous)

	s.logger.Info("Cancel: successfully cancelled appointment id=%s", id)
	return models.FromDomainAppointment(appointment), nil
}

func (s *Service) getAppointment(ctx context.Context, op string, id uuid.UUID) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%s not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appointment, nil
}

// checkBusinessAccess проверяет, что пользователь управляет бизнесом
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

func (s *Service) publishStatusChanged(ctx context.Context, appointment *domain.Appointment, previous domain.AppointmentStatus) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishStatusChanged(ctx, appointment, previous); err != nil {
		s.logger.Warn("publishStatusChanged: failed to publish event for appointment id=%s: %v", appointment.ID, err)
	}
}

// isCustomer проверяет, что пользователь - клиент этой записи
func isCustomer(identity *domain.Identity, appointment *domain.Appointment) bool {
	return identity != nil && identity.Email != "" &&
		normalizeEmail(identity.Email) == normalizeEmail(appointment.CustomerEmail)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

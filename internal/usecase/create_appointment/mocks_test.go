package create_appointment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/randevu-service/internal/domain"
)

type mockAppointmentRepo struct{ mock.Mock }

func (m *mockAppointmentRepo) Create(ctx context.Context, appointment *domain.Appointment) (*domain.Appointment, error) {
	args := m.Called(ctx, appointment)
	if fn, ok := args.Get(0).(func(context.Context, *domain.Appointment) *domain.Appointment); ok {
		return fn(ctx, appointment), args.Error(1)
	}
	created, _ := args.Get(0).(*domain.Appointment)
	return created, args.Error(1)
}

func (m *mockAppointmentRepo) ListActiveByStaffAndDate(ctx context.Context, staffID uuid.UUID, date time.Time) ([]*domain.Appointment, error) {
	args := m.Called(ctx, staffID, date)
	appointments, _ := args.Get(0).([]*domain.Appointment)
	return appointments, args.Error(1)
}

type mockAvailabilityRepo struct{ mock.Mock }

func (m *mockAvailabilityRepo) ListByStaffAndDay(ctx context.Context, staffID uuid.UUID, dayOfWeek int) ([]domain.AvailabilityWindow, error) {
	args := m.Called(ctx, staffID, dayOfWeek)
	windows, _ := args.Get(0).([]domain.AvailabilityWindow)
	return windows, args.Error(1)
}

func (m *mockAvailabilityRepo) ListBusyBlocksByStaffAndDate(ctx context.Context, staffID uuid.UUID, date time.Time) ([]domain.BusyBlock, error) {
	args := m.Called(ctx, staffID, date)
	blocks, _ := args.Get(0).([]domain.BusyBlock)
	return blocks, args.Error(1)
}

type mockSettingsRepo struct{ mock.Mock }

func (m *mockSettingsRepo) GetWithHierarchy(ctx context.Context, businessID uuid.UUID, serviceID *uuid.UUID) (*domain.BookingSettings, error) {
	args := m.Called(ctx, businessID, serviceID)
	settings, _ := args.Get(0).(*domain.BookingSettings)
	return settings, args.Error(1)
}

type mockCatalogRepo struct{ mock.Mock }

func (m *mockCatalogRepo) GetStaff(ctx context.Context, id uuid.UUID) (*domain.Staff, error) {
	args := m.Called(ctx, id)
	staff, _ := args.Get(0).(*domain.Staff)
	return staff, args.Error(1)
}

func (m *mockCatalogRepo) GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	args := m.Called(ctx, id)
	service, _ := args.Get(0).(*domain.Service)
	return service, args.Error(1)
}

func (m *mockCatalogRepo) StaffProvidesService(ctx context.Context, staffID, serviceID uuid.UUID) (bool, error) {
	args := m.Called(ctx, staffID, serviceID)
	return args.Bool(0), args.Error(1)
}

func (m *mockCatalogRepo) UpsertCustomerProfile(ctx context.Context, profile *domain.CustomerProfile) error {
	return m.Called(ctx, profile).Error(0)
}

type mockPublisher struct{ mock.Mock }

func (m *mockPublisher) PublishAppointmentCreated(ctx context.Context, appointment *domain.Appointment) error {
	return m.Called(ctx, appointment).Error(0)
}

type mockMetrics struct{ mock.Mock }

func (m *mockMetrics) IncAppointments(result string) {
	m.Called(result)
}

// inlineTx выполняет fn без транзакции. commitErr имитирует ошибку коммита
type inlineTx struct {
	commitErr error
}

func (tx inlineTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		return err
	}
	return tx.commitErr
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

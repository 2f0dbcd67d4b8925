package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/randevu-service/internal/domain"
)

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

type mockAppointmentRepo struct{ mock.Mock }

func (m *mockAppointmentRepo) ListActiveByStaffAndDate(ctx context.Context, staffID uuid.UUID, date time.Time) ([]*domain.Appointment, error) {
	args := m.Called(ctx, staffID, date)
	appointments, _ := args.Get(0).([]*domain.Appointment)
	return appointments, args.Error(1)
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

type mockMetrics struct{ mock.Mock }

func (m *mockMetrics) ObserveSlotsGenerated(count int) {
	m.Called(count)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

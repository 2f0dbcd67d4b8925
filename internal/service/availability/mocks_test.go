package availability

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/randevu-service/internal/domain"
)

type mockAvailabilityRepo struct{ mock.Mock }

func (m *mockAvailabilityRepo) ListByStaff(ctx context.Context, staffID uuid.UUID) ([]domain.AvailabilityWindow, error) {
	args := m.Called(ctx, staffID)
	windows, _ := args.Get(0).([]domain.AvailabilityWindow)
	return windows, args.Error(1)
}

func (m *mockAvailabilityRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.AvailabilityWindow, error) {
	args := m.Called(ctx, id)
	window, _ := args.Get(0).(*domain.AvailabilityWindow)
	return window, args.Error(1)
}

func (m *mockAvailabilityRepo) Create(ctx context.Context, window *domain.AvailabilityWindow) (*domain.AvailabilityWindow, error) {
	args := m.Called(ctx, window)
	created, _ := args.Get(0).(*domain.AvailabilityWindow)
	return created, args.Error(1)
}

func (m *mockAvailabilityRepo) CreateBatch(ctx context.Context, windows []domain.AvailabilityWindow) (int64, error) {
	args := m.Called(ctx, windows)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockAvailabilityRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func (m *mockAvailabilityRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockAvailabilityRepo) CreateBusyBlock(ctx context.Context, block *domain.BusyBlock) (*domain.BusyBlock, error) {
	args := m.Called(ctx, block)
	created, _ := args.Get(0).(*domain.BusyBlock)
	return created, args.Error(1)
}

func (m *mockAvailabilityRepo) GetBusyBlockByID(ctx context.Context, id uuid.UUID) (*domain.BusyBlock, error) {
	args := m.Called(ctx, id)
	block, _ := args.Get(0).(*domain.BusyBlock)
	return block, args.Error(1)
}

func (m *mockAvailabilityRepo) DeleteBusyBlock(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type mockCatalogRepo struct{ mock.Mock }

func (m *mockCatalogRepo) GetStaff(ctx context.Context, id uuid.UUID) (*domain.Staff, error) {
	args := m.Called(ctx, id)
	staff, _ := args.Get(0).(*domain.Staff)
	return staff, args.Error(1)
}

func (m *mockCatalogRepo) ListStaffByIDs(ctx context.Context, ids []uuid.UUID) ([]*domain.Staff, error) {
	args := m.Called(ctx, ids)
	staff, _ := args.Get(0).([]*domain.Staff)
	return staff, args.Error(1)
}

type mockAccess struct{ mock.Mock }

func (m *mockAccess) CheckBusiness(ctx context.Context, identity *domain.Identity, businessID uuid.UUID) error {
	return m.Called(ctx, identity, businessID).Error(0)
}

type inlineTx struct{}

func (inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

package settings

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/randevu-service/internal/domain"
	catalogRepo "github.com/m04kA/randevu-service/internal/infra/storage/catalog"
	settingsRepo "github.com/m04kA/randevu-service/internal/infra/storage/settings"
	"github.com/m04kA/randevu-service/internal/service/access"
	"github.com/m04kA/randevu-service/internal/service/settings/models"
)

type mockSettingsRepo struct{ mock.Mock }

func (m *mockSettingsRepo) Create(ctx context.Context, settings *domain.BookingSettings) (*domain.BookingSettings, error) {
	args := m.Called(ctx, settings)
	created, _ := args.Get(0).(*domain.BookingSettings)
	return created, args.Error(1)
}

func (m *mockSettingsRepo) GetByBusinessAndService(ctx context.Context, businessID uuid.UUID, serviceID *uuid.UUID) (*domain.BookingSettings, error) {
	args := m.Called(ctx, businessID, serviceID)
	settings, _ := args.Get(0).(*domain.BookingSettings)
	return settings, args.Error(1)
}

func (m *mockSettingsRepo) GetWithHierarchy(ctx context.Context, businessID uuid.UUID, serviceID *uuid.UUID) (*domain.BookingSettings, error) {
	args := m.Called(ctx, businessID, serviceID)
	settings, _ := args.Get(0).(*domain.BookingSettings)
	return settings, args.Error(1)
}

func (m *mockSettingsRepo) ListByBusiness(ctx context.Context, businessID uuid.UUID) ([]*domain.BookingSettings, error) {
	args := m.Called(ctx, businessID)
	list, _ := args.Get(0).([]*domain.BookingSettings)
	return list, args.Error(1)
}

func (m *mockSettingsRepo) Update(ctx context.Context, id uuid.UUID, settings *domain.BookingSettings) (*domain.BookingSettings, error) {
	args := m.Called(ctx, id, settings)
	updated, _ := args.Get(0).(*domain.BookingSettings)
	return updated, args.Error(1)
}

func (m *mockSettingsRepo) Delete(ctx context.Context, businessID uuid.UUID, serviceID *uuid.UUID) error {
	return m.Called(ctx, businessID, serviceID).Error(0)
}

type mockCatalogRepo struct{ mock.Mock }

func (m *mockCatalogRepo) GetBusiness(ctx context.Context, id uuid.UUID) (*domain.Business, error) {
	args := m.Called(ctx, id)
	business, _ := args.Get(0).(*domain.Business)
	return business, args.Error(1)
}

func (m *mockCatalogRepo) GetService(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	args := m.Called(ctx, id)
	service, _ := args.Get(0).(*domain.Service)
	return service, args.Error(1)
}

type mockAccess struct{ mock.Mock }

func (m *mockAccess) CheckBusiness(ctx context.Context, identity *domain.Identity, businessID uuid.UUID) error {
	return m.Called(ctx, identity, businessID).Error(0)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	repo    *mockSettingsRepo
	catalog *mockCatalogRepo
	access  *mockAccess
	svc     *Service

	business *domain.Business
	admin    *domain.Identity
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		repo:     &mockSettingsRepo{},
		catalog:  &mockCatalogRepo{},
		access:   &mockAccess{},
		business: &domain.Business{ID: uuid.New(), Name: "Salon Elif"},
		admin:    &domain.Identity{UserID: uuid.New(), Role: domain.RoleBusinessOwner},
	}
	f.svc = NewService(f.repo, f.catalog, f.access, nopLogger{})

	t.Cleanup(func() {
		f.repo.AssertExpectations(t)
		f.catalog.AssertExpectations(t)
		f.access.AssertExpectations(t)
	})

	return f
}

func TestService_Get_Defaults(t *testing.T) {
	f := newFixture(t)

	f.catalog.On("GetBusiness", mock.Anything, f.business.ID).Return(f.business, nil)
	f.repo.On("GetWithHierarchy", mock.Anything, f.business.ID, (*uuid.UUID)(nil)).Return(nil, settingsRepo.ErrSettingsNotFound)

	resp, err := f.svc.Get(context.Background(), f.business.ID, nil)
	require.NoError(t, err)
	assert.Equal(t, models.LevelDefault, resp.Level)
	assert.Nil(t, resp.ID)
	assert.Equal(t, domain.DefaultMinBookingNoticeMinutes, resp.MinBookingNoticeMinutes)
	assert.Equal(t, domain.DefaultAdvanceBookingDays, resp.AdvanceBookingDays)
}

func TestService_Get_ServiceLevel(t *testing.T) {
	f := newFixture(t)
	serviceID := uuid.New()

	f.catalog.On("GetBusiness", mock.Anything, f.business.ID).Return(f.business, nil)
	f.repo.On("GetWithHierarchy", mock.Anything, f.business.ID, &serviceID).Return(&domain.BookingSettings{
		ID: uuid.New(), BusinessID: f.business.ID, ServiceID: &serviceID, MinBookingNoticeMinutes: 120, AdvanceBookingDays: 30,
	}, nil)

	resp, err := f.svc.Get(context.Background(), f.business.ID, &serviceID)
	require.NoError(t, err)
	assert.Equal(t, models.LevelService, resp.Level)
	assert.Equal(t, 120, resp.MinBookingNoticeMinutes)
}

func TestService_Get_BusinessNotFound(t *testing.T) {
	f := newFixture(t)
	f.catalog.On("GetBusiness", mock.Anything, f.business.ID).Return(nil, catalogRepo.ErrBusinessNotFound)

	_, err := f.svc.Get(context.Background(), f.business.ID, nil)
	assert.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestService_Upsert_Creates(t *testing.T) {
	f := newFixture(t)

	f.catalog.On("GetBusiness", mock.Anything, f.business.ID).Return(f.business, nil)
	f.access.On("CheckBusiness", mock.Anything, f.admin, f.business.ID).Return(nil)
	f.repo.On("GetByBusinessAndService", mock.Anything, f.business.ID, (*uuid.UUID)(nil)).Return(nil, settingsRepo.ErrSettingsNotFound)
	f.repo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.BookingSettings) bool {
		return s.BusinessID == f.business.ID && s.MinBookingNoticeMinutes == 30 && s.AdvanceBookingDays == 14
	})).Return(&domain.BookingSettings{ID: uuid.New(), BusinessID: f.business.ID, MinBookingNoticeMinutes: 30, AdvanceBookingDays: 14}, nil)

	resp, err := f.svc.Upsert(context.Background(), f.admin, &models.UpsertSettingsRequest{
		BusinessID: f.business.ID, MinBookingNoticeMinutes: 30, AdvanceBookingDays: 14,
	})
	require.NoError(t, err)
	assert.Equal(t, models.LevelBusiness, resp.Level)
	assert.NotNil(t, resp.ID)
}

func TestService_Upsert_Updates(t *testing.T) {
	f := newFixture(t)
	existingID := uuid.New()

	f.catalog.On("GetBusiness", mock.Anything, f.business.ID).Return(f.business, nil)
	f.access.On("CheckBusiness", mock.Anything, f.admin, f.business.ID).Return(nil)
	f.repo.On("GetByBusinessAndService", mock.Anything, f.business.ID, (*uuid.UUID)(nil)).
		Return(&domain.BookingSettings{ID: existingID, BusinessID: f.business.ID}, nil)
	f.repo.On("Update", mock.Anything, existingID, mock.Anything).
		Return(&domain.BookingSettings{ID: existingID, BusinessID: f.business.ID, MinBookingNoticeMinutes: 0}, nil)

	resp, err := f.svc.Upsert(context.Background(), f.admin, &models.UpsertSettingsRequest{BusinessID: f.business.ID})
	require.NoError(t, err)
	assert.Equal(t, existingID, *resp.ID)
}

func TestService_Upsert_Validation(t *testing.T) {
	tests := []struct {
		name   string
		notice int
		days   int
	}{
		{"negative notice", -1, 0},
		{"notice over a week", 10081, 0},
		{"negative days", 60, -1},
		{"days over a year", 60, 366},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			_, err := f.svc.Upsert(context.Background(), f.admin, &models.UpsertSettingsRequest{
				BusinessID: f.business.ID, MinBookingNoticeMinutes: tt.notice, AdvanceBookingDays: tt.days,
			})
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestService_Upsert_AccessDenied(t *testing.T) {
	f := newFixture(t)
	customer := &domain.Identity{UserID: uuid.New(), Role: domain.RoleCustomer}

	f.catalog.On("GetBusiness", mock.Anything, f.business.ID).Return(f.business, nil)
	f.access.On("CheckBusiness", mock.Anything, customer, f.business.ID).Return(access.ErrAccessDenied)

	_, err := f.svc.Upsert(context.Background(), customer, &models.UpsertSettingsRequest{BusinessID: f.business.ID, MinBookingNoticeMinutes: 60})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestService_Upsert_ForeignService(t *testing.T) {
	f := newFixture(t)
	serviceID := uuid.New()

	f.catalog.On("GetBusiness", mock.Anything, f.business.ID).Return(f.business, nil)
	f.access.On("CheckBusiness", mock.Anything, f.admin, f.business.ID).Return(nil)
	f.catalog.On("GetService", mock.Anything, serviceID).Return(&domain.Service{ID: serviceID, BusinessID: uuid.New()}, nil)

	_, err := f.svc.Upsert(context.Background(), f.admin, &models.UpsertSettingsRequest{
		BusinessID: f.business.ID, ServiceID: &serviceID, MinBookingNoticeMinutes: 60,
	})
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

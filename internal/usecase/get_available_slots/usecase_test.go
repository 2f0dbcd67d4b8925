package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/randevu-service/internal/domain"
	catalogRepo "github.com/m04kA/randevu-service/internal/infra/storage/catalog"
	settingsRepo "github.com/m04kA/randevu-service/internal/infra/storage/settings"
	"github.com/m04kA/randevu-service/pkg/types"
)

var istanbul = time.FixedZone("TRT", 3*60*60)

type fixture struct {
	availability *mockAvailabilityRepo
	appointments *mockAppointmentRepo
	settings     *mockSettingsRepo
	catalog      *mockCatalogRepo
	metrics      *mockMetrics
	uc           *UseCase

	staff   *domain.Staff
	service *domain.Service
}

func newFixture(t *testing.T, now time.Time, excludeBooked bool) *fixture {
	t.Helper()

	businessID := uuid.New()
	f := &fixture{
		availability: &mockAvailabilityRepo{},
		appointments: &mockAppointmentRepo{},
		settings:     &mockSettingsRepo{},
		catalog:      &mockCatalogRepo{},
		metrics:      &mockMetrics{},
		staff:        &domain.Staff{ID: uuid.New(), BusinessID: businessID, Name: "Elif"},
		service:      &domain.Service{ID: uuid.New(), BusinessID: businessID, Name: "Saç Kesimi", DurationMinutes: 60, Active: true},
	}

	f.uc = NewUseCase(f.availability, f.appointments, f.settings, f.catalog, f.metrics, nopLogger{}, Options{
		Location:           istanbul,
		ExcludeBookedSlots: excludeBooked,
	})
	f.uc.timeProvider = fixedTime{now: now}

	t.Cleanup(func() {
		f.availability.AssertExpectations(t)
		f.appointments.AssertExpectations(t)
		f.settings.AssertExpectations(t)
		f.catalog.AssertExpectations(t)
		f.metrics.AssertExpectations(t)
	})

	return f
}

func (f *fixture) expectCatalog() {
	f.catalog.On("GetStaff", mock.Anything, f.staff.ID).Return(f.staff, nil)
	f.catalog.On("GetService", mock.Anything, f.service.ID).Return(f.service, nil)
	f.catalog.On("StaffProvidesService", mock.Anything, f.staff.ID, f.service.ID).Return(true, nil)
}

func (f *fixture) expectDefaultSettings() {
	f.settings.On("GetWithHierarchy", mock.Anything, f.staff.BusinessID, mock.AnythingOfType("*uuid.UUID")).
		Return(nil, settingsRepo.ErrSettingsNotFound)
}

func (f *fixture) request(date time.Time) *Request {
	return &Request{StaffID: f.staff.ID, ServiceID: f.service.ID, Date: date}
}

func windowsOf(specs ...[2]string) []domain.AvailabilityWindow {
	windows := make([]domain.AvailabilityWindow, len(specs))
	for i, s := range specs {
		windows[i] = domain.AvailabilityWindow{
			DayOfWeek: 1,
			StartTime: types.TimeString(s[0]),
			EndTime:   types.TimeString(s[1]),
			Active:    true,
		}
	}
	return windows
}

// 2024-01-15 - понедельник
var monday = time.Date(2024, time.January, 15, 0, 0, 0, 0, istanbul)

func TestUseCase_Execute_Today(t *testing.T) {
	now := time.Date(2024, time.January, 15, 10, 30, 0, 0, istanbul)
	f := newFixture(t, now, true)
	f.expectCatalog()
	f.expectDefaultSettings()

	f.availability.On("ListByStaffAndDay", mock.Anything, f.staff.ID, 1).
		Return(windowsOf([2]string{"09:00", "18:00"}), nil)
	f.availability.On("ListBusyBlocksByStaffAndDate", mock.Anything, f.staff.ID, monday).
		Return([]domain.BusyBlock{{StartTime: "14:00", EndTime: "15:00"}}, nil)
	f.appointments.On("ListActiveByStaffAndDate", mock.Anything, f.staff.ID, monday).
		Return([]*domain.Appointment{{Time: "13:00", DurationMinutes: 60, Status: domain.StatusConfirmed}}, nil)
	f.metrics.On("ObserveSlotsGenerated", 5).Return()

	resp, err := f.uc.Execute(context.Background(), f.request(monday))
	require.NoError(t, err)

	assert.Empty(t, resp.Reason)
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, []Slot{
		{StartTime: "12:00", DurationMinutes: 60, Available: true},
		{StartTime: "13:00", DurationMinutes: 60, Available: false},
		{StartTime: "15:00", DurationMinutes: 60, Available: true},
		{StartTime: "16:00", DurationMinutes: 60, Available: true},
		{StartTime: "17:00", DurationMinutes: 60, Available: true},
	}, resp.Slots)
}

func TestUseCase_Execute_SettingsLeadTime(t *testing.T) {
	now := time.Date(2024, time.January, 15, 10, 30, 0, 0, istanbul)
	f := newFixture(t, now, false)
	f.expectCatalog()

	f.settings.On("GetWithHierarchy", mock.Anything, f.staff.BusinessID, mock.Anything).
		Return(&domain.BookingSettings{MinBookingNoticeMinutes: 0}, nil)
	f.availability.On("ListByStaffAndDay", mock.Anything, f.staff.ID, 1).
		Return(windowsOf([2]string{"09:00", "13:00"}), nil)
	f.availability.On("ListBusyBlocksByStaffAndDate", mock.Anything, f.staff.ID, monday).
		Return([]domain.BusyBlock{}, nil)
	f.metrics.On("ObserveSlotsGenerated", 2).Return()

	resp, err := f.uc.Execute(context.Background(), f.request(monday))
	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, types.TimeString("11:00"), resp.Slots[0].StartTime)
	assert.Equal(t, types.TimeString("12:00"), resp.Slots[1].StartTime)
}

func TestUseCase_Execute_NoWorkingHours(t *testing.T) {
	now := time.Date(2024, time.January, 14, 12, 0, 0, 0, istanbul)
	f := newFixture(t, now, true)
	f.expectCatalog()
	f.expectDefaultSettings()

	inactive := windowsOf([2]string{"09:00", "17:00"})
	inactive[0].Active = false
	f.availability.On("ListByStaffAndDay", mock.Anything, f.staff.ID, 1).Return(inactive, nil)
	f.metrics.On("ObserveSlotsGenerated", 0).Return()

	resp, err := f.uc.Execute(context.Background(), f.request(monday))
	assert.ErrorIs(t, err, ErrNoWorkingHours)
	assert.ErrorIs(t, err, ErrNoAvailability)
	require.NotNil(t, resp)
	assert.Equal(t, ReasonNoWorkingHours, resp.Reason)
	assert.NotNil(t, resp.Slots)
	assert.Empty(t, resp.Slots)
}

func TestUseCase_Execute_BusyBlocksTakeWholeDay(t *testing.T) {
	now := time.Date(2024, time.January, 14, 12, 0, 0, 0, istanbul)
	f := newFixture(t, now, true)
	f.expectCatalog()
	f.expectDefaultSettings()

	f.availability.On("ListByStaffAndDay", mock.Anything, f.staff.ID, 1).
		Return(windowsOf([2]string{"09:00", "12:00"}), nil)
	f.availability.On("ListBusyBlocksByStaffAndDate", mock.Anything, f.staff.ID, monday).
		Return([]domain.BusyBlock{{StartTime: "08:00", EndTime: "12:00"}}, nil)
	f.metrics.On("ObserveSlotsGenerated", 0).Return()

	resp, err := f.uc.Execute(context.Background(), f.request(monday))
	assert.ErrorIs(t, err, ErrNoFreeSlots)
	require.NotNil(t, resp)
	assert.Equal(t, ReasonNoFreeSlots, resp.Reason)
}

func TestUseCase_Execute_PastDate(t *testing.T) {
	now := time.Date(2024, time.January, 16, 9, 0, 0, 0, istanbul)
	f := newFixture(t, now, true)
	f.expectCatalog()
	f.expectDefaultSettings()

	resp, err := f.uc.Execute(context.Background(), f.request(monday))
	assert.ErrorIs(t, err, ErrPastDate)
	assert.Nil(t, resp)
}

func TestUseCase_Execute_DateTooFarInFuture(t *testing.T) {
	now := time.Date(2024, time.January, 1, 9, 0, 0, 0, istanbul)
	f := newFixture(t, now, true)
	f.expectCatalog()

	f.settings.On("GetWithHierarchy", mock.Anything, f.staff.BusinessID, mock.Anything).
		Return(&domain.BookingSettings{MinBookingNoticeMinutes: 60, AdvanceBookingDays: 7}, nil)

	_, err := f.uc.Execute(context.Background(), f.request(monday))
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestUseCase_Execute_InvalidStoredWindow(t *testing.T) {
	now := time.Date(2024, time.January, 14, 12, 0, 0, 0, istanbul)
	f := newFixture(t, now, true)
	f.expectCatalog()
	f.expectDefaultSettings()

	f.availability.On("ListByStaffAndDay", mock.Anything, f.staff.ID, 1).
		Return(windowsOf([2]string{"09:00", "9pm"}), nil)

	_, err := f.uc.Execute(context.Background(), f.request(monday))
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestUseCase_Execute_InvalidInactiveWindowIgnored(t *testing.T) {
	now := time.Date(2024, time.January, 14, 12, 0, 0, 0, istanbul)
	f := newFixture(t, now, true)
	f.expectCatalog()
	f.expectDefaultSettings()

	windows := windowsOf([2]string{"09:00", "11:00"}, [2]string{"09:00", "9pm"})
	windows[1].Active = false
	f.availability.On("ListByStaffAndDay", mock.Anything, f.staff.ID, 1).Return(windows, nil)
	f.availability.On("ListBusyBlocksByStaffAndDate", mock.Anything, f.staff.ID, monday).
		Return([]domain.BusyBlock{}, nil)
	f.appointments.On("ListActiveByStaffAndDate", mock.Anything, f.staff.ID, monday).
		Return([]*domain.Appointment{}, nil)
	f.metrics.On("ObserveSlotsGenerated", 2).Return()

	resp, err := f.uc.Execute(context.Background(), f.request(monday))
	require.NoError(t, err)
	require.Len(t, resp.Slots, 2)
	assert.Equal(t, types.TimeString("09:00"), resp.Slots[0].StartTime)
}

func TestUseCase_Execute_CatalogErrors(t *testing.T) {
	now := time.Date(2024, time.January, 14, 12, 0, 0, 0, istanbul)

	t.Run("staff not found", func(t *testing.T) {
		f := newFixture(t, now, true)
		f.catalog.On("GetStaff", mock.Anything, f.staff.ID).Return(nil, catalogRepo.ErrStaffNotFound)

		_, err := f.uc.Execute(context.Background(), f.request(monday))
		assert.ErrorIs(t, err, ErrStaffNotFound)
	})

	t.Run("service disabled", func(t *testing.T) {
		f := newFixture(t, now, true)
		f.service.Active = false
		f.catalog.On("GetStaff", mock.Anything, f.staff.ID).Return(f.staff, nil)
		f.catalog.On("GetService", mock.Anything, f.service.ID).Return(f.service, nil)

		_, err := f.uc.Execute(context.Background(), f.request(monday))
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})

	t.Run("service not provided", func(t *testing.T) {
		f := newFixture(t, now, true)
		f.catalog.On("GetStaff", mock.Anything, f.staff.ID).Return(f.staff, nil)
		f.catalog.On("GetService", mock.Anything, f.service.ID).Return(f.service, nil)
		f.catalog.On("StaffProvidesService", mock.Anything, f.staff.ID, f.service.ID).Return(false, nil)

		_, err := f.uc.Execute(context.Background(), f.request(monday))
		assert.ErrorIs(t, err, ErrServiceNotProvided)
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newFixture(t, now, true)
		f.catalog.On("GetStaff", mock.Anything, f.staff.ID).Return(nil, errors.New("connection refused"))

		_, err := f.uc.Execute(context.Background(), f.request(monday))
		assert.ErrorIs(t, err, ErrInternal)
	})
}

func TestUseCase_Execute_InvalidInput(t *testing.T) {
	f := newFixture(t, monday, true)

	_, err := f.uc.Execute(context.Background(), &Request{StaffID: uuid.New(), Date: monday})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{StaffID: uuid.New(), ServiceID: uuid.New()})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

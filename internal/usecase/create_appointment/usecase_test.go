package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/randevu-service/internal/domain"
	appointmentRepo "github.com/m04kA/randevu-service/internal/infra/storage/appointment"
	settingsRepo "github.com/m04kA/randevu-service/internal/infra/storage/settings"
	"github.com/m04kA/randevu-service/pkg/txmanager"
	"github.com/m04kA/randevu-service/pkg/types"
)

var istanbul = time.FixedZone("TRT", 3*60*60)

// 2024-01-15 - понедельник
var monday = time.Date(2024, time.January, 15, 0, 0, 0, 0, istanbul)

type fixture struct {
	appointments *mockAppointmentRepo
	availability *mockAvailabilityRepo
	settings     *mockSettingsRepo
	catalog      *mockCatalogRepo
	publisher    *mockPublisher
	metrics      *mockMetrics
	uc           *UseCase

	staff   *domain.Staff
	service *domain.Service
}

func newFixture(t *testing.T, now time.Time, tx inlineTx) *fixture {
	t.Helper()

	businessID := uuid.New()
	f := &fixture{
		appointments: &mockAppointmentRepo{},
		availability: &mockAvailabilityRepo{},
		settings:     &mockSettingsRepo{},
		catalog:      &mockCatalogRepo{},
		publisher:    &mockPublisher{},
		metrics:      &mockMetrics{},
		staff:        &domain.Staff{ID: uuid.New(), BusinessID: businessID, Name: "Elif"},
		service:      &domain.Service{ID: uuid.New(), BusinessID: businessID, Name: "Saç Kesimi", DurationMinutes: 60, Active: true},
	}

	f.uc = NewUseCase(f.appointments, f.availability, f.settings, f.catalog, f.publisher, f.metrics, tx, nopLogger{}, istanbul)
	f.uc.timeProvider = fixedTime{now: now}

	t.Cleanup(func() {
		f.appointments.AssertExpectations(t)
		f.availability.AssertExpectations(t)
		f.settings.AssertExpectations(t)
		f.catalog.AssertExpectations(t)
		f.publisher.AssertExpectations(t)
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

func (f *fixture) expectWorkingDay() {
	f.availability.On("ListByStaffAndDay", mock.Anything, f.staff.ID, 1).
		Return([]domain.AvailabilityWindow{{DayOfWeek: 1, StartTime: "09:00", EndTime: "18:00", Active: true}}, nil)
}

func (f *fixture) request(at string) *Request {
	return &Request{
		StaffID:       f.staff.ID,
		ServiceID:     f.service.ID,
		CustomerName:  "  Ayşe Yılmaz ",
		CustomerEmail: " Ayse@Example.COM ",
		CustomerPhone: "+90 555 111 22 33",
		Date:          monday,
		Time:          types.TimeString(at),
		KVKKConsent:   true,
	}
}

func TestUseCase_Execute_Success(t *testing.T) {
	f := newFixture(t, time.Date(2024, time.January, 14, 12, 0, 0, 0, istanbul), inlineTx{})
	f.expectCatalog()
	f.expectDefaultSettings()
	f.expectWorkingDay()

	f.availability.On("ListBusyBlocksByStaffAndDate", mock.Anything, f.staff.ID, monday).
		Return([]domain.BusyBlock{{StartTime: "13:00", EndTime: "14:00"}}, nil)
	f.appointments.On("ListActiveByStaffAndDate", mock.Anything, f.staff.ID, monday).
		Return([]*domain.Appointment{{Time: "09:00", DurationMinutes: 60, Status: domain.StatusConfirmed}}, nil)

	createdID := uuid.New()
	f.appointments.On("Create", mock.Anything, mock.MatchedBy(func(a *domain.Appointment) bool {
		return a.CustomerName == "Ayşe Yılmaz" &&
			a.CustomerEmail == "ayse@example.com" &&
			a.Status == domain.StatusPending &&
			a.DurationMinutes == 60 &&
			a.Time == "10:00" &&
			a.Notes != nil && *a.Notes == "Hizmet: Saç Kesimi, Süre: 60 dakika"
	})).Return(func(_ context.Context, a *domain.Appointment) *domain.Appointment {
		a.ID = createdID
		return a
	}, nil)

	f.catalog.On("UpsertCustomerProfile", mock.Anything, mock.MatchedBy(func(p *domain.CustomerProfile) bool {
		return p.Email == "ayse@example.com" && p.KVKKConsent && !p.ETKConsent
	})).Return(nil)
	f.publisher.On("PublishAppointmentCreated", mock.Anything, mock.AnythingOfType("*domain.Appointment")).Return(nil)
	f.metrics.On("IncAppointments", "created").Return()

	resp, err := f.uc.Execute(context.Background(), f.request("10:00"))
	require.NoError(t, err)

	assert.Equal(t, createdID, resp.ID)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, f.staff.BusinessID, resp.BusinessID)
	assert.Equal(t, types.TimeString("10:00"), resp.Time)
}

func TestUseCase_Execute_SideEffectFailuresKeepAppointment(t *testing.T) {
	f := newFixture(t, time.Date(2024, time.January, 14, 12, 0, 0, 0, istanbul), inlineTx{})
	f.expectCatalog()
	f.expectDefaultSettings()
	f.expectWorkingDay()

	f.availability.On("ListBusyBlocksByStaffAndDate", mock.Anything, f.staff.ID, monday).Return([]domain.BusyBlock{}, nil)
	f.appointments.On("ListActiveByStaffAndDate", mock.Anything, f.staff.ID, monday).Return([]*domain.Appointment{}, nil)
	f.appointments.On("Create", mock.Anything, mock.Anything).
		Return(&domain.Appointment{ID: uuid.New(), Date: monday, Time: "11:00", Status: domain.StatusPending}, nil)
	f.catalog.On("UpsertCustomerProfile", mock.Anything, mock.Anything).Return(errors.New("connection reset"))
	f.publisher.On("PublishAppointmentCreated", mock.Anything, mock.Anything).Return(errors.New("broker unavailable"))
	f.metrics.On("IncAppointments", "created").Return()

	resp, err := f.uc.Execute(context.Background(), f.request("11:00"))
	require.NoError(t, err)
	assert.NotNil(t, resp)
}

func TestUseCase_Execute_OverlapsActiveAppointment(t *testing.T) {
	f := newFixture(t, time.Date(2024, time.January, 14, 12, 0, 0, 0, istanbul), inlineTx{})
	f.expectCatalog()
	f.expectDefaultSettings()
	f.expectWorkingDay()

	f.availability.On("ListBusyBlocksByStaffAndDate", mock.Anything, f.staff.ID, monday).Return([]domain.BusyBlock{}, nil)
	f.appointments.On("ListActiveByStaffAndDate", mock.Anything, f.staff.ID, monday).
		Return([]*domain.Appointment{{Time: "09:30", DurationMinutes: 60, Status: domain.StatusPending}}, nil)
	f.metrics.On("IncAppointments", "conflict").Return()

	_, err := f.uc.Execute(context.Background(), f.request("10:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestUseCase_Execute_BusyBlock(t *testing.T) {
	f := newFixture(t, time.Date(2024, time.January, 14, 12, 0, 0, 0, istanbul), inlineTx{})
	f.expectCatalog()
	f.expectDefaultSettings()
	f.expectWorkingDay()

	f.availability.On("ListBusyBlocksByStaffAndDate", mock.Anything, f.staff.ID, monday).
		Return([]domain.BusyBlock{{StartTime: "10:30", EndTime: "12:00"}}, nil)
	f.metrics.On("IncAppointments", "conflict").Return()

	_, err := f.uc.Execute(context.Background(), f.request("10:00"))
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestUseCase_Execute_ConcurrentInsertLoses(t *testing.T) {
	t.Run("unique index", func(t *testing.T) {
		f := newFixture(t, time.Date(2024, time.January, 14, 12, 0, 0, 0, istanbul), inlineTx{})
		f.expectCatalog()
		f.expectDefaultSettings()
		f.expectWorkingDay()

		f.availability.On("ListBusyBlocksByStaffAndDate", mock.Anything, f.staff.ID, monday).Return([]domain.BusyBlock{}, nil)
		f.appointments.On("ListActiveByStaffAndDate", mock.Anything, f.staff.ID, monday).Return([]*domain.Appointment{}, nil)
		f.appointments.On("Create", mock.Anything, mock.Anything).
			Return(nil, fmt.Errorf("%w: Create - duplicate", appointmentRepo.ErrSlotNotAvailable))
		f.metrics.On("IncAppointments", "conflict").Return()

		_, err := f.uc.Execute(context.Background(), f.request("10:00"))
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})

	t.Run("serialization failure on commit", func(t *testing.T) {
		commitErr := fmt.Errorf("%w: commit: %w", txmanager.ErrTransaction, &pq.Error{Code: "40001"})
		f := newFixture(t, time.Date(2024, time.January, 14, 12, 0, 0, 0, istanbul), inlineTx{commitErr: commitErr})
		f.expectCatalog()
		f.expectDefaultSettings()
		f.expectWorkingDay()

		f.availability.On("ListBusyBlocksByStaffAndDate", mock.Anything, f.staff.ID, monday).Return([]domain.BusyBlock{}, nil)
		f.appointments.On("ListActiveByStaffAndDate", mock.Anything, f.staff.ID, monday).Return([]*domain.Appointment{}, nil)
		f.appointments.On("Create", mock.Anything, mock.Anything).
			Return(&domain.Appointment{ID: uuid.New(), Date: monday, Time: "10:00"}, nil)
		f.metrics.On("IncAppointments", "conflict").Return()

		_, err := f.uc.Execute(context.Background(), f.request("10:00"))
		assert.ErrorIs(t, err, ErrSlotNotAvailable)
	})
}

func TestUseCase_Execute_InvalidTimeSlot(t *testing.T) {
	f := newFixture(t, time.Date(2024, time.January, 14, 12, 0, 0, 0, istanbul), inlineTx{})
	f.expectCatalog()
	f.expectDefaultSettings()
	f.expectWorkingDay()
	f.metrics.On("IncAppointments", "rejected").Return()

	// Слоты идут от 09:00 шагом 60 минут, 10:15 не совпадает ни с одним
	_, err := f.uc.Execute(context.Background(), f.request("10:15"))
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestUseCase_Execute_NoWorkingHours(t *testing.T) {
	f := newFixture(t, time.Date(2024, time.January, 14, 12, 0, 0, 0, istanbul), inlineTx{})
	f.expectCatalog()
	f.expectDefaultSettings()
	f.availability.On("ListByStaffAndDay", mock.Anything, f.staff.ID, 1).Return([]domain.AvailabilityWindow{}, nil)
	f.metrics.On("IncAppointments", "rejected").Return()

	_, err := f.uc.Execute(context.Background(), f.request("10:00"))
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestUseCase_Execute_TooLateToBook(t *testing.T) {
	f := newFixture(t, time.Date(2024, time.January, 15, 10, 30, 0, 0, istanbul), inlineTx{})
	f.expectCatalog()
	f.expectDefaultSettings()
	f.metrics.On("IncAppointments", "rejected").Return()

	_, err := f.uc.Execute(context.Background(), f.request("11:00"))
	assert.ErrorIs(t, err, ErrTooLateToBook)
}

func TestUseCase_Execute_PastDate(t *testing.T) {
	f := newFixture(t, time.Date(2024, time.January, 16, 9, 0, 0, 0, istanbul), inlineTx{})
	f.expectCatalog()
	f.expectDefaultSettings()
	f.metrics.On("IncAppointments", "rejected").Return()

	_, err := f.uc.Execute(context.Background(), f.request("10:00"))
	assert.ErrorIs(t, err, ErrPastDate)
}

func TestUseCase_Execute_DateTooFarInFuture(t *testing.T) {
	f := newFixture(t, time.Date(2024, time.January, 1, 9, 0, 0, 0, istanbul), inlineTx{})
	f.expectCatalog()
	f.settings.On("GetWithHierarchy", mock.Anything, f.staff.BusinessID, mock.Anything).
		Return(&domain.BookingSettings{MinBookingNoticeMinutes: 60, AdvanceBookingDays: 7}, nil)
	f.metrics.On("IncAppointments", "rejected").Return()

	_, err := f.uc.Execute(context.Background(), f.request("10:00"))
	assert.ErrorIs(t, err, ErrDateTooFarInFuture)
}

func TestUseCase_Execute_Validation(t *testing.T) {
	now := time.Date(2024, time.January, 14, 12, 0, 0, 0, istanbul)

	tests := []struct {
		name    string
		modify  func(r *Request)
		wantErr error
	}{
		{"no consent", func(r *Request) { r.KVKKConsent = false }, ErrConsentRequired},
		{"blank name", func(r *Request) { r.CustomerName = "   " }, ErrInvalidInput},
		{"bad email", func(r *Request) { r.CustomerEmail = "not-an-email" }, ErrInvalidInput},
		{"no phone", func(r *Request) { r.CustomerPhone = "" }, ErrInvalidInput},
		{"bad time", func(r *Request) { r.Time = "25:00" }, ErrInvalidInput},
		{"end of day as start", func(r *Request) { r.Time = types.EndOfDay }, ErrInvalidInput},
		{"no date", func(r *Request) { r.Date = time.Time{} }, ErrInvalidInput},
		{"long notes", func(r *Request) {
			notes := strings.Repeat("a", domain.MaxNotesLength+1)
			r.Notes = &notes
		}, ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, now, inlineTx{})
			f.metrics.On("IncAppointments", "rejected").Return()

			req := f.request("10:00")
			tt.modify(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBuildNotes(t *testing.T) {
	assert.Equal(t, "Hizmet: Manikür, Süre: 45 dakika", buildNotes("Manikür", 45, nil))

	note := "Kısa kesim lütfen"
	assert.Equal(t, "Hizmet: Manikür, Süre: 45 dakika\nKısa kesim lütfen", buildNotes("Manikür", 45, &note))
}

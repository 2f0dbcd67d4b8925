package cancel_appointment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/randevu-service/internal/api/middleware"
	"github.com/m04kA/randevu-service/internal/domain"
	"github.com/m04kA/randevu-service/internal/service/appointments"
	"github.com/m04kA/randevu-service/internal/service/appointments/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type serviceFunc func(ctx context.Context, identity *domain.Identity, id uuid.UUID) (*models.AppointmentResponse, error)

func (f serviceFunc) Cancel(ctx context.Context, identity *domain.Identity, id uuid.UUID) (*models.AppointmentResponse, error) {
	return f(ctx, identity, id)
}

func serve(svc serviceFunc, id string, identity *domain.Identity) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/"+id+"/cancel", nil)
	req = mux.SetURLVars(req, map[string]string{"id": id})
	if identity != nil {
		req = req.WithContext(middleware.WithIdentity(req.Context(), identity))
	}
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandler_Handle_Cancelled(t *testing.T) {
	id := uuid.New()
	caller := &domain.Identity{UserID: uuid.New(), Email: "ayse@example.com", Role: domain.RoleCustomer}

	svc := serviceFunc(func(_ context.Context, _ *domain.Identity, got uuid.UUID) (*models.AppointmentResponse, error) {
		return &models.AppointmentResponse{ID: got, Status: string(domain.StatusCancelled)}, nil
	})

	rec := serve(svc, id.String(), caller)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.AppointmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, id, resp.ID)
	assert.Equal(t, "cancelled", resp.Status)
}

func TestHandler_Handle_Errors(t *testing.T) {
	id := uuid.New()
	caller := &domain.Identity{UserID: uuid.New(), Role: domain.RoleBusinessOwner}

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"not found", appointments.ErrAppointmentNotFound, http.StatusNotFound, msgNotFound},
		{"access denied", appointments.ErrAccessDenied, http.StatusForbidden, msgForbidden},
		{"already completed", appointments.ErrCannotCancel, http.StatusBadRequest, msgCannotCancel},
		{"internal", errors.New("boom"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := serviceFunc(func(context.Context, *domain.Identity, uuid.UUID) (*models.AppointmentResponse, error) {
				return nil, tt.err
			})

			rec := serve(svc, id.String(), caller)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				assert.JSONEq(t, `{"error":"`+tt.wantError+`"}`, rec.Body.String())
			}
		})
	}

	t.Run("anonymous", func(t *testing.T) {
		rec := serve(nil, id.String(), nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

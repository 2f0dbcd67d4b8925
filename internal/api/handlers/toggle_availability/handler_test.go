package toggle_availability

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
	"github.com/m04kA/randevu-service/internal/service/availability"
	"github.com/m04kA/randevu-service/internal/service/availability/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type serviceFunc func(ctx context.Context, identity *domain.Identity, id uuid.UUID) (*models.WindowResponse, error)

func (f serviceFunc) Toggle(ctx context.Context, identity *domain.Identity, id uuid.UUID) (*models.WindowResponse, error) {
	return f(ctx, identity, id)
}

func serve(svc serviceFunc, id string, identity *domain.Identity) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/availability/"+id+"/toggle", nil)
	req = mux.SetURLVars(req, map[string]string{"id": id})
	if identity != nil {
		req = req.WithContext(middleware.WithIdentity(req.Context(), identity))
	}
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandler_Handle_Toggled(t *testing.T) {
	id := uuid.New()
	caller := &domain.Identity{UserID: uuid.New(), Role: domain.RoleStaff}

	svc := serviceFunc(func(_ context.Context, _ *domain.Identity, got uuid.UUID) (*models.WindowResponse, error) {
		return &models.WindowResponse{ID: got, DayOfWeek: 3, StartTime: "10:00", EndTime: "14:00", IsActive: false}, nil
	})

	rec := serve(svc, id.String(), caller)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.WindowResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, id, resp.ID)
	assert.False(t, resp.IsActive)
}

func TestHandler_Handle_Errors(t *testing.T) {
	caller := &domain.Identity{UserID: uuid.New(), Role: domain.RoleStaff}

	tests := []struct {
		name       string
		id         string
		identity   *domain.Identity
		err        error
		wantStatus int
	}{
		{"bad id", "42", caller, nil, http.StatusBadRequest},
		{"anonymous", uuid.NewString(), nil, nil, http.StatusUnauthorized},
		{"window not found", uuid.NewString(), caller, availability.ErrWindowNotFound, http.StatusNotFound},
		{"access denied", uuid.NewString(), caller, availability.ErrAccessDenied, http.StatusForbidden},
		{"internal", uuid.NewString(), caller, errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := serviceFunc(func(context.Context, *domain.Identity, uuid.UUID) (*models.WindowResponse, error) {
				return nil, tt.err
			})

			rec := serve(svc, tt.id, tt.identity)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

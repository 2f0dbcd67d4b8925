package delete_business_settings

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/randevu-service/internal/api/middleware"
	"github.com/m04kA/randevu-service/internal/domain"
	"github.com/m04kA/randevu-service/internal/service/settings"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type serviceFunc func(ctx context.Context, identity *domain.Identity, businessID uuid.UUID, serviceID *uuid.UUID) error

func (f serviceFunc) Delete(ctx context.Context, identity *domain.Identity, businessID uuid.UUID, serviceID *uuid.UUID) error {
	return f(ctx, identity, businessID, serviceID)
}

func TestHandler_Handle(t *testing.T) {
	businessID, serviceID := uuid.New(), uuid.New()
	owner := &domain.Identity{UserID: uuid.New(), Role: domain.RoleBusinessOwner}

	tests := []struct {
		name       string
		query      string
		err        error
		wantStatus int
	}{
		{"business level", "", nil, http.StatusNoContent},
		{"service level", "serviceId=" + serviceID.String(), nil, http.StatusNoContent},
		{"bad service id", "serviceId=7", nil, http.StatusBadRequest},
		{"not found", "", settings.ErrSettingsNotFound, http.StatusNotFound},
		{"not an admin", "", settings.ErrAccessDenied, http.StatusForbidden},
		{"internal", "", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := serviceFunc(func(_ context.Context, _ *domain.Identity, got uuid.UUID, gotService *uuid.UUID) error {
				assert.Equal(t, businessID, got)
				if tt.query != "" {
					assert.Equal(t, &serviceID, gotService)
				} else {
					assert.Nil(t, gotService)
				}
				return tt.err
			})

			req := httptest.NewRequest(http.MethodDelete, "/api/v1/businesses/"+businessID.String()+"/settings?"+tt.query, nil)
			req = mux.SetURLVars(req, map[string]string{"businessId": businessID.String()})
			req = req.WithContext(middleware.WithIdentity(req.Context(), owner))
			rec := httptest.NewRecorder()

			NewHandler(svc, nopLogger{}).Handle(rec, req)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

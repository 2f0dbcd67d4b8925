package delete_busy_block

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
	"github.com/m04kA/randevu-service/internal/service/availability"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type serviceFunc func(ctx context.Context, identity *domain.Identity, id uuid.UUID) error

func (f serviceFunc) DeleteBusyBlock(ctx context.Context, identity *domain.Identity, id uuid.UUID) error {
	return f(ctx, identity, id)
}

func TestHandler_Handle(t *testing.T) {
	caller := &domain.Identity{UserID: uuid.New(), Role: domain.RoleStaff}

	tests := []struct {
		name       string
		id         string
		identity   *domain.Identity
		err        error
		wantStatus int
		wantError  string
	}{
		{"deleted", uuid.NewString(), caller, nil, http.StatusNoContent, ""},
		{"bad id", "block-1", caller, nil, http.StatusBadRequest, msgInvalidBlockID},
		{"anonymous", uuid.NewString(), nil, nil, http.StatusUnauthorized, msgUnauthorized},
		{"not found", uuid.NewString(), caller, availability.ErrBusyBlockNotFound, http.StatusNotFound, msgNotFound},
		{"access denied", uuid.NewString(), caller, availability.ErrAccessDenied, http.StatusForbidden, msgForbidden},
		{"internal", uuid.NewString(), caller, errors.New("boom"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := serviceFunc(func(context.Context, *domain.Identity, uuid.UUID) error {
				return tt.err
			})

			req := httptest.NewRequest(http.MethodDelete, "/api/v1/busy-blocks/"+tt.id, nil)
			req = mux.SetURLVars(req, map[string]string{"id": tt.id})
			if tt.identity != nil {
				req = req.WithContext(middleware.WithIdentity(req.Context(), tt.identity))
			}
			rec := httptest.NewRecorder()

			NewHandler(svc, nopLogger{}).Handle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				assert.JSONEq(t, `{"error":"`+tt.wantError+`"}`, rec.Body.String())
			}
		})
	}
}

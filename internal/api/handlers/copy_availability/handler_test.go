package copy_availability

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
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

type serviceFunc func(ctx context.Context, identity *domain.Identity, sourceStaffID uuid.UUID, req *models.CopyRequest) (*models.CopyResponse, error)

func (f serviceFunc) Copy(ctx context.Context, identity *domain.Identity, sourceStaffID uuid.UUID, req *models.CopyRequest) (*models.CopyResponse, error) {
	return f(ctx, identity, sourceStaffID, req)
}

func serve(svc serviceFunc, staffID, body string, identity *domain.Identity) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/staff/"+staffID+"/availability/copy", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"staffId": staffID})
	if identity != nil {
		req = req.WithContext(middleware.WithIdentity(req.Context(), identity))
	}
	rec := httptest.NewRecorder()
	NewHandler(svc, nopLogger{}).Handle(rec, req)
	return rec
}

func TestHandler_Handle_Copied(t *testing.T) {
	source := uuid.New()
	targets := []uuid.UUID{uuid.New(), uuid.New()}
	owner := &domain.Identity{UserID: uuid.New(), Role: domain.RoleBusinessOwner}

	svc := serviceFunc(func(_ context.Context, _ *domain.Identity, gotSource uuid.UUID, req *models.CopyRequest) (*models.CopyResponse, error) {
		assert.Equal(t, source, gotSource)
		assert.Equal(t, targets, req.TargetStaffIDs)
		return &models.CopyResponse{Copied: 10, Targets: len(req.TargetStaffIDs)}, nil
	})

	body := `{"targetStaffIds":["` + targets[0].String() + `","` + targets[1].String() + `"]}`
	rec := serve(svc, source.String(), body, owner)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.CopyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, models.CopyResponse{Copied: 10, Targets: 2}, resp)
}

func TestHandler_Handle_Errors(t *testing.T) {
	owner := &domain.Identity{UserID: uuid.New(), Role: domain.RoleBusinessOwner}
	body := `{"targetStaffIds":["` + uuid.NewString() + `"]}`

	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantError  string
	}{
		{"bad target id", `{"targetStaffIds":["nope"]}`, nil, http.StatusBadRequest, msgInvalidRequestBody},
		{"empty targets", `{"targetStaffIds":[]}`, availability.ErrInvalidInput, http.StatusBadRequest, msgInvalidTargets},
		{"other business", body, availability.ErrDifferentBusiness, http.StatusBadRequest, msgDifferentBusiness},
		{"staff not found", body, availability.ErrStaffNotFound, http.StatusNotFound, msgStaffNotFound},
		{"access denied", body, availability.ErrAccessDenied, http.StatusForbidden, msgForbidden},
		{"internal", body, errors.New("boom"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := serviceFunc(func(context.Context, *domain.Identity, uuid.UUID, *models.CopyRequest) (*models.CopyResponse, error) {
				return nil, tt.err
			})

			rec := serve(svc, uuid.NewString(), tt.body, owner)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantError != "" {
				assert.JSONEq(t, `{"error":"`+tt.wantError+`"}`, rec.Body.String())
			}
		})
	}
}

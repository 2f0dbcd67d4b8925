package create_availability

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/randevu-service/internal/api/handlers"
	"github.com/m04kA/randevu-service/internal/api/middleware"
	"github.com/m04kA/randevu-service/internal/service/availability"
	"github.com/m04kA/randevu-service/internal/service/availability/models"
)

const (
	msgInvalidStaffID     = "Geçersiz personel kimliği"
	msgInvalidRequestBody = "Geçersiz istek gövdesi"
	msgInvalidWindow      = "Geçersiz çalışma saati aralığı"
	msgUnauthorized       = "Oturum açmanız gerekiyor"
	msgForbidden          = "Bu personelin çalışma saatlerini değiştirme yetkiniz yok"
	msgStaffNotFound      = "Personel bulunamadı"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/staff/{staffId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, err := uuid.Parse(mux.Vars(r)["staffId"])
	if err != nil {
		h.logger.Warn("POST /staff/{id}/availability - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		h.logger.Warn("POST /staff/{id}/availability - Missing identity")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.CreateWindowRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /staff/{id}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), identity, staffID, &req)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /staff/{id}/availability - Invalid window: staff_id=%s, error=%v", staffID, err)
			handlers.RespondBadRequest(w, msgInvalidWindow)

		case errors.Is(err, availability.ErrStaffNotFound):
			h.logger.Warn("POST /staff/{id}/availability - Staff not found: staff_id=%s", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("POST /staff/{id}/availability - Access denied: staff_id=%s, user_id=%s", staffID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /staff/{id}/availability - Failed to create window: staff_id=%s, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /staff/{id}/availability - Window created successfully: window_id=%s, staff_id=%s",
		result.ID, staffID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

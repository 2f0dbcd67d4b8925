package list_availability

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/randevu-service/internal/api/handlers"
	"github.com/m04kA/randevu-service/internal/api/middleware"
	"github.com/m04kA/randevu-service/internal/service/availability"
)

const (
	msgInvalidStaffID = "Geçersiz personel kimliği"
	msgUnauthorized   = "Oturum açmanız gerekiyor"
	msgForbidden      = "Bu personelin çalışma saatlerini görme yetkiniz yok"
	msgStaffNotFound  = "Personel bulunamadı"
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

// Handle GET /api/v1/staff/{staffId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, err := uuid.Parse(mux.Vars(r)["staffId"])
	if err != nil {
		h.logger.Warn("GET /staff/{id}/availability - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		h.logger.Warn("GET /staff/{id}/availability - Missing identity")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.service.List(r.Context(), identity, staffID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrStaffNotFound):
			h.logger.Warn("GET /staff/{id}/availability - Staff not found: staff_id=%s", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("GET /staff/{id}/availability - Access denied: staff_id=%s, user_id=%s", staffID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /staff/{id}/availability - Failed to list windows: staff_id=%s, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff/{id}/availability - Windows retrieved successfully: staff_id=%s, count=%d",
		staffID, len(result.Windows))
	handlers.RespondJSON(w, http.StatusOK, result)
}

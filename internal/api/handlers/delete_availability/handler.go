package delete_availability

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
	msgInvalidWindowID = "Geçersiz çalışma saati kimliği"
	msgUnauthorized    = "Oturum açmanız gerekiyor"
	msgForbidden       = "Bu çalışma saatini silme yetkiniz yok"
	msgNotFound        = "Çalışma saati bulunamadı"
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

// Handle DELETE /api/v1/availability/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	windowID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.logger.Warn("DELETE /availability/{id} - Invalid window ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidWindowID)
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		h.logger.Warn("DELETE /availability/{id} - Missing identity")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	if err := h.service.Delete(r.Context(), identity, windowID); err != nil {
		switch {
		case errors.Is(err, availability.ErrWindowNotFound), errors.Is(err, availability.ErrStaffNotFound):
			h.logger.Warn("DELETE /availability/{id} - Window not found: window_id=%s", windowID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("DELETE /availability/{id} - Access denied: window_id=%s, user_id=%s", windowID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /availability/{id} - Failed to delete window: window_id=%s, error=%v", windowID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /availability/{id} - Window deleted successfully: window_id=%s", windowID)
	handlers.RespondNoContent(w)
}

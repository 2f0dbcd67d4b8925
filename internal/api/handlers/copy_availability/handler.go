package copy_availability

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
	msgInvalidTargets     = "Hedef personel listesi geçersiz"
	msgDifferentBusiness  = "Çalışma saatleri yalnızca aynı işletmenin personeline kopyalanabilir"
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

// Handle POST /api/v1/staff/{staffId}/availability/copy
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, err := uuid.Parse(mux.Vars(r)["staffId"])
	if err != nil {
		h.logger.Warn("POST /staff/{id}/availability/copy - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		h.logger.Warn("POST /staff/{id}/availability/copy - Missing identity")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.CopyRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /staff/{id}/availability/copy - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Copy(r.Context(), identity, staffID, &req)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /staff/{id}/availability/copy - Invalid targets: staff_id=%s, error=%v", staffID, err)
			handlers.RespondBadRequest(w, msgInvalidTargets)

		case errors.Is(err, availability.ErrDifferentBusiness):
			h.logger.Warn("POST /staff/{id}/availability/copy - Targets from another business: staff_id=%s", staffID)
			handlers.RespondBadRequest(w, msgDifferentBusiness)

		case errors.Is(err, availability.ErrStaffNotFound):
			h.logger.Warn("POST /staff/{id}/availability/copy - Staff not found: staff_id=%s", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("POST /staff/{id}/availability/copy - Access denied: staff_id=%s, user_id=%s", staffID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /staff/{id}/availability/copy - Failed to copy windows: staff_id=%s, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /staff/{id}/availability/copy - Windows copied successfully: staff_id=%s, copied=%d, targets=%d",
		staffID, result.Copied, result.Targets)
	handlers.RespondJSON(w, http.StatusOK, result)
}

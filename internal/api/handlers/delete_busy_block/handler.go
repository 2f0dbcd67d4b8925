package delete_busy_block

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
	msgInvalidBlockID = "Geçersiz meşgul zaman kimliği"
	msgUnauthorized   = "Oturum açmanız gerekiyor"
	msgForbidden      = "Bu personelin takvimini değiştirme yetkiniz yok"
	msgNotFound       = "Meşgul zaman bulunamadı"
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

// Handle DELETE /api/v1/busy-blocks/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	blockID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		h.logger.Warn("DELETE /busy-blocks/{id} - Invalid block ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		h.logger.Warn("DELETE /busy-blocks/{id} - Missing identity")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	if err := h.service.DeleteBusyBlock(r.Context(), identity, blockID); err != nil {
		switch {
		case errors.Is(err, availability.ErrBusyBlockNotFound), errors.Is(err, availability.ErrStaffNotFound):
			h.logger.Warn("DELETE /busy-blocks/{id} - Busy block not found: block_id=%s", blockID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("DELETE /busy-blocks/{id} - Access denied: block_id=%s, user_id=%s", blockID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /busy-blocks/{id} - Failed to delete busy block: block_id=%s, error=%v", blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /busy-blocks/{id} - Busy block deleted successfully: block_id=%s", blockID)
	handlers.RespondNoContent(w)
}

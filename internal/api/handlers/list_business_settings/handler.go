package list_business_settings

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/randevu-service/internal/api/handlers"
	"github.com/m04kA/randevu-service/internal/api/middleware"
	"github.com/m04kA/randevu-service/internal/service/settings"
)

const (
	msgInvalidBusinessID = "Geçersiz işletme kimliği"
	msgUnauthorized      = "Oturum açmanız gerekiyor"
	msgForbidden         = "Bu işletmenin ayarlarını görme yetkiniz yok"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/businesses/{businessId}/settings/all
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := uuid.Parse(mux.Vars(r)["businessId"])
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/settings/all - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		h.logger.Warn("GET /businesses/{id}/settings/all - Missing identity")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	result, err := h.service.List(r.Context(), identity, businessID)
	if err != nil {
		if errors.Is(err, settings.ErrAccessDenied) {
			h.logger.Warn("GET /businesses/{id}/settings/all - Access denied: business_id=%s, user_id=%s",
				businessID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)
			return
		}
		h.logger.Error("GET /businesses/{id}/settings/all - Failed to list settings: business_id=%s, error=%v",
			businessID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /businesses/{id}/settings/all - Settings listed successfully: business_id=%s, count=%d",
		businessID, len(result.Settings))
	handlers.RespondJSON(w, http.StatusOK, result)
}

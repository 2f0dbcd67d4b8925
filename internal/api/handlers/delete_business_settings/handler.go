package delete_business_settings

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
	msgInvalidServiceID  = "Geçersiz hizmet kimliği"
	msgUnauthorized      = "Oturum açmanız gerekiyor"
	msgForbidden         = "Bu işletmenin ayarlarını değiştirme yetkiniz yok"
	msgNotFound          = "Randevu kuralları bulunamadı"
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

// Handle DELETE /api/v1/businesses/{businessId}/settings
// Query params: serviceId (опционально, без него удаляются правила бизнеса)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := uuid.Parse(mux.Vars(r)["businessId"])
	if err != nil {
		h.logger.Warn("DELETE /businesses/{id}/settings - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	var serviceID *uuid.UUID
	if s := r.URL.Query().Get("serviceId"); s != "" {
		parsed, err := uuid.Parse(s)
		if err != nil {
			h.logger.Warn("DELETE /businesses/{id}/settings - Invalid service ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidServiceID)
			return
		}
		serviceID = &parsed
	}

	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		h.logger.Warn("DELETE /businesses/{id}/settings - Missing identity")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	if err := h.service.Delete(r.Context(), identity, businessID, serviceID); err != nil {
		switch {
		case errors.Is(err, settings.ErrSettingsNotFound):
			h.logger.Warn("DELETE /businesses/{id}/settings - Settings not found: business_id=%s, service_id=%v",
				businessID, serviceID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, settings.ErrAccessDenied):
			h.logger.Warn("DELETE /businesses/{id}/settings - Access denied: business_id=%s, user_id=%s",
				businessID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /businesses/{id}/settings - Failed to delete settings: business_id=%s, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /businesses/{id}/settings - Settings deleted successfully: business_id=%s, service_id=%v",
		businessID, serviceID)
	handlers.RespondNoContent(w)
}

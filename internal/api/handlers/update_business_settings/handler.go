package update_business_settings

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
	msgInvalidBusinessID  = "Geçersiz işletme kimliği"
	msgInvalidRequestBody = "Geçersiz istek gövdesi"
	msgInvalidSettings    = "Geçersiz randevu kuralları"
	msgUnauthorized       = "Oturum açmanız gerekiyor"
	msgForbidden          = "Bu işletmenin ayarlarını değiştirme yetkiniz yok"
	msgBusinessNotFound   = "İşletme bulunamadı"
	msgServiceNotFound    = "Hizmet bulunamadı"
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

// Handle PUT /api/v1/businesses/{businessId}/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := uuid.Parse(mux.Vars(r)["businessId"])
	if err != nil {
		h.logger.Warn("PUT /businesses/{id}/settings - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		h.logger.Warn("PUT /businesses/{id}/settings - Missing identity")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req UpdateBusinessSettingsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /businesses/{id}/settings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Сервис сам проверит права администратора
	result, err := h.service.Upsert(r.Context(), identity, req.ToServiceRequest(businessID))
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrInvalidInput):
			h.logger.Warn("PUT /businesses/{id}/settings - Validation failed: business_id=%s, error=%v", businessID, err)
			handlers.RespondBadRequest(w, msgInvalidSettings)

		case errors.Is(err, settings.ErrBusinessNotFound):
			h.logger.Warn("PUT /businesses/{id}/settings - Business not found: business_id=%s", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		case errors.Is(err, settings.ErrServiceNotFound):
			h.logger.Warn("PUT /businesses/{id}/settings - Service not found: business_id=%s, service_id=%v",
				businessID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, settings.ErrAccessDenied):
			h.logger.Warn("PUT /businesses/{id}/settings - Access denied: business_id=%s, user_id=%s",
				businessID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /businesses/{id}/settings - Failed to save settings: business_id=%s, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /businesses/{id}/settings - Settings saved successfully: business_id=%s, level=%s",
		businessID, result.Level)
	handlers.RespondJSON(w, http.StatusOK, result)
}

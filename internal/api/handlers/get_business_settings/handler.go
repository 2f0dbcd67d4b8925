package get_business_settings

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/randevu-service/internal/api/handlers"
	"github.com/m04kA/randevu-service/internal/service/settings"
)

const (
	msgInvalidBusinessID = "Geçersiz işletme kimliği"
	msgInvalidServiceID  = "Geçersiz hizmet kimliği"
	msgBusinessNotFound  = "İşletme bulunamadı"
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

// Handle GET /api/v1/businesses/{businessId}/settings
// Query params: serviceId (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	businessID, err := uuid.Parse(mux.Vars(r)["businessId"])
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/settings - Invalid business ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBusinessID)
		return
	}

	serviceID, err := ParseServiceID(r.URL.Query().Get("serviceId"))
	if err != nil {
		h.logger.Warn("GET /businesses/{id}/settings - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	// Без сохранённых правил сервис вернёт значения по умолчанию
	result, err := h.service.Get(r.Context(), businessID, serviceID)
	if err != nil {
		switch {
		case errors.Is(err, settings.ErrBusinessNotFound):
			h.logger.Warn("GET /businesses/{id}/settings - Business not found: business_id=%s", businessID)
			handlers.RespondNotFound(w, msgBusinessNotFound)

		default:
			h.logger.Error("GET /businesses/{id}/settings - Failed to get settings: business_id=%s, error=%v",
				businessID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /businesses/{id}/settings - Settings retrieved successfully: business_id=%s, level=%s",
		businessID, result.Level)
	handlers.RespondJSON(w, http.StatusOK, result)
}

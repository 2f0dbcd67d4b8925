package get_my_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/randevu-service/internal/api/handlers"
	"github.com/m04kA/randevu-service/internal/api/middleware"
	"github.com/m04kA/randevu-service/internal/service/appointments"
)

const (
	msgUnauthorized  = "Oturum açmanız gerekiyor"
	msgInvalidStatus = "Geçersiz randevu durumu"
	msgNoEmail       = "Hesabınıza bağlı bir e-posta adresi yok"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/me/appointments
// Query params: status (опционально)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		h.logger.Warn("GET /me/appointments - Missing identity")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var status *string
	if s := r.URL.Query().Get("status"); s != "" {
		status = &s
	}

	result, err := h.service.GetCustomerAppointments(r.Context(), identity, status)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /me/appointments - Invalid status filter: user_id=%s", identity.UserID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /me/appointments - Identity without email: user_id=%s", identity.UserID)
			handlers.RespondForbidden(w, msgNoEmail)

		default:
			h.logger.Error("GET /me/appointments - Failed to get appointments: user_id=%s, error=%v",
				identity.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /me/appointments - Appointments retrieved successfully: user_id=%s, count=%d",
		identity.UserID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}

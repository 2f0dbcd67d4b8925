package create_busy_block

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
	msgInvalidBlock       = "Geçersiz meşgul zaman aralığı"
	msgPastDate           = "Geçmiş bir tarih için meşgul zaman eklenemez"
	msgUnauthorized       = "Oturum açmanız gerekiyor"
	msgForbidden          = "Bu personelin takvimini değiştirme yetkiniz yok"
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

// Handle POST /api/v1/staff/{staffId}/busy-blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, err := uuid.Parse(mux.Vars(r)["staffId"])
	if err != nil {
		h.logger.Warn("POST /staff/{id}/busy-blocks - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	identity := middleware.IdentityFromContext(r.Context())
	if identity == nil {
		h.logger.Warn("POST /staff/{id}/busy-blocks - Missing identity")
		handlers.RespondUnauthorized(w, msgUnauthorized)
		return
	}

	var req models.CreateBusyBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /staff/{id}/busy-blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateBusyBlock(r.Context(), identity, staffID, &req)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrPastDate):
			h.logger.Warn("POST /staff/{id}/busy-blocks - Past date: staff_id=%s, date=%s", staffID, req.Date)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /staff/{id}/busy-blocks - Invalid block: staff_id=%s, error=%v", staffID, err)
			handlers.RespondBadRequest(w, msgInvalidBlock)

		case errors.Is(err, availability.ErrStaffNotFound):
			h.logger.Warn("POST /staff/{id}/busy-blocks - Staff not found: staff_id=%s", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("POST /staff/{id}/busy-blocks - Access denied: staff_id=%s, user_id=%s", staffID, identity.UserID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("POST /staff/{id}/busy-blocks - Failed to create busy block: staff_id=%s, error=%v", staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /staff/{id}/busy-blocks - Busy block created successfully: block_id=%s, staff_id=%s, date=%s",
		result.ID, staffID, result.Date)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/m04kA/randevu-service/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/randevu-service/internal/usecase/get_available_slots"
)

const (
	msgInvalidStaffID     = "Geçersiz personel kimliği"
	msgInvalidServiceID   = "Geçersiz hizmet kimliği"
	msgMissingServiceID   = "Hizmet kimliği zorunludur"
	msgMissingDate        = "Tarih zorunludur"
	msgInvalidDate        = "Geçersiz tarih formatı, YYYY-AA-GG bekleniyor"
	msgPastDate           = "Geçmiş tarihler için randevu alınamaz"
	msgDateTooFar         = "Seçilen tarih için henüz randevu alınamaz"
	msgStaffNotFound      = "Personel bulunamadı"
	msgServiceNotFound    = "Hizmet bulunamadı"
	msgServiceNotProvided = "Bu personel seçilen hizmeti vermiyor"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff/{staffId}/available-slots
// Query params: serviceId (required), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	staffID, err := uuid.Parse(mux.Vars(r)["staffId"])
	if err != nil {
		h.logger.Warn("GET /staff/{id}/available-slots - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	serviceIDStr := r.URL.Query().Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /staff/{id}/available-slots - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	serviceID, err := uuid.Parse(serviceIDStr)
	if err != nil {
		h.logger.Warn("GET /staff/{id}/available-slots - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /staff/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	useCaseReq, err := ToUseCaseRequest(staffID, serviceID, dateStr)
	if err != nil {
		h.logger.Warn("GET /staff/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrNoAvailability) && result != nil:
			// Пустой день не ошибка для клиента: 200 с причиной
			h.logger.Info("GET /staff/{id}/available-slots - No slots: staff_id=%s, date=%s, reason=%s",
				staffID, dateStr, result.Reason)
			handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))

		case errors.Is(err, getAvailableSlots.ErrPastDate):
			h.logger.Warn("GET /staff/{id}/available-slots - Past date: staff_id=%s, date=%s", staffID, dateStr)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, getAvailableSlots.ErrDateTooFarInFuture):
			h.logger.Warn("GET /staff/{id}/available-slots - Date too far in future: staff_id=%s, date=%s", staffID, dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailableSlots.ErrStaffNotFound):
			h.logger.Warn("GET /staff/{id}/available-slots - Staff not found: staff_id=%s", staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /staff/{id}/available-slots - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotProvided):
			h.logger.Warn("GET /staff/{id}/available-slots - Service not provided: staff_id=%s, service_id=%s",
				staffID, serviceID)
			handlers.RespondBadRequest(w, msgServiceNotProvided)

		default:
			h.logger.Error("GET /staff/{id}/available-slots - Failed to get slots: staff_id=%s, service_id=%s, date=%s, error=%v",
				staffID, serviceID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /staff/{id}/available-slots - Slots retrieved successfully: staff_id=%s, service_id=%s, slots_count=%d",
		staffID, serviceID, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}

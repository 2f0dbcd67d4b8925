package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/randevu-service/internal/api/handlers"
	createAppointment "github.com/m04kA/randevu-service/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "Geçersiz istek gövdesi"
	msgInvalidDate        = "Geçersiz tarih formatı, YYYY-AA-GG bekleniyor"
	msgInvalidTime        = "Geçersiz saat formatı, SS:DD bekleniyor"
	msgInvalidInput       = "Lütfen zorunlu alanları doğru doldurun"
	msgConsentRequired    = "KVKK onayı zorunludur"
	msgSlotNotAvailable   = "Seçilen saat artık müsait değil"
	msgStaffNotFound      = "Personel bulunamadı"
	msgServiceNotFound    = "Hizmet bulunamadı"
	msgServiceNotProvided = "Bu personel seçilen hizmeti vermiyor"
	msgPastDate           = "Geçmiş tarihler için randevu alınamaz"
	msgDateTooFar         = "Seçilen tarih için henüz randevu alınamaz"
	msgInvalidTimeSlot    = "Seçilen saat geçerli bir randevu saati değil"
	msgTooLateToBook      = "Bu saat için randevu süresi geçti"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		if errors.Is(err, errInvalidTime) {
			handlers.RespondBadRequest(w, msgInvalidTime)
		} else {
			handlers.RespondBadRequest(w, msgInvalidDate)
		}
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: staff_id=%s, date=%s, time=%s",
				req.StaffID, req.Date, req.Time)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrStaffNotFound):
			h.logger.Warn("POST /appointments - Staff not found: staff_id=%s", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - Service not found: service_id=%s", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotProvided):
			h.logger.Warn("POST /appointments - Service not provided: staff_id=%s, service_id=%s", req.StaffID, req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceNotProvided)

		case errors.Is(err, createAppointment.ErrConsentRequired):
			h.logger.Warn("POST /appointments - KVKK consent missing: staff_id=%s", req.StaffID)
			handlers.RespondBadRequest(w, msgConsentRequired)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createAppointment.ErrPastDate):
			h.logger.Warn("POST /appointments - Past date: staff_id=%s, date=%s", req.StaffID, req.Date)
			handlers.RespondBadRequest(w, msgPastDate)

		case errors.Is(err, createAppointment.ErrDateTooFarInFuture):
			h.logger.Warn("POST /appointments - Date too far in future: staff_id=%s, date=%s", req.StaffID, req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createAppointment.ErrInvalidTimeSlot):
			h.logger.Warn("POST /appointments - Invalid time slot: staff_id=%s, date=%s, time=%s",
				req.StaffID, req.Date, req.Time)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createAppointment.ErrTooLateToBook):
			h.logger.Warn("POST /appointments - Too late to book: staff_id=%s, date=%s, time=%s",
				req.StaffID, req.Date, req.Time)
			handlers.RespondBadRequest(w, msgTooLateToBook)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: staff_id=%s, service_id=%s, error=%v",
				req.StaffID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%s, staff_id=%s",
		result.ID, result.StaffID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}

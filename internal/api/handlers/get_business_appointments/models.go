package get_business_appointments

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/randevu-service/internal/domain"
	"github.com/m04kA/randevu-service/internal/service/appointments/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров.
// date задаёт один день, startDate/endDate - период; date имеет приоритет
func ToServiceRequest(businessID uuid.UUID, query url.Values) (*models.GetBusinessAppointmentsRequest, error) {
	req := &models.GetBusinessAppointmentsRequest{
		BusinessID: businessID,
	}

	if s := query.Get("staffId"); s != "" {
		staffID, err := uuid.Parse(s)
		if err != nil {
			return nil, fmt.Errorf("invalid staffId: %w", err)
		}
		req.StaffID = &staffID
	}

	if s := query.Get("status"); s != "" {
		req.Status = &s
	}

	var err error
	if req.StartDate, err = parseDate(query.Get("startDate")); err != nil {
		return nil, fmt.Errorf("invalid startDate: %w", err)
	}
	if req.EndDate, err = parseDate(query.Get("endDate")); err != nil {
		return nil, fmt.Errorf("invalid endDate: %w", err)
	}

	if s := query.Get("date"); s != "" {
		date, err := parseDate(s)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		req.StartDate, req.EndDate = date, date
	}

	if s := query.Get("includeCancelled"); s != "" {
		includeCancelled, err := strconv.ParseBool(s)
		if err != nil {
			return nil, fmt.Errorf("invalid includeCancelled value: %w", err)
		}
		req.IncludeCancelled = includeCancelled
	}

	return req, nil
}

func parseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}

	date, err := time.Parse(domain.DateFormat, s)
	if err != nil {
		return nil, err
	}
	return &date, nil
}

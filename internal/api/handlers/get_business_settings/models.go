package get_business_settings

import "github.com/google/uuid"

// ParseServiceID разбирает необязательный serviceId. Пустая строка - правила бизнеса
func ParseServiceID(serviceIDStr string) (*uuid.UUID, error) {
	if serviceIDStr == "" {
		return nil, nil
	}

	serviceID, err := uuid.Parse(serviceIDStr)
	if err != nil {
		return nil, err
	}
	return &serviceID, nil
}

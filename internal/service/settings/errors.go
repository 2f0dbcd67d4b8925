package settings

import "errors"

var (
	// ErrSettingsNotFound возвращается, когда настройки не найдены
	ErrSettingsNotFound = errors.New("settings: settings not found")

	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("settings: business not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена в бизнесе
	ErrServiceNotFound = errors.New("settings: service not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на бизнес
	ErrAccessDenied = errors.New("settings: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("settings: invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("settings: internal error")
)

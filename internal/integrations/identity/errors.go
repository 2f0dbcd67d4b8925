package identity

import "errors"

var (
	// ErrInvalidToken возвращается, когда токен не прошёл проверку или истёк
	ErrInvalidToken = errors.New("identity: invalid token")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("identity client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса аутентификации
	ErrInvalidResponse = errors.New("identity client: invalid response")
)

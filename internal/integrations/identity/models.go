package identity

import "github.com/google/uuid"

// User пользователь, которому выдан токен
type User struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email"`
}

// ErrorResponse модель ошибки от сервиса аутентификации
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"msg"`
}

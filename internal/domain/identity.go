package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role роль пользователя
type Role string

const (
	RoleCustomer      Role = "customer"
	RoleStaff         Role = "staff"
	RoleBusinessOwner Role = "business_owner"
	RoleSuperAdmin    Role = "super_admin"
)

// Identity аутентифицированный пользователь текущего запроса
type Identity struct {
	UserID uuid.UUID
	Email  string
	Role   Role
}

// IsSuperAdmin возвращает true для суперадминистратора платформы
func (i *Identity) IsSuperAdmin() bool {
	return i != nil && i.Role == RoleSuperAdmin
}

// Profile профиль пользователя платформы
type Profile struct {
	ID         uuid.UUID
	Email      string
	Name       *string
	Phone      *string
	Role       Role
	BusinessID *uuid.UUID // бизнес владельца (для business_owner)
}

// CustomerProfile данные клиента, сохраняемые при онлайн-записи
type CustomerProfile struct {
	Email       string
	Name        string
	Phone       string
	KVKKConsent bool
	ETKConsent  bool
	ConsentAt   time.Time
}

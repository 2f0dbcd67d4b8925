package access

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/randevu-service/internal/domain"
)

var (
	// ErrUnauthenticated возвращается, когда запрос выполнен без пользователя
	ErrUnauthenticated = errors.New("access: authentication required")

	// ErrAccessDenied возвращается, когда у пользователя нет прав на бизнес
	ErrAccessDenied = errors.New("access: access denied")

	// ErrInternal возвращается при ошибке проверки прав
	ErrInternal = errors.New("access: internal error")
)

// AdminRepository источник связей пользователей с бизнесами
type AdminRepository interface {
	IsBusinessAdmin(ctx context.Context, userID, businessID uuid.UUID) (bool, error)
}

// Checker проверяет права пользователя на управление бизнесом
type Checker struct {
	repo AdminRepository
}

// NewChecker создает новый экземпляр проверки прав
func NewChecker(repo AdminRepository) *Checker {
	return &Checker{repo: repo}
}

// CheckBusiness разрешает доступ суперадминистратору и администраторам (владельцам) бизнеса
func (c *Checker) CheckBusiness(ctx context.Context, identity *domain.Identity, businessID uuid.UUID) error {
	if identity == nil {
		return ErrUnauthenticated
	}
	if identity.IsSuperAdmin() {
		return nil
	}

	ok, err := c.repo.IsBusinessAdmin(ctx, identity.UserID, businessID)
	if err != nil {
		return fmt.Errorf("%w: CheckBusiness - %v", ErrInternal, err)
	}
	if !ok {
		return ErrAccessDenied
	}

	return nil
}

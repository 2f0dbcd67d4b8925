package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/m04kA/randevu-service/internal/api/handlers"
	"github.com/m04kA/randevu-service/internal/domain"
	catalogRepo "github.com/m04kA/randevu-service/internal/infra/storage/catalog"
	"github.com/m04kA/randevu-service/internal/integrations/identity"
)

const msgUnauthorized = "Oturum açmanız gerekiyor"

type identityKey struct{}

// WithIdentity кладёт пользователя запроса в контекст
func WithIdentity(ctx context.Context, id *domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext возвращает пользователя запроса или nil для анонимного запроса
func IdentityFromContext(ctx context.Context) *domain.Identity {
	id, _ := ctx.Value(identityKey{}).(*domain.Identity)
	return id
}

// Auth проверяет bearer токен и определяет роль пользователя по профилю
type Auth struct {
	verifier TokenVerifier
	profiles ProfileRepository
	logger   Logger
}

func NewAuth(verifier TokenVerifier, profiles ProfileRepository, logger Logger) *Auth {
	return &Auth{
		verifier: verifier,
		profiles: profiles,
		logger:   logger,
	}
}

// Middleware требует валидный токен в заголовке Authorization
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			a.logger.Warn("%s %s - missing bearer token", r.Method, r.URL.Path)
			handlers.RespondUnauthorized(w, msgUnauthorized)
			return
		}

		user, err := a.verifier.Verify(r.Context(), token)
		if err != nil {
			if identity.IsInvalidToken(err) {
				a.logger.Warn("%s %s - invalid token: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}
			a.logger.Error("%s %s - failed to verify token: %v", r.Method, r.URL.Path, err)
			handlers.RespondInternalError(w)
			return
		}

		id, err := a.resolve(r.Context(), user)
		if err != nil {
			a.logger.Error("%s %s - failed to load profile user_id=%s: %v", r.Method, r.URL.Path, user.ID, err)
			handlers.RespondInternalError(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
	})
}

// resolve дополняет данные токена ролью из профиля. Без профиля пользователь считается клиентом
func (a *Auth) resolve(ctx context.Context, user *identity.User) (*domain.Identity, error) {
	id := &domain.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Role:   domain.RoleCustomer,
	}

	profile, err := a.profiles.GetProfile(ctx, user.ID)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrProfileNotFound) {
			return id, nil
		}
		return nil, err
	}

	if profile.Role != "" {
		id.Role = profile.Role
	}
	if id.Email == "" {
		id.Email = profile.Email
	}

	return id, nil
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}

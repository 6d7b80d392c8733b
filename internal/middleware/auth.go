// Package middleware provides request logging, tracing, metrics and the
// bearer-token guard.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"devconnector/internal/auth"
	"devconnector/internal/models"
	"devconnector/internal/observability"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Locals keys set by AuthRequired.
const (
	LocalActor  = "actor"
	LocalUserID = "userID"
)

// UserLookup resolves the account behind a token.
type UserLookup interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// RevocationChecker reports whether a token id has been revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthConfig wires the guard. Revocations may be nil.
type AuthConfig struct {
	Tokens      *auth.TokenManager
	Users       UserLookup
	Revocations RevocationChecker
}

func unauthorized(c *fiber.Ctx, message string) error {
	observability.RecordAuth("token", false)
	return models.RespondWithError(c, models.NewUnauthorizedError("error", message))
}

// AuthRequired verifies the bearer token, resolves the account it names
// and stores the actor in locals and the user context. Any failure ends
// the request with 401 before the handler runs.
func AuthRequired(cfg AuthConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := BearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return unauthorized(c, "Authorization required")
		}

		claims, err := cfg.Tokens.Parse(tokenString)
		if err != nil {
			return unauthorized(c, "Invalid or expired token")
		}

		ctx := c.UserContext()
		if cfg.Revocations != nil && claims.RegisteredClaims.ID != "" {
			revoked, err := cfg.Revocations.IsRevoked(ctx, claims.RegisteredClaims.ID)
			if err != nil {
				slog.WarnContext(ctx, "revocation check failed", slog.String("error", err.Error()))
			} else if revoked {
				return unauthorized(c, "Token has been revoked")
			}
		}

		user, err := cfg.Users.GetByID(ctx, claims.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return unauthorized(c, "Account no longer exists")
			}
			return models.RespondWithError(c, models.NewInternalError(err))
		}

		actor := &auth.Actor{
			ID:        user.ID,
			Name:      user.Name,
			Email:     user.Email,
			Avatar:    user.Avatar,
			TokenID:   claims.RegisteredClaims.ID,
			ExpiresAt: claims.ExpiresAt.Unix(),
		}

		c.Locals(LocalActor, actor)
		c.Locals(LocalUserID, actor.ID)
		ctx = context.WithValue(ctx, UserIDKey, actor.ID)
		c.SetUserContext(auth.WithActor(ctx, actor))

		observability.RecordAuth("token", true)
		return c.Next()
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" value.
func BearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// ActorFrom returns the actor stored by AuthRequired.
func ActorFrom(c *fiber.Ctx) (*auth.Actor, bool) {
	a, ok := c.Locals(LocalActor).(*auth.Actor)
	return a, ok && a != nil
}

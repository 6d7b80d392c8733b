package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"devconnector/internal/auth"
	"devconnector/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret-key-12345678901234567890123456789012"

type stubUsers struct {
	users map[uint]*models.User
	err   error
}

func (s stubUsers) GetByID(_ context.Context, id uint) (*models.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

type stubRevocations map[string]bool

func (s stubRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	return s[jti], nil
}

func TestAuthRequired(t *testing.T) {
	tokens := auth.NewTokenManager(testSecret, "", "", time.Hour)
	users := stubUsers{users: map[uint]*models.User{
		123: {ID: 123, Name: "Ada", Email: "ada@example.com", Avatar: "//a"},
	}}

	valid, _, err := tokens.Issue(auth.Identity{ID: 123, Name: "Ada"})
	require.NoError(t, err)
	revokedToken, revokedClaims, err := tokens.Issue(auth.Identity{ID: 123, Name: "Ada"})
	require.NoError(t, err)
	ghost, _, err := tokens.Issue(auth.Identity{ID: 999, Name: "Gone"})
	require.NoError(t, err)
	foreign, _, err := auth.NewTokenManager("some-other-secret-that-is-32-bytes!!", "", "", time.Hour).
		Issue(auth.Identity{ID: 123})
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/test", AuthRequired(AuthConfig{
		Tokens:      tokens,
		Users:       users,
		Revocations: stubRevocations{revokedClaims.RegisteredClaims.ID: true},
	}), func(c *fiber.Ctx) error {
		actor, ok := ActorFrom(c)
		if !ok {
			return c.SendStatus(fiber.StatusTeapot)
		}
		ctxActor, _ := auth.ActorFrom(c.UserContext())
		return c.JSON(fiber.Map{"id": actor.ID, "email": actor.Email, "same": ctxActor == actor})
	})

	tests := []struct {
		name           string
		authHeader     string
		expectedStatus int
	}{
		{"Happy Path", "Bearer " + valid, http.StatusOK},
		{"Lowercase scheme", "bearer " + valid, http.StatusOK},
		{"Missing Header", "", http.StatusUnauthorized},
		{"Invalid Format", "Basic dXNlcjpwYXNz", http.StatusUnauthorized},
		{"Malformed Token", "Bearer malformed.token.here", http.StatusUnauthorized},
		{"Wrong Secret", "Bearer " + foreign, http.StatusUnauthorized},
		{"Revoked Token", "Bearer " + revokedToken, http.StatusUnauthorized},
		{"Deleted Account", "Bearer " + ghost, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)

			var body map[string]any
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, float64(123), body["id"])
				assert.Equal(t, "ada@example.com", body["email"])
				assert.Equal(t, true, body["same"])
			} else {
				assert.NotEmpty(t, body["error"])
			}
		})
	}
}

func TestAuthRequired_ExpiredToken(t *testing.T) {
	tokens := auth.NewTokenManager(testSecret, "", "", time.Second)
	token, _, err := tokens.Issue(auth.Identity{ID: 1})
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/test", AuthRequired(AuthConfig{
		Tokens: auth.NewTokenManager(testSecret, "", "", time.Second),
		Users:  stubUsers{users: map[uint]*models.User{1: {ID: 1}}},
	}), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	time.Sleep(2100 * time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthRequired_LookupFailureIsInternal(t *testing.T) {
	tokens := auth.NewTokenManager(testSecret, "", "", time.Hour)
	token, _, err := tokens.Issue(auth.Identity{ID: 1})
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/test", AuthRequired(AuthConfig{
		Tokens: tokens,
		Users:  stubUsers{err: errors.New("db down")},
	}), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}

func TestBearerToken(t *testing.T) {
	tok, ok := BearerToken("Bearer abc")
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	_, ok = BearerToken("Bearer ")
	assert.False(t, ok)
	_, ok = BearerToken("abc")
	assert.False(t, ok)
}

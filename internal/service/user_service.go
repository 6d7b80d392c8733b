package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"devconnector/internal/auth"
	"devconnector/internal/models"
	"devconnector/internal/observability"
	"devconnector/internal/repository"
	"devconnector/internal/validation"
)

// Revoker invalidates a token id until the token would have expired.
type Revoker interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
}

type UserService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
	revoker  Revoker
}

type RegisterInput struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult is the login response body. Token carries the "Bearer "
// prefix so clients can store it as the header value.
type LoginResult struct {
	Success bool   `json:"success"`
	Token   string `json:"token"`
}

// CurrentUser is the identity echoed by the current-user endpoint.
type CurrentUser struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func NewUserService(userRepo repository.UserRepository, tokens *auth.TokenManager, revoker Revoker) *UserService {
	return &UserService{
		userRepo: userRepo,
		tokens:   tokens,
		revoker:  revoker,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if res := validation.ValidateRegister(validation.RegisterData{
		Name:      in.Name,
		Email:     in.Email,
		Password:  in.Password,
		Password2: in.Password2,
	}); !res.IsValid() {
		observability.RecordAuth("register", false)
		return nil, invalid(res)
	}

	email := normalizeEmail(in.Email)
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, wrapInternal("lookup email", err)
	}
	if existing != nil {
		observability.RecordAuth("register", false)
		return nil, models.NewValidationError("email", "Email already exists!")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, wrapInternal("hash password", err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(in.Name),
		Email:    email,
		Password: hash,
		Avatar:   auth.GravatarURL(email),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err) {
			observability.RecordAuth("register", false)
			return nil, models.NewValidationError("email", "Email already exists!")
		}
		return nil, wrapInternal("create user", err)
	}

	observability.RecordAuth("register", true)
	return user, nil
}

func (s *UserService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if res := validation.ValidateLogin(validation.LoginData{
		Email:    in.Email,
		Password: in.Password,
	}); !res.IsValid() {
		observability.RecordAuth("login", false)
		return nil, invalid(res)
	}

	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(in.Email))
	if err != nil {
		return nil, wrapInternal("lookup email", err)
	}
	if user == nil {
		observability.RecordAuth("login", false)
		return nil, models.NewNotFoundError("email", "User not found")
	}

	if !auth.CheckPassword(user.Password, in.Password) {
		observability.RecordAuth("login", false)
		return nil, models.NewValidationError("password", "Password Incorrect")
	}

	token, _, err := s.tokens.Issue(auth.Identity{
		ID:     user.ID,
		Name:   user.Name,
		Avatar: user.Avatar,
	})
	if err != nil {
		return nil, wrapInternal("issue token", err)
	}

	observability.RecordAuth("login", true)
	return &LoginResult{Success: true, Token: "Bearer " + token}, nil
}

// Current echoes the authenticated actor.
func (s *UserService) Current(actor *auth.Actor) CurrentUser {
	return CurrentUser{ID: actor.ID, Name: actor.Name, Email: actor.Email}
}

// Logout revokes the token the actor authenticated with.
func (s *UserService) Logout(ctx context.Context, actor *auth.Actor) error {
	if s.revoker == nil {
		return wrapInternal("logout", errors.New("token revocation is not configured"))
	}
	err := s.revoker.Revoke(ctx, actor.TokenID, time.Unix(actor.ExpiresAt, 0))
	observability.RecordAuth("logout", err == nil)
	if err != nil {
		return wrapInternal("revoke token", err)
	}
	return nil
}

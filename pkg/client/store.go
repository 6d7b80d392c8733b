package client

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenUser is the identity carried inside a login token.
type TokenUser struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
	jwt.RegisteredClaims
}

// AuthState is the session half of the store.
type AuthState struct {
	IsAuthenticated bool
	User            *TokenUser
}

// ProfileState is the profile half of the store. A non-nil Profile with a
// zero ID means the user has no profile yet.
type ProfileState struct {
	Profile  *Profile
	Profiles []Profile
	Loading  bool
}

// Store holds session and profile state and the last field errors
// returned by the API. Actions call the API and update state; reads
// return copies.
type Store struct {
	api *Client

	mu      sync.RWMutex
	auth    AuthState
	profile ProfileState
	errors  map[string]string
}

// NewStore returns an empty store backed by api.
func NewStore(api *Client) *Store {
	return &Store{api: api, errors: map[string]string{}}
}

// Auth returns a snapshot of the session state.
func (s *Store) Auth() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.auth
	if out.User != nil {
		u := *out.User
		out.User = &u
	}
	return out
}

// Profile returns a snapshot of the profile state.
func (s *Store) Profile() ProfileState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := s.profile
	if out.Profile != nil {
		p := out.Profile.clone()
		out.Profile = &p
	}
	if out.Profiles != nil {
		out.Profiles = make([]Profile, len(s.profile.Profiles))
		for i, p := range s.profile.Profiles {
			out.Profiles[i] = p.clone()
		}
	}
	return out
}

// clone copies p so that no slice or pointer is shared with the original.
func (p Profile) clone() Profile {
	if p.User != nil {
		u := *p.User
		p.User = &u
	}
	if p.Skills != nil {
		p.Skills = append([]string(nil), p.Skills...)
	}
	if p.Experience != nil {
		exp := make([]Experience, len(p.Experience))
		for i, e := range p.Experience {
			e.To = cloneTime(e.To)
			exp[i] = e
		}
		p.Experience = exp
	}
	if p.Education != nil {
		edu := make([]Education, len(p.Education))
		for i, e := range p.Education {
			e.To = cloneTime(e.To)
			edu[i] = e
		}
		p.Education = edu
	}
	return p
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}

// Errors returns the field errors of the last failed action.
func (s *Store) Errors() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]string, len(s.errors))
	for k, v := range s.errors {
		out[k] = v
	}
	return out
}

// record stores err's field messages, or clears them when err is nil.
func (s *Store) record(err error) {
	fields := map[string]string{}
	var apiErr *APIError
	switch {
	case err == nil:
	case errors.As(err, &apiErr):
		for k, v := range apiErr.Fields {
			fields[k] = v
		}
	default:
		fields["error"] = err.Error()
	}

	s.mu.Lock()
	s.errors = fields
	s.mu.Unlock()
}

// RegisterUser creates an account. Field errors land in Errors.
func (s *Store) RegisterUser(ctx context.Context, in RegisterRequest) (*User, error) {
	user, err := s.api.Register(ctx, in)
	s.record(err)
	return user, err
}

// LoginUser logs in, attaches the token to every later request and sets
// the current user from the token's claims.
func (s *Store) LoginUser(ctx context.Context, in LoginRequest) error {
	res, err := s.api.Login(ctx, in)
	if err != nil {
		s.record(err)
		return err
	}

	user, err := DecodeToken(res.Token)
	if err != nil {
		s.record(err)
		return err
	}

	s.api.SetToken(res.Token)
	s.SetCurrentUser(user)
	s.record(nil)
	return nil
}

// DecodeToken reads the identity from a token without verifying its
// signature. The "Bearer " prefix is optional.
func DecodeToken(token string) (*TokenUser, error) {
	raw := strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	var claims TokenUser
	if _, _, err := jwt.NewParser().ParseUnverified(raw, &claims); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}
	return &claims, nil
}

// SetCurrentUser sets the session user. A nil user, or one with a zero
// id, logs the session out.
func (s *Store) SetCurrentUser(user *TokenUser) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if user == nil || user.ID == 0 {
		s.auth = AuthState{}
		return
	}
	u := *user
	s.auth = AuthState{IsAuthenticated: true, User: &u}
}

// LogoutUser revokes the token server-side when possible, then drops it
// and clears the session and profile.
func (s *Store) LogoutUser(ctx context.Context) error {
	var err error
	if s.api.Token() != "" {
		err = s.api.Logout(ctx)
	}
	s.api.SetToken("")
	s.SetCurrentUser(nil)
	s.ClearCurrentProfile()
	return err
}

// SetProfileLoading marks the profile as being fetched.
func (s *Store) SetProfileLoading() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.Loading = true
}

// ClearCurrentProfile forgets the loaded profile.
func (s *Store) ClearCurrentProfile() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile.Profile = nil
	s.profile.Loading = false
}

// GetCurrentProfile loads the caller's profile. When the user has none
// the profile becomes an empty value and no error is returned.
func (s *Store) GetCurrentProfile(ctx context.Context) error {
	s.SetProfileLoading()

	profile, err := s.api.CurrentProfile(ctx)
	if err != nil {
		if !IsNotFound(err) {
			s.mu.Lock()
			s.profile.Loading = false
			s.mu.Unlock()
			s.record(err)
			return err
		}
		profile = &Profile{}
	}

	s.mu.Lock()
	s.profile.Profile = profile
	s.profile.Loading = false
	s.mu.Unlock()
	return nil
}

// GetProfiles loads every profile. No profiles leaves an empty list.
func (s *Store) GetProfiles(ctx context.Context) error {
	s.SetProfileLoading()

	profiles, err := s.api.Profiles(ctx)
	if err != nil && !IsNotFound(err) {
		s.mu.Lock()
		s.profile.Loading = false
		s.mu.Unlock()
		s.record(err)
		return err
	}

	s.mu.Lock()
	s.profile.Profiles = profiles
	s.profile.Loading = false
	s.mu.Unlock()
	return nil
}

// SaveProfile creates or updates the profile and stores the result.
func (s *Store) SaveProfile(ctx context.Context, in ProfileRequest) error {
	profile, err := s.api.SaveProfile(ctx, in)
	s.record(err)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.profile.Profile = profile
	s.mu.Unlock()
	return nil
}

// DeleteAccount removes the account and logs the session out.
func (s *Store) DeleteAccount(ctx context.Context) error {
	if err := s.api.DeleteAccount(ctx); err != nil {
		s.record(err)
		return err
	}
	s.api.SetToken("")
	s.SetCurrentUser(nil)
	s.ClearCurrentProfile()
	return nil
}

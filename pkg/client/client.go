// Package client is a typed Go client for the DevConnector API together
// with Store, the session and profile state a front end keeps.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	dialTimeout = 10 * time.Second
	reqTimeout  = 30 * time.Second
)

// APIError is a non-2xx response. Fields holds the field-keyed messages
// of the body, e.g. {"email": "User not found"}.
type APIError struct {
	Status int
	Fields map[string]string
}

func (e *APIError) Error() string {
	if len(e.Fields) == 0 {
		return fmt.Sprintf("api error: status %d", e.Status)
	}
	keys := make([]string, 0, len(e.Fields))
	for k, v := range e.Fields {
		keys = append(keys, k+": "+v)
	}
	sort.Strings(keys)
	return fmt.Sprintf("api error: status %d: %s", e.Status, strings.Join(keys, ", "))
}

// IsNotFound reports whether err is an APIError with status 404.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Client talks to one API base URL such as http://localhost:5000/api.
type Client struct {
	baseURL string
	http    *http.Client

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// New returns a Client for baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: dialTimeout}).DialContext,
			},
			Timeout: reqTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken sets the Authorization header value sent with every request.
// An empty token stops sending the header.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Token returns the current Authorization header value.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("error sending request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		raw, _ := io.ReadAll(resp.Body)
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(raw, &apiErr.Fields); err != nil && len(raw) > 0 {
			apiErr.Fields = map[string]string{"error": strings.TrimSpace(string(raw))}
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}

func idPath(prefix string, ids ...uint) string {
	var sb strings.Builder
	sb.WriteString(prefix)
	for _, id := range ids {
		sb.WriteByte('/')
		sb.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	return sb.String()
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, in RegisterRequest) (*User, error) {
	var out User
	if err := c.do(ctx, http.MethodPost, "/users/register", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login exchanges credentials for a bearer token. It does not store the
// token; see Store.LoginUser.
func (c *Client) Login(ctx context.Context, in LoginRequest) (*LoginResponse, error) {
	var out LoginResponse
	if err := c.do(ctx, http.MethodPost, "/users/login", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Current(ctx context.Context) (*CurrentUser, error) {
	var out CurrentUser
	if err := c.do(ctx, http.MethodPost, "/users/current", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Logout revokes the current token on the server.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/users/logout", nil, nil)
}

func (c *Client) CurrentProfile(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := c.do(ctx, http.MethodGet, "/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SaveProfile creates the caller's profile or updates it.
func (c *Client) SaveProfile(ctx context.Context, in ProfileRequest) (*Profile, error) {
	var out Profile
	if err := c.do(ctx, http.MethodPost, "/profile", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteAccount removes the caller's profile and user.
func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/profile", nil, nil)
}

func (c *Client) Profiles(ctx context.Context) ([]Profile, error) {
	var out []Profile
	if err := c.do(ctx, http.MethodGet, "/profile/all", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ProfileByHandle(ctx context.Context, handle string) (*Profile, error) {
	var out Profile
	if err := c.do(ctx, http.MethodGet, "/profile/handle/"+url.PathEscape(handle), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ProfileByUser(ctx context.Context, userID uint) (*Profile, error) {
	var out Profile
	if err := c.do(ctx, http.MethodGet, idPath("/profile/user", userID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddExperience(ctx context.Context, in ExperienceRequest) (*Profile, error) {
	var out Profile
	if err := c.do(ctx, http.MethodPost, "/profile/experience", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteExperience(ctx context.Context, id uint) (*Profile, error) {
	var out Profile
	if err := c.do(ctx, http.MethodDelete, idPath("/profile/experience", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) AddEducation(ctx context.Context, in EducationRequest) (*Profile, error) {
	var out Profile
	if err := c.do(ctx, http.MethodPost, "/profile/education", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteEducation(ctx context.Context, id uint) (*Profile, error) {
	var out Profile
	if err := c.do(ctx, http.MethodDelete, idPath("/profile/education", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Posts lists every post, newest first.
func (c *Client) Posts(ctx context.Context) ([]Post, error) {
	var out []Post
	if err := c.do(ctx, http.MethodGet, "/posts", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Post(ctx context.Context, id uint) (*Post, error) {
	return c.postCall(ctx, http.MethodGet, idPath("/posts", id), nil)
}

func (c *Client) CreatePost(ctx context.Context, text string) (*Post, error) {
	return c.postCall(ctx, http.MethodPost, "/posts", map[string]string{"text": text})
}

func (c *Client) DeletePost(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, idPath("/posts", id), nil, nil)
}

func (c *Client) Like(ctx context.Context, id uint) (*Post, error) {
	return c.postCall(ctx, http.MethodPost, idPath("/posts/like", id), nil)
}

func (c *Client) Unlike(ctx context.Context, id uint) (*Post, error) {
	return c.postCall(ctx, http.MethodPost, idPath("/posts/unlike", id), nil)
}

func (c *Client) AddComment(ctx context.Context, id uint, text string) (*Post, error) {
	return c.postCall(ctx, http.MethodPost, idPath("/posts/comment", id), map[string]string{"text": text})
}

func (c *Client) DeleteComment(ctx context.Context, id, commentID uint) (*Post, error) {
	return c.postCall(ctx, http.MethodDelete, idPath("/posts/comment", id, commentID), nil)
}

func (c *Client) postCall(ctx context.Context, method, path string, body any) (*Post, error) {
	var out Post
	if err := c.do(ctx, method, path, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

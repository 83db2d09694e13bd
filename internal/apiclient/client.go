// Package apiclient is an HTTP client for the CollegeFinder API. It
// implements reconcile.Client so the shortlist reconciler can run against a
// remote server.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/HerbHall/collegefinder/internal/reconcile"
	"github.com/HerbHall/collegefinder/internal/server"
	"github.com/HerbHall/collegefinder/internal/session"
	"github.com/HerbHall/collegefinder/pkg/college"
)

// DefaultTimeout bounds every request unless overridden.
const DefaultTimeout = 60 * time.Second

// maxResponseBody caps decoded response bodies.
const maxResponseBody = 32 << 20

var _ reconcile.Client = (*Client)(nil)

// Client talks to the CollegeFinder API. It is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// WithLogger sets the client logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client for the API rooted at baseURL, for example
// "http://127.0.0.1:8000".
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken replaces the bearer token.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

type loginResponse struct {
	Token    string       `json:"token"`
	UserID   int64        `json:"user_id"`
	Username string       `json:"username"`
	Email    string       `json:"email"`
	Role     session.Role `json:"role"`
}

// Login authenticates and keeps the returned token for later requests.
func (c *Client) Login(ctx context.Context, email, password string) (*session.Session, error) {
	var resp loginResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/v1/auth/login", body, &resp); err != nil {
		return nil, mapError(err)
	}
	c.SetToken(resp.Token)
	c.logger.Debug("logged in", zap.Int64("user_id", resp.UserID), zap.String("role", string(resp.Role)))
	return &session.Session{
		UserID:   resp.UserID,
		Username: resp.Username,
		Email:    resp.Email,
		Role:     resp.Role,
	}, nil
}

// Register creates a student account. It does not log in.
func (c *Client) Register(ctx context.Context, username, email, password string) error {
	body := map[string]string{"username": username, "email": email, "password": password}
	return mapError(c.do(ctx, http.MethodPost, "/api/v1/auth/register", body, nil))
}

// FetchCatalog returns every college. An empty catalog, which the server
// reports as 404, is returned as an empty slice.
func (c *Client) FetchCatalog(ctx context.Context) ([]college.RawCollege, error) {
	var out []college.RawCollege
	err := c.do(ctx, http.MethodGet, "/api/v1/college", nil, &out)
	if IsNotFound(err) {
		return []college.RawCollege{}, nil
	}
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// SearchCatalog asks the server to filter the catalog. A filter with no
// matches yields an empty slice.
func (c *Client) SearchCatalog(ctx context.Context, q url.Values) ([]college.RawCollege, error) {
	var out []college.RawCollege
	err := c.do(ctx, http.MethodGet, "/api/v1/college?"+q.Encode(), nil, &out)
	if IsNotFound(err) {
		return []college.RawCollege{}, nil
	}
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

func (c *Client) FetchLiked(ctx context.Context, userID int64) ([]college.RawCollege, error) {
	var resp struct {
		Colleges []college.RawCollege `json:"liked_colleges"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/college/liked/"+id(userID), nil, &resp); err != nil {
		return nil, mapError(err)
	}
	return resp.Colleges, nil
}

func (c *Client) FetchCompared(ctx context.Context, userID int64) ([]college.RawCollege, error) {
	var resp struct {
		Colleges []college.RawCollege `json:"compared_colleges"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/college/compare/"+id(userID), nil, &resp); err != nil {
		return nil, mapError(err)
	}
	return resp.Colleges, nil
}

// ToggleLike flips the like on a college. The server derives the user from
// the token; userID is accepted to satisfy reconcile.Client.
func (c *Client) ToggleLike(ctx context.Context, collegeID, _ int64) (bool, error) {
	var resp struct {
		Liked bool `json:"liked"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/v1/college/like/"+id(collegeID), nil, &resp); err != nil {
		return false, mapError(err)
	}
	return resp.Liked, nil
}

func (c *Client) AddToCompare(ctx context.Context, userID, collegeID int64) error {
	path := "/api/v1/college/compare/" + id(userID) + "/" + id(collegeID)
	return mapError(c.do(ctx, http.MethodPost, path, nil, nil))
}

func (c *Client) RemoveFromCompare(ctx context.Context, userID, collegeID int64) error {
	path := "/api/v1/college/compare/" + id(userID) + "/" + id(collegeID)
	return mapError(c.do(ctx, http.MethodDelete, path, nil, nil))
}

// Brackets returns the budget brackets the server currently offers.
func (c *Client) Brackets(ctx context.Context) ([]college.BudgetBracket, error) {
	var resp struct {
		Brackets []college.BudgetBracket `json:"brackets"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/v1/settings/brackets", nil, &resp); err != nil {
		return nil, mapError(err)
	}
	return resp.Brackets, nil
}

// do sends a JSON request and decodes a JSON response into out when out is
// non-nil. Non-2xx responses become *StatusError.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("api request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		se := &StatusError{StatusCode: resp.StatusCode}
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		if err := json.Unmarshal(data, &se.Problem); err != nil {
			se.Problem = server.Problem{Status: resp.StatusCode, Detail: strings.TrimSpace(string(data))}
		}
		return se
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func id(v int64) string { return strconv.FormatInt(v, 10) }

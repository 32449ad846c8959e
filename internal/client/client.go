// Package client talks to the Hireable REST API. It implements the listing
// query and submission collaborators used by the CLI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"hireable-backend/internal/domain"
	"hireable-backend/internal/listing"
	"hireable-backend/internal/wizard"
	"hireable-backend/pkg/content"

	"golang.org/x/oauth2"
)

var ErrNotFound = errors.New("client: not found")

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status    int
	Message   string
	RequestID string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d %s", e.Status, e.Message)
}

// UserMessage is the server's message, shown as-is to the user.
func (e *APIError) UserMessage() string { return e.Message }

// Is lets errors.Is(err, ErrNotFound) match a 404.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

type envelope struct {
	Success   bool            `json:"success"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	RequestID string          `json:"request_id"`
}

type Option func(*Client)

// WithToken authenticates every request with a bearer token.
func WithToken(token string) Option {
	return func(c *Client) {
		if token == "" {
			return
		}
		c.tokens = oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	}
}

// WithTokenSource authenticates with a refreshing source.
func WithTokenSource(ts oauth2.TokenSource) Option { return func(c *Client) { c.tokens = ts } }

func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.base = h } }

func WithLocale(l content.Locale) Option { return func(c *Client) { c.locale = l } }

type Client struct {
	baseURL string
	base    *http.Client
	tokens  oauth2.TokenSource
	locale  content.Locale
	http    *http.Client
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		base:    &http.Client{Timeout: 30 * time.Second},
		locale:  content.DefaultLocale,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.http = c.base
	if c.tokens != nil {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, c.base)
		c.http = oauth2.NewClient(ctx, c.tokens)
		c.http.Timeout = c.base.Timeout
	}
	return c
}

// Authenticated reports whether requests carry a bearer token.
func (c *Client) Authenticated() bool { return c.tokens != nil }

func (c *Client) newRequest(ctx context.Context, method, path string, q url.Values, body io.Reader) (*http.Request, error) {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.AddCookie(&http.Cookie{Name: content.LocaleCookie, Value: string(c.locale)})
	return req, nil
}

// do sends req and decodes the envelope's data into out when out is non-nil.
func (c *Client) do(req *http.Request, out interface{}) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	var env envelope
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 300 {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	if resp.StatusCode >= 300 {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{Status: resp.StatusCode, Message: msg, RequestID: env.RequestID}
	}
	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode data: %w", err)
	}
	return nil
}

// List fetches one page of the candidate directory. The server's page
// size is fixed, so limit only bounds what is returned to the caller.
func (c *Client) List(ctx context.Context, f listing.Filter, offset, limit int) (listing.Page, error) {
	q := f.Values()
	q.Set("offset", strconv.Itoa(offset))
	req, err := c.newRequest(ctx, http.MethodGet, "/v1/candidates/list", q, nil)
	if err != nil {
		return listing.Page{}, err
	}
	var page domain.ListingPage
	if err := c.do(req, &page); err != nil {
		return listing.Page{}, err
	}
	items := page.Candidates
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return listing.Page{Items: items, Total: int(page.TotalCount)}, nil
}

// Submit posts the onboarding payload.
func (c *Client) Submit(ctx context.Context, p *wizard.Payload) (*domain.Candidate, error) {
	body, contentType, err := p.Encode()
	if err != nil {
		return nil, err
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/v1/candidates", nil, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	var created domain.Candidate
	if err := c.do(req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Candidate fetches one full profile. Unknown ids return ErrNotFound.
func (c *Client) Candidate(ctx context.Context, id string) (*domain.Candidate, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/v1/candidates/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}
	var cand domain.Candidate
	if err := c.do(req, &cand); err != nil {
		return nil, err
	}
	return &cand, nil
}

// Me returns the caller's own profile, or ErrNotFound before onboarding.
func (c *Client) Me(ctx context.Context) (*domain.Candidate, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/v1/candidates/me", nil, nil)
	if err != nil {
		return nil, err
	}
	var out struct {
		Exists bool              `json:"exists"`
		Data   *domain.Candidate `json:"data"`
	}
	if err := c.do(req, &out); err != nil {
		return nil, err
	}
	if !out.Exists || out.Data == nil {
		return nil, &APIError{Status: http.StatusNotFound, Message: "profile not found"}
	}
	return out.Data, nil
}

func (c *Client) Stats(ctx context.Context) (*domain.CandidateStats, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/v1/candidates/stats", nil, nil)
	if err != nil {
		return nil, err
	}
	var stats domain.CandidateStats
	if err := c.do(req, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Role returns the caller's role, RoleNone when none is assigned yet.
func (c *Client) Role(ctx context.Context) (domain.Role, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/v1/user-role", nil, nil)
	if err != nil {
		return domain.RoleNone, err
	}
	var out struct {
		Role domain.Role `json:"role"`
	}
	if err := c.do(req, &out); err != nil {
		if errors.Is(err, ErrNotFound) {
			return domain.RoleNone, nil
		}
		return domain.RoleNone, err
	}
	return out.Role, nil
}

// AssignRole sets the caller's role once.
func (c *Client) AssignRole(ctx context.Context, role domain.Role) error {
	body, err := json.Marshal(map[string]string{"role": string(role)})
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/v1/user-role", nil, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, nil)
}

// Export downloads the filtered directory as xlsx or csv.
func (c *Client) Export(ctx context.Context, f listing.Filter, format string) ([]byte, error) {
	q := f.Values()
	q.Set("format", format)
	req, err := c.newRequest(ctx, http.MethodGet, "/v1/candidates/export", q, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode >= 300 {
		var env envelope
		_ = json.Unmarshal(data, &env)
		return nil, &APIError{Status: resp.StatusCode, Message: env.Message, RequestID: env.RequestID}
	}
	return data, nil
}

// Package authapi is the HTTP/JSON client for the JobPortal Authentication
// Service.
package authapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/jobportal/client/internal/core/domain"
	"github.com/jobportal/client/internal/core/ports"
)

const (
	signInPath  = "/api/signin"
	signUpPath  = "/api/signup"
	profilePath = "/api/profile"
	healthPath  = "/api/health"
	statsPath   = "/api/stats"

	maxErrorBody = 64 << 10
)

// Client talks to the Authentication Service. Each call is a single attempt.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a Client for baseURL. A zero timeout leaves request
// lifetime to the transport and the caller's context.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// errorBody is the service's failure envelope. detail is usually a string
// but request validation errors carry a list.
type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

func (c *Client) SignIn(ctx context.Context, req ports.SignInRequest) (*ports.AuthResult, error) {
	return c.authenticate(ctx, signInPath, req)
}

func (c *Client) SignUp(ctx context.Context, req ports.SignUpRequest) (*ports.AuthResult, error) {
	return c.authenticate(ctx, signUpPath, req)
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (*ports.AuthResult, error) {
	req, err := c.newRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, transportFailure(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, transportFailure(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.AuthFailure{
			Status: resp.StatusCode,
			Reason: rejectionReason(resp.Body),
			Err:    domain.ErrAuthRejected,
		}
	}

	var result ports.AuthResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, transportFailure(fmt.Errorf("decode %s response: %w", path, err))
	}
	if result.AccessToken == "" {
		return nil, transportFailure(fmt.Errorf("%s response has no access_token", path))
	}
	return &result, nil
}

// Profile fetches the profile for token. Any non-2xx answer is
// domain.ErrProfileRejected; network and decoding problems are
// domain.ErrTransport.
func (c *Client) Profile(ctx context.Context, token string) (*domain.Profile, error) {
	req, err := c.newRequest(ctx, http.MethodGet, profilePath, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: status %d", domain.ErrProfileRejected, resp.StatusCode)
	}

	var profile domain.Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("%w: decode profile: %w", domain.ErrTransport, err)
	}
	return &profile, nil
}

// HealthStatus is the service's health report.
type HealthStatus struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Timestamp string `json:"timestamp"`
}

// Health calls the service health endpoint.
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	var h HealthStatus
	if err := c.getJSON(ctx, healthPath, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

// Ping reports whether the service answers its health endpoint.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.Health(ctx)
	return err
}

// Stats fetches the public user counts.
func (c *Client) Stats(ctx context.Context) (*ports.PlatformStats, error) {
	var s ports.PlatformStats
	if err := c.getJSON(ctx, statsPath, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("GET %s: unexpected status %s", path, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// rejectionReason extracts a string detail, falling back to the generic
// message for anything else.
func rejectionReason(body io.Reader) string {
	var eb errorBody
	if err := json.NewDecoder(io.LimitReader(body, maxErrorBody)).Decode(&eb); err != nil {
		return domain.GenericAuthFailure
	}
	var detail string
	if err := json.Unmarshal(eb.Detail, &detail); err != nil || detail == "" {
		return domain.GenericAuthFailure
	}
	return detail
}

func transportFailure(err error) error {
	if errors.Is(err, domain.ErrTransport) {
		return &domain.AuthFailure{Reason: domain.GenericAuthFailure, Err: err}
	}
	return &domain.AuthFailure{
		Reason: domain.GenericAuthFailure,
		Err:    fmt.Errorf("%w: %w", domain.ErrTransport, err),
	}
}

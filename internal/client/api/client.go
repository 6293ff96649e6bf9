// Package api is an HTTP client for the LocalSites Pro mock API.
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/atinyakov/LocalSites/internal/models"
	"github.com/atinyakov/LocalSites/internal/service"
)

const (
	apiHealth    = "/api/health"
	apiTemplates = "/api/templates"
	apiLogin     = "/api/auth/login"
	apiSignup    = "/api/auth/signup"
	apiContact   = "/api/contact"
)

// Client calls the mock API rooted at BaseURL.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

// New returns a Client for baseURL. When caFile is set, HTTPS
// connections trust only that CA.
func New(baseURL, caFile string) (*Client, error) {
	httpClient := &http.Client{Timeout: 10 * time.Second}
	if caFile != "" {
		caCert, err := os.ReadFile(caFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA cert: %w", err)
		}
		caPool := x509.NewCertPool()
		if !caPool.AppendCertsFromPEM(caCert) {
			return nil, errors.New("failed to parse CA cert")
		}
		httpClient.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{RootCAs: caPool, MinVersion: tls.VersionTLS12},
		}
	}
	return &Client{BaseURL: strings.TrimRight(baseURL, "/"), HTTP: httpClient}, nil
}

// Health calls GET /api/health.
func (c *Client) Health(ctx context.Context) (models.HealthStatus, error) {
	var out models.HealthStatus
	resp, err := c.do(ctx, http.MethodGet, apiHealth, nil)
	if err != nil {
		return out, err
	}
	defer resp.Body.Close()
	if err := expectOK(resp); err != nil {
		return out, err
	}
	return out, decode(resp.Body, &out)
}

// ListTemplates calls GET /api/templates, filtered by category unless it
// is empty.
func (c *Client) ListTemplates(ctx context.Context, category string) ([]models.Template, error) {
	path := apiTemplates
	if category != "" {
		path += "?" + url.Values{"category": {category}}.Encode()
	}
	resp, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if err := expectOK(resp); err != nil {
		return nil, err
	}
	var out []models.Template
	return out, decode(resp.Body, &out)
}

// Login calls POST /api/auth/login. A rejected request is reported as
// service.ErrInvalidCredentials.
func (c *Client) Login(ctx context.Context, req service.LoginRequest) (models.User, error) {
	return c.auth(ctx, apiLogin, req, service.ErrInvalidCredentials)
}

// Signup calls POST /api/auth/signup. A rejected request is reported as
// service.ErrMissingFields.
func (c *Client) Signup(ctx context.Context, req service.SignupRequest) (models.User, error) {
	return c.auth(ctx, apiSignup, req, service.ErrMissingFields)
}

func (c *Client) auth(ctx context.Context, path string, body any, rejected error) (models.User, error) {
	resp, err := c.do(ctx, http.MethodPost, path, body)
	if err != nil {
		return models.User{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		var failure models.AuthResponse
		_ = decode(resp.Body, &failure)
		return models.User{}, fmt.Errorf("%w: %s", rejected, failure.Message)
	}
	if err := expectOK(resp); err != nil {
		return models.User{}, err
	}

	var out models.AuthResponse
	if err := decode(resp.Body, &out); err != nil {
		return models.User{}, err
	}
	if !out.Success || out.User == nil {
		return models.User{}, fmt.Errorf("%w: %s", rejected, out.Message)
	}
	return *out.User, nil
}

// Contact calls POST /api/contact and returns the server's reply.
func (c *Client) Contact(ctx context.Context, req service.ContactRequest) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, apiContact, req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if err := expectOK(resp); err != nil {
		return "", err
	}
	var out models.MessageResponse
	if err := decode(resp.Body, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) do(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	return resp, nil
}

func expectOK(resp *http.Response) error {
	if resp.StatusCode == http.StatusOK {
		return nil
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return fmt.Errorf("server error: %s", strings.TrimSpace(string(data)))
}

func decode(r io.Reader, v any) error {
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("invalid response: %w", err)
	}
	return nil
}

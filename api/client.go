// Package api is the HTTP client for the remote storefront backend. Every
// request implicitly carries the cached identity payload in the "user"
// header, which is how the backend attributes orders and authorizes admin
// calls.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/AminovSarvarbek/telegramshopfront/models"
	"github.com/AminovSarvarbek/telegramshopfront/pkg/logger"
	"github.com/AminovSarvarbek/telegramshopfront/storage"
)

// ErrNoResponse means the request never produced a server reply (network
// failure, timeout). It is surfaced once and never retried automatically.
var ErrNoResponse = fmt.Errorf("no response from server")

// APIError carries a server-reported failure message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "request failed"
}

// Client talks to the storefront backend.
type Client struct {
	baseURL string
	http    *http.Client
	cache   storage.Store
	log     *logger.Logger
}

// Options configures a Client. Cache is the short-lived store the session
// resolver writes the identity into; it may be nil for unauthenticated use.
type Options struct {
	BaseURL string
	Timeout time.Duration
	Cache   storage.Store
	Logger  *logger.Logger
}

// NewClient builds a Client with sane defaults.
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	log := opts.Logger
	if log == nil {
		log = logger.New(logger.DefaultConfig())
	}
	return &Client{
		baseURL: opts.BaseURL,
		http:    &http.Client{Timeout: timeout},
		cache:   opts.Cache,
		log:     log.WithComponent("api"),
	}
}

// GetMenu fetches the product catalog.
func (c *Client) GetMenu(ctx context.Context) ([]models.Product, error) {
	var menu []models.Product
	if err := c.do(ctx, http.MethodGet, "/menu", nil, "", &menu); err != nil {
		return nil, err
	}
	return menu, nil
}

// CreateOrder submits an order. A success:false reply is returned in the
// envelope, not as an error, so the caller can show the server's message.
func (c *Client) CreateOrder(ctx context.Context, order models.OrderRequest) (*models.OrderResponse, error) {
	var resp models.OrderResponse
	if err := c.postJSON(ctx, "/orders", order, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyAdmin asks the backend whether the given identity is an admin.
func (c *Client) VerifyAdmin(ctx context.Context, identity *models.Identity) (*models.AdminVerifyResponse, error) {
	var resp models.AdminVerifyResponse
	if err := c.postJSON(ctx, "/admin/verify", identity, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AdminLogin is the login-time variant of VerifyAdmin.
func (c *Client) AdminLogin(ctx context.Context, identity *models.Identity) (*models.AdminVerifyResponse, error) {
	var resp models.AdminVerifyResponse
	if err := c.postJSON(ctx, "/admin/login", identity, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) postJSON(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(data), "application/json", out)
}

func (c *Client) putJSON(ctx context.Context, path string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.do(ctx, http.MethodPut, path, bytes.NewReader(data), "application/json", out)
}

// do issues the request, attaching the request id and the cached identity
// header, and decodes the reply into out (when out is non-nil).
func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	c.attachIdentity(ctx, req)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error("request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return fmt.Errorf("%w: %v", ErrNoResponse, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoResponse, err)
	}

	c.log.Debug("request completed",
		"method", method,
		"path", path,
		"request_id", requestID,
		"status_code", resp.StatusCode,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope models.APIResponse
		if json.Unmarshal(payload, &envelope) == nil {
			apiErr.Message = envelope.Message
		}
		return apiErr
	}

	if out == nil || len(payload) == 0 {
		return nil
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// attachIdentity puts the cached identity JSON into the "user" header, the
// credential form the backend expects. Absence of a cached identity is
// normal and leaves the header unset.
func (c *Client) attachIdentity(ctx context.Context, req *http.Request) {
	if c.cache == nil {
		return
	}
	value, err := c.cache.Get(ctx, storage.KeyIdentity)
	if err != nil {
		if err != storage.ErrNotFound {
			c.log.Warn("failed to read cached identity", "error", err)
		}
		return
	}
	if value != "" {
		req.Header.Set("user", value)
	}
}

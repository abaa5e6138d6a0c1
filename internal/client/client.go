// Package client is a typed Go client for the OffiSwap HTTP API.
// Authenticated calls take the token as an explicit argument; the client
// keeps no credential state between calls.
package client

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

	"github.com/google/uuid"

	"github.com/redmonkez12/offiswap/internal/auth"
	"github.com/redmonkez12/offiswap/internal/httputil"
	"github.com/redmonkez12/offiswap/internal/listing"
)

const defaultTimeout = 15 * time.Second

// APIError is a non-2xx answer from the server
type APIError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("api error: status %d: %s", e.StatusCode, e.Message)
}

// ErrMissingToken is returned before any request is made when an
// authenticated call gets an empty token
var ErrMissingToken = errors.New("token is required")

type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Register creates an account
func (c *Client) Register(ctx context.Context, req auth.RegisterRequest) (*auth.UserResponse, error) {
	var out auth.UserResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login returns a signed token for the given credentials
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var out auth.LoginResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", auth.LoginRequest{Email: email, Password: password}, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

// ListListings returns the public feed of available listings
func (c *Client) ListListings(ctx context.Context) ([]listing.Listing, error) {
	var out []listing.Listing
	if err := c.do(ctx, http.MethodGet, "/api/listings", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MyListings returns every listing owned by the token's holder
func (c *Client) MyListings(ctx context.Context, token string) ([]listing.Listing, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	var out []listing.Listing
	if err := c.do(ctx, http.MethodGet, "/api/listings/my", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetListing(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	var out listing.Listing
	if err := c.do(ctx, http.MethodGet, "/api/listings/"+id.String(), "", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateListing(ctx context.Context, token string, in listing.CreateInput) (*listing.Listing, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	var out listing.Listing
	if err := c.do(ctx, http.MethodPost, "/api/listings", token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateListing(ctx context.Context, token string, id uuid.UUID, in listing.UpdateInput) (*listing.Listing, error) {
	if token == "" {
		return nil, ErrMissingToken
	}
	var out listing.Listing
	if err := c.do(ctx, http.MethodPut, "/api/listings/"+id.String(), token, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteListing removes a listing and returns the server's confirmation
func (c *Client) DeleteListing(ctx context.Context, token string, id uuid.UUID) (string, error) {
	if token == "" {
		return "", ErrMissingToken
	}
	var out listing.DeleteResponse
	if err := c.do(ctx, http.MethodDelete, "/api/listings/"+id.String(), token, nil, &out); err != nil {
		return "", err
	}
	return out.Message, nil
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(auth.TokenHeader, token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody httputil.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&errBody) == nil {
			apiErr.Message = errBody.Message
			apiErr.Code = errBody.Code
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

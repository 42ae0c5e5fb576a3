// Package api provides the HTTP client for the recipe-generation service.
package api

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
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/hammamikhairi/recipegen/internal/domain"
	"github.com/hammamikhairi/recipegen/internal/logger"
)

// Service paths, relative to the base URL.
const (
	GeneratePath = "/api/recipes/generate/"
	RecipesPath  = "/api/recipes/"
)

// Compile-time interface check.
var _ domain.RecipeService = (*Client)(nil)

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPTimeout sets the HTTP client timeout. Without it the transport
// default (no timeout) applies.
func WithHTTPTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.http.Timeout = d }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) { c.userAgent = ua }
}

// Client talks to the recipe-generation service.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	log       *logger.Logger
}

// NewClient creates a service client. baseURL is the scheme and host the
// service paths are appended to, e.g. "http://localhost:8000".
func NewClient(baseURL string, log *logger.Logger, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: "recipegen",
		http:      &http.Client{},
		log:       log,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// GenerateRecipe asks the service for a recipe. The request is sent as is;
// validation belongs to the caller.
func (c *Client) GenerateRecipe(ctx context.Context, req domain.RecipeRequest) (*domain.GenerateResponse, error) {
	jsonData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("api: marshal request: %w", err)
	}

	resp, log, err := c.do(ctx, http.MethodPost, GeneratePath, jsonData)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("api: read generate response: %v", err)
		return nil, &ConnectionError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		if json.Unmarshal(body, &eb) == nil && eb.Error != "" {
			log.Warn("api: service refused generation (%d): %s", resp.StatusCode, eb.Error)
			return nil, &APIError{StatusCode: resp.StatusCode, Message: eb.Error}
		}
		log.Warn("api: generate answered %s", resp.Status)
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), 512)}
	}

	var out domain.GenerateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("api: unmarshal generate response: %w", err)
	}

	log.Debug("api: generated %q (%d steps, %.1fs)", out.Recipe.Title, len(out.Recipe.Steps), out.Metadata.GenerationTime)
	return &out, nil
}

// ListRecipes returns the recipes the service has generated so far.
func (c *Client) ListRecipes(ctx context.Context) ([]domain.Recipe, error) {
	resp, log, err := c.do(ctx, http.MethodGet, RecipesPath, nil)
	if err != nil {
		var ce *ConnectionError
		if errors.As(err, &ce) {
			return nil, &RetrievalError{Err: ce.Err}
		}
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RetrievalError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		log.Warn("api: list answered %s", resp.Status)
		return nil, &RetrievalError{Err: &StatusError{StatusCode: resp.StatusCode, Body: truncate(string(body), 512)}}
	}

	var out []domain.Recipe
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("api: unmarshal recipes: %w", err)
	}
	log.Debug("api: listed %d recipes", len(out))
	return out, nil
}

// do sends one request. A transport failure comes back as a
// *ConnectionError; any response, whatever its status, is returned to the
// caller along with a request-scoped logger.
func (c *Client) do(ctx context.Context, method, path string, body []byte) (*http.Response, *logger.Logger, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, c.log, fmt.Errorf("api: create request: %w", err)
	}

	reqID := uuid.NewString()
	log := c.log.With("request_id", reqID)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", reqID)

	log.Debug("api: %s %s (%d bytes)", method, req.URL, len(body))

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Error("api: %s %s failed: %v", method, path, err)
		return nil, log, &ConnectionError{Err: err}
	}
	log.Debug("api: %s %s -> %d in %s", method, path, resp.StatusCode, time.Since(start).Round(time.Millisecond))
	return resp, log, nil
}

// truncate shortens s to at most n bytes, cutting on a rune boundary.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	cut := n - 3
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

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
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/growlog/internal/api"
	"github.com/dmitrijs2005/growlog/internal/common"
)

// DefaultTimeout bounds a single HTTP round trip.
const DefaultTimeout = 15 * time.Second

// HTTPClient talks to the GrowLog JSON API. It is safe for concurrent use.
type HTTPClient struct {
	baseURL string
	http    *http.Client

	refreshMu sync.Mutex

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	onTokens     func(ctx context.Context, tokens api.TokenResponse)
}

// NewHTTPClient builds a client for the server at baseURL
// (e.g. "http://127.0.0.1:8080").
func NewHTTPClient(baseURL string) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}

	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}, nil
}

func (c *HTTPClient) SetTokens(tokens api.TokenResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.accessToken = tokens.AccessToken
	c.refreshToken = tokens.RefreshToken
}

func (c *HTTPClient) OnTokens(fn func(ctx context.Context, tokens api.TokenResponse)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.onTokens = fn
}

func (c *HTTPClient) tokens() (access, refresh string) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken, c.refreshToken
}

// storeTokens installs a fresh pair and notifies the listener.
func (c *HTTPClient) storeTokens(ctx context.Context, tokens api.TokenResponse) {
	c.mu.Lock()
	c.accessToken = tokens.AccessToken
	c.refreshToken = tokens.RefreshToken
	fn := c.onTokens
	c.mu.Unlock()

	if fn != nil {
		fn(ctx, tokens)
	}
}

// Close releases idle connections.
func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// send performs one request. body, when non-nil, is already JSON encoded so
// it can be replayed after a refresh.
func (c *HTTPClient) send(ctx context.Context, method, path string, body []byte, token string) (*http.Response, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return resp, nil
}

// do runs a request and decodes a 2xx JSON answer into out (which may be
// nil). Authenticated calls that come back 401 trigger one token refresh
// followed by one retry.
func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any, authenticated bool) error {
	var body []byte
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = b
	}

	var token string
	if authenticated {
		access, _ := c.tokens()
		if access == "" {
			return ErrNotLoggedIn
		}
		token = access
	}

	resp, err := c.send(ctx, method, path, body, token)
	if err != nil {
		return err
	}

	if authenticated && resp.StatusCode == http.StatusUnauthorized {
		drain(resp)

		if err := c.refresh(ctx, token); err != nil {
			return err
		}

		access, _ := c.tokens()
		resp, err = c.send(ctx, method, path, body, access)
		if err != nil {
			return err
		}
	}
	defer drain(resp)

	return decodeResponse(resp, out)
}

// refresh swaps the stored refresh token for a new pair. stale is the access
// token that was rejected; if another caller already replaced it, nothing
// is sent.
func (c *HTTPClient) refresh(ctx context.Context, stale string) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	access, refreshToken := c.tokens()
	if access != stale && access != "" {
		return nil
	}
	if refreshToken == "" {
		return ErrUnauthorized
	}

	var tokens api.TokenResponse
	err := c.do(ctx, http.MethodPost, api.PathRefresh, api.RefreshRequest{RefreshToken: refreshToken}, &tokens, false)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			return ErrUnauthorized
		}
		return err
	}

	c.storeTokens(ctx, tokens)
	return nil
}

func decodeResponse(resp *http.Response, out any) error {
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var er api.ErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&er); err == nil {
			apiErr.Message = er.Error
		}
		return apiErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// drain consumes the rest of the body so the connection can be reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	var resp api.PingResponse
	if err := c.do(ctx, http.MethodGet, api.PathPing, nil, &resp, false); err != nil {
		return err
	}
	if resp.Status != "OK" {
		return ErrUnavailable
	}
	return nil
}

func (c *HTTPClient) Register(ctx context.Context, req api.RegisterRequest) (*api.User, error) {
	var resp api.RegisterResponse
	if err := c.do(ctx, http.MethodPost, api.PathRegister, req, &resp, false); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Login authenticates and keeps the returned pair for later calls.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (api.TokenResponse, error) {
	var tokens api.TokenResponse
	err := c.do(ctx, http.MethodPost, api.PathLogin, api.LoginRequest{Email: email, Password: password}, &tokens, false)
	if err != nil {
		return api.TokenResponse{}, err
	}
	c.storeTokens(ctx, tokens)
	return tokens, nil
}

// Logout revokes the refresh token on the server and forgets the session
// locally, even when the server call fails.
func (c *HTTPClient) Logout(ctx context.Context) error {
	_, refreshToken := c.tokens()
	c.SetTokens(api.TokenResponse{})

	if refreshToken == "" {
		return nil
	}
	return c.do(ctx, http.MethodPost, api.PathLogout, api.RefreshRequest{RefreshToken: refreshToken}, nil, false)
}

func (c *HTTPClient) ListPlants(ctx context.Context) ([]api.Plant, error) {
	var plants []api.Plant
	if err := c.do(ctx, http.MethodGet, api.PathPlants, nil, &plants, true); err != nil {
		return nil, err
	}
	return plants, nil
}

func (c *HTTPClient) GetPlant(ctx context.Context, id string) (*api.Plant, error) {
	var p api.Plant
	if err := c.do(ctx, http.MethodGet, api.PlantPath(url.PathEscape(id)), nil, &p, true); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) CreatePlant(ctx context.Context, req api.CreatePlantRequest) (*api.Plant, error) {
	var p api.Plant
	if err := c.do(ctx, http.MethodPost, api.PathPlants, req, &p, true); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) DeletePlant(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, api.PlantPath(url.PathEscape(id)), nil, nil, true)
}

func (c *HTTPClient) Summary(ctx context.Context) (*api.SummaryResponse, error) {
	var s api.SummaryResponse
	if err := c.do(ctx, http.MethodGet, api.PathSummary, nil, &s, true); err != nil {
		return nil, err
	}
	return &s, nil
}

func (c *HTTPClient) PhotoUploadURL(ctx context.Context, id, contentType string) (*api.PhotoUploadResponse, error) {
	var up api.PhotoUploadResponse
	req := api.PhotoUploadRequest{ContentType: contentType}
	if err := c.do(ctx, http.MethodPost, api.PhotoPath(url.PathEscape(id)), req, &up, true); err != nil {
		return nil, err
	}
	return &up, nil
}

func (c *HTTPClient) CancelPhotoUpload(ctx context.Context, id, key string) error {
	q := url.Values{api.QueryKey: []string{key}}
	return c.do(ctx, http.MethodDelete, api.PhotoPath(url.PathEscape(id))+"?"+q.Encode(), nil, nil, true)
}

func (c *HTTPClient) PhotoURL(ctx context.Context, id string) (string, error) {
	var resp api.PhotoURLResponse
	if err := c.do(ctx, http.MethodGet, api.PhotoPath(url.PathEscape(id)), nil, &resp, true); err != nil {
		return "", err
	}
	return resp.URL, nil
}

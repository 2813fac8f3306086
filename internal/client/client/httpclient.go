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
	"strings"
	"time"

	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/common"
	"github.com/dmitrijs2005/fittrack/internal/logging"
	"github.com/google/uuid"
)

const (
	dialTimeout     = 10 * time.Second
	maxErrorBodyLen = 1 << 20

	pathSignUp    = "/auth/sign-up"
	pathSignIn    = "/auth/sign-in"
	pathMe        = "/auth/me"
	pathEquipment = "/auth/equipment"
	pathInjuries  = "/auth/injuries"
)

// HTTPClient talks to the fittrack backend over HTTP/JSON.
//
// Sign-up and sign-in go through an unauthenticated client; every other call
// carries the token supplied by the TokenSource.
type HTTPClient struct {
	baseURL         *url.URL
	unauthenticated *http.Client
	authenticated   *http.Client
	logger          logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a client for the backend at baseURL (scheme and host,
// optionally a path prefix). timeout bounds every request.
func NewHTTPClient(baseURL string, tokens TokenSource, timeout time.Duration, logger logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid server url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid server url %q: scheme must be http or https", baseURL)
	}

	base := &http.Transport{
		Proxy:       http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{Timeout: dialTimeout}).DialContext,
	}

	return &HTTPClient{
		baseURL: u,
		unauthenticated: &http.Client{
			Transport: &authTransport{base: base},
			Timeout:   timeout,
		},
		authenticated: &http.Client{
			Transport: &authTransport{base: base, tokens: tokens},
			Timeout:   timeout,
		},
		logger: logger.With("component", "api-client"),
	}, nil
}

// SignUp sends the nested sign-up payload as JSON.
func (c *HTTPClient) SignUp(ctx context.Context, payload models.SignUpPayload) (*models.TokenResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error marshalling request: %w", err)
	}

	var resp models.TokenResponse
	if err := c.do(ctx, c.unauthenticated, http.MethodPost, pathSignUp, bytes.NewReader(body), "application/json", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// SignIn sends the credentials form-url-encoded under the field names
// "username" and "password".
func (c *HTTPClient) SignIn(ctx context.Context, email, password string) (*models.TokenResponse, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	var resp models.TokenResponse
	if err := c.do(ctx, c.unauthenticated, http.MethodPost, pathSignIn, strings.NewReader(form.Encode()), "application/x-www-form-urlencoded", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me resolves the stored token into the current user.
func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.do(ctx, c.authenticated, http.MethodGet, pathMe, nil, "", &u); err != nil {
		return nil, err
	}
	if u.ID == 0 && u.Email == "" {
		return nil, fmt.Errorf("error decoding response from %s: empty user", pathMe)
	}
	return &u, nil
}

func (c *HTTPClient) ListEquipment(ctx context.Context) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	if err := c.do(ctx, c.unauthenticated, http.MethodGet, pathEquipment, nil, "", &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *HTTPClient) ListInjuries(ctx context.Context) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	if err := c.do(ctx, c.unauthenticated, http.MethodGet, pathInjuries, nil, "", &items); err != nil {
		return nil, err
	}
	return items, nil
}

// Ping reports ErrUnavailable when the backend cannot be reached. Any HTTP
// response, whatever its status, counts as reachable.
func (c *HTTPClient) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.String()+"/", nil)
	if err != nil {
		return err
	}
	resp, err := c.unauthenticated.Do(req)
	if err != nil {
		return c.transportError(err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return resp.Body.Close()
}

// Close releases idle connections.
func (c *HTTPClient) Close() error {
	c.unauthenticated.CloseIdleConnections()
	c.authenticated.CloseIdleConnections()
	return nil
}

func (c *HTTPClient) do(ctx context.Context, hc *http.Client, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.JoinPath(path).String(), body)
	if err != nil {
		return fmt.Errorf("error building request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	requestID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, requestID)

	resp, err := hc.Do(req)
	if err != nil {
		return c.transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyLen))
		reqErr := &RequestError{
			Status:    resp.StatusCode,
			Detail:    parseDetail(errBody),
			RequestID: requestID,
		}
		c.logger.Warn(ctx, "request rejected",
			"method", method, "path", path, "status", resp.StatusCode,
			"request_id", requestID, "detail", reqErr.Detail)
		return reqErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("error decoding response from %s: %w", path, err)
	}
	return nil
}

func (c *HTTPClient) transportError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, errTokenSource) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

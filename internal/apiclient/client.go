package apiclient

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

	"github.com/jamalparfum/storefront/internal/middleware"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

const maxResponseBytes = 10 << 20

var (
	errServerStatus = errors.New("backend server error")
	// the caller gave up; the backend is not at fault
	errCallerGone = errors.New("request abandoned by caller")
)

// Config holds backend client settings
type Config struct {
	BaseURL string
	// Timeout bounds each call. Zero means no client timeout.
	Timeout            time.Duration
	BreakerMaxFailures uint32
	BreakerOpenTimeout time.Duration
	// Transport overrides the base round tripper (tests)
	Transport http.RoundTripper
}

// Credentials is the part of the session the client needs
type Credentials interface {
	GetToken() string
	Clear()
}

// Client talks to the perfume REST backend. It is shared by all requests; use
// Bind to get a per-request API carrying the caller's credentials.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*http.Response]
	logger  *zap.Logger
}

// New creates a backend client
func New(cfg Config, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.BreakerMaxFailures == 0 {
		cfg.BreakerMaxFailures = 5
	}
	if cfg.BreakerOpenTimeout == 0 {
		cfg.BreakerOpenTimeout = 30 * time.Second
	}

	base := cfg.Transport
	if base == nil {
		base = http.DefaultTransport
	}

	maxFailures := cfg.BreakerMaxFailures
	breaker := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:    "backend",
		Timeout: cfg.BreakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, errCallerGone)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(base),
		},
		breaker: breaker,
		logger:  logger,
	}
}

// BaseURL returns the backend origin
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Ping checks that the backend answers at all. Any HTTP status counts as reachable.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/perfumes", nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return nil
}

// Bind returns an API acting with creds. onUnauthorized runs after creds are
// cleared on a 401 and before the call returns.
func (c *Client) Bind(creds Credentials, onUnauthorized func()) *API {
	return &API{client: c, creds: creds, onUnauthorized: onUnauthorized}
}

// API is a Client bound to one caller's credentials. Concurrent calls on one
// API sign out at most once.
type API struct {
	client         *Client
	creds          Credentials
	onUnauthorized func()
	signOut        sync.Once
}

type request struct {
	method      string
	path        string
	query       url.Values
	body        io.Reader
	contentType string
}

func jsonRequest(method, path string, payload interface{}) (request, error) {
	req := request{method: method, path: path}
	if payload == nil {
		return req, nil
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return req, fmt.Errorf("failed to encode request: %w", err)
	}
	req.body = bytes.NewReader(data)
	req.contentType = "application/json"
	return req, nil
}

// do performs r and returns the response body of a 2xx answer
func (a *API) do(ctx context.Context, r request) ([]byte, error) {
	target := a.client.baseURL + r.path
	if len(r.query) > 0 {
		target += "?" + r.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, r.method, target, r.body)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if r.contentType != "" {
		req.Header.Set("Content-Type", r.contentType)
	}
	if a.creds != nil {
		if token := a.creds.GetToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	if id := middleware.RequestIDFromContext(ctx); id != "" {
		req.Header.Set(middleware.RequestIDHeader, id)
	}

	resp, err := a.client.breaker.Execute(func() (*http.Response, error) {
		resp, err := a.client.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %w", errCallerGone, err)
			}
			return nil, err
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return resp, errServerStatus
		}
		return resp, nil
	})
	if err != nil && !errors.Is(err, errServerStatus) {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, fmt.Errorf("%s %s: %w", r.method, r.path, ErrBackendUnavailable)
		}
		return nil, fmt.Errorf("%s %s: %w", r.method, r.path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("%s %s: failed to read response: %w", r.method, r.path, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		a.unauthorized(ctx, r)
		return nil, newAPIError(r.method, r.path, resp.StatusCode, body)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(r.method, r.path, resp.StatusCode, body)
	}

	return body, nil
}

func (a *API) unauthorized(ctx context.Context, r request) {
	a.signOut.Do(func() { a.signOutNow(ctx, r) })
}

func (a *API) signOutNow(ctx context.Context, r request) {
	a.client.logger.Info("backend rejected session, signing out",
		zap.String("request_id", middleware.RequestIDFromContext(ctx)),
		zap.String("method", r.method),
		zap.String("path", r.path),
	)
	if a.creds != nil {
		a.creds.Clear()
	}
	if a.onUnauthorized != nil {
		a.onUnauthorized()
	}
}

func (a *API) getJSON(ctx context.Context, path string, query url.Values, out interface{}, keys ...string) error {
	body, err := a.do(ctx, request{method: http.MethodGet, path: path, query: query})
	if err != nil {
		return err
	}
	return decodeOne(body, out, keys...)
}

func (a *API) sendJSON(ctx context.Context, method, path string, payload, out interface{}, keys ...string) error {
	req, err := jsonRequest(method, path, payload)
	if err != nil {
		return err
	}
	body, err := a.do(ctx, req)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	return decodeOne(body, out, keys...)
}

func getList[T any](ctx context.Context, a *API, path string, query url.Values) ([]T, error) {
	body, err := a.do(ctx, request{method: http.MethodGet, path: path, query: query})
	if err != nil {
		return nil, err
	}
	return decodeList[T](body)
}

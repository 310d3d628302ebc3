//go:generate mockgen -source=client.go -destination=client_mock.go -package=api
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"siemctl/internal/app/errors"
	"siemctl/internal/config"
	"siemctl/internal/config/logger"
)

const (
	healthPath = "/health"
	eventsPath = "/events"
	exportPath = "/events/export"
	statsPath  = "/stats"

	requestIDHeader = "X-Request-ID"
	maxBodySize     = 32 << 20
)

// StatusError is returned for non-2xx responses
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Code, e.Message)
}

// Unwrap maps 401 to ErrInvalidCredentials and everything else to ErrUnexpectedStatus
func (e *StatusError) Unwrap() error {
	if e.Code == http.StatusUnauthorized {
		return errors.ErrInvalidCredentials
	}

	return errors.ErrUnexpectedStatus
}

// Client talks to the SIEM backend API
type Client interface {
	Health(ctx context.Context, creds Credentials) (*HealthResponse, error)
	Events(ctx context.Context, creds Credentials, page, limit int) (*EventsResponse, error)
	Export(ctx context.Context, creds Credentials, format string) (*ExportResponse, error)
	Stats(ctx context.Context, creds Credentials) (*StatsResponse, error)
}

type client struct {
	baseURL string
	http    *http.Client
	stream  *http.Client
	log     logger.Logger
}

// NewClient creates a Client for cfg.API.
// api.timeout bounds whole JSON calls; exports only wait that long for headers since the body is streamed.
func NewClient(cfg *config.Config, log logger.Logger) Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = cfg.API.Timeout

	return &client{
		baseURL: strings.TrimRight(cfg.API.URL, "/"),
		http:    &http.Client{Timeout: cfg.API.Timeout},
		stream:  &http.Client{Transport: transport},
		log:     log.WithComponent("API"),
	}
}

// Health checks the credentials against GET /health
func (c *client) Health(ctx context.Context, creds Credentials) (*HealthResponse, error) {
	req, err := c.newRequest(ctx, healthPath, nil, creds)
	if err != nil {
		return nil, err
	}

	var out HealthResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Events fetches one page of events
func (c *client) Events(ctx context.Context, creds Credentials, page, limit int) (*EventsResponse, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("limit", strconv.Itoa(limit))

	req, err := c.newRequest(ctx, eventsPath, query, creds)
	if err != nil {
		return nil, err
	}

	var out EventsResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

// Export starts a streamed download of every event in the requested format
func (c *client) Export(ctx context.Context, creds Credentials, format string) (*ExportResponse, error) {
	query := url.Values{}
	query.Set("format", format)

	req, err := c.newRequest(ctx, exportPath, query, creds)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(c.stream, req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer func() { _ = resp.Body.Close() }()

		return nil, readStatusError(resp)
	}

	return &ExportResponse{
		Body:               resp.Body,
		ContentType:        resp.Header.Get("Content-Type"),
		ContentDisposition: resp.Header.Get("Content-Disposition"),
	}, nil
}

// Stats fetches aggregated statistics
func (c *client) Stats(ctx context.Context, creds Credentials) (*StatsResponse, error) {
	req, err := c.newRequest(ctx, statsPath, nil, creds)
	if err != nil {
		return nil, err
	}

	var out StatsResponse
	if err := c.do(req, &out); err != nil {
		return nil, err
	}

	return &out, nil
}

func (c *client) newRequest(ctx context.Context, path string, query url.Values, creds Credentials) (*http.Request, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToCreateRequest, err)
	}

	req.SetBasicAuth(creds.Username, creds.Password)
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())

	return req, nil
}

func (c *client) send(hc *http.Client, req *http.Request) (*http.Response, error) {
	c.log.Debug().
		Str("request_id", req.Header.Get(requestIDHeader)).
		Str("url", req.URL.Redacted()).
		Msg("Sending request")

	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrRequestFailed, err)
	}

	c.log.Debug().
		Str("request_id", req.Header.Get(requestIDHeader)).
		Int("status", resp.StatusCode).
		Msg("Received response")

	return resp, nil
}

func (c *client) do(req *http.Request, out any) error {
	resp, err := c.send(c.http, req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return readStatusError(resp)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(out); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToDecode, err)
	}

	return nil
}

// readStatusError extracts the backend error message, falling back to the status text
func readStatusError(resp *http.Response) error {
	b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var er ErrorResponse
	if err := json.Unmarshal(b, &er); err == nil && strings.TrimSpace(er.Error) != "" {
		return &StatusError{Code: resp.StatusCode, Message: er.Error}
	}

	msg := strings.TrimSpace(string(b))
	if msg == "" || strings.HasPrefix(msg, "{") {
		msg = http.StatusText(resp.StatusCode)
	}

	return &StatusError{Code: resp.StatusCode, Message: msg}
}

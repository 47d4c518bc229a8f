// Package hrapi calls the upstream HR REST API on behalf of a signed-in user.
package hrapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"

	"github.com/cmlabs-hris/hris-portal/internal/domain/attendance"
)

var ErrTokenRequired = errors.New("hrapi: bearer token is required")

// APIError is a non-2xx answer from the upstream API.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("hrapi: %s (status %d)", e.Message, e.Status)
}

type Client struct {
	baseURL   string
	timeout   time.Duration
	transport http.RoundTripper
	retries   int
}

type Option func(*Client)

// WithTransport sets the round tripper the bearer transport wraps.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = rt
	}
}

// WithRetries retries idempotent reads on network errors and 5xx answers.
func WithRetries(n int) Option {
	return func(c *Client) {
		c.retries = n
	}
}

func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		timeout:   timeout,
		transport: http.DefaultTransport,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// authorized returns a resty client whose transport attaches token as a
// Bearer credential.
func (c *Client) authorized(token string) *resty.Client {
	httpClient := &http.Client{
		Timeout: c.timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"}),
			Base:   c.transport,
		},
	}
	return resty.NewWithClient(httpClient).
		SetBaseURL(c.baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
}

// ListRecords performs GET /api/employee/{id}/attendance.
func (c *Client) ListRecords(ctx context.Context, token, employeeID string) ([]attendance.Record, error) {
	if token == "" {
		return nil, ErrTokenRequired
	}

	client := c.authorized(token)
	if c.retries > 0 {
		client.SetRetryCount(c.retries).
			SetRetryWaitTime(100 * time.Millisecond).
			SetRetryMaxWaitTime(time.Second).
			AddRetryCondition(retryCondition)
	}

	resp, err := client.R().
		SetContext(ctx).
		Get("/api/employee/" + url.PathEscape(employeeID) + "/attendance")
	if err != nil {
		return nil, fmt.Errorf("hrapi: list attendance: %w", err)
	}
	if resp.IsError() {
		return nil, newAPIError(resp)
	}

	records, err := decodeRecords(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("hrapi: decode attendance: %w", err)
	}

	slog.Debug("Attendance fetched", "employee_id", employeeID, "count", len(records))
	return records, nil
}

// SubmitPunch performs POST /api/employee/attendance.
func (c *Client) SubmitPunch(ctx context.Context, token string, req attendance.PunchRequest) error {
	if token == "" {
		return ErrTokenRequired
	}

	resp, err := c.authorized(token).R().
		SetContext(ctx).
		SetBody(req).
		Post("/api/employee/attendance")
	if err != nil {
		return fmt.Errorf("hrapi: submit punch: %w", err)
	}
	if resp.IsError() {
		return newAPIError(resp)
	}
	return nil
}

func retryCondition(r *resty.Response, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled)
	}
	if r == nil {
		return false
	}
	return r.StatusCode() >= 500
}

// decodeRecords accepts a bare array or an object carrying it under "data".
func decodeRecords(body []byte) ([]attendance.Record, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return []attendance.Record{}, nil
	}

	if body[0] == '[' {
		var records []attendance.Record
		if err := json.Unmarshal(body, &records); err != nil {
			return nil, err
		}
		return records, nil
	}

	var envelope struct {
		Data []attendance.Record `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	if envelope.Data == nil {
		return []attendance.Record{}, nil
	}
	return envelope.Data, nil
}

func newAPIError(resp *resty.Response) *APIError {
	apiErr := &APIError{Status: resp.StatusCode()}

	var payload struct {
		Error   json.RawMessage `json:"error"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(resp.Body(), &payload); err == nil {
		apiErr.Message = errorText(payload.Error)
		if apiErr.Message == "" {
			apiErr.Message = strings.TrimSpace(payload.Message)
		}
	}
	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(apiErr.Status)
	}
	return apiErr
}

// errorText reads "error" as a string or as an object with a message.
func errorText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var obj struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil {
		return strings.TrimSpace(obj.Message)
	}
	return ""
}

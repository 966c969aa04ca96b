// Package hubapi talks to the association API. Every call resolves to an
// ApiResult; transport faults are folded into a failed result and never
// returned as Go errors.
package hubapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/muaishaq001/nacos-hub/pkg/utils"
	"go.uber.org/zap"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"

	fallbackFailure = "An error occurred"
	fallbackSuccess = "Success"
	fallbackNetwork = "Network error. Please check your connection."

	maxBodyBytes = 1 << 20
)

// ApiResult is the uniform shape of every call. Success implies Data was set
// from the response; failure implies a non-empty Message.
type ApiResult[T any] struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
	Message string `json:"message"`
	Data    *T     `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

type RequestOptions struct {
	Method  string
	Body    string
	Headers map[string]string
}

type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
	metrics *Metrics
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds each call. Zero leaves calls unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithMetrics(m *Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// envelope is the response body contract: { message, data?, status?, error? }.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

// Request calls endpoint under the client's base URL. Body is sent as is.
func Request[T any](ctx context.Context, c *Client, endpoint string, opts RequestOptions) ApiResult[T] {
	res, err := doRequest[T](ctx, c, endpoint, opts)
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = fallbackNetwork
		}
		res = ApiResult[T]{
			Success: false,
			Status:  StatusError,
			Message: msg,
			Error:   err.Error(),
		}
		c.logger.Warn("api request fault",
			zap.String("endpoint", endpoint),
			zap.Error(err))
		c.metrics.observe(endpoint, outcomeError)
		return res
	}

	if res.Success {
		c.metrics.observe(endpoint, outcomeSuccess)
	} else {
		c.logger.Info("api request rejected",
			zap.String("endpoint", endpoint),
			zap.String("status", res.Status),
			zap.String("message", res.Message))
		c.metrics.observe(endpoint, outcomeFailure)
	}
	return res
}

func doRequest[T any](ctx context.Context, c *Client, endpoint string, opts RequestOptions) (ApiResult[T], error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if opts.Body != "" {
		body = strings.NewReader(opts.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return ApiResult[T]{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	c.logger.Debug("api request",
		zap.String("method", method),
		zap.String("endpoint", endpoint))

	resp, err := c.http.Do(req)
	if err != nil {
		return ApiResult[T]{}, err
	}
	defer resp.Body.Close()

	raw, err := utils.ReadAllLimit(resp.Body, maxBodyBytes)
	if err != nil {
		return ApiResult[T]{}, err
	}

	if !json.Valid(raw) {
		return ApiResult[T]{}, errors.New("malformed response body")
	}
	// fields of an unexpected type are skipped, the rest still apply
	var env envelope
	var typeErr *json.UnmarshalTypeError
	if err := json.Unmarshal(raw, &env); err != nil && !errors.As(err, &typeErr) {
		return ApiResult[T]{}, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errText := env.Error
		if errText == "" {
			errText = env.Message
		}
		return ApiResult[T]{
			Success: false,
			Status:  firstNonEmpty(env.Status, StatusError),
			Message: firstNonEmpty(env.Message, fallbackFailure),
			Error:   errText,
		}, nil
	}

	payload := raw
	if hasValue(env.Data) {
		payload = env.Data
	}
	var data T
	if err := json.Unmarshal(payload, &data); err != nil {
		return ApiResult[T]{}, errors.New("malformed response data: " + err.Error())
	}

	return ApiResult[T]{
		Success: true,
		Status:  firstNonEmpty(env.Status, StatusSuccess),
		Message: firstNonEmpty(env.Message, fallbackSuccess),
		Data:    &data,
	}, nil
}

// PostJSON serialises v and POSTs it to endpoint.
func PostJSON[T any](ctx context.Context, c *Client, endpoint string, v interface{}) ApiResult[T] {
	b, err := json.Marshal(v)
	if err != nil {
		c.metrics.observe(endpoint, outcomeError)
		return ApiResult[T]{
			Success: false,
			Status:  StatusError,
			Message: firstNonEmpty(err.Error(), fallbackNetwork),
			Error:   err.Error(),
		}
	}
	return Request[T](ctx, c, endpoint, RequestOptions{
		Method: http.MethodPost,
		Body:   string(b),
	})
}

func hasValue(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

func firstNonEmpty(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}

package transport

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
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/prohmpiriya/event-management/pkg/logger"
	"github.com/prohmpiriya/event-management/pkg/telemetry"
)

// RequestIDHeader carries the per-call correlation id
const RequestIDHeader = "X-Request-ID"

// Config holds transport settings
type Config struct {
	Endpoint       string // full URL of the single API endpoint
	ConnectTimeout time.Duration
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	UserAgent      string
}

// Request describes one call against the endpoint
type Request struct {
	Method string
	Query  url.Values
	Body   any // serialized as JSON when non-nil
}

// Response is the raw outcome of a call that reached the server
type Response struct {
	StatusCode int
	Body       []byte // nil when the server sent no body
}

// IsSuccessful reports whether the HTTP status is 2xx
func (r *Response) IsSuccessful() bool {
	return r.StatusCode >= 200 && r.StatusCode <= 299
}

// Doer sends requests to the event API
type Doer interface {
	Do(ctx context.Context, req Request) (*Response, error)
}

// Client implements Doer over net/http
type Client struct {
	endpoint   *url.URL
	httpClient *http.Client
	userAgent  string
	log        *logger.Logger
	metrics    *telemetry.ClientMetrics
}

// New creates a transport client. log and metrics may be nil.
func New(cfg Config, log *logger.Logger, metrics *telemetry.ClientMetrics) (*Client, error) {
	endpoint, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	if endpoint.Scheme == "" || endpoint.Host == "" {
		return nil, fmt.Errorf("invalid endpoint: %q is not absolute", cfg.Endpoint)
	}
	if log == nil {
		log = logger.Nop()
	}

	base := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.ConnectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   cfg.ConnectTimeout,
		ResponseHeaderTimeout: cfg.ReadTimeout,
		IdleConnTimeout:       90 * time.Second,
		MaxIdleConnsPerHost:   4,
	}

	rt := otelhttp.NewTransport(
		&loggingTransport{next: base, log: log.Named("http")},
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return "event-api " + r.Method
		}),
	)

	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Transport: rt,
			// net/http has no per-write deadline for clients; the overall
			// budget covers connect, write and read phases together.
			Timeout: cfg.ConnectTimeout + cfg.WriteTimeout + cfg.ReadTimeout,
		},
		userAgent: cfg.UserAgent,
		log:       log,
		metrics:   metrics,
	}, nil
}

// Endpoint returns the URL every request is sent to
func (c *Client) Endpoint() string {
	return c.endpoint.String()
}

// Do sends a single request. It never retries.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	requestID := uuid.NewString()
	ctx = logger.ContextWithRequestID(ctx, requestID)

	target := *c.endpoint
	target.RawQuery = req.Query.Encode()

	var body io.Reader
	var payload []byte
	if req.Body != nil {
		var err error
		payload, err = json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target.String(), body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set(RequestIDHeader, requestID)
	if payload != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	if c.userAgent != "" {
		httpReq.Header.Set("User-Agent", c.userAgent)
	}

	if payload != nil {
		c.log.DebugContext(ctx, "request body", zap.ByteString("body", payload))
	}

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		err = wrapError(req.Method, err)
		c.metrics.Observe(ctx, req.Method, 0, time.Since(start), err)
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		err = wrapError(req.Method, err)
		c.metrics.Observe(ctx, req.Method, resp.StatusCode, time.Since(start), err)
		return nil, err
	}
	c.metrics.Observe(ctx, req.Method, resp.StatusCode, time.Since(start), nil)

	if len(data) == 0 {
		data = nil
	} else {
		c.log.DebugContext(ctx, "response body", zap.ByteString("body", data))
	}

	return &Response{StatusCode: resp.StatusCode, Body: data}, nil
}

// Error is a failure to obtain a response from the server
type Error struct {
	Method  string
	Timeout bool
	Err     error
}

func (e *Error) Error() string {
	if e.Timeout {
		return fmt.Sprintf("%s request timed out: %v", e.Method, unwrapURLError(e.Err))
	}
	return fmt.Sprintf("%s request failed: %v", e.Method, unwrapURLError(e.Err))
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsTimeout reports whether err was caused by a timeout
func IsTimeout(err error) bool {
	var terr *Error
	if errors.As(err, &terr) {
		return terr.Timeout
	}
	return false
}

func wrapError(method string, err error) error {
	timeout := errors.Is(err, context.DeadlineExceeded)
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		timeout = true
	}
	return &Error{Method: method, Timeout: timeout, Err: err}
}

func unwrapURLError(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return uerr.Err
	}
	return err
}

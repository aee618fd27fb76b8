package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alzentdigital/website/pkg/logger"
)

// DefaultTimeout bounds a single dispatch round trip.
const DefaultTimeout = 30 * time.Second

const maxResponseBody = 64 << 10

// Dispatcher delivers an email payload.
type Dispatcher interface {
	Dispatch(ctx context.Context, p Payload) (Response, error)
}

// DispatcherFunc adapts a function to Dispatcher.
type DispatcherFunc func(ctx context.Context, p Payload) (Response, error)

// Dispatch calls f.
func (f DispatcherFunc) Dispatch(ctx context.Context, p Payload) (Response, error) {
	return f(ctx, p)
}

// Client posts payloads to a remote dispatcher over HTTP. It makes exactly
// one attempt per call; retry policy belongs to the caller.
type Client struct {
	endpoint string
	http     *http.Client
	timeout  time.Duration
	secret   string
	breaker  *CircuitBreaker
	now      func() time.Time
	log      *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default pooled HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		if c != nil {
			cl.http = c
		}
	}
}

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.timeout = d
		}
	}
}

// WithSigningSecret signs every request body; see Sign.
func WithSigningSecret(secret string) Option {
	return func(cl *Client) { cl.secret = secret }
}

// WithCircuitBreaker guards the endpoint with cb. Only server failures trip it.
func WithCircuitBreaker(cb *CircuitBreaker) Option {
	return func(cl *Client) { cl.breaker = cb }
}

// WithLogger sets the logger for failures and deliveries.
func WithLogger(l *slog.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.log = l
		}
	}
}

// NewClient validates endpoint and returns a ready client.
func NewClient(endpoint string, opts ...Option) (*Client, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, errors.Join(ErrInvalidEndpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: scheme must be http or https", ErrInvalidEndpoint)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("%w: host is required", ErrInvalidEndpoint)
	}

	c := &Client{
		endpoint: endpoint,
		http:     &http.Client{Transport: defaultTransport()},
		timeout:  DefaultTimeout,
		now:      time.Now,
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func defaultTransport() *http.Transport {
	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}
}

// NewClientFromConfig builds a client with signing and a circuit breaker
// configured from cfg.
func NewClientFromConfig(cfg Config, opts ...Option) (*Client, error) {
	base := []Option{
		WithTimeout(cfg.Timeout),
		WithCircuitBreaker(NewCircuitBreaker(cfg.BreakerThreshold, cfg.BreakerRecovery)),
	}
	if cfg.SigningSecret != "" {
		base = append(base, WithSigningSecret(cfg.SigningSecret))
	}
	return NewClient(cfg.Endpoint, append(base, opts...)...)
}

// Dispatch sends p and classifies the outcome: transport failures wrap
// ErrNetwork, an expired deadline ErrTimeout, 4xx replies ErrValidation and
// 5xx replies (or an unparsable body) ErrServer.
func (c *Client) Dispatch(ctx context.Context, p Payload) (Response, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return Response{}, errors.Join(ErrInvalidPayload, err)
	}

	if c.breaker != nil && !c.breaker.Allow() {
		return Response{}, ErrCircuitOpen
	}

	resp, err := c.do(ctx, body)
	if c.breaker != nil {
		if Classify(err) == CategoryServer {
			c.breaker.RecordFailure()
		} else {
			c.breaker.RecordSuccess()
		}
	}
	return resp, err
}

func (c *Client) do(ctx context.Context, body []byte) (Response, error) {
	start := c.now()
	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return Response{}, errors.Join(ErrInvalidEndpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.secret != "" {
		sig, err := Sign(c.secret, body, c.now())
		if err != nil {
			return Response{}, err
		}
		sig.Apply(req.Header)
	}

	res, err := c.http.Do(req)
	if err != nil {
		if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
			c.log.WarnContext(ctx, "dispatch timed out", logger.Duration(c.now().Sub(start)))
			return Response{}, fmt.Errorf("%w: %w", ErrTimeout, err)
		}
		c.log.WarnContext(ctx, "dispatch transport failure", logger.Error(err))
		return Response{}, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer func() { _ = res.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBody))
	if err != nil {
		return Response{}, fmt.Errorf("%w: reading response: %w", ErrNetwork, err)
	}

	var out Response
	decodeErr := json.Unmarshal(raw, &out)

	switch {
	case res.StatusCode >= 500:
		return out, fmt.Errorf("%w: status %d: %s", ErrServer, res.StatusCode, describe(out, raw))
	case res.StatusCode >= 400:
		return out, fmt.Errorf("%w: status %d: %s", ErrValidation, res.StatusCode, describe(out, raw))
	case decodeErr != nil:
		return Response{}, fmt.Errorf("%w: malformed response: %w", ErrServer, decodeErr)
	}

	c.log.DebugContext(ctx, "dispatch delivered",
		slog.Int("status", res.StatusCode),
		logger.Duration(c.now().Sub(start)),
	)
	return out, nil
}

func describe(r Response, raw []byte) string {
	switch {
	case r.Message != "":
		return r.Message
	case r.Error != "":
		return r.Error
	}
	s := strings.ReplaceAll(string(raw), "\n", " ")
	if len(s) > 200 {
		s = s[:200] + "..."
	}
	return s
}

package transport

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-resty/resty/v2"
	"golang.org/x/oauth2"

	"github.com/insightapi/suggestions-client-go/location"
)

const defaultUserAgent = "suggestions-client-go"

// StatusError is returned when the backend answers with a non-2xx status.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s returned status %d: %s", e.Method, e.URL, e.StatusCode, strings.TrimSpace(string(e.Body)))
}

// HTTPClient is the default Client. It resolves the request stack, encodes
// params and body as JSON and decodes JSON responses. It does not retry.
type HTTPClient struct {
	resolver   location.Resolver
	httpClient *http.Client
	rest       *resty.Client
	userAgent  string

	timeout     time.Duration
	tokenSource oauth2.TokenSource
	metrics     *Metrics

	Log logr.Logger
}

var _ Client = (*HTTPClient)(nil)

type Option func(*HTTPClient)

func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) {
		h.httpClient = c
	}
}

func WithTimeout(timeout time.Duration) Option {
	return func(h *HTTPClient) {
		h.timeout = timeout
	}
}

func WithUserAgent(userAgent string) Option {
	return func(h *HTTPClient) {
		h.userAgent = userAgent
	}
}

func WithLogger(log logr.Logger) Option {
	return func(h *HTTPClient) {
		h.Log = log
	}
}

// WithTokenSource sends a bearer token obtained from ts with every request.
func WithTokenSource(ts oauth2.TokenSource) Option {
	return func(h *HTTPClient) {
		h.tokenSource = ts
	}
}

// WithMetrics instruments outgoing requests with the given collectors.
func WithMetrics(m *Metrics) Option {
	return func(h *HTTPClient) {
		h.metrics = m
	}
}

func New(resolver location.Resolver, options ...Option) (*HTTPClient, error) {
	if resolver == nil {
		return nil, errors.New("resolver is required")
	}

	h := &HTTPClient{
		resolver:  resolver,
		userAgent: defaultUserAgent,
		Log:       logr.Discard(),
	}
	for _, o := range options {
		o(h)
	}

	base := &http.Client{}
	if h.httpClient != nil {
		*base = *h.httpClient
	}
	rt := base.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}
	if h.metrics != nil {
		rt = h.metrics.instrument(rt)
	}
	if h.tokenSource != nil {
		rt = &oauth2.Transport{Source: h.tokenSource, Base: rt}
	}
	h.httpClient = base

	h.rest = resty.NewWithClient(base).
		SetTransport(rt).
		SetLogger(restyLogger{h.Log}).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", h.userAgent)
	if h.timeout > 0 {
		h.rest.SetTimeout(h.timeout)
	}

	return h, nil
}

func (h *HTTPClient) Get(ctx context.Context, r Request, out any) error {
	return h.do(ctx, http.MethodGet, r, out)
}

func (h *HTTPClient) Post(ctx context.Context, r Request, out any) error {
	return h.do(ctx, http.MethodPost, r, out)
}

func (h *HTTPClient) Delete(ctx context.Context, r Request) error {
	return h.do(ctx, http.MethodDelete, r, nil)
}

// URL returns the absolute URL the request is sent to.
func (h *HTTPClient) URL(r Request) (string, error) {
	reqURL, err := h.endpointURL(r)
	if err != nil {
		return "", err
	}
	if query := r.Params.Values().Encode(); query != "" {
		reqURL += "?" + query
	}
	return reqURL, nil
}

func (h *HTTPClient) endpointURL(r Request) (string, error) {
	baseURL, err := h.resolver.Resolve(r.Stack)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(baseURL, "/") + r.Endpoint(), nil
}

func (h *HTTPClient) do(ctx context.Context, method string, r Request, out any) error {
	reqURL, err := h.endpointURL(r)
	if err != nil {
		return err
	}

	req := h.rest.R().
		SetContext(ctx).
		SetQueryParamsFromValues(r.Params.Values())
	if r.Body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(r.Body)
	}
	if out != nil {
		req.SetResult(out).ForceContentType("application/json")
	}

	resp, err := req.Execute(method, reqURL)
	if resp == nil || resp.RawResponse == nil {
		// Nothing came back: resolution, network and context errors pass through.
		return err
	}
	h.Log.V(1).Info("request completed", "method", method, "url", resp.Request.URL, "status", resp.StatusCode(), "duration", resp.Time())

	if !resp.IsSuccess() {
		return &StatusError{Method: method, URL: resp.Request.URL, StatusCode: resp.StatusCode(), Body: resp.Body()}
	}
	if err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, resp.Request.URL, err)
	}
	return nil
}

// restyLogger routes resty's internal warnings into the client's logr.Logger.
type restyLogger struct {
	log logr.Logger
}

func (l restyLogger) Errorf(format string, v ...any) {
	l.log.Error(errors.New(strings.TrimSpace(fmt.Sprintf(format, v...))), "resty")
}

func (l restyLogger) Warnf(format string, v ...any) {
	l.log.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l restyLogger) Debugf(format string, v ...any) {
	l.log.V(1).Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

// Package http provides an HTTP-based implementation of mangasrc.Fetcher.
// It plays the request-scheduling role: per-host rate limiting, request
// timeout, and request interception. It never retries.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/fwojciec/mangasrc"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 15 * time.Second

// DefaultRateLimit is the default number of requests per second per host.
const DefaultRateLimit = 3.0

// DefaultUserAgent mimics a desktop browser; several sites reject Go's default.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Ensure Fetcher implements mangasrc.Fetcher at compile time.
var _ mangasrc.Fetcher = (*Fetcher)(nil)

// Fetcher issues HTTP requests and returns response bodies as text.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	client       *http.Client
	limiter      *hostLimiter
	timeout      time.Duration
	rps          float64
	userAgent    string
	transport    http.RoundTripper
	bypass       bool
	interceptors []mangasrc.Interceptor
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (15s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithRateLimit sets the per-host request rate. Zero or negative disables limiting.
// Defaults to DefaultRateLimit (3 rps) if not specified.
func WithRateLimit(rps float64) Option {
	return func(f *Fetcher) {
		f.rps = rps
	}
}

// WithUserAgent sets the User-Agent sent when a request carries none.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithInterceptor adds a request interceptor. Interceptors run in the
// order they were added, after request headers are set.
func WithInterceptor(fn mangasrc.Interceptor) Option {
	return func(f *Fetcher) {
		f.interceptors = append(f.interceptors, fn)
	}
}

// WithTransport sets the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(f *Fetcher) {
		f.transport = rt
	}
}

// WithCloudflareBypass wraps the transport so requests carry the browser
// headers and TLS settings that pass Cloudflare's basic bot check.
func WithCloudflareBypass() Option {
	return func(f *Fetcher) {
		f.bypass = true
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		rps:       DefaultRateLimit,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	transport := f.transport
	if transport == nil {
		transport = http.DefaultTransport.(*http.Transport).Clone()
	}
	if f.bypass {
		transport = cloudflarebp.AddCloudFlareByPass(transport)
	}

	f.client = &http.Client{
		Timeout:   f.timeout,
		Transport: transport,
	}
	f.limiter = newHostLimiter(f.rps)

	return f
}

// Fetch performs the request and returns the body text. Every failure is
// reported with the ENETWORK code.
func (f *Fetcher) Fetch(ctx context.Context, r *mangasrc.Request) (string, error) {
	req := r.Clone()
	for _, fn := range f.interceptors {
		fn(req)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	u, err := url.Parse(req.URL)
	if err != nil || u.Host == "" {
		return "", mangasrc.Errorf(mangasrc.EINVALID, "invalid request URL %q", req.URL)
	}

	if err := f.limiter.Wait(ctx, u.Host); err != nil {
		return "", mangasrc.Errorf(mangasrc.ENETWORK, "rate limit wait for %s: %v", req.URL, err)
	}

	var body io.Reader
	if req.Body != "" {
		body = strings.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, body)
	if err != nil {
		return "", mangasrc.Errorf(mangasrc.EINVALID, "build request: %v", err)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if httpReq.Header.Get("User-Agent") == "" && f.userAgent != "" {
		httpReq.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(httpReq)
	if err != nil {
		if isTimeout(err) {
			return "", mangasrc.Errorf(mangasrc.ENETWORK, "timeout fetching %s", req.URL)
		}
		return "", mangasrc.Errorf(mangasrc.ENETWORK, "fetch %s: %v", req.URL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", mangasrc.Errorf(mangasrc.ENETWORK, "HTTP %d for %s", resp.StatusCode, req.URL)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", mangasrc.Errorf(mangasrc.ENETWORK, "read body of %s: %v", req.URL, err)
	}

	return string(data), nil
}

// Close releases idle connections.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

// HeaderInterceptor returns an interceptor that sets the given headers,
// overriding values already present on the request.
func HeaderInterceptor(headers map[string]string) mangasrc.Interceptor {
	return func(req *mangasrc.Request) {
		for k, v := range headers {
			req.Headers[k] = v
		}
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne interface{ Timeout() bool }
	return errors.As(err, &ne) && ne.Timeout()
}

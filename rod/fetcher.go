// Package rod renders JavaScript-heavy catalog pages with headless Chrome
// using github.com/go-rod/rod.
package rod

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fwojciec/mangasrc"
	"github.com/go-rod/rod/lib/proto"
)

// Ensure Fetcher implements mangasrc.Fetcher at compile time.
var _ mangasrc.Fetcher = (*Fetcher)(nil)

// DefaultFetchTimeout bounds a single page render.
const DefaultFetchTimeout = 30 * time.Second

// DefaultMaxPages is the number of pages rendered before the browser is
// replaced.
const DefaultMaxPages = 75

var errClosed = errors.New("fetcher closed")

// Fetcher retrieves rendered HTML using Chrome browser automation.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	browser  *browser
	timeout  time.Duration
	maxPages int
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithFetchTimeout sets the per-page render timeout.
func WithFetchTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxPages sets how many pages are rendered before the browser is
// replaced. Zero disables recycling.
func WithMaxPages(n int) Option {
	return func(f *Fetcher) {
		f.maxPages = n
	}
}

// NewFetcher launches a headless Chrome browser. Close must be called when
// the Fetcher is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewFetcher(opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		maxPages: DefaultMaxPages,
	}
	for _, opt := range opts {
		opt(f)
	}
	b, err := newBrowser(f.maxPages, launch)
	if err != nil {
		return nil, mangasrc.Errorf(mangasrc.EINTERNAL, "%v", err)
	}
	f.browser = b
	return f, nil
}

// Fetch navigates to the request URL and returns the rendered HTML.
// Only GET requests can be rendered. Request headers are sent with every
// request the page makes.
func (f *Fetcher) Fetch(ctx context.Context, req *mangasrc.Request) (string, error) {
	if err := checkRequest(req); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", mangasrc.Errorf(mangasrc.ENETWORK, "fetch %s: %v", req.URL, err)
	}

	in, err := f.browser.acquire()
	if err != nil {
		return "", mangasrc.Errorf(mangasrc.EINVALID, "fetcher is closed")
	}
	defer f.browser.release(in)

	page, err := in.rod.Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", mangasrc.Errorf(mangasrc.ENETWORK, "open page: %v", err)
	}
	defer page.Close()

	page = page.Context(ctx).Timeout(f.timeout)

	headers := make([]string, 0, 2*len(req.Headers))
	for k, v := range req.Headers {
		if http.CanonicalHeaderKey(k) == "User-Agent" {
			if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: v}); err != nil {
				return "", mangasrc.Errorf(mangasrc.ENETWORK, "set user agent: %v", err)
			}
			continue
		}
		headers = append(headers, k, v)
	}
	if len(headers) > 0 {
		cleanup, err := page.SetExtraHeaders(headers)
		if err != nil {
			return "", mangasrc.Errorf(mangasrc.ENETWORK, "set headers: %v", err)
		}
		defer cleanup()
	}

	if err := page.Navigate(req.URL); err != nil {
		return "", mangasrc.Errorf(mangasrc.ENETWORK, "navigate %s: %v", req.URL, err)
	}
	if err := page.WaitLoad(); err != nil {
		return "", mangasrc.Errorf(mangasrc.ENETWORK, "load %s: %v", req.URL, err)
	}
	html, err := page.HTML()
	if err != nil {
		return "", mangasrc.Errorf(mangasrc.ENETWORK, "read %s: %v", req.URL, err)
	}
	return html, nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (f *Fetcher) Close() error {
	return f.browser.close()
}

// LauncherPID returns the process ID of the browser launcher.
func (f *Fetcher) LauncherPID() int {
	return f.browser.pid()
}

func checkRequest(req *mangasrc.Request) error {
	if req == nil || req.URL == "" {
		return mangasrc.Errorf(mangasrc.EINVALID, "request URL required")
	}
	if req.Method != "" && req.Method != http.MethodGet {
		return mangasrc.Errorf(mangasrc.EINVALID, "cannot render %s requests", req.Method)
	}
	if req.Body != "" {
		return mangasrc.Errorf(mangasrc.EINVALID, "cannot render requests with a body")
	}
	return nil
}

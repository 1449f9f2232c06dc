package mangasrc

import "context"

// Request describes a single outbound HTTP request.
type Request struct {
	URL     string
	Method  string // defaults to GET
	Headers map[string]string
	Body    string
}

// Clone returns a copy of the request with its own header map.
func (r *Request) Clone() *Request {
	c := *r
	c.Headers = make(map[string]string, len(r.Headers))
	for k, v := range r.Headers {
		c.Headers[k] = v
	}
	return &c
}

// Fetcher issues one outbound request and returns the raw body text.
// Implementations own rate limiting and timeouts; they never retry.
type Fetcher interface {
	// Fetch performs the request. Transport failures, timeouts and
	// non-2xx statuses are reported with the ENETWORK code.
	Fetch(ctx context.Context, req *Request) (body string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}

// Interceptor rewrites a request before it is sent, e.g. to inject
// referer or user-agent headers.
type Interceptor func(req *Request)

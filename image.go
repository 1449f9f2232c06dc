package mangasrc

import (
	"net/url"
	"strconv"
	"strings"
)

// NormalizeImageURL turns a scraped or decoded image reference into an
// absolute URL for the site.
//
//   - empty references become the site's fallback image
//   - absolute and protocol-relative URLs are kept
//   - relative image-proxy URLs (…?url=<inner>) are unwrapped to the inner URL
//   - other relative paths are wrapped in the site's image proxy when one is
//     configured, and otherwise resolved against the base URL
func NormalizeImageURL(raw string, site *Site) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return site.FallbackImage
	}
	if strings.HasPrefix(raw, "//") {
		return "https:" + raw
	}
	if hasScheme(raw) {
		return raw
	}

	if inner, ok := proxiedURL(raw); ok {
		if hasScheme(inner) {
			return inner
		}
		return ResolveURL(site.BaseURL, inner)
	}

	if site.ImageProxy != nil {
		return ProxyImageURL(site.BaseURL, raw, site.ImageProxy)
	}
	return ResolveURL(site.BaseURL, raw)
}

// PageURL resolves root-relative and protocol-relative page image
// references against the site. Other references are returned unchanged.
func PageURL(raw string, site *Site) string {
	switch {
	case strings.HasPrefix(raw, "//"):
		return "https:" + raw
	case strings.HasPrefix(raw, "/"):
		return ResolveURL(site.BaseURL, raw)
	}
	return raw
}

// ProxyImageURL wraps a relative image path in an image-resizing endpoint.
func ProxyImageURL(baseURL, path string, p *ImageProxy) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(baseURL, "/"))
	b.WriteString(p.Path)
	b.WriteString("?url=")
	b.WriteString(escapeComponent(path))
	if p.Width > 0 {
		b.WriteString("&w=")
		b.WriteString(strconv.Itoa(p.Width))
	}
	if p.Quality > 0 {
		b.WriteString("&q=")
		b.WriteString(strconv.Itoa(p.Quality))
	}
	return b.String()
}

// ResolveURL resolves ref against base. Unparseable input falls back to
// plain concatenation.
func ResolveURL(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(ref, "/")
	}
	r, err := url.Parse(ref)
	if err != nil {
		return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(ref, "/")
	}
	return b.ResolveReference(r).String()
}

// LastPathSegment returns the last non-empty path segment of href,
// ignoring query and fragment.
func LastPathSegment(href string) string {
	if i := strings.IndexAny(href, "?#"); i >= 0 {
		href = href[:i]
	}
	if u, err := url.Parse(href); err == nil && u.Path != "" {
		href = u.Path
	}
	parts := strings.Split(strings.Trim(href, "/"), "/")
	for i := len(parts) - 1; i >= 0; i-- {
		if parts[i] != "" {
			return parts[i]
		}
	}
	return ""
}

// PathOf returns the path (with query) of href relative to its host.
func PathOf(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	p := u.EscapedPath()
	if u.RawQuery != "" {
		p += "?" + u.RawQuery
	}
	return p
}

// proxiedURL extracts and decodes the url= parameter of a relative
// image-proxy reference.
func proxiedURL(raw string) (string, bool) {
	i := strings.Index(raw, "?")
	if i < 0 {
		return "", false
	}
	q, err := url.ParseQuery(raw[i+1:])
	if err != nil {
		return "", false
	}
	inner := q.Get("url")
	if inner == "" {
		return "", false
	}
	return inner, true
}

func hasScheme(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.Scheme != ""
}

// escapeComponent escapes like JavaScript's encodeURIComponent, which is
// what the image proxies expect.
func escapeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

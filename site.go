package mangasrc

import (
	"maps"
	"net/url"
	"slices"
	"strings"
	"time"
)

// DefaultTitle is used when a record carries no title.
const DefaultTitle = "Unknown"

// MaxTileTitleLength bounds scraped tile titles. Longer text almost always
// means the selector matched a container instead of a title.
const MaxTileTitleLength = 100

// Site describes how one remote site is fetched and parsed.
// Sites are plain configuration: the same adapter serves every site.
type Site struct {
	Name     string `yaml:"name"`
	BaseURL  string `yaml:"base_url"`
	APIURL   string `yaml:"api_url"`
	Language string `yaml:"language"`

	// Headers are sent with every request; PageHeaders are handed to
	// callers alongside chapter pages for image downloads.
	Headers     map[string]string `yaml:"headers"`
	PageHeaders map[string]string `yaml:"page_headers"`

	// Render fetches HTML pages through a JavaScript-capable browser.
	Render    bool          `yaml:"render"`
	RateLimit float64       `yaml:"rate_limit"`
	Timeout   time.Duration `yaml:"timeout"`

	FallbackImage string      `yaml:"fallback_image"`
	ImageProxy    *ImageProxy `yaml:"image_proxy"`

	// ImageTemplate builds an image URL from {id} when a record has none.
	ImageTemplate string `yaml:"image_template"`

	// PageTemplate builds page URLs from {mangaId}, {chapterId}, {file}
	// and {token} when page records are file references.
	PageTemplate string `yaml:"page_template"`

	Sections  []SectionDef     `yaml:"sections"`
	Endpoints Endpoints        `yaml:"endpoints"`
	Lists     []string         `yaml:"lists"`
	Fields    Fields           `yaml:"fields"`
	Tiles     TileSelectors    `yaml:"tiles"`
	Selectors Selectors        `yaml:"selectors"`
	Embedded  []EmbeddedMarker `yaml:"embedded"`
}

// ImageProxy wraps relative image paths in an image-resizing endpoint,
// e.g. /_next/image?url=<path>&w=384&q=75.
type ImageProxy struct {
	Path    string `yaml:"path"`
	Width   int    `yaml:"width"`
	Quality int    `yaml:"quality"`
}

// Endpoint is a URL template plus request options.
// Templates may reference {base}, {api}, {id}, {chapterId}, {query} and {page}.
// Body is a form-encoded template expanded like URL; an endpoint with a
// body defaults to POST.
type Endpoint struct {
	URL     string            `yaml:"url"`
	Method  string            `yaml:"method"`
	Headers map[string]string `yaml:"headers"`
	Body    string            `yaml:"body"`
}

// Paginated reports whether the endpoint takes a page number.
func (e *Endpoint) Paginated() bool {
	return e != nil && (strings.Contains(e.URL, "{page}") || strings.Contains(e.Body, "{page}"))
}

// Operation pairs a primary endpoint with an optional fallback tier.
type Operation struct {
	Primary  *Endpoint `yaml:"primary"`
	Fallback *Endpoint `yaml:"fallback"`
}

// Endpoints configures the four single-shot operations.
type Endpoints struct {
	Details  Operation `yaml:"details"`
	Chapters Operation `yaml:"chapters"`
	Pages    Operation `yaml:"pages"`
	Search   Operation `yaml:"search"`
}

// SectionDef configures one home section.
type SectionDef struct {
	ID                string        `yaml:"id"`
	Title             string        `yaml:"title"`
	Type              string        `yaml:"type"`
	ContainsMoreItems bool          `yaml:"contains_more"`
	Operation         Operation     `yaml:",inline"`
	Tiles             TileSelectors `yaml:"tiles"`
}

// TileSelectors configures catalog tile scraping.
type TileSelectors struct {
	// Items is a fallback list; the first selector with matches wins.
	Items []string `yaml:"items"`
	// Link selects the anchor inside an item. Empty means the item is the anchor.
	Link string `yaml:"link"`
	// Title lists inner selectors tried before the anchor's own text and
	// its title attribute.
	Title []string `yaml:"title"`
	// Container is the ancestor searched for an image when the anchor has none.
	Container string `yaml:"container"`
}

// Selectors configures series page, chapter list and reader scraping.
type Selectors struct {
	Title       []string `yaml:"title"`
	AltTitles   []string `yaml:"alt_titles"`
	Image       []string `yaml:"image"`
	Description []string `yaml:"description"`
	Status      []string `yaml:"status"`
	Author      []string `yaml:"author"`
	Tags        []string `yaml:"tags"`

	ChapterItem string   `yaml:"chapter_item"`
	ChapterLink string   `yaml:"chapter_link"`
	ChapterName []string `yaml:"chapter_name"`
	ChapterDate string   `yaml:"chapter_date"`

	PageImage string   `yaml:"page_image"`
	PageAttrs []string `yaml:"page_attrs"`
}

// EmbeddedMarker locates a JSON array inside a script block. Script is a
// substring identifying the block; Pattern is a regular expression whose
// match ends at (or just before) the opening bracket of the array.
type EmbeddedMarker struct {
	Script  string `yaml:"script"`
	Pattern string `yaml:"pattern"`
}

// Fields lists JSON field aliases per attribute in priority order.
// Dotted paths address nested values.
type Fields struct {
	ID          []string `yaml:"id"`
	Title       []string `yaml:"title"`
	Image       []string `yaml:"image"`
	Subtitle    []string `yaml:"subtitle"`
	AltTitles   []string `yaml:"alt_titles"`
	Description []string `yaml:"description"`
	Status      []string `yaml:"status"`
	Authors     []string `yaml:"authors"`
	Tags        []string `yaml:"tags"`

	ChapterNumber []string `yaml:"chapter_number"`
	ChapterName   []string `yaml:"chapter_name"`
	PublishedAt   []string `yaml:"published_at"`
	Language      []string `yaml:"language"`

	PageURL   []string `yaml:"page_url"`
	PageFile  []string `yaml:"page_file"`
	PageToken string   `yaml:"page_token"`
}

// DefaultFields returns the alias lists shared by the supported sites.
func DefaultFields() Fields {
	return Fields{
		ID:            []string{"id", "slug"},
		Title:         []string{"title", "name"},
		Image:         []string{"thumbnail", "cover", "image"},
		Subtitle:      []string{"subtitle"},
		AltTitles:     []string{"alternativeTitles", "altTitles"},
		Description:   []string{"summary", "description"},
		Status:        []string{"status"},
		Authors:       []string{"authors", "author"},
		Tags:          []string{"metadata.genres", "genres", "tags"},
		ChapterNumber: []string{"chapterNumber", "number", "sequenceNumber", "index"},
		ChapterName:   []string{"title", "name"},
		PublishedAt:   []string{"createdAt", "created", "publishedAt"},
		Language:      []string{"language", "lang"},
		PageURL:       []string{"url", "src"},
		PageFile:      []string{"id", "file"},
		PageToken:     "token",
	}
}

// DefaultLists returns the list field aliases tried after "data".
func DefaultLists() []string {
	return []string{"series", "books", "chapters", "images", "pages", "files", "data.books"}
}

// Validate returns an error if the site cannot be used.
func (s *Site) Validate() error {
	if s.Name == "" {
		return Errorf(EINVALID, "site name required")
	}
	if s.BaseURL == "" {
		return Errorf(EINVALID, "site %q: base URL required", s.Name)
	}
	u, err := url.Parse(s.BaseURL)
	if err != nil || !u.IsAbs() {
		return Errorf(EINVALID, "site %q: base URL must be absolute", s.Name)
	}
	for _, m := range s.Embedded {
		if m.Script == "" || m.Pattern == "" {
			return Errorf(EINVALID, "site %q: embedded marker needs script and pattern", s.Name)
		}
	}
	return nil
}

// WithDefaults returns a copy of the site with empty settings filled in.
func (s *Site) WithDefaults() *Site {
	c := *s
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	c.APIURL = strings.TrimRight(c.APIURL, "/")
	if c.APIURL == "" {
		c.APIURL = c.BaseURL
	}
	if c.Language == "" {
		c.Language = "en"
	}
	if c.FallbackImage == "" {
		c.FallbackImage = c.BaseURL + "/favicon.ico"
	}
	if len(c.Lists) == 0 {
		c.Lists = DefaultLists()
	}
	c.Fields = mergeFields(c.Fields, DefaultFields())
	if len(c.Tiles.Items) == 0 {
		c.Tiles.Items = []string{`a[href*="/series/"]`, `a[href*="/comic/"]`}
	}
	if c.Tiles.Container == "" {
		c.Tiles.Container = "div, li, article"
	}
	if len(c.Selectors.PageAttrs) == 0 {
		c.Selectors.PageAttrs = []string{"data-src", "src", "data-lazy-src"}
	}
	if c.ImageProxy != nil {
		p := *c.ImageProxy
		if p.Path == "" {
			p.Path = "/_next/image"
		}
		c.ImageProxy = &p
	}
	return &c
}

// Clone returns a copy of the site that shares no maps or endpoints
// with s, so the copy can be decoded into without touching s.
func (s *Site) Clone() *Site {
	c := *s
	c.Headers = maps.Clone(s.Headers)
	c.PageHeaders = maps.Clone(s.PageHeaders)
	if s.ImageProxy != nil {
		p := *s.ImageProxy
		c.ImageProxy = &p
	}
	c.Sections = slices.Clone(s.Sections)
	for i := range c.Sections {
		c.Sections[i].Operation = c.Sections[i].Operation.clone()
	}
	c.Endpoints = Endpoints{
		Details:  s.Endpoints.Details.clone(),
		Chapters: s.Endpoints.Chapters.clone(),
		Pages:    s.Endpoints.Pages.clone(),
		Search:   s.Endpoints.Search.clone(),
	}
	c.Lists = slices.Clone(s.Lists)
	c.Embedded = slices.Clone(s.Embedded)
	return &c
}

func (o Operation) clone() Operation {
	return Operation{Primary: o.Primary.clone(), Fallback: o.Fallback.clone()}
}

func (e *Endpoint) clone() *Endpoint {
	if e == nil {
		return nil
	}
	c := *e
	c.Headers = maps.Clone(e.Headers)
	return &c
}

// Expand fills an endpoint URL template. The query value is escaped;
// other values are inserted verbatim so path-style IDs keep their slashes.
func (s *Site) Expand(tmpl string, vars map[string]string) string {
	pairs := []string{"{base}", s.BaseURL, "{api}", s.APIURL}
	for k, v := range vars {
		if k == "query" {
			v = url.QueryEscape(v)
		}
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(tmpl)
}

// NewRequest builds a request for an endpoint, layering site headers
// under endpoint headers.
func (s *Site) NewRequest(ep *Endpoint, vars map[string]string) *Request {
	headers := make(map[string]string, len(s.Headers)+len(ep.Headers))
	for k, v := range s.Headers {
		headers[k] = v
	}
	for k, v := range ep.Headers {
		headers[k] = v
	}
	method := ep.Method
	switch {
	case method != "":
	case ep.Body != "":
		method = "POST"
	default:
		method = "GET"
	}
	var body string
	if ep.Body != "" {
		body = s.Expand(ep.Body, vars)
		if _, ok := headers["Content-Type"]; !ok {
			headers["Content-Type"] = "application/x-www-form-urlencoded"
		}
	}
	return &Request{
		URL:     s.Expand(ep.URL, vars),
		Method:  method,
		Headers: headers,
		Body:    body,
	}
}

func mergeFields(f, d Fields) Fields {
	pick := func(v, def []string) []string {
		if len(v) > 0 {
			return v
		}
		return def
	}
	f.ID = pick(f.ID, d.ID)
	f.Title = pick(f.Title, d.Title)
	f.Image = pick(f.Image, d.Image)
	f.Subtitle = pick(f.Subtitle, d.Subtitle)
	f.AltTitles = pick(f.AltTitles, d.AltTitles)
	f.Description = pick(f.Description, d.Description)
	f.Status = pick(f.Status, d.Status)
	f.Authors = pick(f.Authors, d.Authors)
	f.Tags = pick(f.Tags, d.Tags)
	f.ChapterNumber = pick(f.ChapterNumber, d.ChapterNumber)
	f.ChapterName = pick(f.ChapterName, d.ChapterName)
	f.PublishedAt = pick(f.PublishedAt, d.PublishedAt)
	f.Language = pick(f.Language, d.Language)
	f.PageURL = pick(f.PageURL, d.PageURL)
	f.PageFile = pick(f.PageFile, d.PageFile)
	if f.PageToken == "" {
		f.PageToken = d.PageToken
	}
	return f
}

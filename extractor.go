package mangasrc

import "time"

// Kind classifies a raw response body.
type Kind int

// Response kinds, in classification priority order.
const (
	KindUnrecognized Kind = iota
	KindStructured
	KindMarkup
	KindMarkupEmbedded
)

// String returns the kind's identifier.
func (k Kind) String() string {
	switch k {
	case KindStructured:
		return "structured"
	case KindMarkup:
		return "markup"
	case KindMarkupEmbedded:
		return "markup+embedded"
	default:
		return "unrecognized"
	}
}

// Shape is the top-level JSON shape an operation expects.
type Shape int

// Expected shapes.
const (
	ShapeList Shape = iota
	ShapeObject
)

// Clock returns the current time. Normalizers use it as the fallback for
// missing or unparseable timestamps.
type Clock func() time.Time

// StructuredExtractor extracts catalog data from JSON bodies.
// Malformed input yields empty results, never an error.
type StructuredExtractor interface {
	// Matches reports whether body is JSON of the expected catalog shape.
	Matches(body string, shape Shape, site *Site) bool

	// Entries returns the catalog entries of a list payload.
	Entries(body string, site *Site) []*CatalogEntry

	// Details returns the manga described by an object payload.
	// Returns false when the payload carries no usable record.
	Details(body string, id string, site *Site) (*MangaDetails, bool)

	// Chapters returns the chapters of a list payload.
	Chapters(body string, mangaID string, site *Site) []*Chapter

	// Pages returns page image URLs in reading order.
	Pages(body string, mangaID, chapterID string, site *Site) []string
}

// MarkupExtractor extracts catalog data from HTML bodies.
// Malformed input yields empty results, never an error.
type MarkupExtractor interface {
	// Entries returns tiles matched by the selector fallback list.
	Entries(html string, sel TileSelectors, site *Site) []*CatalogEntry

	// Details returns the manga described by a series page.
	Details(html string, id string, site *Site) (*MangaDetails, bool)

	// Chapters returns the chapters listed on a series page.
	Chapters(html string, mangaID string, site *Site) []*Chapter

	// Pages returns reader image URLs in reading order.
	Pages(html string, site *Site) []string
}

// EmbeddedExtractor locates JSON hydration payloads inside script blocks.
type EmbeddedExtractor interface {
	// Extract returns the first JSON array literal matched by one of the
	// markers. Returns false when no marker matches or the payload is
	// not valid JSON.
	Extract(html string, markers []EmbeddedMarker) (string, bool)
}

package mangasrc

import (
	"strings"
	"time"
)

// CatalogEntry is a tile-like summary of a remote content item.
type CatalogEntry struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ImageURL string `json:"imageUrl"`
	Subtitle string `json:"subtitle,omitempty"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *CatalogEntry) Validate() error {
	if e.ID == "" {
		return Errorf(EINVALID, "catalog entry ID required")
	}
	return nil
}

// Status represents the publication status of a manga.
type Status int

// Publication statuses.
const (
	StatusUnknown Status = iota
	StatusOngoing
	StatusCompleted
	StatusHiatus
)

// String returns the display name of the status.
func (s Status) String() string {
	switch s {
	case StatusOngoing:
		return "Ongoing"
	case StatusCompleted:
		return "Completed"
	case StatusHiatus:
		return "Hiatus"
	default:
		return "Unknown"
	}
}

// MarshalText encodes the status as its display name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// ParseStatus maps free-form status text ("ONGOING", "Status: Completed",
// "On Hiatus") to a Status. Unrecognized text yields StatusUnknown.
func ParseStatus(text string) Status {
	t := strings.ToLower(strings.TrimSpace(text))
	switch {
	case t == "":
		return StatusUnknown
	case strings.Contains(t, "hiatus"):
		return StatusHiatus
	case strings.Contains(t, "completed"), strings.Contains(t, "ended"), strings.Contains(t, "finished"):
		return StatusCompleted
	case strings.Contains(t, "ongoing"), strings.Contains(t, "publishing"):
		return StatusOngoing
	}
	return StatusUnknown
}

// MangaDetails holds the full description of a single manga.
type MangaDetails struct {
	ID          string   `json:"id"`
	Titles      []string `json:"titles"`
	ImageURL    string   `json:"imageUrl"`
	Status      Status   `json:"status"`
	Description string   `json:"description"`
	Author      string   `json:"author,omitempty"`
	Tags        []string `json:"tags"`
}

// Title returns the primary title.
func (d *MangaDetails) Title() string {
	if len(d.Titles) == 0 {
		return ""
	}
	return d.Titles[0]
}

// Validate returns an error if the details contain invalid fields.
func (d *MangaDetails) Validate() error {
	if d.ID == "" {
		return Errorf(EINVALID, "manga ID required")
	}
	if len(d.Titles) == 0 {
		return Errorf(EINVALID, "manga title required")
	}
	return nil
}

// Chapter is a single readable chapter of a manga.
// Number is an ordering hint only; 0 means unknown.
type Chapter struct {
	ID          string    `json:"id"`
	MangaID     string    `json:"mangaId"`
	Name        string    `json:"name"`
	Number      float64   `json:"number"`
	Language    string    `json:"language"`
	PublishedAt time.Time `json:"publishedAt"`
}

// ChapterPages lists the page images of a chapter in reading order.
// An empty Pages slice is a valid result.
type ChapterPages struct {
	ChapterID string            `json:"chapterId"`
	MangaID   string            `json:"mangaId"`
	Pages     []string          `json:"pages"`
	Headers   map[string]string `json:"headers,omitempty"`
}

// HomeSection is a titled row of entries on a site's landing page.
type HomeSection struct {
	ID                string          `json:"id"`
	Title             string          `json:"title"`
	Type              string          `json:"type,omitempty"`
	ContainsMoreItems bool            `json:"containsMoreItems"`
	Entries           []*CatalogEntry `json:"entries"`
}

// SearchQuery describes a title search. Token is the opaque continuation
// token returned by a previous SearchResult; empty means the first page.
type SearchQuery struct {
	Title string `json:"title"`
	Token string `json:"token,omitempty"`
}

// SearchResult is one page of search results.
// NextToken is empty when there are no further pages.
type SearchResult struct {
	Entries   []*CatalogEntry `json:"entries"`
	NextToken string          `json:"nextToken,omitempty"`
}

// DedupeEntries drops entries whose ID was already seen, keeping
// first-seen order. Entries with an empty ID are dropped.
func DedupeEntries(entries []*CatalogEntry) []*CatalogEntry {
	seen := make(map[string]bool, len(entries))
	out := make([]*CatalogEntry, 0, len(entries))
	for _, e := range entries {
		if e == nil || e.ID == "" || seen[e.ID] {
			continue
		}
		seen[e.ID] = true
		out = append(out, e)
	}
	return out
}

// DedupeChapters drops chapters whose ID was already seen, keeping
// first-seen order.
func DedupeChapters(chapters []*Chapter) []*Chapter {
	seen := make(map[string]bool, len(chapters))
	out := make([]*Chapter, 0, len(chapters))
	for _, c := range chapters {
		if c == nil || c.ID == "" || seen[c.ID] {
			continue
		}
		seen[c.ID] = true
		out = append(out, c)
	}
	return out
}

// AppendUnique appends values not already present in dst, ignoring blanks.
func AppendUnique(dst []string, values ...string) []string {
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		dup := false
		for _, d := range dst {
			if d == v {
				dup = true
				break
			}
		}
		if !dup {
			dst = append(dst, v)
		}
	}
	return dst
}

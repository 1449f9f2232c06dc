package mangasrc

import "context"

// SectionFunc receives home sections as they are built. Each section is
// delivered twice: once empty while it loads, then once populated.
type SectionFunc func(section *HomeSection)

// Source is the catalog capability every site adapter provides.
type Source interface {
	// HomeSections emits every configured home section, empty first and
	// then populated. Failures degrade to empty sections; the method
	// only returns an error when ctx is done.
	HomeSections(ctx context.Context, emit SectionFunc) error

	// MangaDetails returns the details of one manga.
	// Transport failures are returned with the ENETWORK code.
	MangaDetails(ctx context.Context, id string) (*MangaDetails, error)

	// Chapters returns a manga's chapters. An empty list is not an error.
	Chapters(ctx context.Context, mangaID string) ([]*Chapter, error)

	// ChapterPages returns a chapter's page images in reading order.
	// Transport failures are returned with the ENETWORK code.
	ChapterPages(ctx context.Context, mangaID, chapterID string) (*ChapterPages, error)

	// Search returns one page of results for a title query.
	Search(ctx context.Context, query SearchQuery) (*SearchResult, error)
}

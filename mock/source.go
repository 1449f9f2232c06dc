package mock

import (
	"context"

	"github.com/fwojciec/mangasrc"
)

var _ mangasrc.Source = (*Source)(nil)

// Source is a mock implementation of mangasrc.Source.
type Source struct {
	HomeSectionsFn func(ctx context.Context, emit mangasrc.SectionFunc) error
	MangaDetailsFn func(ctx context.Context, id string) (*mangasrc.MangaDetails, error)
	ChaptersFn     func(ctx context.Context, mangaID string) ([]*mangasrc.Chapter, error)
	ChapterPagesFn func(ctx context.Context, mangaID, chapterID string) (*mangasrc.ChapterPages, error)
	SearchFn       func(ctx context.Context, query mangasrc.SearchQuery) (*mangasrc.SearchResult, error)
}

func (s *Source) HomeSections(ctx context.Context, emit mangasrc.SectionFunc) error {
	return s.HomeSectionsFn(ctx, emit)
}

func (s *Source) MangaDetails(ctx context.Context, id string) (*mangasrc.MangaDetails, error) {
	return s.MangaDetailsFn(ctx, id)
}

func (s *Source) Chapters(ctx context.Context, mangaID string) ([]*mangasrc.Chapter, error) {
	return s.ChaptersFn(ctx, mangaID)
}

func (s *Source) ChapterPages(ctx context.Context, mangaID, chapterID string) (*mangasrc.ChapterPages, error) {
	return s.ChapterPagesFn(ctx, mangaID, chapterID)
}

func (s *Source) Search(ctx context.Context, query mangasrc.SearchQuery) (*mangasrc.SearchResult, error) {
	return s.SearchFn(ctx, query)
}

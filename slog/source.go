package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/mangasrc"
	"github.com/google/uuid"
)

// Ensure LoggingSource implements mangasrc.Source.
var _ mangasrc.Source = (*LoggingSource)(nil)

// LoggingSource wraps a Source with operation logging. Every call gets an
// op id so fetch lines logged with the same logger can be correlated.
type LoggingSource struct {
	next   mangasrc.Source
	site   string
	logger *slog.Logger
}

// NewLoggingSource creates a new LoggingSource for the named site.
func NewLoggingSource(next mangasrc.Source, site string, logger *slog.Logger) *LoggingSource {
	return &LoggingSource{next: next, site: site, logger: logger}
}

// HomeSections logs the number of emissions and delegates.
func (s *LoggingSource) HomeSections(ctx context.Context, emit mangasrc.SectionFunc) (err error) {
	var emitted, entries int
	defer func(begin time.Time) {
		s.logger.Info("home sections",
			"site", s.site,
			"op", uuid.NewString(),
			"emitted", emitted,
			"count", entries,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.HomeSections(ctx, func(section *mangasrc.HomeSection) {
		emitted++
		entries += len(section.Entries)
		emit(section)
	})
}

// MangaDetails delegates to the wrapped source and logs the operation.
func (s *LoggingSource) MangaDetails(ctx context.Context, id string) (details *mangasrc.MangaDetails, err error) {
	defer func(begin time.Time) {
		s.logger.Info("manga details",
			"site", s.site,
			"op", uuid.NewString(),
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.MangaDetails(ctx, id)
}

// Chapters delegates to the wrapped source and logs the operation.
func (s *LoggingSource) Chapters(ctx context.Context, mangaID string) (chapters []*mangasrc.Chapter, err error) {
	defer func(begin time.Time) {
		s.logger.Info("chapters",
			"site", s.site,
			"op", uuid.NewString(),
			"id", mangaID,
			"count", len(chapters),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Chapters(ctx, mangaID)
}

// ChapterPages delegates to the wrapped source and logs the operation.
func (s *LoggingSource) ChapterPages(ctx context.Context, mangaID, chapterID string) (pages *mangasrc.ChapterPages, err error) {
	defer func(begin time.Time) {
		count := 0
		if pages != nil {
			count = len(pages.Pages)
		}
		s.logger.Info("chapter pages",
			"site", s.site,
			"op", uuid.NewString(),
			"id", mangaID,
			"chapter", chapterID,
			"count", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.ChapterPages(ctx, mangaID, chapterID)
}

// Search delegates to the wrapped source and logs the operation.
func (s *LoggingSource) Search(ctx context.Context, query mangasrc.SearchQuery) (result *mangasrc.SearchResult, err error) {
	defer func(begin time.Time) {
		count, next := 0, ""
		if result != nil {
			count, next = len(result.Entries), result.NextToken
		}
		s.logger.Info("search",
			"site", s.site,
			"op", uuid.NewString(),
			"query", query.Title,
			"token", query.Token,
			"count", count,
			"next", next,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query)
}

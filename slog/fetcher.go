// Package slog provides log/slog decorators for the mangasrc interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/mangasrc"
)

// Ensure LoggingFetcher implements mangasrc.Fetcher.
var _ mangasrc.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with request logging.
type LoggingFetcher struct {
	next   mangasrc.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next mangasrc.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the request and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, req *mangasrc.Request) (body string, err error) {
	defer func(begin time.Time) {
		f.logger.Info("fetch",
			"method", req.Method,
			"url", req.URL,
			"bytes", len(body),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, req)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

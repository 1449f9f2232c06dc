package goquery

import (
	"time"

	"github.com/fwojciec/mangasrc"
)

// Ensure Extractor implements mangasrc.MarkupExtractor.
var _ mangasrc.MarkupExtractor = (*Extractor)(nil)

// Extractor scrapes catalog data from server-rendered HTML using the
// site's selectors.
type Extractor struct {
	converter mangasrc.Converter
	now       mangasrc.Clock
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithConverter converts description markup to plain Markdown text.
func WithConverter(c mangasrc.Converter) Option {
	return func(e *Extractor) {
		e.converter = c
	}
}

// WithClock sets the clock used for missing or unparseable chapter dates.
func WithClock(now mangasrc.Clock) Option {
	return func(e *Extractor) {
		e.now = now
	}
}

// NewExtractor creates a new Extractor.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/mangasrc"
)

// Ensure LoggingRegistry implements mangasrc.ProfileRegistry.
var _ mangasrc.ProfileRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps a ProfileRegistry with logging for theme detection.
type LoggingRegistry struct {
	next     mangasrc.ProfileRegistry
	detector mangasrc.ThemeDetector
	logger   *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next mangasrc.ProfileRegistry, detector mangasrc.ThemeDetector, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, detector: detector, logger: logger}
}

// Get delegates to the wrapped registry.
func (r *LoggingRegistry) Get(theme mangasrc.Theme) *mangasrc.Profile {
	return r.next.Get(theme)
}

// ForHTML detects the theme, logs it, and returns the matching profile.
func (r *LoggingRegistry) ForHTML(html string) *mangasrc.Profile {
	begin := time.Now()
	theme := r.detector.Detect(html)
	name := string(theme)
	if theme == mangasrc.ThemeUnknown {
		name = "(unknown)"
	}
	r.logger.Info("theme detection",
		"theme", name,
		"duration", time.Since(begin),
	)
	return r.next.ForHTML(html)
}

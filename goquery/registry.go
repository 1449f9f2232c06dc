package goquery

import "github.com/fwojciec/mangasrc"

var _ mangasrc.ProfileRegistry = (*Registry)(nil)

// Registry manages theme-specific scraping profiles and auto-detects
// themes from HTML content.
type Registry struct {
	detector mangasrc.ThemeDetector
	profiles map[mangasrc.Theme]*mangasrc.Profile
}

// NewRegistry creates a new empty Registry with the given detector.
func NewRegistry(detector mangasrc.ThemeDetector) *Registry {
	return &Registry{
		detector: detector,
		profiles: make(map[mangasrc.Theme]*mangasrc.Profile),
	}
}

// NewDefaultRegistry creates a Registry with the built-in profiles and
// the default detector.
func NewDefaultRegistry() *Registry {
	r := NewRegistry(NewDetector())
	r.Register(mangasrc.MangareaderProfile())
	r.Register(mangasrc.MadaraProfile())
	r.Register(mangasrc.NextJSProfile())
	return r
}

// Get returns the profile for a theme.
// Returns nil if no profile is registered for the theme.
func (r *Registry) Get(theme mangasrc.Theme) *mangasrc.Profile {
	return r.profiles[theme]
}

// ForHTML detects the theme from HTML and returns its profile.
func (r *Registry) ForHTML(html string) *mangasrc.Profile {
	return r.profiles[r.detector.Detect(html)]
}

// Register adds a profile under its theme, replacing any existing one.
func (r *Registry) Register(p *mangasrc.Profile) {
	r.profiles[p.Theme] = p
}

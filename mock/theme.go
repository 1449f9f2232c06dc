package mock

import "github.com/fwojciec/mangasrc"

var (
	_ mangasrc.ThemeDetector   = (*ThemeDetector)(nil)
	_ mangasrc.ProfileRegistry = (*ProfileRegistry)(nil)
)

// ThemeDetector is a mock implementation of mangasrc.ThemeDetector.
type ThemeDetector struct {
	DetectFn func(html string) mangasrc.Theme
}

func (d *ThemeDetector) Detect(html string) mangasrc.Theme {
	return d.DetectFn(html)
}

// ProfileRegistry is a mock implementation of mangasrc.ProfileRegistry.
type ProfileRegistry struct {
	GetFn     func(theme mangasrc.Theme) *mangasrc.Profile
	ForHTMLFn func(html string) *mangasrc.Profile
}

func (r *ProfileRegistry) Get(theme mangasrc.Theme) *mangasrc.Profile {
	return r.GetFn(theme)
}

func (r *ProfileRegistry) ForHTML(html string) *mangasrc.Profile {
	return r.ForHTMLFn(html)
}

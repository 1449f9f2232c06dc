package source

import (
	"slices"

	"github.com/fwojciec/mangasrc"
)

// Registry holds validated site definitions by name.
type Registry struct {
	sites map[string]*mangasrc.Site
}

// NewRegistry creates a Registry holding the given sites.
func NewRegistry(sites map[string]*mangasrc.Site) (*Registry, error) {
	r := &Registry{sites: make(map[string]*mangasrc.Site, len(sites))}
	for _, s := range sites {
		if err := r.Add(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// NewDefaultRegistry creates a Registry holding the built-in presets.
func NewDefaultRegistry() *Registry {
	r, err := NewRegistry(Presets())
	if err != nil {
		panic(err)
	}
	return r
}

// Add validates a site and stores it with defaults applied, replacing any
// site of the same name.
func (r *Registry) Add(s *mangasrc.Site) error {
	if err := s.Validate(); err != nil {
		return err
	}
	r.sites[s.Name] = s.WithDefaults()
	return nil
}

// Site returns the site with the given name.
func (r *Registry) Site(name string) (*mangasrc.Site, error) {
	s, ok := r.sites[name]
	if !ok {
		return nil, mangasrc.Errorf(mangasrc.ENOTFOUND, "unknown site %q", name)
	}
	return s, nil
}

// Names returns the registered site names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.sites))
	for name := range r.sites {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Adapter returns a copy of base serving the named site. Base carries the
// collaborators shared by every site.
func (r *Registry) Adapter(name string, base Adapter) (*Adapter, error) {
	site, err := r.Site(name)
	if err != nil {
		return nil, err
	}
	base.Site = site
	return &base, nil
}

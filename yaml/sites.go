// Package yaml loads site definitions from YAML files using gopkg.in/yaml.v3.
package yaml

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/fwojciec/mangasrc"
	"gopkg.in/yaml.v3"
)

// header holds the keys read before a site is decoded.
type header struct {
	Name    string         `yaml:"name"`
	Extends string         `yaml:"extends"`
	Theme   mangasrc.Theme `yaml:"theme"`
}

// entry is the full shape of one site in the document.
type entry struct {
	Extends       string         `yaml:"extends"`
	Theme         mangasrc.Theme `yaml:"theme"`
	mangasrc.Site `yaml:",inline"`
}

type document struct {
	Sites []yaml.Node `yaml:"sites"`
}

// LoadSites decodes the sites listed under the "sites" key of r. A site
// named after a base site, or naming one in "extends", starts as a copy of
// it and only the keys present in the document override it. A "theme" key
// fills unset selectors from the matching profile.
func LoadSites(r io.Reader, base map[string]*mangasrc.Site, profiles mangasrc.ProfileRegistry) ([]*mangasrc.Site, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, mangasrc.Errorf(mangasrc.EINVALID, "decode sites: %v", err)
	}

	sites := make([]*mangasrc.Site, 0, len(doc.Sites))
	for i := range doc.Sites {
		site, err := decodeSite(&doc.Sites[i], base, profiles)
		if err != nil {
			return nil, err
		}
		sites = append(sites, site)
	}
	return sites, nil
}

// LoadSitesFile reads sites from the YAML file at path.
func LoadSitesFile(path string, base map[string]*mangasrc.Site, profiles mangasrc.ProfileRegistry) ([]*mangasrc.Site, error) {
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, mangasrc.Errorf(mangasrc.ENOTFOUND, "sites file %q not found", path)
	} else if err != nil {
		return nil, mangasrc.Errorf(mangasrc.EINTERNAL, "read sites file: %v", err)
	}
	return LoadSites(bytes.NewReader(b), base, profiles)
}

func decodeSite(node *yaml.Node, base map[string]*mangasrc.Site, profiles mangasrc.ProfileRegistry) (*mangasrc.Site, error) {
	var h header
	if err := node.Decode(&h); err != nil {
		return nil, mangasrc.Errorf(mangasrc.EINVALID, "decode site at line %d: %v", node.Line, err)
	}
	if h.Name == "" {
		return nil, mangasrc.Errorf(mangasrc.EINVALID, "site at line %d: name required", node.Line)
	}

	from := h.Extends
	if from == "" {
		if _, ok := base[h.Name]; ok {
			from = h.Name
		}
	}
	var e entry
	if from != "" {
		parent, ok := base[from]
		if !ok {
			return nil, mangasrc.Errorf(mangasrc.ENOTFOUND, "site %q extends unknown site %q", h.Name, from)
		}
		e.Site = *parent.Clone()
	}

	// Node.Decode ignores unknown keys, so the site is decoded strictly
	// from its own re-encoded text.
	b, err := yaml.Marshal(node)
	if err != nil {
		return nil, mangasrc.Errorf(mangasrc.EINTERNAL, "encode site %q: %v", h.Name, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&e); err != nil {
		return nil, mangasrc.Errorf(mangasrc.EINVALID, "decode site %q at line %d: %v", h.Name, node.Line, err)
	}
	site := &e.Site

	if h.Theme != mangasrc.ThemeUnknown {
		var p *mangasrc.Profile
		if profiles != nil {
			p = profiles.Get(h.Theme)
		}
		if p == nil {
			return nil, mangasrc.Errorf(mangasrc.EINVALID, "site %q: unknown theme %q", h.Name, h.Theme)
		}
		p.Apply(site)
	}

	if err := site.Validate(); err != nil {
		return nil, err
	}
	return site, nil
}

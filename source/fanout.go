package source

import (
	"context"
	"sync"

	"github.com/fwojciec/mangasrc"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds how many sites HomeAll loads at once.
const DefaultConcurrency = 3

// SiteSections holds the populated home sections of one site.
type SiteSections struct {
	Site     string                  `json:"site"`
	Sections []*mangasrc.HomeSection `json:"sections"`
	Err      error                   `json:"-"`
}

// HomeAll loads the home sections of several sources concurrently and
// returns them in the order of names. Only the populated emission of each
// section is kept. A source error is recorded on its result and does not
// stop the others; the returned error is the context's.
func HomeAll(ctx context.Context, names []string, sources map[string]mangasrc.Source, concurrency int) ([]*SiteSections, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	results := make([]*SiteSections, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, name := range names {
		results[i] = &SiteSections{Site: name}
		src, ok := sources[name]
		if !ok {
			results[i].Err = mangasrc.Errorf(mangasrc.ENOTFOUND, "unknown site %q", name)
			continue
		}
		res := results[i]
		g.Go(func() error {
			var (
				mu    sync.Mutex
				order []string
				byID  = make(map[string]*mangasrc.HomeSection)
			)
			err := src.HomeSections(gctx, func(s *mangasrc.HomeSection) {
				mu.Lock()
				defer mu.Unlock()
				if _, seen := byID[s.ID]; !seen {
					order = append(order, s.ID)
				}
				byID[s.ID] = s
			})
			for _, id := range order {
				res.Sections = append(res.Sections, byID[id])
			}
			res.Err = err
			return nil
		})
	}

	_ = g.Wait()
	return results, ctx.Err()
}

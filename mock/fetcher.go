package mock

import (
	"context"

	"github.com/fwojciec/mangasrc"
)

var _ mangasrc.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of mangasrc.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, req *mangasrc.Request) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, req *mangasrc.Request) (string, error) {
	return f.FetchFn(ctx, req)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

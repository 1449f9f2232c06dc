package source

import (
	"context"

	"github.com/fwojciec/mangasrc"
)

// tier is a stage of the per-operation fallback machine.
type tier int

const (
	tierPrimary tier = iota
	tierFallback
	tierDone
)

// runTiers drives Primary -> Fallback -> Done. A primary error is terminal.
// An empty primary result advances to the fallback exactly once when one
// is configured; a non-empty primary result never does. A fallback error
// is returned when strict is set and otherwise leaves the primary result
// in place. It returns the result and the endpoint that produced it.
func runTiers[T any](
	ctx context.Context,
	op mangasrc.Operation,
	attempt func(ctx context.Context, ep *mangasrc.Endpoint) (T, error),
	empty func(T) bool,
	strict bool,
) (T, *mangasrc.Endpoint, error) {
	var zero T
	if op.Primary == nil {
		return zero, nil, mangasrc.Errorf(mangasrc.EINVALID, "no primary endpoint configured")
	}

	var (
		result T
		last   *mangasrc.Endpoint
	)
	for state := tierPrimary; state != tierDone; {
		switch state {
		case tierPrimary:
			r, err := attempt(ctx, op.Primary)
			if err != nil {
				return zero, op.Primary, err
			}
			result, last = r, op.Primary
			state = tierDone
			if empty(r) && op.Fallback != nil {
				state = tierFallback
			}
		case tierFallback:
			state = tierDone
			r, err := attempt(ctx, op.Fallback)
			if err != nil {
				if strict {
					return zero, op.Fallback, err
				}
				continue
			}
			result, last = r, op.Fallback
		}
	}
	return result, last, nil
}

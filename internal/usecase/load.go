package usecase

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// loadAll runs independent fetches concurrently and waits for all of them.
// The caller's ctx is checked afterwards so results are never applied for a
// request that has gone away.
func loadAll(ctx context.Context, fetches ...func(context.Context) error) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, fetch := range fetches {
		fetch := fetch
		g.Go(func() error { return fetch(gctx) })
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

package services

import (
	"context"

	"logisticshub/internal/cache"
	intconfig "logisticshub/internal/config"
)

const (
	tableClients = "clients"
	tableRoutes  = "routes"
	tableDrivers = "drivers"
	tableTrucks  = "trucks"
	tableTariffs = "tariffs"
)

func storeOr(s cache.Store) cache.Store {
	if s != nil {
		return s
	}
	return cache.Default()
}

// readThrough serves table from the cache and falls back to load on a miss or
// on any cache failure. The loaded rows are stored only if no invalidation
// happened since the version was read.
func readThrough[T any](ctx context.Context, store cache.Store, table string, load func(context.Context) ([]T, error)) ([]T, error) {
	version, verr := store.Version(ctx, table)
	if verr != nil {
		intconfig.LogError("cache", "readThrough", "version "+table, nil, verr)
	}

	var out []T
	found, err := store.Get(ctx, table, &out)
	if err != nil {
		intconfig.LogError("cache", "readThrough", "get "+table, nil, err)
	}
	if err == nil && found {
		return out, nil
	}

	out, err = load(ctx)
	if err != nil {
		return nil, err
	}
	if verr != nil {
		return out, nil
	}
	if err := store.Set(ctx, table, version, out); err != nil {
		intconfig.LogError("cache", "readThrough", "set "+table, nil, err)
	}
	return out, nil
}

func invalidate(ctx context.Context, store cache.Store, tables ...string) {
	if err := store.Invalidate(ctx, tables...); err != nil {
		intconfig.LogError("cache", "invalidate", "", tables, err)
	}
}

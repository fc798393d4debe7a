// Package cache is the read-through cache for master-data lists. Entries are
// keyed by table name and dropped synchronously whenever the table is written.
// Every invalidation bumps a per-table version; a Set carrying an older
// version is discarded so a slow load cannot resurrect a superseded snapshot.
package cache

import (
	"context"
	"sync"
)

type Store interface {
	// Get decodes the cached value for table into dst. found is false on a miss.
	Get(ctx context.Context, table string, dst any) (found bool, err error)
	// Version returns the current invalidation counter of table.
	Version(ctx context.Context, table string) (int64, error)
	// Set stores v only if table is still at version.
	Set(ctx context.Context, table string, version int64, v any) error
	// Invalidate drops the entries and bumps their versions.
	Invalidate(ctx context.Context, tables ...string) error
}

const (
	keyPrefix     = "logisticshub:table:"
	versionPrefix = "logisticshub:version:"
)

func key(table string) string        { return keyPrefix + table }
func versionKey(table string) string { return versionPrefix + table }

var (
	defaultMu    sync.RWMutex
	defaultStore Store = Noop{}
)

// SetDefault installs the process-wide store used when a service has none.
func SetDefault(s Store) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if s == nil {
		s = Noop{}
	}
	defaultStore = s
}

func Default() Store {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultStore
}

// Noop never hits.
type Noop struct{}

func (Noop) Get(context.Context, string, any) (bool, error) { return false, nil }
func (Noop) Version(context.Context, string) (int64, error) { return 0, nil }
func (Noop) Set(context.Context, string, int64, any) error { return nil }
func (Noop) Invalidate(context.Context, ...string) error { return nil }

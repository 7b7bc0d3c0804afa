package seed

import (
	"context"
	"fmt"
	"time"

	"manifest/internal/models"
)

// Store is the persistent catalog a seed is written to.
type Store interface {
	Replace(ctx context.Context, ds models.Dataset) error
	Load(ctx context.Context) (models.Dataset, error)
}

// Catalog refreshes a store from its seed source on every load. Without a
// seed file the demo data is rebuilt relative to the current time, so its
// dates never go stale across restarts, resets or day changes.
type Catalog struct {
	store Store
	file  string
	now   func() time.Time
}

// NewCatalog returns a catalog backed by store. file may be empty.
func NewCatalog(store Store, file string, now func() time.Time) *Catalog {
	if now == nil {
		now = time.Now
	}
	return &Catalog{store: store, file: file, now: now}
}

// Load rebuilds the seed, replaces the store content with it and reads it back.
func (c *Catalog) Load(ctx context.Context) (models.Dataset, error) {
	ds, err := c.build()
	if err != nil {
		return models.Dataset{}, err
	}
	if err := c.store.Replace(ctx, ds); err != nil {
		return models.Dataset{}, fmt.Errorf("store seed: %w", err)
	}
	return c.store.Load(ctx)
}

func (c *Catalog) build() (models.Dataset, error) {
	if c.file == "" {
		return Mock(c.now()), nil
	}
	return LoadFile(c.file)
}

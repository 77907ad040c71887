// Package memstore provides the in-memory, process-lifetime video
// catalog. There is no persistence: the catalog starts empty (plus any
// seed records) and is wiped on restart.
package memstore

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/otto-sketch/video-player-1/internal/domain/model"
	"github.com/otto-sketch/video-player-1/internal/domain/repository"
)

// Catalog implements repository.VideoCatalog over a mutex-guarded map.
// Insertion order is tracked separately so List can return records
// newest first without sorting.
type Catalog struct {
	mu      sync.RWMutex
	records map[uuid.UUID]*model.VideoRecord
	order   []uuid.UUID // oldest first
}

// Compile-time verification that Catalog implements repository.VideoCatalog.
var _ repository.VideoCatalog = (*Catalog)(nil)

// NewCatalog creates an empty catalog, optionally pre-populated with
// seed records.
func NewCatalog(seed ...*model.VideoRecord) *Catalog {
	c := &Catalog{
		records: make(map[uuid.UUID]*model.VideoRecord),
	}
	for _, rec := range seed {
		cp := *rec
		c.records[cp.ID] = &cp
		c.order = append(c.order, cp.ID)
	}
	return c
}

// Insert adds a new record to the catalog.
func (c *Catalog) Insert(ctx context.Context, record *model.VideoRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.records[record.ID]; exists {
		return repository.ErrDuplicateVideo
	}

	// Store a copy so callers cannot mutate catalog state afterwards.
	cp := *record
	c.records[cp.ID] = &cp
	c.order = append(c.order, cp.ID)
	return nil
}

// Get retrieves a record by ID.
func (c *Catalog) Get(ctx context.Context, id uuid.UUID) (*model.VideoRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, ok := c.records[id]
	if !ok {
		return nil, repository.ErrVideoNotFound
	}
	cp := *rec
	return &cp, nil
}

// Remove deletes a record by ID and returns the removed record.
func (c *Catalog) Remove(ctx context.Context, id uuid.UUID) (*model.VideoRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.records[id]
	if !ok {
		return nil, repository.ErrVideoNotFound
	}

	delete(c.records, id)
	c.dropFromOrder(id)

	cp := *rec
	return &cp, nil
}

// List returns all records, newest first.
func (c *Catalog) List(ctx context.Context) ([]*model.VideoRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]*model.VideoRecord, 0, len(c.order))
	for i := len(c.order) - 1; i >= 0; i-- {
		cp := *c.records[c.order[i]]
		out = append(out, &cp)
	}
	return out, nil
}

// Clear removes every non-protected record and returns the removed set.
func (c *Catalog) Clear(ctx context.Context) ([]*model.VideoRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var removed []*model.VideoRecord
	kept := c.order[:0]
	for _, id := range c.order {
		rec := c.records[id]
		if rec.Protected {
			kept = append(kept, id)
			continue
		}
		delete(c.records, id)
		cp := *rec
		removed = append(removed, &cp)
	}
	c.order = kept
	return removed, nil
}

// dropFromOrder removes one ID from the order slice. Caller holds the
// write lock.
func (c *Catalog) dropFromOrder(id uuid.UUID) {
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

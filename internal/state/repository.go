// Package state is the entity-state core of the adoption service. It owns
// every domain entity, keeps the in-memory view consistent with the durable
// store, enforces cascade invariants on delete, drives the adoption request
// lifecycle and answers catalog queries and credential checks.
//
// The State facade serializes access: repositories and the other components
// in this package do no locking of their own.
package state

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/furrybuddy/service-adoption/internal/domain"
	"github.com/furrybuddy/service-adoption/internal/store"
)

// Entity is implemented by every domain entity managed by a repository.
type Entity interface {
	EntityID() uuid.UUID
	SetEntityID(id uuid.UUID)
}

// Repository is the keyed storage for one entity type: an in-memory cache
// mirrored to one durable table. Every mutation persists to the store and
// updates the cache as a single unit of work; the cache is only touched after
// the store commit succeeds.
type Repository[T Entity] struct {
	name  string
	table store.Table
	store store.Store
	newFn func() T
	cache map[uuid.UUID]T
}

// NewRepository creates a repository for one entity type. name is the entity
// name used in error messages; newFn allocates a zero entity for decoding.
func NewRepository[T Entity](name string, table store.Table, st store.Store, newFn func() T) *Repository[T] {
	return &Repository[T]{
		name:  name,
		table: table,
		store: st,
		newFn: newFn,
		cache: make(map[uuid.UUID]T),
	}
}

// Add stores a new entity. An entity without an identifier gets a generated
// one; an entity whose identifier is already occupied fails with a duplicate
// error and no state change.
func (r *Repository[T]) Add(ctx context.Context, e T) (T, error) {
	var zero T
	if e.EntityID() == uuid.Nil {
		e.SetEntityID(uuid.New())
	}
	id := e.EntityID()
	if _, exists := r.cache[id]; exists {
		return zero, domain.NewDuplicateError(r.name, id.String())
	}

	data, err := json.Marshal(e)
	if err != nil {
		return zero, fmt.Errorf("failed to encode %s: %w", r.name, err)
	}
	err = r.store.RunInTx(ctx, func(tx store.Tx) error {
		return tx.Insert(r.table, id, data)
	})
	if err != nil {
		return zero, fmt.Errorf("failed to persist %s: %w", r.name, err)
	}

	r.cache[id] = e
	return e, nil
}

// Get returns the entity with the given identifier.
func (r *Repository[T]) Get(id uuid.UUID) (T, error) {
	e, ok := r.cache[id]
	if !ok {
		var zero T
		return zero, domain.NewNotFoundError(r.name, id.String())
	}
	return e, nil
}

// Has reports whether an entity with the given identifier exists.
func (r *Repository[T]) Has(id uuid.UUID) bool {
	_, ok := r.cache[id]
	return ok
}

// GetAll returns every entity in ascending identifier order. An empty
// repository is reported as a not-found failure; callers treat an empty
// collection as an error condition.
func (r *Repository[T]) GetAll() ([]T, error) {
	if len(r.cache) == 0 {
		return nil, domain.NewEmptyError(r.name)
	}
	return r.all(), nil
}

// all returns the cache contents in ascending identifier order.
func (r *Repository[T]) all() []T {
	out := make([]T, 0, len(r.cache))
	for _, e := range r.cache {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].EntityID(), out[j].EntityID()
		return bytes.Compare(a[:], b[:]) < 0
	})
	return out
}

// Update replaces all fields of the stored entity with v, keeping the
// identifier. Returns false without error when the identifier is absent.
func (r *Repository[T]) Update(ctx context.Context, id uuid.UUID, v T) (bool, error) {
	if _, ok := r.cache[id]; !ok {
		return false, nil
	}
	v.SetEntityID(id)

	data, err := json.Marshal(v)
	if err != nil {
		return false, fmt.Errorf("failed to encode %s: %w", r.name, err)
	}
	err = r.store.RunInTx(ctx, func(tx store.Tx) error {
		return tx.Update(r.table, id, data)
	})
	if err != nil {
		return false, fmt.Errorf("failed to persist %s update: %w", r.name, err)
	}

	r.cache[id] = v
	return true, nil
}

// Remove deletes the entity with the given identifier. Returns false without
// error when the identifier is absent. Cascading deletes for owners and
// adopters go through the Coordinator instead.
func (r *Repository[T]) Remove(ctx context.Context, id uuid.UUID) (bool, error) {
	if _, ok := r.cache[id]; !ok {
		return false, nil
	}
	err := r.store.RunInTx(ctx, func(tx store.Tx) error {
		return tx.Delete(r.table, id)
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete %s: %w", r.name, err)
	}
	delete(r.cache, id)
	return true, nil
}

// Rehydrate replaces the cache with the durable table's contents.
func (r *Repository[T]) Rehydrate(ctx context.Context) error {
	rows, err := r.store.LoadAll(ctx, r.table)
	if err != nil {
		return fmt.Errorf("failed to rehydrate %s: %w", r.name, err)
	}
	cache := make(map[uuid.UUID]T, len(rows))
	for _, row := range rows {
		e := r.newFn()
		if err := json.Unmarshal(row.Data, e); err != nil {
			return fmt.Errorf("failed to decode %s row %s: %w", r.name, row.ID, err)
		}
		e.SetEntityID(row.ID)
		cache[row.ID] = e
	}
	r.cache = cache
	return nil
}

// Len returns the number of cached entities.
func (r *Repository[T]) Len() int {
	return len(r.cache)
}

// reset empties the cache. The caller is responsible for truncating the
// durable table in the same operation.
func (r *Repository[T]) reset() {
	r.cache = make(map[uuid.UUID]T)
}

// encode marshals an entity for use inside a multi-entity transaction.
func (r *Repository[T]) encode(e T) ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", r.name, err)
	}
	return data, nil
}

// Package store provides the durable keyed store backing the in-memory
// entity state. Entities are persisted as one JSON row per identifier, one
// table per entity type. The store is the system of record; the in-memory
// cache is a derived view rebuilt from it at startup.
package store

import (
	"context"

	"github.com/google/uuid"
)

// Table names one durable table, one per entity type.
type Table string

const (
	TablePets             Table = "pets"
	TablePetOwners        Table = "pet_owners"
	TableAdopters         Table = "adopters"
	TableAdvertisements   Table = "advertisements"
	TableAdoptionRequests Table = "adoption_requests"
)

// AllTables lists every table in a stable order.
func AllTables() []Table {
	return []Table{
		TablePets,
		TablePetOwners,
		TableAdopters,
		TableAdvertisements,
		TableAdoptionRequests,
	}
}

// Row is one persisted entity: its identifier and JSON payload.
type Row struct {
	ID   uuid.UUID
	Data []byte
}

// Tx is the write surface available inside a unit of work. All writes issued
// through a Tx commit together or not at all.
type Tx interface {
	Insert(table Table, id uuid.UUID, data []byte) error
	Update(table Table, id uuid.UUID, data []byte) error
	Delete(table Table, id uuid.UUID) error
	// Truncate empties the given tables. Referential checks are suspended
	// for the duration so tables can be cleared in any order.
	Truncate(tables ...Table) error
}

// Store is the durable store contract. Implementations: postgres (gorm),
// sqlite (embedded) and memory (tests).
type Store interface {
	// LoadAll returns every row of a table, used for startup rehydration.
	LoadAll(ctx context.Context, table Table) ([]Row, error)

	// RunInTx executes fn inside a single transaction. If fn returns an
	// error the transaction is rolled back and the error is returned.
	RunInTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
}

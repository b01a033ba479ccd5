package store

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store used by unit tests. Writes staged inside
// a transaction are applied to the backing maps only when the function
// returns nil, so a failed transaction leaves the store untouched. A commit
// failure can be injected to exercise rollback paths.
type MemoryStore struct {
	mu     sync.Mutex
	tables map[Table]map[uuid.UUID][]byte

	failNext error
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	tables := make(map[Table]map[uuid.UUID][]byte, len(AllTables()))
	for _, t := range AllTables() {
		tables[t] = make(map[uuid.UUID][]byte)
	}
	return &MemoryStore{tables: tables}
}

// FailNextCommit makes the next transaction fail with err at commit time,
// after the transaction function has run.
func (s *MemoryStore) FailNextCommit(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = err
}

// LoadAll returns every row of a table.
func (s *MemoryStore) LoadAll(_ context.Context, table Table) ([]Row, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows := make([]Row, 0, len(s.tables[table]))
	for id, data := range s.tables[table] {
		rows = append(rows, Row{ID: id, Data: data})
	}
	return rows, nil
}

// RunInTx stages writes and applies them atomically when fn succeeds.
func (s *MemoryStore) RunInTx(_ context.Context, fn func(tx Tx) error) error {
	tx := &memoryTx{}
	if err := fn(tx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failNext != nil {
		err := s.failNext
		s.failNext = nil
		return err
	}
	for _, op := range tx.ops {
		op(s.tables)
	}
	return nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error { return nil }

// Count returns the number of rows in a table, for test assertions.
func (s *MemoryStore) Count(table Table) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tables[table])
}

type memoryTx struct {
	ops []func(tables map[Table]map[uuid.UUID][]byte)
}

func (t *memoryTx) Insert(table Table, id uuid.UUID, data []byte) error {
	t.ops = append(t.ops, func(tables map[Table]map[uuid.UUID][]byte) {
		tables[table][id] = data
	})
	return nil
}

func (t *memoryTx) Update(table Table, id uuid.UUID, data []byte) error {
	t.ops = append(t.ops, func(tables map[Table]map[uuid.UUID][]byte) {
		tables[table][id] = data
	})
	return nil
}

func (t *memoryTx) Delete(table Table, id uuid.UUID) error {
	t.ops = append(t.ops, func(tables map[Table]map[uuid.UUID][]byte) {
		delete(tables[table], id)
	})
	return nil
}

func (t *memoryTx) Truncate(tables ...Table) error {
	t.ops = append(t.ops, func(m map[Table]map[uuid.UUID][]byte) {
		for _, table := range tables {
			m[table] = make(map[uuid.UUID][]byte)
		}
	})
	return nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SQLiteStore is an embedded durable store for single-node and development
// deployments. Same row layout as the postgres store: one (id, data) table
// per entity type.
type SQLiteStore struct {
	db  *sql.DB
	log *zap.Logger
}

// OpenSQLite opens (creating if needed) a SQLite database at path and
// ensures the entity tables exist. Use ":memory:" for an ephemeral store.
func OpenSQLite(path string, log *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// modernc.org/sqlite serializes access per connection; a single
	// connection avoids table-lock errors under concurrent writers.
	db.SetMaxOpenConns(1)

	for _, table := range AllTables() {
		stmt := fmt.Sprintf(
			`CREATE TABLE IF NOT EXISTS %s (id TEXT PRIMARY KEY, data BLOB NOT NULL)`, table)
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("failed to create table %s: %w", table, err)
		}
	}

	log.Info("opened sqlite store", zap.String("path", path))
	return &SQLiteStore{db: db, log: log}, nil
}

// LoadAll returns every row of a table in ascending identifier order.
func (s *SQLiteStore) LoadAll(ctx context.Context, table Table) ([]Row, error) {
	rows, err := s.db.QueryContext(ctx, fmt.Sprintf(`SELECT id, data FROM %s ORDER BY id`, table))
	if err != nil {
		return nil, fmt.Errorf("failed to load table %s: %w", table, err)
	}
	defer func() { _ = rows.Close() }()

	var out []Row
	for rows.Next() {
		var idText string
		var data []byte
		if err := rows.Scan(&idText, &data); err != nil {
			return nil, fmt.Errorf("failed to scan row from %s: %w", table, err)
		}
		id, err := uuid.Parse(idText)
		if err != nil {
			return nil, fmt.Errorf("corrupt identifier in %s: %w", table, err)
		}
		out = append(out, Row{ID: id, Data: data})
	}
	return out, rows.Err()
}

// RunInTx executes fn inside one database transaction.
func (s *SQLiteStore) RunInTx(ctx context.Context, fn func(tx Tx) error) (retErr error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	if err := fn(&sqliteTx{tx: tx}); err != nil {
		retErr = err
		return retErr
	}
	if err := tx.Commit(); err != nil {
		retErr = fmt.Errorf("failed to commit transaction: %w", err)
	}
	return retErr
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type sqliteTx struct {
	tx *sql.Tx
}

func (t *sqliteTx) Insert(table Table, id uuid.UUID, data []byte) error {
	_, err := t.tx.Exec(fmt.Sprintf(`INSERT INTO %s (id, data) VALUES (?, ?)`, table), id.String(), data)
	if err != nil {
		return fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return nil
}

func (t *sqliteTx) Update(table Table, id uuid.UUID, data []byte) error {
	res, err := t.tx.Exec(fmt.Sprintf(`UPDATE %s SET data = ? WHERE id = ?`, table), data, id.String())
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", table, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("no row with id %s in %s", id, table)
	}
	return nil
}

func (t *sqliteTx) Delete(table Table, id uuid.UUID) error {
	_, err := t.tx.Exec(fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table), id.String())
	if err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return nil
}

// Truncate deletes every row of the given tables. The JSON-row layout carries
// no foreign keys at the SQL level, so no constraint suspension is needed.
func (t *sqliteTx) Truncate(tables ...Table) error {
	for _, table := range tables {
		if _, err := t.tx.Exec(fmt.Sprintf(`DELETE FROM %s`, table)); err != nil {
			return fmt.Errorf("failed to truncate %s: %w", table, err)
		}
	}
	return nil
}

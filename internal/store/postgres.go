package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// entityRow is the GORM model shared by every entity table: a UUID key and a
// JSON payload. The table is selected per call with Table().
type entityRow struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Data []byte    `gorm:"type:jsonb;not null"`
}

// PostgresConfig holds connection settings for the postgres store.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// DSN renders the config as a GORM postgres DSN.
func (c PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// PostgresStore is the production durable store backed by PostgreSQL via GORM.
type PostgresStore struct {
	db  *gorm.DB
	log *zap.Logger
}

// OpenPostgres connects to PostgreSQL, verifies the connection and creates
// the entity tables if they do not exist.
func OpenPostgres(cfg PostgresConfig, log *zap.Logger) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access underlying connection: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	s := &PostgresStore{db: db, log: log}
	if err := s.migrate(); err != nil {
		return nil, err
	}

	log.Info("connected to postgres store",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.DBName),
	)
	return s, nil
}

// NewPostgresStore wraps an existing GORM handle, migrating the entity
// tables. Used by integration tests that manage their own connection.
func NewPostgresStore(db *gorm.DB, log *zap.Logger) (*PostgresStore, error) {
	s := &PostgresStore{db: db, log: log}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *PostgresStore) migrate() error {
	for _, table := range AllTables() {
		if err := s.db.Table(string(table)).AutoMigrate(&entityRow{}); err != nil {
			return fmt.Errorf("failed to migrate table %s: %w", table, err)
		}
	}
	return nil
}

// LoadAll returns every row of a table in ascending identifier order.
func (s *PostgresStore) LoadAll(ctx context.Context, table Table) ([]Row, error) {
	var models []entityRow
	if err := s.db.WithContext(ctx).Table(string(table)).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to load table %s: %w", table, err)
	}
	rows := make([]Row, len(models))
	for i, m := range models {
		rows[i] = Row{ID: m.ID, Data: m.Data}
	}
	return rows, nil
}

// RunInTx executes fn inside one database transaction.
func (s *PostgresStore) RunInTx(ctx context.Context, fn func(tx Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&postgresTx{db: tx})
	})
}

// Close releases the underlying connection pool.
func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

type postgresTx struct {
	db *gorm.DB
}

func (t *postgresTx) Insert(table Table, id uuid.UUID, data []byte) error {
	if err := t.db.Table(string(table)).Create(&entityRow{ID: id, Data: data}).Error; err != nil {
		return fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return nil
}

func (t *postgresTx) Update(table Table, id uuid.UUID, data []byte) error {
	result := t.db.Table(string(table)).Where("id = ?", id).UpdateColumn("data", data)
	if result.Error != nil {
		return fmt.Errorf("failed to update %s: %w", table, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no row with id %s in %s", id, table)
	}
	return nil
}

func (t *postgresTx) Delete(table Table, id uuid.UUID) error {
	if err := t.db.Table(string(table)).Where("id = ?", id).Delete(&entityRow{}).Error; err != nil {
		return fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return nil
}

// Truncate empties the given tables with foreign-key checks suspended for the
// session, then restores them.
func (t *postgresTx) Truncate(tables ...Table) error {
	names := make([]string, len(tables))
	for i, table := range tables {
		names[i] = string(table)
	}
	if err := t.db.Exec("SET LOCAL session_replication_role = replica").Error; err != nil {
		return fmt.Errorf("failed to suspend constraint checks: %w", err)
	}
	if err := t.db.Exec("TRUNCATE TABLE " + strings.Join(names, ", ")).Error; err != nil {
		return fmt.Errorf("failed to truncate tables: %w", err)
	}
	return nil
}

package database

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds the connection settings for a Store.
type Config struct {
	Driver string
	DSN    string
	// Silent turns off GORM's own query logging.
	Silent bool
}

// Store owns the connection pool. It is created once by the caller, passed
// to the repositories that need it and closed by the same caller on
// shutdown.
type Store struct {
	db     *gorm.DB
	driver string

	mu      sync.RWMutex
	uniques map[string]string // "table.col[, table.col]" -> index name
}

// Open connects to the configured database and verifies the connection.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	case DriverSQLite:
		dialector = sqlite.Open(cfg.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	level := gormlogger.Warn
	if cfg.Silent {
		level = gormlogger.Silent
	}
	gormLog := log.With().Str("component", "gorm").Logger()

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.New(&gormLog, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get connection pool: %w", err)
	}

	if cfg.Driver == DriverSQLite {
		// One connection keeps in-memory databases and PRAGMAs alive for
		// the lifetime of the store.
		sqlDB.SetMaxOpenConns(1)
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", cfg.Driver, err)
	}

	return &Store{
		db:      db,
		driver:  cfg.Driver,
		uniques: make(map[string]string),
	}, nil
}

// DB returns the underlying GORM handle.
func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Driver() string {
	return s.driver
}

// Migrate creates or alters the tables of the given models and records
// their unique indexes for Classify.
func (s *Store) Migrate(models ...interface{}) error {
	if err := s.db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to auto-migrate: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, model := range models {
		stmt := &gorm.Statement{DB: s.db}
		if err := stmt.Parse(model); err != nil {
			return fmt.Errorf("failed to parse schema of %T: %w", model, err)
		}
		for _, idx := range stmt.Schema.ParseIndexes() {
			if idx.Class != "UNIQUE" {
				continue
			}
			cols := make([]string, 0, len(idx.Fields))
			for _, f := range idx.Fields {
				cols = append(cols, stmt.Schema.Table+"."+f.DBName)
			}
			s.uniques[strings.Join(cols, ", ")] = idx.Name
		}
	}
	return nil
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close drains the connection pool. The store must not be used afterwards.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get connection pool: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

func (s *Store) uniqueIndex(columns string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	name, ok := s.uniques[columns]
	return name, ok
}

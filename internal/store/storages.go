package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-task-tracker/internal/config"
	"github.com/MKhiriev/go-task-tracker/internal/logger"
)

// Storages groups the repositories handed to the service layer.
type Storages struct {
	UserRepository UserRepository
	TaskRepository TaskRepository

	db *DB
}

// NewStorages initialises the backend selected by cfg.DB.Driver:
//   - "pgx": opens PostgreSQL and runs migrations.
//   - "sqlite3": opens SQLite and runs migrations.
//   - "memory": process-local maps, lost on exit.
func NewStorages(ctx context.Context, cfg config.Storage, logger *logger.Logger) (*Storages, error) {
	logger.Info().Str("driver", cfg.DB.Driver).Msg("creating new storages...")

	var (
		db  *DB
		err error
	)

	switch cfg.DB.Driver {
	case config.DriverMemory:
		return NewMemoryStorages(logger), nil
	case config.DriverPostgres:
		db, err = NewConnectPostgres(ctx, cfg.DB, logger)
	case config.DriverSQLite:
		db, err = NewConnectSQLite(ctx, cfg.DB, logger)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.DB.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("%s connection error: %w", cfg.DB.Driver, err)
	}

	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return NewSQLStorages(db, logger), nil
}

// NewSQLStorages wires repositories to an open database.
func NewSQLStorages(db *DB, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository: NewUserRepository(db, logger),
		TaskRepository: NewTaskRepository(db, logger),
		db:             db,
	}
}

// NewMemoryStorages returns repositories sharing one in-memory database.
func NewMemoryStorages(logger *logger.Logger) *Storages {
	logger.Debug().Msg("creating in-memory repositories")

	mem := newMemoryDB()
	return &Storages{
		UserRepository: &memoryUserRepository{db: mem},
		TaskRepository: &memoryTaskRepository{db: mem},
	}
}

// Close releases the database pool, if any.
func (s *Storages) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

package storage

import (
	"context"

	"github.com/poiesic/compass/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close releases repository resources.
	Close() error
}

// RepairRepository journals the outcome of JSON recoveries.
type RepairRepository interface {
	Repository

	// SaveRepair validates and stores a repair record keyed by
	// core.IDFromContent(record.Raw). Saving raw text that is already
	// journaled replaces the outcome, keeps InsertedAt and increments Attempts.
	// Returns the record with ID, timestamps and attempt count populated.
	SaveRepair(ctx context.Context, record *core.RepairRecord) (*core.RepairRecord, error)

	// GetRepair retrieves a single repair record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetRepair(ctx context.Context, id core.ID) (*core.RepairRecord, error)

	// GetRecentRepairs retrieves up to limit records, most recently saved first.
	GetRecentRepairs(ctx context.Context, limit int) ([]*core.RepairRecord, error)

	// CountByStage reports how many journaled records each stage produced,
	// ordered by stage name.
	CountByStage(ctx context.Context) ([]core.StageCount, error)

	// DeleteRepairs removes repair records and their index entries.
	// Returns ErrNotFound if any record doesn't exist.
	DeleteRepairs(ctx context.Context, ids ...core.ID) error
}

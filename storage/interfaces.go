package storage

import (
	"context"

	"github.com/plantqa/qamatrix/core"
)

// Repository provides common storage operations shared by all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// MatrixRepository provides operations for managing QA matrix entries.
type MatrixRepository interface {
	Repository

	// AddEntries adds one or more matrix entries to storage.
	// For entries with SerialNo=0, generates new serials from a sequence.
	// Sets the UpdatedAt timestamp.
	// Returns the entries with generated serials populated.
	AddEntries(ctx context.Context, entries ...*core.MatrixEntry) ([]*core.MatrixEntry, error)

	// UpdateEntries updates existing matrix entries.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any entry doesn't exist.
	UpdateEntries(ctx context.Context, entries ...*core.MatrixEntry) ([]*core.MatrixEntry, error)

	// DeleteEntries removes matrix entries by their serial numbers.
	// Returns ErrNotFound if any entry doesn't exist.
	DeleteEntries(ctx context.Context, serials ...core.ConcernID) error

	// GetEntry retrieves a single matrix entry by serial number.
	// Returns ErrNotFound if the entry doesn't exist.
	GetEntry(ctx context.Context, serial core.ConcernID) (*core.MatrixEntry, error)

	// GetEntries retrieves multiple matrix entries by serial number.
	// Returns only the entries that exist (no error for missing entries).
	GetEntries(ctx context.Context, serials ...core.ConcernID) ([]*core.MatrixEntry, error)

	// ListEntries retrieves every matrix entry, ordered by serial number
	// ascending.
	ListEntries(ctx context.Context) ([]*core.MatrixEntry, error)
}

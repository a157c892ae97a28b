package storage

import (
	"context"

	"github.com/poiesic/hemeroteca/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close releases resources held by the repository.
	Close() error
}

// ItemRepository stores fetched items keyed by link.
type ItemRepository interface {
	Repository

	// PutItems stores items whose link is not stored yet.
	// Items with an already stored link are skipped.
	// Returns the number of items inserted.
	PutItems(ctx context.Context, items ...core.Item) (int, error)

	// GetItem retrieves an item by link.
	// Returns ErrNotFound if the item doesn't exist.
	GetItem(ctx context.Context, link string) (*core.Item, error)

	// ListItems returns every stored item.
	ListItems(ctx context.Context) ([]core.Item, error)

	// CountItems returns the number of stored items.
	CountItems(ctx context.Context) (int, error)
}

// FeedbackRepository stores rated items together with their embeddings.
type FeedbackRepository interface {
	Repository

	// PutFeedback validates and stores records, replacing any record
	// with the same item link.
	PutFeedback(ctx context.Context, records ...*core.FeedbackRecord) error

	// GetFeedback retrieves a record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetFeedback(ctx context.Context, id core.ID) (*core.FeedbackRecord, error)

	// ListFeedback returns every stored record, ordered by ID.
	ListFeedback(ctx context.Context) ([]*core.FeedbackRecord, error)

	// ListFeedbackAfter returns up to limit records with an ID greater
	// than after, ordered by ID. A zero after starts from the first record.
	ListFeedbackAfter(ctx context.Context, after core.ID, limit int) ([]*core.FeedbackRecord, error)

	// UpdateEmbeddings replaces the embeddings of a stored record.
	// Returns ErrNotFound if the record doesn't exist.
	UpdateEmbeddings(ctx context.Context, id core.ID, title, bow []float32) error

	// CountFeedback returns the number of stored records.
	CountFeedback(ctx context.Context) (int, error)
}

// CheckpointRepository persists progress of resumable jobs.
type CheckpointRepository interface {
	// SaveCheckpoint persists a checkpoint for a processor type.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// LoadCheckpoint retrieves the checkpoint for a processor type.
	// Returns nil, nil if no checkpoint exists.
	LoadCheckpoint(ctx context.Context, processorType string) (*core.Checkpoint, error)

	// DeleteCheckpoint removes the checkpoint for a processor type.
	DeleteCheckpoint(ctx context.Context, processorType string) error
}

package badger

import (
	"context"
	"errors"
	"slices"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/hemeroteca/core"
	"github.com/poiesic/hemeroteca/storage"
)

// FeedbackRepository implements storage.FeedbackRepository for BadgerDB.
type FeedbackRepository struct {
	backend *Backend
}

var _ storage.FeedbackRepository = (*FeedbackRepository)(nil)

// NewFeedbackRepository creates a new FeedbackRepository.
func NewFeedbackRepository(backend *Backend) *FeedbackRepository {
	return &FeedbackRepository{backend: backend}
}

// Close is a no-op; the backend owns the database.
func (r *FeedbackRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *FeedbackRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutFeedback validates and stores records, replacing records with the
// same link. Nothing is stored if any record is invalid.
func (r *FeedbackRepository) PutFeedback(ctx context.Context, records ...*core.FeedbackRecord) error {
	for _, record := range records {
		if err := core.ValidateFeedbackRecord(record); err != nil {
			return err
		}
	}

	return r.backend.update(ctx, func(tx *badger.Txn) error {
		for _, record := range records {
			if err := writeFeedback(tx, record); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetFeedback retrieves a record by ID.
func (r *FeedbackRepository) GetFeedback(ctx context.Context, id core.ID) (*core.FeedbackRecord, error) {
	var result *core.FeedbackRecord
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		var err error
		result, err = readFeedback(tx, makeFeedbackKey(id))
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	})
	return result, err
}

// ListFeedback returns every stored record, ordered by ID.
func (r *FeedbackRepository) ListFeedback(ctx context.Context) ([]*core.FeedbackRecord, error) {
	return r.ListFeedbackAfter(ctx, 0, 0)
}

// ListFeedbackAfter returns up to limit records with an ID greater than
// after. A limit below 1 returns every remaining record.
func (r *FeedbackRepository) ListFeedbackAfter(ctx context.Context, after core.ID, limit int) ([]*core.FeedbackRecord, error) {
	var results []*core.FeedbackRecord
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(feedbackPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		start := makeFeedbackKey(after)
		for iter.Seek(start); iter.Valid(); iter.Next() {
			if limit > 0 && len(results) >= limit {
				break
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			key := iter.Item().Key()
			if after != 0 && slices.Equal(key, start) {
				continue
			}

			var record *core.FeedbackRecord
			err := iter.Item().Value(func(val []byte) error {
				var err error
				record, err = storage.UnmarshalFeedbackRecord(val)
				return err
			})
			if err != nil {
				return err
			}
			results = append(results, record)
		}
		return nil
	})
	return results, err
}

// UpdateEmbeddings replaces the embeddings of a stored record.
func (r *FeedbackRepository) UpdateEmbeddings(ctx context.Context, id core.ID, title, bow []float32) error {
	return r.backend.update(ctx, func(tx *badger.Txn) error {
		record, err := readFeedback(tx, makeFeedbackKey(id))
		if err != nil {
			return err
		}
		if record == nil {
			return storage.ErrNotFound
		}

		record.TitleEmbedding = slices.Clone(title)
		record.BowEmbedding = slices.Clone(bow)
		if err := core.ValidateFeedbackRecord(record); err != nil {
			return err
		}
		return writeFeedback(tx, record)
	})
}

// CountFeedback returns the number of stored records.
func (r *FeedbackRepository) CountFeedback(ctx context.Context) (int, error) {
	return r.backend.countPrefix(ctx, []byte(feedbackPrefix))
}

func writeFeedback(tx *badger.Txn, record *core.FeedbackRecord) error {
	value, err := storage.MarshalFeedbackRecord(record)
	if err != nil {
		return err
	}
	return tx.Set(makeFeedbackKey(record.ID()), value)
}

// readFeedback reads a record, returning nil when the key is absent.
func readFeedback(tx *badger.Txn, key []byte) (*core.FeedbackRecord, error) {
	entry, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var record *core.FeedbackRecord
	err = entry.Value(func(val []byte) error {
		var err error
		record, err = storage.UnmarshalFeedbackRecord(val)
		return err
	})
	return record, err
}

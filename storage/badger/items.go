package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/hemeroteca/core"
	"github.com/poiesic/hemeroteca/storage"
)

// ItemRepository implements storage.ItemRepository for BadgerDB.
type ItemRepository struct {
	backend *Backend
}

var _ storage.ItemRepository = (*ItemRepository)(nil)

// NewItemRepository creates a new ItemRepository.
func NewItemRepository(backend *Backend) *ItemRepository {
	return &ItemRepository{backend: backend}
}

// Close is a no-op; the backend owns the database.
func (r *ItemRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *ItemRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// PutItems stores the items whose link is not stored yet.
func (r *ItemRepository) PutItems(ctx context.Context, items ...core.Item) (int, error) {
	inserted := 0
	err := r.backend.update(ctx, func(tx *badger.Txn) error {
		seen := make(map[core.ID]struct{}, len(items))
		for i := range items {
			item := &items[i]
			id := item.ID()
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}

			key := makeItemKey(id)
			if _, err := tx.Get(key); err == nil {
				r.backend.logger.Debug("item already stored", "link", item.Link)
				continue
			} else if !errors.Is(err, badger.ErrKeyNotFound) {
				return err
			}

			value, err := storage.MarshalItem(item)
			if err != nil {
				return err
			}
			if err := tx.Set(key, value); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}

// GetItem retrieves an item by link.
func (r *ItemRepository) GetItem(ctx context.Context, link string) (*core.Item, error) {
	var result *core.Item
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		var err error
		result, err = readItem(tx, makeItemKey(core.IDFromContent(link)))
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

// ListItems returns every stored item, ordered by ID.
func (r *ItemRepository) ListItems(ctx context.Context) ([]core.Item, error) {
	var results []core.Item
	err := r.backend.view(ctx, func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(itemPrefix)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			var item *core.Item
			err := iter.Item().Value(func(val []byte) error {
				var err error
				item, err = storage.UnmarshalItem(val)
				return err
			})
			if err != nil {
				return err
			}
			results = append(results, *item)
		}
		return nil
	})
	return results, err
}

// CountItems returns the number of stored items.
func (r *ItemRepository) CountItems(ctx context.Context) (int, error) {
	return r.backend.countPrefix(ctx, []byte(itemPrefix))
}

// readItem reads an item, returning nil when the key is absent.
func readItem(tx *badger.Txn, key []byte) (*core.Item, error) {
	entry, err := tx.Get(key)
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var item *core.Item
	err = entry.Value(func(val []byte) error {
		var err error
		item, err = storage.UnmarshalItem(val)
		return err
	})
	return item, err
}

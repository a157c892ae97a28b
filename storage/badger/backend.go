package badger

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/poiesic/hemeroteca/storage"
)

// Backend owns the BadgerDB handle shared by the item, feedback and
// checkpoint repositories.
type Backend struct {
	db     *badger.DB
	dir    string
	logger *slog.Logger
}

// slogSink routes BadgerDB's printf-style log lines to slog.
type slogSink struct {
	logger *slog.Logger
}

var _ badger.Logger = slogSink{}

func (s slogSink) log(level slog.Level, format string, args []any) {
	s.logger.Log(context.Background(), level, fmt.Sprintf(format, args...))
}

func (s slogSink) Errorf(format string, args ...any)   { s.log(slog.LevelError, format, args) }
func (s slogSink) Warningf(format string, args ...any) { s.log(slog.LevelWarn, format, args) }

// Badger is chatty at info level during compactions; keep it at debug.
func (s slogSink) Infof(format string, args ...any)  { s.log(slog.LevelDebug, format, args) }
func (s slogSink) Debugf(format string, args ...any) { s.log(slog.LevelDebug, format, args) }

// BackendOption configures a Backend.
type BackendOption func(*Backend)

// WithLogger sets the logger used by the backend and by BadgerDB itself.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) BackendOption {
	return func(b *Backend) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// OpenBackend opens the store kept in dir, creating the directory when
// needed. An empty dir opens a throwaway in-memory store.
func OpenBackend(dir string, opts ...BackendOption) (*Backend, error) {
	b := &Backend{dir: dir, logger: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}
	b.logger = b.logger.With("component", "badger")

	dbOpts := badger.DefaultOptions("").WithInMemory(true)
	if dir != "" {
		if err := ensureDir(dir); err != nil {
			return nil, err
		}
		dbOpts = badger.DefaultOptions(dir)
	}
	dbOpts = dbOpts.
		WithLogger(slogSink{logger: b.logger}).
		WithCompression(options.None)

	db, err := badger.Open(dbOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to open store at %q: %w", dir, err)
	}
	b.db = db
	b.logger.Debug("store opened", "dir", dir, "in_memory", dir == "")
	return b, nil
}

func ensureDir(dir string) error {
	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		return os.MkdirAll(dir, 0o755)
	case err != nil:
		return err
	case !info.IsDir():
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}

// Close closes the database. Repositories fail with
// storage.ErrStorageClosed afterwards.
func (b *Backend) Close() error {
	return b.db.Close()
}

func (b *Backend) IsClosed() bool {
	return b.db.IsClosed()
}

// Dir returns the directory the store lives in, or "" when in memory.
func (b *Backend) Dir() string {
	return b.dir
}

func (b *Backend) ready(ctx context.Context) error {
	if b.db.IsClosed() {
		return storage.ErrStorageClosed
	}
	return ctx.Err()
}

// view runs fn in a read-only transaction.
func (b *Backend) view(ctx context.Context, fn func(tx *badger.Txn) error) error {
	if err := b.ready(ctx); err != nil {
		return err
	}
	return b.db.View(fn)
}

// update runs fn in a read-write transaction committed when fn returns nil.
func (b *Backend) update(ctx context.Context, fn func(tx *badger.Txn) error) error {
	if err := b.ready(ctx); err != nil {
		return err
	}
	return b.db.Update(fn)
}

// WithTransaction runs fn inside a write transaction. Nothing is
// committed when fn fails.
func (b *Backend) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return b.update(ctx, func(*badger.Txn) error {
		return fn(ctx)
	})
}

// countPrefix counts the keys under prefix without reading values.
func (b *Backend) countPrefix(ctx context.Context, prefix []byte) (int, error) {
	count := 0
	err := b.view(ctx, func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = prefix
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

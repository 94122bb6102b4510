package cache

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteStore implements Store using SQLite for persistence. It is suitable
// for single-instance deployments; SQLite only supports a single writer, so
// the connection pool is capped at one connection.
//
// The store uses a write-ahead log (WAL) and periodic passive checkpoints to
// balance write performance with durability.
type SQLiteStore struct {
	db                 *sql.DB
	checkpointInterval time.Duration
	done               chan struct{}
	mu                 sync.RWMutex
	closeOnce          sync.Once

	getStmt    *sql.Stmt
	putStmt    *sql.Stmt
	deleteStmt *sql.Stmt
	pruneStmt  *sql.Stmt
	countStmt  *sql.Stmt
}

// SQLiteStoreConfig configures the SQLite store.
type SQLiteStoreConfig struct {
	// Path is the path to the SQLite database file.
	Path string

	// CheckpointInterval is how often to checkpoint the WAL.
	// Default: 5 minutes
	CheckpointInterval time.Duration

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// NewSQLiteStore opens or creates a SQLite-backed store with default settings.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	return NewSQLiteStoreWithConfig(SQLiteStoreConfig{Path: path})
}

// NewSQLiteStoreWithConfig opens or creates a SQLite-backed store.
func NewSQLiteStoreWithConfig(cfg SQLiteStoreConfig) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("cache path cannot be empty")
	}
	if cfg.CheckpointInterval == 0 {
		cfg.CheckpointInterval = 5 * time.Minute
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// The pool is capped at one connection, so PRAGMAs applied here stay in
	// effect for every later statement.
	pragmas := []string{
		fmt.Sprintf("PRAGMA busy_timeout = %d", cfg.BusyTimeout.Milliseconds()),
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	store := &SQLiteStore{
		db:                 db,
		checkpointInterval: cfg.CheckpointInterval,
		done:               make(chan struct{}),
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize cache schema: %w", err)
	}
	if err := store.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare cache statements: %w", err)
	}

	go store.checkpointLoop()

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS pages (
		key TEXT PRIMARY KEY,
		value BLOB NOT NULL,
		stored_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_pages_stored_at ON pages(stored_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.getStmt, err = s.db.Prepare(`SELECT value FROM pages WHERE key = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare get statement: %w", err)
	}

	s.putStmt, err = s.db.Prepare(`
		INSERT INTO pages (key, value, stored_at)
		VALUES (?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			stored_at = excluded.stored_at
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare put statement: %w", err)
	}

	s.deleteStmt, err = s.db.Prepare(`DELETE FROM pages WHERE key = ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare delete statement: %w", err)
	}

	s.pruneStmt, err = s.db.Prepare(`DELETE FROM pages WHERE stored_at < ?`)
	if err != nil {
		return fmt.Errorf("failed to prepare prune statement: %w", err)
	}

	s.countStmt, err = s.db.Prepare(`SELECT COUNT(*) FROM pages`)
	if err != nil {
		return fmt.Errorf("failed to prepare count statement: %w", err)
	}

	return nil
}

// Get returns the cached value for key.
func (s *SQLiteStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var value []byte
	err := s.getStmt.QueryRowContext(ctx, key).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache entry: %w", err)
	}
	return value, true, nil
}

// Put stores value under key.
func (s *SQLiteStore) Put(ctx context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.putStmt.ExecContext(ctx, key, value, time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	return nil
}

// Delete removes key.
func (s *SQLiteStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.deleteStmt.ExecContext(ctx, key); err != nil {
		return fmt.Errorf("failed to delete cache entry: %w", err)
	}
	return nil
}

// Prune removes entries stored before cutoff.
func (s *SQLiteStore) Prune(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.pruneStmt.ExecContext(ctx, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune cache: %w", err)
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(removed), nil
}

// Len returns the number of cached entries.
func (s *SQLiteStore) Len(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	if err := s.countStmt.QueryRowContext(ctx).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count cache entries: %w", err)
	}
	return count, nil
}

// Close releases the store's resources. Close is idempotent.
func (s *SQLiteStore) Close() error {
	var closeErr error

	s.closeOnce.Do(func() {
		close(s.done)

		for _, stmt := range []*sql.Stmt{s.getStmt, s.putStmt, s.deleteStmt, s.pruneStmt, s.countStmt} {
			if stmt != nil {
				stmt.Close()
			}
		}

		if s.db != nil {
			_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
			closeErr = s.db.Close()
		}
	})

	return closeErr
}

// checkpointLoop runs periodic WAL checkpoints.
func (s *SQLiteStore) checkpointLoop() {
	ticker := time.NewTicker(s.checkpointInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_, _ = s.db.Exec("PRAGMA wal_checkpoint(PASSIVE)")
		case <-s.done:
			return
		}
	}
}

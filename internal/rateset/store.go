package rateset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/gofrs/flock"
	_ "modernc.org/sqlite"

	"judder/internal/config"
	"judder/internal/framerate"
)

// ErrNotFound reports a rate that is not in the set.
var ErrNotFound = errors.New("rate not in set")

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
	lockRetryDelay          = 25 * time.Millisecond

	settingReference = "reference_fps"
)

// Store manages the rate set backed by SQLite.
type Store struct {
	db       *sql.DB
	path     string
	defaults []float64
}

// Open initializes or connects to the rate store described by cfg.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.RateStorePath()
	lock := flock.New(dbPath + ".lock")
	locked, err := lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("acquire rate store lock: %w", err)
	}
	if !locked {
		return nil, errors.New("acquire rate store lock: lock not obtained")
	}
	defer lock.Unlock()

	// Pragmas in the DSN apply to every pooled connection.
	dsn := "file:" + dbPath + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	store := &Store{db: db, path: dbPath, defaults: append([]float64(nil), cfg.Analysis.Rates...)}
	if err := store.initialize(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// initialize runs with the store lock held.
func (s *Store) initialize(ctx context.Context) error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS rates (
			rate_key INTEGER PRIMARY KEY,
			fps REAL NOT NULL,
			added_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}
	for _, stmt := range schema {
		if err := s.exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version > 0 {
		return nil
	}
	if err := s.seed(ctx); err != nil {
		return err
	}
	return s.exec(ctx, "PRAGMA user_version = 1")
}

func (s *Store) seed(ctx context.Context) error {
	for _, fps := range s.defaults {
		if err := s.insert(ctx, fps); err != nil {
			return fmt.Errorf("seed rates: %w", err)
		}
	}
	return nil
}

// List returns every rate in ascending order.
func (s *Store) List(ctx context.Context) ([]float64, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT fps FROM rates ORDER BY rate_key")
	if err != nil {
		return nil, fmt.Errorf("list rates: %w", err)
	}
	defer rows.Close()

	var rates []float64
	for rows.Next() {
		var fps float64
		if err := rows.Scan(&fps); err != nil {
			return nil, fmt.Errorf("scan rate: %w", err)
		}
		rates = append(rates, fps)
	}
	return rates, rows.Err()
}

// Add inserts fps into the set. Adding a rate already present is a no-op.
func (s *Store) Add(ctx context.Context, fps float64) error {
	if err := framerate.Validate(fps); err != nil {
		return err
	}
	return s.insert(ctx, fps)
}

// Remove deletes fps from the set. Removing the selected reference clears
// the selection.
func (s *Store) Remove(ctx context.Context, fps float64) error {
	res, err := s.execResult(ctx, "DELETE FROM rates WHERE rate_key = ?", rateKey(fps))
	if err != nil {
		return fmt.Errorf("remove rate: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove rate: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, framerate.Format(fps))
	}

	ref, ok, err := s.Reference(ctx)
	if err != nil {
		return err
	}
	if ok && rateKey(ref) == rateKey(fps) {
		return s.clearReference(ctx)
	}
	return nil
}

// Reset replaces the set with the configured defaults and clears the
// reference selection.
func (s *Store) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("reset rates: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, "DELETE FROM rates"); err != nil {
		return fmt.Errorf("reset rates: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM settings WHERE key = ?", settingReference); err != nil {
		return fmt.Errorf("reset rates: %w", err)
	}
	now := timestamp()
	for _, fps := range s.defaults {
		if _, err := tx.ExecContext(ctx, insertRate, rateKey(fps), fps, now); err != nil {
			return fmt.Errorf("reset rates: %w", err)
		}
	}
	return tx.Commit()
}

// Reference returns the selected reference rate, if any.
func (s *Store) Reference(ctx context.Context) (float64, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, "SELECT value FROM settings WHERE key = ?", settingReference).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read reference: %w", err)
	}
	fps, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false, fmt.Errorf("read reference: %w", err)
	}
	return fps, true, nil
}

// SetReference selects fps as the reference, adding it to the set if needed.
func (s *Store) SetReference(ctx context.Context, fps float64) error {
	if err := s.Add(ctx, fps); err != nil {
		return err
	}
	value := strconv.FormatFloat(fps, 'g', -1, 64)
	if err := s.exec(ctx, "INSERT INTO settings(key, value) VALUES(?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value", settingReference, value); err != nil {
		return fmt.Errorf("set reference: %w", err)
	}
	return nil
}

// ResolveReference returns the selected reference, or fallback when none is set.
func (s *Store) ResolveReference(ctx context.Context, fallback float64) (float64, error) {
	fps, ok, err := s.Reference(ctx)
	if err != nil {
		return 0, err
	}
	if !ok {
		return fallback, nil
	}
	return fps, nil
}

func (s *Store) clearReference(ctx context.Context) error {
	if err := s.exec(ctx, "DELETE FROM settings WHERE key = ?", settingReference); err != nil {
		return fmt.Errorf("clear reference: %w", err)
	}
	return nil
}

const insertRate = "INSERT INTO rates(rate_key, fps, added_at) VALUES(?, ?, ?) ON CONFLICT(rate_key) DO NOTHING"

func (s *Store) insert(ctx context.Context, fps float64) error {
	if err := s.exec(ctx, insertRate, rateKey(fps), fps, timestamp()); err != nil {
		return fmt.Errorf("add rate: %w", err)
	}
	return nil
}

func rateKey(fps float64) int64 {
	return int64(math.Round(fps * 1000))
}

func timestamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func (s *Store) exec(ctx context.Context, query string, args ...any) error {
	_, err := s.execResult(ctx, query, args...)
	return err
}

func (s *Store) execResult(ctx context.Context, query string, args ...any) (sql.Result, error) {
	var (
		res     sql.Result
		execErr error
	)
	if err := retryOnBusy(ctx, func() error {
		res, execErr = s.db.ExecContext(ctx, query, args...)
		return execErr
	}); err != nil {
		return nil, err
	}
	return res, nil
}

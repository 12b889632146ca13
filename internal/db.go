package internal

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// DB is the conversion history store.
type DB struct {
	*sqlx.DB
}

// NewDB creates and initializes a new in-memory history database. All
// operations run in-memory; use SaveToDisk/LoadFromDisk to persist or
// restore history across runs.
func NewDB() (*DB, error) {
	// Pin to a single connection — each :memory: connection is a separate
	// database, so connection pooling must be disabled. PRAGMAs are set via
	// the DSN so they apply automatically to reconnections.
	dsn := "file::memory:?_pragma=temp_store(2)&_pragma=journal_mode(off)&_pragma=synchronous(off)"
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	dbObj := &DB{DB: db}

	if err := dbObj.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	slog.Debug("history database initialized")

	return dbObj, nil
}

func (db *DB) initSchema() error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS conversions (
			fingerprint  text NOT NULL,
			family       text NOT NULL,
			from_format  text NOT NULL,
			to_format    text NOT NULL,
			curve        text,
			converted_at timestamp NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating conversions table: %w", err)
	}

	_, err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_conversions_fingerprint ON conversions (fingerprint);
	`)
	if err != nil {
		return fmt.Errorf("creating fingerprint index on conversions table: %w", err)
	}
	return nil
}

// InsertConversion records a completed conversion.
func (db *DB) InsertConversion(rec ConversionRecord) error {
	_, err := db.NamedExec(`
		INSERT INTO conversions (fingerprint, family, from_format, to_format, curve, converted_at)
		VALUES (:fingerprint, :family, :from_format, :to_format, :curve, :converted_at)
	`, rec)
	if err != nil {
		return fmt.Errorf("inserting conversion: %w", err)
	}
	return nil
}

// GetConversions returns all recorded conversions, most recent first.
func (db *DB) GetConversions() ([]ConversionRecord, error) {
	var recs []ConversionRecord
	err := db.Select(&recs, "SELECT * FROM conversions ORDER BY converted_at DESC")
	if err != nil {
		return nil, fmt.Errorf("getting conversions: %w", err)
	}
	return recs, nil
}

// GetConversionsByFingerprint returns the conversion history for one key.
func (db *DB) GetConversionsByFingerprint(fingerprint string) ([]ConversionRecord, error) {
	var recs []ConversionRecord
	err := db.Select(&recs, "SELECT * FROM conversions WHERE fingerprint = ? ORDER BY converted_at DESC", fingerprint)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("getting conversions by fingerprint: %w", err)
	}
	return recs, nil
}

// SaveToDisk writes the in-memory database to a file at the given path.
// Uses VACUUM INTO which produces a clean, compact copy in a single operation.
func (db *DB) SaveToDisk(path string) error {
	_, err := db.Exec("VACUUM INTO ?", path)
	if err != nil {
		return fmt.Errorf("saving database to %s: %w", path, err)
	}
	slog.Info("history saved to disk", "path", path)
	return nil
}

// LoadFromDisk loads conversion history from an on-disk database into the
// in-memory database. The file is read once and then detached.
func (db *DB) LoadFromDisk(path string) error {
	_, err := db.Exec("ATTACH DATABASE ? AS diskdb", path)
	if err != nil {
		return fmt.Errorf("attaching database %s: %w", path, err)
	}
	defer func() {
		if _, err := db.Exec("DETACH DATABASE diskdb"); err != nil {
			slog.Warn("detaching database", "path", path, "error", err)
		}
	}()

	_, err = db.Exec("INSERT INTO conversions SELECT * FROM diskdb.conversions")
	if err != nil {
		return fmt.Errorf("loading conversions from %s: %w", path, err)
	}

	slog.Info("history loaded from disk", "path", path)
	return nil
}

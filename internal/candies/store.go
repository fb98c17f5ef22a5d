package candies

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Store persists the processed-candy fingerprints between transpiler runs,
// in a small sqlite database inside the working directory. When the
// classpath's candies match the stored fingerprints, extraction is skipped.
type Store struct {
	db *sql.DB
}

const storeSchema = `
CREATE TABLE IF NOT EXISTS candies (
	name               TEXT PRIMARY KEY,
	version            TEXT NOT NULL,
	transpiler_version TEXT NOT NULL,
	signature          TEXT NOT NULL
);`

// OpenStore opens (creating if needed) the store at path.
func OpenStore(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening candy store: %w", err)
	}
	if _, err := db.Exec(storeSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing candy store: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Matches reports whether the stored state is exactly the given descriptor
// set: same candies, same versions, same archive fingerprints.
func (s *Store) Matches(descs []*Descriptor) (bool, error) {
	rows, err := s.db.Query(`SELECT name, version, transpiler_version, signature FROM candies`)
	if err != nil {
		return false, fmt.Errorf("reading candy store: %w", err)
	}
	defer rows.Close()

	stored := make(map[string]*Descriptor)
	for rows.Next() {
		var d Descriptor
		if err := rows.Scan(&d.Name, &d.Version, &d.TranspilerVersion, &d.Signature); err != nil {
			return false, fmt.Errorf("reading candy store: %w", err)
		}
		stored[d.Name] = &d
	}
	if err := rows.Err(); err != nil {
		return false, fmt.Errorf("reading candy store: %w", err)
	}

	if len(stored) != len(descs) {
		return false, nil
	}
	for _, d := range descs {
		got, ok := stored[d.Name]
		if !ok || got.Version != d.Version || got.TranspilerVersion != d.TranspilerVersion || got.Signature != d.Signature {
			return false, nil
		}
	}
	return true, nil
}

// Replace swaps the stored state for the given descriptor set.
func (s *Store) Replace(descs []*Descriptor) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("updating candy store: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM candies`); err != nil {
		return fmt.Errorf("updating candy store: %w", err)
	}
	for _, d := range descs {
		_, err := tx.Exec(
			`INSERT INTO candies (name, version, transpiler_version, signature) VALUES (?, ?, ?, ?)`,
			d.Name, d.Version, d.TranspilerVersion, d.Signature,
		)
		if err != nil {
			return fmt.Errorf("recording candy %s: %w", d.Name, err)
		}
	}
	return tx.Commit()
}

// Clear drops all stored state, forcing the next run to re-extract.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM candies`)
	return err
}

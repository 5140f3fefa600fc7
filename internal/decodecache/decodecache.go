// Package decodecache memoizes a rendered instruction's English text
// against (program version primary key, step), so a repeat decode of an
// unchanged program version skips parsing and rendering entirely.
// Backed by modernc.org/sqlite, a pure-Go sqlite3 driver requiring no
// cgo toolchain — the same constraint that makes it a natural fit for
// the bulk batch-decode path this cache exists for (SPEC_FULL.md §3).
package decodecache

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Cache wraps a sqlite-backed memoization table.
type Cache struct {
	db *sql.DB
}

// Open opens (creating if necessary) a cache database at path. Use
// ":memory:" for a process-local cache with no persistence.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("decodecache: opening %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("decodecache: applying schema: %w", err)
	}
	return &Cache{db: db}, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS rendered_steps (
	program_key TEXT NOT NULL,
	step        INTEGER NOT NULL,
	opcode      INTEGER NOT NULL,
	step_type   TEXT NOT NULL,
	english     TEXT NOT NULL,
	PRIMARY KEY (program_key, step)
);
`

// Close releases the underlying database handle.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Entry is one memoized step rendering.
type Entry struct {
	Step     int
	Opcode   int
	StepType string
	English  string
}

// Get returns the memoized entries for a program version, in step order,
// or (nil, false) if nothing has been cached for that key yet.
func (c *Cache) Get(programKey string) ([]Entry, bool, error) {
	rows, err := c.db.Query(
		`SELECT step, opcode, step_type, english FROM rendered_steps WHERE program_key = ? ORDER BY step`,
		programKey,
	)
	if err != nil {
		return nil, false, fmt.Errorf("decodecache: querying %s: %w", programKey, err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Step, &e.Opcode, &e.StepType, &e.English); err != nil {
			return nil, false, fmt.Errorf("decodecache: scanning row for %s: %w", programKey, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, false, err
	}
	return entries, len(entries) > 0, nil
}

// Put replaces the memoized entries for a program version in a single
// transaction.
func (c *Cache) Put(programKey string, entries []Entry) error {
	tx, err := c.db.Begin()
	if err != nil {
		return fmt.Errorf("decodecache: starting transaction for %s: %w", programKey, err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM rendered_steps WHERE program_key = ?`, programKey); err != nil {
		return fmt.Errorf("decodecache: clearing old entries for %s: %w", programKey, err)
	}

	stmt, err := tx.Prepare(
		`INSERT INTO rendered_steps (program_key, step, opcode, step_type, english) VALUES (?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("decodecache: preparing insert for %s: %w", programKey, err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if _, err := stmt.Exec(programKey, e.Step, e.Opcode, e.StepType, e.English); err != nil {
			return fmt.Errorf("decodecache: inserting step %d for %s: %w", e.Step, programKey, err)
		}
	}

	return tx.Commit()
}

// Copyright 2025 Texelview contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: apps/dbview/source.go
// Summary: SQLite row source for the table viewer. Reads rows in
// fixed-size batches behind a small LRU-ish cache so the list can ask
// for any row index without holding the whole table in memory.

package dbview

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	_ "modernc.org/sqlite"
)

const (
	demoTable = "entries"
	seedRows  = 500

	// maxCachedBatches bounds source memory; the oldest batch is
	// dropped when a new one would exceed it.
	maxCachedBatches = 8
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// tableSource pages a single SQLite table into memory batch by batch.
// Row values come back as display strings in rowid order, so a stable
// index maps to a stable row for the lifetime of the source.
type tableSource struct {
	db      *sql.DB
	table   string
	columns []string
	count   int
	batch   int

	mu    sync.Mutex
	cache map[int][][]string
	order []int
}

// openTableSource opens (and pings) the database and resolves the
// table's column list and row count. With seed set, a missing demo
// table is created and filled with generated rows; otherwise a missing
// table is an error.
func openTableSource(path, table string, batch int, seed bool) (*tableSource, error) {
	if !identRe.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	if batch <= 0 {
		batch = 256
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// Open with pragmas for performance and concurrency.
	dsn := path +
		"?_pragma=journal_mode(WAL)" +
		"&_pragma=synchronous(NORMAL)" +
		"&_pragma=cache_size(-8000)" +
		"&_pragma=temp_store(MEMORY)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	exists, err := tableExists(db, table)
	if err != nil {
		db.Close()
		return nil, err
	}
	if !exists {
		if !seed || table != demoTable {
			db.Close()
			return nil, fmt.Errorf("table %q not found in %s", table, path)
		}
		if err := seedDemo(db); err != nil {
			db.Close()
			return nil, err
		}
	}

	s := &tableSource{
		db:    db,
		table: table,
		batch: batch,
		cache: make(map[int][][]string),
	}
	if err := s.resolveColumns(); err != nil {
		db.Close()
		return nil, err
	}
	if err := s.resolveCount(); err != nil {
		db.Close()
		return nil, err
	}

	log.Printf("[dbview] opened %s: table %s, %d rows, %d columns", path, table, s.count, len(s.columns))
	return s, nil
}

func tableExists(db *sql.DB, table string) (bool, error) {
	var name string
	err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to inspect schema: %w", err)
	}
	return true, nil
}

const demoSchema = `
CREATE TABLE IF NOT EXISTS entries (
    id INTEGER PRIMARY KEY,
    name TEXT NOT NULL,
    category TEXT NOT NULL,
    score REAL NOT NULL
);
`

var (
	demoNames      = []string{"aurora", "basalt", "cirrus", "dunes", "ember", "fjord", "glacier", "harbor"}
	demoCategories = []string{"north", "east", "south", "west"}
)

// seedDemo creates the demo table and fills it inside one transaction.
func seedDemo(db *sql.DB) error {
	if _, err := db.Exec(demoSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	stmt, err := tx.Prepare("INSERT INTO entries (id, name, category, score) VALUES (?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to prepare seed insert: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < seedRows; i++ {
		name := fmt.Sprintf("%s-%03d", demoNames[i%len(demoNames)], i)
		cat := demoCategories[i%len(demoCategories)]
		score := float64(i%97) + float64(i%10)/10
		if _, err := stmt.Exec(i+1, name, cat, score); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to seed row %d: %w", i, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	log.Printf("[dbview] seeded demo table %s with %d rows", demoTable, seedRows)
	return nil
}

func (s *tableSource) resolveColumns() error {
	rows, err := s.db.Query(fmt.Sprintf("SELECT * FROM %s LIMIT 0", s.table))
	if err != nil {
		return fmt.Errorf("failed to read columns: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return fmt.Errorf("failed to read columns: %w", err)
	}
	if len(cols) == 0 {
		return fmt.Errorf("table %q has no columns", s.table)
	}
	s.columns = cols
	return nil
}

func (s *tableSource) resolveCount() error {
	if err := s.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", s.table)).Scan(&s.count); err != nil {
		return fmt.Errorf("failed to count rows: %w", err)
	}
	return nil
}

// Count returns the table's row count as of open time.
func (s *tableSource) Count() int { return s.count }

// Columns returns the table's column names in select order.
func (s *tableSource) Columns() []string { return s.columns }

// Row returns the values of row i (0-based, rowid order) as strings.
func (s *tableSource) Row(i int) ([]string, error) {
	if i < 0 || i >= s.count {
		return nil, fmt.Errorf("row %d out of range [0,%d)", i, s.count)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	start := i - i%s.batch
	batch, ok := s.cache[start]
	if !ok {
		var err error
		batch, err = s.loadBatchLocked(start)
		if err != nil {
			return nil, err
		}
	}

	idx := i - start
	if idx >= len(batch) {
		return nil, fmt.Errorf("row %d missing from storage", i)
	}
	return batch[idx], nil
}

func (s *tableSource) loadBatchLocked(start int) ([][]string, error) {
	q := fmt.Sprintf("SELECT %s FROM %s ORDER BY rowid LIMIT ? OFFSET ?",
		strings.Join(s.columns, ", "), s.table)
	rows, err := s.db.Query(q, s.batch, start)
	if err != nil {
		return nil, fmt.Errorf("failed to load rows at %d: %w", start, err)
	}
	defer rows.Close()

	var batch [][]string
	vals := make([]any, len(s.columns))
	ptrs := make([]any, len(s.columns))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		rec := make([]string, len(vals))
		for i, v := range vals {
			rec[i] = displayValue(v)
		}
		batch = append(batch, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rows at %d: %w", start, err)
	}

	if len(s.order) >= maxCachedBatches {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.cache, oldest)
	}
	s.cache[start] = batch
	s.order = append(s.order, start)
	return batch, nil
}

func displayValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(t)
	case string:
		return t
	default:
		return fmt.Sprint(t)
	}
}

// Close releases the underlying database handle.
func (s *tableSource) Close() error {
	return s.db.Close()
}

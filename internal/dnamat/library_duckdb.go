package dnamat

import (
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
)

// duckdbLibrary backs SeqLibrary with a DuckDB sequences(name, seq) table:
// one small in-memory store, one backed by a real store for larger
// libraries.
type duckdbLibrary struct {
	db *sql.DB
}

// OpenDuckDBLibrary opens the database at dsn as a sequence library.
func OpenDuckDBLibrary(dsn string) (*duckdbLibrary, error) {
	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("open duckdb sequence library: %w", err)
	}
	return &duckdbLibrary{db: db}, nil
}

func (l *duckdbLibrary) Close() error { return l.db.Close() }

func (l *duckdbLibrary) Get(name string) (string, bool) {
	row := l.db.QueryRow(`SELECT seq FROM sequences WHERE upper(name) = upper(?)`, name)
	var seq string
	if err := row.Scan(&seq); err != nil {
		return "", false
	}
	return strings.ToUpper(seq), true
}

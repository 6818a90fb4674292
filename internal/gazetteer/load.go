package gazetteer

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

// Reference column names, shared by the CSV header and the SQLite table.
const (
	colName        = "location_name"
	colType        = "location_type"
	colIslandGroup = "island_group"
)

//go:embed locations.csv
var defaultLocations string

// Default returns the gazetteer built from the embedded reference table of
// regions, provinces and major cities.
func Default() *Gazetteer {
	entries, err := ReadCSV(strings.NewReader(defaultLocations))
	if err != nil {
		panic(fmt.Sprintf("gazetteer: embedded table: %v", err))
	}
	return New(entries)
}

// Open loads a gazetteer from path. ".db", ".sqlite" and ".sqlite3" files are
// read as SQLite, anything else as CSV. An empty path yields Default.
func Open(ctx context.Context, path string) (*Gazetteer, error) {
	if path == "" {
		return Default(), nil
	}

	var (
		entries []Entry
		err     error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		entries, err = LoadSQLite(ctx, path)
	default:
		entries, err = LoadCSV(path)
	}
	if err != nil {
		return nil, err
	}
	return New(entries), nil
}

// LoadCSV reads reference rows from a CSV file with a header row.
func LoadCSV(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gazetteer csv: %w", err)
	}
	defer f.Close()
	return ReadCSV(f)
}

// ReadCSV reads reference rows. The header must name location_name; the
// type and island group columns are optional.
func ReadCSV(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read gazetteer header: %w", err)
	}
	idx := map[string]int{colName: -1, colType: -1, colIslandGroup: -1}
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, ok := idx[h]; ok {
			idx[h] = i
		}
	}
	if idx[colName] < 0 {
		return nil, fmt.Errorf("read gazetteer header: missing %s column", colName)
	}

	var entries []Entry
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read gazetteer row: %w", err)
		}
		entries = append(entries, Entry{
			Name:        column(row, idx[colName]),
			Type:        column(row, idx[colType]),
			IslandGroup: column(row, idx[colIslandGroup]),
		})
	}
	return entries, nil
}

func column(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// LoadSQLite reads reference rows from the locations table of an SQLite
// database, in rowid order.
func LoadSQLite(ctx context.Context, path string) ([]Entry, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open gazetteer db: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open gazetteer db: %w", err)
	}
	defer db.Close()
	return QueryEntries(ctx, db)
}

// QueryEntries reads every row of the locations table from db.
func QueryEntries(ctx context.Context, db *sql.DB) ([]Entry, error) {
	rows, err := db.QueryContext(ctx, `SELECT location_name,
		COALESCE(location_type, ''), COALESCE(island_group, '')
		FROM locations ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("query gazetteer: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Name, &e.Type, &e.IslandGroup); err != nil {
			return nil, fmt.Errorf("scan gazetteer row: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("query gazetteer: %w", err)
	}
	return entries, nil
}

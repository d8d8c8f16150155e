// Cinematch - Catalog Similarity Recommender Dashboard
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematch

package insights

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/duckdb/duckdb-go/v2" // registers the duckdb driver

	"github.com/tomtom215/cinematch/internal/catalog"
	"github.com/tomtom215/cinematch/internal/logging"
)

const (
	createTitlesSQL = `CREATE OR REPLACE TABLE titles (
		idx          INTEGER NOT NULL,
		type         VARCHAR NOT NULL,
		release_year INTEGER NOT NULL
	)`
	insertTitleSQL = `INSERT INTO titles (idx, type, release_year) VALUES (?, ?, ?)`
	typeCountsSQL  = `SELECT type, COUNT(*) AS n FROM titles GROUP BY type ORDER BY n DESC, type ASC`
	yearCountsSQL  = `SELECT release_year, COUNT(*) AS n FROM titles GROUP BY release_year ORDER BY release_year ASC`
)

// DuckDB aggregates with an in-memory DuckDB database.
type DuckDB struct {
	conn *sql.DB
}

// NewDuckDB opens an in-memory database with extension autoloading off.
func NewDuckDB() (*DuckDB, error) {
	conn, err := sql.Open("duckdb", ":memory:?autoinstall_known_extensions=false&autoload_known_extensions=false")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory duckdb: %w", err)
	}
	// One connection keeps every query on the same in-memory catalog.
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(createTitlesSQL); err != nil {
		closeQuietly(conn)
		return nil, fmt.Errorf("failed to create titles table: %w", err)
	}
	return &DuckDB{conn: conn}, nil
}

// Name implements Aggregator.
func (d *DuckDB) Name() string { return EngineDuckDB }

// Refresh replaces the table contents in one transaction.
func (d *DuckDB) Refresh(ctx context.Context, ds *catalog.Dataset) error {
	tx, err := d.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin refresh: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, createTitlesSQL); err != nil {
		return fmt.Errorf("recreate titles table: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, insertTitleSQL)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, it := range ds.Items() {
		if _, err := stmt.ExecContext(ctx, it.Index, it.Type, it.ReleaseYear); err != nil {
			return fmt.Errorf("insert row %d: %w", it.Index, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit refresh: %w", err)
	}

	logging.Debug().Int("rows", ds.Len()).Msg("insights table refreshed")
	return nil
}

// TypeCounts implements Aggregator.
func (d *DuckDB) TypeCounts(ctx context.Context) ([]TypeCount, error) {
	rows, err := d.conn.QueryContext(ctx, typeCountsSQL)
	if err != nil {
		return nil, fmt.Errorf("query type counts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []TypeCount{}
	for rows.Next() {
		var tc TypeCount
		if err := rows.Scan(&tc.Type, &tc.Count); err != nil {
			return nil, fmt.Errorf("scan type count: %w", err)
		}
		out = append(out, tc)
	}
	return out, rows.Err()
}

// YearCounts implements Aggregator.
func (d *DuckDB) YearCounts(ctx context.Context) ([]YearCount, error) {
	rows, err := d.conn.QueryContext(ctx, yearCountsSQL)
	if err != nil {
		return nil, fmt.Errorf("query year counts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := []YearCount{}
	for rows.Next() {
		var yc YearCount
		if err := rows.Scan(&yc.Year, &yc.Count); err != nil {
			return nil, fmt.Errorf("scan year count: %w", err)
		}
		out = append(out, yc)
	}
	return out, rows.Err()
}

// Close implements Aggregator.
func (d *DuckDB) Close() error {
	return d.conn.Close()
}

func closeQuietly(conn *sql.DB) {
	if err := conn.Close(); err != nil {
		logging.Warn().Err(err).Msg("failed to close duckdb connection")
	}
}

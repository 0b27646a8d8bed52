package db

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"
)

// DB wraps a read-only connection to a Kolibri content database
type DB struct {
	conn *sql.DB
	log  *logrus.Entry
	Path string
}

// OpenDB opens the SQLite database at path in read-only mode.
// The database is never written to; query_only guards against accidental writes.
func OpenDB(ctx context.Context, path string, log *logrus.Entry) (*DB, error) {
	conn, err := sql.Open("sqlite", readOnlyDSN(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// Single-threaded run; one connection keeps the pragma in effect for every query.
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}

	return New(conn, path, log), nil
}

// readOnlyDSN builds a file: URI for path. The path is percent-escaped so
// '%', '#' and '?' in directory names reach SQLite intact.
func readOnlyDSN(path string) string {
	return (&url.URL{
		Scheme:   "file",
		Path:     path,
		OmitHost: true,
		RawQuery: "mode=ro&_pragma=query_only(1)",
	}).String()
}

// New wraps an already open connection.
func New(conn *sql.DB, path string, log *logrus.Entry) *DB {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &DB{conn: conn, log: log.WithField("db", path), Path: path}
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.conn.Close()
}

package database

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	conn   *sql.DB
	driver string
	table  string
}

// tableNamePattern guards the table identifier interpolated into queries;
// placeholders cannot carry identifiers.
var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Open connects to the durable store. The sqlite path bootstraps its own
// table; postgres schemas are managed externally.
func Open(driver, dsn, table string) (*DB, error) {
	if !tableNamePattern.MatchString(table) {
		return nil, fmt.Errorf("invalid table name: %q", table)
	}

	var conn *sql.DB
	var err error

	switch driver {
	case "sqlite":
		conn, err = sql.Open("sqlite3", dsn)
	case "postgres":
		conn, err = sql.Open("pgx", dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", driver)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db := &DB{conn: conn, driver: driver, table: table}

	if driver == "sqlite" {
		if err := db.createTable(); err != nil {
			return nil, fmt.Errorf("failed to create tables: %w", err)
		}
	}

	return db, nil
}

func (db *DB) createTable() error {
	query := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		id TEXT PRIMARY KEY,
		vehicle_id INTEGER NOT NULL,
		vehicle_type TEXT NOT NULL,
		confidence REAL NOT NULL,
		speed REAL NOT NULL,
		weather TEXT,
		detected_at DATETIME NOT NULL
	);`, db.table)

	_, err := db.conn.Exec(query)
	return err
}

// rebind rewrites ? placeholders to $n for the postgres driver.
func (db *DB) rebind(query string) string {
	if db.driver != "postgres" {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) Conn() *sql.DB {
	return db.conn
}

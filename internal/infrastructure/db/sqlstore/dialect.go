package sqlstore

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Postgres error class 23: integrity constraint violation.
const pgUniqueViolation = "23505"

type dialect struct {
	name         string
	driverName   string
	maxOpenConns int
	schema       []string
	prepareDSN   func(dsn string) string
	// rebind rewrites "?" placeholders into the dialect's bind syntax.
	rebind            func(query string) string
	isUniqueViolation func(err error) bool
}

func dialectFor(driver string) (dialect, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", DriverPostgres, "postgresql", "pgx":
		return postgresDialect, nil
	case DriverSQLite, "sqlite3":
		return sqliteDialect, nil
	default:
		return dialect{}, fmt.Errorf("unsupported database driver %q", driver)
	}
}

var postgresDialect = dialect{
	name:       DriverPostgres,
	driverName: "pgx",
	schema: []string{
		`CREATE TABLE IF NOT EXISTS clients (
			client_id   SERIAL PRIMARY KEY,
			client_name VARCHAR(50) NOT NULL,
			email       VARCHAR(50) NOT NULL UNIQUE,
			created_at  TIMESTAMP NOT NULL DEFAULT (NOW() AT TIME ZONE 'utc')
		)`,
		`CREATE TABLE IF NOT EXISTS assets (
			asset_id    SERIAL PRIMARY KEY,
			client_id   INTEGER NOT NULL REFERENCES clients (client_id),
			asset_type  VARCHAR(50) NOT NULL,
			asset_value INTEGER NOT NULL,
			created_at  TIMESTAMP NOT NULL DEFAULT (NOW() AT TIME ZONE 'utc')
		)`,
		`CREATE INDEX IF NOT EXISTS ix_assets_client_id ON assets (client_id)`,
	},
	prepareDSN: func(dsn string) string { return dsn },
	rebind:     dollarPlaceholders,
	isUniqueViolation: func(err error) bool {
		var pgErr *pgconn.PgError
		return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
	},
}

var sqliteDialect = dialect{
	name:       DriverSQLite,
	driverName: "sqlite",
	// A single connection keeps ":memory:" databases shared across
	// transactions and the foreign_keys pragma in effect.
	maxOpenConns: 1,
	schema: []string{
		`CREATE TABLE IF NOT EXISTS clients (
			client_id   INTEGER PRIMARY KEY AUTOINCREMENT,
			client_name VARCHAR(50) NOT NULL,
			email       VARCHAR(50) NOT NULL UNIQUE,
			created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS assets (
			asset_id    INTEGER PRIMARY KEY AUTOINCREMENT,
			client_id   INTEGER NOT NULL REFERENCES clients (client_id),
			asset_type  VARCHAR(50) NOT NULL,
			asset_value INTEGER NOT NULL,
			created_at  TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS ix_assets_client_id ON assets (client_id)`,
	},
	prepareDSN: withForeignKeys,
	rebind:     func(query string) string { return query },
	isUniqueViolation: func(err error) bool {
		var sqliteErr *msqlite.Error
		if !errors.As(err, &sqliteErr) {
			return false
		}
		code := sqliteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	},
}

// withForeignKeys appends the pragma that turns on FK enforcement for every
// connection modernc opens.
func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

func dollarPlaceholders(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

package repository

import (
	"database/sql"
	"database/sql/driver"
	"embed"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	migrate "github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

//go:embed migrations/mysql/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

// NewDB opens a connection pool for the given driver ("mysql" or "sqlite")
// and brings the schema up to date.
func NewDB(driverName, dsn string) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if driverName == "sqlite" {
		// sqlite allows a single writer; more connections just contend,
		// and an in-memory database exists per connection.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db, driverName); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

func runMigrations(db *sql.DB, driverName string) error {
	src, err := iofs.New(migrationsFS, "migrations/"+driverName)
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	switch driverName {
	case "mysql":
		d, derr := migratemysql.WithInstance(db, &migratemysql.Config{})
		if derr != nil {
			return fmt.Errorf("create mysql migrate driver: %w", derr)
		}
		m, merr := migrate.NewWithInstance("iofs", src, "mysql", d)
		if merr != nil {
			return fmt.Errorf("create migrate instance: %w", merr)
		}
		err = m.Up()
	case "sqlite":
		d, derr := migratesqlite.WithInstance(db, &migratesqlite.Config{})
		if derr != nil {
			return fmt.Errorf("create sqlite migrate driver: %w", derr)
		}
		m, merr := migrate.NewWithInstance("iofs", src, "sqlite", d)
		if merr != nil {
			return fmt.Errorf("create migrate instance: %w", merr)
		}
		err = m.Up()
	default:
		return fmt.Errorf("unsupported driver %q", driverName)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

// IsUnavailable reports whether err indicates the store itself is
// unreachable, as opposed to a statement-level failure.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// isDuplicateErr reports whether err is a unique-constraint violation,
// for either supported driver.
func isDuplicateErr(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1062
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isForeignKeyErr reports whether err is a referential-integrity violation,
// for either supported driver.
func isForeignKeyErr(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == 1451 || mysqlErr.Number == 1452
	}
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// collectRows drains rows into a slice using the provided scan function.
// Shared by every list query so the loop and error handling live in one place.
func collectRows[T any](rows *sql.Rows, scan func(*sql.Rows) (T, error)) ([]T, error) {
	defer rows.Close()

	var items []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

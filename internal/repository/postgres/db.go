package postgres

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/pratik-mahalle/bizdesk/internal/config"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/errors"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/metrics"
)

// Supported drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DB is a database handle that knows its SQL dialect. Queries are written
// with ? placeholders and rebound for postgres.
type DB struct {
	*sql.DB
	driver string
}

// New creates a new database connection
func New(cfg config.DatabaseConfig) (*DB, error) {
	var db *sql.DB
	var err error

	switch cfg.Driver {
	case DriverSQLite:
		db, err = sql.Open("sqlite", cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}

		// Enable WAL mode for better concurrency
		if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
		if _, err := db.Exec("PRAGMA busy_timeout=5000;"); err != nil {
			return nil, fmt.Errorf("failed to set busy timeout: %w", err)
		}

		// SQLite only supports one writer at a time. The connection is
		// never recycled so in-memory databases survive.
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)

	case DriverPostgres:
		dsn := fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode,
		)

		db, err = sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres database: %w", err)
		}

		db.SetMaxOpenConns(cfg.MaxOpenConns)
		db.SetMaxIdleConns(cfg.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db, driver: cfg.Driver}, nil
}

// Wrap adopts an open *sql.DB
func Wrap(db *sql.DB, driver string) *DB {
	return &DB{DB: db, driver: driver}
}

// Driver returns the dialect name
func (db *DB) Driver() string {
	return db.driver
}

// Rebind converts ? placeholders to $n for postgres
func (db *DB) Rebind(query string) string {
	if db.driver != DriverPostgres {
		return query
	}
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

func (db *DB) exec(ctx context.Context, op, table, query string, args ...interface{}) (sql.Result, error) {
	defer observe(op, table, time.Now())
	return db.ExecContext(ctx, db.Rebind(query), args...)
}

func (db *DB) query(ctx context.Context, op, table, query string, args ...interface{}) (*sql.Rows, error) {
	defer observe(op, table, time.Now())
	return db.QueryContext(ctx, db.Rebind(query), args...)
}

func (db *DB) queryRow(ctx context.Context, op, table, query string, args ...interface{}) *sql.Row {
	defer observe(op, table, time.Now())
	return db.QueryRowContext(ctx, db.Rebind(query), args...)
}

// insert runs an INSERT and returns the generated id
func (db *DB) insert(ctx context.Context, table, query string, args ...interface{}) (int64, error) {
	var id int64
	err := db.queryRow(ctx, "insert", table, query+" RETURNING id", args...).Scan(&id)
	return id, err
}

func observe(op, table string, start time.Time) {
	metrics.RecordDBQuery(op, table, time.Since(start))
}

// Timestamps are stored as Unix microseconds so ordering is numeric on every driver.

func toMicros(t time.Time) int64 {
	return t.UnixMicro()
}

func fromMicros(us int64) time.Time {
	return time.UnixMicro(us).UTC()
}

func now() time.Time {
	return time.Now().UTC()
}

// isUniqueViolation reports whether err is a unique constraint failure on
// either driver
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func affectedOne(res sql.Result, resource string) error {
	rows, err := res.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound(resource)
	}
	return nil
}

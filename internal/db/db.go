package db

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

func init() {
	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		panic(err)
	}
}

// SetLogger routes migration output through l.
func SetLogger(l *zap.Logger) {
	if l == nil {
		goose.SetLogger(goose.NopLogger())
		return
	}
	goose.SetLogger(gooseLogger{l.Sugar().Named("migrate")})
}

type gooseLogger struct{ s *zap.SugaredLogger }

func (g gooseLogger) Printf(format string, v ...any) {
	g.s.Infof(strings.TrimSuffix(format, "\n"), v...)
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.s.Fatalf(strings.TrimSuffix(format, "\n"), v...)
}

// Open opens (or creates) a SQLite database and applies pending migrations.
// Migrations are goose files embedded from internal/db/migrations:
//
//	00001_name.sql with -- +goose Up / -- +goose Down sections
//
// Only new migrations are applied. Use RollbackLast to revert the last applied migration.
func Open(path string) (*sql.DB, error) {
	d, err := OpenNoMigrate(path)
	if err != nil {
		return nil, err
	}
	if err := goose.Up(d, migrationsDir); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return d, nil
}

// OpenNoMigrate opens the database with connection pragmas but leaves the schema alone.
func OpenNoMigrate(path string) (*sql.DB, error) {
	if path == "" {
		path = "floodfriend.db"
	}
	d, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := d.Ping(); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return d, nil
}

// dsn appends per-connection pragmas. Setting them through the DSN makes the
// driver apply them to every pooled connection, not only the first.
func dsn(path string) string {
	params := []string{"_foreign_keys=on", "_busy_timeout=5000"}
	// journal_mode is not meaningful for in-memory databases.
	if !strings.Contains(path, "mode=memory") && path != ":memory:" {
		params = append(params, "_journal_mode=WAL")
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	if !strings.HasPrefix(path, "file:") && path != ":memory:" {
		path = "file:" + path
	}
	return path + sep + strings.Join(params, "&")
}

// RollbackLast rolls back the most recently applied migration.
func RollbackLast(d *sql.DB) error {
	if d == nil {
		return errors.New("nil db")
	}
	if err := goose.Down(d, migrationsDir); err != nil {
		if errors.Is(err, goose.ErrNoCurrentVersion) || errors.Is(err, goose.ErrNoNextVersion) {
			return nil // nothing to rollback
		}
		return fmt.Errorf("rolling back: %w", err)
	}
	return nil
}

// Migrate applies pending migrations to an already open database.
func Migrate(d *sql.DB) error {
	if d == nil {
		return errors.New("nil db")
	}
	return goose.Up(d, migrationsDir)
}

// Status prints the applied state of every migration through the configured logger.
func Status(d *sql.DB) error {
	return goose.Status(d, migrationsDir)
}

// Version returns the current schema version.
func Version(d *sql.DB) (int64, error) {
	return goose.GetDBVersion(d)
}

// Pinger adapts a database handle to the ops server readiness check.
type Pinger struct{ DB *sql.DB }

// CheckReadiness reports whether the database answers a ping.
func (p Pinger) CheckReadiness(ctx context.Context) error {
	return p.DB.PingContext(ctx)
}

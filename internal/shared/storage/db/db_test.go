package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"sync"
	"testing"
	"time"
)

type nopDriver struct{}

func (d nopDriver) Open(name string) (driver.Conn, error) {
	return nopConn{}, nil
}

type nopConn struct{}

func (nopConn) Prepare(query string) (driver.Stmt, error) { return nopStmt{}, nil }
func (nopConn) Close() error                              { return nil }
func (nopConn) Begin() (driver.Tx, error)                 { return nopTx{}, nil }
func (nopConn) Ping(ctx context.Context) error            { return nil }

type nopStmt struct{}

func (nopStmt) Close() error                                    { return nil }
func (nopStmt) NumInput() int                                   { return -1 }
func (nopStmt) Exec(args []driver.Value) (driver.Result, error) { return nopResult{}, nil }
func (nopStmt) Query(args []driver.Value) (driver.Rows, error)  { return nopRows{}, nil }

type nopTx struct{}

func (nopTx) Commit() error   { return nil }
func (nopTx) Rollback() error { return nil }

type nopResult struct{}

func (nopResult) LastInsertId() (int64, error) { return 0, nil }
func (nopResult) RowsAffected() (int64, error) { return 0, nil }

type nopRows struct{}

func (nopRows) Columns() []string              { return []string{} }
func (nopRows) Close() error                   { return nil }
func (nopRows) Next(dest []driver.Value) error { return driver.ErrBadConn }

var registerTestDriverOnce sync.Once

func ensureTestDriverRegistered() {
	registerTestDriverOnce.Do(func() {
		sql.Register("dbtest", nopDriver{})
	})
}

func withTestDriver(t *testing.T) func() {
	t.Helper()
	ensureTestDriverRegistered()
	prev := openDB
	openDB = func(name, dsn string) (*sql.DB, error) {
		return sql.Open("dbtest", dsn)
	}
	return func() {
		openDB = prev
	}
}

func TestConnectRejectsEmptyURL(t *testing.T) {
	if _, err := Connect(context.Background(), "  ", DefaultServerOptions()); err == nil {
		t.Fatal("expected error for empty DATABASE_URL")
	}
}

func TestConnectAppliesPoolOptions(t *testing.T) {
	restore := withTestDriver(t)
	defer restore()

	opts := Options{
		MaxOpenConns: 7,
		MaxIdleConns: 3,
		PingTimeout:  time.Second,
	}
	database, err := Connect(context.Background(), "postgres://test", opts)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer database.Close()

	if got := database.Stats().MaxOpenConnections; got != 7 {
		t.Fatalf("max open conns = %d, want 7", got)
	}
}

func TestOptionsFromEnvOverrides(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "42")
	t.Setenv("DB_CONN_MAX_LIFETIME", "90s")
	t.Setenv("DB_PING_TIMEOUT", "bogus")

	opts := OptionsFromEnv(DefaultServerOptions())
	if opts.MaxOpenConns != 42 {
		t.Fatalf("maxOpenConns = %d", opts.MaxOpenConns)
	}
	if opts.ConnMaxLifetime != 90*time.Second {
		t.Fatalf("connMaxLifetime = %v", opts.ConnMaxLifetime)
	}
	if opts.PingTimeout != DefaultServerOptions().PingTimeout {
		t.Fatalf("invalid duration must keep default, got %v", opts.PingTimeout)
	}
}

func TestDefaultOptionsDiffer(t *testing.T) {
	server := DefaultServerOptions()
	migrate := DefaultMigrateOptions()
	if migrate.MaxOpenConns != 1 {
		t.Fatalf("migrate maxOpenConns = %d, want 1", migrate.MaxOpenConns)
	}
	if server.MaxOpenConns <= migrate.MaxOpenConns {
		t.Fatalf("server pool must be larger: %d vs %d", server.MaxOpenConns, migrate.MaxOpenConns)
	}
}

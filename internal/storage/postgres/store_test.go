package postgres

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"sync"
	"testing"
)

// recorderDriver captures statements executed through database/sql so the
// bootstrap order can be asserted without a live server.
type recorderDriver struct {
	mu    sync.Mutex
	execs []string
}

func (d *recorderDriver) Open(name string) (driver.Conn, error) {
	return &recorderConn{d: d}, nil
}

func (d *recorderDriver) statements() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]string(nil), d.execs...)
}

type recorderConn struct{ d *recorderDriver }

func (c *recorderConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("prepare not supported")
}

func (c *recorderConn) Close() error { return nil }

func (c *recorderConn) Begin() (driver.Tx, error) {
	return nil, errors.New("transactions not supported")
}

func (c *recorderConn) Exec(query string, args []driver.Value) (driver.Result, error) {
	c.d.mu.Lock()
	c.d.execs = append(c.d.execs, query)
	c.d.mu.Unlock()
	return driver.RowsAffected(0), nil
}

func (c *recorderConn) Query(query string, args []driver.Value) (driver.Rows, error) {
	return nil, errors.New("queries not supported")
}

// A connection pinned to search_path=routinely cannot run anything until the
// schema exists, so Init has to create it before the first migration
// statement touches the database.
func TestInitCreatesSchemaBeforeMigrations(t *testing.T) {
	rec := &recorderDriver{}
	sql.Register("postgres-recorder", rec)
	orig := driverName
	driverName = "postgres-recorder"
	t.Cleanup(func() { driverName = orig })

	store := New("postgres://localhost:5432/routinely")
	t.Cleanup(func() { store.Close() })

	// The stub cannot answer the version query, so Init fails partway
	// through the migration run; the statement order is what matters.
	_ = store.Init()

	stmts := rec.statements()
	if len(stmts) == 0 {
		t.Fatal("Init() executed no statements")
	}
	if want := "CREATE SCHEMA IF NOT EXISTS routinely"; stmts[0] != want {
		t.Fatalf("first statement = %q, want %q", stmts[0], want)
	}

	sawVersionTable := false
	for _, stmt := range stmts[1:] {
		if strings.Contains(stmt, "schema_version") {
			sawVersionTable = true
		}
	}
	if !sawVersionTable {
		t.Error("migration runner never reached the schema_version table after schema creation")
	}
}

package lock_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
)

// advisoryServer emulates the parts of postgres the lock backend relies on:
// session-scoped advisory locks that vanish when the session ends, plus a
// counter row that stands in for booking data.
type advisoryServer struct {
	mu       sync.Mutex
	sessions int
	owners   map[string]int
	counter  int64
}

func newAdvisoryServer() *advisoryServer {
	return &advisoryServer{owners: map[string]int{}}
}

// pool opens a connection pool on the server capped at size sessions.
func (s *advisoryServer) pool(t *testing.T, size int) *sqlx.DB {
	t.Helper()

	db := sql.OpenDB(&sessionConnector{server: s})
	db.SetMaxOpenConns(size)
	db.SetMaxIdleConns(size)

	t.Cleanup(func() { _ = db.Close() })

	return sqlx.NewDb(db, "postgres")
}

func (s *advisoryServer) heldLocks() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.owners)
}

func (s *advisoryServer) value() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.counter
}

type sessionConnector struct {
	server *advisoryServer
}

func (c *sessionConnector) Connect(context.Context) (driver.Conn, error) {
	c.server.mu.Lock()
	defer c.server.mu.Unlock()

	c.server.sessions++

	return &session{server: c.server, id: c.server.sessions}, nil
}

func (c *sessionConnector) Driver() driver.Driver {
	return sessionDriver{}
}

type sessionDriver struct{}

func (sessionDriver) Open(string) (driver.Conn, error) {
	return nil, errors.New("open through the connector")
}

type session struct {
	server *advisoryServer
	id     int
}

func (s *session) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("prepared statements are not supported")
}

func (s *session) Begin() (driver.Tx, error) {
	return nil, errors.New("transactions are not supported")
}

// Close ends the session, dropping every advisory lock it holds.
func (s *session) Close() error {
	s.server.mu.Lock()
	defer s.server.mu.Unlock()

	for key, owner := range s.server.owners {
		if owner == s.id {
			delete(s.server.owners, key)
		}
	}

	return nil
}

func (s *session) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	s.server.mu.Lock()
	defer s.server.mu.Unlock()

	switch {
	case strings.Contains(query, "pg_try_advisory_lock"):
		key, _ := args[0].Value.(string)

		owner, held := s.server.owners[key]
		if held && owner != s.id {
			return &singleValue{column: "pg_try_advisory_lock", value: false}, nil
		}

		s.server.owners[key] = s.id

		return &singleValue{column: "pg_try_advisory_lock", value: true}, nil
	case strings.Contains(query, "pg_advisory_unlock"):
		key, _ := args[0].Value.(string)

		if s.server.owners[key] != s.id {
			return &singleValue{column: "pg_advisory_unlock", value: false}, nil
		}

		delete(s.server.owners, key)

		return &singleValue{column: "pg_advisory_unlock", value: true}, nil
	case strings.HasPrefix(query, "SELECT counter"):
		return &singleValue{column: "counter", value: s.server.counter}, nil
	default:
		return nil, errors.New("unexpected query: " + query)
	}
}

func (s *session) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	if !strings.HasPrefix(query, "UPDATE counter") {
		return nil, errors.New("unexpected statement: " + query)
	}

	s.server.mu.Lock()
	defer s.server.mu.Unlock()

	s.server.counter, _ = args[0].Value.(int64)

	return driver.RowsAffected(1), nil
}

type singleValue struct {
	column string
	value  driver.Value
	done   bool
}

func (r *singleValue) Columns() []string {
	return []string{r.column}
}

func (r *singleValue) Close() error {
	return nil
}

func (r *singleValue) Next(dest []driver.Value) error {
	if r.done {
		return io.EOF
	}

	r.done = true
	dest[0] = r.value

	return nil
}

package repo

import (
	"context"
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"moa/internal/infra"
)

// stubDB answers statements by their sqlinline constant. Unscripted
// statements fail the call.
type stubDB struct {
	rows    map[string]func(args []any) pgx.Row
	execs   map[string]func(args []any) (pgconn.CommandTag, error)
	queries map[string]func(args []any) (pgx.Rows, error)

	calls []string
	txs   int
}

func newStubDB() *stubDB {
	return &stubDB{
		rows:    map[string]func([]any) pgx.Row{},
		execs:   map[string]func([]any) (pgconn.CommandTag, error){},
		queries: map[string]func([]any) (pgx.Rows, error){},
	}
}

func (s *stubDB) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	s.calls = append(s.calls, query)
	fn, ok := s.execs[query]
	if !ok {
		return pgconn.CommandTag{}, fmt.Errorf("unexpected exec: %s", query)
	}
	return fn(args)
}

func (s *stubDB) QueryRow(_ context.Context, query string, args ...any) pgx.Row {
	s.calls = append(s.calls, query)
	fn, ok := s.rows[query]
	if !ok {
		return rowFunc(func(...any) error { return fmt.Errorf("unexpected query row: %s", query) })
	}
	return fn(args)
}

func (s *stubDB) Query(_ context.Context, query string, args ...any) (pgx.Rows, error) {
	s.calls = append(s.calls, query)
	fn, ok := s.queries[query]
	if !ok {
		return nil, fmt.Errorf("unexpected query: %s", query)
	}
	return fn(args)
}

func (s *stubDB) InTx(_ context.Context, fn func(infra.SQLExecutor) error) error {
	s.txs++
	return fn(s)
}

func (s *stubDB) called(query string) bool {
	for _, c := range s.calls {
		if c == query {
			return true
		}
	}
	return false
}

type rowFunc func(dest ...any) error

func (f rowFunc) Scan(dest ...any) error { return f(dest...) }

// values returns a row scanning vals into dest positionally.
func values(vals ...any) pgx.Row {
	return rowFunc(func(dest ...any) error { return assign(dest, vals) })
}

func noRows() pgx.Row {
	return rowFunc(func(...any) error { return pgx.ErrNoRows })
}

func assign(dest, vals []any) error {
	if len(dest) != len(vals) {
		return fmt.Errorf("scan: %d destinations for %d values", len(dest), len(vals))
	}
	for i, v := range vals {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(v))
	}
	return nil
}

type stubRows struct {
	data [][]any
	idx  int
}

func (r *stubRows) Close()                                       {}
func (r *stubRows) Err() error                                   { return nil }
func (r *stubRows) CommandTag() pgconn.CommandTag                { return pgconn.CommandTag{} }
func (r *stubRows) FieldDescriptions() []pgconn.FieldDescription { return nil }
func (r *stubRows) Values() ([]any, error)                       { return nil, fmt.Errorf("values not supported in test rows") }
func (r *stubRows) RawValues() [][]byte                          { return nil }
func (r *stubRows) Conn() *pgx.Conn                              { return nil }

func (r *stubRows) Next() bool {
	if r.idx >= len(r.data) {
		return false
	}
	r.idx++
	return true
}

func (r *stubRows) Scan(dest ...any) error {
	return assign(dest, r.data[r.idx-1])
}

func okTag(tag string) func([]any) (pgconn.CommandTag, error) {
	return func([]any) (pgconn.CommandTag, error) { return pgconn.NewCommandTag(tag), nil }
}

// Package sqlite exposes the dataset as an in-memory SQLite table named
// "tips" for read-only ad-hoc queries.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/fwojciec/sidebot"
	_ "modernc.org/sqlite"
)

// Table is the name the dataset is loaded under.
const Table = "tips"

// DefaultMaxRows bounds how many rows a query returns.
const DefaultMaxRows = 1000

var _ sidebot.Querier = (*DB)(nil)

// DB is an in-memory database holding one copy of the dataset.
type DB struct {
	db      *sql.DB
	maxRows int
}

// Option configures a DB.
type Option func(*DB)

// WithMaxRows caps the rows returned by Query. Rows past the cap are
// dropped and the result is marked Truncated. n <= 0 leaves the default.
func WithMaxRows(n int) Option {
	return func(d *DB) {
		if n > 0 {
			d.maxRows = n
		}
	}
}

// Open creates the in-memory database and loads ds into the tips table.
// The connection is switched to query-only mode once loaded.
func Open(ctx context.Context, ds *sidebot.Dataset, opts ...Option) (*DB, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Each connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := load(ctx, db, ds); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.ExecContext(ctx, "PRAGMA query_only=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set query_only: %w", err)
	}
	d := &DB{db: db, maxRows: DefaultMaxRows}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// Close releases the database.
func (d *DB) Close() error {
	return d.db.Close()
}

// Query runs a single SELECT (or WITH ... SELECT) statement. Anything else
// fails with ErrReadOnly. NULL values are reported as "NULL". At most the
// configured number of rows is returned.
func (d *DB) Query(ctx context.Context, query string) (sidebot.QueryResult, error) {
	q, err := readOnly(query)
	if err != nil {
		return sidebot.QueryResult{}, err
	}

	rows, err := d.db.QueryContext(ctx, q)
	if err != nil {
		return sidebot.QueryResult{}, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return sidebot.QueryResult{}, fmt.Errorf("columns: %w", err)
	}
	res := sidebot.QueryResult{Columns: cols}
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if len(res.Rows) == d.maxRows {
			res.Truncated = true
			break
		}
		if err := rows.Scan(ptrs...); err != nil {
			return sidebot.QueryResult{}, fmt.Errorf("scan: %w", err)
		}
		row := make([]string, len(vals))
		for i, v := range vals {
			row[i] = format(v)
		}
		res.Rows = append(res.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return sidebot.QueryResult{}, fmt.Errorf("query: %w", err)
	}
	return res, nil
}

func readOnly(query string) (string, error) {
	q := strings.TrimSpace(query)
	q = strings.TrimSpace(strings.TrimSuffix(q, ";"))
	if q == "" {
		return "", fmt.Errorf("empty query: %w", sidebot.ErrValidation)
	}
	if hasStatementBreak(q) {
		return "", fmt.Errorf("multiple statements: %w", sidebot.ErrReadOnly)
	}
	first := strings.ToLower(strings.Fields(q)[0])
	if first != "select" && first != "with" {
		return "", fmt.Errorf("%s: %w", first, sidebot.ErrReadOnly)
	}
	return q, nil
}

// hasStatementBreak reports whether q has a semicolon outside quoted text
// and comments.
func hasStatementBreak(q string) bool {
	var quote byte
	for i := 0; i < len(q); i++ {
		c := q[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == '[':
			quote = ']'
		case c == '-' && strings.HasPrefix(q[i:], "--"):
			end := strings.IndexByte(q[i:], '\n')
			if end < 0 {
				return false
			}
			i += end
		case c == '/' && strings.HasPrefix(q[i:], "/*"):
			end := strings.Index(q[i+2:], "*/")
			if end < 0 {
				return false
			}
			i += end + 3
		case c == ';':
			return true
		}
	}
	return false
}

func format(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(x)
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}

func load(ctx context.Context, db *sql.DB, ds *sidebot.Dataset) error {
	cols := ds.Columns()
	defs := make([]string, len(cols))
	names := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = fmt.Sprintf("%q %s", c.Name, sqlType(c.Type))
		names[i] = fmt.Sprintf("%q", c.Name)
		marks[i] = "?"
	}

	if _, err := db.ExecContext(ctx, fmt.Sprintf("CREATE TABLE %s (%s)", Table, strings.Join(defs, ", "))); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		Table, strings.Join(names, ", "), strings.Join(marks, ", ")))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	args := make([]any, len(cols))
	for n, r := range ds.Rows() {
		for i, c := range cols {
			args[i] = value(r, c.Name)
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert row %d: %w", n, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func sqlType(t string) string {
	switch t {
	case sidebot.TypeFloat:
		return "REAL"
	case sidebot.TypeInt:
		return "INTEGER"
	default:
		return "TEXT"
	}
}

func value(r sidebot.Row, column string) any {
	switch column {
	case "total_bill":
		return r.TotalBill
	case "tip":
		return r.Tip
	case "size":
		return int64(r.Size)
	case "percent":
		return r.Percent
	default:
		return r.Value(column)
	}
}

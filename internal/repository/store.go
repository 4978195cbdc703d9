package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Query timeouts applied on top of the caller's context.
const (
	readTimeout  = 5 * time.Second
	listTimeout  = 10 * time.Second
	writeTimeout = 5 * time.Second
)

// ReadSnapshot is used for multi-query reads that must observe a single snapshot.
var ReadSnapshot = &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true}

// DBTX is satisfied by both *sql.DB and *sql.Tx, so every repository can run
// inside or outside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Repositories groups the per-entity repositories bound to the same DBTX.
type Repositories struct {
	Computers    ComputerRepository
	Employees    EmployeeRepository
	Problems     ProblemRepository
	Parts        PartRepository
	Maintenances MaintenanceRepository
}

// NewRepositories binds every repository to db.
func NewRepositories(db DBTX) *Repositories {
	return &Repositories{
		Computers:    NewComputerRepository(db),
		Employees:    NewEmployeeRepository(db),
		Problems:     NewProblemRepository(db),
		Parts:        NewPartRepository(db),
		Maintenances: NewMaintenanceRepository(db),
	}
}

// Store owns the connection pool and hands out transaction-scoped repositories.
type Store struct {
	db *sql.DB
}

// NewStore creates a new Store.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Repos returns repositories bound to the pool, for single-statement operations
// that need no transaction.
func (s *Store) Repos() *Repositories {
	return NewRepositories(s.db)
}

// Ping checks that the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// WithTx runs fn inside a transaction. The transaction is committed when fn returns
// nil and rolled back when fn returns an error or panics.
func (s *Store) WithTx(ctx context.Context, opts *sql.TxOptions, fn func(r *Repositories) error) error {
	tx, err := s.db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(NewRepositories(tx)); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// queryList runs query and scans every row with scan. The result is never nil.
func queryList[T any](ctx context.Context, db DBTX, what string, scan func(rowScanner) (T, error), query string, args ...interface{}) ([]T, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", what, err)
	}
	defer rows.Close()

	items := []T{}
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", what, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return items, nil
}

// execAffected runs a statement and reports how many rows it touched.
func execAffected(ctx context.Context, db DBTX, op, query string, args ...interface{}) (int64, error) {
	result, err := db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, wrapWriteError(op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return rowsAffected, nil
}

// deleteByID deletes one row and returns ErrNotFound when nothing matched.
func deleteByID(ctx context.Context, db DBTX, table string, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, writeTimeout)
	defer cancel()

	n, err := execAffected(ctx, db, "delete from "+table, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// countWhere returns COUNT(*) for a single-column equality predicate.
func countWhere(ctx context.Context, db DBTX, table, column string, value interface{}) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, readTimeout)
	defer cancel()

	var n int64
	query := `SELECT COUNT(*) FROM ` + table + ` WHERE ` + column + ` = $1`
	if err := db.QueryRowContext(ctx, query, value).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return n, nil
}

// distinctStrings returns the sorted distinct values of one text column.
func distinctStrings(ctx context.Context, db DBTX, table, column string) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, listTimeout)
	defer cancel()

	query := `SELECT DISTINCT ` + column + ` FROM ` + table + ` ORDER BY ` + column
	return queryList(ctx, db, column, func(s rowScanner) (string, error) {
		var v string
		err := s.Scan(&v)
		return v, err
	}, query)
}

package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/datastax/data-filter-apis/query"
)

const (
	DriverPostgres = "postgres"
	DriverPgx      = "pgx"
)

// Db represents a connection to a db
type Db struct {
	session Session
}

type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// NewDb opens a connection pool with the given driver ("postgres" for lib/pq or "pgx")
// and checks that the database is reachable.
func NewDb(driver string, dsn string, options *Options) (*Db, error) {
	if driver != DriverPostgres && driver != DriverPgx {
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	if dsn == "" {
		return nil, errors.New("dsn must be provided")
	}

	ref, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, err
	}

	if options != nil {
		ref.SetMaxOpenConns(options.MaxOpenConns)
		ref.SetMaxIdleConns(options.MaxIdleConns)
		ref.SetConnMaxLifetime(options.ConnMaxLifetime)
	}

	return NewDbWithSession(&SqlxSession{ref: ref}), nil
}

func NewDbWithSession(session Session) *Db {
	return &Db{
		session: session,
	}
}

// Select renders and executes a SELECT statement.
func (db *Db) Select(ctx context.Context, s query.Select) ([]map[string]interface{}, error) {
	stmt, values, err := s.ToSQL()
	if err != nil {
		return nil, err
	}
	return db.session.Query(ctx, stmt, values...)
}

func (db *Db) Close() error {
	return db.session.Close()
}

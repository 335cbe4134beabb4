package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// PgxIface is the subset of pgx used by the stats queries. Both *pgxpool.Pool and the
// pgxmock connection satisfy it.
type PgxIface interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
}

type PsqlInterface struct {
	Pool *pgxpool.Pool
}

func ConstructPsqlConnectURL(addr, username, password string) string {
	return fmt.Sprintf("postgres://%s?user=%s&password=%s", addr, username, password)
}

func (psqlInterface *PsqlInterface) Init(ctx context.Context, addr string) error {
	dbpool, err := pgxpool.Connect(ctx, addr)
	if err != nil {
		return err
	}
	psqlInterface.Pool = dbpool
	return nil
}

// Conn returns the pool as a PgxIface so repositories never touch the pool type directly.
func (psqlInterface *PsqlInterface) Conn() PgxIface {
	return psqlInterface.Pool
}

func (psqlInterface *PsqlInterface) Close() {
	if psqlInterface.Pool != nil {
		psqlInterface.Pool.Close()
	}
}

// TableExists is the Postgres equivalent of `SHOW TABLES LIKE ?`.
func TableExists(ctx context.Context, conn PgxIface, table string) (bool, error) {
	var exists bool
	err := conn.QueryRow(ctx, "SELECT to_regclass($1) IS NOT NULL;", quoteIdent(table)).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func quoteIdent(name string) string {
	return pgx.Identifier{name}.Sanitize()
}

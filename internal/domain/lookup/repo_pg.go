package lookup

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/owc/owc/internal/platform/db"
)

type querier interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) querier {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

func (r *repoPG) ListProvinces(ctx context.Context) ([]Province, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT code, name, region FROM province ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Province
	for rows.Next() {
		var p Province
		if err := rows.Scan(&p.Code, &p.Name, &p.Region); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

func (r *repoPG) ListInsurers(ctx context.Context) ([]Insurer, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT code, name FROM insurance_provider ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Insurer
	for rows.Next() {
		var ins Insurer
		if err := rows.Scan(&ins.Code, &ins.Name); err != nil {
			return nil, err
		}
		items = append(items, ins)
	}
	return items, rows.Err()
}

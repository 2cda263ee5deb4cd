package attachments

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/owc/owc/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

func (r *repoPG) RowExists(ctx context.Context, irn int64, category Category) (bool, error) {
	var count int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM claim_attachments WHERE irn = $1 AND attachment_type = $2`,
		irn, category).Scan(&count)
	return count > 0, err
}

func (r *repoPG) InsertRow(ctx context.Context, a *Attachment) error {
	_, err := r.conn(ctx).Exec(ctx,
		`INSERT INTO claim_attachments (irn, attachment_type, file_path) VALUES ($1, $2, $3)`,
		a.IRN, a.AttachmentType, a.FilePath)
	return err
}

func (r *repoPG) UpdateRow(ctx context.Context, a *Attachment) error {
	_, err := r.conn(ctx).Exec(ctx,
		`UPDATE claim_attachments SET file_path = $3 WHERE irn = $1 AND attachment_type = $2`,
		a.IRN, a.AttachmentType, a.FilePath)
	return err
}

func (r *repoPG) ListByClaim(ctx context.Context, irn int64) ([]*Attachment, error) {
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT irn, attachment_type, file_path FROM claim_attachments WHERE irn = $1 ORDER BY attachment_type`,
		irn)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*Attachment
	for rows.Next() {
		var a Attachment
		if err := rows.Scan(&a.IRN, &a.AttachmentType, &a.FilePath); err != nil {
			return nil, err
		}
		items = append(items, &a)
	}
	return items, rows.Err()
}

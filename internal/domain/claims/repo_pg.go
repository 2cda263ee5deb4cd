package claims

import (
	"context"
	"errors"

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

func (r *repoPG) WorkerIDByIRN(ctx context.Context, irn int64) (int64, error) {
	var workerID int64
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT worker_id FROM claim_worker_view WHERE irn = $1`, irn).Scan(&workerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	return workerID, err
}

func (r *repoPG) WorkerIDFromIncidentMaster(ctx context.Context, irn int64) (int64, error) {
	var workerID int64
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT worker_id FROM form11_master WHERE irn = $1`, irn).Scan(&workerID)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, ErrNotFound
	}
	return workerID, err
}

// stageTables maps a review stage to its table. Stage rows live one table
// each, never mixed.
var stageTables = map[Stage]string{
	StagePrescreening:  "prescreening_review",
	StageRegistrar:     "registrar_review",
	StageClaimsOfficer: "claims_officer_review",
}

func (r *repoPG) CountReviewRows(ctx context.Context, irn int64, stage Stage) (int, error) {
	table, ok := stageTables[stage]
	if !ok {
		return 0, NewValidationError("review stage")
	}
	var count int
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM `+table+` WHERE irn = $1`, irn).Scan(&count)
	return count, err
}

const summaryCols = `v.irn, v.worker_id, w.first_name || ' ' || w.last_name,
	v.form_type, f.incident_date, v.status`

func (r *repoPG) GetSummary(ctx context.Context, irn int64) (*ClaimSummary, error) {
	var cs ClaimSummary
	err := r.conn(ctx).QueryRow(ctx, `
		SELECT `+summaryCols+`
		FROM claim_worker_view v
		JOIN worker w ON w.worker_id = v.worker_id
		JOIN form11_master f ON f.irn = v.irn
		WHERE v.irn = $1`, irn).
		Scan(&cs.IRN, &cs.WorkerID, &cs.WorkerName, &cs.FormType, &cs.IncidentDate, &cs.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &cs, nil
}

func (r *repoPG) SearchByName(ctx context.Context, q string, limit, offset int) ([]*ClaimSummary, int, error) {
	pattern := "%" + q + "%"

	var total int
	if err := r.conn(ctx).QueryRow(ctx, `
		SELECT COUNT(*)
		FROM claim_worker_view v
		JOIN worker w ON w.worker_id = v.worker_id
		WHERE (w.first_name || ' ' || w.last_name) ILIKE $1`, pattern).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.conn(ctx).Query(ctx, `
		SELECT `+summaryCols+`
		FROM claim_worker_view v
		JOIN worker w ON w.worker_id = v.worker_id
		JOIN form11_master f ON f.irn = v.irn
		WHERE (w.first_name || ' ' || w.last_name) ILIKE $1
		ORDER BY v.irn DESC LIMIT $2 OFFSET $3`, pattern, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var items []*ClaimSummary
	for rows.Next() {
		var cs ClaimSummary
		if err := rows.Scan(&cs.IRN, &cs.WorkerID, &cs.WorkerName, &cs.FormType, &cs.IncidentDate, &cs.Status); err != nil {
			return nil, 0, err
		}
		items = append(items, &cs)
	}
	return items, total, rows.Err()
}

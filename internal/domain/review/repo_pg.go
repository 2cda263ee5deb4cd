package review

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/owc/owc/internal/domain/claims"
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

const prescreeningCols = `id, irn, form_type, status, submission_date, decision_date, decision_reason`

func (r *repoPG) GetPrescreening(ctx context.Context, irn int64) (*PrescreeningReview, error) {
	var p PrescreeningReview
	err := r.conn(ctx).QueryRow(ctx,
		`SELECT `+prescreeningCols+` FROM prescreening_review WHERE irn = $1`, irn).
		Scan(&p.ID, &p.IRN, &p.FormType, &p.Status, &p.SubmissionDate, &p.DecisionDate, &p.DecisionReason)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, claims.ErrMissingRow
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repoPG) UpdatePrescreeningDecision(ctx context.Context, irn int64, id *uuid.UUID, status, decisionDate, reason string) (int64, error) {
	var tag pgconn.CommandTag
	var err error
	if id != nil {
		tag, err = r.conn(ctx).Exec(ctx, `
			UPDATE prescreening_review
			SET status = $2, decision_date = $3, decision_reason = $4
			WHERE id = $1`, *id, status, decisionDate, reason)
	} else {
		tag, err = r.conn(ctx).Exec(ctx, `
			UPDATE prescreening_review
			SET status = $2, decision_date = $3, decision_reason = $4
			WHERE irn = $1`, irn, status, decisionDate, reason)
	}
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *repoPG) InsertRegistrarReview(ctx context.Context, rr *RegistrarReview) error {
	rr.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO registrar_review (id, irn, incident_type, status, submission_date, decision_date, decision_reason)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		rr.ID, rr.IRN, rr.IncidentType, rr.Status, rr.SubmissionDate, rr.DecisionDate, rr.DecisionReason)
	return err
}

func (r *repoPG) InsertClaimsOfficerReview(ctx context.Context, cr *ClaimsOfficerReview) error {
	cr.ID = uuid.New()
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO claims_officer_review (id, irn, incident_type, status, submission_date)
		VALUES ($1,$2,$3,$4,$5)`,
		cr.ID, cr.IRN, cr.IncidentType, cr.Status, cr.SubmissionDate)
	return err
}

package attachments

import "context"

type Repository interface {
	// RowExists reports whether a row exists for (irn, category). The verb
	// for the following write is chosen from this, never inferred from a
	// failed insert.
	RowExists(ctx context.Context, irn int64, category Category) (bool, error)

	InsertRow(ctx context.Context, a *Attachment) error
	UpdateRow(ctx context.Context, a *Attachment) error
	ListByClaim(ctx context.Context, irn int64) ([]*Attachment, error)
}

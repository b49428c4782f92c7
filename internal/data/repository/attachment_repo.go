package repository

import (
	"context"
	"errors"
	"fmt"

	"kennel-registry/internal/data/entity"
	"kennel-registry/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type AttachmentRepository interface {
	Create(ctx context.Context, att *entity.Attachment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Attachment, error)
	FindByDog(ctx context.Context, dogID uuid.UUID, kind entity.AttachmentKind) ([]*entity.Attachment, error)
	Update(ctx context.Context, att *entity.Attachment) error
	SetPrimary(ctx context.Context, att *entity.Attachment) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type attachmentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewAttachmentRepository(db database.PgxIface, log *zap.Logger) AttachmentRepository {
	return &attachmentRepository{
		db:  db,
		log: log.With(zap.String("repository", "attachment")),
	}
}

const attachmentColumns = `id, dog_id, kind, title, storage_key, content_type, size_bytes,
		sort_order, is_primary, certificate_type, issued_by, issued_at, created_at, updated_at`

func scanAttachment(row pgx.Row) (*entity.Attachment, error) {
	var a entity.Attachment
	err := row.Scan(
		&a.ID,
		&a.DogID,
		&a.Kind,
		&a.Title,
		&a.StorageKey,
		&a.ContentType,
		&a.SizeBytes,
		&a.SortOrder,
		&a.IsPrimary,
		&a.CertificateType,
		&a.IssuedBy,
		&a.IssuedAt,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts the attachment. A primary attachment demotes the
// previous primary of the same dog and kind in the same transaction.
func (r *attachmentRepository) Create(ctx context.Context, att *entity.Attachment) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin attachment tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if att.IsPrimary {
		if err := clearPrimary(ctx, tx, att.DogID, att.Kind); err != nil {
			return err
		}
	}

	query := `
		INSERT INTO dog_attachments (` + attachmentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err = tx.Exec(ctx, query,
		att.ID,
		att.DogID,
		att.Kind,
		att.Title,
		att.StorageKey,
		att.ContentType,
		att.SizeBytes,
		att.SortOrder,
		att.IsPrimary,
		att.CertificateType,
		att.IssuedBy,
		att.IssuedAt,
		att.CreatedAt,
		att.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create attachment",
			zap.Error(err),
			zap.String("dog_id", att.DogID.String()),
		)
		return fmt.Errorf("create attachment for dog %s: %w", att.DogID.String(), wrapWriteErr(err))
	}

	return tx.Commit(ctx)
}

func clearPrimary(ctx context.Context, tx pgx.Tx, dogID uuid.UUID, kind entity.AttachmentKind) error {
	_, err := tx.Exec(ctx,
		`UPDATE dog_attachments SET is_primary = FALSE WHERE dog_id = $1 AND kind = $2 AND is_primary`,
		dogID, kind)
	if err != nil {
		return fmt.Errorf("clear primary attachment: %w", err)
	}
	return nil
}

func (r *attachmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Attachment, error) {
	query := `SELECT ` + attachmentColumns + ` FROM dog_attachments WHERE id = $1`

	att, err := scanAttachment(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find attachment by ID",
			zap.Error(err),
			zap.String("attachment_id", id.String()),
		)
		return nil, fmt.Errorf("find attachment by ID %s: %w", id.String(), err)
	}

	return att, nil
}

// FindByDog lists attachments with the primary first, then by sort order.
func (r *attachmentRepository) FindByDog(ctx context.Context, dogID uuid.UUID, kind entity.AttachmentKind) ([]*entity.Attachment, error) {
	query := `
		SELECT ` + attachmentColumns + `
		FROM dog_attachments
		WHERE dog_id = $1 AND kind = $2
		ORDER BY is_primary DESC, sort_order, created_at
	`

	rows, err := r.db.Query(ctx, query, dogID, kind)
	if err != nil {
		r.log.Error("Failed to find attachments by dog",
			zap.Error(err),
			zap.String("dog_id", dogID.String()),
		)
		return nil, fmt.Errorf("find attachments for dog %s: %w", dogID.String(), err)
	}
	defer rows.Close()

	var atts []*entity.Attachment
	for rows.Next() {
		att, err := scanAttachment(rows)
		if err != nil {
			r.log.Error("Failed to scan attachment row", zap.Error(err))
			return nil, fmt.Errorf("scan attachment row: %w", err)
		}
		atts = append(atts, att)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate attachment rows: %w", err)
	}

	return atts, nil
}

// Update writes the metadata columns. The primary flag is changed
// through SetPrimary only.
func (r *attachmentRepository) Update(ctx context.Context, att *entity.Attachment) error {
	query := `
		UPDATE dog_attachments
		SET title = $2, sort_order = $3, certificate_type = $4, issued_by = $5,
		    issued_at = $6, updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		att.ID,
		att.Title,
		att.SortOrder,
		att.CertificateType,
		att.IssuedBy,
		att.IssuedAt,
		att.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update attachment",
			zap.Error(err),
			zap.String("attachment_id", att.ID.String()),
		)
		return fmt.Errorf("update attachment %s: %w", att.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("attachment %s not found", att.ID.String())
	}

	return nil
}

// SetPrimary marks att as the primary of its dog and kind.
func (r *attachmentRepository) SetPrimary(ctx context.Context, att *entity.Attachment) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin attachment tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := clearPrimary(ctx, tx, att.DogID, att.Kind); err != nil {
		return err
	}

	result, err := tx.Exec(ctx,
		`UPDATE dog_attachments SET is_primary = TRUE, updated_at = $2 WHERE id = $1`,
		att.ID, att.UpdatedAt)
	if err != nil {
		r.log.Error("Failed to set primary attachment",
			zap.Error(err),
			zap.String("attachment_id", att.ID.String()),
		)
		return fmt.Errorf("set primary attachment %s: %w", att.ID.String(), err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("attachment %s not found", att.ID.String())
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit primary attachment: %w", err)
	}
	att.IsPrimary = true
	return nil
}

func (r *attachmentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM dog_attachments WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete attachment",
			zap.Error(err),
			zap.String("attachment_id", id.String()),
		)
		return fmt.Errorf("delete attachment %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("attachment %s not found", id.String())
	}

	return nil
}

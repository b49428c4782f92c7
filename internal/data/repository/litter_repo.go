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

type LitterRepository interface {
	Create(ctx context.Context, litter *entity.Litter) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Litter, error)
	FindAll(ctx context.Context, limit, offset int, kennelID *uuid.UUID) ([]*entity.Litter, error)
	CountAll(ctx context.Context, kennelID *uuid.UUID) (int64, error)
	Update(ctx context.Context, litter *entity.Litter) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type litterRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewLitterRepository(db database.PgxIface, log *zap.Logger) LitterRepository {
	return &litterRepository{
		db:  db,
		log: log.With(zap.String("repository", "litter")),
	}
}

const litterColumns = `id, sire_id, dam_id, date_of_birth, number_of_pups, kennel_id, notes, created_at, updated_at`

func scanLitter(row pgx.Row) (*entity.Litter, error) {
	var l entity.Litter
	err := row.Scan(
		&l.ID,
		&l.SireID,
		&l.DamID,
		&l.DateOfBirth,
		&l.NumberOfPups,
		&l.KennelID,
		&l.Notes,
		&l.CreatedAt,
		&l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *litterRepository) Create(ctx context.Context, litter *entity.Litter) error {
	query := `
		INSERT INTO litters (` + litterColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.Exec(ctx, query,
		litter.ID,
		litter.SireID,
		litter.DamID,
		litter.DateOfBirth,
		litter.NumberOfPups,
		litter.KennelID,
		litter.Notes,
		litter.CreatedAt,
		litter.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create litter", zap.Error(err))
		return fmt.Errorf("create litter: %w", wrapWriteErr(err))
	}

	return nil
}

func (r *litterRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Litter, error) {
	query := `SELECT ` + litterColumns + ` FROM litters WHERE id = $1`

	litter, err := scanLitter(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find litter by ID",
			zap.Error(err),
			zap.String("litter_id", id.String()),
		)
		return nil, fmt.Errorf("find litter by ID %s: %w", id.String(), err)
	}

	return litter, nil
}

func (r *litterRepository) FindAll(ctx context.Context, limit, offset int, kennelID *uuid.UUID) ([]*entity.Litter, error) {
	query := `SELECT ` + litterColumns + ` FROM litters`
	args := []any{}

	if kennelID != nil {
		query += ` WHERE kennel_id = $1`
		args = append(args, *kennelID)
	}
	query += fmt.Sprintf(` ORDER BY date_of_birth DESC LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find all litters",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all litters limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var litters []*entity.Litter
	for rows.Next() {
		litter, err := scanLitter(rows)
		if err != nil {
			r.log.Error("Failed to scan litter row", zap.Error(err))
			return nil, fmt.Errorf("scan litter row: %w", err)
		}
		litters = append(litters, litter)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate litter rows: %w", err)
	}

	return litters, nil
}

func (r *litterRepository) CountAll(ctx context.Context, kennelID *uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM litters`
	args := []any{}
	if kennelID != nil {
		query += ` WHERE kennel_id = $1`
		args = append(args, *kennelID)
	}

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count litters", zap.Error(err))
		return 0, fmt.Errorf("count all litters: %w", err)
	}

	return total, nil
}

func (r *litterRepository) Update(ctx context.Context, litter *entity.Litter) error {
	query := `
		UPDATE litters
		SET sire_id = $2, dam_id = $3, date_of_birth = $4, number_of_pups = $5,
		    kennel_id = $6, notes = $7, updated_at = $8
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		litter.ID,
		litter.SireID,
		litter.DamID,
		litter.DateOfBirth,
		litter.NumberOfPups,
		litter.KennelID,
		litter.Notes,
		litter.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update litter",
			zap.Error(err),
			zap.String("litter_id", litter.ID.String()),
		)
		return fmt.Errorf("update litter %s: %w", litter.ID.String(), wrapWriteErr(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("litter %s not found", litter.ID.String())
	}

	return nil
}

// Delete removes the litter. Puppies keep their record with litter_id cleared.
func (r *litterRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM litters WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete litter",
			zap.Error(err),
			zap.String("litter_id", id.String()),
		)
		return fmt.Errorf("delete litter %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("litter %s not found", id.String())
	}

	r.log.Info("Litter deleted", zap.String("litter_id", id.String()))
	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"kennel-registry/internal/data/entity"
	"kennel-registry/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type KennelRepository interface {
	Create(ctx context.Context, kennel *entity.Kennel) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Kennel, error)
	FindByName(ctx context.Context, name string) (*entity.Kennel, error)
	FindAll(ctx context.Context, limit, offset int, search string) ([]*entity.Kennel, error)
	CountAll(ctx context.Context, search string) (int64, error)
	Update(ctx context.Context, kennel *entity.Kennel) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type kennelRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewKennelRepository(db database.PgxIface, log *zap.Logger) KennelRepository {
	return &kennelRepository{
		db:  db,
		log: log.With(zap.String("repository", "kennel")),
	}
}

const kennelColumns = `id, name, prefix, owner_name, contact_email, phone, website,
		city, country, description, is_active, created_at, updated_at`

func scanKennel(row pgx.Row) (*entity.Kennel, error) {
	var k entity.Kennel
	err := row.Scan(
		&k.ID,
		&k.Name,
		&k.Prefix,
		&k.OwnerName,
		&k.ContactEmail,
		&k.Phone,
		&k.Website,
		&k.City,
		&k.Country,
		&k.Description,
		&k.IsActive,
		&k.CreatedAt,
		&k.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &k, nil
}

func (r *kennelRepository) Create(ctx context.Context, kennel *entity.Kennel) error {
	query := `
		INSERT INTO kennels (id, name, prefix, owner_name, contact_email, phone, website,
		                     city, country, description, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		kennel.ID,
		kennel.Name,
		kennel.Prefix,
		kennel.OwnerName,
		kennel.ContactEmail,
		kennel.Phone,
		kennel.Website,
		kennel.City,
		kennel.Country,
		kennel.Description,
		kennel.IsActive,
		kennel.CreatedAt,
		kennel.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create kennel",
			zap.Error(err),
			zap.String("name", kennel.Name),
		)
		return fmt.Errorf("create kennel %s: %w", kennel.Name, wrapWriteErr(err))
	}

	return nil
}

func (r *kennelRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Kennel, error) {
	query := `SELECT ` + kennelColumns + ` FROM kennels WHERE id = $1`

	kennel, err := scanKennel(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find kennel by ID",
			zap.Error(err),
			zap.String("kennel_id", id.String()),
		)
		return nil, fmt.Errorf("find kennel by ID %s: %w", id.String(), err)
	}

	return kennel, nil
}

func (r *kennelRepository) FindByName(ctx context.Context, name string) (*entity.Kennel, error) {
	query := `SELECT ` + kennelColumns + ` FROM kennels WHERE LOWER(name) = LOWER($1)`

	kennel, err := scanKennel(r.db.QueryRow(ctx, query, name))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find kennel by name",
			zap.Error(err),
			zap.String("name", name),
		)
		return nil, fmt.Errorf("find kennel by name %s: %w", name, err)
	}

	return kennel, nil
}

func (r *kennelRepository) FindAll(ctx context.Context, limit, offset int, search string) ([]*entity.Kennel, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + kennelColumns + ` FROM kennels`)

	args := []any{}
	argCount := 1

	if search = strings.TrimSpace(search); search != "" {
		queryBuilder.WriteString(fmt.Sprintf(` WHERE name ILIKE $%[1]d ESCAPE '\' OR prefix ILIKE $%[1]d ESCAPE '\'`, argCount))
		args = append(args, containsPattern(search))
		argCount++
	}

	queryBuilder.WriteString(fmt.Sprintf(" ORDER BY name LIMIT $%d OFFSET $%d", argCount, argCount+1))
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find all kennels",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find all kennels limit %d offset %d: %w", limit, offset, err)
	}
	defer rows.Close()

	var kennels []*entity.Kennel
	for rows.Next() {
		kennel, err := scanKennel(rows)
		if err != nil {
			r.log.Error("Failed to scan kennel row", zap.Error(err))
			return nil, fmt.Errorf("scan kennel row: %w", err)
		}
		kennels = append(kennels, kennel)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate kennel rows: %w", err)
	}

	return kennels, nil
}

func (r *kennelRepository) CountAll(ctx context.Context, search string) (int64, error) {
	query := `SELECT COUNT(*) FROM kennels`
	args := []any{}

	if search = strings.TrimSpace(search); search != "" {
		query += ` WHERE name ILIKE $1 ESCAPE '\' OR prefix ILIKE $1 ESCAPE '\'`
		args = append(args, containsPattern(search))
	}

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count kennels", zap.Error(err))
		return 0, fmt.Errorf("count all kennels: %w", err)
	}

	return total, nil
}

func (r *kennelRepository) Update(ctx context.Context, kennel *entity.Kennel) error {
	query := `
		UPDATE kennels
		SET name = $2, prefix = $3, owner_name = $4, contact_email = $5, phone = $6,
		    website = $7, city = $8, country = $9, description = $10, is_active = $11,
		    updated_at = $12
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		kennel.ID,
		kennel.Name,
		kennel.Prefix,
		kennel.OwnerName,
		kennel.ContactEmail,
		kennel.Phone,
		kennel.Website,
		kennel.City,
		kennel.Country,
		kennel.Description,
		kennel.IsActive,
		kennel.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update kennel",
			zap.Error(err),
			zap.String("kennel_id", kennel.ID.String()),
		)
		return fmt.Errorf("update kennel %s: %w", kennel.ID.String(), wrapWriteErr(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("kennel %s not found", kennel.ID.String())
	}

	return nil
}

func (r *kennelRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM kennels WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete kennel",
			zap.Error(err),
			zap.String("kennel_id", id.String()),
		)
		return fmt.Errorf("delete kennel %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("kennel %s not found", id.String())
	}

	r.log.Info("Kennel deleted", zap.String("kennel_id", id.String()))
	return nil
}

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

type DogRepository interface {
	Create(ctx context.Context, dog *entity.Dog) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Dog, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Dog, error)
	FindByRegistrationNumber(ctx context.Context, number string) (*entity.Dog, error)
	FindByMicrochip(ctx context.Context, microchip string) (*entity.Dog, error)
	FindAll(ctx context.Context, limit, offset int, filter entity.DogFilter) ([]*entity.Dog, error)
	CountAll(ctx context.Context, filter entity.DogFilter) (int64, error)
	FindOffspring(ctx context.Context, parentID uuid.UUID, limit int) ([]*entity.Dog, error)
	FindByLitter(ctx context.Context, litterID uuid.UUID) ([]*entity.Dog, error)
	Update(ctx context.Context, dog *entity.Dog) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type dogRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewDogRepository(db database.PgxIface, log *zap.Logger) DogRepository {
	return &dogRepository{
		db:  db,
		log: log.With(zap.String("repository", "dog")),
	}
}

const dogColumns = `id, registered_name, call_name, registration_number, microchip, sex,
		date_of_birth, date_of_death, color, status, sire_id, dam_id, kennel_id, litter_id,
		breeder_name, owner_name, appraisal_score, appraisal_date, appraisal_judge,
		appraisal_notes, hip_score, elbow_score, eye_test, dna_profile,
		inbreeding_coefficient, notes, created_at, updated_at`

func scanDog(row pgx.Row) (*entity.Dog, error) {
	var d entity.Dog
	err := row.Scan(
		&d.ID,
		&d.RegisteredName,
		&d.CallName,
		&d.RegistrationNumber,
		&d.Microchip,
		&d.Sex,
		&d.DateOfBirth,
		&d.DateOfDeath,
		&d.Color,
		&d.Status,
		&d.SireID,
		&d.DamID,
		&d.KennelID,
		&d.LitterID,
		&d.BreederName,
		&d.OwnerName,
		&d.AppraisalScore,
		&d.AppraisalDate,
		&d.AppraisalJudge,
		&d.AppraisalNotes,
		&d.HipScore,
		&d.ElbowScore,
		&d.EyeTest,
		&d.DNAProfile,
		&d.InbreedingCoefficient,
		&d.Notes,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// dogValues lists the writable columns in dogColumns order, id first.
func dogValues(d *entity.Dog) []any {
	return []any{
		d.ID,
		d.RegisteredName,
		d.CallName,
		d.RegistrationNumber,
		d.Microchip,
		d.Sex,
		d.DateOfBirth,
		d.DateOfDeath,
		d.Color,
		d.Status,
		d.SireID,
		d.DamID,
		d.KennelID,
		d.LitterID,
		d.BreederName,
		d.OwnerName,
		d.AppraisalScore,
		d.AppraisalDate,
		d.AppraisalJudge,
		d.AppraisalNotes,
		d.HipScore,
		d.ElbowScore,
		d.EyeTest,
		d.DNAProfile,
		d.InbreedingCoefficient,
		d.Notes,
	}
}

func (r *dogRepository) Create(ctx context.Context, dog *entity.Dog) error {
	query := `
		INSERT INTO dogs (` + dogColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
		        $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28)
	`

	args := append(dogValues(dog), dog.CreatedAt, dog.UpdatedAt)
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		r.log.Error("Failed to create dog",
			zap.Error(err),
			zap.String("registered_name", dog.RegisteredName),
		)
		return fmt.Errorf("create dog %s: %w", dog.RegisteredName, wrapWriteErr(err))
	}

	return nil
}

func (r *dogRepository) findOne(ctx context.Context, where string, arg any) (*entity.Dog, error) {
	dog, err := scanDog(r.db.QueryRow(ctx, `SELECT `+dogColumns+` FROM dogs WHERE `+where, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return dog, err
}

func (r *dogRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Dog, error) {
	dog, err := r.findOne(ctx, "id = $1", id)
	if err != nil {
		r.log.Error("Failed to find dog by ID",
			zap.Error(err),
			zap.String("dog_id", id.String()),
		)
		return nil, fmt.Errorf("find dog by ID %s: %w", id.String(), err)
	}
	return dog, nil
}

func (r *dogRepository) FindByRegistrationNumber(ctx context.Context, number string) (*entity.Dog, error) {
	dog, err := r.findOne(ctx, "registration_number = $1", number)
	if err != nil {
		r.log.Error("Failed to find dog by registration number",
			zap.Error(err),
			zap.String("registration_number", number),
		)
		return nil, fmt.Errorf("find dog by registration number %s: %w", number, err)
	}
	return dog, nil
}

func (r *dogRepository) FindByMicrochip(ctx context.Context, microchip string) (*entity.Dog, error) {
	dog, err := r.findOne(ctx, "microchip = $1", microchip)
	if err != nil {
		r.log.Error("Failed to find dog by microchip",
			zap.Error(err),
			zap.String("microchip", microchip),
		)
		return nil, fmt.Errorf("find dog by microchip %s: %w", microchip, err)
	}
	return dog, nil
}

func (r *dogRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Dog, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.queryDogs(ctx, "find dogs by IDs",
		`SELECT `+dogColumns+` FROM dogs WHERE id = ANY($1)`, ids)
}

func dogWhere(filter entity.DogFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if q := strings.TrimSpace(filter.Query); q != "" {
		args = append(args, containsPattern(q))
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			`(registered_name ILIKE $%[1]d ESCAPE '\' OR call_name ILIKE $%[1]d ESCAPE '\'
			  OR registration_number ILIKE $%[1]d ESCAPE '\' OR microchip ILIKE $%[1]d ESCAPE '\')`, n))
	}
	if filter.Sex != "" {
		args = append(args, filter.Sex)
		conds = append(conds, fmt.Sprintf("sex = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.KennelID != nil {
		args = append(args, *filter.KennelID)
		conds = append(conds, fmt.Sprintf("kennel_id = $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *dogRepository) FindAll(ctx context.Context, limit, offset int, filter entity.DogFilter) ([]*entity.Dog, error) {
	where, args := dogWhere(filter)
	query := fmt.Sprintf(`SELECT %s FROM dogs%s ORDER BY registered_name LIMIT $%d OFFSET $%d`,
		dogColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	return r.queryDogs(ctx, "find all dogs", query, args...)
}

func (r *dogRepository) CountAll(ctx context.Context, filter entity.DogFilter) (int64, error) {
	where, args := dogWhere(filter)

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM dogs`+where, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count dogs", zap.Error(err))
		return 0, fmt.Errorf("count all dogs: %w", err)
	}

	return total, nil
}

// FindOffspring returns dogs that reference parentID as sire or dam.
func (r *dogRepository) FindOffspring(ctx context.Context, parentID uuid.UUID, limit int) ([]*entity.Dog, error) {
	query := `
		SELECT ` + dogColumns + `
		FROM dogs
		WHERE sire_id = $1 OR dam_id = $1
		ORDER BY date_of_birth NULLS LAST, registered_name
		LIMIT $2
	`
	return r.queryDogs(ctx, "find offspring", query, parentID, limit)
}

func (r *dogRepository) FindByLitter(ctx context.Context, litterID uuid.UUID) ([]*entity.Dog, error) {
	query := `SELECT ` + dogColumns + ` FROM dogs WHERE litter_id = $1 ORDER BY registered_name`
	return r.queryDogs(ctx, "find dogs by litter", query, litterID)
}

func (r *dogRepository) queryDogs(ctx context.Context, op, query string, args ...any) ([]*entity.Dog, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to "+op, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var dogs []*entity.Dog
	for rows.Next() {
		dog, err := scanDog(rows)
		if err != nil {
			r.log.Error("Failed to scan dog row", zap.Error(err))
			return nil, fmt.Errorf("scan dog row: %w", err)
		}
		dogs = append(dogs, dog)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("iterate dog rows: %w", err)
	}

	return dogs, nil
}

func (r *dogRepository) Update(ctx context.Context, dog *entity.Dog) error {
	query := `
		UPDATE dogs
		SET registered_name = $2, call_name = $3, registration_number = $4, microchip = $5,
		    sex = $6, date_of_birth = $7, date_of_death = $8, color = $9, status = $10,
		    sire_id = $11, dam_id = $12, kennel_id = $13, litter_id = $14,
		    breeder_name = $15, owner_name = $16, appraisal_score = $17,
		    appraisal_date = $18, appraisal_judge = $19, appraisal_notes = $20,
		    hip_score = $21, elbow_score = $22, eye_test = $23, dna_profile = $24,
		    inbreeding_coefficient = $25, notes = $26, updated_at = $27
		WHERE id = $1
	`

	args := append(dogValues(dog), dog.UpdatedAt)
	result, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to update dog",
			zap.Error(err),
			zap.String("dog_id", dog.ID.String()),
		)
		return fmt.Errorf("update dog %s: %w", dog.ID.String(), wrapWriteErr(err))
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("dog %s not found", dog.ID.String())
	}

	return nil
}

// Delete removes the dog. Foreign keys null out pedigree and litter
// references and cascade to attachments.
func (r *dogRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Exec(ctx, `DELETE FROM dogs WHERE id = $1`, id)
	if err != nil {
		r.log.Error("Failed to delete dog",
			zap.Error(err),
			zap.String("dog_id", id.String()),
		)
		return fmt.Errorf("delete dog %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("dog %s not found", id.String())
	}

	r.log.Info("Dog deleted", zap.String("dog_id", id.String()))
	return nil
}

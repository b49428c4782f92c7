package repository

import (
	"errors"
	"strings"

	"kennel-registry/pkg/database"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

var (
	// ErrDuplicate is returned when a write hits a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
	// ErrSessionNotFound is returned when revoking a token that is unknown
	// or already revoked.
	ErrSessionNotFound = errors.New("session not found or already revoked")
)

type Repository struct {
	User       UserRepository
	Session    SessionRepository
	Kennel     KennelRepository
	Dog        DogRepository
	Litter     LitterRepository
	Attachment AttachmentRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:       NewUserRepository(db, log),
		Session:    NewSessionRepository(db, log),
		Kennel:     NewKennelRepository(db, log),
		Dog:        NewDogRepository(db, log),
		Litter:     NewLitterRepository(db, log),
		Attachment: NewAttachmentRepository(db, log),
	}
}

// wrapWriteErr tags unique violations with ErrDuplicate so services can
// answer with a conflict instead of a server error.
func wrapWriteErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return errors.Join(ErrDuplicate, err)
	}
	return err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern that matches q literally anywhere
// in the column. Use it with ESCAPE '\'.
func containsPattern(q string) string {
	return "%" + likeEscaper.Replace(q) + "%"
}

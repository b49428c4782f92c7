package usecase

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"kennel-registry/internal/pedigree"
	"kennel-registry/pkg/utils"

	"github.com/google/uuid"
)

// Error kinds. Handlers map them to status codes with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("already exists")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is not active")
	ErrTooLarge           = errors.New("file too large")
)

var (
	ErrUserNotFound       = fmt.Errorf("member %w", ErrNotFound)
	ErrKennelNotFound     = fmt.Errorf("kennel %w", ErrNotFound)
	ErrDogNotFound        = fmt.Errorf("dog %w", ErrNotFound)
	ErrLitterNotFound     = fmt.Errorf("litter %w", ErrNotFound)
	ErrAttachmentNotFound = fmt.Errorf("attachment %w", ErrNotFound)

	ErrEmailTaken         = fmt.Errorf("email %w", ErrConflict)
	ErrKennelNameTaken    = fmt.Errorf("kennel name %w", ErrConflict)
	ErrRegistrationTaken  = fmt.Errorf("registration number %w", ErrConflict)
	ErrMicrochipTaken     = fmt.Errorf("microchip %w", ErrConflict)
	ErrDuplicateRecord    = fmt.Errorf("record %w", ErrConflict)
	ErrProtectedMember    = fmt.Errorf("%w: super admin accounts cannot be changed", ErrForbidden)
	ErrSelfDelete         = fmt.Errorf("%w: you cannot delete your own account", ErrForbidden)
)

// fieldError turns a lineage violation into the validation error shape.
func fieldError(err error) error {
	var v *pedigree.Violation
	if errors.As(err, &v) {
		return utils.NewFieldError(v.Field, v.Message)
	}
	return err
}

func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, utils.NewFieldError(field, "Must be a valid UUID")
	}
	return id, nil
}

// clean trims optional text and maps blank input to nil.
func clean(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func parseDate(field string, s *string) (*time.Time, error) {
	s = clean(s)
	if s == nil {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, utils.NewFieldError(field, "Must be a date in 2006-01-02 format")
	}
	return &t, nil
}

func parseOptionalID(field string, s *string) (*uuid.UUID, error) {
	id, err := utils.ParseUUIDPtr(clean(s))
	if err != nil {
		return nil, utils.NewFieldError(field, "Must be a valid UUID")
	}
	return id, nil
}

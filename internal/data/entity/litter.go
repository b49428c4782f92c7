package entity

import (
	"time"

	"github.com/google/uuid"
)

type Litter struct {
	Base
	SireID       *uuid.UUID `db:"sire_id"`
	DamID        *uuid.UUID `db:"dam_id"`
	DateOfBirth  time.Time  `db:"date_of_birth"`
	NumberOfPups int        `db:"number_of_pups"`
	KennelID     *uuid.UUID `db:"kennel_id"`
	Notes        *string    `db:"notes"`
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

type DogSex string

const (
	SexMale   DogSex = "MALE"
	SexFemale DogSex = "FEMALE"
)

type DogStatus string

const (
	DogStatusActive      DogStatus = "ACTIVE"
	DogStatusBreeding    DogStatus = "BREEDING"
	DogStatusRetired     DogStatus = "RETIRED"
	DogStatusDeceased    DogStatus = "DECEASED"
	DogStatusTransferred DogStatus = "TRANSFERRED"
)

// Dog is a registry entry. SireID and DamID are the pedigree edges.
type Dog struct {
	Base
	RegisteredName     string     `db:"registered_name"`
	CallName           *string    `db:"call_name"`
	RegistrationNumber *string    `db:"registration_number"`
	Microchip          *string    `db:"microchip"`
	Sex                DogSex     `db:"sex"`
	DateOfBirth        *time.Time `db:"date_of_birth"`
	DateOfDeath        *time.Time `db:"date_of_death"`
	Color              *string    `db:"color"`
	Status             DogStatus  `db:"status"`
	SireID             *uuid.UUID `db:"sire_id"`
	DamID              *uuid.UUID `db:"dam_id"`
	KennelID           *uuid.UUID `db:"kennel_id"`
	LitterID           *uuid.UUID `db:"litter_id"`
	BreederName        *string    `db:"breeder_name"`
	OwnerName          *string    `db:"owner_name"`

	AppraisalScore *int       `db:"appraisal_score"`
	AppraisalDate  *time.Time `db:"appraisal_date"`
	AppraisalJudge *string    `db:"appraisal_judge"`
	AppraisalNotes *string    `db:"appraisal_notes"`

	HipScore   *string `db:"hip_score"`
	ElbowScore *string `db:"elbow_score"`
	EyeTest    *string `db:"eye_test"`
	DNAProfile *string `db:"dna_profile"`

	InbreedingCoefficient *float64 `db:"inbreeding_coefficient"`
	Notes                 *string  `db:"notes"`
}

// DogFilter narrows dog listings. Zero values mean "any".
type DogFilter struct {
	Query    string
	Sex      DogSex
	Status   DogStatus
	KennelID *uuid.UUID
}

package response

import (
	"time"

	"kennel-registry/internal/data/entity"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}

func idString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

type DogSummary struct {
	ID                 string           `json:"id"`
	RegisteredName     string           `json:"registeredName"`
	CallName           *string          `json:"callName,omitempty"`
	RegistrationNumber *string          `json:"registrationNumber,omitempty"`
	Sex                entity.DogSex    `json:"sex"`
	DateOfBirth        *string          `json:"dateOfBirth,omitempty"`
	Color              *string          `json:"color,omitempty"`
	Status             entity.DogStatus `json:"status"`
}

type DogResponse struct {
	ID                 string           `json:"id"`
	RegisteredName     string           `json:"registeredName"`
	CallName           *string          `json:"callName"`
	RegistrationNumber *string          `json:"registrationNumber"`
	Microchip          *string          `json:"microchip"`
	Sex                entity.DogSex    `json:"sex"`
	DateOfBirth        *string          `json:"dateOfBirth"`
	DateOfDeath        *string          `json:"dateOfDeath"`
	Color              *string          `json:"color"`
	Status             entity.DogStatus `json:"status"`
	SireID             *string          `json:"sireId"`
	DamID              *string          `json:"damId"`
	KennelID           *string          `json:"kennelId"`
	LitterID           *string          `json:"litterId"`
	BreederName        *string          `json:"breederName"`
	OwnerName          *string          `json:"ownerName"`

	AppraisalScore *int    `json:"appraisalScore"`
	AppraisalDate  *string `json:"appraisalDate"`
	AppraisalJudge *string `json:"appraisalJudge"`
	AppraisalNotes *string `json:"appraisalNotes"`

	HipScore   *string `json:"hipScore"`
	ElbowScore *string `json:"elbowScore"`
	EyeTest    *string `json:"eyeTest"`
	DNAProfile *string `json:"dnaProfile"`

	InbreedingCoefficient *float64  `json:"inbreedingCoefficient"`
	Notes                 *string   `json:"notes"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`

	Sire   *DogSummary    `json:"sire,omitempty"`
	Dam    *DogSummary    `json:"dam,omitempty"`
	Kennel *KennelSummary `json:"kennel,omitempty"`
}

func DogToSummary(d *entity.Dog) *DogSummary {
	if d == nil {
		return nil
	}
	return &DogSummary{
		ID:                 d.ID.String(),
		RegisteredName:     d.RegisteredName,
		CallName:           d.CallName,
		RegistrationNumber: d.RegistrationNumber,
		Sex:                d.Sex,
		DateOfBirth:        formatDate(d.DateOfBirth),
		Color:              d.Color,
		Status:             d.Status,
	}
}

func DogsToSummaries(dogs []*entity.Dog) []DogSummary {
	out := make([]DogSummary, 0, len(dogs))
	for _, d := range dogs {
		out = append(out, *DogToSummary(d))
	}
	return out
}

func DogToResponse(d *entity.Dog) DogResponse {
	return DogResponse{
		ID:                    d.ID.String(),
		RegisteredName:        d.RegisteredName,
		CallName:              d.CallName,
		RegistrationNumber:    d.RegistrationNumber,
		Microchip:             d.Microchip,
		Sex:                   d.Sex,
		DateOfBirth:           formatDate(d.DateOfBirth),
		DateOfDeath:           formatDate(d.DateOfDeath),
		Color:                 d.Color,
		Status:                d.Status,
		SireID:                idString(d.SireID),
		DamID:                 idString(d.DamID),
		KennelID:              idString(d.KennelID),
		LitterID:              idString(d.LitterID),
		BreederName:           d.BreederName,
		OwnerName:             d.OwnerName,
		AppraisalScore:        d.AppraisalScore,
		AppraisalDate:         formatDate(d.AppraisalDate),
		AppraisalJudge:        d.AppraisalJudge,
		AppraisalNotes:        d.AppraisalNotes,
		HipScore:              d.HipScore,
		ElbowScore:            d.ElbowScore,
		EyeTest:               d.EyeTest,
		DNAProfile:            d.DNAProfile,
		InbreedingCoefficient: d.InbreedingCoefficient,
		Notes:                 d.Notes,
		CreatedAt:             d.CreatedAt,
		UpdatedAt:             d.UpdatedAt,
	}
}

package response

import (
	"time"

	"kennel-registry/internal/data/entity"
)

type LitterResponse struct {
	ID           string         `json:"id"`
	SireID       *string        `json:"sireId"`
	DamID        *string        `json:"damId"`
	DateOfBirth  string         `json:"dateOfBirth"`
	NumberOfPups int            `json:"numberOfPups"`
	KennelID     *string        `json:"kennelId"`
	Notes        *string        `json:"notes"`
	CreatedAt    time.Time      `json:"createdAt"`
	UpdatedAt    time.Time      `json:"updatedAt"`
	Sire         *DogSummary    `json:"sire,omitempty"`
	Dam          *DogSummary    `json:"dam,omitempty"`
	Kennel       *KennelSummary `json:"kennel,omitempty"`
}

type LitterDetailResponse struct {
	LitterResponse
	Puppies []DogSummary `json:"puppies"`
}

func LitterToResponse(l *entity.Litter) LitterResponse {
	return LitterResponse{
		ID:           l.ID.String(),
		SireID:       idString(l.SireID),
		DamID:        idString(l.DamID),
		DateOfBirth:  l.DateOfBirth.Format(dateLayout),
		NumberOfPups: l.NumberOfPups,
		KennelID:     idString(l.KennelID),
		Notes:        l.Notes,
		CreatedAt:    l.CreatedAt,
		UpdatedAt:    l.UpdatedAt,
	}
}

package request

type LitterRequest struct {
	SireID       *string `json:"sireId,omitempty" validate:"omitempty,uuid"`
	DamID        *string `json:"damId,omitempty" validate:"omitempty,uuid"`
	DateOfBirth  string  `json:"dateOfBirth" validate:"required,datetime=2006-01-02"`
	NumberOfPups int     `json:"numberOfPups" validate:"required,min=1,max=30"`
	KennelID     *string `json:"kennelId,omitempty" validate:"omitempty,uuid"`
	Notes        *string `json:"notes,omitempty" validate:"omitempty,max=5000"`
}

package request

// DogRequest is the full dog record for create and replace. Normalize maps
// blank optional fields, ids and dates included, to "not set".
type DogRequest struct {
	RegisteredName     string  `json:"registeredName" validate:"required,min=2,max=200"`
	CallName           *string `json:"callName,omitempty" validate:"omitempty,max=100"`
	RegistrationNumber *string `json:"registrationNumber,omitempty" validate:"omitempty,max=50"`
	Microchip          *string `json:"microchip,omitempty" validate:"omitempty,max=30"`
	Sex                string  `json:"sex" validate:"required,oneof=MALE FEMALE"`
	DateOfBirth        *string `json:"dateOfBirth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DateOfDeath        *string `json:"dateOfDeath,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Color              *string `json:"color,omitempty" validate:"omitempty,max=100"`
	Status             string  `json:"status,omitempty" validate:"omitempty,oneof=ACTIVE BREEDING RETIRED DECEASED TRANSFERRED"`
	SireID             *string `json:"sireId,omitempty" validate:"omitempty,uuid"`
	DamID              *string `json:"damId,omitempty" validate:"omitempty,uuid"`
	KennelID           *string `json:"kennelId,omitempty" validate:"omitempty,uuid"`
	LitterID           *string `json:"litterId,omitempty" validate:"omitempty,uuid"`
	BreederName        *string `json:"breederName,omitempty" validate:"omitempty,max=150"`
	OwnerName          *string `json:"ownerName,omitempty" validate:"omitempty,max=150"`

	AppraisalScore *int    `json:"appraisalScore,omitempty" validate:"omitempty,gte=0,lte=100"`
	AppraisalDate  *string `json:"appraisalDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	AppraisalJudge *string `json:"appraisalJudge,omitempty" validate:"omitempty,max=150"`
	AppraisalNotes *string `json:"appraisalNotes,omitempty" validate:"omitempty,max=5000"`

	HipScore   *string `json:"hipScore,omitempty" validate:"omitempty,max=50"`
	ElbowScore *string `json:"elbowScore,omitempty" validate:"omitempty,max=50"`
	EyeTest    *string `json:"eyeTest,omitempty" validate:"omitempty,max=100"`
	DNAProfile *string `json:"dnaProfile,omitempty" validate:"omitempty,max=200"`

	InbreedingCoefficient *float64 `json:"inbreedingCoefficient,omitempty" validate:"omitempty,gte=0,lte=1"`
	Notes                 *string  `json:"notes,omitempty" validate:"omitempty,max=5000"`
}

type DogListQuery struct {
	PaginatedRequest
	Query    string
	Sex      string `validate:"omitempty,oneof=MALE FEMALE"`
	Status   string `validate:"omitempty,oneof=ACTIVE BREEDING RETIRED DECEASED TRANSFERRED"`
	KennelID string `validate:"omitempty,uuid"`
}

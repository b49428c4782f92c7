package request

type KennelRequest struct {
	Name         string  `json:"name" validate:"required,min=2,max=150"`
	Prefix       *string `json:"prefix,omitempty" validate:"omitempty,max=50"`
	OwnerName    *string `json:"ownerName,omitempty" validate:"omitempty,max=150"`
	ContactEmail *string `json:"contactEmail,omitempty" validate:"omitempty,email,max=255"`
	Phone        *string `json:"phone,omitempty" validate:"omitempty,max=30"`
	Website      *string `json:"website,omitempty" validate:"omitempty,url,max=255"`
	City         *string `json:"city,omitempty" validate:"omitempty,max=100"`
	Country      *string `json:"country,omitempty" validate:"omitempty,max=100"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=5000"`
	IsActive     *bool   `json:"isActive,omitempty"`
}

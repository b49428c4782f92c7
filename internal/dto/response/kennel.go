package response

import (
	"time"

	"kennel-registry/internal/data/entity"
)

type KennelSummary struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Prefix *string `json:"prefix,omitempty"`
}

type KennelResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Prefix       *string   `json:"prefix"`
	OwnerName    *string   `json:"ownerName"`
	ContactEmail *string   `json:"contactEmail"`
	Phone        *string   `json:"phone"`
	Website      *string   `json:"website"`
	City         *string   `json:"city"`
	Country      *string   `json:"country"`
	Description  *string   `json:"description"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type KennelDetailResponse struct {
	KennelResponse
	Dogs []DogSummary `json:"dogs"`
}

func KennelToSummary(k *entity.Kennel) *KennelSummary {
	if k == nil {
		return nil
	}
	return &KennelSummary{ID: k.ID.String(), Name: k.Name, Prefix: k.Prefix}
}

func KennelToResponse(k *entity.Kennel) KennelResponse {
	return KennelResponse{
		ID:           k.ID.String(),
		Name:         k.Name,
		Prefix:       k.Prefix,
		OwnerName:    k.OwnerName,
		ContactEmail: k.ContactEmail,
		Phone:        k.Phone,
		Website:      k.Website,
		City:         k.City,
		Country:      k.Country,
		Description:  k.Description,
		IsActive:     k.IsActive,
		CreatedAt:    k.CreatedAt,
		UpdatedAt:    k.UpdatedAt,
	}
}

package request

type MemberCreateRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required,oneof=MEMBER ADMIN"`
	IsActive *bool  `json:"isActive,omitempty"`
}

// MemberUpdateRequest changes only the fields that are present.
type MemberUpdateRequest struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Name     *string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8,max=72"`
	Role     *string `json:"role,omitempty" validate:"omitempty,oneof=MEMBER ADMIN"`
	IsActive *bool   `json:"isActive,omitempty"`
}

type MemberListQuery struct {
	PaginatedRequest
	Query    string
	Role     string `validate:"omitempty,oneof=MEMBER ADMIN SUPER_ADMIN"`
	IsActive *bool
}

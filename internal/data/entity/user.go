package entity

type UserRole string

const (
	RoleMember     UserRole = "MEMBER"
	RoleAdmin      UserRole = "ADMIN"
	RoleSuperAdmin UserRole = "SUPER_ADMIN"
)

// IsAdmin reports whether the role may use the admin area.
func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// IsMember reports whether the role may browse the registry.
func (r UserRole) IsMember() bool {
	return r == RoleMember || r.IsAdmin()
}

func (r UserRole) Valid() bool {
	return r.IsMember()
}

type User struct {
	Base
	Email        string   `db:"email"`
	Name         string   `db:"name"`
	PasswordHash string   `db:"password"`
	Role         UserRole `db:"role"`
	IsActive     bool     `db:"is_active"`
}

// Protected reports whether the account is out of reach of the member API.
func (u *User) Protected() bool {
	return u.Role == RoleSuperAdmin
}

// UserFilter narrows member listings. Zero values mean "any".
type UserFilter struct {
	Query    string
	Role     UserRole
	IsActive *bool
}

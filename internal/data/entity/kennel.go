package entity

type Kennel struct {
	Base
	Name         string  `db:"name"`
	Prefix       *string `db:"prefix"`
	OwnerName    *string `db:"owner_name"`
	ContactEmail *string `db:"contact_email"`
	Phone        *string `db:"phone"`
	Website      *string `db:"website"`
	City         *string `db:"city"`
	Country      *string `db:"country"`
	Description  *string `db:"description"`
	IsActive     bool    `db:"is_active"`
}

package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base is embedded by every mutable registry record. Rows are hard deleted,
// so there is no deleted_at column.
type Base struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type BaseSimple struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
}

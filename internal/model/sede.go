package model

import (
	"time"

	"github.com/google/uuid"
)

// Sede is a physical branch. Vehicles, articles and ledger rows belong to one.
type Sede struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre    string    `gorm:"type:varchar(100);not null"`
	Direccion *string   `gorm:"type:varchar(150)"`
	Telefono  *string   `gorm:"type:varchar(20)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides GORM's default pluralization (sedes is already plural in Spanish).
func (Sede) TableName() string { return "sedes" }

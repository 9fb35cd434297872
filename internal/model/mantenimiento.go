package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Mantenimiento records a service performed on a vehicle.
type Mantenimiento struct {
	ID            uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	VehiculoID    uuid.UUID        `gorm:"type:uuid;not null;index"`
	FechaServicio *time.Time       `gorm:"type:date"`
	Servicio      string           `gorm:"type:varchar(255);not null"`
	Taller        *string          `gorm:"type:varchar(100)"`
	Costo         *decimal.Decimal `gorm:"type:decimal(15,2)"`
	Observaciones *string          `gorm:"type:text"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

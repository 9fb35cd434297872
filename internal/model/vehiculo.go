package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Vehiculo is a motorcycle held in inventory, sold, or taken as collateral.
// Estado: "disponible" | "empeño" | "vendido" | "baja"
type Vehiculo struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Marca            string           `gorm:"type:varchar(100)"`
	Modelo           string           `gorm:"type:varchar(50)"`
	Placa            *string          `gorm:"type:varchar(20);uniqueIndex"`
	Cilindraje       *string          `gorm:"type:varchar(20)"`
	Color            *string          `gorm:"type:varchar(50)"`
	PrecioCompra     *decimal.Decimal `gorm:"type:decimal(15,2)"`
	PrecioVenta      *decimal.Decimal `gorm:"type:decimal(15,2)"`
	SoatVencimiento  *time.Time       `gorm:"type:date"`
	TecnoVencimiento *time.Time       `gorm:"type:date"`
	SedeID           *uuid.UUID       `gorm:"type:uuid;index"`
	Estado           string           `gorm:"type:varchar(20);not null;default:'disponible';index"`

	DatosEmpeno `gorm:"embedded"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Resumen is the short display string used in ledger listings.
func (v *Vehiculo) Resumen() string {
	s := strings.TrimSpace(v.Marca + " " + v.Modelo)
	if v.Placa != nil && *v.Placa != "" {
		s = fmt.Sprintf("%s - %s", s, *v.Placa)
	}
	return s
}

// Bien projects the row onto the pawn view.
func (v *Vehiculo) Bien() Bien {
	valor := decimal.Zero
	if v.PrecioCompra != nil {
		valor = *v.PrecioCompra
	}
	return Bien{
		Clase:           ClaseVehiculo,
		ID:              v.ID,
		SedeID:          v.SedeID,
		Estado:          v.Estado,
		ValorRegistrado: valor,
		Descripcion:     v.Resumen(),
		Empeno:          v.DatosEmpeno,
	}
}

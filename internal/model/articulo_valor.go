package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ArticuloValor is a valuable article (jewellery, electronics...) bought,
// sold, or held as collateral.
// Estado: "disponible" | "empeño" | "vendido" | "recuperado"
type ArticuloValor struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Descripcion   string          `gorm:"type:varchar(255);not null"`
	Valor         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	FechaRegistro time.Time       `gorm:"type:date;not null"`
	SedeID        *uuid.UUID      `gorm:"type:uuid;index"`
	Estado        string          `gorm:"type:varchar(20);not null;default:'disponible';index"`

	DatosEmpeno `gorm:"embedded"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName keeps the original table name.
func (ArticuloValor) TableName() string { return "articulos_valor" }

func (a *ArticuloValor) Bien() Bien {
	return Bien{
		Clase:           ClaseArticulo,
		ID:              a.ID,
		SedeID:          a.SedeID,
		Estado:          a.Estado,
		ValorRegistrado: a.Valor,
		Descripcion:     a.Descripcion,
		Empeno:          a.DatosEmpeno,
	}
}

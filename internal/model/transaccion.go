package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TipoVentaVehiculo      = "venta_vehiculo"
	TipoVentaArticulo      = "venta_articulo"
	TipoEmpenoArticulo     = "empeño_articulo"
	TipoRecuperacionEmpeno = "recuperacion_empeño"
	TipoEmpenoVehiculo     = "empeño_vehiculo"
)

// Transaccion is an immutable ledger row. Rows are only ever created or, by
// an administrator reversal, deleted. Ganancia = PrecioVenta - PrecioCompra.
//
// VehiculoID / ArticuloID are weak references: no foreign key is declared, so
// deleting the referenced row leaves the ledger intact.
type Transaccion struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Tipo             string          `gorm:"type:varchar(30);not null;index"`
	VehiculoID       *uuid.UUID      `gorm:"type:uuid;index"`
	ArticuloID       *uuid.UUID      `gorm:"type:uuid;index"`
	UsuarioID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	SedeID           *uuid.UUID      `gorm:"type:uuid;index"`
	PrecioVenta      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	PrecioCompra     decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Ganancia         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	ClienteNombre    *string         `gorm:"type:varchar(100)"`
	ClienteTelefono  *string         `gorm:"type:varchar(20)"`
	ClienteDocumento *string         `gorm:"type:varchar(20)"`
	Observaciones    *string         `gorm:"type:text"`
	FechaTransaccion time.Time       `gorm:"not null;index"`

	Vehiculo *Vehiculo      `gorm:"foreignKey:VehiculoID"`
	Articulo *ArticuloValor `gorm:"foreignKey:ArticuloID"`
	Usuario  *Usuario       `gorm:"foreignKey:UsuarioID"`
}

// TableName overrides GORM's default pluralization (transaccions → transacciones).
func (Transaccion) TableName() string { return "transacciones" }

// Clase returns the pawnable family the row references, if any.
func (t *Transaccion) Clase() (ClaseBien, uuid.UUID, bool) {
	switch {
	case t.VehiculoID != nil:
		return ClaseVehiculo, *t.VehiculoID, true
	case t.ArticuloID != nil:
		return ClaseArticulo, *t.ArticuloID, true
	}
	return "", uuid.Nil, false
}

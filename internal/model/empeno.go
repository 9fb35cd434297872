package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estados shared by vehicles and articles. Vehicles use "baja" for
// decommissioned units; articles use "recuperado" once the owner pays off
// the pawn.
const (
	EstadoDisponible = "disponible"
	EstadoEmpeno     = "empeño"
	EstadoVendido    = "vendido"
	EstadoBaja       = "baja"
	EstadoRecuperado = "recuperado"
)

// ClaseBien identifies the pawnable family of a row.
type ClaseBien string

const (
	ClaseVehiculo ClaseBien = "vehiculo"
	ClaseArticulo ClaseBien = "articulo"
)

// DatosEmpeno holds the pawn columns of a pawnable row. ValorEmpeno,
// InteresPorcentaje and FechaEmpeno are either all set (the row is pawned) or
// all NULL.
type DatosEmpeno struct {
	ValorEmpeno       *decimal.Decimal `gorm:"column:valor_empeno;type:decimal(15,2)"`
	InteresPorcentaje *decimal.Decimal `gorm:"column:interes_porcentaje;type:decimal(5,2)"`
	FechaEmpeno       *time.Time       `gorm:"column:fecha_empeno;type:date"`
	ClienteNombre     *string          `gorm:"column:cliente_nombre;type:varchar(100)"`
	ClienteTelefono   *string          `gorm:"column:cliente_telefono;type:varchar(20)"`
	ClienteDocumento  *string          `gorm:"column:cliente_documento;type:varchar(20)"`
}

// Completo reports whether principal, rate and date are all present.
func (d DatosEmpeno) Completo() bool {
	return d.ValorEmpeno != nil && d.InteresPorcentaje != nil && d.FechaEmpeno != nil
}

// Bien is the typed pawn view of a Vehiculo or an ArticuloValor, built once at
// the repository boundary and passed by value to the services.
type Bien struct {
	Clase  ClaseBien
	ID     uuid.UUID
	SedeID *uuid.UUID
	Estado string
	// ValorRegistrado is the recorded value of the row: precio_compra for
	// vehicles, valor for articles. It is the default cost basis of a sale
	// and the minimum price of a flat recovery.
	ValorRegistrado decimal.Decimal
	Descripcion     string
	Empeno          DatosEmpeno
}

// EstadoTrasLiquidar returns the status a fully settled pawn moves to.
func (c ClaseBien) EstadoTrasLiquidar() string {
	if c == ClaseArticulo {
		return EstadoRecuperado
	}
	return EstadoDisponible
}

// TipoEmpeno returns the ledger type recorded when a row of this family is pawned.
func (c ClaseBien) TipoEmpeno() string {
	if c == ClaseArticulo {
		return TipoEmpenoArticulo
	}
	return TipoEmpenoVehiculo
}

// Etiqueta is the display name used in messages.
func (c ClaseBien) Etiqueta() string {
	if c == ClaseArticulo {
		return "artículo"
	}
	return "vehículo"
}

func (c ClaseBien) Valida() bool {
	return c == ClaseVehiculo || c == ClaseArticulo
}

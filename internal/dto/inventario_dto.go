package dto

import "github.com/shopspring/decimal"

// ─── Sedes ───────────────────────────────────────────────────────────────────

type SedeRequest struct {
	Nombre    string  `json:"nombre"    validate:"required,min=2,max=100"`
	Direccion *string `json:"direccion" validate:"omitempty,max=150"`
	Telefono  *string `json:"telefono"  validate:"omitempty,max=20"`
}

type SedeResponse struct {
	ID        string  `json:"id"`
	Nombre    string  `json:"nombre"`
	Direccion *string `json:"direccion"`
	Telefono  *string `json:"telefono"`
}

// ─── Vehículos ───────────────────────────────────────────────────────────────

type CrearVehiculoRequest struct {
	Marca            string           `json:"marca"             validate:"required,max=100"`
	Modelo           string           `json:"modelo"            validate:"required,max=50"`
	Placa            *string          `json:"placa"             validate:"omitempty,max=20"`
	Cilindraje       *string          `json:"cilindraje"        validate:"omitempty,max=20"`
	Color            *string          `json:"color"             validate:"omitempty,max=50"`
	PrecioCompra     *decimal.Decimal `json:"precio_compra"`
	PrecioVenta      *decimal.Decimal `json:"precio_venta"`
	SoatVencimiento  *string          `json:"soat_vencimiento"  validate:"omitempty,datetime=2006-01-02"`
	TecnoVencimiento *string          `json:"tecno_vencimiento" validate:"omitempty,datetime=2006-01-02"`
	SedeID           *string          `json:"sede_id"           validate:"omitempty,uuid"`
}

// ActualizarVehiculoRequest is a partial update. Estado only accepts the
// states reachable by hand; pawn and sale states go through their own flows.
type ActualizarVehiculoRequest struct {
	Marca            *string          `json:"marca"             validate:"omitempty,max=100"`
	Modelo           *string          `json:"modelo"            validate:"omitempty,max=50"`
	Placa            *string          `json:"placa"             validate:"omitempty,max=20"`
	Cilindraje       *string          `json:"cilindraje"        validate:"omitempty,max=20"`
	Color            *string          `json:"color"             validate:"omitempty,max=50"`
	PrecioCompra     *decimal.Decimal `json:"precio_compra"`
	PrecioVenta      *decimal.Decimal `json:"precio_venta"`
	SoatVencimiento  *string          `json:"soat_vencimiento"  validate:"omitempty,datetime=2006-01-02"`
	TecnoVencimiento *string          `json:"tecno_vencimiento" validate:"omitempty,datetime=2006-01-02"`
	SedeID           *string          `json:"sede_id"           validate:"omitempty,uuid"`
	Estado           *string          `json:"estado"            validate:"omitempty,oneof=disponible baja"`
}

type VehiculoFilter struct {
	Estado string `form:"estado"`
	SedeID string `form:"sede_id" validate:"omitempty,uuid"`
}

type VehiculoResponse struct {
	ID                string           `json:"id"`
	Marca             string           `json:"marca"`
	Modelo            string           `json:"modelo"`
	Placa             *string          `json:"placa"`
	Cilindraje        *string          `json:"cilindraje"`
	Color             *string          `json:"color"`
	PrecioCompra      *decimal.Decimal `json:"precio_compra"`
	PrecioVenta       *decimal.Decimal `json:"precio_venta"`
	SoatVencimiento   *string          `json:"soat_vencimiento"`
	TecnoVencimiento  *string          `json:"tecno_vencimiento"`
	SedeID            *string          `json:"sede_id"`
	Estado            string           `json:"estado"`
	ValorEmpeno       *decimal.Decimal `json:"valor_empeno"`
	InteresPorcentaje *decimal.Decimal `json:"interes_porcentaje"`
	FechaEmpeno       *string          `json:"fecha_empeno"`
	ClienteNombre     *string          `json:"cliente_nombre"`
}

// ─── Artículos de valor ──────────────────────────────────────────────────────

type CrearArticuloRequest struct {
	Descripcion   string          `json:"descripcion"    validate:"required,min=2,max=255"`
	Valor         decimal.Decimal `json:"valor"          validate:"min=0"`
	FechaRegistro *string         `json:"fecha_registro" validate:"omitempty,datetime=2006-01-02"`
	SedeID        *string         `json:"sede_id"        validate:"omitempty,uuid"`
}

type ActualizarArticuloRequest struct {
	Descripcion *string          `json:"descripcion" validate:"omitempty,min=2,max=255"`
	Valor       *decimal.Decimal `json:"valor"`
	SedeID      *string          `json:"sede_id"     validate:"omitempty,uuid"`
	Estado      *string          `json:"estado"      validate:"omitempty,oneof=disponible"`
}

type ArticuloFilter struct {
	Estado string `form:"estado"`
	SedeID string `form:"sede_id" validate:"omitempty,uuid"`
}

type ArticuloResponse struct {
	ID                string           `json:"id"`
	Descripcion       string           `json:"descripcion"`
	Valor             decimal.Decimal  `json:"valor"`
	FechaRegistro     string           `json:"fecha_registro"`
	SedeID            *string          `json:"sede_id"`
	Estado            string           `json:"estado"`
	ValorEmpeno       *decimal.Decimal `json:"valor_empeno"`
	InteresPorcentaje *decimal.Decimal `json:"interes_porcentaje"`
	FechaEmpeno       *string          `json:"fecha_empeno"`
	ClienteNombre     *string          `json:"cliente_nombre"`
}

// ─── Mantenimientos ──────────────────────────────────────────────────────────

type MantenimientoRequest struct {
	VehiculoID    string           `json:"vehiculo_id"    validate:"required,uuid"`
	FechaServicio *string          `json:"fecha_servicio" validate:"omitempty,datetime=2006-01-02"`
	Servicio      string           `json:"servicio"       validate:"required,min=2,max=255"`
	Taller        *string          `json:"taller"         validate:"omitempty,max=100"`
	Costo         *decimal.Decimal `json:"costo"`
	Observaciones *string          `json:"observaciones"`
}

type MantenimientoResponse struct {
	ID            string           `json:"id"`
	VehiculoID    string           `json:"vehiculo_id"`
	FechaServicio *string          `json:"fecha_servicio"`
	Servicio      string           `json:"servicio"`
	Taller        *string          `json:"taller"`
	Costo         *decimal.Decimal `json:"costo"`
	Observaciones *string          `json:"observaciones"`
}

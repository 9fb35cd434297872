package dto

import "github.com/shopspring/decimal"

// ─── Filter / List ──────────────────────────────────────────────────────────

// TransaccionFilter is bound from the query string of GET /v1/transacciones.
// UsuarioID is only honoured for administrators; sellers always see their own rows.
type TransaccionFilter struct {
	Tipo      string `form:"tipo"`
	SedeID    string `form:"sede_id"    validate:"omitempty,uuid"`
	UsuarioID string `form:"usuario_id" validate:"omitempty,uuid"`
	Skip      int    `form:"skip,default=0"    validate:"min=0"`
	Limit     int    `form:"limit,default=100" validate:"min=0"`
}

// EstadisticasFilter is bound from the query string of GET /v1/transacciones/estadisticas.
// Dates are inclusive calendar days (YYYY-MM-DD).
type EstadisticasFilter struct {
	FechaInicio string `form:"fecha_inicio" validate:"omitempty,datetime=2006-01-02"`
	FechaFin    string `form:"fecha_fin"    validate:"omitempty,datetime=2006-01-02"`
	SedeID      string `form:"sede_id"      validate:"omitempty,uuid"`
	UsuarioID   string `form:"-"`
}

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearTransaccionRequest struct {
	Tipo             string           `json:"tipo"              validate:"required"`
	VehiculoID       *string          `json:"vehiculo_id"       validate:"omitempty,uuid"`
	ArticuloID       *string          `json:"articulo_id"       validate:"omitempty,uuid"`
	PrecioVenta      decimal.Decimal  `json:"precio_venta"      validate:"min=0"`
	PrecioCompra     *decimal.Decimal `json:"precio_compra"`
	ClienteNombre    *string          `json:"cliente_nombre"    validate:"omitempty,max=100"`
	ClienteTelefono  *string          `json:"cliente_telefono"  validate:"omitempty,max=20"`
	ClienteDocumento *string          `json:"cliente_documento" validate:"omitempty,max=20"`
	ClienteEmail     *string          `json:"cliente_email"     validate:"omitempty,email"`
	Observaciones    *string          `json:"observaciones"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type TransaccionCreadaResponse struct {
	Mensaje  string          `json:"mensaje"`
	ID       string          `json:"id"`
	Tipo     string          `json:"tipo"`
	Ganancia decimal.Decimal `json:"ganancia"`
}

type TransaccionResponse struct {
	ID               string          `json:"id"`
	Tipo             string          `json:"tipo"`
	VehiculoID       *string         `json:"vehiculo_id"`
	ArticuloID       *string         `json:"articulo_id"`
	UsuarioID        string          `json:"usuario_id"`
	SedeID           *string         `json:"sede_id"`
	PrecioVenta      decimal.Decimal `json:"precio_venta"`
	PrecioCompra     decimal.Decimal `json:"precio_compra"`
	Ganancia         decimal.Decimal `json:"ganancia"`
	ClienteNombre    *string         `json:"cliente_nombre"`
	ClienteTelefono  *string         `json:"cliente_telefono"`
	ClienteDocumento *string         `json:"cliente_documento"`
	Observaciones    *string         `json:"observaciones"`
	FechaTransaccion string          `json:"fecha_transaccion"`
	// Display strings, omitted when the referenced row no longer exists.
	VehiculoInfo  *string `json:"vehiculo_info,omitempty"`
	ArticuloInfo  *string `json:"articulo_info,omitempty"`
	UsuarioNombre *string `json:"usuario_nombre,omitempty"`
}

type EstadisticaTipo struct {
	Tipo             string          `json:"tipo"`
	Cantidad         int64           `json:"cantidad"`
	TotalVentas      decimal.Decimal `json:"total_ventas"`
	TotalGanancias   decimal.Decimal `json:"total_ganancias"`
	GananciaPromedio decimal.Decimal `json:"ganancia_promedio"`
}

type EstadisticasResponse struct {
	TotalTransacciones int64             `json:"total_transacciones"`
	TotalVentas        decimal.Decimal   `json:"total_ventas"`
	TotalGanancias     decimal.Decimal   `json:"total_ganancias"`
	GananciaPromedio   decimal.Decimal   `json:"ganancia_promedio"`
	PorTipo            []EstadisticaTipo `json:"por_tipo"`
}

type ReversionResponse struct {
	Mensaje          string  `json:"mensaje"`
	ID               string  `json:"id"`
	Tipo             string  `json:"tipo"`
	Clase            string  `json:"clase,omitempty"`
	BienID           *string `json:"bien_id,omitempty"`
	EstadoRestaurado string  `json:"estado_restaurado,omitempty"`
}

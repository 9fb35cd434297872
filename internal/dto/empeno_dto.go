package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// CrearEmpenoRequest pawns an available vehicle or article.
type CrearEmpenoRequest struct {
	ValorEmpeno       decimal.Decimal `json:"valor_empeno"       validate:"required,gt=0"`
	InteresPorcentaje decimal.Decimal `json:"interes_porcentaje" validate:"min=0,max=100"`
	ClienteNombre     string          `json:"cliente_nombre"     validate:"required,min=2,max=100"`
	ClienteTelefono   *string         `json:"cliente_telefono"   validate:"omitempty,max=20"`
	ClienteDocumento  *string         `json:"cliente_documento"  validate:"omitempty,max=20"`
	// ClienteEmail is not stored; when present the receipt is mailed to it.
	ClienteEmail  *string `json:"cliente_email"  validate:"omitempty,email"`
	Observaciones *string `json:"observaciones"`
}

// AbonoRequest is a payment against an outstanding pawn.
type AbonoRequest struct {
	MontoAbono   decimal.Decimal `json:"monto_abono"`
	ClienteEmail *string         `json:"cliente_email" validate:"omitempty,email"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type EmpenoCreadoResponse struct {
	Mensaje           string          `json:"mensaje"`
	Clase             string          `json:"clase"`
	BienID            string          `json:"bien_id"`
	TransaccionID     string          `json:"transaccion_id"`
	ValorEmpeno       decimal.Decimal `json:"valor_empeno"`
	InteresPorcentaje decimal.Decimal `json:"interes_porcentaje"`
	FechaEmpeno       string          `json:"fecha_empeno"`
	Cliente           string          `json:"cliente"`
}

// AbonoResponse reports the outcome of a payment. A partial payment is a
// valid outcome: Recuperado=false and SaldoPendiente carries the balance.
type AbonoResponse struct {
	Mensaje          string          `json:"mensaje"`
	Clase            string          `json:"clase"`
	BienID           string          `json:"bien_id"`
	Recuperado       bool            `json:"recuperado"`
	Estado           string          `json:"estado"`
	MontoAbono       decimal.Decimal `json:"monto_abono"`
	ValorActual      decimal.Decimal `json:"valor_actual"`
	InteresAcumulado decimal.Decimal `json:"interes_acumulado"`
	Periodos         int             `json:"meses_transcurridos"`
	Cambio           decimal.Decimal `json:"cambio"`
	SaldoPendiente   decimal.Decimal `json:"saldo_pendiente"`
}

// EmpenoResponse is the accrual snapshot of a pawned row.
type EmpenoResponse struct {
	Clase             string          `json:"clase"`
	ID                string          `json:"id"`
	Descripcion       string          `json:"descripcion"`
	SedeID            *string         `json:"sede_id"`
	Estado            string          `json:"estado"`
	ValorEmpeno       decimal.Decimal `json:"valor_empeno"`
	InteresPorcentaje decimal.Decimal `json:"interes_porcentaje"`
	FechaEmpeno       string          `json:"fecha_empeno"`
	ClienteNombre     *string         `json:"cliente_nombre"`
	ClienteTelefono   *string         `json:"cliente_telefono"`
	ClienteDocumento  *string         `json:"cliente_documento"`
	Periodos          int             `json:"meses_transcurridos"`
	InteresAcumulado  decimal.Decimal `json:"interes_acumulado"`
	ValorActual       decimal.Decimal `json:"valor_actual"`
	FechaCorte        string          `json:"fecha_corte"`
}

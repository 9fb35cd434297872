package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jerosmotos/internal/dto"
	"jerosmotos/internal/infra"
	"jerosmotos/internal/interes"
	"jerosmotos/internal/model"
	"jerosmotos/internal/repository"
	"jerosmotos/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// EmpenoService drives the pawn lifecycle of vehicles and articles:
// disponible → empeño → (disponible | recuperado).
type EmpenoService interface {
	Empenar(ctx context.Context, actor Actor, clase model.ClaseBien, id uuid.UUID, req dto.CrearEmpenoRequest) (*dto.EmpenoCreadoResponse, error)
	Abonar(ctx context.Context, actor Actor, clase model.ClaseBien, id uuid.UUID, req dto.AbonoRequest) (*dto.AbonoResponse, error)
	Consultar(ctx context.Context, clase model.ClaseBien, id uuid.UUID) (*dto.EmpenoResponse, error)
	ListarActivos(ctx context.Context, clase model.ClaseBien, sedeID *uuid.UUID) ([]dto.EmpenoResponse, error)
}

type empenoService struct {
	bienes        map[model.ClaseBien]repository.BienRepository
	transacciones repository.TransaccionRepository
	recibos       ReciboDispatcher
	loc           *time.Location
	now           Reloj
}

// NewEmpenoService wires the pawn lifecycle. recibos may be nil (no queue);
// now may be nil (wall clock).
func NewEmpenoService(
	vehiculos repository.BienRepository,
	articulos repository.BienRepository,
	transacciones repository.TransaccionRepository,
	recibos ReciboDispatcher,
	loc *time.Location,
	now Reloj,
) EmpenoService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &empenoService{
		bienes: map[model.ClaseBien]repository.BienRepository{
			model.ClaseVehiculo: vehiculos,
			model.ClaseArticulo: articulos,
		},
		transacciones: transacciones,
		recibos:       recibos,
		loc:           loc,
		now:           now,
	}
}

func (s *empenoService) repo(clase model.ClaseBien) (repository.BienRepository, error) {
	r, ok := s.bienes[clase]
	if !ok || r == nil {
		return nil, invalid("clase de bien no soportada: %s", clase)
	}
	return r, nil
}

// ── Empenar ───────────────────────────────────────────────────────────────────
// One transaction:
//   1. Lock the row, require estado "disponible"
//   2. Set estado "empeño" and the pawn columns (fecha_empeno = today)
//   3. Append the pawn ledger row (precio_venta = precio_compra = principal)

func (s *empenoService) Empenar(ctx context.Context, actor Actor, clase model.ClaseBien, id uuid.UUID, req dto.CrearEmpenoRequest) (*dto.EmpenoCreadoResponse, error) {
	repo, err := s.repo(clase)
	if err != nil {
		return nil, err
	}
	// Amounts are validated as stored, in cents.
	principal := req.ValorEmpeno.Round(2)
	tasa := req.InteresPorcentaje.Round(2)
	if !principal.IsPositive() {
		return nil, invalid("el valor del empeño debe ser mayor a cero")
	}
	if tasa.IsNegative() {
		return nil, invalid("el porcentaje de interés no puede ser negativo")
	}
	cliente := strings.TrimSpace(req.ClienteNombre)
	if cliente == "" {
		return nil, invalid("el nombre del cliente es obligatorio")
	}

	ahora := s.now().In(s.loc)
	hoy := interes.Fecha(ahora)

	var (
		bien *model.Bien
		tr   model.Transaccion
	)
	txErr := runTx(ctx, repo.DB(), func(tx *gorm.DB) error {
		b, err := repo.FindBienTx(ctx, tx, id)
		if err != nil {
			return notFoundOr(err, "%s no encontrado", clase.Etiqueta())
		}
		if b.Estado != model.EstadoDisponible {
			return invalidState("el %s no está disponible para empeño (estado actual: %s)", clase.Etiqueta(), b.Estado)
		}
		bien = b

		datos := model.DatosEmpeno{
			ValorEmpeno:       &principal,
			InteresPorcentaje: &tasa,
			FechaEmpeno:       &hoy,
			ClienteNombre:     &cliente,
			ClienteTelefono:   req.ClienteTelefono,
			ClienteDocumento:  req.ClienteDocumento,
		}
		if err := repo.UpdateEmpenoTx(ctx, tx, id, model.EstadoEmpeno, &datos); err != nil {
			return fmt.Errorf("actualizar %s: %w", clase.Etiqueta(), err)
		}

		tr = model.Transaccion{
			ID:               uuid.New(),
			Tipo:             clase.TipoEmpeno(),
			UsuarioID:        actor.ID,
			SedeID:           b.SedeID,
			PrecioVenta:      principal,
			PrecioCompra:     principal,
			Ganancia:         decimal.Zero,
			ClienteNombre:    &cliente,
			ClienteTelefono:  req.ClienteTelefono,
			ClienteDocumento: req.ClienteDocumento,
			Observaciones:    req.Observaciones,
			FechaTransaccion: ahora,
		}
		setReferencia(&tr, clase, id)
		if err := s.transacciones.CreateTx(ctx, tx, &tr); err != nil {
			return fmt.Errorf("registrar transacción: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Str("clase", string(clase)).
		Str("bien_id", id.String()).
		Str("transaccion_id", tr.ID.String()).
		Str("valor_empeno", principal.StringFixed(2)).
		Msg("empeño registrado")

	encolarRecibo(ctx, s.recibos, worker.ReciboJobPayload{
		Recibo: infra.Recibo{
			Folio:            tr.ID.String(),
			Titulo:           "Recibo de empeño",
			Fecha:            ahora,
			Descripcion:      bien.Descripcion,
			ClienteNombre:    cliente,
			ClienteDocumento: strOrEmpty(req.ClienteDocumento),
			Lineas: []infra.ReciboLinea{
				{Concepto: "Valor prestado", Monto: principal},
				{Concepto: fmt.Sprintf("Interés por periodo de %d días (%s%%)", interes.DiasPorPeriodo, tasa.StringFixed(2)),
					Monto: principal.Mul(tasa).Div(decimal.NewFromInt(100)).Round(2)},
			},
			TotalEtiqueta: "Valor entregado",
			Total:         principal,
		},
		ClienteEmail: strOrEmpty(req.ClienteEmail),
	})

	return &dto.EmpenoCreadoResponse{
		Mensaje:           "Empeño registrado exitosamente",
		Clase:             string(clase),
		BienID:            id.String(),
		TransaccionID:     tr.ID.String(),
		ValorEmpeno:       principal,
		InteresPorcentaje: tasa,
		FechaEmpeno:       hoy.Format("2006-01-02"),
		Cliente:           cliente,
	}, nil
}

// ── Abonar ────────────────────────────────────────────────────────────────────
// The payoff is recomputed at today's date under the row lock. A payment that
// covers it settles the pawn and clears the pawn columns; a smaller payment
// only reports the balance and changes nothing.

func (s *empenoService) Abonar(ctx context.Context, actor Actor, clase model.ClaseBien, id uuid.UUID, req dto.AbonoRequest) (*dto.AbonoResponse, error) {
	repo, err := s.repo(clase)
	if err != nil {
		return nil, err
	}
	monto := req.MontoAbono.Round(2)
	if !monto.IsPositive() {
		return nil, invalid("el monto del abono debe ser mayor a cero")
	}
	ahora := s.now().In(s.loc)

	var (
		bien *model.Bien
		res  interes.Resultado
	)
	txErr := runTx(ctx, repo.DB(), func(tx *gorm.DB) error {
		b, err := repo.FindBienTx(ctx, tx, id)
		if err != nil {
			return notFoundOr(err, "%s no encontrado", clase.Etiqueta())
		}
		if err := exigirEmpenado(clase, b); err != nil {
			return err
		}
		bien = b
		res = calcular(b.Empeno, ahora)

		if monto.LessThan(res.ValorActual) {
			return nil
		}
		if err := repo.UpdateEmpenoTx(ctx, tx, id, clase.EstadoTrasLiquidar(), nil); err != nil {
			return fmt.Errorf("liberar %s: %w", clase.Etiqueta(), err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}

	resp := &dto.AbonoResponse{
		Clase:            string(clase),
		BienID:           id.String(),
		MontoAbono:       monto,
		ValorActual:      res.ValorActual,
		InteresAcumulado: res.InteresAcumulado,
		Periodos:         res.Periodos,
		Cambio:           decimal.Zero,
		SaldoPendiente:   decimal.Zero,
	}

	if monto.LessThan(res.ValorActual) {
		resp.Estado = model.EstadoEmpeno
		resp.SaldoPendiente = res.ValorActual.Sub(monto)
		resp.Mensaje = fmt.Sprintf("Abono insuficiente. Saldo pendiente: $%s", resp.SaldoPendiente.StringFixed(2))
		log.Info().
			Str("clase", string(clase)).
			Str("bien_id", id.String()).
			Str("saldo_pendiente", resp.SaldoPendiente.StringFixed(2)).
			Msg("abono parcial")
		return resp, nil
	}

	resp.Recuperado = true
	resp.Estado = clase.EstadoTrasLiquidar()
	resp.Cambio = monto.Sub(res.ValorActual)
	resp.Mensaje = "Empeño liquidado exitosamente"

	log.Info().
		Str("clase", string(clase)).
		Str("bien_id", id.String()).
		Str("usuario_id", actor.ID.String()).
		Str("valor_pagado", res.ValorActual.StringFixed(2)).
		Int("periodos", res.Periodos).
		Msg("empeño liquidado")

	encolarRecibo(ctx, s.recibos, worker.ReciboJobPayload{
		Recibo: infra.Recibo{
			Folio:            fmt.Sprintf("%s-%s", id.String()[:8], ahora.Format("20060102150405")),
			Titulo:           "Recibo de liquidación de empeño",
			Fecha:            ahora,
			Descripcion:      bien.Descripcion,
			ClienteNombre:    strOrEmpty(bien.Empeno.ClienteNombre),
			ClienteDocumento: strOrEmpty(bien.Empeno.ClienteDocumento),
			Lineas: []infra.ReciboLinea{
				{Concepto: "Capital", Monto: *bien.Empeno.ValorEmpeno},
				{Concepto: fmt.Sprintf("Interés (%d periodos)", res.Periodos), Monto: res.InteresAcumulado},
				{Concepto: "Recibido", Monto: monto},
				{Concepto: "Cambio", Monto: resp.Cambio},
			},
			TotalEtiqueta: "Total liquidado",
			Total:         res.ValorActual,
		},
		ClienteEmail: strOrEmpty(req.ClienteEmail),
	})

	return resp, nil
}

// ── Consultas ─────────────────────────────────────────────────────────────────

func (s *empenoService) Consultar(ctx context.Context, clase model.ClaseBien, id uuid.UUID) (*dto.EmpenoResponse, error) {
	repo, err := s.repo(clase)
	if err != nil {
		return nil, err
	}
	b, err := repo.FindBien(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "%s no encontrado", clase.Etiqueta())
	}
	if err := exigirEmpenado(clase, b); err != nil {
		return nil, err
	}
	snap := s.snapshot(b, s.now().In(s.loc))
	return &snap, nil
}

func (s *empenoService) ListarActivos(ctx context.Context, clase model.ClaseBien, sedeID *uuid.UUID) ([]dto.EmpenoResponse, error) {
	repo, err := s.repo(clase)
	if err != nil {
		return nil, err
	}
	bienes, err := repo.ListEmpenados(ctx, sedeID)
	if err != nil {
		return nil, err
	}
	corte := s.now().In(s.loc)
	resp := make([]dto.EmpenoResponse, 0, len(bienes))
	for i := range bienes {
		resp = append(resp, s.snapshot(&bienes[i], corte))
	}
	return resp, nil
}

func (s *empenoService) snapshot(b *model.Bien, corte time.Time) dto.EmpenoResponse {
	res := calcular(b.Empeno, corte)
	out := dto.EmpenoResponse{
		Clase:            string(b.Clase),
		ID:               b.ID.String(),
		Descripcion:      b.Descripcion,
		SedeID:           uuidPtrString(b.SedeID),
		Estado:           b.Estado,
		ClienteNombre:    b.Empeno.ClienteNombre,
		ClienteTelefono:  b.Empeno.ClienteTelefono,
		ClienteDocumento: b.Empeno.ClienteDocumento,
		Periodos:         res.Periodos,
		InteresAcumulado: res.InteresAcumulado,
		ValorActual:      res.ValorActual,
		FechaCorte:       interes.Fecha(corte).Format("2006-01-02"),
	}
	if b.Empeno.ValorEmpeno != nil {
		out.ValorEmpeno = *b.Empeno.ValorEmpeno
	}
	if b.Empeno.InteresPorcentaje != nil {
		out.InteresPorcentaje = *b.Empeno.InteresPorcentaje
	}
	if b.Empeno.FechaEmpeno != nil {
		out.FechaEmpeno = b.Empeno.FechaEmpeno.Format("2006-01-02")
	}
	return out
}

func exigirEmpenado(clase model.ClaseBien, b *model.Bien) error {
	if b.Estado != model.EstadoEmpeno {
		return invalidState("el %s no está empeñado (estado actual: %s)", clase.Etiqueta(), b.Estado)
	}
	if !b.Empeno.Completo() {
		return invalidState("el %s no tiene datos de empeño completos", clase.Etiqueta())
	}
	return nil
}

// calcular runs the accrual engine over possibly-absent pawn columns.
func calcular(d model.DatosEmpeno, corte time.Time) interes.Resultado {
	var (
		principal = decimal.Zero
		tasa      = decimal.Zero
		inicio    time.Time
	)
	if d.ValorEmpeno != nil {
		principal = *d.ValorEmpeno
	}
	if d.InteresPorcentaje != nil {
		tasa = *d.InteresPorcentaje
	}
	if d.FechaEmpeno != nil {
		inicio = *d.FechaEmpeno
	}
	return interes.Calcular(principal, tasa, inicio, corte)
}

func setReferencia(t *model.Transaccion, clase model.ClaseBien, id uuid.UUID) {
	ref := id
	if clase == model.ClaseArticulo {
		t.ArticuloID = &ref
		return
	}
	t.VehiculoID = &ref
}

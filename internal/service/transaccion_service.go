package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"jerosmotos/internal/dto"
	"jerosmotos/internal/infra"
	"jerosmotos/internal/model"
	"jerosmotos/internal/repository"
	"jerosmotos/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	limitePorDefecto = 100
	limiteMaximo     = 500
)

// TransaccionService records, queries and reverses ledger rows and keeps the
// referenced vehicle or article status consistent with them.
type TransaccionService interface {
	Registrar(ctx context.Context, actor Actor, req dto.CrearTransaccionRequest) (*dto.TransaccionCreadaResponse, error)
	Listar(ctx context.Context, actor Actor, filter dto.TransaccionFilter) ([]dto.TransaccionResponse, error)
	Estadisticas(ctx context.Context, actor Actor, filter dto.EstadisticasFilter) (*dto.EstadisticasResponse, error)
	// Revertir deletes a ledger row and restores the entity's prior status.
	// It returns ErrInvalidState (HTTP 409) when the entity is no longer in
	// the status the row left it in.
	Revertir(ctx context.Context, actor Actor, id uuid.UUID) (*dto.ReversionResponse, error)
}

// movimiento describes the status change a ledger type applies to its entity.
type movimiento struct {
	clase       model.ClaseBien
	desde       string
	hacia       string
	limpiaDatos bool // reversal also clears the pawn columns
}

// Status transitions applied by Registrar (desde → hacia) and undone by
// Revertir (hacia → desde).
var movimientos = map[string]movimiento{
	model.TipoVentaVehiculo:      {clase: model.ClaseVehiculo, desde: model.EstadoDisponible, hacia: model.EstadoVendido},
	model.TipoVentaArticulo:      {clase: model.ClaseArticulo, desde: model.EstadoDisponible, hacia: model.EstadoVendido},
	model.TipoRecuperacionEmpeno: {clase: model.ClaseArticulo, desde: model.EstadoEmpeno, hacia: model.EstadoRecuperado},
	model.TipoEmpenoVehiculo:     {clase: model.ClaseVehiculo, desde: model.EstadoDisponible, hacia: model.EstadoEmpeno, limpiaDatos: true},
	model.TipoEmpenoArticulo:     {clase: model.ClaseArticulo, desde: model.EstadoDisponible, hacia: model.EstadoEmpeno, limpiaDatos: true},
}

type transaccionService struct {
	repo    repository.TransaccionRepository
	bienes  map[model.ClaseBien]repository.BienRepository
	recibos ReciboDispatcher
	loc     *time.Location
	now     Reloj
}

func NewTransaccionService(
	repo repository.TransaccionRepository,
	vehiculos repository.BienRepository,
	articulos repository.BienRepository,
	recibos ReciboDispatcher,
	loc *time.Location,
	now Reloj,
) TransaccionService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &transaccionService{
		repo: repo,
		bienes: map[model.ClaseBien]repository.BienRepository{
			model.ClaseVehiculo: vehiculos,
			model.ClaseArticulo: articulos,
		},
		recibos: recibos,
		loc:     loc,
		now:     now,
	}
}

// ── Registrar ─────────────────────────────────────────────────────────────────
// Sales and flat recoveries only. Pawn rows are written by EmpenoService.Empenar
// together with the pawn columns, so they are rejected here.

func (s *transaccionService) Registrar(ctx context.Context, actor Actor, req dto.CrearTransaccionRequest) (*dto.TransaccionCreadaResponse, error) {
	if req.Tipo == model.TipoEmpenoVehiculo || req.Tipo == model.TipoEmpenoArticulo {
		return nil, invalid("los empeños se registran desde el endpoint de empeño del bien")
	}
	mov, ok := movimientos[req.Tipo]
	if !ok {
		return nil, invalid("tipo de transacción no válido: %s", req.Tipo)
	}

	bienID, err := referenciaUnica(mov.clase, req.VehiculoID, req.ArticuloID)
	if err != nil {
		return nil, err
	}
	if req.PrecioVenta.IsNegative() {
		return nil, invalid("el precio de venta no puede ser negativo")
	}
	if req.PrecioCompra != nil && req.PrecioCompra.IsNegative() {
		return nil, invalid("el precio de compra no puede ser negativo")
	}

	repo := s.bienes[mov.clase]
	ahora := s.now().In(s.loc)
	precioVenta := req.PrecioVenta.Round(2)

	var (
		bien *model.Bien
		tr   model.Transaccion
	)
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		b, err := repo.FindBienTx(ctx, tx, bienID)
		if err != nil {
			return notFoundOr(err, "%s no encontrado", mov.clase.Etiqueta())
		}
		if b.Estado != mov.desde {
			return invalidState("el %s debe estar en estado %s (estado actual: %s)", mov.clase.Etiqueta(), mov.desde, b.Estado)
		}
		if req.Tipo == model.TipoRecuperacionEmpeno && precioVenta.LessThan(b.ValorRegistrado) {
			return invalid("el precio de recuperación debe ser al menos el valor del artículo ($%s)", b.ValorRegistrado.StringFixed(2))
		}
		bien = b

		precioCompra := b.ValorRegistrado
		if req.PrecioCompra != nil {
			precioCompra = *req.PrecioCompra
		}
		precioCompra = precioCompra.Round(2)

		if err := repo.UpdateEstadoTx(ctx, tx, bienID, mov.hacia); err != nil {
			return fmt.Errorf("actualizar estado: %w", err)
		}

		tr = model.Transaccion{
			ID:               uuid.New(),
			Tipo:             req.Tipo,
			UsuarioID:        actor.ID,
			SedeID:           b.SedeID,
			PrecioVenta:      precioVenta,
			PrecioCompra:     precioCompra,
			Ganancia:         precioVenta.Sub(precioCompra),
			ClienteNombre:    req.ClienteNombre,
			ClienteTelefono:  req.ClienteTelefono,
			ClienteDocumento: req.ClienteDocumento,
			Observaciones:    req.Observaciones,
			FechaTransaccion: ahora,
		}
		setReferencia(&tr, mov.clase, bienID)
		return s.repo.CreateTx(ctx, tx, &tr)
	})
	if txErr != nil {
		return nil, txErr
	}

	log.Info().
		Str("transaccion_id", tr.ID.String()).
		Str("tipo", tr.Tipo).
		Str("bien_id", bienID.String()).
		Str("ganancia", tr.Ganancia.StringFixed(2)).
		Msg("transacción registrada")

	titulo := "Recibo de venta"
	if tr.Tipo == model.TipoRecuperacionEmpeno {
		titulo = "Recibo de recuperación de empeño"
	}
	encolarRecibo(ctx, s.recibos, worker.ReciboJobPayload{
		Recibo: infra.Recibo{
			Folio:            tr.ID.String(),
			Titulo:           titulo,
			Fecha:            ahora,
			Descripcion:      bien.Descripcion,
			ClienteNombre:    strOrEmpty(req.ClienteNombre),
			ClienteDocumento: strOrEmpty(req.ClienteDocumento),
			Lineas:           []infra.ReciboLinea{{Concepto: bien.Descripcion, Monto: precioVenta}},
			TotalEtiqueta:    "Total",
			Total:            precioVenta,
		},
		ClienteEmail: strOrEmpty(req.ClienteEmail),
	})

	return &dto.TransaccionCreadaResponse{
		Mensaje:  "Transacción registrada exitosamente",
		ID:       tr.ID.String(),
		Tipo:     tr.Tipo,
		Ganancia: tr.Ganancia,
	}, nil
}

func referenciaUnica(clase model.ClaseBien, vehiculoID, articuloID *string) (uuid.UUID, error) {
	var ref *string
	switch {
	case clase == model.ClaseVehiculo && vehiculoID != nil && articuloID == nil:
		ref = vehiculoID
	case clase == model.ClaseArticulo && articuloID != nil && vehiculoID == nil:
		ref = articuloID
	default:
		return uuid.Nil, invalid("la transacción debe referenciar exactamente un %s", clase.Etiqueta())
	}
	id, err := uuid.Parse(*ref)
	if err != nil {
		return uuid.Nil, invalid("identificador de %s inválido", clase.Etiqueta())
	}
	return id, nil
}

// ── Listar ────────────────────────────────────────────────────────────────────

func (s *transaccionService) Listar(ctx context.Context, actor Actor, filter dto.TransaccionFilter) ([]dto.TransaccionResponse, error) {
	q := repository.TransaccionQuery{Tipo: filter.Tipo, Skip: filter.Skip, Limit: filter.Limit}
	if q.Skip < 0 {
		q.Skip = 0
	}
	if q.Limit <= 0 {
		q.Limit = limitePorDefecto
	}
	if q.Limit > limiteMaximo {
		q.Limit = limiteMaximo
	}

	var err error
	if q.SedeID, err = parseOptionalUUID(filter.SedeID, "sede_id"); err != nil {
		return nil, err
	}
	if q.UsuarioID, err = s.usuarioVisible(actor, filter.UsuarioID); err != nil {
		return nil, err
	}

	rows, err := s.repo.List(ctx, q)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.TransaccionResponse, 0, len(rows))
	for i := range rows {
		resp = append(resp, transaccionToResponse(&rows[i]))
	}
	return resp, nil
}

// usuarioVisible restricts sellers to their own rows. Administrators may
// filter by any user.
func (s *transaccionService) usuarioVisible(actor Actor, solicitado string) (*uuid.UUID, error) {
	if !actor.EsAdmin() {
		id := actor.ID
		return &id, nil
	}
	return parseOptionalUUID(solicitado, "usuario_id")
}

func transaccionToResponse(t *model.Transaccion) dto.TransaccionResponse {
	r := dto.TransaccionResponse{
		ID:               t.ID.String(),
		Tipo:             t.Tipo,
		VehiculoID:       uuidPtrString(t.VehiculoID),
		ArticuloID:       uuidPtrString(t.ArticuloID),
		UsuarioID:        t.UsuarioID.String(),
		SedeID:           uuidPtrString(t.SedeID),
		PrecioVenta:      t.PrecioVenta,
		PrecioCompra:     t.PrecioCompra,
		Ganancia:         t.Ganancia,
		ClienteNombre:    t.ClienteNombre,
		ClienteTelefono:  t.ClienteTelefono,
		ClienteDocumento: t.ClienteDocumento,
		Observaciones:    t.Observaciones,
		FechaTransaccion: t.FechaTransaccion.Format(time.RFC3339),
	}
	if t.Vehiculo != nil {
		info := t.Vehiculo.Resumen()
		r.VehiculoInfo = &info
	}
	if t.Articulo != nil {
		info := t.Articulo.Descripcion
		r.ArticuloInfo = &info
	}
	if t.Usuario != nil {
		nombre := t.Usuario.Nombre
		r.UsuarioNombre = &nombre
	}
	return r
}

// ── Estadisticas ──────────────────────────────────────────────────────────────

func (s *transaccionService) Estadisticas(ctx context.Context, actor Actor, filter dto.EstadisticasFilter) (*dto.EstadisticasResponse, error) {
	var q repository.TransaccionQuery
	var err error

	if filter.FechaInicio != "" {
		d, err := time.ParseInLocation("2006-01-02", filter.FechaInicio, s.loc)
		if err != nil {
			return nil, invalid("fecha_inicio inválida, use YYYY-MM-DD")
		}
		q.Desde = &d
	}
	if filter.FechaFin != "" {
		d, err := time.ParseInLocation("2006-01-02", filter.FechaFin, s.loc)
		if err != nil {
			return nil, invalid("fecha_fin inválida, use YYYY-MM-DD")
		}
		// Inclusive end date: everything before the next midnight.
		hasta := d.AddDate(0, 0, 1)
		q.Hasta = &hasta
	}
	if q.Desde != nil && q.Hasta != nil && !q.Desde.Before(*q.Hasta) {
		return nil, invalid("fecha_inicio no puede ser posterior a fecha_fin")
	}
	if q.SedeID, err = parseOptionalUUID(filter.SedeID, "sede_id"); err != nil {
		return nil, err
	}
	if q.UsuarioID, err = s.usuarioVisible(actor, filter.UsuarioID); err != nil {
		return nil, err
	}

	totales, err := s.repo.TotalesPorTipo(ctx, q)
	if err != nil {
		return nil, err
	}

	resp := &dto.EstadisticasResponse{
		TotalVentas:      decimal.Zero,
		TotalGanancias:   decimal.Zero,
		GananciaPromedio: decimal.Zero,
		PorTipo:          make([]dto.EstadisticaTipo, 0, len(totales)),
	}
	for _, t := range totales {
		resp.TotalTransacciones += t.Cantidad
		resp.TotalVentas = resp.TotalVentas.Add(t.TotalVentas)
		resp.TotalGanancias = resp.TotalGanancias.Add(t.TotalGanancias)
		resp.PorTipo = append(resp.PorTipo, dto.EstadisticaTipo{
			Tipo:             t.Tipo,
			Cantidad:         t.Cantidad,
			TotalVentas:      t.TotalVentas,
			TotalGanancias:   t.TotalGanancias,
			GananciaPromedio: promedio(t.TotalGanancias, t.Cantidad),
		})
	}
	resp.GananciaPromedio = promedio(resp.TotalGanancias, resp.TotalTransacciones)
	return resp, nil
}

func promedio(total decimal.Decimal, n int64) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(n)).Round(2)
}

// ── Revertir ──────────────────────────────────────────────────────────────────
// Deletes a ledger row and undoes its status change. The entity must still be
// in the status the row left it in; anything else means a later operation
// depends on it. A referenced row that no longer exists is skipped.

func (s *transaccionService) Revertir(ctx context.Context, actor Actor, id uuid.UUID) (*dto.ReversionResponse, error) {
	if !actor.EsAdmin() {
		return nil, forbidden("solo un administrador puede revertir transacciones")
	}

	resp := &dto.ReversionResponse{ID: id.String()}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		t, err := s.repo.FindByIDTx(ctx, tx, id)
		if err != nil {
			return notFoundOr(err, "transacción no encontrada")
		}
		resp.Tipo = t.Tipo

		if err := s.restaurar(ctx, tx, t, resp); err != nil {
			return err
		}
		return s.repo.DeleteTx(ctx, tx, id)
	})
	if txErr != nil {
		return nil, txErr
	}

	resp.Mensaje = "Transacción revertida exitosamente"
	log.Info().
		Str("transaccion_id", id.String()).
		Str("tipo", resp.Tipo).
		Str("usuario_id", actor.ID.String()).
		Str("estado_restaurado", resp.EstadoRestaurado).
		Msg("transacción revertida")
	return resp, nil
}

func (s *transaccionService) restaurar(ctx context.Context, tx *gorm.DB, t *model.Transaccion, resp *dto.ReversionResponse) error {
	clase, bienID, ok := t.Clase()
	mov, conocido := movimientos[t.Tipo]
	if !ok || !conocido || mov.clase != clase {
		log.Warn().Str("transaccion_id", t.ID.String()).Str("tipo", t.Tipo).
			Msg("transacción sin bien asociado reconocible, solo se elimina el registro")
		return nil
	}
	resp.Clase = string(clase)
	resp.BienID = uuidPtrString(&bienID)

	repo := s.bienes[clase]
	b, err := repo.FindBienTx(ctx, tx, bienID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Warn().Str("transaccion_id", t.ID.String()).Str("bien_id", bienID.String()).
			Msg("bien referenciado ya no existe, solo se elimina el registro")
		return nil
	}
	if err != nil {
		return err
	}
	if b.Estado != mov.hacia {
		return invalidState("no se puede revertir: el %s está en estado %s y la transacción lo dejó en %s",
			clase.Etiqueta(), b.Estado, mov.hacia)
	}

	if mov.limpiaDatos {
		err = repo.UpdateEmpenoTx(ctx, tx, bienID, mov.desde, nil)
	} else {
		err = repo.UpdateEstadoTx(ctx, tx, bienID, mov.desde)
	}
	if err != nil {
		return fmt.Errorf("restaurar estado: %w", err)
	}
	resp.EstadoRestaurado = mov.desde
	return nil
}

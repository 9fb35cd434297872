package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"jerosmotos/internal/dto"
	"jerosmotos/internal/model"
	"jerosmotos/internal/repository"
	"jerosmotos/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type transaccionFixture struct {
	svc       service.TransaccionService
	empenos   service.EmpenoService
	vehiculos *stubBienRepo
	articulos *stubBienRepo
	ledger    *stubTransaccionRepo
	recibos   *stubDispatcher
}

func buildTransaccionSvc() transaccionFixture {
	f := transaccionFixture{
		vehiculos: newStubBienRepo(model.ClaseVehiculo),
		articulos: newStubBienRepo(model.ClaseArticulo),
		ledger:    newStubTransaccionRepo(),
		recibos:   &stubDispatcher{},
	}
	clock := fixedClock(2024, time.March, 5)
	f.svc = service.NewTransaccionService(f.ledger, f.vehiculos, f.articulos, f.recibos, time.UTC, clock)
	f.empenos = service.NewEmpenoService(f.vehiculos, f.articulos, f.ledger, f.recibos, time.UTC, clock)
	return f
}

var admin = service.Actor{ID: uuid.New(), Rol: model.RolAdministrador}

// ── Registrar ─────────────────────────────────────────────────────────────────

func TestRegistrar_VentaVehiculo(t *testing.T) {
	f := buildTransaccionSvc()
	v := f.vehiculos.add(model.EstadoDisponible, "4000000")

	resp, err := f.svc.Registrar(context.Background(), vendedor, dto.CrearTransaccionRequest{
		Tipo:          model.TipoVentaVehiculo,
		VehiculoID:    strPtr(v.ID.String()),
		PrecioVenta:   dec("5200000"),
		ClienteNombre: strPtr("Luis"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Ganancia.Equal(dec("1200000")))
	assert.Equal(t, model.EstadoVendido, f.vehiculos.bienes[v.ID].Estado)

	row := f.ledger.rows[uuid.MustParse(resp.ID)]
	require.NotNil(t, row)
	assert.True(t, row.PrecioCompra.Equal(dec("4000000")), "cost basis defaults to the recorded value")
	assert.Len(t, f.recibos.jobs, 1)
}

func TestRegistrar_VentaArticulo_ExplicitCost(t *testing.T) {
	f := buildTransaccionSvc()
	a := f.articulos.add(model.EstadoDisponible, "100000")

	resp, err := f.svc.Registrar(context.Background(), vendedor, dto.CrearTransaccionRequest{
		Tipo:         model.TipoVentaArticulo,
		ArticuloID:   strPtr(a.ID.String()),
		PrecioVenta:  dec("150000"),
		PrecioCompra: ptrDec("90000"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Ganancia.Equal(dec("60000")))
	assert.Equal(t, model.EstadoVendido, f.articulos.bienes[a.ID].Estado)
}

func TestRegistrar_RejectsPawnTypes(t *testing.T) {
	f := buildTransaccionSvc()
	v := f.vehiculos.add(model.EstadoDisponible, "1")
	for _, tipo := range []string{model.TipoEmpenoVehiculo, model.TipoEmpenoArticulo, "trueque"} {
		_, err := f.svc.Registrar(context.Background(), vendedor, dto.CrearTransaccionRequest{
			Tipo:        tipo,
			VehiculoID:  strPtr(v.ID.String()),
			PrecioVenta: dec("10"),
		})
		assert.True(t, errors.Is(err, service.ErrValidation), tipo)
	}
	assert.Empty(t, f.ledger.rows)
}

func TestRegistrar_WrongOrMissingReference(t *testing.T) {
	f := buildTransaccionSvc()
	v := f.vehiculos.add(model.EstadoDisponible, "1")
	a := f.articulos.add(model.EstadoDisponible, "1")

	cases := map[string]dto.CrearTransaccionRequest{
		"sin referencia":     {Tipo: model.TipoVentaVehiculo, PrecioVenta: dec("1")},
		"ambas referencias":  {Tipo: model.TipoVentaVehiculo, VehiculoID: strPtr(v.ID.String()), ArticuloID: strPtr(a.ID.String()), PrecioVenta: dec("1")},
		"familia incorrecta": {Tipo: model.TipoVentaArticulo, VehiculoID: strPtr(v.ID.String()), PrecioVenta: dec("1")},
		"uuid inválido":      {Tipo: model.TipoVentaVehiculo, VehiculoID: strPtr("x"), PrecioVenta: dec("1")},
		"precio negativo":    {Tipo: model.TipoVentaVehiculo, VehiculoID: strPtr(v.ID.String()), PrecioVenta: dec("-1")},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Registrar(context.Background(), vendedor, req)
			assert.True(t, errors.Is(err, service.ErrValidation))
		})
	}
	assert.Equal(t, model.EstadoDisponible, f.vehiculos.bienes[v.ID].Estado)
}

func TestRegistrar_VentaOfSoldVehicle(t *testing.T) {
	f := buildTransaccionSvc()
	v := f.vehiculos.add(model.EstadoVendido, "1")

	_, err := f.svc.Registrar(context.Background(), vendedor, dto.CrearTransaccionRequest{
		Tipo: model.TipoVentaVehiculo, VehiculoID: strPtr(v.ID.String()), PrecioVenta: dec("10"),
	})
	assert.True(t, errors.Is(err, service.ErrInvalidState))
	assert.Empty(t, f.ledger.rows)
}

func TestRegistrar_RecuperacionPriceFloor(t *testing.T) {
	f := buildTransaccionSvc()
	a := f.articulos.addEmpenado("400000", "10", fecha(2024, time.February, 1))
	a.ValorRegistrado = dec("500000")

	_, err := f.svc.Registrar(context.Background(), vendedor, dto.CrearTransaccionRequest{
		Tipo: model.TipoRecuperacionEmpeno, ArticuloID: strPtr(a.ID.String()), PrecioVenta: dec("499999.99"),
	})
	assert.True(t, errors.Is(err, service.ErrValidation))
	assert.Equal(t, model.EstadoEmpeno, f.articulos.bienes[a.ID].Estado)

	resp, err := f.svc.Registrar(context.Background(), vendedor, dto.CrearTransaccionRequest{
		Tipo: model.TipoRecuperacionEmpeno, ArticuloID: strPtr(a.ID.String()), PrecioVenta: dec("500000"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Ganancia.IsZero())
	stored := f.articulos.bienes[a.ID]
	assert.Equal(t, model.EstadoRecuperado, stored.Estado)
	assert.NotNil(t, stored.Empeno.ValorEmpeno, "flat recovery only changes the status")
}

func TestRegistrar_RecuperacionRequiresPawned(t *testing.T) {
	f := buildTransaccionSvc()
	a := f.articulos.add(model.EstadoDisponible, "10")

	_, err := f.svc.Registrar(context.Background(), vendedor, dto.CrearTransaccionRequest{
		Tipo: model.TipoRecuperacionEmpeno, ArticuloID: strPtr(a.ID.String()), PrecioVenta: dec("10"),
	})
	assert.True(t, errors.Is(err, service.ErrInvalidState))
}

// ── Revertir ──────────────────────────────────────────────────────────────────

func TestRevertir_Venta_RestoresAvailable(t *testing.T) {
	f := buildTransaccionSvc()
	v := f.vehiculos.add(model.EstadoDisponible, "100")
	created, err := f.svc.Registrar(context.Background(), vendedor, dto.CrearTransaccionRequest{
		Tipo: model.TipoVentaVehiculo, VehiculoID: strPtr(v.ID.String()), PrecioVenta: dec("150"),
	})
	require.NoError(t, err)

	resp, err := f.svc.Revertir(context.Background(), admin, uuid.MustParse(created.ID))
	require.NoError(t, err)
	assert.Equal(t, model.EstadoDisponible, resp.EstadoRestaurado)
	assert.Equal(t, model.EstadoDisponible, f.vehiculos.bienes[v.ID].Estado)
	assert.Empty(t, f.ledger.rows)
}

func TestRevertir_Empeno_ClearsPawnData(t *testing.T) {
	f := buildTransaccionSvc()
	a := f.articulos.add(model.EstadoDisponible, "100")
	created, err := f.empenos.Empenar(context.Background(), vendedor, model.ClaseArticulo, a.ID, crearEmpenoReq())
	require.NoError(t, err)

	_, err = f.svc.Revertir(context.Background(), admin, uuid.MustParse(created.TransaccionID))
	require.NoError(t, err)
	stored := f.articulos.bienes[a.ID]
	assert.Equal(t, model.EstadoDisponible, stored.Estado)
	assert.Equal(t, model.DatosEmpeno{}, stored.Empeno)
}

func TestRevertir_Recuperacion_KeepsPawnData(t *testing.T) {
	f := buildTransaccionSvc()
	a := f.articulos.addEmpenado("400000", "10", fecha(2024, time.February, 1))
	created, err := f.svc.Registrar(context.Background(), vendedor, dto.CrearTransaccionRequest{
		Tipo: model.TipoRecuperacionEmpeno, ArticuloID: strPtr(a.ID.String()), PrecioVenta: dec("440000"),
	})
	require.NoError(t, err)

	_, err = f.svc.Revertir(context.Background(), admin, uuid.MustParse(created.ID))
	require.NoError(t, err)
	stored := f.articulos.bienes[a.ID]
	assert.Equal(t, model.EstadoEmpeno, stored.Estado)
	assert.True(t, stored.Empeno.Completo())
}

func TestRevertir_EntityMovedOn(t *testing.T) {
	f := buildTransaccionSvc()
	v := f.vehiculos.add(model.EstadoDisponible, "100")
	created, err := f.empenos.Empenar(context.Background(), vendedor, model.ClaseVehiculo, v.ID, crearEmpenoReq())
	require.NoError(t, err)

	// Settled afterwards: the vehicle is disponible again.
	_, err = f.empenos.Abonar(context.Background(), vendedor, model.ClaseVehiculo, v.ID, dto.AbonoRequest{MontoAbono: dec("5000000")})
	require.NoError(t, err)

	_, err = f.svc.Revertir(context.Background(), admin, uuid.MustParse(created.TransaccionID))
	assert.True(t, errors.Is(err, service.ErrInvalidState))
	assert.Len(t, f.ledger.rows, 1, "row survives a refused reversal")
}

func TestRevertir_MissingEntity_DeletesRowOnly(t *testing.T) {
	f := buildTransaccionSvc()
	ghost := uuid.New()
	row := &model.Transaccion{ID: uuid.New(), Tipo: model.TipoVentaVehiculo, VehiculoID: &ghost, UsuarioID: vendedor.ID}
	require.NoError(t, f.ledger.CreateTx(context.Background(), nil, row))

	resp, err := f.svc.Revertir(context.Background(), admin, row.ID)
	require.NoError(t, err)
	assert.Empty(t, resp.EstadoRestaurado)
	assert.Empty(t, f.ledger.rows)
}

func TestRevertir_Forbidden(t *testing.T) {
	f := buildTransaccionSvc()
	_, err := f.svc.Revertir(context.Background(), vendedor, uuid.New())
	assert.True(t, errors.Is(err, service.ErrForbidden))
}

func TestRevertir_NotFound(t *testing.T) {
	f := buildTransaccionSvc()
	_, err := f.svc.Revertir(context.Background(), admin, uuid.New())
	assert.True(t, errors.Is(err, service.ErrNotFound))
}

// ── Listar / Estadisticas ─────────────────────────────────────────────────────

func TestListar_SellerSeesOnlyOwnRows(t *testing.T) {
	f := buildTransaccionSvc()
	otro := uuid.New()
	require.NoError(t, f.ledger.CreateTx(context.Background(), nil, &model.Transaccion{Tipo: model.TipoVentaArticulo, UsuarioID: vendedor.ID}))
	require.NoError(t, f.ledger.CreateTx(context.Background(), nil, &model.Transaccion{Tipo: model.TipoVentaArticulo, UsuarioID: otro}))

	rows, err := f.svc.Listar(context.Background(), vendedor, dto.TransaccionFilter{UsuarioID: otro.String()})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, vendedor.ID.String(), rows[0].UsuarioID)
	assert.Equal(t, 100, f.ledger.lastQuery.Limit)

	rows, err = f.svc.Listar(context.Background(), admin, dto.TransaccionFilter{Limit: 9999})
	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, 500, f.ledger.lastQuery.Limit)
}

func TestListar_EnrichesDescriptions(t *testing.T) {
	f := buildTransaccionSvc()
	placa := "ABC12D"
	require.NoError(t, f.ledger.CreateTx(context.Background(), nil, &model.Transaccion{
		Tipo:      model.TipoVentaVehiculo,
		UsuarioID: admin.ID,
		Vehiculo:  &model.Vehiculo{Marca: "Yamaha", Modelo: "NMAX", Placa: &placa},
		Usuario:   &model.Usuario{Nombre: "Admin"},
	}))

	rows, err := f.svc.Listar(context.Background(), admin, dto.TransaccionFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].VehiculoInfo)
	assert.Equal(t, "Yamaha NMAX - ABC12D", *rows[0].VehiculoInfo)
	assert.Equal(t, "Admin", *rows[0].UsuarioNombre)
	assert.Nil(t, rows[0].ArticuloInfo)
}

func TestEstadisticas_Aggregates(t *testing.T) {
	f := buildTransaccionSvc()
	f.ledger.totales = []repository.TotalPorTipo{
		{Tipo: model.TipoVentaArticulo, Cantidad: 2, TotalVentas: dec("300"), TotalGanancias: dec("100")},
		{Tipo: model.TipoVentaVehiculo, Cantidad: 1, TotalVentas: dec("1000"), TotalGanancias: dec("200")},
	}

	resp, err := f.svc.Estadisticas(context.Background(), admin, dto.EstadisticasFilter{FechaInicio: "2024-03-01", FechaFin: "2024-03-05"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, resp.TotalTransacciones)
	assert.True(t, resp.TotalVentas.Equal(dec("1300")))
	assert.True(t, resp.TotalGanancias.Equal(dec("300")))
	assert.True(t, resp.GananciaPromedio.Equal(dec("100")))
	require.Len(t, resp.PorTipo, 2)
	assert.True(t, resp.PorTipo[0].GananciaPromedio.Equal(dec("50")))

	q := f.ledger.lastQuery
	require.NotNil(t, q.Desde)
	require.NotNil(t, q.Hasta)
	assert.Equal(t, fecha(2024, time.March, 1), *q.Desde)
	assert.Equal(t, fecha(2024, time.March, 6), *q.Hasta, "end date is inclusive")
	assert.Nil(t, q.UsuarioID)
}

func TestEstadisticas_EmptyAverageIsZero(t *testing.T) {
	f := buildTransaccionSvc()
	resp, err := f.svc.Estadisticas(context.Background(), vendedor, dto.EstadisticasFilter{})
	require.NoError(t, err)
	assert.Zero(t, resp.TotalTransacciones)
	assert.True(t, resp.GananciaPromedio.IsZero())
	assert.Equal(t, &vendedor.ID, f.ledger.lastQuery.UsuarioID)
}

func TestEstadisticas_BadRange(t *testing.T) {
	f := buildTransaccionSvc()
	_, err := f.svc.Estadisticas(context.Background(), admin, dto.EstadisticasFilter{FechaInicio: "2024-03-10", FechaFin: "2024-03-01"})
	assert.True(t, errors.Is(err, service.ErrValidation))

	_, err = f.svc.Estadisticas(context.Background(), admin, dto.EstadisticasFilter{FechaInicio: "03/01/2024"})
	assert.True(t, errors.Is(err, service.ErrValidation))
}

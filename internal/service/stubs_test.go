package service_test

import (
	"context"
	"sort"
	"sync"
	"time"

	"jerosmotos/internal/model"
	"jerosmotos/internal/repository"
	"jerosmotos/internal/worker"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubBienRepo is an in-memory BienRepository for one family.
type stubBienRepo struct {
	clase  model.ClaseBien
	bienes map[uuid.UUID]*model.Bien

	updateErr error
}

func newStubBienRepo(clase model.ClaseBien) *stubBienRepo {
	return &stubBienRepo{clase: clase, bienes: make(map[uuid.UUID]*model.Bien)}
}

func (r *stubBienRepo) add(estado string, valor string) *model.Bien {
	b := &model.Bien{
		Clase:           r.clase,
		ID:              uuid.New(),
		Estado:          estado,
		ValorRegistrado: decimal.RequireFromString(valor),
		Descripcion:     "bien de prueba",
	}
	r.bienes[b.ID] = b
	return b
}

// addEmpenado inserts a pawned row with the given principal, rate and date.
func (r *stubBienRepo) addEmpenado(principal, tasa string, fecha time.Time) *model.Bien {
	b := r.add(model.EstadoEmpeno, "0")
	p := decimal.RequireFromString(principal)
	t := decimal.RequireFromString(tasa)
	cliente := "Carlos Pérez"
	b.Empeno = model.DatosEmpeno{
		ValorEmpeno:       &p,
		InteresPorcentaje: &t,
		FechaEmpeno:       &fecha,
		ClienteNombre:     &cliente,
	}
	return b
}

func (r *stubBienRepo) Clase() model.ClaseBien { return r.clase }

func (r *stubBienRepo) FindBien(_ context.Context, id uuid.UUID) (*model.Bien, error) {
	b, ok := r.bienes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *stubBienRepo) FindBienTx(ctx context.Context, _ *gorm.DB, id uuid.UUID) (*model.Bien, error) {
	return r.FindBien(ctx, id)
}

func (r *stubBienRepo) UpdateEstadoTx(_ context.Context, _ *gorm.DB, id uuid.UUID, estado string) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	b, ok := r.bienes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.Estado = estado
	return nil
}

func (r *stubBienRepo) UpdateEmpenoTx(_ context.Context, _ *gorm.DB, id uuid.UUID, estado string, datos *model.DatosEmpeno) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	b, ok := r.bienes[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	b.Estado = estado
	if datos == nil {
		b.Empeno = model.DatosEmpeno{}
	} else {
		b.Empeno = *datos
	}
	return nil
}

func (r *stubBienRepo) ListEmpenados(_ context.Context, sedeID *uuid.UUID) ([]model.Bien, error) {
	var out []model.Bien
	for _, b := range r.bienes {
		if b.Estado != model.EstadoEmpeno {
			continue
		}
		if sedeID != nil && (b.SedeID == nil || *b.SedeID != *sedeID) {
			continue
		}
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Empeno.FechaEmpeno.Before(*out[j].Empeno.FechaEmpeno)
	})
	return out, nil
}

func (r *stubBienRepo) DB() *gorm.DB { return nil }

var _ repository.BienRepository = (*stubBienRepo)(nil)

// stubTransaccionRepo is an in-memory ledger.
type stubTransaccionRepo struct {
	rows      map[uuid.UUID]*model.Transaccion
	lastQuery repository.TransaccionQuery
	totales   []repository.TotalPorTipo
}

func newStubTransaccionRepo() *stubTransaccionRepo {
	return &stubTransaccionRepo{rows: make(map[uuid.UUID]*model.Transaccion)}
}

func (r *stubTransaccionRepo) CreateTx(_ context.Context, _ *gorm.DB, t *model.Transaccion) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	cp := *t
	r.rows[t.ID] = &cp
	return nil
}

func (r *stubTransaccionRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Transaccion, error) {
	t, ok := r.rows[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *stubTransaccionRepo) FindByIDTx(ctx context.Context, _ *gorm.DB, id uuid.UUID) (*model.Transaccion, error) {
	return r.FindByID(ctx, id)
}

func (r *stubTransaccionRepo) DeleteTx(_ context.Context, _ *gorm.DB, id uuid.UUID) error {
	if _, ok := r.rows[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *stubTransaccionRepo) List(_ context.Context, q repository.TransaccionQuery) ([]model.Transaccion, error) {
	r.lastQuery = q
	var out []model.Transaccion
	for _, t := range r.rows {
		if q.UsuarioID != nil && t.UsuarioID != *q.UsuarioID {
			continue
		}
		if q.Tipo != "" && t.Tipo != q.Tipo {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (r *stubTransaccionRepo) TotalesPorTipo(_ context.Context, q repository.TransaccionQuery) ([]repository.TotalPorTipo, error) {
	r.lastQuery = q
	return r.totales, nil
}

func (r *stubTransaccionRepo) DB() *gorm.DB { return nil }

func (r *stubTransaccionRepo) porTipo(tipo string) []model.Transaccion {
	var out []model.Transaccion
	for _, t := range r.rows {
		if t.Tipo == tipo {
			out = append(out, *t)
		}
	}
	return out
}

var _ repository.TransaccionRepository = (*stubTransaccionRepo)(nil)

// stubDispatcher records enqueued receipts.
type stubDispatcher struct {
	mu   sync.Mutex
	jobs []worker.ReciboJobPayload
	err  error
}

func (d *stubDispatcher) EnqueueRecibo(_ context.Context, p worker.ReciboJobPayload) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return d.err
	}
	d.jobs = append(d.jobs, p)
	return nil
}

// fixedClock returns a Reloj frozen at the given UTC date, noon.
func fixedClock(y int, m time.Month, d int) func() time.Time {
	return func() time.Time { return time.Date(y, m, d, 12, 0, 0, 0, time.UTC) }
}

func fecha(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func strPtr(s string) *string { return &s }

func ptrDec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

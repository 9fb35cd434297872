package repository

import (
	"context"
	"time"

	"jerosmotos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TransaccionQuery is the resolved ledger filter. Role restrictions are
// applied by the service before it reaches the repository.
type TransaccionQuery struct {
	Tipo      string
	SedeID    *uuid.UUID
	UsuarioID *uuid.UUID
	Desde     *time.Time // inclusive
	Hasta     *time.Time // exclusive
	Skip      int
	Limit     int
}

// TotalPorTipo is one row of the GROUP BY tipo aggregation.
type TotalPorTipo struct {
	Tipo           string
	Cantidad       int64
	TotalVentas    decimal.Decimal
	TotalGanancias decimal.Decimal
}

type TransaccionRepository interface {
	CreateTx(ctx context.Context, tx *gorm.DB, t *model.Transaccion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Transaccion, error)

	// FindByIDTx locks the ledger row so two reversals of the same row serialize.
	FindByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Transaccion, error)
	DeleteTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) error

	// List returns rows newest first with Vehiculo, Articulo and Usuario preloaded.
	List(ctx context.Context, q TransaccionQuery) ([]model.Transaccion, error)
	TotalesPorTipo(ctx context.Context, q TransaccionQuery) ([]TotalPorTipo, error)

	DB() *gorm.DB
}

type transaccionRepo struct{ db *gorm.DB }

func NewTransaccionRepository(db *gorm.DB) TransaccionRepository {
	return &transaccionRepo{db: db}
}

func (r *transaccionRepo) DB() *gorm.DB { return r.db }

func (r *transaccionRepo) CreateTx(ctx context.Context, tx *gorm.DB, t *model.Transaccion) error {
	return tx.WithContext(ctx).Omit(clause.Associations).Create(t).Error
}

func (r *transaccionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Transaccion, error) {
	var t model.Transaccion
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error
	return &t, err
}

func (r *transaccionRepo) FindByIDTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Transaccion, error) {
	var t model.Transaccion
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&t).Error
	return &t, err
}

func (r *transaccionRepo) DeleteTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return tx.WithContext(ctx).Where("id = ?", id).Delete(&model.Transaccion{}).Error
}

func (r *transaccionRepo) filtrar(ctx context.Context, q TransaccionQuery) *gorm.DB {
	db := r.db.WithContext(ctx).Model(&model.Transaccion{})
	if q.Tipo != "" {
		db = db.Where("tipo = ?", q.Tipo)
	}
	if q.SedeID != nil {
		db = db.Where("sede_id = ?", *q.SedeID)
	}
	if q.UsuarioID != nil {
		db = db.Where("usuario_id = ?", *q.UsuarioID)
	}
	if q.Desde != nil {
		db = db.Where("fecha_transaccion >= ?", *q.Desde)
	}
	if q.Hasta != nil {
		db = db.Where("fecha_transaccion < ?", *q.Hasta)
	}
	return db
}

func (r *transaccionRepo) List(ctx context.Context, q TransaccionQuery) ([]model.Transaccion, error) {
	var rows []model.Transaccion
	db := r.filtrar(ctx, q).
		Preload("Vehiculo").Preload("Articulo").Preload("Usuario").
		Order("fecha_transaccion DESC").
		Offset(q.Skip)
	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	err := db.Find(&rows).Error
	return rows, err
}

func (r *transaccionRepo) TotalesPorTipo(ctx context.Context, q TransaccionQuery) ([]TotalPorTipo, error) {
	var totales []TotalPorTipo
	err := r.filtrar(ctx, q).
		Select("tipo, COUNT(*) AS cantidad, " +
			"COALESCE(SUM(precio_venta), 0) AS total_ventas, " +
			"COALESCE(SUM(ganancia), 0) AS total_ganancias").
		Group("tipo").
		Order("tipo").
		Scan(&totales).Error
	return totales, err
}

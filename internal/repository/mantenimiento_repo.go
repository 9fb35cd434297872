package repository

import (
	"context"

	"jerosmotos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MantenimientoRepository interface {
	Create(ctx context.Context, m *model.Mantenimiento) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Mantenimiento, error)
	ListByVehiculo(ctx context.Context, vehiculoID uuid.UUID) ([]model.Mantenimiento, error)
	Update(ctx context.Context, m *model.Mantenimiento) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type mantenimientoRepo struct{ db *gorm.DB }

func NewMantenimientoRepository(db *gorm.DB) MantenimientoRepository {
	return &mantenimientoRepo{db: db}
}

func (r *mantenimientoRepo) Create(ctx context.Context, m *model.Mantenimiento) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *mantenimientoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Mantenimiento, error) {
	var m model.Mantenimiento
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	return &m, err
}

func (r *mantenimientoRepo) ListByVehiculo(ctx context.Context, vehiculoID uuid.UUID) ([]model.Mantenimiento, error) {
	var ms []model.Mantenimiento
	err := r.db.WithContext(ctx).
		Where("vehiculo_id = ?", vehiculoID).
		Order("fecha_servicio DESC NULLS LAST").
		Find(&ms).Error
	return ms, err
}

func (r *mantenimientoRepo) Update(ctx context.Context, m *model.Mantenimiento) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *mantenimientoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Mantenimiento{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

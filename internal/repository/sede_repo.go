package repository

import (
	"context"

	"jerosmotos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SedeRepository interface {
	Create(ctx context.Context, s *model.Sede) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Sede, error)
	List(ctx context.Context) ([]model.Sede, error)
	Update(ctx context.Context, s *model.Sede) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type sedeRepo struct{ db *gorm.DB }

func NewSedeRepository(db *gorm.DB) SedeRepository { return &sedeRepo{db: db} }

func (r *sedeRepo) Create(ctx context.Context, s *model.Sede) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *sedeRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Sede, error) {
	var s model.Sede
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error
	return &s, err
}

func (r *sedeRepo) List(ctx context.Context) ([]model.Sede, error) {
	var sedes []model.Sede
	err := r.db.WithContext(ctx).Order("nombre").Find(&sedes).Error
	return sedes, err
}

func (r *sedeRepo) Update(ctx context.Context, s *model.Sede) error {
	return r.db.WithContext(ctx).Save(s).Error
}

func (r *sedeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Sede{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

package repository

import (
	"context"

	"jerosmotos/internal/dto"
	"jerosmotos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ArticuloRepository interface {
	BienRepository

	Create(ctx context.Context, a *model.ArticuloValor) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ArticuloValor, error)
	List(ctx context.Context, filter dto.ArticuloFilter) ([]model.ArticuloValor, error)
	Update(ctx context.Context, a *model.ArticuloValor) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type articuloRepo struct{ db *gorm.DB }

func NewArticuloRepository(db *gorm.DB) ArticuloRepository { return &articuloRepo{db: db} }

func (r *articuloRepo) DB() *gorm.DB { return r.db }

func (r *articuloRepo) Clase() model.ClaseBien { return model.ClaseArticulo }

func (r *articuloRepo) Create(ctx context.Context, a *model.ArticuloValor) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *articuloRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ArticuloValor, error) {
	var a model.ArticuloValor
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error
	return &a, err
}

func (r *articuloRepo) List(ctx context.Context, filter dto.ArticuloFilter) ([]model.ArticuloValor, error) {
	var articulos []model.ArticuloValor
	q := r.db.WithContext(ctx).Model(&model.ArticuloValor{})
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.SedeID != "" {
		q = q.Where("sede_id = ?", filter.SedeID)
	}
	err := q.Order("fecha_registro DESC").Find(&articulos).Error
	return articulos, err
}

func (r *articuloRepo) Update(ctx context.Context, a *model.ArticuloValor) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *articuloRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.ArticuloValor{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *articuloRepo) FindBien(ctx context.Context, id uuid.UUID) (*model.Bien, error) {
	a, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b := a.Bien()
	return &b, nil
}

func (r *articuloRepo) FindBienTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Bien, error) {
	return findBienTx[model.ArticuloValor](ctx, tx, id)
}

func (r *articuloRepo) UpdateEstadoTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, estado string) error {
	return updateEstadoTx(ctx, tx, &model.ArticuloValor{}, id, estado)
}

func (r *articuloRepo) UpdateEmpenoTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, estado string, datos *model.DatosEmpeno) error {
	return updateEmpenoTx(ctx, tx, &model.ArticuloValor{}, id, estado, datos)
}

func (r *articuloRepo) ListEmpenados(ctx context.Context, sedeID *uuid.UUID) ([]model.Bien, error) {
	var articulos []model.ArticuloValor
	if err := empenados(r.db.WithContext(ctx), sedeID).Find(&articulos).Error; err != nil {
		return nil, err
	}
	bienes := make([]model.Bien, 0, len(articulos))
	for i := range articulos {
		bienes = append(bienes, articulos[i].Bien())
	}
	return bienes, nil
}

package repository

import (
	"context"

	"jerosmotos/internal/dto"
	"jerosmotos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VehiculoRepository interface {
	BienRepository

	Create(ctx context.Context, v *model.Vehiculo) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Vehiculo, error)
	FindByPlaca(ctx context.Context, placa string) (*model.Vehiculo, error)
	List(ctx context.Context, filter dto.VehiculoFilter) ([]model.Vehiculo, error)
	Update(ctx context.Context, v *model.Vehiculo) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type vehiculoRepo struct{ db *gorm.DB }

func NewVehiculoRepository(db *gorm.DB) VehiculoRepository { return &vehiculoRepo{db: db} }

func (r *vehiculoRepo) DB() *gorm.DB { return r.db }

func (r *vehiculoRepo) Clase() model.ClaseBien { return model.ClaseVehiculo }

func (r *vehiculoRepo) Create(ctx context.Context, v *model.Vehiculo) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *vehiculoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Vehiculo, error) {
	var v model.Vehiculo
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&v).Error
	return &v, err
}

func (r *vehiculoRepo) FindByPlaca(ctx context.Context, placa string) (*model.Vehiculo, error) {
	var v model.Vehiculo
	err := r.db.WithContext(ctx).Where("UPPER(placa) = UPPER(?)", placa).First(&v).Error
	return &v, err
}

func (r *vehiculoRepo) List(ctx context.Context, filter dto.VehiculoFilter) ([]model.Vehiculo, error) {
	var vehiculos []model.Vehiculo
	q := r.db.WithContext(ctx).Model(&model.Vehiculo{})
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}
	if filter.SedeID != "" {
		q = q.Where("sede_id = ?", filter.SedeID)
	}
	err := q.Order("created_at DESC").Find(&vehiculos).Error
	return vehiculos, err
}

func (r *vehiculoRepo) Update(ctx context.Context, v *model.Vehiculo) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *vehiculoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Vehiculo{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *vehiculoRepo) FindBien(ctx context.Context, id uuid.UUID) (*model.Bien, error) {
	v, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b := v.Bien()
	return &b, nil
}

func (r *vehiculoRepo) FindBienTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Bien, error) {
	return findBienTx[model.Vehiculo](ctx, tx, id)
}

func (r *vehiculoRepo) UpdateEstadoTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, estado string) error {
	return updateEstadoTx(ctx, tx, &model.Vehiculo{}, id, estado)
}

func (r *vehiculoRepo) UpdateEmpenoTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, estado string, datos *model.DatosEmpeno) error {
	return updateEmpenoTx(ctx, tx, &model.Vehiculo{}, id, estado, datos)
}

func (r *vehiculoRepo) ListEmpenados(ctx context.Context, sedeID *uuid.UUID) ([]model.Bien, error) {
	var vehiculos []model.Vehiculo
	if err := empenados(r.db.WithContext(ctx), sedeID).Find(&vehiculos).Error; err != nil {
		return nil, err
	}
	bienes := make([]model.Bien, 0, len(vehiculos))
	for i := range vehiculos {
		bienes = append(bienes, vehiculos[i].Bien())
	}
	return bienes, nil
}

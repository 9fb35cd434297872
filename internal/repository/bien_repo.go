package repository

import (
	"context"

	"jerosmotos/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// BienRepository is the pawn-facing contract shared by vehicles and articles.
// Services work against model.Bien so the accrual and lifecycle rules are
// written once for both families.
type BienRepository interface {
	Clase() model.ClaseBien
	FindBien(ctx context.Context, id uuid.UUID) (*model.Bien, error)

	// FindBienTx reads the row with SELECT ... FOR UPDATE. Callers must pass
	// the tx instance; the lock is held until the tx commits or rolls back.
	FindBienTx(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Bien, error)
	UpdateEstadoTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, estado string) error

	// UpdateEmpenoTx sets estado and the pawn columns together. A nil datos
	// clears every pawn column.
	UpdateEmpenoTx(ctx context.Context, tx *gorm.DB, id uuid.UUID, estado string, datos *model.DatosEmpeno) error
	ListEmpenados(ctx context.Context, sedeID *uuid.UUID) ([]model.Bien, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type conBien interface {
	Bien() model.Bien
}

func findBienTx[T any, P interface {
	*T
	conBien
}](ctx context.Context, tx *gorm.DB, id uuid.UUID) (*model.Bien, error) {
	var row T
	err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&row).Error
	if err != nil {
		return nil, err
	}
	b := P(&row).Bien()
	return &b, nil
}

func updateEstadoTx(ctx context.Context, tx *gorm.DB, tabla interface{}, id uuid.UUID, estado string) error {
	res := tx.WithContext(ctx).Model(tabla).Where("id = ?", id).Update("estado", estado)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func updateEmpenoTx(ctx context.Context, tx *gorm.DB, tabla interface{}, id uuid.UUID, estado string, d *model.DatosEmpeno) error {
	campos := map[string]interface{}{
		"estado":             estado,
		"valor_empeno":       nil,
		"interes_porcentaje": nil,
		"fecha_empeno":       nil,
		"cliente_nombre":     nil,
		"cliente_telefono":   nil,
		"cliente_documento":  nil,
	}
	if d != nil {
		campos["valor_empeno"] = d.ValorEmpeno
		campos["interes_porcentaje"] = d.InteresPorcentaje
		campos["fecha_empeno"] = d.FechaEmpeno
		campos["cliente_nombre"] = d.ClienteNombre
		campos["cliente_telefono"] = d.ClienteTelefono
		campos["cliente_documento"] = d.ClienteDocumento
	}
	res := tx.WithContext(ctx).Model(tabla).Where("id = ?", id).Updates(campos)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func empenados(q *gorm.DB, sedeID *uuid.UUID) *gorm.DB {
	q = q.Where("estado = ?", model.EstadoEmpeno)
	if sedeID != nil {
		q = q.Where("sede_id = ?", *sedeID)
	}
	return q.Order("fecha_empeno ASC")
}

package infra

import (
	"fmt"
	"time"

	"jerosmotos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens the GORM connection pool and brings the schema up to
// date. GORM error translation is enabled so unique violations surface as
// gorm.ErrDuplicatedKey.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates or updates every table and applies the constraints
// AutoMigrate cannot express. Safe to run on every start.
//
// Foreign keys are not created: ledger rows keep weak references to vehicles
// and articles so deleting inventory never touches history.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.Usuario{},
		&model.Sede{},
		&model.Vehiculo{},
		&model.ArticuloValor{},
		&model.Mantenimiento{},
		&model.Transaccion{},
	); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	if err := applySchemaPatches(db); err != nil {
		return fmt.Errorf("schema patches: %w", err)
	}
	return nil
}

// applySchemaPatches runs idempotent DDL: CHECK constraints guarded by a
// pg_constraint lookup and partial indexes with IF NOT EXISTS.
func applySchemaPatches(db *gorm.DB) error {
	patches := []struct{ descr, sql string }{
		{"check transacciones.tipo", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_transacciones_tipo') THEN
    ALTER TABLE transacciones ADD CONSTRAINT chk_transacciones_tipo CHECK (tipo IN
      ('venta_vehiculo', 'venta_articulo', 'empeño_articulo', 'recuperacion_empeño', 'empeño_vehiculo'));
  END IF;
END $$`},
		{"check vehiculos.estado", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_vehiculos_estado') THEN
    ALTER TABLE vehiculos ADD CONSTRAINT chk_vehiculos_estado CHECK (estado IN
      ('disponible', 'empeño', 'vendido', 'baja'));
  END IF;
END $$`},
		{"check articulos_valor.estado", `
DO $$ BEGIN
  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'chk_articulos_valor_estado') THEN
    ALTER TABLE articulos_valor ADD CONSTRAINT chk_articulos_valor_estado CHECK (estado IN
      ('disponible', 'empeño', 'vendido', 'recuperado'));
  END IF;
END $$`},
		{"index vehiculos empeñados", `
CREATE INDEX IF NOT EXISTS idx_vehiculos_empenados
    ON vehiculos (fecha_empeno) WHERE estado = 'empeño'`},
		{"index articulos empeñados", `
CREATE INDEX IF NOT EXISTS idx_articulos_valor_empenados
    ON articulos_valor (fecha_empeno) WHERE estado = 'empeño'`},
		{"unique usuarios.correo case-insensitive", `
CREATE UNIQUE INDEX IF NOT EXISTS idx_usuarios_correo_lower ON usuarios (LOWER(correo))`},
	}
	for _, p := range patches {
		if err := db.Exec(p.sql).Error; err != nil {
			return fmt.Errorf("patch %q: %w", p.descr, err)
		}
	}
	return nil
}

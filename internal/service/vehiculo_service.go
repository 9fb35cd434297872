package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"jerosmotos/internal/dto"
	"jerosmotos/internal/model"
	"jerosmotos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VehiculoService interface {
	Crear(ctx context.Context, req dto.CrearVehiculoRequest) (*dto.VehiculoResponse, error)
	Listar(ctx context.Context, filter dto.VehiculoFilter) ([]dto.VehiculoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.VehiculoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarVehiculoRequest) (*dto.VehiculoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type vehiculoService struct {
	repo  repository.VehiculoRepository
	sedes repository.SedeRepository
}

func NewVehiculoService(repo repository.VehiculoRepository, sedes repository.SedeRepository) VehiculoService {
	return &vehiculoService{repo: repo, sedes: sedes}
}

func (s *vehiculoService) Crear(ctx context.Context, req dto.CrearVehiculoRequest) (*dto.VehiculoResponse, error) {
	sedeID, err := sedeExistente(ctx, s.sedes, req.SedeID)
	if err != nil {
		return nil, err
	}
	placa := normalizarPlaca(req.Placa)
	if err := s.placaLibre(ctx, placa, uuid.Nil); err != nil {
		return nil, err
	}
	soat, err := parseFecha(req.SoatVencimiento, "soat_vencimiento")
	if err != nil {
		return nil, err
	}
	tecno, err := parseFecha(req.TecnoVencimiento, "tecno_vencimiento")
	if err != nil {
		return nil, err
	}

	v := &model.Vehiculo{
		Marca:            strings.TrimSpace(req.Marca),
		Modelo:           strings.TrimSpace(req.Modelo),
		Placa:            placa,
		Cilindraje:       req.Cilindraje,
		Color:            req.Color,
		PrecioCompra:     req.PrecioCompra,
		PrecioVenta:      req.PrecioVenta,
		SoatVencimiento:  soat,
		TecnoVencimiento: tecno,
		SedeID:           sedeID,
		Estado:           model.EstadoDisponible,
	}
	if err := s.repo.Create(ctx, v); err != nil {
		return nil, placaDuplicadaOr(err, placa)
	}
	resp := vehiculoToResponse(v)
	return &resp, nil
}

func (s *vehiculoService) Listar(ctx context.Context, filter dto.VehiculoFilter) ([]dto.VehiculoResponse, error) {
	vehiculos, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.VehiculoResponse, len(vehiculos))
	for i := range vehiculos {
		resp[i] = vehiculoToResponse(&vehiculos[i])
	}
	return resp, nil
}

func (s *vehiculoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.VehiculoResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "vehículo no encontrado")
	}
	resp := vehiculoToResponse(v)
	return &resp, nil
}

// Actualizar applies a partial update. Estado may only move between
// disponible and baja; pawned or sold vehicles change status through their
// own flows.
func (s *vehiculoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarVehiculoRequest) (*dto.VehiculoResponse, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "vehículo no encontrado")
	}

	if req.Estado != nil && *req.Estado != v.Estado {
		if v.Estado != model.EstadoDisponible && v.Estado != model.EstadoBaja {
			return nil, invalidState("no se puede cambiar el estado de un vehículo en estado %s", v.Estado)
		}
		v.Estado = *req.Estado
	}
	if req.Marca != nil {
		v.Marca = strings.TrimSpace(*req.Marca)
	}
	if req.Modelo != nil {
		v.Modelo = strings.TrimSpace(*req.Modelo)
	}
	if req.Placa != nil {
		placa := normalizarPlaca(req.Placa)
		if err := s.placaLibre(ctx, placa, v.ID); err != nil {
			return nil, err
		}
		v.Placa = placa
	}
	if req.Cilindraje != nil {
		v.Cilindraje = req.Cilindraje
	}
	if req.Color != nil {
		v.Color = req.Color
	}
	if req.PrecioCompra != nil {
		v.PrecioCompra = req.PrecioCompra
	}
	if req.PrecioVenta != nil {
		v.PrecioVenta = req.PrecioVenta
	}
	if req.SoatVencimiento != nil {
		if v.SoatVencimiento, err = parseFecha(req.SoatVencimiento, "soat_vencimiento"); err != nil {
			return nil, err
		}
	}
	if req.TecnoVencimiento != nil {
		if v.TecnoVencimiento, err = parseFecha(req.TecnoVencimiento, "tecno_vencimiento"); err != nil {
			return nil, err
		}
	}
	if req.SedeID != nil {
		if v.SedeID, err = sedeExistente(ctx, s.sedes, req.SedeID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, v); err != nil {
		return nil, placaDuplicadaOr(err, v.Placa)
	}
	resp := vehiculoToResponse(v)
	return &resp, nil
}

// Eliminar refuses to drop a vehicle that is currently pawned. Ledger rows
// that reference it keep their weak reference.
func (s *vehiculoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "vehículo no encontrado")
	}
	if v.Estado == model.EstadoEmpeno {
		return invalidState("no se puede eliminar un vehículo empeñado")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "vehículo no encontrado")
	}
	return nil
}

func (s *vehiculoService) placaLibre(ctx context.Context, placa *string, propio uuid.UUID) error {
	if placa == nil {
		return nil
	}
	otro, err := s.repo.FindByPlaca(ctx, *placa)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if otro.ID != propio {
		return invalid("ya existe un vehículo con la placa %s", *placa)
	}
	return nil
}

func placaDuplicadaOr(err error, placa *string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) && placa != nil {
		return invalid("ya existe un vehículo con la placa %s", *placa)
	}
	return err
}

func normalizarPlaca(p *string) *string {
	if p == nil {
		return nil
	}
	s := strings.ToUpper(strings.TrimSpace(*p))
	if s == "" {
		return nil
	}
	return &s
}

func parseFecha(s *string, campo string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", *s)
	if err != nil {
		return nil, invalid("%s inválida, use YYYY-MM-DD", campo)
	}
	return &t, nil
}

func fechaPtrString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

func vehiculoToResponse(v *model.Vehiculo) dto.VehiculoResponse {
	return dto.VehiculoResponse{
		ID:                v.ID.String(),
		Marca:             v.Marca,
		Modelo:            v.Modelo,
		Placa:             v.Placa,
		Cilindraje:        v.Cilindraje,
		Color:             v.Color,
		PrecioCompra:      v.PrecioCompra,
		PrecioVenta:       v.PrecioVenta,
		SoatVencimiento:   fechaPtrString(v.SoatVencimiento),
		TecnoVencimiento:  fechaPtrString(v.TecnoVencimiento),
		SedeID:            uuidPtrString(v.SedeID),
		Estado:            v.Estado,
		ValorEmpeno:       v.ValorEmpeno,
		InteresPorcentaje: v.InteresPorcentaje,
		FechaEmpeno:       fechaPtrString(v.FechaEmpeno),
		ClienteNombre:     v.ClienteNombre,
	}
}

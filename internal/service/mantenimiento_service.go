package service

import (
	"context"
	"strings"

	"jerosmotos/internal/dto"
	"jerosmotos/internal/model"
	"jerosmotos/internal/repository"

	"github.com/google/uuid"
)

type MantenimientoService interface {
	Crear(ctx context.Context, req dto.MantenimientoRequest) (*dto.MantenimientoResponse, error)
	ListarPorVehiculo(ctx context.Context, vehiculoID uuid.UUID) ([]dto.MantenimientoResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.MantenimientoResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.MantenimientoRequest) (*dto.MantenimientoResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type mantenimientoService struct {
	repo      repository.MantenimientoRepository
	vehiculos repository.VehiculoRepository
}

func NewMantenimientoService(repo repository.MantenimientoRepository, vehiculos repository.VehiculoRepository) MantenimientoService {
	return &mantenimientoService{repo: repo, vehiculos: vehiculos}
}

func (s *mantenimientoService) vehiculo(ctx context.Context, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, invalid("vehiculo_id inválido")
	}
	if _, err := s.vehiculos.FindByID(ctx, id); err != nil {
		return uuid.Nil, notFoundOr(err, "vehículo no encontrado")
	}
	return id, nil
}

func (s *mantenimientoService) Crear(ctx context.Context, req dto.MantenimientoRequest) (*dto.MantenimientoResponse, error) {
	vid, err := s.vehiculo(ctx, req.VehiculoID)
	if err != nil {
		return nil, err
	}
	fecha, err := parseFecha(req.FechaServicio, "fecha_servicio")
	if err != nil {
		return nil, err
	}
	if req.Costo != nil && req.Costo.IsNegative() {
		return nil, invalid("el costo no puede ser negativo")
	}
	m := &model.Mantenimiento{
		VehiculoID:    vid,
		FechaServicio: fecha,
		Servicio:      strings.TrimSpace(req.Servicio),
		Taller:        req.Taller,
		Costo:         req.Costo,
		Observaciones: req.Observaciones,
	}
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	resp := mantenimientoToResponse(m)
	return &resp, nil
}

func (s *mantenimientoService) ListarPorVehiculo(ctx context.Context, vehiculoID uuid.UUID) ([]dto.MantenimientoResponse, error) {
	ms, err := s.repo.ListByVehiculo(ctx, vehiculoID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MantenimientoResponse, len(ms))
	for i := range ms {
		resp[i] = mantenimientoToResponse(&ms[i])
	}
	return resp, nil
}

func (s *mantenimientoService) Obtener(ctx context.Context, id uuid.UUID) (*dto.MantenimientoResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "mantenimiento no encontrado")
	}
	resp := mantenimientoToResponse(m)
	return &resp, nil
}

func (s *mantenimientoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.MantenimientoRequest) (*dto.MantenimientoResponse, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "mantenimiento no encontrado")
	}
	if req.VehiculoID != m.VehiculoID.String() {
		if m.VehiculoID, err = s.vehiculo(ctx, req.VehiculoID); err != nil {
			return nil, err
		}
	}
	if m.FechaServicio, err = parseFecha(req.FechaServicio, "fecha_servicio"); err != nil {
		return nil, err
	}
	if req.Costo != nil && req.Costo.IsNegative() {
		return nil, invalid("el costo no puede ser negativo")
	}
	m.Servicio = strings.TrimSpace(req.Servicio)
	m.Taller = req.Taller
	m.Costo = req.Costo
	m.Observaciones = req.Observaciones

	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}
	resp := mantenimientoToResponse(m)
	return &resp, nil
}

func (s *mantenimientoService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "mantenimiento no encontrado")
	}
	return nil
}

func mantenimientoToResponse(m *model.Mantenimiento) dto.MantenimientoResponse {
	return dto.MantenimientoResponse{
		ID:            m.ID.String(),
		VehiculoID:    m.VehiculoID.String(),
		FechaServicio: fechaPtrString(m.FechaServicio),
		Servicio:      m.Servicio,
		Taller:        m.Taller,
		Costo:         m.Costo,
		Observaciones: m.Observaciones,
	}
}

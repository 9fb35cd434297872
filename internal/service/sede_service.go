package service

import (
	"context"
	"errors"
	"strings"

	"jerosmotos/internal/dto"
	"jerosmotos/internal/model"
	"jerosmotos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SedeService interface {
	Crear(ctx context.Context, req dto.SedeRequest) (*dto.SedeResponse, error)
	Listar(ctx context.Context) ([]dto.SedeResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.SedeResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.SedeRequest) (*dto.SedeResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type sedeService struct {
	repo repository.SedeRepository
}

func NewSedeService(repo repository.SedeRepository) SedeService {
	return &sedeService{repo: repo}
}

func (s *sedeService) Crear(ctx context.Context, req dto.SedeRequest) (*dto.SedeResponse, error) {
	sede := &model.Sede{
		Nombre:    strings.TrimSpace(req.Nombre),
		Direccion: req.Direccion,
		Telefono:  req.Telefono,
	}
	if err := s.repo.Create(ctx, sede); err != nil {
		return nil, err
	}
	resp := sedeToResponse(sede)
	return &resp, nil
}

func (s *sedeService) Listar(ctx context.Context) ([]dto.SedeResponse, error) {
	sedes, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.SedeResponse, len(sedes))
	for i := range sedes {
		resp[i] = sedeToResponse(&sedes[i])
	}
	return resp, nil
}

func (s *sedeService) Obtener(ctx context.Context, id uuid.UUID) (*dto.SedeResponse, error) {
	sede, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "sede no encontrada")
	}
	resp := sedeToResponse(sede)
	return &resp, nil
}

func (s *sedeService) Actualizar(ctx context.Context, id uuid.UUID, req dto.SedeRequest) (*dto.SedeResponse, error) {
	sede, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "sede no encontrada")
	}
	sede.Nombre = strings.TrimSpace(req.Nombre)
	sede.Direccion = req.Direccion
	sede.Telefono = req.Telefono
	if err := s.repo.Update(ctx, sede); err != nil {
		return nil, err
	}
	resp := sedeToResponse(sede)
	return &resp, nil
}

func (s *sedeService) Eliminar(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "sede no encontrada")
	}
	return nil
}

func sedeToResponse(s *model.Sede) dto.SedeResponse {
	return dto.SedeResponse{
		ID:        s.ID.String(),
		Nombre:    s.Nombre,
		Direccion: s.Direccion,
		Telefono:  s.Telefono,
	}
}

// sedeExistente resolves an optional sede_id and checks it exists.
func sedeExistente(ctx context.Context, repo repository.SedeRepository, raw *string) (*uuid.UUID, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	id, err := parseOptionalUUID(*raw, "sede_id")
	if err != nil {
		return nil, err
	}
	if repo == nil {
		return id, nil
	}
	if _, err := repo.FindByID(ctx, *id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, invalid("la sede %s no existe", *raw)
		}
		return nil, err
	}
	return id, nil
}

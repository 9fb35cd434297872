package service

import (
	"context"
	"strings"
	"time"

	"jerosmotos/internal/dto"
	"jerosmotos/internal/interes"
	"jerosmotos/internal/model"
	"jerosmotos/internal/repository"

	"github.com/google/uuid"
)

type ArticuloService interface {
	Crear(ctx context.Context, req dto.CrearArticuloRequest) (*dto.ArticuloResponse, error)
	Listar(ctx context.Context, filter dto.ArticuloFilter) ([]dto.ArticuloResponse, error)
	Obtener(ctx context.Context, id uuid.UUID) (*dto.ArticuloResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarArticuloRequest) (*dto.ArticuloResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type articuloService struct {
	repo  repository.ArticuloRepository
	sedes repository.SedeRepository
	loc   *time.Location
	now   Reloj
}

func NewArticuloService(repo repository.ArticuloRepository, sedes repository.SedeRepository, loc *time.Location, now Reloj) ArticuloService {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &articuloService{repo: repo, sedes: sedes, loc: loc, now: now}
}

func (s *articuloService) Crear(ctx context.Context, req dto.CrearArticuloRequest) (*dto.ArticuloResponse, error) {
	if req.Valor.IsNegative() {
		return nil, invalid("el valor del artículo no puede ser negativo")
	}
	sedeID, err := sedeExistente(ctx, s.sedes, req.SedeID)
	if err != nil {
		return nil, err
	}
	fecha := interes.Fecha(s.now().In(s.loc))
	if req.FechaRegistro != nil {
		f, err := parseFecha(req.FechaRegistro, "fecha_registro")
		if err != nil {
			return nil, err
		}
		fecha = *f
	}

	a := &model.ArticuloValor{
		Descripcion:   strings.TrimSpace(req.Descripcion),
		Valor:         req.Valor.Round(2),
		FechaRegistro: fecha,
		SedeID:        sedeID,
		Estado:        model.EstadoDisponible,
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	resp := articuloToResponse(a)
	return &resp, nil
}

func (s *articuloService) Listar(ctx context.Context, filter dto.ArticuloFilter) ([]dto.ArticuloResponse, error) {
	articulos, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ArticuloResponse, len(articulos))
	for i := range articulos {
		resp[i] = articuloToResponse(&articulos[i])
	}
	return resp, nil
}

func (s *articuloService) Obtener(ctx context.Context, id uuid.UUID) (*dto.ArticuloResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "artículo no encontrado")
	}
	resp := articuloToResponse(a)
	return &resp, nil
}

// Actualizar applies a partial update. The only manual status change is
// bringing a recovered article back to disponible.
func (s *articuloService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarArticuloRequest) (*dto.ArticuloResponse, error) {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "artículo no encontrado")
	}

	if req.Estado != nil && *req.Estado != a.Estado {
		if a.Estado != model.EstadoRecuperado {
			return nil, invalidState("no se puede cambiar el estado de un artículo en estado %s", a.Estado)
		}
		// A recovered article keeps its pawn data only while recovered.
		a.Estado = *req.Estado
		a.DatosEmpeno = model.DatosEmpeno{}
	}
	if req.Descripcion != nil {
		a.Descripcion = strings.TrimSpace(*req.Descripcion)
	}
	if req.Valor != nil {
		if req.Valor.IsNegative() {
			return nil, invalid("el valor del artículo no puede ser negativo")
		}
		a.Valor = req.Valor.Round(2)
	}
	if req.SedeID != nil {
		if a.SedeID, err = sedeExistente(ctx, s.sedes, req.SedeID); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	resp := articuloToResponse(a)
	return &resp, nil
}

func (s *articuloService) Eliminar(ctx context.Context, id uuid.UUID) error {
	a, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return notFoundOr(err, "artículo no encontrado")
	}
	if a.Estado == model.EstadoEmpeno {
		return invalidState("no se puede eliminar un artículo empeñado")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundOr(err, "artículo no encontrado")
	}
	return nil
}

func articuloToResponse(a *model.ArticuloValor) dto.ArticuloResponse {
	return dto.ArticuloResponse{
		ID:                a.ID.String(),
		Descripcion:       a.Descripcion,
		Valor:             a.Valor,
		FechaRegistro:     a.FechaRegistro.Format("2006-01-02"),
		SedeID:            uuidPtrString(a.SedeID),
		Estado:            a.Estado,
		ValorEmpeno:       a.ValorEmpeno,
		InteresPorcentaje: a.InteresPorcentaje,
		FechaEmpeno:       fechaPtrString(a.FechaEmpeno),
		ClienteNombre:     a.ClienteNombre,
	}
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/dto"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/model"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// HorarioCacheKey is the redis key for the cached public schedule listing.
const HorarioCacheKey = "horarios:publico"

type HorarioService interface {
	Crear(ctx context.Context, req dto.CrearHorarioRequest) (*dto.HorarioResponse, error)
	Listar(ctx context.Context) ([]dto.HorarioResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarHorarioRequest) (*dto.HorarioResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type horarioService struct {
	repo repository.HorarioRepository
	rdb  *redis.Client
}

func NewHorarioService(repo repository.HorarioRepository, rdb *redis.Client) HorarioService {
	return &horarioService{repo: repo, rdb: rdb}
}

func (s *horarioService) Crear(ctx context.Context, req dto.CrearHorarioRequest) (*dto.HorarioResponse, error) {
	catID, err := uuid.Parse(req.CategoriaID)
	if err != nil {
		return nil, fmt.Errorf("categoria_id invalido: %w", err)
	}
	if req.HoraFin <= req.HoraInicio {
		return nil, errors.New("hora_fin debe ser posterior a hora_inicio")
	}

	cupo := req.CupoMaximo
	if cupo == 0 {
		cupo = 30
	}
	h := &model.Horario{
		CategoriaID: catID,
		DiaSemana:   req.DiaSemana,
		HoraInicio:  req.HoraInicio,
		HoraFin:     req.HoraFin,
		Salon:       req.Salon,
		CupoMaximo:  cupo,
		Activo:      true,
	}
	if req.InstructorID != nil {
		iid, err := uuid.Parse(*req.InstructorID)
		if err != nil {
			return nil, fmt.Errorf("instructor_id invalido: %w", err)
		}
		h.InstructorID = &iid
	}

	if err := s.repo.Create(ctx, h); err != nil {
		return nil, err
	}
	s.invalidarCache(ctx)

	creado, err := s.repo.FindByID(ctx, h.ID)
	if err != nil {
		return nil, err
	}
	return horarioToResponse(creado), nil
}

func (s *horarioService) Listar(ctx context.Context) ([]dto.HorarioResponse, error) {
	horarios, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.HorarioResponse, len(horarios))
	for i := range horarios {
		resp[i] = *horarioToResponse(&horarios[i])
	}
	return resp, nil
}

func (s *horarioService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarHorarioRequest) (*dto.HorarioResponse, error) {
	h, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("horario no encontrado")
	}
	if req.DiaSemana != nil {
		h.DiaSemana = *req.DiaSemana
	}
	if req.HoraInicio != "" {
		h.HoraInicio = req.HoraInicio
	}
	if req.HoraFin != "" {
		h.HoraFin = req.HoraFin
	}
	if h.HoraFin <= h.HoraInicio {
		return nil, errors.New("hora_fin debe ser posterior a hora_inicio")
	}
	if req.InstructorID != nil {
		iid, err := uuid.Parse(*req.InstructorID)
		if err != nil {
			return nil, fmt.Errorf("instructor_id invalido: %w", err)
		}
		h.InstructorID = &iid
	}
	if req.Salon != "" {
		h.Salon = req.Salon
	}
	if req.CupoMaximo != nil {
		h.CupoMaximo = *req.CupoMaximo
	}

	if err := s.repo.Update(ctx, h); err != nil {
		return nil, err
	}
	s.invalidarCache(ctx)
	return horarioToResponse(h), nil
}

func (s *horarioService) Desactivar(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidarCache(ctx)
	return nil
}

// invalidarCache drops the public schedule cache after any write. Best
// effort: the cache has a TTL anyway.
func (s *horarioService) invalidarCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, HorarioCacheKey).Err(); err != nil {
		log.Warn().Err(err).Msg("horario: no se pudo invalidar el cache")
	}
}

func horarioToResponse(h *model.Horario) *dto.HorarioResponse {
	resp := &dto.HorarioResponse{
		ID:          h.ID.String(),
		CategoriaID: h.CategoriaID.String(),
		Categoria:   h.Categoria.Nombre,
		Cinturon:    h.Categoria.Cinturon,
		DiaSemana:   h.DiaSemana,
		HoraInicio:  h.HoraInicio,
		HoraFin:     h.HoraFin,
		Salon:       h.Salon,
		CupoMaximo:  h.CupoMaximo,
	}
	if h.InstructorID != nil {
		id := h.InstructorID.String()
		resp.InstructorID = &id
		if h.Instructor != nil {
			resp.Instructor = h.Instructor.Nombre
		}
	}
	return resp
}

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/dto"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/model"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/repository"

	"github.com/google/uuid"
)

// mayoriaEdad: a student younger than this requires a representante.
const mayoriaEdad = 18

type AlumnoService interface {
	Crear(ctx context.Context, req dto.CrearAlumnoRequest) (*dto.AlumnoResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.AlumnoResponse, error)
	Listar(ctx context.Context, filter dto.AlumnoFilter) (*dto.AlumnoListResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarAlumnoRequest) (*dto.AlumnoResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
	// ResolverPorUsuario maps an authenticated "usuario" account to its alumno.
	ResolverPorUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.Alumno, error)
}

type alumnoService struct {
	repo          repository.AlumnoRepository
	categoriaRepo repository.CategoriaRepository
	repRepo       repository.RepresentanteRepository
}

func NewAlumnoService(repo repository.AlumnoRepository, categoriaRepo repository.CategoriaRepository, repRepo repository.RepresentanteRepository) AlumnoService {
	return &alumnoService{repo: repo, categoriaRepo: categoriaRepo, repRepo: repRepo}
}

func (s *alumnoService) Crear(ctx context.Context, req dto.CrearAlumnoRequest) (*dto.AlumnoResponse, error) {
	if _, err := s.repo.FindByCedula(ctx, req.Cedula); err == nil {
		return nil, fmt.Errorf("ya existe un alumno con cedula %s", req.Cedula)
	}

	catID, err := uuid.Parse(req.CategoriaID)
	if err != nil {
		return nil, fmt.Errorf("categoria_id invalido: %w", err)
	}
	if _, err := s.categoriaRepo.FindByID(ctx, catID); err != nil {
		return nil, errors.New("categoria no encontrada")
	}

	nacimiento, err := time.Parse("2006-01-02", req.FechaNacimiento)
	if err != nil {
		return nil, fmt.Errorf("fecha_nacimiento invalida: %w", err)
	}

	alumno := &model.Alumno{
		Nombre:           req.Nombre,
		Cedula:           req.Cedula,
		FechaNacimiento:  nacimiento,
		Telefono:         req.Telefono,
		Email:            req.Email,
		CategoriaID:      catID,
		FechaInscripcion: time.Now(),
		Activo:           true,
	}

	if req.RepresentanteID != nil {
		repID, err := uuid.Parse(*req.RepresentanteID)
		if err != nil {
			return nil, fmt.Errorf("representante_id invalido: %w", err)
		}
		if _, err := s.repRepo.FindByID(ctx, repID); err != nil {
			return nil, errors.New("representante no encontrado")
		}
		alumno.RepresentanteID = &repID
	}

	if alumno.Edad(time.Now()) < mayoriaEdad && alumno.RepresentanteID == nil {
		return nil, errors.New("un alumno menor de edad requiere un representante")
	}

	if req.UsuarioID != nil {
		uid, err := uuid.Parse(*req.UsuarioID)
		if err != nil {
			return nil, fmt.Errorf("usuario_id invalido: %w", err)
		}
		alumno.UsuarioID = &uid
	}

	if err := s.repo.Create(ctx, alumno); err != nil {
		return nil, err
	}

	creado, err := s.repo.FindByID(ctx, alumno.ID)
	if err != nil {
		return nil, err
	}
	return alumnoToResponse(creado), nil
}

func (s *alumnoService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.AlumnoResponse, error) {
	alumno, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("alumno no encontrado")
	}
	return alumnoToResponse(alumno), nil
}

func (s *alumnoService) Listar(ctx context.Context, filter dto.AlumnoFilter) (*dto.AlumnoListResponse, error) {
	alumnos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.AlumnoListResponse{
		Data:  make([]dto.AlumnoResponse, len(alumnos)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range alumnos {
		resp.Data[i] = *alumnoToResponse(&alumnos[i])
	}
	return resp, nil
}

func (s *alumnoService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarAlumnoRequest) (*dto.AlumnoResponse, error) {
	alumno, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("alumno no encontrado")
	}
	if req.Nombre != "" {
		alumno.Nombre = req.Nombre
	}
	if req.Telefono != "" {
		alumno.Telefono = req.Telefono
	}
	if req.Email != nil {
		alumno.Email = req.Email
	}
	if req.CategoriaID != nil {
		catID, err := uuid.Parse(*req.CategoriaID)
		if err != nil {
			return nil, fmt.Errorf("categoria_id invalido: %w", err)
		}
		if _, err := s.categoriaRepo.FindByID(ctx, catID); err != nil {
			return nil, errors.New("categoria no encontrada")
		}
		alumno.CategoriaID = catID
	}
	if req.RepresentanteID != nil {
		repID, err := uuid.Parse(*req.RepresentanteID)
		if err != nil {
			return nil, fmt.Errorf("representante_id invalido: %w", err)
		}
		alumno.RepresentanteID = &repID
	}
	if req.UsuarioID != nil {
		uid, err := uuid.Parse(*req.UsuarioID)
		if err != nil {
			return nil, fmt.Errorf("usuario_id invalido: %w", err)
		}
		alumno.UsuarioID = &uid
	}

	if err := s.repo.Update(ctx, alumno); err != nil {
		return nil, err
	}
	actualizado, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return alumnoToResponse(actualizado), nil
}

func (s *alumnoService) Desactivar(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *alumnoService) Reactivar(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactivar(ctx, id)
}

func (s *alumnoService) ResolverPorUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.Alumno, error) {
	alumno, err := s.repo.FindByUsuario(ctx, usuarioID)
	if err != nil {
		return nil, errors.New("la cuenta no esta vinculada a ningun alumno")
	}
	return alumno, nil
}

func alumnoToResponse(a *model.Alumno) *dto.AlumnoResponse {
	resp := &dto.AlumnoResponse{
		ID:               a.ID.String(),
		Nombre:           a.Nombre,
		Cedula:           a.Cedula,
		FechaNacimiento:  a.FechaNacimiento.Format("2006-01-02"),
		Edad:             a.Edad(time.Now()),
		Telefono:         a.Telefono,
		Email:            a.Email,
		CategoriaID:      a.CategoriaID.String(),
		Categoria:        a.Categoria.Nombre,
		Cinturon:         a.Categoria.Cinturon,
		FechaInscripcion: a.FechaInscripcion.Format("2006-01-02"),
		Activo:           a.Activo,
	}
	if a.RepresentanteID != nil {
		id := a.RepresentanteID.String()
		resp.RepresentanteID = &id
	}
	if a.UsuarioID != nil {
		id := a.UsuarioID.String()
		resp.UsuarioID = &id
	}
	return resp
}

package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/dto"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/model"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/repository"

	"github.com/google/uuid"
)

// PreparacionConfig holds the age-bracket multipliers applied to a
// category's base preparation months. Injected so tests can exercise
// boundary values without patching source.
type PreparacionConfig struct {
	// Edades limite de cada tramo (inclusive el inferior, exclusivo el superior).
	EdadInfantil int // por debajo: MultInfantil
	EdadJuvenil  int // por debajo: MultJuvenil
	EdadVeterano int // desde aqui: MultVeterano

	MultInfantil float64
	MultJuvenil  float64
	MultAdulto   float64
	MultVeterano float64
}

// DefaultPreparacionConfig mirrors the progression tables used by the dojo:
// children and veterans need proportionally longer to prepare an exam.
func DefaultPreparacionConfig() PreparacionConfig {
	return PreparacionConfig{
		EdadInfantil: 12,
		EdadJuvenil:  18,
		EdadVeterano: 40,
		MultInfantil: 1.5,
		MultJuvenil:  1.2,
		MultAdulto:   1.0,
		MultVeterano: 1.3,
	}
}

// Multiplicador returns the factor for a given age.
func (c PreparacionConfig) Multiplicador(edad int) float64 {
	switch {
	case edad < c.EdadInfantil:
		return c.MultInfantil
	case edad < c.EdadJuvenil:
		return c.MultJuvenil
	case edad >= c.EdadVeterano:
		return c.MultVeterano
	default:
		return c.MultAdulto
	}
}

type EvaluacionService interface {
	Crear(ctx context.Context, evaluadorID uuid.UUID, req dto.CrearEvaluacionRequest) (*dto.EvaluacionResponse, error)
	RegistrarResultado(ctx context.Context, id uuid.UUID, req dto.RegistrarResultadoRequest) (*dto.EvaluacionResponse, error)
	ListarPorAlumno(ctx context.Context, alumnoID uuid.UUID) ([]dto.EvaluacionResponse, error)
	ListarPendientes(ctx context.Context) ([]dto.EvaluacionResponse, error)
	// EstimarPreparacion computes the belt/age exam-preparation estimate for
	// advancing to the next category in the progression.
	EstimarPreparacion(ctx context.Context, alumnoID uuid.UUID) (*dto.PreparacionResponse, error)
}

type evaluacionService struct {
	repo          repository.EvaluacionRepository
	alumnoRepo    repository.AlumnoRepository
	categoriaRepo repository.CategoriaRepository
	prep          PreparacionConfig
}

func NewEvaluacionService(repo repository.EvaluacionRepository, alumnoRepo repository.AlumnoRepository, categoriaRepo repository.CategoriaRepository, prep PreparacionConfig) EvaluacionService {
	return &evaluacionService{repo: repo, alumnoRepo: alumnoRepo, categoriaRepo: categoriaRepo, prep: prep}
}

func (s *evaluacionService) Crear(ctx context.Context, evaluadorID uuid.UUID, req dto.CrearEvaluacionRequest) (*dto.EvaluacionResponse, error) {
	alumnoID, err := uuid.Parse(req.AlumnoID)
	if err != nil {
		return nil, fmt.Errorf("alumno_id invalido: %w", err)
	}
	alumno, err := s.alumnoRepo.FindByID(ctx, alumnoID)
	if err != nil {
		return nil, errors.New("alumno no encontrado")
	}

	objetivoID, err := uuid.Parse(req.CategoriaObjetivoID)
	if err != nil {
		return nil, fmt.Errorf("categoria_objetivo_id invalido: %w", err)
	}
	objetivo, err := s.categoriaRepo.FindByID(ctx, objetivoID)
	if err != nil {
		return nil, errors.New("categoria objetivo no encontrada")
	}
	if objetivo.Orden <= alumno.Categoria.Orden {
		return nil, errors.New("la categoria objetivo debe ser superior a la actual")
	}

	fecha, err := time.Parse("2006-01-02", req.Fecha)
	if err != nil {
		return nil, fmt.Errorf("fecha invalida: %w", err)
	}

	e := &model.Evaluacion{
		AlumnoID:            alumno.ID,
		CategoriaActualID:   alumno.CategoriaID,
		CategoriaObjetivoID: objetivo.ID,
		Fecha:               fecha,
		Resultado:           "pendiente",
		Observaciones:       req.Observaciones,
		EvaluadorID:         evaluadorID,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	e.Alumno = *alumno
	e.CategoriaObjetivo = *objetivo
	return evaluacionToResponse(e), nil
}

// RegistrarResultado closes a pending evaluation. On aprobado the student is
// promoted to the target category.
func (s *evaluacionService) RegistrarResultado(ctx context.Context, id uuid.UUID, req dto.RegistrarResultadoRequest) (*dto.EvaluacionResponse, error) {
	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("evaluacion no encontrada")
	}
	if e.Resultado != "pendiente" {
		return nil, errors.New("la evaluacion ya tiene resultado")
	}

	e.Resultado = req.Resultado
	e.Puntaje = req.Puntaje
	if req.Observaciones != "" {
		e.Observaciones = req.Observaciones
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}

	if e.Resultado == "aprobado" {
		alumno, err := s.alumnoRepo.FindByID(ctx, e.AlumnoID)
		if err != nil {
			return nil, err
		}
		alumno.CategoriaID = e.CategoriaObjetivoID
		if err := s.alumnoRepo.Update(ctx, alumno); err != nil {
			return nil, err
		}
	}
	return evaluacionToResponse(e), nil
}

func (s *evaluacionService) ListarPorAlumno(ctx context.Context, alumnoID uuid.UUID) ([]dto.EvaluacionResponse, error) {
	evals, err := s.repo.ListByAlumno(ctx, alumnoID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.EvaluacionResponse, len(evals))
	for i := range evals {
		resp[i] = *evaluacionToResponse(&evals[i])
	}
	return resp, nil
}

func (s *evaluacionService) ListarPendientes(ctx context.Context) ([]dto.EvaluacionResponse, error) {
	evals, err := s.repo.ListPendientes(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.EvaluacionResponse, len(evals))
	for i := range evals {
		resp[i] = *evaluacionToResponse(&evals[i])
	}
	return resp, nil
}

func (s *evaluacionService) EstimarPreparacion(ctx context.Context, alumnoID uuid.UUID) (*dto.PreparacionResponse, error) {
	alumno, err := s.alumnoRepo.FindByID(ctx, alumnoID)
	if err != nil {
		return nil, errors.New("alumno no encontrado")
	}

	cats, err := s.categoriaRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	var siguiente *model.Categoria
	for i := range cats {
		if cats[i].Orden > alumno.Categoria.Orden {
			siguiente = &cats[i]
			break
		}
	}
	if siguiente == nil {
		return nil, errors.New("el alumno ya esta en la categoria maxima")
	}

	edad := alumno.Edad(time.Now())
	mult := s.prep.Multiplicador(edad)
	meses := int(math.Ceil(float64(siguiente.MesesPreparacion) * mult))

	return &dto.PreparacionResponse{
		AlumnoID:          alumno.ID.String(),
		CategoriaActual:   alumno.Categoria.Nombre,
		CategoriaObjetivo: siguiente.Nombre,
		Edad:              edad,
		MesesBase:         siguiente.MesesPreparacion,
		Multiplicador:     mult,
		MesesEstimados:    meses,
	}, nil
}

func evaluacionToResponse(e *model.Evaluacion) *dto.EvaluacionResponse {
	return &dto.EvaluacionResponse{
		ID:                  e.ID.String(),
		AlumnoID:            e.AlumnoID.String(),
		Alumno:              e.Alumno.Nombre,
		CategoriaActualID:   e.CategoriaActualID.String(),
		CategoriaObjetivoID: e.CategoriaObjetivoID.String(),
		CategoriaObjetivo:   e.CategoriaObjetivo.Nombre,
		Fecha:               e.Fecha.Format("2006-01-02"),
		Resultado:           e.Resultado,
		Puntaje:             e.Puntaje,
		Observaciones:       e.Observaciones,
	}
}

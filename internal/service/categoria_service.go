package service

import (
	"context"
	"errors"

	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/dto"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/model"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/repository"

	"github.com/google/uuid"
)

type CategoriaService interface {
	Crear(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error)
	Listar(ctx context.Context) ([]dto.CategoriaResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaRequest) (*dto.CategoriaResponse, error)
	Desactivar(ctx context.Context, id uuid.UUID) error
}

type categoriaService struct {
	repo repository.CategoriaRepository
}

func NewCategoriaService(repo repository.CategoriaRepository) CategoriaService {
	return &categoriaService{repo: repo}
}

func (s *categoriaService) Crear(ctx context.Context, req dto.CrearCategoriaRequest) (*dto.CategoriaResponse, error) {
	meses := req.MesesPreparacion
	if meses == 0 {
		meses = 6
	}
	c := &model.Categoria{
		Nombre:           req.Nombre,
		Cinturon:         req.Cinturon,
		Orden:            req.Orden,
		EdadMinima:       req.EdadMinima,
		EdadMaxima:       req.EdadMaxima,
		CuotaMensual:     req.CuotaMensual,
		MesesPreparacion: meses,
		Activa:           true,
	}
	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return categoriaToResponse(c), nil
}

func (s *categoriaService) Listar(ctx context.Context) ([]dto.CategoriaResponse, error) {
	cats, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.CategoriaResponse, len(cats))
	for i := range cats {
		resp[i] = *categoriaToResponse(&cats[i])
	}
	return resp, nil
}

func (s *categoriaService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarCategoriaRequest) (*dto.CategoriaResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("categoria no encontrada")
	}
	if req.Nombre != "" {
		c.Nombre = req.Nombre
	}
	if req.Cinturon != "" {
		c.Cinturon = req.Cinturon
	}
	if req.Orden != nil {
		c.Orden = *req.Orden
	}
	if req.EdadMinima != nil {
		c.EdadMinima = *req.EdadMinima
	}
	if req.EdadMaxima != nil {
		c.EdadMaxima = req.EdadMaxima
	}
	if req.CuotaMensual != nil {
		c.CuotaMensual = *req.CuotaMensual
	}
	if req.MesesPreparacion != nil {
		c.MesesPreparacion = *req.MesesPreparacion
	}
	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return categoriaToResponse(c), nil
}

func (s *categoriaService) Desactivar(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func categoriaToResponse(c *model.Categoria) *dto.CategoriaResponse {
	return &dto.CategoriaResponse{
		ID:               c.ID.String(),
		Nombre:           c.Nombre,
		Cinturon:         c.Cinturon,
		Orden:            c.Orden,
		EdadMinima:       c.EdadMinima,
		EdadMaxima:       c.EdadMaxima,
		CuotaMensual:     c.CuotaMensual,
		MesesPreparacion: c.MesesPreparacion,
		Activa:           c.Activa,
	}
}

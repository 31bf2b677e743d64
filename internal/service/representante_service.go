package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/dto"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/model"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/repository"

	"github.com/google/uuid"
)

type RepresentanteService interface {
	Crear(ctx context.Context, req dto.CrearRepresentanteRequest) (*dto.RepresentanteResponse, error)
	ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.RepresentanteResponse, error)
	Listar(ctx context.Context) ([]dto.RepresentanteResponse, error)
	Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarRepresentanteRequest) (*dto.RepresentanteResponse, error)
	Eliminar(ctx context.Context, id uuid.UUID) error
}

type representanteService struct {
	repo repository.RepresentanteRepository
}

func NewRepresentanteService(repo repository.RepresentanteRepository) RepresentanteService {
	return &representanteService{repo: repo}
}

func (s *representanteService) Crear(ctx context.Context, req dto.CrearRepresentanteRequest) (*dto.RepresentanteResponse, error) {
	if _, err := s.repo.FindByCedula(ctx, req.Cedula); err == nil {
		return nil, fmt.Errorf("ya existe un representante con cedula %s", req.Cedula)
	}
	rep := &model.Representante{
		Nombre:     req.Nombre,
		Cedula:     req.Cedula,
		Telefono:   req.Telefono,
		Email:      req.Email,
		Direccion:  req.Direccion,
		Parentesco: req.Parentesco,
	}
	if err := s.repo.Create(ctx, rep); err != nil {
		return nil, err
	}
	return representanteToResponse(rep), nil
}

func (s *representanteService) ObtenerPorID(ctx context.Context, id uuid.UUID) (*dto.RepresentanteResponse, error) {
	rep, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("representante no encontrado")
	}
	return representanteToResponse(rep), nil
}

func (s *representanteService) Listar(ctx context.Context) ([]dto.RepresentanteResponse, error) {
	reps, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.RepresentanteResponse, len(reps))
	for i := range reps {
		resp[i] = *representanteToResponse(&reps[i])
	}
	return resp, nil
}

func (s *representanteService) Actualizar(ctx context.Context, id uuid.UUID, req dto.ActualizarRepresentanteRequest) (*dto.RepresentanteResponse, error) {
	rep, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("representante no encontrado")
	}
	if req.Nombre != "" {
		rep.Nombre = req.Nombre
	}
	if req.Telefono != "" {
		rep.Telefono = req.Telefono
	}
	if req.Email != nil {
		rep.Email = req.Email
	}
	if req.Direccion != "" {
		rep.Direccion = req.Direccion
	}
	if req.Parentesco != "" {
		rep.Parentesco = req.Parentesco
	}
	if err := s.repo.Update(ctx, rep); err != nil {
		return nil, err
	}
	return representanteToResponse(rep), nil
}

func (s *representanteService) Eliminar(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func representanteToResponse(r *model.Representante) *dto.RepresentanteResponse {
	return &dto.RepresentanteResponse{
		ID:         r.ID.String(),
		Nombre:     r.Nombre,
		Cedula:     r.Cedula,
		Telefono:   r.Telefono,
		Email:      r.Email,
		Direccion:  r.Direccion,
		Parentesco: r.Parentesco,
	}
}

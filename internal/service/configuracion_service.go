package service

import (
	"context"
	"errors"

	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/dto"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/model"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/repository"

	"gorm.io/gorm"
)

type ConfiguracionService interface {
	Listar(ctx context.Context) ([]dto.ConfiguracionResponse, error)
	Obtener(ctx context.Context, clave string) (*dto.ConfiguracionResponse, error)
	Actualizar(ctx context.Context, req dto.ActualizarConfiguracionRequest) (*dto.ConfiguracionResponse, error)
}

type configuracionService struct {
	repo repository.ConfiguracionRepository
}

func NewConfiguracionService(repo repository.ConfiguracionRepository) ConfiguracionService {
	return &configuracionService{repo: repo}
}

func (s *configuracionService) Listar(ctx context.Context) ([]dto.ConfiguracionResponse, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ConfiguracionResponse, len(items))
	for i, c := range items {
		resp[i] = dto.ConfiguracionResponse{Clave: c.Clave, Valor: c.Valor, Descripcion: c.Descripcion}
	}
	return resp, nil
}

func (s *configuracionService) Obtener(ctx context.Context, clave string) (*dto.ConfiguracionResponse, error) {
	c, err := s.repo.FindByClave(ctx, clave)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("configuracion no encontrada")
		}
		return nil, err
	}
	return &dto.ConfiguracionResponse{Clave: c.Clave, Valor: c.Valor, Descripcion: c.Descripcion}, nil
}

func (s *configuracionService) Actualizar(ctx context.Context, req dto.ActualizarConfiguracionRequest) (*dto.ConfiguracionResponse, error) {
	c := &model.Configuracion{
		Clave:       req.Clave,
		Valor:       req.Valor,
		Descripcion: req.Descripcion,
	}
	if err := s.repo.Upsert(ctx, c); err != nil {
		return nil, err
	}
	return &dto.ConfiguracionResponse{Clave: c.Clave, Valor: c.Valor, Descripcion: c.Descripcion}, nil
}

package repository

import (
	"context"

	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type RepresentanteRepository interface {
	Create(ctx context.Context, rep *model.Representante) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Representante, error)
	FindByCedula(ctx context.Context, cedula string) (*model.Representante, error)
	List(ctx context.Context) ([]model.Representante, error)
	Update(ctx context.Context, rep *model.Representante) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type representanteRepo struct{ db *gorm.DB }

func NewRepresentanteRepository(db *gorm.DB) RepresentanteRepository {
	return &representanteRepo{db: db}
}

func (r *representanteRepo) Create(ctx context.Context, rep *model.Representante) error {
	return r.db.WithContext(ctx).Create(rep).Error
}

func (r *representanteRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Representante, error) {
	var rep model.Representante
	err := r.db.WithContext(ctx).First(&rep, id).Error
	return &rep, err
}

func (r *representanteRepo) FindByCedula(ctx context.Context, cedula string) (*model.Representante, error) {
	var rep model.Representante
	err := r.db.WithContext(ctx).Where("cedula = ?", cedula).First(&rep).Error
	return &rep, err
}

func (r *representanteRepo) List(ctx context.Context) ([]model.Representante, error) {
	var reps []model.Representante
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&reps).Error
	return reps, err
}

func (r *representanteRepo) Update(ctx context.Context, rep *model.Representante) error {
	return r.db.WithContext(ctx).Save(rep).Error
}

func (r *representanteRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Representante{}, id).Error
}

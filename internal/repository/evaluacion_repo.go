package repository

import (
	"context"

	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EvaluacionRepository interface {
	Create(ctx context.Context, e *model.Evaluacion) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Evaluacion, error)
	ListByAlumno(ctx context.Context, alumnoID uuid.UUID) ([]model.Evaluacion, error)
	ListPendientes(ctx context.Context) ([]model.Evaluacion, error)
	Update(ctx context.Context, e *model.Evaluacion) error
}

type evaluacionRepo struct{ db *gorm.DB }

func NewEvaluacionRepository(db *gorm.DB) EvaluacionRepository { return &evaluacionRepo{db: db} }

func (r *evaluacionRepo) Create(ctx context.Context, e *model.Evaluacion) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *evaluacionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Evaluacion, error) {
	var e model.Evaluacion
	err := r.db.WithContext(ctx).Preload("Alumno").Preload("CategoriaObjetivo").First(&e, id).Error
	return &e, err
}

func (r *evaluacionRepo) ListByAlumno(ctx context.Context, alumnoID uuid.UUID) ([]model.Evaluacion, error) {
	var evals []model.Evaluacion
	err := r.db.WithContext(ctx).
		Preload("CategoriaObjetivo").
		Where("alumno_id = ?", alumnoID).
		Order("fecha DESC").
		Find(&evals).Error
	return evals, err
}

func (r *evaluacionRepo) ListPendientes(ctx context.Context) ([]model.Evaluacion, error) {
	var evals []model.Evaluacion
	err := r.db.WithContext(ctx).
		Preload("Alumno").Preload("CategoriaObjetivo").
		Where("resultado = 'pendiente'").
		Order("fecha ASC").
		Find(&evals).Error
	return evals, err
}

func (r *evaluacionRepo) Update(ctx context.Context, e *model.Evaluacion) error {
	return r.db.WithContext(ctx).Save(e).Error
}

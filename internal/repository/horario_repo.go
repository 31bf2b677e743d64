package repository

import (
	"context"

	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HorarioRepository interface {
	Create(ctx context.Context, h *model.Horario) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Horario, error)
	List(ctx context.Context) ([]model.Horario, error)
	ListByCategoria(ctx context.Context, categoriaID uuid.UUID) ([]model.Horario, error)
	Update(ctx context.Context, h *model.Horario) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
}

type horarioRepo struct{ db *gorm.DB }

func NewHorarioRepository(db *gorm.DB) HorarioRepository { return &horarioRepo{db: db} }

func (r *horarioRepo) Create(ctx context.Context, h *model.Horario) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *horarioRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Horario, error) {
	var h model.Horario
	err := r.db.WithContext(ctx).Preload("Categoria").Preload("Instructor").First(&h, id).Error
	return &h, err
}

func (r *horarioRepo) List(ctx context.Context) ([]model.Horario, error) {
	var horarios []model.Horario
	err := r.db.WithContext(ctx).
		Preload("Categoria").Preload("Instructor").
		Where("activo = true").
		Order("dia_semana ASC, hora_inicio ASC").
		Find(&horarios).Error
	return horarios, err
}

func (r *horarioRepo) ListByCategoria(ctx context.Context, categoriaID uuid.UUID) ([]model.Horario, error) {
	var horarios []model.Horario
	err := r.db.WithContext(ctx).
		Preload("Categoria").
		Where("categoria_id = ? AND activo = true", categoriaID).
		Order("dia_semana ASC, hora_inicio ASC").
		Find(&horarios).Error
	return horarios, err
}

func (r *horarioRepo) Update(ctx context.Context, h *model.Horario) error {
	return r.db.WithContext(ctx).Save(h).Error
}

func (r *horarioRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Horario{}).Where("id = ?", id).Update("activo", false).Error
}

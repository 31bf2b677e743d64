package repository

import (
	"context"

	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/dto"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AlumnoRepository interface {
	Create(ctx context.Context, a *model.Alumno) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Alumno, error)
	FindByCedula(ctx context.Context, cedula string) (*model.Alumno, error)
	FindByUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.Alumno, error)
	List(ctx context.Context, filter dto.AlumnoFilter) ([]model.Alumno, int64, error)
	Update(ctx context.Context, a *model.Alumno) error
	SoftDelete(ctx context.Context, id uuid.UUID) error
	Reactivar(ctx context.Context, id uuid.UUID) error
}

type alumnoRepo struct{ db *gorm.DB }

func NewAlumnoRepository(db *gorm.DB) AlumnoRepository { return &alumnoRepo{db: db} }

func (r *alumnoRepo) Create(ctx context.Context, a *model.Alumno) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *alumnoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Alumno, error) {
	var a model.Alumno
	err := r.db.WithContext(ctx).Preload("Categoria").Preload("Representante").First(&a, id).Error
	return &a, err
}

func (r *alumnoRepo) FindByCedula(ctx context.Context, cedula string) (*model.Alumno, error) {
	var a model.Alumno
	err := r.db.WithContext(ctx).Where("cedula = ?", cedula).First(&a).Error
	return &a, err
}

func (r *alumnoRepo) FindByUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.Alumno, error) {
	var a model.Alumno
	err := r.db.WithContext(ctx).Preload("Categoria").Where("usuario_id = ?", usuarioID).First(&a).Error
	return &a, err
}

func (r *alumnoRepo) List(ctx context.Context, filter dto.AlumnoFilter) ([]model.Alumno, int64, error) {
	var alumnos []model.Alumno
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Alumno{})
	if filter.Buscar != "" {
		like := "%" + filter.Buscar + "%"
		q = q.Where("nombre ILIKE ? OR cedula ILIKE ?", like, like)
	}
	if filter.CategoriaID != "" {
		q = q.Where("categoria_id = ?", filter.CategoriaID)
	}
	if filter.Activo != "all" {
		q = q.Where("activo = ?", filter.Activo == "true")
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Categoria").
		Order("nombre ASC").
		Offset(offset).Limit(filter.Limit).
		Find(&alumnos).Error
	return alumnos, total, err
}

func (r *alumnoRepo) Update(ctx context.Context, a *model.Alumno) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *alumnoRepo) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Alumno{}).Where("id = ?", id).Update("activo", false).Error
}

func (r *alumnoRepo) Reactivar(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&model.Alumno{}).Where("id = ?", id).Update("activo", true).Error
}

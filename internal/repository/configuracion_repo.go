package repository

import (
	"context"

	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ConfiguracionRepository interface {
	List(ctx context.Context) ([]model.Configuracion, error)
	FindByClave(ctx context.Context, clave string) (*model.Configuracion, error)
	Upsert(ctx context.Context, c *model.Configuracion) error
}

type configuracionRepo struct{ db *gorm.DB }

func NewConfiguracionRepository(db *gorm.DB) ConfiguracionRepository {
	return &configuracionRepo{db: db}
}

func (r *configuracionRepo) List(ctx context.Context) ([]model.Configuracion, error) {
	var items []model.Configuracion
	err := r.db.WithContext(ctx).Order("clave ASC").Find(&items).Error
	return items, err
}

func (r *configuracionRepo) FindByClave(ctx context.Context, clave string) (*model.Configuracion, error) {
	var c model.Configuracion
	err := r.db.WithContext(ctx).Where("clave = ?", clave).First(&c).Error
	return &c, err
}

func (r *configuracionRepo) Upsert(ctx context.Context, c *model.Configuracion) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "clave"}},
			DoUpdates: clause.AssignmentColumns([]string{"valor", "descripcion", "updated_at"}),
		}).
		Create(c).Error
}

package repository

import (
	"context"

	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BloqueoRepository persists per-user account lock state. The row is created
// lazily: FindByUsuario returns gorm.ErrRecordNotFound for users that never
// failed a login, and the service treats that as "not locked".
type BloqueoRepository interface {
	FindByUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.BloqueoCuenta, error)
	Create(ctx context.Context, b *model.BloqueoCuenta) error
	Update(ctx context.Context, b *model.BloqueoCuenta) error
}

type bloqueoRepo struct{ db *gorm.DB }

func NewBloqueoRepository(db *gorm.DB) BloqueoRepository { return &bloqueoRepo{db: db} }

func (r *bloqueoRepo) FindByUsuario(ctx context.Context, usuarioID uuid.UUID) (*model.BloqueoCuenta, error) {
	var b model.BloqueoCuenta
	err := r.db.WithContext(ctx).Where("usuario_id = ?", usuarioID).First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bloqueoRepo) Create(ctx context.Context, b *model.BloqueoCuenta) error {
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *bloqueoRepo) Update(ctx context.Context, b *model.BloqueoCuenta) error {
	return r.db.WithContext(ctx).Save(b).Error
}

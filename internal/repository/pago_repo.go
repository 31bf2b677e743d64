package repository

import (
	"context"

	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/dto"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PagoRepository interface {
	Create(ctx context.Context, p *model.Pago) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Pago, error)
	// FindByPeriodo returns the payment for (alumno, mes, anio) or
	// gorm.ErrRecordNotFound. At most one row can exist per period
	// (idx_pagos_periodo).
	FindByPeriodo(ctx context.Context, alumnoID uuid.UUID, mes, anio int) (*model.Pago, error)
	ListByAlumno(ctx context.Context, alumnoID uuid.UUID) ([]model.Pago, error)
	List(ctx context.Context, filter dto.PagoFilter) ([]model.Pago, int64, error)
	UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error
}

type pagoRepo struct{ db *gorm.DB }

func NewPagoRepository(db *gorm.DB) PagoRepository { return &pagoRepo{db: db} }

func (r *pagoRepo) Create(ctx context.Context, p *model.Pago) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *pagoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Pago, error) {
	var p model.Pago
	err := r.db.WithContext(ctx).Preload("Alumno").First(&p, id).Error
	return &p, err
}

func (r *pagoRepo) FindByPeriodo(ctx context.Context, alumnoID uuid.UUID, mes, anio int) (*model.Pago, error) {
	var p model.Pago
	err := r.db.WithContext(ctx).
		Where("alumno_id = ? AND mes = ? AND anio = ?", alumnoID, mes, anio).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *pagoRepo) ListByAlumno(ctx context.Context, alumnoID uuid.UUID) ([]model.Pago, error) {
	var pagos []model.Pago
	err := r.db.WithContext(ctx).
		Where("alumno_id = ?", alumnoID).
		Order("anio ASC, mes ASC").
		Find(&pagos).Error
	return pagos, err
}

func (r *pagoRepo) List(ctx context.Context, filter dto.PagoFilter) ([]model.Pago, int64, error) {
	var pagos []model.Pago
	var total int64
	offset := (filter.Page - 1) * filter.Limit

	q := r.db.WithContext(ctx).Model(&model.Pago{})
	if filter.AlumnoID != "" {
		q = q.Where("alumno_id = ?", filter.AlumnoID)
	}
	if filter.Mes != 0 {
		q = q.Where("mes = ?", filter.Mes)
	}
	if filter.Anio != 0 {
		q = q.Where("anio = ?", filter.Anio)
	}
	if filter.Estado != "" {
		q = q.Where("estado = ?", filter.Estado)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := q.Preload("Alumno").
		Order("anio DESC, mes DESC, created_at DESC").
		Offset(offset).Limit(filter.Limit).
		Find(&pagos).Error
	return pagos, total, err
}

func (r *pagoRepo) UpdateEstado(ctx context.Context, id uuid.UUID, estado string) error {
	return r.db.WithContext(ctx).Model(&model.Pago{}).Where("id = ?", id).Update("estado", estado).Error
}

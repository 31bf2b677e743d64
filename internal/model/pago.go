package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Pago is one billing-period charge for one student. The composite unique
// index on (alumno_id, mes, anio) enforces the one-payment-per-period
// invariant at the database level; the service layer performs the same check
// first to return a friendly error before hitting the constraint.
type Pago struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AlumnoID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_pagos_periodo"`
	Alumno   Alumno    `gorm:"foreignKey:AlumnoID"`
	// Periodo facturado: Mes 1–12, Anio de 4 digitos.
	Mes       int             `gorm:"not null;uniqueIndex:idx_pagos_periodo"`
	Anio      int             `gorm:"not null;uniqueIndex:idx_pagos_periodo"`
	Monto     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Metodo    string          `gorm:"type:varchar(20);not null"` // efectivo | transferencia | tarjeta
	FechaPago time.Time       `gorm:"not null"`
	// MesCorrespondiente is the free-text label submitted by the client
	// ("Abril 2025", "advance April"…); kept verbatim for auditing.
	MesCorrespondiente string
	Adelantado         bool   `gorm:"not null;default:false"`
	Estado             string `gorm:"type:varchar(15);not null;default:'pendiente'"` // pendiente | confirmado
	Referencia         string
	Observaciones      string
	RegistradoPorID    uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

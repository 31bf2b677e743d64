package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Categoria is a belt rank / student category. Orden defines the progression
// (0 = white belt). CuotaMensual is the monthly fee charged to students in
// this category; MesesPreparacion is the base exam-preparation time before
// the age multiplier is applied.
type Categoria struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre           string          `gorm:"uniqueIndex;not null"`
	Cinturon         string          `gorm:"type:varchar(30);not null"`
	Orden            int             `gorm:"not null"`
	EdadMinima       int             `gorm:"not null;default:0"`
	EdadMaxima       *int
	CuotaMensual     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	MesesPreparacion int             `gorm:"not null;default:6"`
	Activa           bool            `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

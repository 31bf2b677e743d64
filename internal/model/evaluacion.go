package model

import (
	"time"

	"github.com/google/uuid"
)

// Evaluacion is a belt exam record: the student attempts to advance from
// CategoriaActual to CategoriaObjetivo.
type Evaluacion struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	AlumnoID            uuid.UUID `gorm:"type:uuid;not null"`
	Alumno              Alumno    `gorm:"foreignKey:AlumnoID"`
	CategoriaActualID   uuid.UUID `gorm:"type:uuid;not null"`
	CategoriaObjetivoID uuid.UUID `gorm:"type:uuid;not null"`
	CategoriaObjetivo   Categoria `gorm:"foreignKey:CategoriaObjetivoID"`
	Fecha               time.Time `gorm:"not null"`
	Resultado           string    `gorm:"type:varchar(15);not null;default:'pendiente'"` // pendiente | aprobado | reprobado
	Puntaje             *int
	Observaciones       string
	EvaluadorID         uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// Alumno is an enrolled student. UsuarioID links the student to a system
// account with rol "usuario" so they can consult and register their own
// payments; nil for students managed entirely by the front desk.
type Alumno struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre           string         `gorm:"not null"`
	Cedula           string         `gorm:"uniqueIndex;not null"`
	FechaNacimiento  time.Time      `gorm:"not null"`
	Telefono         string
	Email            *string
	CategoriaID      uuid.UUID      `gorm:"type:uuid;not null"`
	Categoria        Categoria      `gorm:"foreignKey:CategoriaID"`
	RepresentanteID  *uuid.UUID     `gorm:"type:uuid"`
	Representante    *Representante `gorm:"foreignKey:RepresentanteID"`
	UsuarioID        *uuid.UUID     `gorm:"type:uuid;uniqueIndex"`
	FechaInscripcion time.Time      `gorm:"not null"`
	Activo           bool           `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Edad returns the student's age in full years at the given reference time.
func (a *Alumno) Edad(ref time.Time) int {
	years := ref.Year() - a.FechaNacimiento.Year()
	if ref.YearDay() < a.FechaNacimiento.YearDay() {
		years--
	}
	return years
}

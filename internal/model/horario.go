package model

import (
	"time"

	"github.com/google/uuid"
)

// Horario is a weekly class slot for a category.
// DiaSemana follows time.Weekday: 0 = domingo … 6 = sabado.
type Horario struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	CategoriaID  uuid.UUID `gorm:"type:uuid;not null"`
	Categoria    Categoria `gorm:"foreignKey:CategoriaID"`
	DiaSemana    int       `gorm:"not null"`
	HoraInicio   string    `gorm:"type:varchar(5);not null"` // "HH:MM"
	HoraFin      string    `gorm:"type:varchar(5);not null"`
	InstructorID *uuid.UUID `gorm:"type:uuid"`
	Instructor   *Usuario   `gorm:"foreignKey:InstructorID"`
	Salon        string     `gorm:"type:varchar(50)"`
	CupoMaximo   int        `gorm:"not null;default:30"`
	Activo       bool       `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

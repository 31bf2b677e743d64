package model

import (
	"time"

	"github.com/google/uuid"
)

// Representante is the legal guardian of a minor student.
type Representante struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Nombre     string    `gorm:"not null"`
	Cedula     string    `gorm:"uniqueIndex;not null"`
	Telefono   string    `gorm:"not null"`
	Email      *string
	Direccion  string
	Parentesco string `gorm:"type:varchar(30)"` // padre | madre | tutor | otro
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

package model

import (
	"time"

	"github.com/google/uuid"
)

// Configuracion stores system settings as key-value pairs editable by the
// administrator from the SPA (e.g. dojo name, inscription fee, notice text).
type Configuracion struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Clave       string    `gorm:"uniqueIndex;not null"`
	Valor       string    `gorm:"not null"`
	Descripcion string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

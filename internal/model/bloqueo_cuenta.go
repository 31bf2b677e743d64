package model

import (
	"time"

	"github.com/google/uuid"
)

// BloqueoCuenta tracks failed login attempts and the unlock-code state for a
// single Usuario (one-to-one). The row is created lazily on the first failed
// attempt: a user that never failed a login has no row and is never locked.
//
// Invariant: Bloqueada implies IntentosFallidos reached the configured
// threshold at the moment of locking. A successful login or a successful
// unlock resets the counter and clears every lock field.
type BloqueoCuenta struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UsuarioID        uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	Usuario          Usuario   `gorm:"foreignKey:UsuarioID"`
	IntentosFallidos int       `gorm:"not null;default:0"`
	Bloqueada        bool      `gorm:"not null;default:false"`
	FechaBloqueo     *time.Time
	// Codigo de 6 digitos enviado por correo; valido hasta CodigoExpira y
	// a lo sumo una vez (CodigoUsado).
	CodigoDesbloqueo *string `gorm:"type:varchar(6)"`
	CodigoExpira     *time.Time
	CodigoUsado      bool `gorm:"not null;default:false"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

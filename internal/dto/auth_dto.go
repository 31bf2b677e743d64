package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type LoginRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=4"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// VerificarCodigoRequest is submitted from the unlock screen of the SPA.
type VerificarCodigoRequest struct {
	Username string `json:"username" validate:"required,min=1"`
	Codigo   string `json:"codigo"   validate:"required,len=6,numeric"`
}

type ReenviarCodigoRequest struct {
	Username string `json:"username" validate:"required,min=1"`
}

type CrearUsuarioRequest struct {
	Username string  `json:"username" validate:"required,min=1,max=150"`
	Nombre   string  `json:"nombre"   validate:"required,min=2,max=100"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Rol      string  `json:"rol"      validate:"required,oneof=administrador instructor recepcionista usuario"`
	Idioma   string  `json:"idioma"   validate:"omitempty,oneof=es en"`
}

type ActualizarUsuarioRequest struct {
	Nombre   string  `json:"nombre"   validate:"omitempty,min=2,max=100"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Rol      string  `json:"rol"      validate:"omitempty,oneof=administrador instructor recepcionista usuario"`
	Idioma   string  `json:"idioma"   validate:"omitempty,oneof=es en"`
	Password string  `json:"password" validate:"omitempty,min=8"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type UsuarioResponse struct {
	ID              string  `json:"id"`
	Username        string  `json:"username"`
	Nombre          string  `json:"nombre"`
	Email           *string `json:"email"`
	Rol             string  `json:"rol"`
	Idioma          string  `json:"idioma"`
	Activo          bool    `json:"activo"`
	EmailVerificado bool    `json:"email_verificado"`
}

type LoginResponse struct {
	AccessToken  string          `json:"access_token"`
	RefreshToken string          `json:"refresh_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"` // seconds
	User         UsuarioResponse `json:"user"`
}

// LoginFailedResponse is returned on 401/423 so the SPA can warn the user
// before lockout and switch to the unlock-code entry flow when locked.
type LoginFailedResponse struct {
	Detail            string  `json:"detail"`
	Bloqueada         bool    `json:"bloqueada"`
	IntentosRestantes *int    `json:"intentos_restantes,omitempty"`
	FechaBloqueo      *string `json:"fecha_bloqueo,omitempty"`
}

type VerificarCodigoResponse struct {
	Valido  bool   `json:"valido"`
	Mensaje string `json:"mensaje"`
}

type BloqueoEstadoResponse struct {
	Bloqueada    bool    `json:"bloqueada"`
	FechaBloqueo *string `json:"fecha_bloqueo"`
	Intentos     int     `json:"intentos_fallidos"`
}

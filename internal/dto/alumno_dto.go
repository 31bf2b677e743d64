package dto

// ─── Request DTOs ────────────────────────────────────────────────────────────

type CrearAlumnoRequest struct {
	Nombre          string  `json:"nombre"           validate:"required,min=2,max=100"`
	Cedula          string  `json:"cedula"           validate:"required,min=5,max=20"`
	FechaNacimiento string  `json:"fecha_nacimiento" validate:"required,datetime=2006-01-02"`
	Telefono        string  `json:"telefono"         validate:"omitempty,max=20"`
	Email           *string `json:"email"            validate:"omitempty,email"`
	CategoriaID     string  `json:"categoria_id"     validate:"required,uuid"`
	RepresentanteID *string `json:"representante_id" validate:"omitempty,uuid"`
	// UsuarioID links the student to a self-service account (rol "usuario")
	UsuarioID *string `json:"usuario_id" validate:"omitempty,uuid"`
}

type ActualizarAlumnoRequest struct {
	Nombre          string  `json:"nombre"           validate:"omitempty,min=2,max=100"`
	Telefono        string  `json:"telefono"         validate:"omitempty,max=20"`
	Email           *string `json:"email"            validate:"omitempty,email"`
	CategoriaID     *string `json:"categoria_id"     validate:"omitempty,uuid"`
	RepresentanteID *string `json:"representante_id" validate:"omitempty,uuid"`
	UsuarioID       *string `json:"usuario_id"       validate:"omitempty,uuid"`
}

// AlumnoFilter is bound from the query string of GET /v1/alumnos.
type AlumnoFilter struct {
	Buscar      string `form:"buscar"`       // matches nombre or cedula
	CategoriaID string `form:"categoria_id"` // optional
	Activo      string `form:"activo,default=true"`
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type AlumnoResponse struct {
	ID               string  `json:"id"`
	Nombre           string  `json:"nombre"`
	Cedula           string  `json:"cedula"`
	FechaNacimiento  string  `json:"fecha_nacimiento"`
	Edad             int     `json:"edad"`
	Telefono         string  `json:"telefono"`
	Email            *string `json:"email"`
	CategoriaID      string  `json:"categoria_id"`
	Categoria        string  `json:"categoria"`
	Cinturon         string  `json:"cinturon"`
	RepresentanteID  *string `json:"representante_id"`
	UsuarioID        *string `json:"usuario_id"`
	FechaInscripcion string  `json:"fecha_inscripcion"`
	Activo           bool    `json:"activo"`
}

type AlumnoListResponse struct {
	Data  []AlumnoResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

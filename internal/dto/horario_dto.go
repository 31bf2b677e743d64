package dto

type CrearHorarioRequest struct {
	CategoriaID  string  `json:"categoria_id"  validate:"required,uuid"`
	DiaSemana    int     `json:"dia_semana"    validate:"min=0,max=6"`
	HoraInicio   string  `json:"hora_inicio"   validate:"required,datetime=15:04"`
	HoraFin      string  `json:"hora_fin"      validate:"required,datetime=15:04"`
	InstructorID *string `json:"instructor_id" validate:"omitempty,uuid"`
	Salon        string  `json:"salon"         validate:"omitempty,max=50"`
	CupoMaximo   int     `json:"cupo_maximo"   validate:"omitempty,min=1,max=200"`
}

type ActualizarHorarioRequest struct {
	DiaSemana    *int    `json:"dia_semana"    validate:"omitempty,min=0,max=6"`
	HoraInicio   string  `json:"hora_inicio"   validate:"omitempty,datetime=15:04"`
	HoraFin      string  `json:"hora_fin"      validate:"omitempty,datetime=15:04"`
	InstructorID *string `json:"instructor_id" validate:"omitempty,uuid"`
	Salon        string  `json:"salon"         validate:"omitempty,max=50"`
	CupoMaximo   *int    `json:"cupo_maximo"   validate:"omitempty,min=1,max=200"`
}

type HorarioResponse struct {
	ID           string  `json:"id"`
	CategoriaID  string  `json:"categoria_id"`
	Categoria    string  `json:"categoria"`
	Cinturon     string  `json:"cinturon"`
	DiaSemana    int     `json:"dia_semana"`
	HoraInicio   string  `json:"hora_inicio"`
	HoraFin      string  `json:"hora_fin"`
	InstructorID *string `json:"instructor_id"`
	Instructor   string  `json:"instructor,omitempty"`
	Salon        string  `json:"salon"`
	CupoMaximo   int     `json:"cupo_maximo"`
}

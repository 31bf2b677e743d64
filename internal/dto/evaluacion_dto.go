package dto

type CrearEvaluacionRequest struct {
	AlumnoID            string `json:"alumno_id"             validate:"required,uuid"`
	CategoriaObjetivoID string `json:"categoria_objetivo_id" validate:"required,uuid"`
	Fecha               string `json:"fecha"                 validate:"required,datetime=2006-01-02"`
	Observaciones       string `json:"observaciones"         validate:"omitempty,max=500"`
}

type RegistrarResultadoRequest struct {
	Resultado     string `json:"resultado"     validate:"required,oneof=aprobado reprobado"`
	Puntaje       *int   `json:"puntaje"       validate:"omitempty,min=0,max=100"`
	Observaciones string `json:"observaciones" validate:"omitempty,max=500"`
}

type EvaluacionResponse struct {
	ID                  string `json:"id"`
	AlumnoID            string `json:"alumno_id"`
	Alumno              string `json:"alumno,omitempty"`
	CategoriaActualID   string `json:"categoria_actual_id"`
	CategoriaObjetivoID string `json:"categoria_objetivo_id"`
	CategoriaObjetivo   string `json:"categoria_objetivo,omitempty"`
	Fecha               string `json:"fecha"`
	Resultado           string `json:"resultado"`
	Puntaje             *int   `json:"puntaje"`
	Observaciones       string `json:"observaciones"`
}

// PreparacionResponse is the belt/age exam-preparation estimate for a student.
type PreparacionResponse struct {
	AlumnoID          string  `json:"alumno_id"`
	CategoriaActual   string  `json:"categoria_actual"`
	CategoriaObjetivo string  `json:"categoria_objetivo"`
	Edad              int     `json:"edad"`
	MesesBase         int     `json:"meses_base"`
	Multiplicador     float64 `json:"multiplicador"`
	MesesEstimados    int     `json:"meses_estimados"`
}

package dto

import "github.com/shopspring/decimal"

type CrearCategoriaRequest struct {
	Nombre           string          `json:"nombre"            validate:"required,min=2,max=60"`
	Cinturon         string          `json:"cinturon"          validate:"required,min=2,max=30"`
	Orden            int             `json:"orden"             validate:"min=0"`
	EdadMinima       int             `json:"edad_minima"       validate:"min=0"`
	EdadMaxima       *int            `json:"edad_maxima"       validate:"omitempty,min=1"`
	CuotaMensual     decimal.Decimal `json:"cuota_mensual"     validate:"required"`
	MesesPreparacion int             `json:"meses_preparacion" validate:"min=1,max=60"`
}

type ActualizarCategoriaRequest struct {
	Nombre           string           `json:"nombre"            validate:"omitempty,min=2,max=60"`
	Cinturon         string           `json:"cinturon"          validate:"omitempty,min=2,max=30"`
	Orden            *int             `json:"orden"             validate:"omitempty,min=0"`
	EdadMinima       *int             `json:"edad_minima"       validate:"omitempty,min=0"`
	EdadMaxima       *int             `json:"edad_maxima"       validate:"omitempty,min=1"`
	CuotaMensual     *decimal.Decimal `json:"cuota_mensual"`
	MesesPreparacion *int             `json:"meses_preparacion" validate:"omitempty,min=1,max=60"`
}

type CategoriaResponse struct {
	ID               string          `json:"id"`
	Nombre           string          `json:"nombre"`
	Cinturon         string          `json:"cinturon"`
	Orden            int             `json:"orden"`
	EdadMinima       int             `json:"edad_minima"`
	EdadMaxima       *int            `json:"edad_maxima"`
	CuotaMensual     decimal.Decimal `json:"cuota_mensual"`
	MesesPreparacion int             `json:"meses_preparacion"`
	Activa           bool            `json:"activa"`
}

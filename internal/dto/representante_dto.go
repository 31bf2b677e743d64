package dto

type CrearRepresentanteRequest struct {
	Nombre     string  `json:"nombre"     validate:"required,min=2,max=100"`
	Cedula     string  `json:"cedula"     validate:"required,min=5,max=20"`
	Telefono   string  `json:"telefono"   validate:"required,max=20"`
	Email      *string `json:"email"      validate:"omitempty,email"`
	Direccion  string  `json:"direccion"  validate:"omitempty,max=200"`
	Parentesco string  `json:"parentesco" validate:"required,oneof=padre madre tutor otro"`
}

type ActualizarRepresentanteRequest struct {
	Nombre     string  `json:"nombre"     validate:"omitempty,min=2,max=100"`
	Telefono   string  `json:"telefono"   validate:"omitempty,max=20"`
	Email      *string `json:"email"      validate:"omitempty,email"`
	Direccion  string  `json:"direccion"  validate:"omitempty,max=200"`
	Parentesco string  `json:"parentesco" validate:"omitempty,oneof=padre madre tutor otro"`
}

type RepresentanteResponse struct {
	ID         string  `json:"id"`
	Nombre     string  `json:"nombre"`
	Cedula     string  `json:"cedula"`
	Telefono   string  `json:"telefono"`
	Email      *string `json:"email"`
	Direccion  string  `json:"direccion"`
	Parentesco string  `json:"parentesco"`
}

package dto

type ActualizarConfiguracionRequest struct {
	Clave       string `json:"clave"       validate:"required,min=1,max=60"`
	Valor       string `json:"valor"       validate:"required,max=500"`
	Descripcion string `json:"descripcion" validate:"omitempty,max=200"`
}

type ConfiguracionResponse struct {
	Clave       string `json:"clave"`
	Valor       string `json:"valor"`
	Descripcion string `json:"descripcion"`
}

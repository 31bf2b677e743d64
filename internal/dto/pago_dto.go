package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

// RegistrarPagoRequest registers one monthly payment. AlumnoID is required
// unless the caller's rol is "usuario", in which case it is resolved from the
// authenticated account. MesCorrespondiente is a free-text label that may
// name a month (Spanish or English) and optionally a 4-digit year; the
// period resolver decides which billing month/year the payment lands on.
type RegistrarPagoRequest struct {
	AlumnoID           *string         `json:"alumno_id"           validate:"omitempty,uuid"`
	Monto              decimal.Decimal `json:"monto"               validate:"required"`
	Metodo             string          `json:"metodo"              validate:"required,oneof=efectivo transferencia tarjeta"`
	FechaPago          string          `json:"fecha_pago"          validate:"omitempty,datetime=2006-01-02"`
	MesCorrespondiente string          `json:"mes_correspondiente" validate:"omitempty,max=60"`
	Referencia         string          `json:"referencia"          validate:"omitempty,max=100"`
	Observaciones      string          `json:"observaciones"       validate:"omitempty,max=500"`
	// Estado may be provided by the front desk when registering an already
	// confirmed cash payment; defaults to "pendiente".
	Estado string `json:"estado" validate:"omitempty,oneof=pendiente confirmado"`
}

// PagoFilter is bound from the query string of GET /v1/pagos.
type PagoFilter struct {
	AlumnoID string `form:"alumno_id" validate:"omitempty,uuid"`
	Mes      int    `form:"mes"       validate:"omitempty,min=1,max=12"`
	Anio     int    `form:"anio"      validate:"omitempty,min=2000,max=2100"`
	Estado   string `form:"estado"    validate:"omitempty,oneof=pendiente confirmado"`
	Page     int    `form:"page,default=1"   validate:"min=1"`
	Limit    int    `form:"limit,default=50" validate:"min=1,max=200"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type PagoResponse struct {
	ID                 string          `json:"id"`
	AlumnoID           string          `json:"alumno_id"`
	Alumno             string          `json:"alumno,omitempty"`
	Mes                int             `json:"mes"`
	Anio               int             `json:"anio"`
	Monto              decimal.Decimal `json:"monto"`
	Metodo             string          `json:"metodo"`
	FechaPago          string          `json:"fecha_pago"`
	MesCorrespondiente string          `json:"mes_correspondiente"`
	Adelantado         bool            `json:"adelantado"`
	Estado             string          `json:"estado"`
	Referencia         string          `json:"referencia"`
	Observaciones      string          `json:"observaciones"`
	CreatedAt          string          `json:"created_at"`
}

type PagoListResponse struct {
	Data  []PagoResponse `json:"data"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

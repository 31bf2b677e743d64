package service

// Business precondition failures are returned as typed errors so handlers can
// map them to 4xx responses with a stable machine code, while infrastructure
// errors (DB, SMTP) stay plain and surface as 500 through the error handler.

// Codes for the account unlock flow.
const (
	CodigoNoBloqueada = "NOT_LOCKED"
	CodigoYaUsado     = "CODE_ALREADY_USED"
	CodigoExpirado    = "CODE_EXPIRED"
	CodigoIncorrecto  = "CODE_MISMATCH"
)

// Codes for payment-period resolution.
const (
	CodigoAdelantoSinCuotaActual = "ADVANCE_PAYMENT_PRECONDITION_UNMET"
	CodigoAdelantoYaConfirmado   = "ADVANCE_ALREADY_CONFIRMED"
	CodigoAdelantoYaPendiente    = "ADVANCE_ALREADY_PENDING"
	CodigoPeriodoPagadoNormal    = "PERIOD_ALREADY_PAID_NORMALLY"
	CodigoPeriodoConPago         = "PERIOD_ALREADY_HAS_PAYMENT"
)

// ErrorNegocio is a user-caused precondition failure (4xx-equivalent).
type ErrorNegocio struct {
	Codigo  string
	Mensaje string
}

func (e *ErrorNegocio) Error() string { return e.Mensaje }

func errNegocio(codigo, mensaje string) *ErrorNegocio {
	return &ErrorNegocio{Codigo: codigo, Mensaje: mensaje}
}

package handler

import (
	"errors"
	"net/http"
	"reflect"

	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/apierror"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// negocioStatus maps business error codes to HTTP statuses. Duplicate-period
// and precondition failures are conflicts; unlock-code failures are plain 400s.
var negocioStatus = map[string]int{
	service.CodigoAdelantoSinCuotaActual: http.StatusConflict,
	service.CodigoAdelantoYaConfirmado:   http.StatusConflict,
	service.CodigoAdelantoYaPendiente:    http.StatusConflict,
	service.CodigoPeriodoPagadoNormal:    http.StatusConflict,
	service.CodigoPeriodoConPago:         http.StatusConflict,
}

// respondError writes the right envelope for a service error: business errors
// carry their machine code, anything else gets the fallback status with a
// plain message.
func respondError(c *gin.Context, err error, fallback int) {
	var en *service.ErrorNegocio
	if errors.As(err, &en) {
		status, ok := negocioStatus[en.Codigo]
		if !ok {
			status = http.StatusBadRequest
		}
		c.JSON(status, apierror.NewWithCode(en.Codigo, en.Mensaje))
		return
	}
	c.JSON(fallback, apierror.New(err.Error()))
}

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// bindQueryAndValidate binds query-string params and runs validator tags.
func bindQueryAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Parametros invalidos: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

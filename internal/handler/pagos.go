package handler

import (
	"net/http"

	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/apierror"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/dto"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/middleware"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type PagosHandler struct {
	svc       service.PagoService
	alumnoSvc service.AlumnoService
}

func NewPagosHandler(svc service.PagoService, alumnoSvc service.AlumnoService) *PagosHandler {
	return &PagosHandler{svc: svc, alumnoSvc: alumnoSvc}
}

// Registrar godoc
// @Summary Registro de pago de mensualidad
// @Description Resuelve el periodo facturado a partir de la etiqueta libre de mes
// @Description y aplica las reglas de pago adelantado y de periodo duplicado.
// @Tags pagos
// @Accept json
// @Produce json
// @Param body body dto.RegistrarPagoRequest true "Datos del pago"
// @Success 201 {object} dto.PagoResponse
// @Failure 409 {object} apierror.APIError
// @Router /v1/pagos [post]
func (h *PagosHandler) Registrar(c *gin.Context) {
	var req dto.RegistrarPagoRequest
	if !bindAndValidate(c, &req) {
		return
	}

	claims := middleware.GetClaims(c)
	registradoPor, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token invalido"))
		return
	}

	alumnoID, ok := h.resolverAlumno(c, claims, req.AlumnoID)
	if !ok {
		return
	}

	resp, err := h.svc.RegistrarPago(c.Request.Context(), registradoPor, alumnoID, req)
	if err != nil {
		respondError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Confirmar godoc
// @Summary Confirmacion de un pago pendiente
// @Tags pagos
// @Produce json
// @Param id path string true "ID del pago"
// @Success 200 {object} dto.PagoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/pagos/{id}/confirmar [post]
func (h *PagosHandler) Confirmar(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ConfirmarPago(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PagosHandler) Obtener(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPago(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Pago no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *PagosHandler) Listar(c *gin.Context) {
	var filter dto.PagoFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.ListarPagos(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar pagos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Historial returns every payment of one student ordered by period.
func (h *PagosHandler) Historial(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.HistorialAlumno(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar el historial"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MiHistorial serves the self-service history for rol "usuario".
func (h *PagosHandler) MiHistorial(c *gin.Context) {
	claims := middleware.GetClaims(c)
	usuarioID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token invalido"))
		return
	}
	alumno, err := h.alumnoSvc.ResolverPorUsuario(c.Request.Context(), usuarioID)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("La cuenta no esta vinculada a un alumno"))
		return
	}
	resp, err := h.svc.HistorialAlumno(c.Request.Context(), alumno.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al consultar el historial"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// resolverAlumno decides which alumno a payment belongs to: staff must name
// one explicitly, rol "usuario" always pays for its own linked alumno.
func (h *PagosHandler) resolverAlumno(c *gin.Context, claims *middleware.JWTClaims, alumnoID *string) (uuid.UUID, bool) {
	if claims.Rol == "usuario" {
		usuarioID, err := uuid.Parse(claims.UserID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, apierror.New("Token invalido"))
			return uuid.Nil, false
		}
		alumno, err := h.alumnoSvc.ResolverPorUsuario(c.Request.Context(), usuarioID)
		if err != nil {
			c.JSON(http.StatusNotFound, apierror.New("La cuenta no esta vinculada a un alumno"))
			return uuid.Nil, false
		}
		return alumno.ID, true
	}

	if alumnoID == nil {
		c.JSON(http.StatusBadRequest, apierror.New("alumno_id es obligatorio"))
		return uuid.Nil, false
	}
	id, err := uuid.Parse(*alumnoID)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("alumno_id invalido"))
		return uuid.Nil, false
	}
	return id, true
}

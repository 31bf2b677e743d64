package handler

import (
	"net/http"

	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/apierror"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/dto"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type AlumnosHandler struct{ svc service.AlumnoService }

func NewAlumnosHandler(svc service.AlumnoService) *AlumnosHandler {
	return &AlumnosHandler{svc: svc}
}

// Crear godoc
// @Summary Alta de alumno
// @Description Los menores de edad requieren un representante registrado.
// @Tags alumnos
// @Accept json
// @Produce json
// @Param body body dto.CrearAlumnoRequest true "Datos del alumno"
// @Success 201 {object} dto.AlumnoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/alumnos [post]
func (h *AlumnosHandler) Crear(c *gin.Context) {
	var req dto.CrearAlumnoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *AlumnosHandler) Obtener(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New("Alumno no encontrado"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AlumnosHandler) Listar(c *gin.Context) {
	var filter dto.AlumnoFilter
	if !bindQueryAndValidate(c, &filter) {
		return
	}
	resp, err := h.svc.Listar(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar alumnos"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AlumnosHandler) Actualizar(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	var req dto.ActualizarAlumnoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AlumnosHandler) Desactivar(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Desactivar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AlumnosHandler) Reactivar(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.Reactivar(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

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

type EvaluacionesHandler struct{ svc service.EvaluacionService }

func NewEvaluacionesHandler(svc service.EvaluacionService) *EvaluacionesHandler {
	return &EvaluacionesHandler{svc: svc}
}

func (h *EvaluacionesHandler) Crear(c *gin.Context) {
	var req dto.CrearEvaluacionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	claims := middleware.GetClaims(c)
	evaluadorID, err := uuid.Parse(claims.UserID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token invalido"))
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), evaluadorID, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// RegistrarResultado closes a pending exam; approving promotes the student.
func (h *EvaluacionesHandler) RegistrarResultado(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	var req dto.RegistrarResultadoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.RegistrarResultado(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EvaluacionesHandler) ListarPorAlumno(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.ListarPorAlumno(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar evaluaciones"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EvaluacionesHandler) ListarPendientes(c *gin.Context) {
	resp, err := h.svc.ListarPendientes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar evaluaciones"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// EstimarPreparacion godoc
// @Summary Estimacion de meses de preparacion para el proximo cinturon
// @Tags evaluaciones
// @Produce json
// @Param id path string true "ID del alumno"
// @Success 200 {object} dto.PreparacionResponse
// @Failure 404 {object} apierror.APIError
// @Router /v1/alumnos/{id}/preparacion [get]
func (h *EvaluacionesHandler) EstimarPreparacion(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	resp, err := h.svc.EstimarPreparacion(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

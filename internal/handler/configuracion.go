package handler

import (
	"net/http"

	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/apierror"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/dto"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/service"

	"github.com/gin-gonic/gin"
)

type ConfiguracionHandler struct{ svc service.ConfiguracionService }

func NewConfiguracionHandler(svc service.ConfiguracionService) *ConfiguracionHandler {
	return &ConfiguracionHandler{svc: svc}
}

func (h *ConfiguracionHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar configuracion"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ConfiguracionHandler) Obtener(c *gin.Context) {
	clave := c.Param("clave")
	resp, err := h.svc.Obtener(c.Request.Context(), clave)
	if err != nil {
		c.JSON(http.StatusNotFound, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ConfiguracionHandler) Actualizar(c *gin.Context) {
	var req dto.ActualizarConfiguracionRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

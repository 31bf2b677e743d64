package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/apierror"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/dto"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// HorariosHandler serves schedule management plus the public, unauthenticated
// schedule listing. The public endpoint is Redis-cached; every write through
// the service invalidates the cache.
type HorariosHandler struct {
	svc      service.HorarioService
	rdb      *redis.Client
	cacheTTL time.Duration
}

func NewHorariosHandler(svc service.HorarioService, rdb *redis.Client, cacheTTLMin int) *HorariosHandler {
	return &HorariosHandler{svc: svc, rdb: rdb, cacheTTL: time.Duration(cacheTTLMin) * time.Minute}
}

// ListarPublico godoc
// @Summary Listado publico de horarios de clases (sin autenticacion)
// @Tags horarios
// @Produce json
// @Success 200 {array} dto.HorarioResponse
// @Router /v1/horarios [get]
func (h *HorariosHandler) ListarPublico(c *gin.Context) {
	ctx := c.Request.Context()

	// 1. Try Redis cache
	if cached, err := h.rdb.Get(ctx, service.HorarioCacheKey).Bytes(); err == nil {
		var resp []dto.HorarioResponse
		if jsonErr := json.Unmarshal(cached, &resp); jsonErr == nil {
			c.JSON(http.StatusOK, resp)
			return
		}
	}

	// 2. Cache miss — query DB
	resp, err := h.svc.Listar(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar horarios"))
		return
	}

	// 3. Populate cache — best effort, ignore errors
	if b, jsonErr := json.Marshal(resp); jsonErr == nil {
		_ = h.rdb.Set(context.Background(), service.HorarioCacheKey, b, h.cacheTTL).Err()
	}

	c.JSON(http.StatusOK, resp)
}

func (h *HorariosHandler) Crear(c *gin.Context) {
	var req dto.CrearHorarioRequest
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

func (h *HorariosHandler) Actualizar(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	var req dto.ActualizarHorarioRequest
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

func (h *HorariosHandler) Desactivar(c *gin.Context) {
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

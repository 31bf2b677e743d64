package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/apierror"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/dto"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login godoc
// @Summary Login de usuario
// @Description Devuelve 423 cuando la cuenta esta bloqueada por intentos fallidos.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "Credenciales"
// @Success 200 {object} dto.LoginResponse
// @Failure 401 {object} dto.LoginFailedResponse
// @Failure 423 {object} dto.LoginFailedResponse
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		var el *service.ErrorLogin
		if errors.As(err, &el) {
			failed := dto.LoginFailedResponse{
				Detail:            el.Mensaje,
				Bloqueada:         el.Bloqueada,
				IntentosRestantes: el.IntentosRestantes,
			}
			if el.FechaBloqueo != nil {
				f := el.FechaBloqueo.Format(time.RFC3339)
				failed.FechaBloqueo = &f
			}
			status := http.StatusUnauthorized
			if el.Bloqueada {
				status = http.StatusLocked
			}
			c.JSON(status, failed)
			return
		}
		c.JSON(http.StatusUnauthorized, dto.LoginFailedResponse{Detail: "Credenciales invalidas"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VerificarCodigo godoc
// @Summary Desbloqueo de cuenta con codigo de 6 digitos
// @Tags auth
// @Accept json
// @Produce json
// @Param body body dto.VerificarCodigoRequest true "Usuario y codigo"
// @Success 200 {object} dto.VerificarCodigoResponse
// @Failure 400 {object} apierror.APIError
// @Router /v1/auth/desbloquear [post]
func (h *AuthHandler) VerificarCodigo(c *gin.Context) {
	var req dto.VerificarCodigoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.DesbloquearPorCodigo(c.Request.Context(), req.Username, req.Codigo); err != nil {
		respondError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, dto.VerificarCodigoResponse{Valido: true, Mensaje: "Cuenta desbloqueada"})
}

// ReenviarCodigo issues a fresh unlock code for a locked account. The old
// code stops working as soon as the new one is stored.
func (h *AuthHandler) ReenviarCodigo(c *gin.Context) {
	var req dto.ReenviarCodigoRequest
	if !bindAndValidate(c, &req) {
		return
	}
	if err := h.svc.ReenviarCodigoDesbloqueo(c.Request.Context(), req.Username); err != nil {
		respondError(c, err, http.StatusBadRequest)
		return
	}
	c.JSON(http.StatusOK, gin.H{"detail": "Codigo reenviado"})
}

// ── Usuarios Handler ─────────────────────────────────────────────────────────

type UsuariosHandler struct{ svc service.AuthService }

func NewUsuariosHandler(svc service.AuthService) *UsuariosHandler {
	return &UsuariosHandler{svc: svc}
}

func (h *UsuariosHandler) Crear(c *gin.Context) {
	var req dto.CrearUsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.CrearUsuario(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *UsuariosHandler) Listar(c *gin.Context) {
	incluirInactivos := c.Query("incluir_inactivos") == "true"
	resp, err := h.svc.ListarUsuarios(c.Request.Context(), incluirInactivos)
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar usuarios"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UsuariosHandler) Actualizar(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	var req dto.ActualizarUsuarioRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.ActualizarUsuario(c.Request.Context(), id, req)
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *UsuariosHandler) Desactivar(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.DesactivarUsuario(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UsuariosHandler) Reactivar(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.ReactivarUsuario(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// Desbloquear godoc
// @Summary Desbloqueo manual de cuenta (solo administradores)
// @Tags usuarios
// @Produce json
// @Param id path string true "ID del usuario"
// @Success 204
// @Failure 400 {object} apierror.APIError
// @Router /v1/usuarios/{id}/desbloquear [post]
func (h *UsuariosHandler) Desbloquear(c *gin.Context) {
	id, ok := parseUUIDParam(c)
	if !ok {
		return
	}
	if err := h.svc.DesbloquearAdmin(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	c.Status(http.StatusNoContent)
}

// parseUUIDParam parses the :id path segment, writing the 400 itself.
func parseUUIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return uuid.Nil, false
	}
	return id, true
}

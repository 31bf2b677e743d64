package service

import (
	"context"
	"errors"
	"time"

	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/config"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/dto"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/model"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrorLogin is returned on a rejected login so the handler can tell the SPA
// how many attempts remain before lockout, or that the account is locked and
// the unlock-code flow should be presented.
type ErrorLogin struct {
	Mensaje           string
	Bloqueada         bool
	IntentosRestantes *int
	FechaBloqueo      *time.Time
}

func (e *ErrorLogin) Error() string { return e.Mensaje }

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
	DesbloquearPorCodigo(ctx context.Context, username, codigo string) error
	ReenviarCodigoDesbloqueo(ctx context.Context, username string) error
	DesbloquearAdmin(ctx context.Context, usuarioID uuid.UUID) error
	CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error)
	ListarUsuarios(ctx context.Context, incluirInactivos bool) ([]dto.UsuarioResponse, error)
	ActualizarUsuario(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error)
	DesactivarUsuario(ctx context.Context, id uuid.UUID) error
	ReactivarUsuario(ctx context.Context, id uuid.UUID) error
}

type authService struct {
	repo    repository.UsuarioRepository
	bloqueo BloqueoService
	cfg     *config.Config
}

func NewAuthService(repo repository.UsuarioRepository, bloqueo BloqueoService, cfg *config.Config) AuthService {
	return &authService{repo: repo, bloqueo: bloqueo, cfg: cfg}
}

// Login verifies credentials, gated by the lockout controller: a locked
// account is rejected before the password is even checked, a wrong password
// records a failed attempt, and a correct one resets the counter.
func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, &ErrorLogin{Mensaje: "credenciales invalidas"}
	}

	estado, err := s.bloqueo.EstaBloqueada(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if estado.Bloqueada {
		return nil, &ErrorLogin{
			Mensaje:      "La cuenta esta bloqueada; revise su correo para el codigo de desbloqueo",
			Bloqueada:    true,
			FechaBloqueo: estado.FechaBloqueo,
		}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		res, ferr := s.bloqueo.RegistrarIntentoFallido(ctx, user)
		if ferr != nil {
			return nil, ferr
		}
		if res.Bloqueada {
			now := time.Now()
			return nil, &ErrorLogin{
				Mensaje:      "La cuenta fue bloqueada por intentos fallidos; se envio un codigo de desbloqueo a su correo",
				Bloqueada:    true,
				FechaBloqueo: &now,
			}
		}
		return nil, &ErrorLogin{
			Mensaje:           "credenciales invalidas",
			IntentosRestantes: &res.Restantes,
		}
	}

	// Any verified-correct password resets the counter, whatever its value.
	if err := s.bloqueo.ReiniciarIntentos(ctx, user.ID); err != nil {
		return nil, err
	}

	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         usuarioToResponse(user),
	}, nil
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalido o expirado")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("claims invalidos")
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, errors.New("token mal formado")
	}
	uid, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, errors.New("token mal formado")
	}

	user, err := s.repo.FindByID(ctx, uid)
	if err != nil || !user.Activo {
		return nil, errors.New("usuario no encontrado o inactivo")
	}

	accessToken, err := s.generateToken(user, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	newRefresh, err := s.generateToken(user, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: newRefresh,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		User:         usuarioToResponse(user),
	}, nil
}

// DesbloquearPorCodigo is the self-service unlock path from the SPA.
func (s *authService) DesbloquearPorCodigo(ctx context.Context, username, codigo string) error {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return errors.New("usuario no encontrado")
	}
	return s.bloqueo.VerificarCodigo(ctx, user, codigo)
}

func (s *authService) ReenviarCodigoDesbloqueo(ctx context.Context, username string) error {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return errors.New("usuario no encontrado")
	}
	return s.bloqueo.ReenviarCodigo(ctx, user)
}

func (s *authService) DesbloquearAdmin(ctx context.Context, usuarioID uuid.UUID) error {
	return s.bloqueo.DesbloquearAdmin(ctx, usuarioID)
}

func (s *authService) CrearUsuario(ctx context.Context, req dto.CrearUsuarioRequest) (*dto.UsuarioResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
	if err != nil {
		return nil, err
	}
	idioma := req.Idioma
	if idioma == "" {
		idioma = "es"
	}
	user := &model.Usuario{
		Username:     req.Username,
		Nombre:       req.Nombre,
		Email:        req.Email,
		PasswordHash: string(hash),
		Rol:          req.Rol,
		Idioma:       idioma,
		Activo:       true,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	resp := usuarioToResponse(user)
	return &resp, nil
}

func (s *authService) ListarUsuarios(ctx context.Context, incluirInactivos bool) ([]dto.UsuarioResponse, error) {
	var users []model.Usuario
	var err error
	if incluirInactivos {
		users, err = s.repo.ListAll(ctx)
	} else {
		users, err = s.repo.List(ctx)
	}
	if err != nil {
		return nil, err
	}
	resp := make([]dto.UsuarioResponse, len(users))
	for i := range users {
		resp[i] = usuarioToResponse(&users[i])
	}
	return resp, nil
}

func (s *authService) ActualizarUsuario(ctx context.Context, id uuid.UUID, req dto.ActualizarUsuarioRequest) (*dto.UsuarioResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("usuario no encontrado")
	}
	if req.Nombre != "" {
		user.Nombre = req.Nombre
	}
	if req.Email != nil {
		user.Email = req.Email
		user.EmailVerificado = false
	}
	if req.Rol != "" {
		user.Rol = req.Rol
	}
	if req.Idioma != "" {
		user.Idioma = req.Idioma
	}
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 12)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := usuarioToResponse(user)
	return &resp, nil
}

func (s *authService) DesactivarUsuario(ctx context.Context, id uuid.UUID) error {
	return s.repo.SoftDelete(ctx, id)
}

func (s *authService) ReactivarUsuario(ctx context.Context, id uuid.UUID) error {
	return s.repo.Reactivar(ctx, id)
}

func (s *authService) generateToken(user *model.Usuario, duration time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID.String(),
		"username": user.Username,
		"rol":      user.Rol,
		"idioma":   user.Idioma,
		"exp":      time.Now().Add(duration).Unix(),
		"iat":      time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func usuarioToResponse(u *model.Usuario) dto.UsuarioResponse {
	return dto.UsuarioResponse{
		ID:              u.ID.String(),
		Username:        u.Username,
		Nombre:          u.Nombre,
		Email:           u.Email,
		Rol:             u.Rol,
		Idioma:          u.Idioma,
		Activo:          u.Activo,
		EmailVerificado: u.EmailVerificado,
	}
}

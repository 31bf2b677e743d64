package service

import (
	"context"
	"testing"

	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/config"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/dto"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/model"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	porUsername map[string]*model.Usuario
	porID       map[uuid.UUID]*model.Usuario
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{
		porUsername: make(map[string]*model.Usuario),
		porID:       make(map[uuid.UUID]*model.Usuario),
	}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.porUsername[u.Username] = u
	r.porID[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	u, ok := r.porUsername[username]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uuid.UUID) (*model.Usuario, error) {
	u, ok := r.porID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (r *stubUsuarioRepo) List(_ context.Context) ([]model.Usuario, error)    { return nil, nil }
func (r *stubUsuarioRepo) ListAll(_ context.Context) ([]model.Usuario, error) { return nil, nil }
func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.porUsername[u.Username] = u
	r.porID[u.ID] = u
	return nil
}
func (r *stubUsuarioRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	if u, ok := r.porID[id]; ok {
		u.Activo = false
	}
	return nil
}
func (r *stubUsuarioRepo) Reactivar(_ context.Context, id uuid.UUID) error {
	if u, ok := r.porID[id]; ok {
		u.Activo = true
	}
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

// ── Helpers ───────────────────────────────────────────────────────────────────

func buildAuthSvc(t *testing.T) (AuthService, *stubUsuarioRepo, *stubDispatcher) {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:           "clave-de-prueba",
		JWTExpirationHours:  1,
		JWTRefreshHours:     24,
		MaxIntentosLogin:    3,
		CodigoDesbloqueoTTL: 30,
	}
	usuarioRepo := newStubUsuarioRepo()
	dispatcher := &stubDispatcher{}
	bloqueo := NewBloqueoService(newStubBloqueoRepo(), dispatcher, cfg)
	return NewAuthService(usuarioRepo, bloqueo, cfg), usuarioRepo, dispatcher
}

// seedUsuario stores a user with a real (cheap cost) bcrypt hash.
func seedUsuario(t *testing.T, r *stubUsuarioRepo, username, password, rol string) *model.Usuario {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	email := username + "@example.com"
	u := &model.Usuario{
		ID:           uuid.New(),
		Username:     username,
		Nombre:       "Test " + username,
		Email:        &email,
		PasswordHash: string(hash),
		Rol:          rol,
		Idioma:       "es",
		Activo:       true,
	}
	require.NoError(t, r.Create(context.Background(), u))
	return u
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestLogin_Exitoso(t *testing.T) {
	svc, repo, _ := buildAuthSvc(t)
	seedUsuario(t, repo, "sensei", "katana1234", "administrador")

	resp, err := svc.Login(context.Background(), dto.LoginRequest{Username: "sensei", Password: "katana1234"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 3600, resp.ExpiresIn)
	assert.Equal(t, "administrador", resp.User.Rol)

	// The access token carries the identity claims the middleware relies on.
	token, err := jwt.Parse(resp.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte("clave-de-prueba"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "sensei", claims["username"])
	assert.Equal(t, "administrador", claims["rol"])
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	svc, _, _ := buildAuthSvc(t)

	_, err := svc.Login(context.Background(), dto.LoginRequest{Username: "nadie", Password: "loquesea"})
	var el *ErrorLogin
	require.ErrorAs(t, err, &el)
	assert.False(t, el.Bloqueada)
	assert.Equal(t, "credenciales invalidas", el.Mensaje)
}

func TestLogin_PasswordIncorrectaDescuentaIntentos(t *testing.T) {
	svc, repo, _ := buildAuthSvc(t)
	seedUsuario(t, repo, "sensei", "katana1234", "administrador")
	ctx := context.Background()

	_, err := svc.Login(ctx, dto.LoginRequest{Username: "sensei", Password: "mala"})
	var el *ErrorLogin
	require.ErrorAs(t, err, &el)
	assert.False(t, el.Bloqueada)
	require.NotNil(t, el.IntentosRestantes)
	assert.Equal(t, 2, *el.IntentosRestantes)

	_, err = svc.Login(ctx, dto.LoginRequest{Username: "sensei", Password: "mala"})
	require.ErrorAs(t, err, &el)
	require.NotNil(t, el.IntentosRestantes)
	assert.Equal(t, 1, *el.IntentosRestantes)
}

func TestLogin_TercerFalloBloquea(t *testing.T) {
	svc, repo, dispatcher := buildAuthSvc(t)
	seedUsuario(t, repo, "sensei", "katana1234", "administrador")
	ctx := context.Background()

	var el *ErrorLogin
	for i := 0; i < 3; i++ {
		_, err := svc.Login(ctx, dto.LoginRequest{Username: "sensei", Password: "mala"})
		require.ErrorAs(t, err, &el)
	}
	assert.True(t, el.Bloqueada)
	require.NotNil(t, el.FechaBloqueo)
	require.Len(t, dispatcher.enviados, 1)

	// Once locked even the correct password is rejected, without touching
	// the counter.
	_, err := svc.Login(ctx, dto.LoginRequest{Username: "sensei", Password: "katana1234"})
	require.ErrorAs(t, err, &el)
	assert.True(t, el.Bloqueada)
	assert.Len(t, dispatcher.enviados, 1)
}

func TestLogin_ExitoReiniciaContador(t *testing.T) {
	svc, repo, _ := buildAuthSvc(t)
	seedUsuario(t, repo, "sensei", "katana1234", "administrador")
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		_, err := svc.Login(ctx, dto.LoginRequest{Username: "sensei", Password: "mala"})
		require.Error(t, err)
	}
	_, err := svc.Login(ctx, dto.LoginRequest{Username: "sensei", Password: "katana1234"})
	require.NoError(t, err)

	// The counter restarted: two more failures still leave one attempt.
	var el *ErrorLogin
	_, err = svc.Login(ctx, dto.LoginRequest{Username: "sensei", Password: "mala"})
	require.ErrorAs(t, err, &el)
	assert.Equal(t, 2, *el.IntentosRestantes)
}

func TestDesbloquearPorCodigo_FlujoCompleto(t *testing.T) {
	svc, repo, dispatcher := buildAuthSvc(t)
	seedUsuario(t, repo, "sensei", "katana1234", "administrador")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, _ = svc.Login(ctx, dto.LoginRequest{Username: "sensei", Password: "mala"})
	}
	require.Len(t, dispatcher.enviados, 1)
	codigo := dispatcher.enviados[0].Codigo

	require.NoError(t, svc.DesbloquearPorCodigo(ctx, "sensei", codigo))

	resp, err := svc.Login(ctx, dto.LoginRequest{Username: "sensei", Password: "katana1234"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestDesbloquearPorCodigo_UsuarioInexistente(t *testing.T) {
	svc, _, _ := buildAuthSvc(t)
	err := svc.DesbloquearPorCodigo(context.Background(), "nadie", "123456")
	assert.ErrorContains(t, err, "usuario no encontrado")
}

func TestRefresh(t *testing.T) {
	svc, repo, _ := buildAuthSvc(t)
	u := seedUsuario(t, repo, "sensei", "katana1234", "administrador")
	ctx := context.Background()

	resp, err := svc.Login(ctx, dto.LoginRequest{Username: "sensei", Password: "katana1234"})
	require.NoError(t, err)

	renovado, err := svc.Refresh(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, renovado.AccessToken)
	assert.Equal(t, "sensei", renovado.User.Username)

	// A deactivated user cannot refresh.
	require.NoError(t, svc.DesactivarUsuario(ctx, u.ID))
	_, err = svc.Refresh(ctx, resp.RefreshToken)
	assert.ErrorContains(t, err, "inactivo")
}

func TestRefresh_TokenInvalido(t *testing.T) {
	svc, _, _ := buildAuthSvc(t)
	_, err := svc.Refresh(context.Background(), "no-es-un-jwt")
	assert.ErrorContains(t, err, "invalido")
}

func TestCrearYActualizarUsuario(t *testing.T) {
	svc, repo, _ := buildAuthSvc(t)
	ctx := context.Background()

	email := "aiko@example.com"
	resp, err := svc.CrearUsuario(ctx, dto.CrearUsuarioRequest{
		Username: "aiko",
		Nombre:   "Aiko Tanaka",
		Email:    &email,
		Password: "secreto123",
		Rol:      "usuario",
	})
	require.NoError(t, err)
	assert.Equal(t, "es", resp.Idioma) // default
	assert.True(t, resp.Activo)

	// Password is stored hashed, never verbatim.
	stored := repo.porUsername["aiko"]
	assert.NotEqual(t, "secreto123", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto123")))

	id := uuid.MustParse(resp.ID)
	actualizado, err := svc.ActualizarUsuario(ctx, id, dto.ActualizarUsuarioRequest{Idioma: "en", Rol: "recepcionista"})
	require.NoError(t, err)
	assert.Equal(t, "en", actualizado.Idioma)
	assert.Equal(t, "recepcionista", actualizado.Rol)
}

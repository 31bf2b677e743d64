//go:build integration

package e2e

// End-to-end integration tests using real Postgres + Redis via testcontainers.
// Run with: go test -tags integration ./tests/e2e/... -v
//
// Covered flows:
//   - account lockout after repeated failed logins and self-service unlock
//   - replay of a spent unlock code
//   - monthly payment registration, confirmation and the advance flow
//   - duplicate-period rejection

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/config"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/infra"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/model"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/router"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func do(t *testing.T, srv *httptest.Server, method, path string, body *bytes.Buffer, token string) *http.Response {
	t.Helper()
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequest(method, srv.URL+path, body)
	} else {
		req, err = http.NewRequest(method, srv.URL+path, nil)
	}
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Test Suite Setup ─────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
	token  string // admin JWT
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("dojo_test"),
		tcPostgres.WithUsername("dojo"),
		tcPostgres.WithPassword("dojo"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	cfg := &config.Config{
		Port:                8000,
		Env:                 "test",
		JWTSecret:           "test-secret-key",
		JWTExpirationHours:  8,
		JWTRefreshHours:     24,
		DatabaseURL:         pgURL,
		RedisURL:            rdURL,
		MaxIntentosLogin:    3,
		CodigoDesbloqueoTTL: 30,
		WorkerPoolSize:      1,
		NombreDojo:          "Dojo E2E",
		ReciboStoragePath:   t.TempDir(),
		HorarioCacheTTLMin:  5,
	}

	db, err := infra.NewDatabase(cfg.DatabaseURL)
	require.NoError(t, err)
	require.NoError(t, infra.RunMigrations(db))

	rdb, err := infra.NewRedis(cfg.RedisURL)
	require.NoError(t, err)

	// Seed the admin account directly; everything else goes through the API.
	hash, err := bcrypt.GenerateFromPassword([]byte("dojo2026"), bcrypt.MinCost)
	require.NoError(t, err)
	email := "admin@e2e.test"
	require.NoError(t, db.Create(&model.Usuario{
		Username:     "admin",
		Nombre:       "Admin E2E",
		Email:        &email,
		PasswordHash: string(hash),
		Rol:          "administrador",
		Idioma:       "es",
		Activo:       true,
	}).Error)

	srv := httptest.NewServer(router.New(cfg, db, rdb))
	t.Cleanup(srv.Close)

	loginResp := do(t, srv, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "admin", "password": "dojo2026"}),
		"",
	)
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	var loginBody struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, loginResp, &loginBody)
	require.NotEmpty(t, loginBody.AccessToken)

	return &testEnv{server: srv, db: db, token: loginBody.AccessToken}
}

// crearUsuario registers a user through the admin API.
func crearUsuario(t *testing.T, env *testEnv, username, password, rol string) {
	t.Helper()
	email := username + "@e2e.test"
	resp := do(t, env.server, "POST", "/v1/usuarios",
		jsonBody(t, map[string]any{
			"username": username,
			"nombre":   "Usuario " + username,
			"email":    email,
			"password": password,
			"rol":      rol,
		}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

// crearCategoria creates a belt category and returns its id.
func crearCategoria(t *testing.T, env *testEnv) string {
	t.Helper()
	catResp := do(t, env.server, "POST", "/v1/categorias",
		jsonBody(t, map[string]any{
			"nombre":            "Blanco",
			"cinturon":          "blanco",
			"orden":             0,
			"cuota_mensual":     "60.00",
			"meses_preparacion": 4,
		}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, catResp.StatusCode)
	var cat struct {
		ID string `json:"id"`
	}
	decodeJSON(t, catResp, &cat)
	return cat.ID
}

// crearAlumno creates a student in a fresh belt category and returns its id.
func crearAlumno(t *testing.T, env *testEnv) string {
	t.Helper()
	catID := crearCategoria(t, env)

	alResp := do(t, env.server, "POST", "/v1/alumnos",
		jsonBody(t, map[string]any{
			"nombre":           "Aiko Tanaka",
			"cedula":           "V-11222333",
			"fecha_nacimiento": "1998-03-14",
			"email":            "aiko@e2e.test",
			"categoria_id":     catID,
		}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, alResp.StatusCode)
	var alumno struct {
		ID string `json:"id"`
	}
	decodeJSON(t, alResp, &alumno)
	return alumno.ID
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestE2E_BloqueoYDesbloqueoPorCodigo(t *testing.T) {
	env := setupTestEnv(t)
	crearUsuario(t, env, "kenji", "katana1234", "recepcionista")

	badLogin := func() *http.Response {
		return do(t, env.server, "POST", "/v1/auth/login",
			jsonBody(t, map[string]string{"username": "kenji", "password": "mala"}), "")
	}

	// Two failures warn about the remaining attempts.
	resp := badLogin()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	var failed struct {
		Bloqueada         bool `json:"bloqueada"`
		IntentosRestantes *int `json:"intentos_restantes"`
	}
	decodeJSON(t, resp, &failed)
	require.NotNil(t, failed.IntentosRestantes)
	assert.Equal(t, 2, *failed.IntentosRestantes)

	resp = badLogin()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	// Third failure locks the account.
	resp = badLogin()
	require.Equal(t, http.StatusLocked, resp.StatusCode)
	decodeJSON(t, resp, &failed)
	assert.True(t, failed.Bloqueada)

	// Even the correct password is rejected while locked.
	resp = do(t, env.server, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "kenji", "password": "katana1234"}), "")
	require.Equal(t, http.StatusLocked, resp.StatusCode)
	resp.Body.Close()

	// The unlock code was issued and persisted; the email job itself only
	// sits in the Redis queue because no worker pool runs in this test.
	var usuario model.Usuario
	require.NoError(t, env.db.Where("username = ?", "kenji").First(&usuario).Error)
	var bloqueo model.BloqueoCuenta
	require.NoError(t, env.db.Where("usuario_id = ?", usuario.ID).First(&bloqueo).Error)
	require.NotNil(t, bloqueo.CodigoDesbloqueo)
	require.NotNil(t, bloqueo.CodigoExpira)
	assert.True(t, bloqueo.CodigoExpira.After(time.Now().Add(25*time.Minute)))

	// A wrong code does not unlock.
	malo := "000000"
	if malo == *bloqueo.CodigoDesbloqueo {
		malo = "000001"
	}
	resp = do(t, env.server, "POST", "/v1/auth/desbloquear",
		jsonBody(t, map[string]string{"username": "kenji", "codigo": malo}), "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var apiErr struct {
		Code string `json:"code"`
	}
	decodeJSON(t, resp, &apiErr)
	assert.Equal(t, "CODE_MISMATCH", apiErr.Code)

	// The mailed code unlocks the account.
	resp = do(t, env.server, "POST", "/v1/auth/desbloquear",
		jsonBody(t, map[string]string{"username": "kenji", "codigo": *bloqueo.CodigoDesbloqueo}), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var verif struct {
		Valido bool `json:"valido"`
	}
	decodeJSON(t, resp, &verif)
	assert.True(t, verif.Valido)

	// Replaying the spent code is rejected explicitly.
	resp = do(t, env.server, "POST", "/v1/auth/desbloquear",
		jsonBody(t, map[string]string{"username": "kenji", "codigo": *bloqueo.CodigoDesbloqueo}), "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	decodeJSON(t, resp, &apiErr)
	assert.Equal(t, "CODE_ALREADY_USED", apiErr.Code)

	// And the account works again.
	resp = do(t, env.server, "POST", "/v1/auth/login",
		jsonBody(t, map[string]string{"username": "kenji", "password": "katana1234"}), "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestE2E_PagosYAdelanto(t *testing.T) {
	env := setupTestEnv(t)
	alumnoID := crearAlumno(t, env)
	ahora := time.Now()

	// 1. Ordinary payment for the current month.
	resp := do(t, env.server, "POST", "/v1/pagos",
		jsonBody(t, map[string]any{
			"alumno_id": alumnoID,
			"monto":     "60.00",
			"metodo":    "efectivo",
		}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var pago struct {
		ID         string `json:"id"`
		Mes        int    `json:"mes"`
		Anio       int    `json:"anio"`
		Adelantado bool   `json:"adelantado"`
		Estado     string `json:"estado"`
	}
	decodeJSON(t, resp, &pago)
	assert.Equal(t, int(ahora.Month()), pago.Mes)
	assert.Equal(t, ahora.Year(), pago.Anio)
	assert.False(t, pago.Adelantado)
	assert.Equal(t, "pendiente", pago.Estado)

	// 2. An advance is rejected while the current month is unconfirmed.
	sig := time.Date(ahora.Year(), ahora.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	resp = do(t, env.server, "POST", "/v1/pagos",
		jsonBody(t, map[string]any{
			"alumno_id":     alumnoID,
			"monto":         "60.00",
			"metodo":        "transferencia",
			"observaciones": "pago adelantado",
		}),
		env.token,
	)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	var apiErr struct {
		Code string `json:"code"`
	}
	decodeJSON(t, resp, &apiErr)
	assert.Equal(t, "ADVANCE_PAYMENT_PRECONDITION_UNMET", apiErr.Code)

	// 3. Confirm the current month, then the advance goes through.
	resp = do(t, env.server, "POST", fmt.Sprintf("/v1/pagos/%s/confirmar", pago.ID), nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "POST", "/v1/pagos",
		jsonBody(t, map[string]any{
			"alumno_id":     alumnoID,
			"monto":         "60.00",
			"metodo":        "transferencia",
			"observaciones": "pago adelantado",
		}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var adelanto struct {
		Mes        int  `json:"mes"`
		Anio       int  `json:"anio"`
		Adelantado bool `json:"adelantado"`
	}
	decodeJSON(t, resp, &adelanto)
	assert.True(t, adelanto.Adelantado)
	assert.Equal(t, int(sig.Month()), adelanto.Mes)
	assert.Equal(t, sig.Year(), adelanto.Anio)

	// 4. A second payment for the current month is a conflict.
	resp = do(t, env.server, "POST", "/v1/pagos",
		jsonBody(t, map[string]any{
			"alumno_id": alumnoID,
			"monto":     "60.00",
			"metodo":    "efectivo",
		}),
		env.token,
	)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	decodeJSON(t, resp, &apiErr)
	assert.Equal(t, "PERIOD_ALREADY_HAS_PAYMENT", apiErr.Code)

	// 5. The student's history shows both periods in order.
	resp = do(t, env.server, "GET", fmt.Sprintf("/v1/alumnos/%s/pagos", alumnoID), nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var historial []struct {
		Mes  int `json:"mes"`
		Anio int `json:"anio"`
	}
	decodeJSON(t, resp, &historial)
	require.Len(t, historial, 2)
	assert.Equal(t, int(ahora.Month()), historial[0].Mes)
	assert.Equal(t, int(sig.Month()), historial[1].Mes)
}

func TestE2E_HorariosPublicosConCache(t *testing.T) {
	env := setupTestEnv(t)
	catID := crearCategoria(t, env)

	// Empty listing is public, no token required.
	resp := do(t, env.server, "GET", "/v1/horarios", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = do(t, env.server, "POST", "/v1/horarios",
		jsonBody(t, map[string]any{
			"categoria_id": catID,
			"dia_semana":   1,
			"hora_inicio":  "18:00",
			"hora_fin":     "19:30",
			"salon":        "Tatami 1",
		}),
		env.token,
	)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// The write invalidated the cache; the public listing reflects it.
	resp = do(t, env.server, "GET", "/v1/horarios", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var horarios []struct {
		HoraInicio string `json:"hora_inicio"`
		Salon      string `json:"salon"`
	}
	decodeJSON(t, resp, &horarios)
	require.Len(t, horarios, 1)
	assert.Equal(t, "18:00", horarios[0].HoraInicio)
	assert.Equal(t, "Tatami 1", horarios[0].Salon)
}

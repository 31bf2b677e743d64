package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/config"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/model"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/repository"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/worker"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// ── Stubs ─────────────────────────────────────────────────────────────────────

// stubBloqueoRepo is an in-memory BloqueoRepository keyed by usuario.
type stubBloqueoRepo struct {
	rows map[uuid.UUID]*model.BloqueoCuenta
}

func newStubBloqueoRepo() *stubBloqueoRepo {
	return &stubBloqueoRepo{rows: make(map[uuid.UUID]*model.BloqueoCuenta)}
}

func (r *stubBloqueoRepo) FindByUsuario(_ context.Context, usuarioID uuid.UUID) (*model.BloqueoCuenta, error) {
	b, ok := r.rows[usuarioID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return b, nil
}

func (r *stubBloqueoRepo) Create(_ context.Context, b *model.BloqueoCuenta) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	r.rows[b.UsuarioID] = b
	return nil
}

func (r *stubBloqueoRepo) Update(_ context.Context, b *model.BloqueoCuenta) error {
	r.rows[b.UsuarioID] = b
	return nil
}

var _ repository.BloqueoRepository = (*stubBloqueoRepo)(nil)

// stubDispatcher captures enqueued email payloads; fail makes EnqueueEmail error.
type stubDispatcher struct {
	enviados []worker.EmailJobPayload
	fail     bool
}

func (d *stubDispatcher) EnqueueEmail(_ context.Context, payload interface{}) error {
	if d.fail {
		return errors.New("redis down")
	}
	d.enviados = append(d.enviados, payload.(worker.EmailJobPayload))
	return nil
}

var _ EmailDispatcher = (*stubDispatcher)(nil)

// ── Helpers ───────────────────────────────────────────────────────────────────

func buildBloqueoSvc() (BloqueoService, *stubBloqueoRepo, *stubDispatcher) {
	repo := newStubBloqueoRepo()
	dispatcher := &stubDispatcher{}
	cfg := &config.Config{MaxIntentosLogin: 3, CodigoDesbloqueoTTL: 30}
	return NewBloqueoService(repo, dispatcher, cfg), repo, dispatcher
}

func usuarioConEmail() *model.Usuario {
	email := "kenji@example.com"
	return &model.Usuario{ID: uuid.New(), Username: "kenji", Nombre: "Kenji Sato", Email: &email, Idioma: "es"}
}

// bloquear drives the account to the locked state through the public API and
// returns the code that was mailed out.
func bloquear(t *testing.T, svc BloqueoService, d *stubDispatcher, u *model.Usuario) string {
	t.Helper()
	for i := 0; i < 3; i++ {
		_, err := svc.RegistrarIntentoFallido(context.Background(), u)
		require.NoError(t, err)
	}
	require.Len(t, d.enviados, 1)
	return d.enviados[0].Codigo
}

// ── Tests ─────────────────────────────────────────────────────────────────────

func TestRegistrarIntentoFallido_ContadorYUmbral(t *testing.T) {
	svc, _, dispatcher := buildBloqueoSvc()
	u := usuarioConEmail()
	ctx := context.Background()

	res, err := svc.RegistrarIntentoFallido(ctx, u)
	require.NoError(t, err)
	assert.False(t, res.Bloqueada)
	assert.Equal(t, 1, res.Intentos)
	assert.Equal(t, 2, res.Restantes)

	res, err = svc.RegistrarIntentoFallido(ctx, u)
	require.NoError(t, err)
	assert.False(t, res.Bloqueada)
	assert.Equal(t, 1, res.Restantes)
	assert.Empty(t, dispatcher.enviados)

	res, err = svc.RegistrarIntentoFallido(ctx, u)
	require.NoError(t, err)
	assert.True(t, res.Bloqueada)
	assert.Equal(t, 3, res.Intentos)
	assert.Equal(t, 0, res.Restantes)

	require.Len(t, dispatcher.enviados, 1)
	mail := dispatcher.enviados[0]
	assert.Equal(t, worker.EmailCodigoDesbloqueo, mail.Tipo)
	assert.Equal(t, "kenji@example.com", mail.ToEmail)
	assert.Len(t, mail.Codigo, 6)
}

func TestRegistrarIntentoFallido_BloqueoResisteFalloDeEnvio(t *testing.T) {
	svc, repo, dispatcher := buildBloqueoSvc()
	dispatcher.fail = true
	u := usuarioConEmail()

	for i := 0; i < 3; i++ {
		_, err := svc.RegistrarIntentoFallido(context.Background(), u)
		require.NoError(t, err)
	}

	estado, err := svc.EstaBloqueada(context.Background(), u.ID)
	require.NoError(t, err)
	assert.True(t, estado.Bloqueada)
	// The code was issued and stored even though the email never went out.
	require.NotNil(t, repo.rows[u.ID].CodigoDesbloqueo)
}

func TestEstaBloqueada_SinRegistro(t *testing.T) {
	svc, _, _ := buildBloqueoSvc()
	estado, err := svc.EstaBloqueada(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.False(t, estado.Bloqueada)
	assert.Nil(t, estado.FechaBloqueo)
}

func TestReiniciarIntentos(t *testing.T) {
	svc, repo, _ := buildBloqueoSvc()
	u := usuarioConEmail()
	ctx := context.Background()

	_, err := svc.RegistrarIntentoFallido(ctx, u)
	require.NoError(t, err)
	_, err = svc.RegistrarIntentoFallido(ctx, u)
	require.NoError(t, err)

	require.NoError(t, svc.ReiniciarIntentos(ctx, u.ID))
	assert.Equal(t, 0, repo.rows[u.ID].IntentosFallidos)

	// A user with no lock record is a no-op, not an error.
	require.NoError(t, svc.ReiniciarIntentos(ctx, uuid.New()))
}

func TestVerificarCodigo_FlujoCompleto(t *testing.T) {
	svc, repo, dispatcher := buildBloqueoSvc()
	u := usuarioConEmail()
	ctx := context.Background()
	codigo := bloquear(t, svc, dispatcher, u)

	require.NoError(t, svc.VerificarCodigo(ctx, u, codigo))

	estado, err := svc.EstaBloqueada(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, estado.Bloqueada)
	assert.Equal(t, 0, estado.Intentos)
	assert.True(t, repo.rows[u.ID].CodigoUsado)
}

func TestVerificarCodigo_ReplayDelCodigoUsado(t *testing.T) {
	svc, _, dispatcher := buildBloqueoSvc()
	u := usuarioConEmail()
	ctx := context.Background()
	codigo := bloquear(t, svc, dispatcher, u)

	require.NoError(t, svc.VerificarCodigo(ctx, u, codigo))

	err := svc.VerificarCodigo(ctx, u, codigo)
	var en *ErrorNegocio
	require.ErrorAs(t, err, &en)
	assert.Equal(t, CodigoYaUsado, en.Codigo)
}

func TestVerificarCodigo_Incorrecto(t *testing.T) {
	svc, _, dispatcher := buildBloqueoSvc()
	u := usuarioConEmail()
	codigo := bloquear(t, svc, dispatcher, u)

	malo := "000000"
	if malo == codigo {
		malo = "000001"
	}
	err := svc.VerificarCodigo(context.Background(), u, malo)
	var en *ErrorNegocio
	require.ErrorAs(t, err, &en)
	assert.Equal(t, CodigoIncorrecto, en.Codigo)

	// The failed verification does not unlock the account.
	estado, _ := svc.EstaBloqueada(context.Background(), u.ID)
	assert.True(t, estado.Bloqueada)
}

func TestVerificarCodigo_Expirado(t *testing.T) {
	svc, repo, dispatcher := buildBloqueoSvc()
	u := usuarioConEmail()
	codigo := bloquear(t, svc, dispatcher, u)

	vencido := time.Now().Add(-time.Minute)
	repo.rows[u.ID].CodigoExpira = &vencido

	err := svc.VerificarCodigo(context.Background(), u, codigo)
	var en *ErrorNegocio
	require.ErrorAs(t, err, &en)
	assert.Equal(t, CodigoExpirado, en.Codigo)
}

func TestVerificarCodigo_CuentaNoBloqueada(t *testing.T) {
	svc, _, _ := buildBloqueoSvc()
	u := usuarioConEmail()

	err := svc.VerificarCodigo(context.Background(), u, "123456")
	var en *ErrorNegocio
	require.ErrorAs(t, err, &en)
	assert.Equal(t, CodigoNoBloqueada, en.Codigo)

	// With a record but without a lock the answer is the same.
	_, err = svc.RegistrarIntentoFallido(context.Background(), u)
	require.NoError(t, err)
	err = svc.VerificarCodigo(context.Background(), u, "123456")
	require.ErrorAs(t, err, &en)
	assert.Equal(t, CodigoNoBloqueada, en.Codigo)
}

func TestReenviarCodigo_RegeneraYReemplaza(t *testing.T) {
	svc, repo, dispatcher := buildBloqueoSvc()
	u := usuarioConEmail()
	ctx := context.Background()
	bloquear(t, svc, dispatcher, u)

	require.NoError(t, svc.ReenviarCodigo(ctx, u))
	require.Len(t, dispatcher.enviados, 2)

	// Only the latest stored code unlocks.
	nuevo := dispatcher.enviados[1].Codigo
	assert.Equal(t, nuevo, *repo.rows[u.ID].CodigoDesbloqueo)
	require.NoError(t, svc.VerificarCodigo(ctx, u, nuevo))
}

func TestReenviarCodigo_NoBloqueada(t *testing.T) {
	svc, _, _ := buildBloqueoSvc()
	u := usuarioConEmail()

	err := svc.ReenviarCodigo(context.Background(), u)
	var en *ErrorNegocio
	require.ErrorAs(t, err, &en)
	assert.Equal(t, CodigoNoBloqueada, en.Codigo)
}

func TestReenviarCodigo_PropagaFalloDeEnvio(t *testing.T) {
	svc, _, dispatcher := buildBloqueoSvc()
	u := usuarioConEmail()
	bloquear(t, svc, dispatcher, u)

	dispatcher.fail = true
	err := svc.ReenviarCodigo(context.Background(), u)
	assert.Error(t, err)
}

func TestDesbloquearAdmin(t *testing.T) {
	svc, repo, dispatcher := buildBloqueoSvc()
	u := usuarioConEmail()
	ctx := context.Background()
	bloquear(t, svc, dispatcher, u)

	require.NoError(t, svc.DesbloquearAdmin(ctx, u.ID))

	estado, err := svc.EstaBloqueada(ctx, u.ID)
	require.NoError(t, err)
	assert.False(t, estado.Bloqueada)
	assert.Nil(t, repo.rows[u.ID].CodigoDesbloqueo)

	// Unlocking an account that was never locked is a no-op.
	require.NoError(t, svc.DesbloquearAdmin(ctx, uuid.New()))
}

func TestGenerarCodigo_SeisDigitos(t *testing.T) {
	for i := 0; i < 20; i++ {
		c := generarCodigo()
		require.Len(t, c, 6)
		for _, r := range c {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
}

package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/config"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/model"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/repository"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// ResultadoIntento is returned after recording a failed login attempt.
type ResultadoIntento struct {
	Bloqueada bool
	Intentos  int
	Restantes int
}

// EstadoBloqueo is the persisted lock state of an account.
type EstadoBloqueo struct {
	Bloqueada    bool
	FechaBloqueo *time.Time
	Intentos     int
}

// BloqueoService is the account lockout controller. It gates password
// verification in the login flow: after MaxIntentosLogin consecutive
// failures the account locks and a 6-digit unlock code is mailed to the
// user, valid once and for a limited time.
type BloqueoService interface {
	RegistrarIntentoFallido(ctx context.Context, usuario *model.Usuario) (*ResultadoIntento, error)
	ReiniciarIntentos(ctx context.Context, usuarioID uuid.UUID) error
	EstaBloqueada(ctx context.Context, usuarioID uuid.UUID) (*EstadoBloqueo, error)
	VerificarCodigo(ctx context.Context, usuario *model.Usuario, codigo string) error
	ReenviarCodigo(ctx context.Context, usuario *model.Usuario) error
	DesbloquearAdmin(ctx context.Context, usuarioID uuid.UUID) error
}

type bloqueoService struct {
	repo       repository.BloqueoRepository
	dispatcher EmailDispatcher
	cfg        *config.Config
}

func NewBloqueoService(repo repository.BloqueoRepository, dispatcher EmailDispatcher, cfg *config.Config) BloqueoService {
	return &bloqueoService{repo: repo, dispatcher: dispatcher, cfg: cfg}
}

// RegistrarIntentoFallido increments the failure counter and, when the
// configured threshold is reached, locks the account, issues an unlock code
// and dispatches it by email. The email is best effort: a dispatch failure is
// logged and swallowed so the lock itself always takes effect.
func (s *bloqueoService) RegistrarIntentoFallido(ctx context.Context, usuario *model.Usuario) (*ResultadoIntento, error) {
	b, err := s.repo.FindByUsuario(ctx, usuario.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		b = &model.BloqueoCuenta{UsuarioID: usuario.ID}
		if err := s.repo.Create(ctx, b); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	b.IntentosFallidos++

	if b.IntentosFallidos >= s.cfg.MaxIntentosLogin {
		now := time.Now()
		b.Bloqueada = true
		b.FechaBloqueo = &now
		s.emitirCodigo(b)

		if err := s.repo.Update(ctx, b); err != nil {
			return nil, err
		}
		if err := s.enviarCodigo(ctx, usuario, *b.CodigoDesbloqueo); err != nil {
			// The lock must stand even if the notification could not be
			// dispatched; the user can request a resend later.
			log.Error().Err(err).Str("usuario_id", usuario.ID.String()).
				Msg("bloqueo: fallo el envio del codigo de desbloqueo")
		}
		return &ResultadoIntento{Bloqueada: true, Intentos: b.IntentosFallidos, Restantes: 0}, nil
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return &ResultadoIntento{
		Bloqueada: false,
		Intentos:  b.IntentosFallidos,
		Restantes: s.cfg.MaxIntentosLogin - b.IntentosFallidos,
	}, nil
}

// ReiniciarIntentos zeroes the counter and clears the lock fields. Idempotent:
// called after every verified-correct password, locked or not; a user without
// a lock record is a no-op.
func (s *bloqueoService) ReiniciarIntentos(ctx context.Context, usuarioID uuid.UUID) error {
	b, err := s.repo.FindByUsuario(ctx, usuarioID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	s.limpiar(b)
	return s.repo.Update(ctx, b)
}

// EstaBloqueada is a pure read: a user without a lock record is never locked.
func (s *bloqueoService) EstaBloqueada(ctx context.Context, usuarioID uuid.UUID) (*EstadoBloqueo, error) {
	b, err := s.repo.FindByUsuario(ctx, usuarioID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &EstadoBloqueo{Bloqueada: false}, nil
	}
	if err != nil {
		return nil, err
	}
	return &EstadoBloqueo{Bloqueada: b.Bloqueada, FechaBloqueo: b.FechaBloqueo, Intentos: b.IntentosFallidos}, nil
}

// VerificarCodigo validates a submitted unlock code. On success the account
// unlocks, the counter resets and the code is marked used — a code is valid
// at most once. Returns an *ErrorNegocio for every precondition failure.
func (s *bloqueoService) VerificarCodigo(ctx context.Context, usuario *model.Usuario, codigo string) error {
	b, err := s.repo.FindByUsuario(ctx, usuario.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errNegocio(CodigoNoBloqueada, "La cuenta no esta bloqueada")
	}
	if err != nil {
		return err
	}
	// A spent code outranks the lock check: re-submitting the code that
	// already unlocked the account reports CODE_ALREADY_USED, not NOT_LOCKED.
	if b.CodigoDesbloqueo != nil && b.CodigoUsado {
		return errNegocio(CodigoYaUsado, "El codigo ya fue utilizado")
	}
	if !b.Bloqueada || b.CodigoDesbloqueo == nil {
		return errNegocio(CodigoNoBloqueada, "La cuenta no esta bloqueada")
	}
	if b.CodigoExpira == nil || time.Now().After(*b.CodigoExpira) {
		return errNegocio(CodigoExpirado, "El codigo ha expirado; solicite uno nuevo")
	}
	if subtle.ConstantTimeCompare([]byte(*b.CodigoDesbloqueo), []byte(codigo)) != 1 {
		return errNegocio(CodigoIncorrecto, "Codigo incorrecto")
	}

	// Unlock and reset, but keep the spent code on record so a replay is
	// reported as CODE_ALREADY_USED instead of NOT_LOCKED.
	b.IntentosFallidos = 0
	b.Bloqueada = false
	b.FechaBloqueo = nil
	b.CodigoUsado = true
	return s.repo.Update(ctx, b)
}

// ReenviarCodigo regenerates the code and expiry and re-sends the email.
// The previous code becomes invalid because comparison is against the stored
// value. Unlike the auto-lock path, a dispatch failure here propagates: the
// user explicitly asked for the email.
func (s *bloqueoService) ReenviarCodigo(ctx context.Context, usuario *model.Usuario) error {
	b, err := s.repo.FindByUsuario(ctx, usuario.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errNegocio(CodigoNoBloqueada, "La cuenta no esta bloqueada")
	}
	if err != nil {
		return err
	}
	if !b.Bloqueada {
		return errNegocio(CodigoNoBloqueada, "La cuenta no esta bloqueada")
	}

	s.emitirCodigo(b)
	if err := s.repo.Update(ctx, b); err != nil {
		return err
	}
	return s.enviarCodigo(ctx, usuario, *b.CodigoDesbloqueo)
}

// DesbloquearAdmin unconditionally clears the lock state. Authorization
// (administrador only) is enforced by the caller.
func (s *bloqueoService) DesbloquearAdmin(ctx context.Context, usuarioID uuid.UUID) error {
	b, err := s.repo.FindByUsuario(ctx, usuarioID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	s.limpiar(b)
	return s.repo.Update(ctx, b)
}

func (s *bloqueoService) emitirCodigo(b *model.BloqueoCuenta) {
	codigo := generarCodigo()
	expira := time.Now().Add(time.Duration(s.cfg.CodigoDesbloqueoTTL) * time.Minute)
	b.CodigoDesbloqueo = &codigo
	b.CodigoExpira = &expira
	b.CodigoUsado = false
}

func (s *bloqueoService) limpiar(b *model.BloqueoCuenta) {
	b.IntentosFallidos = 0
	b.Bloqueada = false
	b.FechaBloqueo = nil
	b.CodigoDesbloqueo = nil
	b.CodigoExpira = nil
	b.CodigoUsado = false
}

func (s *bloqueoService) enviarCodigo(ctx context.Context, usuario *model.Usuario, codigo string) error {
	if usuario.Email == nil {
		return fmt.Errorf("usuario %s no tiene email registrado", usuario.Username)
	}
	return s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
		Tipo:    worker.EmailCodigoDesbloqueo,
		ToEmail: *usuario.Email,
		Nombre:  usuario.Nombre,
		Idioma:  usuario.Idioma,
		Codigo:  codigo,
	})
}

// generarCodigo returns a random 6-digit numeric code, zero padded.
func generarCodigo() string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		// crypto/rand only fails if the OS entropy source is broken
		panic(err)
	}
	return fmt.Sprintf("%06d", n.Int64())
}

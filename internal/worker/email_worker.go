package worker

// email_worker.go
// Processes email jobs from QueueEmail: account unlock codes and payment
// receipts (with PDF attachment). All SMTP traffic goes through the
// circuit breaker so a downed mail server does not stall the pool.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/infra"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Email job types.
const (
	EmailCodigoDesbloqueo = "codigo_desbloqueo"
	EmailReciboPago       = "recibo_pago"
)

// EmailJobPayload is the job envelope sent to QueueEmail.
// Codigo is only set for unlock-code jobs, PagoID only for receipts.
type EmailJobPayload struct {
	Tipo    string `json:"tipo"`
	ToEmail string `json:"to_email"`
	Nombre  string `json:"nombre"`
	Idioma  string `json:"idioma,omitempty"`
	Codigo  string `json:"codigo,omitempty"`
	PagoID  string `json:"pago_id,omitempty"`
}

type EmailWorker struct {
	mailer         *infra.Mailer
	cb             *infra.CircuitBreaker
	pagoRepo       repository.PagoRepository
	pdfStoragePath string
}

func NewEmailWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker, pagoRepo repository.PagoRepository, pdfStoragePath string) *EmailWorker {
	return &EmailWorker{mailer: mailer, cb: cb, pagoRepo: pagoRepo, pdfStoragePath: pdfStoragePath}
}

// Process handles a single email job. A non-nil error tells the pool to
// retry or move the job to the DLQ.
func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) error {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return nil // malformed jobs are not retryable
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty to_email — skipping")
		return nil
	}

	switch payload.Tipo {
	case EmailCodigoDesbloqueo:
		return w.enviarCodigo(payload)
	case EmailReciboPago:
		return w.enviarRecibo(ctx, payload)
	default:
		log.Error().Str("tipo", payload.Tipo).Msg("email_worker: unknown email type")
		return nil
	}
}

func (w *EmailWorker) enviarCodigo(payload EmailJobPayload) error {
	err := w.cb.Execute(func() error {
		return w.mailer.SendCodigoDesbloqueo(payload.ToEmail, payload.Nombre, payload.Idioma, payload.Codigo)
	})
	if err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: failed to send unlock code")
		return err
	}
	log.Info().Str("to", payload.ToEmail).Msg("email_worker: unlock code sent")
	return nil
}

func (w *EmailWorker) enviarRecibo(ctx context.Context, payload EmailJobPayload) error {
	pagoID, err := uuid.Parse(payload.PagoID)
	if err != nil {
		log.Error().Str("pago_id", payload.PagoID).Msg("email_worker: invalid pago_id")
		return nil
	}
	pago, err := w.pagoRepo.FindByID(ctx, pagoID)
	if err != nil {
		return fmt.Errorf("email_worker: pago %s not found: %w", payload.PagoID, err)
	}

	pdfPath, err := infra.GenerarReciboPDF(pago, w.pdfStoragePath)
	if err != nil {
		log.Warn().Err(err).Str("pago_id", payload.PagoID).Msg("email_worker: PDF generation failed, sending without attachment")
		pdfPath = ""
	}

	err = w.cb.Execute(func() error {
		return w.mailer.SendReciboPago(payload.ToEmail, payload.Nombre, pago, pdfPath)
	})
	if err != nil {
		log.Error().Err(err).Str("to", payload.ToEmail).Msg("email_worker: failed to send receipt")
		return err
	}
	log.Info().Str("to", payload.ToEmail).Str("pago_id", payload.PagoID).Msg("email_worker: receipt sent")
	return nil
}

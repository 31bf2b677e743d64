package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/dto"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/model"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/repository"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/worker"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type PagoService interface {
	RegistrarPago(ctx context.Context, registradoPor uuid.UUID, alumnoID uuid.UUID, req dto.RegistrarPagoRequest) (*dto.PagoResponse, error)
	ConfirmarPago(ctx context.Context, id uuid.UUID) (*dto.PagoResponse, error)
	ObtenerPago(ctx context.Context, id uuid.UUID) (*dto.PagoResponse, error)
	ListarPagos(ctx context.Context, filter dto.PagoFilter) (*dto.PagoListResponse, error)
	HistorialAlumno(ctx context.Context, alumnoID uuid.UUID) ([]dto.PagoResponse, error)
}

type pagoService struct {
	repo       repository.PagoRepository
	alumnoRepo repository.AlumnoRepository
	dispatcher EmailDispatcher
}

func NewPagoService(repo repository.PagoRepository, alumnoRepo repository.AlumnoRepository, dispatcher EmailDispatcher) PagoService {
	return &pagoService{repo: repo, alumnoRepo: alumnoRepo, dispatcher: dispatcher}
}

// RegistrarPago resolves the billing period for a submission, enforces the
// advance-payment precondition and the one-payment-per-period invariant, and
// inserts the row. The duplicate check runs first to produce a friendly
// error; the unique index on (alumno_id, mes, anio) is the backstop for
// concurrent double submits.
func (s *pagoService) RegistrarPago(ctx context.Context, registradoPor uuid.UUID, alumnoID uuid.UUID, req dto.RegistrarPagoRequest) (*dto.PagoResponse, error) {
	alumno, err := s.alumnoRepo.FindByID(ctx, alumnoID)
	if err != nil {
		return nil, fmt.Errorf("alumno no encontrado: %w", err)
	}

	ahora := time.Now()
	fechaPago := ahora
	if req.FechaPago != "" {
		fechaPago, err = time.Parse("2006-01-02", req.FechaPago)
		if err != nil {
			return nil, fmt.Errorf("fecha_pago invalida: %w", err)
		}
	}

	periodo := resolverPeriodo(req.MesCorrespondiente, req.Observaciones, fechaPago, ahora)

	if periodo.Adelantado {
		if err := s.verificarCuotaActual(ctx, alumno.ID, ahora); err != nil {
			return nil, err
		}
	}

	if err := s.verificarDuplicado(ctx, alumno.ID, periodo); err != nil {
		return nil, err
	}

	estado := req.Estado
	if estado == "" {
		estado = "pendiente"
	}

	pago := &model.Pago{
		AlumnoID:           alumno.ID,
		Mes:                periodo.Mes,
		Anio:               periodo.Anio,
		Monto:              req.Monto,
		Metodo:             req.Metodo,
		FechaPago:          fechaPago,
		MesCorrespondiente: req.MesCorrespondiente,
		Adelantado:         periodo.Adelantado,
		Estado:             estado,
		Referencia:         req.Referencia,
		Observaciones:      req.Observaciones,
		RegistradoPorID:    registradoPor,
	}

	if err := s.repo.Create(ctx, pago); err != nil {
		if esViolacionUnicidad(err) {
			// Lost the race against a concurrent submit for the same period.
			return nil, errNegocio(CodigoPeriodoConPago,
				fmt.Sprintf("Ya existe un pago registrado para %s %d", nombreMes(periodo.Mes), periodo.Anio))
		}
		return nil, err
	}

	log.Info().
		Str("pago_id", pago.ID.String()).
		Str("alumno_id", alumno.ID.String()).
		Int("mes", pago.Mes).Int("anio", pago.Anio).
		Bool("adelantado", pago.Adelantado).
		Msg("pago registrado")

	return pagoToResponse(pago, alumno.Nombre), nil
}

// verificarCuotaActual enforces the advance precondition: the current
// calendar month must already be paid and confirmed.
func (s *pagoService) verificarCuotaActual(ctx context.Context, alumnoID uuid.UUID, ahora time.Time) error {
	mes, anio := int(ahora.Month()), ahora.Year()
	actual, err := s.repo.FindByPeriodo(ctx, alumnoID, mes, anio)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && actual.Estado != "confirmado") {
		return errNegocio(CodigoAdelantoSinCuotaActual,
			fmt.Sprintf("Para registrar un pago adelantado, la cuota de %s %d debe estar pagada y confirmada", nombreMes(mes), anio))
	}
	return err
}

// verificarDuplicado rejects a second payment for a period that already has
// one; the error kind depends on how the two payments are classified.
func (s *pagoService) verificarDuplicado(ctx context.Context, alumnoID uuid.UUID, periodo Periodo) error {
	existente, err := s.repo.FindByPeriodo(ctx, alumnoID, periodo.Mes, periodo.Anio)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	etiqueta := fmt.Sprintf("%s %d", nombreMes(periodo.Mes), periodo.Anio)
	switch {
	case periodo.Adelantado && existente.Adelantado && existente.Estado == "confirmado":
		return errNegocio(CodigoAdelantoYaConfirmado,
			"Ya existe un pago adelantado confirmado para "+etiqueta)
	case periodo.Adelantado && existente.Adelantado:
		return errNegocio(CodigoAdelantoYaPendiente,
			"Ya existe un pago adelantado pendiente para "+etiqueta)
	case periodo.Adelantado:
		return errNegocio(CodigoPeriodoPagadoNormal,
			"El periodo "+etiqueta+" ya fue pagado de forma ordinaria")
	default:
		return errNegocio(CodigoPeriodoConPago,
			"Ya existe un pago registrado para "+etiqueta)
	}
}

// ConfirmarPago transitions pendiente → confirmado and mails a receipt to the
// student (best effort).
func (s *pagoService) ConfirmarPago(ctx context.Context, id uuid.UUID) (*dto.PagoResponse, error) {
	pago, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("pago no encontrado")
	}
	if pago.Estado == "confirmado" {
		return nil, errors.New("el pago ya esta confirmado")
	}
	if err := s.repo.UpdateEstado(ctx, id, "confirmado"); err != nil {
		return nil, err
	}
	pago.Estado = "confirmado"

	if pago.Alumno.Email != nil {
		if err := s.dispatcher.EnqueueEmail(ctx, worker.EmailJobPayload{
			Tipo:    worker.EmailReciboPago,
			ToEmail: *pago.Alumno.Email,
			Nombre:  pago.Alumno.Nombre,
			PagoID:  pago.ID.String(),
		}); err != nil {
			log.Error().Err(err).Str("pago_id", pago.ID.String()).Msg("pago: fallo el encolado del recibo")
		}
	}

	return pagoToResponse(pago, pago.Alumno.Nombre), nil
}

func (s *pagoService) ObtenerPago(ctx context.Context, id uuid.UUID) (*dto.PagoResponse, error) {
	pago, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.New("pago no encontrado")
	}
	return pagoToResponse(pago, pago.Alumno.Nombre), nil
}

func (s *pagoService) ListarPagos(ctx context.Context, filter dto.PagoFilter) (*dto.PagoListResponse, error) {
	pagos, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	resp := &dto.PagoListResponse{
		Data:  make([]dto.PagoResponse, len(pagos)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range pagos {
		resp.Data[i] = *pagoToResponse(&pagos[i], pagos[i].Alumno.Nombre)
	}
	return resp, nil
}

func (s *pagoService) HistorialAlumno(ctx context.Context, alumnoID uuid.UUID) ([]dto.PagoResponse, error) {
	pagos, err := s.repo.ListByAlumno(ctx, alumnoID)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.PagoResponse, len(pagos))
	for i := range pagos {
		resp[i] = *pagoToResponse(&pagos[i], "")
	}
	return resp, nil
}

func pagoToResponse(p *model.Pago, alumno string) *dto.PagoResponse {
	return &dto.PagoResponse{
		ID:                 p.ID.String(),
		AlumnoID:           p.AlumnoID.String(),
		Alumno:             alumno,
		Mes:                p.Mes,
		Anio:               p.Anio,
		Monto:              p.Monto,
		Metodo:             p.Metodo,
		FechaPago:          p.FechaPago.Format("2006-01-02"),
		MesCorrespondiente: p.MesCorrespondiente,
		Adelantado:         p.Adelantado,
		Estado:             p.Estado,
		Referencia:         p.Referencia,
		Observaciones:      p.Observaciones,
		CreatedAt:          p.CreatedAt.Format(time.RFC3339),
	}
}

// esViolacionUnicidad detects a unique-constraint violation without binding
// to the driver error type (SQLSTATE 23505 on postgres).
func esViolacionUnicidad(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return err != nil && strings.Contains(err.Error(), "23505")
}

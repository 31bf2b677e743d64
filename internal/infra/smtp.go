package infra

import (
	"fmt"
	"net/smtp"

	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/config"
	"github.com/JoseMiguel2005of/gestion-de-un-dojo-3--sub001/internal/model"

	"github.com/jordan-wright/email"
)

// Mailer wraps SMTP configuration for sending account and billing emails.
// Message bodies are bilingual: the user's idioma field ("es" or "en")
// selects the template.
type Mailer struct {
	host       string
	port       int
	user       string
	password   string
	addr       string
	nombreDojo string
	codigoTTL  int // minutes
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:       cfg.SMTPHost,
		port:       cfg.SMTPPort,
		user:       cfg.SMTPUser,
		password:   cfg.SMTPPassword,
		addr:       fmt.Sprintf("%s:%d", cfg.SMTPHost, cfg.SMTPPort),
		nombreDojo: cfg.NombreDojo,
		codigoTTL:  cfg.CodigoDesbloqueoTTL,
	}
}

// SendCodigoDesbloqueo mails the 6-digit account unlock code.
func (m *Mailer) SendCodigoDesbloqueo(to, nombre, idioma, codigo string) error {
	var subject, body string
	if idioma == "en" {
		subject = fmt.Sprintf("%s — Account unlock code", m.nombreDojo)
		body = fmt.Sprintf(
			"Hello %s,\n\nYour account was locked after too many failed login attempts.\n\nYour unlock code is: %s\n\nIt expires in %d minutes and can be used only once.\nIf you did not try to log in, please contact the administrator.",
			nombre, codigo, m.codigoTTL)
	} else {
		subject = fmt.Sprintf("%s — Código de desbloqueo de cuenta", m.nombreDojo)
		body = fmt.Sprintf(
			"Hola %s,\n\nTu cuenta fue bloqueada por demasiados intentos fallidos de inicio de sesión.\n\nTu código de desbloqueo es: %s\n\nVence en %d minutos y puede usarse una sola vez.\nSi no intentaste iniciar sesión, contactá al administrador.",
			nombre, codigo, m.codigoTTL)
	}
	return m.send(to, subject, body, "")
}

// SendReciboPago mails the payment receipt, attaching the PDF when available.
func (m *Mailer) SendReciboPago(to, nombre string, pago *model.Pago, pdfPath string) error {
	subject := fmt.Sprintf("%s — Recibo de pago %02d/%d", m.nombreDojo, pago.Mes, pago.Anio)
	body := fmt.Sprintf(
		"Hola %s,\n\nTu pago del período %02d/%d fue confirmado.\nMonto: $%s\nMétodo: %s\n\n¡Gracias!",
		nombre, pago.Mes, pago.Anio, pago.Monto.StringFixed(2), pago.Metodo)
	return m.send(to, subject, body, pdfPath)
}

func (m *Mailer) send(to, subject, body, attachPath string) error {
	e := email.NewEmail()
	e.From = m.user
	e.To = []string{to}
	e.Subject = subject
	e.Text = []byte(body)

	if attachPath != "" {
		if _, err := e.AttachFile(attachPath); err != nil {
			return fmt.Errorf("mailer: attach PDF: %w", err)
		}
	}

	auth := smtp.PlainAuth("", m.user, m.password, m.host)
	return e.Send(m.addr, auth)
}

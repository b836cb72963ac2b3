package email

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/clinicore/clinic-api/internal/config"
)

// Service sends clinic notifications. Sending is best effort: scheduling
// must succeed even when the mail relay is down, so callers treat a send
// failure as a log line, not an error.
type Service interface {
	SendAppointmentScheduled(to, patientName string, startTime time.Time, appointmentType string) error
	SendAppointmentCancelled(to, patientName string, startTime time.Time, reason string) error
}

type mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewService builds a gomail-backed sender. With no SMTP host configured it
// returns a no-op sender, which keeps local development mail-free.
func NewService(cfg config.SMTPConfig) Service {
	if cfg.Host == "" {
		return &noopMailer{}
	}
	return &mailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (m *mailer) SendAppointmentScheduled(to, patientName string, startTime time.Time, appointmentType string) error {
	subject := "Appointment scheduled"
	body := fmt.Sprintf(
		"Dear %s,\n\nYour %s appointment has been scheduled for %s.\n\nPlease arrive 10 minutes early.",
		patientName, appointmentType, startTime.Format("Monday, 2 January 2006 at 15:04"),
	)
	return m.send(to, subject, body)
}

func (m *mailer) SendAppointmentCancelled(to, patientName string, startTime time.Time, reason string) error {
	subject := "Appointment cancelled"
	body := fmt.Sprintf(
		"Dear %s,\n\nYour appointment on %s has been cancelled.\n\nReason: %s",
		patientName, startTime.Format("Monday, 2 January 2006 at 15:04"), reason,
	)
	return m.send(to, subject, body)
}

func (m *mailer) send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		log.Warn().Err(err).Str("to", to).Str("subject", subject).Msg("failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

type noopMailer struct{}

func (n *noopMailer) SendAppointmentScheduled(string, string, time.Time, string) error { return nil }
func (n *noopMailer) SendAppointmentCancelled(string, string, time.Time, string) error { return nil }

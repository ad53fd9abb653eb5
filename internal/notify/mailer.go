package notify

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"text/template"

	"geo-tours/internal/pkg/config"
	"geo-tours/internal/pkg/errs"
)

const (
	TemplateBookingReceived  = "booking_received"
	TemplateBookingApproved  = "booking_approved"
	TemplateBookingRejected  = "booking_rejected"
	TemplateBookingCancelled = "booking_cancelled"
	TemplateDateChangeResult = "date_change_result"
	TemplateHotelRequest     = "hotel_request"
)

type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// NewMailer returns an SMTP-backed mailer when a relay host is
// configured, otherwise a log-only stand-in.
func NewMailer(cfg config.MailConfig) Mailer {
	if cfg.Host == "" {
		slog.Warn("MAIL_HOST is empty, outbound mail will only be logged")
		return &LogMailer{}
	}
	return &SMTPMailer{cfg: cfg}
}

var mailBodies = template.Must(template.New("mail").Parse(`
{{define "booking_received"}}Subject: We received your booking

Hello {{.customerName}},

Your booking {{.bookingId}} has been received and is awaiting review.
We will contact you once it is confirmed.
{{end}}
{{define "booking_approved"}}Subject: Your booking is confirmed

Hello {{.customerName}},

Your booking {{.bookingId}} has been approved.
Outstanding balance: {{printf "%.2f" .balanceDue}} {{.currency}}.
{{end}}
{{define "booking_rejected"}}Subject: Your booking could not be confirmed

Hello {{.customerName}},

Unfortunately your booking {{.bookingId}} was rejected.
{{with .adminNote}}Reason: {{.}}{{end}}
{{end}}
{{define "booking_cancelled"}}Subject: Booking cancelled

Hello {{.customerName}},

Your booking {{.bookingId}} has been cancelled.
{{end}}
{{define "date_change_result"}}Subject: Date change request {{.decision}}

Hello {{.customerName}},

Your request to move booking {{.bookingId}} to {{.requestedDate}} was {{.decision}}.
{{with .adminNote}}Note: {{.}}{{end}}
{{end}}
{{define "hotel_request"}}Subject: Accommodation request

Hello,

We would like to book the following stay for our customer:
Hotel: {{.hotelName}}
Check-in: {{.checkIn}}
Check-out: {{.checkOut}}
{{with .notes}}Notes: {{.}}{{end}}

Please confirm availability.
{{end}}`))

func renderBody(email Email) ([]byte, error) {
	var buf bytes.Buffer
	if err := mailBodies.ExecuteTemplate(&buf, email.Template, email.Payload); err != nil {
		return nil, errs.Wrap(err, "failed to render mail template")
	}
	return buf.Bytes(), nil
}

type SMTPMailer struct {
	cfg config.MailConfig
}

func (m *SMTPMailer) Send(_ context.Context, email Email) error {
	body, err := renderBody(email)
	if err != nil {
		return err
	}

	msg := fmt.Appendf(nil, "From: %s\r\nTo: %s\r\n", m.cfg.From, email.Recipient)
	msg = append(msg, bytes.TrimLeft(body, "\n")...)

	addr := m.cfg.Host + ":" + m.cfg.Port
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{email.Recipient}, msg); err != nil {
		return errs.Wrap(err, "failed to send mail via SMTP relay")
	}
	return nil
}

// LogMailer writes rendered mail to the log instead of the wire.
type LogMailer struct{}

func (m *LogMailer) Send(_ context.Context, email Email) error {
	body, err := renderBody(email)
	if err != nil {
		return err
	}
	slog.Info("outbound mail (log-only)",
		"template", email.Template,
		"recipient", email.Recipient,
		"body", string(bytes.TrimSpace(body)),
	)
	return nil
}

package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/jordan-wright/email"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/example/holdbot/internal/domain/catalog"
)

var tracer = otel.Tracer("holdbot/notify")

const ErrorSubject = "Library Script Error Alert"

type SMTPConfig struct {
	Server   string
	Port     int
	Sender   string
	Password string
	Receiver string
}

func (c SMTPConfig) addr() string {
	return fmt.Sprintf("%s:%d", c.Server, c.Port)
}

// Email delivers operator notifications over SMTP.
type Email struct {
	cfg SMTPConfig
	log *slog.Logger
	// send is swapped out in tests.
	send func(m *email.Email, addr string, a smtp.Auth) error
}

func NewEmail(cfg SMTPConfig, log *slog.Logger) *Email {
	if log == nil {
		log = slog.Default()
	}
	return &Email{
		cfg: cfg,
		log: log,
		send: func(m *email.Email, addr string, a smtp.Auth) error {
			return m.Send(addr, a)
		},
	}
}

func SuccessSubject(action catalog.Action) string {
	return fmt.Sprintf("Library Script: Book %s Successful", action)
}

func SuccessBody(action catalog.Action, title string) string {
	return fmt.Sprintf("Good news! The Library Script has successfully %s for '%s'.",
		strings.ToLower(string(action)), title)
}

func ErrorBody(message, stack string) string {
	return fmt.Sprintf("An error occurred in the Library Script:\n\nError: %s\n\nStack Trace:\n%s", message, stack)
}

func (e *Email) NotifySuccess(ctx context.Context, action catalog.Action, title string) error {
	return e.deliver(ctx, SuccessSubject(action), SuccessBody(action, title))
}

func (e *Email) NotifyError(ctx context.Context, message, stack string) error {
	return e.deliver(ctx, ErrorSubject, ErrorBody(message, stack))
}

func (e *Email) deliver(ctx context.Context, subject, body string) error {
	ctx, span := tracer.Start(ctx, "notify.deliver")
	defer span.End()

	if e.cfg.Server == "" || e.cfg.Sender == "" || e.cfg.Receiver == "" {
		return errors.New("email notifier is not configured")
	}

	mail := email.NewEmail()
	mail.From = e.cfg.Sender
	mail.To = []string{e.cfg.Receiver}
	mail.Subject = subject
	mail.Text = []byte(body)

	done := make(chan error, 1)
	go func() {
		err := e.send(mail, e.cfg.addr(), smtp.PlainAuth("", e.cfg.Sender, e.cfg.Password, e.cfg.Server))
		if err != nil && strings.Contains(err.Error(), "server doesn't support AUTH") {
			err = e.send(mail, e.cfg.addr(), nil)
		}
		done <- err
	}()

	var err error
	select {
	case <-ctx.Done():
		err = ctx.Err()
	case err = <-done:
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to send email")
		return fmt.Errorf("send %q: %w", subject, err)
	}
	e.log.Info("email sent", "subject", subject, "to", e.cfg.Receiver)
	return nil
}

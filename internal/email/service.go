// Package email sends transactional mail: the welcome message on signup and
// booking confirmations driven by outbox events.
package email

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"

	"github.com/MrsLondon/vivahub-api/config"
	"github.com/MrsLondon/vivahub-api/internal/model"
)

type Service interface {
	SendWelcome(ctx context.Context, to string, name string) error
	SendBookingConfirmation(ctx context.Context, payload *model.BookingEventPayload) error
	SendBookingCancellation(ctx context.Context, payload *model.BookingEventPayload) error
	SendPasswordReset(ctx context.Context, to string, name string, token string) error
	SendCustom(ctx context.Context, to string, subject string, body string) error
}

type smtpService struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPService(cfg config.SMTPConfig) Service {
	return &smtpService{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (s *smtpService) SendWelcome(ctx context.Context, to string, name string) error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Welcome to VivaHub. Browse salons, add services to your cart and book them in one go.</p>",
		name,
	)
	return s.send(ctx, to, "Welcome to VivaHub", body)
}

func (s *smtpService) SendBookingConfirmation(ctx context.Context, payload *model.BookingEventPayload) error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your booking for <b>%s</b> at <b>%s</b> is confirmed for %s.</p>",
		payload.CustomerName,
		payload.ServiceName,
		payload.SalonName,
		payload.StartTime.Format(time.RFC1123),
	)
	return s.send(ctx, payload.CustomerEmail, "Booking confirmed", body)
}

func (s *smtpService) SendBookingCancellation(ctx context.Context, payload *model.BookingEventPayload) error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Your booking for <b>%s</b> at <b>%s</b> on %s has been cancelled.</p>",
		payload.CustomerName,
		payload.ServiceName,
		payload.SalonName,
		payload.StartTime.Format(time.RFC1123),
	)
	return s.send(ctx, payload.CustomerEmail, "Booking cancelled", body)
}

func (s *smtpService) SendPasswordReset(ctx context.Context, to string, name string, token string) error {
	body := fmt.Sprintf(
		"<p>Hi %s,</p><p>Use this code to reset your VivaHub password: <b>%s</b></p><p>It expires in one hour. If you did not ask for a reset, ignore this email.</p>",
		name,
		token,
	)
	return s.send(ctx, to, "Reset your password", body)
}

func (s *smtpService) SendCustom(ctx context.Context, to string, subject string, body string) error {
	return s.send(ctx, to, subject, body)
}

func (s *smtpService) send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

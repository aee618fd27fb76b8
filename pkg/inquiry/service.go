package inquiry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/alzentdigital/website/pkg/dispatch"
	"github.com/alzentdigital/website/pkg/email"
	"github.com/alzentdigital/website/pkg/email/templates"
	"github.com/alzentdigital/website/pkg/logger"
)

// Email tags, also used by DevSender to name the files.
const (
	TagNotification = "notification"
	TagConfirmation = "confirmation"
)

// Localizer is the part of the translator the service needs.
type Localizer interface {
	T(lang, key string, args ...string) string
	Td(lang, key, defaultValue string, args ...string) string
}

// Result reports which emails went out.
type Result struct {
	NotificationSent bool
	ConfirmationSent bool
}

// Service turns a dispatch payload into the team notification and the
// requester's confirmation email.
type Service struct {
	sender    email.EmailSender
	tr        Localizer
	recipient string
	now       func() time.Time
	log       *slog.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithRecipient sets the inbox receiving notifications.
func WithRecipient(addr string) ServiceOption {
	return func(s *Service) {
		if addr != "" {
			s.recipient = addr
		}
	}
}

// WithClock replaces time.Now, used when the payload has no timestamp.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// DefaultRecipient receives notifications unless WithRecipient says otherwise.
const DefaultRecipient = "info@alzentdigital.com"

// NewService returns a Service sending through sender.
func NewService(sender email.EmailSender, tr Localizer, opts ...ServiceOption) (*Service, error) {
	if sender == nil {
		return nil, fmt.Errorf("%w: email sender is required", ErrInvalidConfig)
	}
	if tr == nil {
		return nil, fmt.Errorf("%w: localizer is required", ErrInvalidConfig)
	}

	s := &Service{
		sender:    sender,
		tr:        tr,
		recipient: DefaultRecipient,
		now:       time.Now,
		log:       logger.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if !emailRegex.MatchString(s.recipient) {
		return nil, fmt.Errorf("%w: recipient %q is not an email address", ErrInvalidConfig, s.recipient)
	}
	return s, nil
}

// Handle validates p and sends both emails, the notification first. A
// ValidationError means nothing was sent. When the confirmation fails the
// result still reports the notification as sent.
func (s *Service) Handle(ctx context.Context, p dispatch.Payload) (Result, error) {
	req, err := Normalize(p, s.now())
	if err != nil {
		return Result{}, err
	}

	log := s.log.With(
		logger.FormID(req.FormID),
		logger.Language(req.Language),
		logger.Component("inquiry"),
	)
	service := s.serviceName(req)

	notification, err := templates.Render(ctx, templates.Notification(s.notificationData(req, service)))
	if err != nil {
		return Result{}, errors.Join(ErrNotificationEmail, err)
	}
	if err := s.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   s.recipient,
		Subject:  s.tr.T(req.Language, "mail.subject.notification", "service", service),
		BodyHTML: notification,
		Tag:      TagNotification,
		ReplyTo:  req.Email,
	}); err != nil {
		log.ErrorContext(ctx, "notification email failed", logger.Error(err))
		return Result{}, errors.Join(ErrNotificationEmail, err)
	}
	log.InfoContext(ctx, "notification email sent", logger.Event(TagNotification))
	res := Result{NotificationSent: true}

	confirmation, err := templates.Render(ctx, templates.Confirmation(s.confirmationData(req, service)))
	if err != nil {
		return res, errors.Join(ErrConfirmationEmail, err)
	}
	if err := s.sender.SendEmail(ctx, email.SendEmailParams{
		SendTo:   req.Email,
		Subject:  s.tr.T(req.Language, "mail.subject.confirmation"),
		BodyHTML: confirmation,
		Tag:      TagConfirmation,
	}); err != nil {
		log.ErrorContext(ctx, "confirmation email failed", logger.Error(err))
		return res, errors.Join(ErrConfirmationEmail, err)
	}
	log.InfoContext(ctx, "confirmation email sent", logger.Event(TagConfirmation))
	res.ConfirmationSent = true
	return res, nil
}

// serviceName prefers the catalogue name for the form, then the name the
// client sent, then the form id.
func (s *Service) serviceName(req Request) string {
	fallback := req.ServiceName
	if fallback == "" {
		fallback = req.FormID
	}
	return s.tr.Td(req.Language, "mail.services."+req.FormID, fallback)
}

func (s *Service) notificationData(req Request, service string) templates.NotificationData {
	label := func(key string) string {
		return s.tr.T(req.Language, "mail.notification."+key)
	}

	rows := []templates.Row{
		{Label: label("service"), Value: service},
		{Label: label("entity"), Value: orNotAvailable(req.EntityName)},
		{Label: label("email"), Value: orNotAvailable(req.Email)},
	}
	if req.Amount != nil {
		rows = append(rows, templates.Row{Label: label("amount"), Value: email.FormatAmount(req.Amount)})
	}
	rows = append(rows,
		templates.Row{Label: label("submitted_at"), Value: email.FormatTimestamp(req.Timestamp, req.Language)},
		templates.Row{Label: label("language"), Value: strings.ToUpper(req.Language)},
		templates.Row{Label: label("form"), Value: req.FormID},
	)

	return templates.NotificationData{
		Lang:  req.Language,
		Title: label("title"),
		Rows:  rows,
	}
}

func (s *Service) confirmationData(req Request, service string) templates.ConfirmationData {
	t := func(key string, args ...string) string {
		return s.tr.T(req.Language, "mail.confirmation."+key, args...)
	}
	return templates.ConfirmationData{
		Lang:      req.Language,
		Title:     s.tr.T(req.Language, "mail.subject.confirmation"),
		Greeting:  t("greeting", "name", orNotAvailable(req.EntityName)),
		Body:      t("body", "service", service),
		Contact:   t("contact", "email", s.recipient),
		Signature: t("signature"),
	}
}

func orNotAvailable(s string) string {
	if s == "" {
		return email.NotAvailable
	}
	return s
}

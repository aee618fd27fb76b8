package inquiry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/alzentdigital/website/pkg/dispatch"
	"github.com/alzentdigital/website/pkg/email"
	"github.com/alzentdigital/website/pkg/i18n"
	"github.com/alzentdigital/website/pkg/inquiry"
)

type senderMock struct {
	mock.Mock
}

func (m *senderMock) SendEmail(ctx context.Context, p email.SendEmailParams) error {
	return m.Called(ctx, p).Error(0)
}

func byTag(tag string) any {
	return mock.MatchedBy(func(p email.SendEmailParams) bool { return p.Tag == tag })
}

func newService(t *testing.T, sender email.EmailSender, opts ...inquiry.ServiceOption) *inquiry.Service {
	t.Helper()
	tr, err := i18n.NewDefaultTranslator(context.Background())
	require.NoError(t, err)
	svc, err := inquiry.NewService(sender, tr, opts...)
	require.NoError(t, err)
	return svc
}

func otcPayload() dispatch.Payload {
	return dispatch.Payload{
		FormID:      "otc",
		ServiceName: "OTC Desk",
		EntityName:  "Acme Corp",
		Email:       "john@example.com",
		Amount:      strPtr("1500"),
		Language:    "en",
		Timestamp:   "2026-05-01T12:00:00.000Z",
	}
}

func sentParams(m *senderMock, tag string) email.SendEmailParams {
	for _, call := range m.Calls {
		if p := call.Arguments.Get(1).(email.SendEmailParams); p.Tag == tag {
			return p
		}
	}
	return email.SendEmailParams{}
}

func TestNewService(t *testing.T) {
	t.Parallel()

	tr, err := i18n.NewDefaultTranslator(context.Background())
	require.NoError(t, err)

	_, err = inquiry.NewService(nil, tr)
	assert.ErrorIs(t, err, inquiry.ErrInvalidConfig)

	_, err = inquiry.NewService(&senderMock{}, nil)
	assert.ErrorIs(t, err, inquiry.ErrInvalidConfig)

	_, err = inquiry.NewService(&senderMock{}, tr, inquiry.WithRecipient("team"))
	assert.ErrorIs(t, err, inquiry.ErrInvalidConfig)
}

func TestService_Handle(t *testing.T) {
	t.Parallel()

	m := &senderMock{}
	m.On("SendEmail", mock.Anything, mock.Anything).Return(nil)
	svc := newService(t, m)

	res, err := svc.Handle(context.Background(), otcPayload())
	require.NoError(t, err)
	assert.Equal(t, inquiry.Result{NotificationSent: true, ConfirmationSent: true}, res)
	m.AssertNumberOfCalls(t, "SendEmail", 2)

	notification := sentParams(m, inquiry.TagNotification)
	assert.Equal(t, inquiry.DefaultRecipient, notification.SendTo)
	assert.Equal(t, "john@example.com", notification.ReplyTo)
	assert.Equal(t, "[ALZENT] New Request: OTC Desk", notification.Subject)
	assert.Contains(t, notification.BodyHTML, "Acme Corp")
	assert.Contains(t, notification.BodyHTML, "$1,500")
	assert.Contains(t, notification.BodyHTML, "5/1/2026, 12:00:00 PM UTC")
	assert.Contains(t, notification.BodyHTML, ">EN<")

	confirmation := sentParams(m, inquiry.TagConfirmation)
	assert.Equal(t, "john@example.com", confirmation.SendTo)
	assert.Equal(t, "[ALZENT] Request Confirmation Received", confirmation.Subject)
	assert.Contains(t, confirmation.BodyHTML, "Dear Acme Corp,")
	assert.Contains(t, confirmation.BodyHTML, "OTC Desk")
	assert.Contains(t, confirmation.BodyHTML, inquiry.DefaultRecipient)
}

func TestService_HandleLocalized(t *testing.T) {
	t.Parallel()

	m := &senderMock{}
	m.On("SendEmail", mock.Anything, mock.Anything).Return(nil)
	svc := newService(t, m, inquiry.WithRecipient("desk@alzentdigital.com"))

	p := otcPayload()
	p.Language = "es"
	p.Amount = nil
	_, err := svc.Handle(context.Background(), p)
	require.NoError(t, err)

	notification := sentParams(m, inquiry.TagNotification)
	assert.Equal(t, "desk@alzentdigital.com", notification.SendTo)
	assert.Equal(t, "[ALZENT] Nueva Solicitud: OTC Desk", notification.Subject)
	assert.NotContains(t, notification.BodyHTML, "$")
	assert.Contains(t, notification.BodyHTML, "1/5/2026, 12:00:00 UTC")

	confirmation := sentParams(m, inquiry.TagConfirmation)
	assert.Equal(t, "[ALZENT] Confirmación de Solicitud Recibida", confirmation.Subject)
	assert.Contains(t, confirmation.BodyHTML, "Estimado/a Acme Corp,")
	assert.Contains(t, confirmation.BodyHTML, "desk@alzentdigital.com")
	assert.Contains(t, confirmation.BodyHTML, `lang="es"`)
}

func TestService_ServiceNameFallback(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		formID      string
		serviceName string
		want        string
	}{
		{"catalogue name wins", "card-request", "Card", "[ALZENT] New Request: ALZENT Card Request"},
		{"client name", "partners", "Partner Program", "[ALZENT] New Request: Partner Program"},
		{"form id", "partners", "", "[ALZENT] New Request: partners"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := &senderMock{}
			m.On("SendEmail", mock.Anything, mock.Anything).Return(nil)
			svc := newService(t, m)

			p := otcPayload()
			p.FormID = tt.formID
			p.ServiceName = tt.serviceName
			_, err := svc.Handle(context.Background(), p)
			require.NoError(t, err)
			assert.Equal(t, tt.want, sentParams(m, inquiry.TagNotification).Subject)
		})
	}
}

func TestService_HandleFailures(t *testing.T) {
	t.Parallel()

	providerErr := errors.Join(email.ErrFailedToSendEmail, errors.New("postmark error: 300"))

	t.Run("validation sends nothing", func(t *testing.T) {
		t.Parallel()

		m := &senderMock{}
		svc := newService(t, m)
		p := otcPayload()
		p.Email = "bad"

		res, err := svc.Handle(context.Background(), p)
		var valErr inquiry.ValidationError
		assert.ErrorAs(t, err, &valErr)
		assert.Equal(t, inquiry.Result{}, res)
		m.AssertNotCalled(t, "SendEmail", mock.Anything, mock.Anything)
	})

	t.Run("notification failure skips confirmation", func(t *testing.T) {
		t.Parallel()

		m := &senderMock{}
		m.On("SendEmail", mock.Anything, byTag(inquiry.TagNotification)).Return(providerErr)
		svc := newService(t, m)

		res, err := svc.Handle(context.Background(), otcPayload())
		assert.ErrorIs(t, err, inquiry.ErrNotificationEmail)
		assert.ErrorIs(t, err, email.ErrFailedToSendEmail)
		assert.Equal(t, inquiry.Result{}, res)
		m.AssertNumberOfCalls(t, "SendEmail", 1)
	})

	t.Run("confirmation failure keeps notification result", func(t *testing.T) {
		t.Parallel()

		m := &senderMock{}
		m.On("SendEmail", mock.Anything, byTag(inquiry.TagNotification)).Return(nil)
		m.On("SendEmail", mock.Anything, byTag(inquiry.TagConfirmation)).Return(providerErr)
		svc := newService(t, m)

		res, err := svc.Handle(context.Background(), otcPayload())
		assert.ErrorIs(t, err, inquiry.ErrConfirmationEmail)
		assert.Equal(t, inquiry.Result{NotificationSent: true}, res)
	})
}

func TestService_DevSenderEndToEnd(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	svc := newService(t, email.NewDevSender(dir), inquiry.WithClock(func() time.Time {
		return time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	}))

	p := otcPayload()
	p.Timestamp = ""
	res, err := svc.Handle(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, res.ConfirmationSent)
}

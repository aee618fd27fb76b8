package email_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alzentdigital/website/pkg/email"
)

func TestSendEmailParams_Validate(t *testing.T) {
	t.Parallel()

	valid := email.SendEmailParams{SendTo: "user@example.com", Subject: "Hi", BodyHTML: "<p>x</p>"}

	tests := []struct {
		name   string
		modify func(*email.SendEmailParams)
		errMsg string
	}{
		{"valid", func(*email.SendEmailParams) {}, ""},
		{"plus addressing", func(p *email.SendEmailParams) { p.SendTo = "test.user+tag@sub.example.com" }, ""},
		{"empty recipient", func(p *email.SendEmailParams) { p.SendTo = "" }, "SendTo is required"},
		{"recipient without domain", func(p *email.SendEmailParams) { p.SendTo = "user@" }, "SendTo must be a valid email address"},
		{"recipient without local part", func(p *email.SendEmailParams) { p.SendTo = "@example.com" }, "SendTo must be a valid email address"},
		{"blank subject", func(p *email.SendEmailParams) { p.Subject = "   " }, "Subject is required"},
		{"blank body", func(p *email.SendEmailParams) { p.BodyHTML = "" }, "BodyHTML is required"},
		{"bad reply-to", func(p *email.SendEmailParams) { p.ReplyTo = "nobody" }, "ReplyTo must be a valid email address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := valid
			tt.modify(&p)
			err := p.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, email.ErrInvalidParams)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestDevSender_SendEmail(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "out")
	now := time.Date(2026, 5, 1, 9, 30, 15, 0, time.UTC)
	sender := email.NewDevSender(dir, email.WithDevClock(func() time.Time { return now }))

	err := sender.SendEmail(context.Background(), email.SendEmailParams{
		SendTo:   "user@example.com",
		Subject:  "[ALZENT] Request Confirmation Received",
		BodyHTML: "<p>Thanks</p>",
		Tag:      "confirmation",
	})
	require.NoError(t, err)

	base := filepath.Join(dir, "2026_05_01_093015_confirmation_user_at_example.com")
	html, err := os.ReadFile(base + ".html")
	require.NoError(t, err)
	assert.Equal(t, "<p>Thanks</p>", string(html))

	raw, err := os.ReadFile(base + ".json")
	require.NoError(t, err)
	var meta map[string]string
	require.NoError(t, json.Unmarshal(raw, &meta))
	assert.Equal(t, "user@example.com", meta["send_to"])
	assert.Equal(t, "confirmation", meta["tag"])
	assert.Equal(t, "2026-05-01T09:30:15Z", meta["timestamp"])
}

func TestDevSender_SubjectAsFilename(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sender := email.NewDevSender(dir)
	require.NoError(t, sender.SendEmail(context.Background(), email.SendEmailParams{
		SendTo:   "a@b.co",
		Subject:  "New Request: OTC Desk!",
		BodyHTML: "<p>x</p>",
	}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Contains(t, e.Name(), "new_request_otc_desk_a_at_b.co")
		assert.False(t, strings.ContainsAny(e.Name(), " :!@"))
	}
}

func TestDevSender_RejectsInvalidParams(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	err := email.NewDevSender(dir).SendEmail(context.Background(), email.SendEmailParams{SendTo: "bad"})
	assert.ErrorIs(t, err, email.ErrInvalidParams)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestNewSender(t *testing.T) {
	t.Parallel()

	dev, err := email.NewSender(email.Config{DevOutputDir: t.TempDir()}, nil)
	require.NoError(t, err)
	assert.IsType(t, &email.DevSender{}, dev)

	pm, err := email.NewSender(email.Config{
		PostmarkServerToken: "server-token",
		SenderEmail:         "info@alzentdigital.com",
	}, nil)
	require.NoError(t, err)
	_, isDev := pm.(*email.DevSender)
	assert.False(t, isDev)
}

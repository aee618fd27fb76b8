package email

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/mrz1836/postmark"
)

type postmarkClient struct {
	client *postmark.Client
	config Config
}

// PostmarkOption tweaks the underlying Postmark client.
type PostmarkOption func(*postmark.Client)

// WithPostmarkHTTPClient replaces the HTTP client used to reach the API.
func WithPostmarkHTTPClient(c *http.Client) PostmarkOption {
	return func(pc *postmark.Client) {
		if c != nil {
			pc.HTTPClient = c
		}
	}
}

// WithPostmarkBaseURL points the client at another API root, such as a test server.
func WithPostmarkBaseURL(url string) PostmarkOption {
	return func(pc *postmark.Client) {
		if url != "" {
			pc.BaseURL = url
		}
	}
}

// NewPostmarkClient creates a Postmark-backed sender. The account token is
// optional; only the server token is needed to send.
func NewPostmarkClient(cfg Config, opts ...PostmarkOption) (EmailSender, error) {
	if cfg.PostmarkServerToken == "" {
		return nil, fmt.Errorf("%w: PostmarkServerToken is required", ErrInvalidConfig)
	}
	if !emailRegex.MatchString(cfg.SenderEmail) {
		return nil, fmt.Errorf("%w: SenderEmail must be a valid email address", ErrInvalidConfig)
	}
	if cfg.SupportEmail != "" && !emailRegex.MatchString(cfg.SupportEmail) {
		return nil, fmt.Errorf("%w: SupportEmail must be a valid email address", ErrInvalidConfig)
	}

	pc := postmark.NewClient(cfg.PostmarkServerToken, cfg.PostmarkAccountToken)
	WithPostmarkBaseURL(cfg.PostmarkBaseURL)(pc)
	for _, opt := range opts {
		opt(pc)
	}
	return &postmarkClient{client: pc, config: cfg}, nil
}

// MustNewPostmarkClient is NewPostmarkClient that panics on invalid config.
func MustNewPostmarkClient(cfg Config, opts ...PostmarkOption) EmailSender {
	client, err := NewPostmarkClient(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return client
}

// SendEmail sends through Postmark's transactional API with open and HTML
// link tracking.
func (c *postmarkClient) SendEmail(ctx context.Context, params SendEmailParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	replyTo := params.ReplyTo
	if replyTo == "" {
		replyTo = c.config.SupportEmail
	}

	resp, err := c.client.SendEmail(ctx, postmark.Email{
		From:       c.config.SenderEmail,
		ReplyTo:    replyTo,
		To:         params.SendTo,
		Subject:    params.Subject,
		Tag:        params.Tag,
		HTMLBody:   params.BodyHTML,
		TrackOpens: true,
		TrackLinks: "HtmlOnly",
	})
	if err != nil {
		return errors.Join(ErrFailedToSendEmail, err)
	}
	if resp.ErrorCode > 0 {
		return errors.Join(
			ErrFailedToSendEmail,
			fmt.Errorf("postmark error: %d - %s", resp.ErrorCode, resp.Message),
		)
	}
	return nil
}

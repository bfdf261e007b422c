package mailer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/sendgrid/rest"
	sendgrid "github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/evstaffing/invoice-service/logger"
	"github.com/evstaffing/invoice-service/secretmanager"
)

const (
	CategoryInvoices         = "invoices"
	CategoryInvoicesReminder = "invoices-reminder"
)

var (
	ErrMissingRecipient = errors.New("email has no recipient")
	ErrSendFailed       = errors.New("sendgrid rejected the message")
)

type SendGridConfig struct {
	APIKey       string `json:"api_key"`
	BaseURL      string `json:"base_url"`
	MailSendPath string `json:"mail_send_path"`

	// <billing@evstaffing.com>
	BillingEmail string `json:"billing_email"`
	BillingName  string `json:"billing_name"`
}

// Email is a rendered HTML message.
type Email struct {
	To         string
	Subject    string
	HTML       string
	ReplyTo    string
	Categories []string
}

//go:generate mockery --name Mailer --output ./mocks
type Mailer interface {
	Send(ctx context.Context, email *Email) error
}

// SendGridMailer sends email through the SendGrid v3 API.
type SendGridMailer struct {
	loggerProvider logger.Provider

	once   sync.Once
	config SendGridConfig
	err    error

	loadConfig func(ctx context.Context) (SendGridConfig, error)
	do         func(rest.Request) (*rest.Response, error)
}

func NewSendGridMailer(loggerProvider logger.Provider) *SendGridMailer {
	return &SendGridMailer{
		loggerProvider: loggerProvider,
		loadConfig:     loadConfigFromSecret,
		do:             sendgrid.MakeRequestRetry,
	}
}

func loadConfigFromSecret(ctx context.Context) (SendGridConfig, error) {
	var c SendGridConfig
	err := secretmanager.AccessSecretJSON(ctx, secretmanager.SecretSendgrid, &c)

	return c, err
}

func (s *SendGridMailer) getConfig(ctx context.Context) (SendGridConfig, error) {
	s.once.Do(func() {
		s.config, s.err = s.loadConfig(ctx)
	})

	return s.config, s.err
}

// Send delivers email from the billing sender. Replies go to ReplyTo when set.
func (s *SendGridMailer) Send(ctx context.Context, email *Email) error {
	if email == nil || email.To == "" {
		return ErrMissingRecipient
	}

	config, err := s.getConfig(ctx)
	if err != nil {
		return err
	}

	r := sendgrid.GetRequest(config.APIKey, config.MailSendPath, config.BaseURL)
	r.Method = http.MethodPost
	r.Body = mail.GetRequestBody(buildMessage(config, email))

	res, err := s.do(r)
	if err != nil {
		return err
	}

	if res.StatusCode >= http.StatusBadRequest {
		s.loggerProvider(ctx).Errorf("sendgrid response %d: %s", res.StatusCode, res.Body)
		return fmt.Errorf("%w: status %d", ErrSendFailed, res.StatusCode)
	}

	return nil
}

func buildMessage(config SendGridConfig, email *Email) *mail.SGMailV3 {
	m := mail.NewV3Mail()
	m.SetFrom(mail.NewEmail(config.BillingName, config.BillingEmail))
	m.Subject = email.Subject
	m.AddContent(mail.NewContent("text/html", email.HTML))

	if email.ReplyTo != "" {
		m.SetReplyTo(mail.NewEmail("", email.ReplyTo))
	}

	enable := false
	m.SetTrackingSettings(&mail.TrackingSettings{SubscriptionTracking: &mail.SubscriptionTrackingSetting{Enable: &enable}})
	m.AddCategories(email.Categories...)

	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail("", email.To))
	m.AddPersonalizations(personalization)

	return m
}

// LogMailer only logs messages. It backs local runs.
type LogMailer struct {
	loggerProvider logger.Provider
}

func NewLogMailer(loggerProvider logger.Provider) *LogMailer {
	return &LogMailer{loggerProvider}
}

func (m *LogMailer) Send(ctx context.Context, email *Email) error {
	if email == nil || email.To == "" {
		return ErrMissingRecipient
	}

	m.loggerProvider(ctx).Infof("not sending %q to %s (reply-to %s)", email.Subject, email.To, email.ReplyTo)

	return nil
}

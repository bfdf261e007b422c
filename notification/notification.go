package notification

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/slack-go/slack"

	"github.com/evstaffing/invoice-service/common"
	"github.com/evstaffing/invoice-service/secretmanager"
)

// Severity represents a notification urgency.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityMedium
	SeverityUrgent

	SeverityInfoColor   = "#4CAF50"
	SeverityMediumColor = "#FDEF19"
	SeverityUrgentColor = "#CC0000"
)

var ErrNoWebhook = errors.New("slack webhook url is not configured")

type slackConfig struct {
	WebhookURL string `json:"webhook_url"`
}

//go:generate mockery --name Alerter --output ./mocks
type Alerter interface {
	Alert(ctx context.Context, severity Severity, title string, data []string) error
}

// Notification posts alerts to the billing Slack channel.
type Notification struct {
	timeFunc func() int64
	post     func(ctx context.Context, url string, msg *slack.WebhookMessage) error

	once       sync.Once
	webhookURL string
	err        error
	loadURL    func(ctx context.Context) (string, error)
}

// NewNotification returns a new instance of the notification service.
func NewNotification() *Notification {
	return &Notification{
		timeFunc: func() int64 { return time.Now().Unix() },
		post:     slack.PostWebhookContext,
		loadURL: func(ctx context.Context) (string, error) {
			var c slackConfig
			if err := secretmanager.AccessSecretJSON(ctx, secretmanager.SecretSlack, &c); err != nil {
				return "", err
			}

			return c.WebhookURL, nil
		},
	}
}

// Alert sends one or more markdown paragraphs to Slack, coloured by severity.
func (n *Notification) Alert(ctx context.Context, severity Severity, title string, data []string) error {
	n.once.Do(func() {
		n.webhookURL, n.err = n.loadURL(ctx)
	})

	if n.err != nil {
		return n.err
	}

	if n.webhookURL == "" {
		return ErrNoWebhook
	}

	return n.post(ctx, n.webhookURL, n.assembleSlack(title, data, severity))
}

func (n *Notification) assembleSlack(title string, data []string, severity Severity) *slack.WebhookMessage {
	fields := []slack.AttachmentField{
		{
			Title: "Environment",
			Value: common.ProjectID,
			Short: true,
		},
	}

	for _, d := range data {
		fields = append(fields, slack.AttachmentField{Value: d})
	}

	return &slack.WebhookMessage{
		Attachments: []slack.Attachment{
			{
				Title:      title,
				Color:      severityColor(severity),
				Fields:     fields,
				MarkdownIn: []string{"fields"},
				Ts:         json.Number(strconv.FormatInt(n.timeFunc(), 10)),
			},
		},
	}
}

func severityColor(severity Severity) string {
	switch severity {
	case SeverityMedium:
		return SeverityMediumColor
	case SeverityUrgent:
		return SeverityUrgentColor
	default:
		return SeverityInfoColor
	}
}

// RenderHTML renders markdown paragraphs into a single HTML body. Raw HTML in
// the markdown is dropped, so caller-supplied text cannot inject markup.
func RenderHTML(data []string) string {
	var b strings.Builder

	for _, d := range data {
		renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank | html.SkipHTML})
		b.Write(markdown.ToHTML([]byte(d), nil, renderer))
	}

	return b.String()
}

package service

import (
	"context"
	"encoding/json"

	"cloud.google.com/go/pubsub"

	"github.com/evstaffing/invoice-service/framework/connection"
	"github.com/evstaffing/invoice-service/invoicing/domain"
)

const invoiceEventsTopic = "invoice-events"

//go:generate mockery --name EventPublisher --output ./mocks
type EventPublisher interface {
	Publish(ctx context.Context, event *domain.InvoiceEvent) error
}

// PubsubPublisher publishes invoice lifecycle events to Pub/Sub.
type PubsubPublisher struct {
	pubsubClientFun connection.PubsubFromContextFun
	topicID         string
}

func NewPubsubPublisher(pubsubClientFun connection.PubsubFromContextFun) *PubsubPublisher {
	return &PubsubPublisher{
		pubsubClientFun: pubsubClientFun,
		topicID:         invoiceEventsTopic,
	}
}

func (p *PubsubPublisher) Publish(ctx context.Context, event *domain.InvoiceEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	topic := p.pubsubClientFun(ctx).Topic(p.topicID)

	result := topic.Publish(ctx, &pubsub.Message{
		Data: data,
		Attributes: map[string]string{
			"type":      string(event.Type),
			"invoiceId": event.InvoiceID,
		},
	})

	_, err = result.Get(ctx)

	return err
}

// publish is best effort: the invoice write has already committed.
func (s *InvoiceService) publish(ctx context.Context, t domain.EventType, invoice *domain.Invoice) {
	if s.publisher == nil {
		return
	}

	if err := s.publisher.Publish(ctx, domain.NewInvoiceEvent(t, invoice)); err != nil {
		s.loggerProvider(ctx).Warningf("failed to publish %s for invoice %s: %s", t, invoice.ID, err)
	}
}

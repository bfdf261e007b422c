package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/webhook"

	"github.com/evstaffing/invoice-service/common"
	"github.com/evstaffing/invoice-service/invoicing/domain"
	invoicingService "github.com/evstaffing/invoice-service/invoicing/service"
	"github.com/evstaffing/invoice-service/logger"
	"github.com/evstaffing/invoice-service/notification"
)

const (
	eventCheckoutSessionCompleted          = "checkout.session.completed"
	eventCheckoutSessionAsyncPaymentOK     = "checkout.session.async_payment_succeeded"
	eventCheckoutSessionAsyncPaymentFailed = "checkout.session.async_payment_failed"
	eventPaymentIntentFailed               = "payment_intent.payment_failed"
	eventChargeRefunded                    = "charge.refunded"
)

var ErrMissingInvoiceID = errors.New("stripe object has no invoice_id metadata")

// PaymentRecorder applies gateway payments to invoices.
//
//go:generate mockery --name PaymentRecorder --output ./mocks
type PaymentRecorder interface {
	RecordPayment(ctx context.Context, invoiceID, eventID, chargeID string, amount decimal.Decimal) (*domain.Invoice, error)
	RecordRefund(ctx context.Context, invoiceID, eventID, chargeID string, chargeAmountPaid decimal.Decimal) (*domain.Invoice, error)
}

type StripeWebhookService struct {
	loggerProvider logger.Provider
	webhookSignKey string
	payments       PaymentRecorder
	alerter        notification.Alerter
}

func NewStripeWebhookService(loggerProvider logger.Provider, stripeClient *Client, payments PaymentRecorder, alerter notification.Alerter) *StripeWebhookService {
	return &StripeWebhookService{
		loggerProvider: loggerProvider,
		webhookSignKey: stripeClient.webhookSignKey,
		payments:       payments,
		alerter:        alerter,
	}
}

func (s *StripeWebhookService) constructWebhookEvent(body []byte, signature string, apiVersion string) (*stripe.Event, error) {
	if apiVersion == stripe.APIVersion {
		event, err := webhook.ConstructEvent(body, signature, s.webhookSignKey)
		if err != nil {
			return nil, err
		}

		return &event, nil
	}

	event, err := webhook.ConstructEventWithOptions(body, signature, s.webhookSignKey, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, err
	}

	return &event, nil
}

// HandleEvent verifies and dispatches a webhook delivery. A nil return acks the
// event; errors make Stripe retry, so they are reserved for transient failures.
func (s *StripeWebhookService) HandleEvent(ctx context.Context, body []byte, signature string, apiVersion string) error {
	l := s.loggerProvider(ctx)

	event, err := s.constructWebhookEvent(body, signature, apiVersion)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSignature, err)
	}

	l.SetLabels(map[string]string{
		"eventId":         event.ID,
		"eventType":       event.Type,
		"eventApiVersion": event.APIVersion,
	})

	switch event.Type {
	case eventCheckoutSessionCompleted, eventCheckoutSessionAsyncPaymentOK:
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return err
		}

		return s.handleCheckoutSessionPaid(ctx, event.ID, &session)
	case eventCheckoutSessionAsyncPaymentFailed:
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return err
		}

		s.alertPaymentFailed(ctx, invoiceIDFromSession(&session), session.AmountTotal, "asynchronous payment failed")

		return nil
	case eventPaymentIntentFailed:
		var paymentIntent stripe.PaymentIntent
		if err := json.Unmarshal(event.Data.Raw, &paymentIntent); err != nil {
			return err
		}

		reason := "payment failed"
		if paymentIntent.LastPaymentError != nil && paymentIntent.LastPaymentError.Msg != "" {
			reason = paymentIntent.LastPaymentError.Msg
		}

		s.alertPaymentFailed(ctx, paymentIntent.Metadata[MetadataInvoiceID], paymentIntent.Amount, reason)

		return nil
	case eventChargeRefunded:
		var charge stripe.Charge
		if err := json.Unmarshal(event.Data.Raw, &charge); err != nil {
			return err
		}

		return s.handleChargeRefunded(ctx, event.ID, &charge)
	default:
		l.Warningf("unhandled stripe webhook event type: %s", event.Type)
		return nil
	}
}

func invoiceIDFromSession(session *stripe.CheckoutSession) string {
	if id := session.Metadata[MetadataInvoiceID]; id != "" {
		return id
	}

	return session.ClientReferenceID
}

func invoiceIDFromCharge(charge *stripe.Charge) string {
	if id := charge.Metadata[MetadataInvoiceID]; id != "" {
		return id
	}

	if charge.PaymentIntent != nil {
		return charge.PaymentIntent.Metadata[MetadataInvoiceID]
	}

	return ""
}

// chargeKeyFromSession and chargeKeyFromCharge key an invoice's payments by
// payment intent, which the checkout session and its charge share.
func chargeKeyFromSession(session *stripe.CheckoutSession) string {
	if session.PaymentIntent != nil && session.PaymentIntent.ID != "" {
		return session.PaymentIntent.ID
	}

	return session.ID
}

func chargeKeyFromCharge(charge *stripe.Charge) string {
	if charge.PaymentIntent != nil && charge.PaymentIntent.ID != "" {
		return charge.PaymentIntent.ID
	}

	return charge.ID
}

func (s *StripeWebhookService) handleCheckoutSessionPaid(ctx context.Context, eventID string, session *stripe.CheckoutSession) error {
	l := s.loggerProvider(ctx)

	if session.PaymentStatus != stripe.CheckoutSessionPaymentStatusPaid {
		l.Infof("checkout session %s completed with payment status %s", session.ID, session.PaymentStatus)
		return nil
	}

	invoiceID := invoiceIDFromSession(session)
	if invoiceID == "" {
		s.alert(ctx, notification.SeverityUrgent, "Stripe payment without invoice", []string{
			fmt.Sprintf("Checkout session `%s` was paid but carries no invoice id.", session.ID),
		})

		return nil
	}

	invoice, err := s.payments.RecordPayment(ctx, invoiceID, eventID, chargeKeyFromSession(session), common.FromCents(session.AmountTotal))

	return s.handleRecordError(ctx, "payment", invoiceID, invoice, err)
}

func (s *StripeWebhookService) handleChargeRefunded(ctx context.Context, eventID string, charge *stripe.Charge) error {
	invoiceID := invoiceIDFromCharge(charge)
	if invoiceID == "" {
		s.loggerProvider(ctx).Warningf("refunded charge %s has no invoice id", charge.ID)
		return nil
	}

	chargeAmountPaid := common.FromCents(charge.Amount - charge.AmountRefunded)

	invoice, err := s.payments.RecordRefund(ctx, invoiceID, eventID, chargeKeyFromCharge(charge), chargeAmountPaid)

	return s.handleRecordError(ctx, "refund", invoiceID, invoice, err)
}

// handleRecordError acks duplicates and business rejections, which a retry cannot fix.
func (s *StripeWebhookService) handleRecordError(ctx context.Context, kind, invoiceID string, invoice *domain.Invoice, err error) error {
	l := s.loggerProvider(ctx)

	switch {
	case err == nil:
		l.Infof("%s recorded on invoice %s, status %s", kind, invoice.PONumber, invoice.Status)
		return nil
	case errors.Is(err, invoicingService.ErrDuplicateEvent):
		l.Infof("%s event for invoice %s already processed", kind, invoiceID)
		return nil
	case errors.Is(err, invoicingService.ErrInvalidPaymentAmount),
		errors.Is(err, invoicingService.ErrInvalidStatusTransition),
		errors.Is(err, invoicingService.ErrInvoiceNotFound):
		l.Errorf("%s rejected for invoice %s: %s", kind, invoiceID, err)

		s.alert(ctx, notification.SeverityUrgent, fmt.Sprintf("Stripe %s rejected", kind), []string{
			fmt.Sprintf("Invoice `%s`: %s", invoiceID, err),
		})

		return nil
	default:
		return err
	}
}

func (s *StripeWebhookService) alertPaymentFailed(ctx context.Context, invoiceID string, amount int64, reason string) {
	s.loggerProvider(ctx).Warningf("payment failed for invoice %s: %s", invoiceID, reason)

	s.alert(ctx, notification.SeverityMedium, "Stripe payment failed", []string{
		fmt.Sprintf("Invoice `%s`, amount %s", invoiceID, common.FromCents(amount).StringFixed(common.MoneyPlaces)),
		reason,
	})
}

func (s *StripeWebhookService) alert(ctx context.Context, severity notification.Severity, title string, data []string) {
	if s.alerter == nil {
		return
	}

	if err := s.alerter.Alert(ctx, severity, title, data); err != nil {
		s.loggerProvider(ctx).Errorf("failed to send slack alert %q: %s", title, err)
	}
}

package service

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/webhook"

	"github.com/evstaffing/invoice-service/invoicing/dal"
	"github.com/evstaffing/invoice-service/invoicing/domain"
	invoicingService "github.com/evstaffing/invoice-service/invoicing/service"
	"github.com/evstaffing/invoice-service/logger"
	notificationMocks "github.com/evstaffing/invoice-service/notification/mocks"
	"github.com/evstaffing/invoice-service/stripe/service/mocks"
)

const testSignKey = "whsec_test"

func signedEvent(t *testing.T, id, eventType string, object interface{}) ([]byte, string) {
	t.Helper()

	raw, err := json.Marshal(object)
	require.NoError(t, err)

	body, err := json.Marshal(map[string]interface{}{
		"id":          id,
		"object":      "event",
		"type":        eventType,
		"api_version": "2020-08-27",
		"data":        map[string]json.RawMessage{"object": raw},
	})
	require.NoError(t, err)

	now := time.Now()
	signature := hex.EncodeToString(webhook.ComputeSignature(now, body, testSignKey))

	return body, fmt.Sprintf("t=%d,v1=%s", now.Unix(), signature)
}

func newTestWebhookService(t *testing.T) (*StripeWebhookService, *mocks.PaymentRecorder, *notificationMocks.Alerter) {
	payments := mocks.NewPaymentRecorder(t)
	alerter := notificationMocks.NewAlerter(t)

	return &StripeWebhookService{
		loggerProvider: logger.FromContext,
		webhookSignKey: testSignKey,
		payments:       payments,
		alerter:        alerter,
	}, payments, alerter
}

func completedSession(status string) map[string]interface{} {
	return map[string]interface{}{
		"id":                  "cs_test_1",
		"object":              "checkout.session",
		"amount_total":        31050,
		"payment_status":      status,
		"client_reference_id": "inv-1",
		"payment_intent":      "pi_1",
		"metadata": map[string]string{
			MetadataInvoiceID:  "inv-1",
			MetadataAdminEmail: "admin@evstaffing.com",
			MetadataAmountPaid: "310.50",
		},
	}
}

func TestStripeWebhookService_HandleEvent_CheckoutCompleted(t *testing.T) {
	ctx := context.Background()

	t.Run("records the payment", func(t *testing.T) {
		s, payments, _ := newTestWebhookService(t)
		body, sig := signedEvent(t, "evt_1", eventCheckoutSessionCompleted, completedSession("paid"))

		payments.On("RecordPayment", ctx, "inv-1", "evt_1", "pi_1", mock.MatchedBy(func(d decimal.Decimal) bool {
			return d.Equal(decimal.RequireFromString("310.5"))
		})).Return(&domain.Invoice{ID: "inv-1", Status: domain.InvoiceStatusPaid}, nil).Once()

		assert.NoError(t, s.HandleEvent(ctx, body, sig, ""))
	})

	t.Run("unpaid session is ignored", func(t *testing.T) {
		s, _, _ := newTestWebhookService(t)
		body, sig := signedEvent(t, "evt_1", eventCheckoutSessionCompleted, completedSession("unpaid"))

		assert.NoError(t, s.HandleEvent(ctx, body, sig, ""))
	})

	t.Run("duplicate delivery is acked", func(t *testing.T) {
		s, payments, _ := newTestWebhookService(t)
		body, sig := signedEvent(t, "evt_1", eventCheckoutSessionCompleted, completedSession("paid"))

		payments.On("RecordPayment", ctx, "inv-1", "evt_1", "pi_1", mock.Anything).
			Return(nil, fmt.Errorf("apply: %w", dal.ErrEventAlreadyProcessed)).Once()

		assert.NoError(t, s.HandleEvent(ctx, body, sig, ""))
	})

	t.Run("overpayment is acked and alerted", func(t *testing.T) {
		s, payments, alerter := newTestWebhookService(t)
		body, sig := signedEvent(t, "evt_1", eventCheckoutSessionCompleted, completedSession("paid"))

		payments.On("RecordPayment", ctx, "inv-1", "evt_1", "pi_1", mock.Anything).
			Return(nil, invoicingService.ErrInvalidPaymentAmount).Once()
		alerter.On("Alert", ctx, mock.Anything, "Stripe payment rejected", mock.Anything).Return(nil).Once()

		assert.NoError(t, s.HandleEvent(ctx, body, sig, ""))
	})

	t.Run("transient failure is returned for retry", func(t *testing.T) {
		s, payments, _ := newTestWebhookService(t)
		body, sig := signedEvent(t, "evt_1", eventCheckoutSessionCompleted, completedSession("paid"))

		storeErr := errors.New("firestore unavailable")
		payments.On("RecordPayment", ctx, "inv-1", "evt_1", "pi_1", mock.Anything).Return(nil, storeErr).Once()

		assert.ErrorIs(t, s.HandleEvent(ctx, body, sig, ""), storeErr)
	})
}

func TestStripeWebhookService_HandleEvent_ChargeRefunded(t *testing.T) {
	ctx := context.Background()
	s, payments, _ := newTestWebhookService(t)

	body, sig := signedEvent(t, "evt_2", eventChargeRefunded, map[string]interface{}{
		"id":              "ch_1",
		"object":          "charge",
		"amount":          31050,
		"amount_refunded": 10000,
		"payment_intent":  "pi_1",
		"metadata":        map[string]string{MetadataInvoiceID: "inv-1"},
	})

	payments.On("RecordRefund", ctx, "inv-1", "evt_2", "pi_1", mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(decimal.RequireFromString("210.5"))
	})).Return(&domain.Invoice{ID: "inv-1", Status: domain.InvoiceStatusPartiallyPaid}, nil).Once()

	assert.NoError(t, s.HandleEvent(ctx, body, sig, ""))
}

func TestChargeKeys(t *testing.T) {
	assert.Equal(t, "pi_1", chargeKeyFromSession(&stripe.CheckoutSession{ID: "cs_1", PaymentIntent: &stripe.PaymentIntent{ID: "pi_1"}}))
	assert.Equal(t, "cs_1", chargeKeyFromSession(&stripe.CheckoutSession{ID: "cs_1"}))
	assert.Equal(t, "pi_1", chargeKeyFromCharge(&stripe.Charge{ID: "ch_1", PaymentIntent: &stripe.PaymentIntent{ID: "pi_1"}}))
	assert.Equal(t, "ch_1", chargeKeyFromCharge(&stripe.Charge{ID: "ch_1"}))
}

func TestStripeWebhookService_HandleEvent_PaymentFailed(t *testing.T) {
	ctx := context.Background()
	s, _, alerter := newTestWebhookService(t)

	body, sig := signedEvent(t, "evt_3", eventPaymentIntentFailed, map[string]interface{}{
		"id":       "pi_1",
		"object":   "payment_intent",
		"amount":   31050,
		"metadata": map[string]string{MetadataInvoiceID: "inv-1"},
		"last_payment_error": map[string]string{
			"message": "Your card was declined.",
		},
	})

	alerter.On("Alert", ctx, mock.Anything, "Stripe payment failed", mock.MatchedBy(func(data []string) bool {
		return len(data) == 2 && data[1] == "Your card was declined."
	})).Return(nil).Once()

	assert.NoError(t, s.HandleEvent(ctx, body, sig, ""))
}

func TestStripeWebhookService_HandleEvent_Signature(t *testing.T) {
	ctx := context.Background()
	s, _, _ := newTestWebhookService(t)

	body, _ := signedEvent(t, "evt_1", eventCheckoutSessionCompleted, completedSession("paid"))

	err := s.HandleEvent(ctx, body, "t=1,v1=deadbeef", "")
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestStripeWebhookService_HandleEvent_UnhandledType(t *testing.T) {
	s, _, _ := newTestWebhookService(t)
	body, sig := signedEvent(t, "evt_4", "customer.created", map[string]string{"id": "cus_1", "object": "customer"})

	assert.NoError(t, s.HandleEvent(context.Background(), body, sig, ""))
}

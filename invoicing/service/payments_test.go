package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/evstaffing/invoice-service/invoicing/dal"
	"github.com/evstaffing/invoice-service/invoicing/dal/mocks"
	"github.com/evstaffing/invoice-service/invoicing/domain"
)

func openInvoice() domain.Invoice {
	return domain.Invoice{
		ID:          "inv-1",
		PONumber:    "EV-2024-123456",
		ClientEmail: "ops@acme.com",
		AdminEmail:  "admin@evstaffing.com",
		FullAmount:  310.5,
		Balance:     310.5,
		Currency:    "usd",
		Status:      domain.InvoiceStatusUnpaid,
	}
}

func TestInvoiceService_RecordPayment(t *testing.T) {
	ctx := context.Background()

	partial := openInvoice()
	partial.Status = domain.InvoiceStatusPartiallyPaid
	partial.AmountPaid = 100
	partial.Balance = 210.5
	partial.Charges = map[string]float64{"pi_0": 100}

	legacyPartial := partial
	legacyPartial.Charges = nil

	paid := openInvoice()
	paid.Status = domain.InvoiceStatusPaid
	paid.AmountPaid = 310.5
	paid.Balance = 0
	paid.Charges = map[string]float64{"pi_0": 310.5}

	tests := []struct {
		name        string
		invoice     domain.Invoice
		amount      string
		wantStatus  domain.InvoiceStatus
		wantPaid    float64
		wantBalance float64
		wantCharges map[string]float64
		wantEvents  []domain.EventType
		wantErr     error
	}{
		{
			name:        "partial payment",
			invoice:     openInvoice(),
			amount:      "100",
			wantStatus:  domain.InvoiceStatusPartiallyPaid,
			wantPaid:    100,
			wantBalance: 210.5,
			wantCharges: map[string]float64{"pi_1": 100},
		},
		{
			name:        "full payment",
			invoice:     openInvoice(),
			amount:      "310.50",
			wantStatus:  domain.InvoiceStatusPaid,
			wantPaid:    310.5,
			wantBalance: 0,
			wantCharges: map[string]float64{"pi_1": 310.5},
			wantEvents:  []domain.EventType{domain.EventInvoicePaid},
		},
		{
			name:        "remaining balance",
			invoice:     partial,
			amount:      "210.5",
			wantStatus:  domain.InvoiceStatusPaid,
			wantPaid:    310.5,
			wantBalance: 0,
			wantCharges: map[string]float64{"pi_0": 100, "pi_1": 210.5},
			wantEvents:  []domain.EventType{domain.EventInvoicePaid},
		},
		{
			name:        "paid amount without charges is kept",
			invoice:     legacyPartial,
			amount:      "10.5",
			wantStatus:  domain.InvoiceStatusPartiallyPaid,
			wantPaid:    110.5,
			wantBalance: 200,
			wantCharges: map[string]float64{domain.UnattributedCharge: 100, "pi_1": 10.5},
		},
		{
			name:    "overpayment",
			invoice: partial,
			amount:  "210.51",
			wantErr: ErrInvalidPaymentAmount,
		},
		{
			name:    "already paid",
			invoice: paid,
			amount:  "1",
			wantErr: ErrInvalidPaymentAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			invoicesDAL := mocks.NewInvoices(t)
			publisher := &fakePublisher{}
			s := newTestService(t, invoicesDAL, publisher, nil)

			invoicesDAL.On("ApplyPaymentEvent", ctx, "inv-1", mock.MatchedBy(func(e *domain.PaymentEvent) bool {
				return e.EventID == "evt_1" && e.Type == paymentEventType && e.ChargeID == "pi_1"
			}), mock.Anything).Return(mutatedWithEvent(tt.invoice)).Once()

			invoice, err := s.RecordPayment(ctx, "inv-1", "evt_1", "pi_1", decimal.RequireFromString(tt.amount))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, publisher.types())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, invoice.Status)
			assert.Equal(t, tt.wantPaid, invoice.AmountPaid)
			assert.Equal(t, tt.wantBalance, invoice.Balance)
			assert.Equal(t, tt.wantCharges, invoice.Charges)
			assert.Equal(t, tt.wantEvents, publisher.types())
		})
	}

	t.Run("fixture charges are not modified", func(t *testing.T) {
		assert.Equal(t, map[string]float64{"pi_0": 100}, partial.Charges)
	})

	t.Run("non positive amount", func(t *testing.T) {
		s := newTestService(t, mocks.NewInvoices(t), &fakePublisher{}, nil)

		_, err := s.RecordPayment(ctx, "inv-1", "evt_1", "pi_1", decimal.Zero)
		assert.ErrorIs(t, err, ErrInvalidPaymentAmount)
	})

	t.Run("missing charge id", func(t *testing.T) {
		s := newTestService(t, mocks.NewInvoices(t), &fakePublisher{}, nil)

		_, err := s.RecordPayment(ctx, "inv-1", "evt_1", "", decimal.NewFromInt(10))
		assert.ErrorIs(t, err, ErrInvalidPaymentAmount)
	})

	t.Run("duplicate event", func(t *testing.T) {
		invoicesDAL := mocks.NewInvoices(t)
		s := newTestService(t, invoicesDAL, &fakePublisher{}, nil)

		invoicesDAL.On("ApplyPaymentEvent", ctx, "inv-1", mock.Anything, mock.Anything).
			Return(nil, dal.ErrEventAlreadyProcessed).Once()

		_, err := s.RecordPayment(ctx, "inv-1", "evt_1", "pi_1", decimal.NewFromInt(10))
		assert.ErrorIs(t, err, ErrDuplicateEvent)
	})
}

func TestInvoiceService_RecordRefund(t *testing.T) {
	ctx := context.Background()

	paid := openInvoice()
	paid.Status = domain.InvoiceStatusPaid
	paid.AmountPaid = 310.5
	paid.Balance = 0
	paid.Charges = map[string]float64{"pi_1": 310.5}

	legacyPaid := paid
	legacyPaid.Charges = nil

	cancelled := openInvoice()
	cancelled.Status = domain.InvoiceStatusCancelled
	cancelled.AmountPaid = 100
	cancelled.Balance = 210.5
	cancelled.Charges = map[string]float64{"pi_1": 100}

	tests := []struct {
		name        string
		invoice     domain.Invoice
		chargeID    string
		amountPaid  string
		wantStatus  domain.InvoiceStatus
		wantPaid    float64
		wantBalance float64
		wantErr     error
	}{
		{name: "partial refund", invoice: paid, chargeID: "pi_1", amountPaid: "300", wantStatus: domain.InvoiceStatusPartiallyPaid, wantPaid: 300, wantBalance: 10.5},
		{name: "full refund", invoice: paid, chargeID: "pi_1", amountPaid: "0", wantStatus: domain.InvoiceStatusRefunded, wantPaid: 0, wantBalance: 310.5},
		{name: "paid amount without charges", invoice: legacyPaid, chargeID: "pi_1", amountPaid: "300", wantStatus: domain.InvoiceStatusPartiallyPaid, wantPaid: 300, wantBalance: 10.5},
		{name: "nothing refunded", invoice: paid, chargeID: "pi_1", amountPaid: "310.5", wantErr: ErrInvalidPaymentAmount},
		{name: "charge did not pay the invoice", invoice: paid, chargeID: "pi_9", amountPaid: "0", wantErr: ErrInvalidPaymentAmount},
		{name: "unpaid invoice", invoice: openInvoice(), chargeID: "pi_1", amountPaid: "0", wantErr: ErrInvalidPaymentAmount},
		{name: "cancelled invoice", invoice: cancelled, chargeID: "pi_1", amountPaid: "0", wantErr: ErrInvalidStatusTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			invoicesDAL := mocks.NewInvoices(t)
			publisher := &fakePublisher{}
			s := newTestService(t, invoicesDAL, publisher, nil)

			invoicesDAL.On("ApplyPaymentEvent", ctx, "inv-1", mock.MatchedBy(func(e *domain.PaymentEvent) bool {
				return e.Type == refundEventType && e.ChargeID == tt.chargeID
			}), mock.Anything).Return(mutatedWithEvent(tt.invoice)).Once()

			invoice, err := s.RecordRefund(ctx, "inv-1", "evt_2", tt.chargeID, decimal.RequireFromString(tt.amountPaid))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, publisher.types())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, invoice.Status)
			assert.Equal(t, tt.wantPaid, invoice.AmountPaid)
			assert.Equal(t, tt.wantBalance, invoice.Balance)
			assert.Equal(t, []domain.EventType{domain.EventInvoiceRefunded}, publisher.types())
		})
	}
}

func TestInvoiceService_RefundKeepsOtherCharges(t *testing.T) {
	ctx := context.Background()
	invoicesDAL := mocks.NewInvoices(t)
	s := newTestService(t, invoicesDAL, &fakePublisher{}, nil)

	stored := openInvoice()
	invoicesDAL.On("ApplyPaymentEvent", ctx, "inv-1", mock.Anything, mock.Anything).
		Return(func(_ context.Context, _ string, _ *domain.PaymentEvent, mutate dal.MutateFunc) (*domain.Invoice, error) {
			next := stored
			if err := mutate(&next); err != nil {
				return nil, err
			}

			stored = next

			return &next, nil
		})

	steps := []struct {
		name        string
		apply       func() (*domain.Invoice, error)
		wantStatus  domain.InvoiceStatus
		wantPaid    float64
		wantBalance float64
	}{
		{
			name:        "first charge pays in full",
			apply:       func() (*domain.Invoice, error) { return s.RecordPayment(ctx, "inv-1", "evt_1", "pi_1", decimal.RequireFromString("310.5")) },
			wantStatus:  domain.InvoiceStatusPaid,
			wantPaid:    310.5,
			wantBalance: 0,
		},
		{
			name:        "first charge partially refunded",
			apply:       func() (*domain.Invoice, error) { return s.RecordRefund(ctx, "inv-1", "evt_2", "pi_1", decimal.RequireFromString("210.5")) },
			wantStatus:  domain.InvoiceStatusPartiallyPaid,
			wantPaid:    210.5,
			wantBalance: 100,
		},
		{
			name:        "second charge pays the balance",
			apply:       func() (*domain.Invoice, error) { return s.RecordPayment(ctx, "inv-1", "evt_3", "pi_2", decimal.NewFromInt(100)) },
			wantStatus:  domain.InvoiceStatusPaid,
			wantPaid:    310.5,
			wantBalance: 0,
		},
		{
			name:        "second charge partially refunded",
			apply:       func() (*domain.Invoice, error) { return s.RecordRefund(ctx, "inv-1", "evt_4", "pi_2", decimal.NewFromInt(50)) },
			wantStatus:  domain.InvoiceStatusPartiallyPaid,
			wantPaid:    260.5,
			wantBalance: 50,
		},
		{
			name:        "first charge fully refunded",
			apply:       func() (*domain.Invoice, error) { return s.RecordRefund(ctx, "inv-1", "evt_5", "pi_1", decimal.Zero) },
			wantStatus:  domain.InvoiceStatusPartiallyPaid,
			wantPaid:    50,
			wantBalance: 260.5,
		},
		{
			name:        "second charge fully refunded",
			apply:       func() (*domain.Invoice, error) { return s.RecordRefund(ctx, "inv-1", "evt_6", "pi_2", decimal.Zero) },
			wantStatus:  domain.InvoiceStatusRefunded,
			wantPaid:    0,
			wantBalance: 310.5,
		},
	}

	for _, step := range steps {
		invoice, err := step.apply()
		require.NoError(t, err, step.name)
		assert.Equal(t, step.wantStatus, invoice.Status, step.name)
		assert.Equal(t, step.wantPaid, invoice.AmountPaid, step.name)
		assert.Equal(t, step.wantBalance, invoice.Balance, step.name)
	}

	assert.Equal(t, map[string]float64{"pi_1": 0, "pi_2": 0}, stored.Charges)
}

func TestInvoiceService_CreateCheckout(t *testing.T) {
	ctx := context.Background()

	t.Run("opens checkout for the balance", func(t *testing.T) {
		invoicesDAL := mocks.NewInvoices(t)
		checkout := &fakeCheckout{url: "https://checkout.stripe.com/c/pay/cs_test"}
		s := newTestService(t, invoicesDAL, nil, checkout)

		invoice := openInvoice()
		invoice.Status = domain.InvoiceStatusPartiallyPaid
		invoice.Balance = 210.5

		invoicesDAL.On("GetInvoice", ctx, "inv-1").Return(&invoice, nil).Once()
		invoicesDAL.On("SetCheckoutURL", ctx, "inv-1", checkout.url).Return(nil).Once()

		url, err := s.CreateCheckout(ctx, "inv-1")
		require.NoError(t, err)
		assert.Equal(t, checkout.url, url)
		assert.Equal(t, "210.5", checkout.req.Amount.String())
		assert.Equal(t, "admin@evstaffing.com", checkout.req.AdminEmail)
	})

	t.Run("closed invoice", func(t *testing.T) {
		invoicesDAL := mocks.NewInvoices(t)
		s := newTestService(t, invoicesDAL, nil, &fakeCheckout{})

		invoice := openInvoice()
		invoice.Status = domain.InvoiceStatusCancelled

		invoicesDAL.On("GetInvoice", ctx, "inv-1").Return(&invoice, nil).Once()

		_, err := s.CreateCheckout(ctx, "inv-1")
		assert.ErrorIs(t, err, ErrInvoiceNotPayable)
	})

	t.Run("gateway failure", func(t *testing.T) {
		invoicesDAL := mocks.NewInvoices(t)
		s := newTestService(t, invoicesDAL, nil, &fakeCheckout{err: errors.New("stripe down")})

		invoice := openInvoice()
		invoicesDAL.On("GetInvoice", ctx, "inv-1").Return(&invoice, nil).Once()

		_, err := s.CreateCheckout(ctx, "inv-1")
		assert.Error(t, err)
	})
}

func TestInvoiceService_CancelInvoice(t *testing.T) {
	ctx := context.Background()

	t.Run("cancels open invoice", func(t *testing.T) {
		invoicesDAL := mocks.NewInvoices(t)
		publisher := &fakePublisher{}
		s := newTestService(t, invoicesDAL, publisher, nil)

		invoicesDAL.On("UpdateInvoice", ctx, "inv-1", mock.Anything).Return(mutated(openInvoice())).Once()

		invoice, err := s.CancelInvoice(ctx, "inv-1", "  event postponed ")
		require.NoError(t, err)
		assert.Equal(t, domain.InvoiceStatusCancelled, invoice.Status)
		assert.Equal(t, "event postponed", invoice.CancellationReason)
		assert.Equal(t, []domain.EventType{domain.EventInvoiceCancelled}, publisher.types())
	})

	t.Run("paid invoice cannot be cancelled", func(t *testing.T) {
		invoicesDAL := mocks.NewInvoices(t)
		s := newTestService(t, invoicesDAL, &fakePublisher{}, nil)

		invoice := openInvoice()
		invoice.Status = domain.InvoiceStatusPaid

		invoicesDAL.On("UpdateInvoice", ctx, "inv-1", mock.Anything).Return(mutated(invoice)).Once()

		_, err := s.CancelInvoice(ctx, "inv-1", "")
		assert.ErrorIs(t, err, ErrInvalidStatusTransition)
	})

	t.Run("missing invoice", func(t *testing.T) {
		invoicesDAL := mocks.NewInvoices(t)
		s := newTestService(t, invoicesDAL, &fakePublisher{}, nil)

		invoicesDAL.On("UpdateInvoice", ctx, "missing", mock.Anything).Return(nil, dal.ErrInvoiceNotFound).Once()

		_, err := s.CancelInvoice(ctx, "missing", "")
		assert.ErrorIs(t, err, ErrInvoiceNotFound)
	})
}

package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/maps"

	"github.com/evstaffing/invoice-service/common"
	"github.com/evstaffing/invoice-service/invoicing/domain"
)

const (
	paymentEventType = "payment"
	refundEventType  = "refund"
)

// CreateCheckout opens a hosted checkout for the outstanding balance and stores its URL on the invoice.
func (s *InvoiceService) CreateCheckout(ctx context.Context, invoiceID string) (string, error) {
	l := s.loggerProvider(ctx)

	if s.checkout == nil {
		return "", errors.New("no checkout provider configured")
	}

	invoice, err := s.dal.GetInvoice(ctx, invoiceID)
	if err != nil {
		return "", err
	}

	balance := common.MoneyFromFloat(invoice.Balance)
	if !invoice.Status.Open() || !balance.IsPositive() {
		return "", fmt.Errorf("%w: invoice %s is %s", ErrInvoiceNotPayable, invoice.PONumber, invoice.Status)
	}

	url, err := s.checkout.CreateCheckoutSession(ctx, &domain.CheckoutRequest{
		Amount:      balance,
		Currency:    invoice.Currency,
		ClientEmail: invoice.ClientEmail,
		InvoiceID:   invoice.ID,
		AdminEmail:  invoice.AdminEmail,
		PONumber:    invoice.PONumber,
	})
	if err != nil {
		return "", err
	}

	if err := s.dal.SetCheckoutURL(ctx, invoice.ID, url); err != nil {
		l.Warningf("failed to store checkout url on invoice %s: %s", invoice.ID, err)
	}

	return url, nil
}

// heldByCharge copies the invoice's per-charge amounts. A paid amount recorded
// before per-charge tracking is carried under domain.UnattributedCharge.
func heldByCharge(invoice *domain.Invoice) map[string]float64 {
	charges := maps.Clone(invoice.Charges)
	if charges == nil {
		charges = make(map[string]float64)
	}

	if len(charges) == 0 && invoice.AmountPaid > 0 {
		charges[domain.UnattributedCharge] = invoice.AmountPaid
	}

	return charges
}

func sumCharges(charges map[string]float64) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range charges {
		total = total.Add(common.MoneyFromFloat(amount))
	}

	return total
}

// setPaid stores the per-charge amounts and derives the paid total and balance from them.
func setPaid(invoice *domain.Invoice, charges map[string]float64) decimal.Decimal {
	full := common.MoneyFromFloat(invoice.FullAmount)
	paid := sumCharges(charges)

	invoice.Charges = charges
	invoice.AmountPaid = common.MoneyToFloat(paid)
	invoice.Balance = common.MoneyToFloat(full.Sub(paid))

	return paid
}

// RecordPayment adds amount, captured by the gateway payment chargeID, to the
// invoice's paid total. Each gateway event is applied at most once; amounts that
// would overpay the invoice are rejected.
func (s *InvoiceService) RecordPayment(ctx context.Context, invoiceID, eventID, chargeID string, amount decimal.Decimal) (*domain.Invoice, error) {
	l := s.loggerProvider(ctx)

	amount = common.RoundMoney(amount)
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPaymentAmount, amount)
	}

	if chargeID == "" {
		return nil, fmt.Errorf("%w: payment has no charge id", ErrInvalidPaymentAmount)
	}

	now := s.now().UTC()
	event := &domain.PaymentEvent{
		EventID:     eventID,
		Type:        paymentEventType,
		ChargeID:    chargeID,
		AmountPaid:  common.MoneyToFloat(amount),
		TimeCreated: now,
	}

	invoice, err := s.dal.ApplyPaymentEvent(ctx, invoiceID, event, func(invoice *domain.Invoice) error {
		full := common.MoneyFromFloat(invoice.FullAmount)

		charges := heldByCharge(invoice)
		charges[chargeID] = common.MoneyToFloat(common.MoneyFromFloat(charges[chargeID]).Add(amount))

		paid := sumCharges(charges)
		if paid.GreaterThan(full) {
			return fmt.Errorf("%w: paid %s exceeds full amount %s", ErrInvalidPaymentAmount, paid, full)
		}

		trigger := domain.TriggerPayPartial
		if paid.Equal(full) {
			trigger = domain.TriggerPayFull
		}

		status, err := nextStatus(invoice.Status, trigger)
		if err != nil {
			return err
		}

		invoice.Status = status
		invoice.TimeModified = now
		setPaid(invoice, charges)

		return nil
	})
	if err != nil {
		return nil, err
	}

	l.Infof("payment of %s applied to invoice %s, status %s", amount, invoice.PONumber, invoice.Status)

	if invoice.Status == domain.InvoiceStatusPaid {
		s.publish(ctx, domain.EventInvoicePaid, invoice)
	}

	return invoice, nil
}

// RecordRefund sets the amount the gateway payment chargeID still holds after a
// refund. The invoice's paid total is recomputed across all of its charges, so
// a refund on one charge leaves the others untouched. Zero across every charge
// means fully refunded.
func (s *InvoiceService) RecordRefund(ctx context.Context, invoiceID, eventID, chargeID string, chargeAmountPaid decimal.Decimal) (*domain.Invoice, error) {
	l := s.loggerProvider(ctx)

	chargeAmountPaid = common.RoundMoney(chargeAmountPaid)
	if chargeAmountPaid.IsNegative() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidPaymentAmount, chargeAmountPaid)
	}

	now := s.now().UTC()
	event := &domain.PaymentEvent{
		EventID:     eventID,
		Type:        refundEventType,
		ChargeID:    chargeID,
		AmountPaid:  common.MoneyToFloat(chargeAmountPaid),
		TimeCreated: now,
	}

	var paid decimal.Decimal

	invoice, err := s.dal.ApplyPaymentEvent(ctx, invoiceID, event, func(invoice *domain.Invoice) error {
		charges := heldByCharge(invoice)

		held, ok := charges[chargeID]
		if !ok {
			// payments recorded before per-charge tracking belong to the first refunded charge
			held, ok = charges[domain.UnattributedCharge]
			delete(charges, domain.UnattributedCharge)
		}

		if !ok {
			return fmt.Errorf("%w: charge %s did not pay invoice %s", ErrInvalidPaymentAmount, chargeID, invoice.PONumber)
		}

		if chargeAmountPaid.GreaterThanOrEqual(common.MoneyFromFloat(held)) {
			return fmt.Errorf("%w: refund leaves %s of %s on charge %s", ErrInvalidPaymentAmount, chargeAmountPaid, common.MoneyFromFloat(held), chargeID)
		}

		charges[chargeID] = common.MoneyToFloat(chargeAmountPaid)

		trigger := domain.TriggerRefundPartial
		if sumCharges(charges).IsZero() {
			trigger = domain.TriggerRefundFull
		}

		status, err := nextStatus(invoice.Status, trigger)
		if err != nil {
			return err
		}

		invoice.Status = status
		invoice.TimeModified = now
		paid = setPaid(invoice, charges)

		return nil
	})
	if err != nil {
		return nil, err
	}

	l.Infof("refund on charge %s applied to invoice %s, %s still paid, status %s", chargeID, invoice.PONumber, paid, invoice.Status)

	s.publish(ctx, domain.EventInvoiceRefunded, invoice)

	return invoice, nil
}

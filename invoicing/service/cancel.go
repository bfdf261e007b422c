package service

import (
	"context"
	"strings"

	"github.com/evstaffing/invoice-service/invoicing/domain"
)

func (s *InvoiceService) GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	return s.dal.GetInvoice(ctx, invoiceID)
}

// CancelInvoice voids an open invoice. Paid or already closed invoices return ErrInvalidStatusTransition.
func (s *InvoiceService) CancelInvoice(ctx context.Context, invoiceID string, reason string) (*domain.Invoice, error) {
	l := s.loggerProvider(ctx)

	invoice, err := s.dal.UpdateInvoice(ctx, invoiceID, func(invoice *domain.Invoice) error {
		status, err := nextStatus(invoice.Status, domain.TriggerCancel)
		if err != nil {
			return err
		}

		invoice.Status = status
		invoice.CancellationReason = strings.TrimSpace(reason)
		invoice.TimeModified = s.now().UTC()

		return nil
	})
	if err != nil {
		return nil, err
	}

	l.Infof("invoice %s cancelled", invoice.PONumber)

	s.publish(ctx, domain.EventInvoiceCancelled, invoice)

	return invoice, nil
}

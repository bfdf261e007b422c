package dal

import (
	"context"
	"time"

	"github.com/evstaffing/invoice-service/invoicing/domain"
)

// MutateFunc changes an invoice read inside a transaction. Returning an error aborts the write.
type MutateFunc func(invoice *domain.Invoice) error

//go:generate mockery --name Invoices --output ./mocks
type Invoices interface {
	GetSettings(ctx context.Context) (*domain.Settings, error)
	CreateInvoice(ctx context.Context, request *domain.StaffingRequest, invoice *domain.Invoice) error
	GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	UpdateInvoice(ctx context.Context, invoiceID string, mutate MutateFunc) (*domain.Invoice, error)
	ApplyPaymentEvent(ctx context.Context, invoiceID string, event *domain.PaymentEvent, mutate MutateFunc) (*domain.Invoice, error)
	SetCheckoutURL(ctx context.Context, invoiceID string, url string) error
	ListFollowUpCandidates(ctx context.Context, delayMinutes int, dueBefore time.Time) ([]*domain.Invoice, error)
	ListFollowUpTiers(ctx context.Context, now time.Time) ([]int, error)
	ClaimFollowUp(ctx context.Context, invoiceID string, tier string, now time.Time) (bool, error)
	ReleaseFollowUp(ctx context.Context, invoiceID string, tier string) error
}

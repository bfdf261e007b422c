package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/evstaffing/invoice-service/invoicing/dal"
	"github.com/evstaffing/invoice-service/invoicing/domain"
	"github.com/evstaffing/invoice-service/invoicing/ponumber"
	"github.com/evstaffing/invoice-service/logger"
)

//go:generate mockery --name Service --output ./mocks
type Service interface {
	Quote(ctx context.Context, requirements []domain.StaffRequirement) (*Quote, error)
	CreateInvoice(ctx context.Context, req *CreateInvoiceRequest) (*domain.Invoice, error)
	GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error)
	CancelInvoice(ctx context.Context, invoiceID string, reason string) (*domain.Invoice, error)
	CreateCheckout(ctx context.Context, invoiceID string) (string, error)
	RecordPayment(ctx context.Context, invoiceID, eventID, chargeID string, amount decimal.Decimal) (*domain.Invoice, error)
	RecordRefund(ctx context.Context, invoiceID, eventID, chargeID string, chargeAmountPaid decimal.Decimal) (*domain.Invoice, error)
}

// CheckoutProvider opens a hosted checkout page and returns its URL.
//
//go:generate mockery --name CheckoutProvider --output ./mocks
type CheckoutProvider interface {
	CreateCheckoutSession(ctx context.Context, req *domain.CheckoutRequest) (string, error)
}

type CreateInvoiceRequest struct {
	ClientName           string                    `json:"clientName" validate:"required"`
	ClientEmail          string                    `json:"clientEmail" validate:"required,email"`
	AdminEmail           string                    `json:"adminEmail" validate:"omitempty,email"`
	Requirements         []domain.StaffRequirement `json:"requirements" validate:"required,min=1,dive"`
	DueDate              *time.Time                `json:"dueDate"`
	FollowUpDelayMinutes *int                      `json:"followUpDelayMinutes" validate:"omitempty,min=0,max=60"`
}

type Quote struct {
	Requirements     []domain.InvoiceLine `json:"requirements"`
	Subtotal         float64              `json:"subtotal"`
	TransactionFee   float64              `json:"transactionFee"`
	ServiceFee       float64              `json:"serviceFee"`
	FullAmount       float64              `json:"fullAmount"`
	UnknownPositions []string             `json:"unknownPositions,omitempty"`
}

type InvoiceService struct {
	loggerProvider logger.Provider
	dal            dal.Invoices
	allocator      *ponumber.Allocator
	publisher      EventPublisher
	checkout       CheckoutProvider
	validate       *validator.Validate
	now            func() time.Time
}

func NewInvoiceService(
	loggerProvider logger.Provider,
	invoicesDAL dal.Invoices,
	publisher EventPublisher,
	checkout CheckoutProvider,
) *InvoiceService {
	return &InvoiceService{
		loggerProvider: loggerProvider,
		dal:            invoicesDAL,
		allocator:      ponumber.NewAllocator(ponumber.NewGenerator(), ponumber.DefaultMaxAttempts),
		publisher:      publisher,
		checkout:       checkout,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
		now:            time.Now,
	}
}

package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/evstaffing/invoice-service/invoicing/dal"
	"github.com/evstaffing/invoice-service/invoicing/dal/mocks"
	"github.com/evstaffing/invoice-service/invoicing/domain"
	"github.com/evstaffing/invoice-service/invoicing/ponumber"
	"github.com/evstaffing/invoice-service/logger"
)

var testNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type fakePublisher struct {
	mu     sync.Mutex
	events []*domain.InvoiceEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, event *domain.InvoiceEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.events = append(p.events, event)

	return p.err
}

func (p *fakePublisher) types() []domain.EventType {
	p.mu.Lock()
	defer p.mu.Unlock()

	var types []domain.EventType
	for _, e := range p.events {
		types = append(types, e.Type)
	}

	return types
}

type fakeCheckout struct {
	url string
	err error
	req *domain.CheckoutRequest
}

func (c *fakeCheckout) CreateCheckoutSession(_ context.Context, req *domain.CheckoutRequest) (string, error) {
	c.req = req
	return c.url, c.err
}

// serials hands out the given serials in order, repeating the last one.
func serials(values ...int64) func() (int64, error) {
	var i int

	return func() (int64, error) {
		v := values[i]
		if i < len(values)-1 {
			i++
		}

		return v, nil
	}
}

func newTestService(t *testing.T, invoicesDAL *mocks.Invoices, publisher EventPublisher, checkout CheckoutProvider, serial ...int64) *InvoiceService {
	t.Helper()

	if len(serial) == 0 {
		serial = []int64{123456}
	}

	gen := &ponumber.Generator{
		Now:    func() time.Time { return testNow },
		Serial: serials(serial...),
	}

	return &InvoiceService{
		loggerProvider: logger.FromContext,
		dal:            invoicesDAL,
		allocator:      ponumber.NewAllocator(gen, 3),
		publisher:      publisher,
		checkout:       checkout,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
		now:            func() time.Time { return testNow },
	}
}

// mutated runs the mutate func the service hands to the DAL against a copy of invoice.
func mutated(invoice domain.Invoice) func(context.Context, string, dal.MutateFunc) (*domain.Invoice, error) {
	return func(_ context.Context, _ string, mutate dal.MutateFunc) (*domain.Invoice, error) {
		inv := invoice
		if err := mutate(&inv); err != nil {
			return nil, err
		}

		return &inv, nil
	}
}

func mutatedWithEvent(invoice domain.Invoice) func(context.Context, string, *domain.PaymentEvent, dal.MutateFunc) (*domain.Invoice, error) {
	return func(ctx context.Context, id string, _ *domain.PaymentEvent, mutate dal.MutateFunc) (*domain.Invoice, error) {
		return mutated(invoice)(ctx, id, mutate)
	}
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/evstaffing/invoice-service/common"
	"github.com/evstaffing/invoice-service/invoicing/calculator"
	"github.com/evstaffing/invoice-service/invoicing/domain"
)

type pricing struct {
	settings *domain.Settings
	rated    []domain.RatedStaffRequirement
	totals   domain.InvoiceTotals
	unknown  []string
}

func (s *InvoiceService) validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	fields := make([]string, len(verrs))
	for i, fe := range verrs {
		fields[i] = fmt.Sprintf("%s failed %s", fe.Namespace(), fe.Tag())
	}

	return fmt.Errorf("%w: %s", ErrInvalidRequest, strings.Join(fields, ", "))
}

// price rates the requirements and computes totals under the current settings.
func (s *InvoiceService) price(ctx context.Context, requirements []domain.StaffRequirement) (*pricing, error) {
	l := s.loggerProvider(ctx)

	settings, err := s.dal.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	rated, err := calculator.CalculateStaffRates(settings.RateTable(), requirements)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}

	unknown := calculator.UnknownPositions(rated)
	if len(unknown) > 0 {
		if settings.StrictRates {
			return nil, fmt.Errorf("%w: %s", ErrUnknownPosition, strings.Join(unknown, ", "))
		}

		l.Warningf("no rate for positions %v, billed at 0", unknown)
	}

	return &pricing{
		settings: settings,
		rated:    rated,
		totals:   calculator.CalculateTotals(rated, settings.FeeSchedule()),
		unknown:  unknown,
	}, nil
}

// Quote prices requirements without persisting anything.
func (s *InvoiceService) Quote(ctx context.Context, requirements []domain.StaffRequirement) (*Quote, error) {
	if len(requirements) == 0 {
		return nil, fmt.Errorf("%w: no requirements", ErrInvalidRequest)
	}

	if err := s.validate.Var(requirements, "dive"); err != nil {
		return nil, s.validationError(err)
	}

	p, err := s.price(ctx, requirements)
	if err != nil {
		return nil, err
	}

	return &Quote{
		Requirements:     domain.NewInvoiceLines(p.rated),
		Subtotal:         p.totals.Subtotal.InexactFloat64(),
		TransactionFee:   p.totals.TransactionFee.InexactFloat64(),
		ServiceFee:       p.totals.ServiceFee.InexactFloat64(),
		FullAmount:       p.totals.FullAmount.InexactFloat64(),
		UnknownPositions: p.unknown,
	}, nil
}

func followUpDelay(req *CreateInvoiceRequest, settings *domain.Settings) int {
	if req.FollowUpDelayMinutes != nil {
		return *req.FollowUpDelayMinutes
	}

	if domain.ValidFollowUpDelay(settings.DefaultFollowUpDelayMinutes) {
		return settings.DefaultFollowUpDelayMinutes
	}

	return 0
}

// CreateInvoice prices the request, allocates a PO number and stores the request
// and invoice atomically. Invalid input writes nothing.
func (s *InvoiceService) CreateInvoice(ctx context.Context, req *CreateInvoiceRequest) (*domain.Invoice, error) {
	l := s.loggerProvider(ctx)

	if req == nil {
		return nil, fmt.Errorf("%w: empty request", ErrInvalidRequest)
	}

	if err := s.validate.Struct(req); err != nil {
		return nil, s.validationError(err)
	}

	p, err := s.price(ctx, req.Requirements)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()

	dueDate := now.AddDate(0, 0, p.settings.PaymentTermDays())
	if req.DueDate != nil {
		dueDate = req.DueDate.UTC()
	}

	request := &domain.StaffingRequest{
		ClientName:   req.ClientName,
		ClientEmail:  strings.ToLower(req.ClientEmail),
		AdminEmail:   strings.ToLower(req.AdminEmail),
		Requirements: req.Requirements,
		TimeCreated:  now,
	}

	invoice := &domain.Invoice{
		ClientName:           request.ClientName,
		ClientEmail:          request.ClientEmail,
		AdminEmail:           request.AdminEmail,
		Requirements:         domain.NewInvoiceLines(p.rated),
		Currency:             common.DefaultCurrency,
		Status:               domain.InvoiceStatusUnpaid,
		DueDate:              dueDate,
		FollowUpDelayMinutes: followUpDelay(req, p.settings),
		FollowUps:            make(map[string]time.Time),
		TimeCreated:          now,
		TimeModified:         now,
	}
	invoice.SetTotals(p.totals)

	po, err := s.allocator.Allocate(ctx, func(ctx context.Context, po string) error {
		invoice.PONumber = po
		return s.dal.CreateInvoice(ctx, request, invoice)
	})
	if err != nil {
		return nil, err
	}

	l.SetLabels(map[string]string{
		"invoiceId": invoice.ID,
		"poNumber":  po,
	})
	l.Infof("invoice %s created for %s, full amount %.2f", po, invoice.ClientEmail, invoice.FullAmount)

	s.publish(ctx, domain.EventInvoiceCreated, invoice)

	return invoice, nil
}

package service

import (
	"errors"

	"github.com/evstaffing/invoice-service/invoicing/dal"
)

var (
	ErrInvalidRequest          = errors.New("invalid invoice request")
	ErrUnknownPosition         = errors.New("unknown position")
	ErrInvalidStatusTransition = errors.New("invalid invoice status transition")
	ErrInvalidPaymentAmount    = errors.New("invalid payment amount")
	ErrInvoiceNotPayable       = errors.New("invoice is not open for payment")

	ErrInvoiceNotFound = dal.ErrInvoiceNotFound
	ErrDuplicateEvent  = dal.ErrEventAlreadyProcessed
)

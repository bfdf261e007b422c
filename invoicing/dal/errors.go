package dal

import "errors"

var (
	ErrInvoiceNotFound        = errors.New("invoice not found")
	ErrEventAlreadyProcessed  = errors.New("payment event already processed")
	ErrInvalidFollowUpTier    = errors.New("invalid follow-up tier")
	errMissingPurchaseOrderNo = errors.New("invoice has no po number")
)

package service

import (
	"fmt"

	"github.com/qmuntal/stateless"

	"github.com/evstaffing/invoice-service/invoicing/domain"
)

// nextStatus fires trigger against a machine seeded with current and returns
// the resulting status. Refunded and cancelled are terminal.
func nextStatus(current domain.InvoiceStatus, trigger domain.StatusTrigger) (domain.InvoiceStatus, error) {
	machine := stateless.NewStateMachine(current)

	machine.Configure(domain.InvoiceStatusUnpaid).
		Permit(domain.TriggerPayPartial, domain.InvoiceStatusPartiallyPaid).
		Permit(domain.TriggerPayFull, domain.InvoiceStatusPaid).
		Permit(domain.TriggerCancel, domain.InvoiceStatusCancelled)

	machine.Configure(domain.InvoiceStatusPartiallyPaid).
		PermitReentry(domain.TriggerPayPartial).
		PermitReentry(domain.TriggerRefundPartial).
		Permit(domain.TriggerPayFull, domain.InvoiceStatusPaid).
		Permit(domain.TriggerRefundFull, domain.InvoiceStatusRefunded).
		Permit(domain.TriggerCancel, domain.InvoiceStatusCancelled)

	machine.Configure(domain.InvoiceStatusPaid).
		Permit(domain.TriggerRefundPartial, domain.InvoiceStatusPartiallyPaid).
		Permit(domain.TriggerRefundFull, domain.InvoiceStatusRefunded)

	machine.Configure(domain.InvoiceStatusRefunded)
	machine.Configure(domain.InvoiceStatusCancelled)

	if err := machine.Fire(trigger); err != nil {
		return current, fmt.Errorf("%w: %s on %s invoice", ErrInvalidStatusTransition, trigger, current)
	}

	state := machine.MustState()

	status, ok := state.(domain.InvoiceStatus)
	if !ok {
		return current, fmt.Errorf("%w: unexpected state %v", ErrInvalidStatusTransition, state)
	}

	return status, nil
}

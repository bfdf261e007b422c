package domain

type EventType string

const (
	EventInvoiceCreated   EventType = "invoice.created"
	EventInvoicePaid      EventType = "invoice.paid"
	EventInvoiceRefunded  EventType = "invoice.refunded"
	EventInvoiceCancelled EventType = "invoice.cancelled"
)

// InvoiceEvent is published to the invoice-events topic.
type InvoiceEvent struct {
	Type      EventType     `json:"type"`
	InvoiceID string        `json:"invoiceId"`
	PONumber  string        `json:"poNumber"`
	Amount    float64       `json:"amount"`
	Status    InvoiceStatus `json:"status"`
}

func NewInvoiceEvent(t EventType, invoice *Invoice) *InvoiceEvent {
	return &InvoiceEvent{
		Type:      t,
		InvoiceID: invoice.ID,
		PONumber:  invoice.PONumber,
		Amount:    invoice.FullAmount,
		Status:    invoice.Status,
	}
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusUnpaid        InvoiceStatus = "unpaid"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusRefunded      InvoiceStatus = "refunded"
	InvoiceStatusCancelled     InvoiceStatus = "cancelled"
)

// Open reports whether the invoice still expects payment.
func (s InvoiceStatus) Open() bool {
	return s == InvoiceStatusUnpaid || s == InvoiceStatusPartiallyPaid
}

// StatusTrigger drives invoice status transitions.
type StatusTrigger string

const (
	TriggerPayPartial    StatusTrigger = "payPartial"
	TriggerPayFull       StatusTrigger = "payFull"
	TriggerRefundPartial StatusTrigger = "refundPartial"
	TriggerRefundFull    StatusTrigger = "refundFull"
	TriggerCancel        StatusTrigger = "cancel"
)

// FeeSchedule holds the surcharge fractions layered onto the staffing subtotal.
type FeeSchedule struct {
	TransactionRate decimal.Decimal
	ServiceRate     decimal.Decimal
}

// DefaultFeeSchedule is a 3.5% transaction fee and a 50% service markup.
var DefaultFeeSchedule = FeeSchedule{
	TransactionRate: decimal.RequireFromString("0.035"),
	ServiceRate:     decimal.RequireFromString("0.5"),
}

type InvoiceTotals struct {
	Subtotal       decimal.Decimal
	TransactionFee decimal.Decimal
	ServiceFee     decimal.Decimal
	FullAmount     decimal.Decimal
}

const FieldFollowUps = "followUps"

type Invoice struct {
	ID                   string               `json:"id" firestore:"-"`
	RequestID            string               `json:"requestId" firestore:"requestId"`
	PONumber             string               `json:"poNumber" firestore:"poNumber"`
	ClientName           string               `json:"clientName" firestore:"clientName"`
	ClientEmail          string               `json:"clientEmail" firestore:"clientEmail"`
	AdminEmail           string               `json:"adminEmail" firestore:"adminEmail"`
	Requirements         []InvoiceLine        `json:"requirements" firestore:"requirements"`
	Subtotal             float64              `json:"subtotal" firestore:"subtotal"`
	TransactionFee       float64              `json:"transactionFee" firestore:"transactionFee"`
	ServiceFee           float64              `json:"serviceFee" firestore:"serviceFee"`
	FullAmount           float64              `json:"fullAmount" firestore:"fullAmount"`
	AmountPaid           float64              `json:"amountPaid" firestore:"amountPaid"`
	Balance              float64              `json:"balance" firestore:"balance"`
	Currency             string               `json:"currency" firestore:"currency"`
	Status               InvoiceStatus        `json:"status" firestore:"status"`
	DueDate              time.Time            `json:"dueDate" firestore:"dueDate"`
	FollowUpDelayMinutes int                  `json:"followUpDelayMinutes" firestore:"followUpDelayMinutes"`
	FollowUps            map[string]time.Time `json:"followUps,omitempty" firestore:"followUps"`
	CheckoutURL          string               `json:"checkoutUrl,omitempty" firestore:"checkoutUrl"`
	// Charges holds the net amount still captured per gateway payment. AmountPaid is their sum.
	Charges              map[string]float64   `json:"charges,omitempty" firestore:"charges"`
	CancellationReason   string               `json:"cancellationReason,omitempty" firestore:"cancellationReason"`
	TimeCreated          time.Time            `json:"timeCreated" firestore:"timeCreated"`
	TimeModified         time.Time            `json:"timeModified" firestore:"timeModified"`
}

// SetTotals copies computed totals onto the invoice. The balance starts at the full amount.
func (i *Invoice) SetTotals(t InvoiceTotals) {
	i.Subtotal = t.Subtotal.InexactFloat64()
	i.TransactionFee = t.TransactionFee.InexactFloat64()
	i.ServiceFee = t.ServiceFee.InexactFloat64()
	i.FullAmount = t.FullAmount.InexactFloat64()
	i.AmountPaid = 0
	i.Balance = i.FullAmount
}

// UnattributedCharge keys paid amounts recorded before they were tracked per charge.
const UnattributedCharge = "unattributed"

// PaymentEvent marks a gateway event as applied to an invoice.
type PaymentEvent struct {
	EventID     string    `firestore:"eventId"`
	Type        string    `firestore:"type"`
	ChargeID    string    `firestore:"chargeId"`
	AmountPaid  float64   `firestore:"amountPaid"`
	TimeCreated time.Time `firestore:"timeCreated"`
}

// PONumberReservation is stored under the PO number so a duplicate create fails.
type PONumberReservation struct {
	InvoiceID   string    `firestore:"invoiceId"`
	TimeCreated time.Time `firestore:"timeCreated"`
}

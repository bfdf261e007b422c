package domain

import "github.com/shopspring/decimal"

// CheckoutRequest is what the payment gateway needs to open a hosted checkout.
type CheckoutRequest struct {
	Amount      decimal.Decimal
	Currency    string
	ClientEmail string
	InvoiceID   string
	AdminEmail  string
	PONumber    string
}

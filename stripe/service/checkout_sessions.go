package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v74"

	"github.com/evstaffing/invoice-service/common"
	"github.com/evstaffing/invoice-service/invoicing/domain"
	"github.com/evstaffing/invoice-service/logger"
)

// Metadata keys carried on checkout sessions and their payment intents.
const (
	MetadataInvoiceID  = "invoice_id"
	MetadataAdminEmail = "admin_email"
	MetadataAmountPaid = "amount_paid"
	MetadataPONumber   = "po_number"
)

var ErrInvalidCheckoutAmount = errors.New("checkout amount must be positive")

type checkoutSessionCreator interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type StripeService struct {
	loggerProvider logger.Provider
	sessions       checkoutSessionCreator
	successURL     string
	cancelURL      string
}

func NewStripeService(loggerProvider logger.Provider, stripeClient *Client) *StripeService {
	return &StripeService{
		loggerProvider: loggerProvider,
		sessions:       stripeClient.CheckoutSessions,
		successURL:     stripeClient.successURL,
		cancelURL:      stripeClient.cancelURL,
	}
}

func checkoutMetadata(req *domain.CheckoutRequest) map[string]string {
	return map[string]string{
		MetadataInvoiceID:  req.InvoiceID,
		MetadataAdminEmail: req.AdminEmail,
		MetadataAmountPaid: common.RoundMoney(req.Amount).StringFixed(common.MoneyPlaces),
		MetadataPONumber:   req.PONumber,
	}
}

// CreateCheckoutSession opens a one-off hosted payment page for the requested amount.
func (s *StripeService) CreateCheckoutSession(ctx context.Context, req *domain.CheckoutRequest) (string, error) {
	l := s.loggerProvider(ctx)

	amount := common.ToCents(req.Amount)
	if amount <= 0 {
		return "", ErrInvalidCheckoutAmount
	}

	currency := strings.ToLower(req.Currency)
	if currency == "" {
		currency = common.DefaultCurrency
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID: stripe.String(req.InvoiceID),
		SuccessURL:        stripe.String(s.successURL + "?checkout_session={CHECKOUT_SESSION_ID}"),
		CancelURL:         stripe.String(s.cancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(currency),
					UnitAmount: stripe.Int64(amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("Invoice %s", req.PONumber)),
					},
				},
			},
		},
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: checkoutMetadata(req),
		},
	}

	if req.ClientEmail != "" {
		params.CustomerEmail = stripe.String(req.ClientEmail)
	}

	for k, v := range checkoutMetadata(req) {
		params.AddMetadata(k, v)
	}

	session, err := s.sessions.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			l.Errorf("stripe checkout session failed for invoice %s: %s (%s)", req.InvoiceID, stripeErr.Msg, stripeErr.Code)
		}

		return "", err
	}

	l.Infof("checkout session %s created for invoice %s", session.ID, req.InvoiceID)

	return session.URL, nil
}

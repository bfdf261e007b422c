package api

import (
	"context"
	"net/http"
	"os"

	"github.com/evstaffing/invoice-service/cmd/api/handlers"
	"github.com/evstaffing/invoice-service/common"
	"github.com/evstaffing/invoice-service/framework/connection"
	"github.com/evstaffing/invoice-service/framework/mid"
	"github.com/evstaffing/invoice-service/framework/web"
	"github.com/evstaffing/invoice-service/invoicing/dal"
	"github.com/evstaffing/invoice-service/invoicing/followup"
	invoicingHandlers "github.com/evstaffing/invoice-service/invoicing/handlers"
	invoicingService "github.com/evstaffing/invoice-service/invoicing/service"
	"github.com/evstaffing/invoice-service/logger"
	"github.com/evstaffing/invoice-service/mailer"
	"github.com/evstaffing/invoice-service/notification"
	stripeHandlers "github.com/evstaffing/invoice-service/stripe/handlers"
	stripeService "github.com/evstaffing/invoice-service/stripe/service"
)

const invoiceIDParam = "invoiceID"

// API constructs an api with the needed functionality.
type API struct {
	shutdown chan os.Signal
	log      *logger.Logging
	conn     *connection.Connection
}

func NewAPI(shutdown chan os.Signal, logging *logger.Logging, conn *connection.Connection) *API {
	return &API{
		shutdown,
		logging,
		conn,
	}
}

func newMailer(loggerProvider logger.Provider) mailer.Mailer {
	if common.IsLocalhost {
		return mailer.NewLogMailer(loggerProvider)
	}

	return mailer.NewSendGridMailer(loggerProvider)
}

// Build builds the api endpoints with the needed middlewares, and returns http.Handler interface.
func (a *API) Build() http.Handler {
	loggerProvider := logger.FromContext

	stripeClient, err := stripeService.NewStripeClient(context.Background())
	if err != nil {
		panic(err)
	}

	invoicesDAL := dal.NewInvoicesFirestoreWithClient(a.conn.Firestore)
	alerter := notification.NewNotification()

	invoices := invoicingService.NewInvoiceService(
		loggerProvider,
		invoicesDAL,
		invoicingService.NewPubsubPublisher(a.conn.Pubsub),
		stripeService.NewStripeService(loggerProvider, stripeClient),
	)
	followUps := followup.NewFollowUpService(loggerProvider, invoicesDAL, newMailer(loggerProvider), a.conn.CloudTasks())

	invoicing := invoicingHandlers.NewInvoices(loggerProvider, invoices, followUps)
	stripe := stripeHandlers.NewStripe(loggerProvider, stripeService.NewStripeWebhookService(loggerProvider, stripeClient, invoices, alerter))

	// Construct the web.App which holds all routes as well as common Middleware.
	app := web.NewApp(a.shutdown, a.conn, mid.Logger(), mid.Errors(), mid.Panics(), mid.Sentry())

	routes(app, a.conn.Auth(), invoicing, stripe)

	return app
}

// routes mounts every endpoint of the service on app.
func routes(app *web.App, verifier mid.TokenVerifier, invoicing *invoicingHandlers.Invoices, stripe *stripeHandlers.Stripe) {
	app.Get("/health", handlers.Ping)

	// CLIENT API
	apiV1 := web.NewGroup(app, "/api/v1", mid.AuthUser(verifier))
	{
		invoicesGroup := apiV1.NewSubgroup("/invoices")
		{
			invoicesGroup.Post("", invoicing.CreateInvoiceHandler)
			invoicesGroup.Post("/quote", invoicing.QuoteHandler)
			invoicesGroup.Get("/:invoiceID", invoicing.GetInvoiceHandler, mid.ValidatePathParamNotEmpty(invoiceIDParam))
			invoicesGroup.Post("/:invoiceID/checkout", invoicing.CheckoutHandler, mid.ValidatePathParamNotEmpty(invoiceIDParam))
		}

		adminGroup := apiV1.NewSubgroup("/admin", mid.AuthAdmin())
		{
			adminGroup.Post("/invoices/:invoiceID/cancel", invoicing.CancelInvoiceHandler, mid.ValidatePathParamNotEmpty(invoiceIDParam))
			adminGroup.Post("/invoices/follow-ups", invoicing.TriggerFollowUpsHandler)
		}
	}

	// TASKS - cron and Cloud Tasks
	tasksGroup := web.NewGroup(app, "/tasks", mid.AuthServiceAccount(mid.AllowedJobEmails()))
	{
		followUpsGroup := tasksGroup.NewSubgroup("/invoices/follow-ups")
		{
			followUpsGroup.Get("", invoicing.ScheduleFollowUpsHandler)
			followUpsGroup.Post("", invoicing.TriggerFollowUpsHandler)
		}
	}

	// WEBHOOKS
	webhooks := web.NewGroup(app, "/webhooks")
	{
		webhooks.Post("/stripe", stripe.WebhookHandler)
	}
}

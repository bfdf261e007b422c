package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/evstaffing/invoice-service/framework/web"
	"github.com/evstaffing/invoice-service/logger"
	"github.com/evstaffing/invoice-service/stripe/service"
)

const signatureHeader = "Stripe-Signature"

type eventHandler interface {
	HandleEvent(ctx context.Context, body []byte, signature string, apiVersion string) error
}

type Stripe struct {
	loggerProvider logger.Provider
	webhookService eventHandler
}

// NewStripe creates the stripe webhook handlers.
func NewStripe(loggerProvider logger.Provider, webhookService *service.StripeWebhookService) *Stripe {
	return &Stripe{
		loggerProvider: loggerProvider,
		webhookService: webhookService,
	}
}

// WebhookHandler handles events from stripe
func (h *Stripe) WebhookHandler(ctx *gin.Context) error {
	l := h.loggerProvider(ctx)

	body, err := io.ReadAll(ctx.Request.Body)
	if err != nil {
		return web.NewRequestError(web.ErrBadRequest, http.StatusBadRequest)
	}

	signature := ctx.Request.Header.Get(signatureHeader)
	if signature == "" {
		return web.NewRequestError(web.ErrBadRequest, http.StatusBadRequest)
	}

	apiVersion := ctx.Query("api_version")
	l.SetLabel("apiVersion", apiVersion)

	if err := h.webhookService.HandleEvent(ctx, body, signature, apiVersion); err != nil {
		if errors.Is(err, service.ErrInvalidSignature) {
			return web.NewRequestError(err, http.StatusBadRequest)
		}

		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	return web.Respond(ctx, nil, http.StatusOK)
}

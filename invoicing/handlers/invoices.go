package handlers

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/evstaffing/invoice-service/common"
	"github.com/evstaffing/invoice-service/framework/web"
	"github.com/evstaffing/invoice-service/invoicing/domain"
	"github.com/evstaffing/invoice-service/invoicing/followup"
	"github.com/evstaffing/invoice-service/invoicing/service"
	"github.com/evstaffing/invoice-service/logger"
)

const invoiceIDParam = "invoiceID"

type Invoices struct {
	loggerProvider logger.Provider
	service        service.Service
	followUps      followup.Service
}

func NewInvoices(loggerProvider logger.Provider, invoiceService service.Service, followUps followup.Service) *Invoices {
	return &Invoices{
		loggerProvider: loggerProvider,
		service:        invoiceService,
		followUps:      followUps,
	}
}

type QuoteRequest struct {
	Requirements []domain.StaffRequirement `json:"requirements"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

type CheckoutResponse struct {
	URL string `json:"url"`
}

// translateError maps domain errors onto request errors. Unknown errors stay 500.
func translateError(err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidRequest),
		errors.Is(err, service.ErrUnknownPosition),
		errors.Is(err, service.ErrInvalidPaymentAmount),
		errors.Is(err, followup.ErrInvalidDelay):
		return web.NewRequestError(err, http.StatusBadRequest)
	case errors.Is(err, service.ErrInvoiceNotFound):
		return web.NewRequestError(service.ErrInvoiceNotFound, http.StatusNotFound)
	case errors.Is(err, service.ErrInvalidStatusTransition),
		errors.Is(err, service.ErrInvoiceNotPayable):
		return web.NewRequestError(err, http.StatusConflict)
	default:
		return web.NewRequestError(err, http.StatusInternalServerError)
	}
}

// canAccess reports whether the caller may see the invoice: admins see every
// invoice, clients only their own.
func canAccess(ctx *gin.Context, invoice *domain.Invoice) bool {
	if ctx.GetBool(common.CtxKeys.Admin) {
		return true
	}

	email := ctx.GetString(common.CtxKeys.Email)

	return email != "" && (strings.EqualFold(email, invoice.ClientEmail) || strings.EqualFold(email, invoice.AdminEmail))
}

func (h *Invoices) QuoteHandler(ctx *gin.Context) error {
	var req QuoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	quote, err := h.service.Quote(ctx, req.Requirements)
	if err != nil {
		return translateError(err)
	}

	return web.Respond(ctx, quote, http.StatusOK)
}

func (h *Invoices) CreateInvoiceHandler(ctx *gin.Context) error {
	l := h.loggerProvider(ctx)

	var req service.CreateInvoiceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	email := ctx.GetString(common.CtxKeys.Email)

	if ctx.GetBool(common.CtxKeys.Admin) {
		if req.AdminEmail == "" {
			req.AdminEmail = email
		}
	} else if !strings.EqualFold(req.ClientEmail, email) {
		l.Warningf("%s tried to create an invoice for %s", email, req.ClientEmail)
		return web.NewRequestError(web.ErrForbidden, http.StatusForbidden)
	}

	invoice, err := h.service.CreateInvoice(ctx, &req)
	if err != nil {
		return translateError(err)
	}

	return web.Respond(ctx, invoice, http.StatusCreated)
}

func (h *Invoices) getAccessibleInvoice(ctx *gin.Context) (*domain.Invoice, error) {
	invoice, err := h.service.GetInvoice(ctx, ctx.Param(invoiceIDParam))
	if err != nil {
		return nil, translateError(err)
	}

	if !canAccess(ctx, invoice) {
		return nil, web.NewRequestError(service.ErrInvoiceNotFound, http.StatusNotFound)
	}

	return invoice, nil
}

func (h *Invoices) GetInvoiceHandler(ctx *gin.Context) error {
	invoice, err := h.getAccessibleInvoice(ctx)
	if err != nil {
		return err
	}

	return web.Respond(ctx, invoice, http.StatusOK)
}

func (h *Invoices) CheckoutHandler(ctx *gin.Context) error {
	invoice, err := h.getAccessibleInvoice(ctx)
	if err != nil {
		return err
	}

	url, err := h.service.CreateCheckout(ctx, invoice.ID)
	if err != nil {
		return translateError(err)
	}

	return web.Respond(ctx, CheckoutResponse{URL: url}, http.StatusOK)
}

func (h *Invoices) CancelInvoiceHandler(ctx *gin.Context) error {
	var req CancelRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	invoice, err := h.service.CancelInvoice(ctx, ctx.Param(invoiceIDParam), req.Reason)
	if err != nil {
		return translateError(err)
	}

	return web.Respond(ctx, invoice, http.StatusOK)
}

package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	testtools "github.com/evstaffing/invoice-service/common/test_tools"
	"github.com/evstaffing/invoice-service/framework/web"
	"github.com/evstaffing/invoice-service/invoicing/domain"
	"github.com/evstaffing/invoice-service/invoicing/followup"
	followupMocks "github.com/evstaffing/invoice-service/invoicing/followup/mocks"
	"github.com/evstaffing/invoice-service/invoicing/service"
	serviceMocks "github.com/evstaffing/invoice-service/invoicing/service/mocks"
	"github.com/evstaffing/invoice-service/logger"
	loggerMocks "github.com/evstaffing/invoice-service/logger/mocks"
)

var (
	admin  = testtools.Caller{Email: "ops@evstaffing.com", Admin: true}
	client = testtools.Caller{Email: "host@example.com"}
	other  = testtools.Caller{Email: "someone@example.com"}
)

func invoiceParams(id string) []gin.Param {
	return []gin.Param{{Key: invoiceIDParam, Value: id}}
}

func newHandler(t *testing.T) (*Invoices, *serviceMocks.Service, *followupMocks.Service) {
	invoiceService := serviceMocks.NewService(t)
	followUps := followupMocks.NewService(t)

	return NewInvoices(logger.FromContext, invoiceService, followUps), invoiceService, followUps
}

func assertStatus(t *testing.T, err error, status int) {
	t.Helper()

	var webErr *web.Error
	require.ErrorAs(t, err, &webErr)
	assert.Equal(t, status, webErr.Status)
}

func TestTranslateError(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{err: fmt.Errorf("%w: clientEmail", service.ErrInvalidRequest), status: http.StatusBadRequest},
		{err: service.ErrUnknownPosition, status: http.StatusBadRequest},
		{err: service.ErrInvalidPaymentAmount, status: http.StatusBadRequest},
		{err: fmt.Errorf("%w: 7", followup.ErrInvalidDelay), status: http.StatusBadRequest},
		{err: service.ErrInvoiceNotFound, status: http.StatusNotFound},
		{err: service.ErrInvalidStatusTransition, status: http.StatusConflict},
		{err: service.ErrInvoiceNotPayable, status: http.StatusConflict},
		{err: errors.New("deadline exceeded"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assertStatus(t, translateError(tt.err), tt.status)
		})
	}
}

func TestInvoices_QuoteHandler(t *testing.T) {
	h, invoiceService, _ := newHandler(t)

	reqs := []domain.StaffRequirement{{Position: "Bartenders", Headcount: 2, Date: "2024-06-10", StartTime: "18:00", EndTime: "22:00"}}
	ctx, w := testtools.GenerateCtxWithCaller(t, client, QuoteRequest{Requirements: reqs}, nil)

	invoiceService.On("Quote", ctx, reqs).Return(&service.Quote{FullAmount: 310.5}, nil).Once()

	require.NoError(t, h.QuoteHandler(ctx))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"fullAmount":310.5`)
}

func TestInvoices_CreateInvoiceHandler(t *testing.T) {
	reqs := []domain.StaffRequirement{{Position: "Security", Headcount: 1, Date: "2024-06-10", StartTime: "22:00", EndTime: "02:00"}}

	tests := []struct {
		name       string
		caller     testtools.Caller
		req        service.CreateInvoiceRequest
		wantAdmin  string
		serviceErr error
		wantStatus int
	}{
		{
			name:       "client creates own invoice",
			caller:     client,
			req:        service.CreateInvoiceRequest{ClientName: "Host", ClientEmail: "Host@Example.com", Requirements: reqs},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "admin defaults to caller",
			caller:     admin,
			req:        service.CreateInvoiceRequest{ClientName: "Host", ClientEmail: client.Email, Requirements: reqs},
			wantAdmin:  admin.Email,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "admin keeps explicit admin email",
			caller:     admin,
			req:        service.CreateInvoiceRequest{ClientName: "Host", ClientEmail: client.Email, AdminEmail: "billing@evstaffing.com", Requirements: reqs},
			wantAdmin:  "billing@evstaffing.com",
			wantStatus: http.StatusCreated,
		},
		{
			name:       "client cannot bill someone else",
			caller:     other,
			req:        service.CreateInvoiceRequest{ClientName: "Host", ClientEmail: client.Email, Requirements: reqs},
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "unknown position",
			caller:     client,
			req:        service.CreateInvoiceRequest{ClientName: "Host", ClientEmail: client.Email, Requirements: reqs},
			serviceErr: fmt.Errorf("%w: Jugglers", service.ErrUnknownPosition),
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, invoiceService, _ := newHandler(t)
			ctx, w := testtools.GenerateCtxWithCaller(t, tt.caller, tt.req, nil)

			if tt.wantStatus != http.StatusForbidden {
				invoiceService.On("CreateInvoice", ctx, mock.MatchedBy(func(req *service.CreateInvoiceRequest) bool {
					return req.AdminEmail == tt.wantAdmin && req.ClientName == "Host"
				})).Return(func(_ context.Context, req *service.CreateInvoiceRequest) (*domain.Invoice, error) {
					if tt.serviceErr != nil {
						return nil, tt.serviceErr
					}

					return &domain.Invoice{ID: "inv-1", PONumber: "EV-2024-123456", ClientEmail: req.ClientEmail}, nil
				}).Once()
			}

			err := h.CreateInvoiceHandler(ctx)
			if tt.wantStatus != http.StatusCreated {
				assertStatus(t, err, tt.wantStatus)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, http.StatusCreated, w.Code)
			assert.Contains(t, w.Body.String(), `"poNumber":"EV-2024-123456"`)
		})
	}
}

func TestInvoices_CreateInvoiceHandler_LogsForbiddenAttempt(t *testing.T) {
	log := loggerMocks.NewILogger(t)
	invoiceService := serviceMocks.NewService(t)
	h := NewInvoices(func(context.Context) logger.ILogger { return log }, invoiceService, followupMocks.NewService(t))

	req := service.CreateInvoiceRequest{ClientName: "Host", ClientEmail: client.Email}
	ctx, _ := testtools.GenerateCtxWithCaller(t, other, req, nil)

	log.On("Warningf", mock.AnythingOfType("string"), other.Email, client.Email).Once()

	assertStatus(t, h.CreateInvoiceHandler(ctx), http.StatusForbidden)
}

func TestInvoices_CreateInvoiceHandler_BadJSON(t *testing.T) {
	h, _, _ := newHandler(t)
	ctx, _ := testtools.GenerateCtxWithCaller(t, client, []int{1, 2}, nil)

	assertStatus(t, h.CreateInvoiceHandler(ctx), http.StatusBadRequest)
}

func TestInvoices_GetInvoiceHandler(t *testing.T) {
	invoice := &domain.Invoice{ID: "inv-1", ClientEmail: client.Email, AdminEmail: admin.Email, Status: domain.InvoiceStatusUnpaid}

	tests := []struct {
		name       string
		caller     testtools.Caller
		invoiceID  string
		serviceErr error
		wantStatus int
	}{
		{name: "client", caller: client, invoiceID: "inv-1", wantStatus: http.StatusOK},
		{name: "admin", caller: testtools.Caller{Email: "other-admin@evstaffing.com", Admin: true}, invoiceID: "inv-1", wantStatus: http.StatusOK},
		{name: "stranger", caller: other, invoiceID: "inv-1", wantStatus: http.StatusNotFound},
		{name: "missing", caller: client, invoiceID: "nope", serviceErr: service.ErrInvoiceNotFound, wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, invoiceService, _ := newHandler(t)
			ctx, w := testtools.GenerateCtxWithCaller(t, tt.caller, nil, invoiceParams(tt.invoiceID))

			if tt.serviceErr != nil {
				invoiceService.On("GetInvoice", ctx, tt.invoiceID).Return(nil, tt.serviceErr).Once()
			} else {
				invoiceService.On("GetInvoice", ctx, tt.invoiceID).Return(invoice, nil).Once()
			}

			err := h.GetInvoiceHandler(ctx)
			if tt.wantStatus != http.StatusOK {
				assertStatus(t, err, tt.wantStatus)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Body.String(), `"id":"inv-1"`)
		})
	}
}

func TestInvoices_CheckoutHandler(t *testing.T) {
	invoice := &domain.Invoice{ID: "inv-1", ClientEmail: client.Email, Status: domain.InvoiceStatusUnpaid}

	t.Run("returns url", func(t *testing.T) {
		h, invoiceService, _ := newHandler(t)
		ctx, w := testtools.GenerateCtxWithCaller(t, client, nil, invoiceParams("inv-1"))

		invoiceService.On("GetInvoice", ctx, "inv-1").Return(invoice, nil).Once()
		invoiceService.On("CreateCheckout", ctx, "inv-1").Return("https://checkout.stripe.com/c/pay/cs_1", nil).Once()

		require.NoError(t, h.CheckoutHandler(ctx))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"url":"https://checkout.stripe.com/c/pay/cs_1"}`, w.Body.String())
	})

	t.Run("paid invoice", func(t *testing.T) {
		h, invoiceService, _ := newHandler(t)
		ctx, _ := testtools.GenerateCtxWithCaller(t, client, nil, invoiceParams("inv-1"))

		invoiceService.On("GetInvoice", ctx, "inv-1").Return(invoice, nil).Once()
		invoiceService.On("CreateCheckout", ctx, "inv-1").Return("", service.ErrInvoiceNotPayable).Once()

		assertStatus(t, h.CheckoutHandler(ctx), http.StatusConflict)
	})

	t.Run("stranger", func(t *testing.T) {
		h, invoiceService, _ := newHandler(t)
		ctx, _ := testtools.GenerateCtxWithCaller(t, other, nil, invoiceParams("inv-1"))

		invoiceService.On("GetInvoice", ctx, "inv-1").Return(invoice, nil).Once()

		assertStatus(t, h.CheckoutHandler(ctx), http.StatusNotFound)
	})
}

func TestInvoices_CancelInvoiceHandler(t *testing.T) {
	t.Run("with reason", func(t *testing.T) {
		h, invoiceService, _ := newHandler(t)
		ctx, w := testtools.GenerateCtxWithCaller(t, admin, CancelRequest{Reason: "event postponed"}, invoiceParams("inv-1"))

		invoiceService.On("CancelInvoice", ctx, "inv-1", "event postponed").
			Return(&domain.Invoice{ID: "inv-1", Status: domain.InvoiceStatusCancelled}, nil).Once()

		require.NoError(t, h.CancelInvoiceHandler(ctx))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"status":"cancelled"`)
	})

	t.Run("empty body", func(t *testing.T) {
		h, invoiceService, _ := newHandler(t)
		ctx, _ := testtools.GenerateCtxWithCaller(t, admin, nil, invoiceParams("inv-1"))

		invoiceService.On("CancelInvoice", ctx, "inv-1", "").
			Return(&domain.Invoice{ID: "inv-1", Status: domain.InvoiceStatusCancelled}, nil).Once()

		require.NoError(t, h.CancelInvoiceHandler(ctx))
	})

	t.Run("already paid", func(t *testing.T) {
		h, invoiceService, _ := newHandler(t)
		ctx, _ := testtools.GenerateCtxWithCaller(t, admin, nil, invoiceParams("inv-1"))

		invoiceService.On("CancelInvoice", ctx, "inv-1", "").
			Return(nil, fmt.Errorf("%w: cancel on paid invoice", service.ErrInvalidStatusTransition)).Once()

		assertStatus(t, h.CancelInvoiceHandler(ctx), http.StatusConflict)
	})
}

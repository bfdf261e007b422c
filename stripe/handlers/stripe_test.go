package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/evstaffing/invoice-service/framework/mid"
	"github.com/evstaffing/invoice-service/framework/web"
	"github.com/evstaffing/invoice-service/logger"
	"github.com/evstaffing/invoice-service/stripe/service"
)

type fakeEventHandler struct {
	err       error
	body      string
	signature string
}

func (f *fakeEventHandler) HandleEvent(_ context.Context, body []byte, signature string, _ string) error {
	f.body = string(body)
	f.signature = signature

	return f.err
}

func TestStripe_WebhookHandler(t *testing.T) {
	tests := []struct {
		name       string
		signature  string
		handlerErr error
		wantStatus int
	}{
		{name: "acked", signature: "t=1,v1=abc", wantStatus: http.StatusOK},
		{name: "missing signature", wantStatus: http.StatusBadRequest},
		{name: "bad signature", signature: "t=1,v1=abc", handlerErr: fmt.Errorf("%w: mismatch", service.ErrInvalidSignature), wantStatus: http.StatusBadRequest},
		{name: "transient failure", signature: "t=1,v1=abc", handlerErr: errors.New("firestore unavailable"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := &fakeEventHandler{err: tt.handlerErr}
			h := &Stripe{loggerProvider: logger.FromContext, webhookService: events}

			app := web.NewTestApp(mid.Errors())
			app.Post("/webhooks/stripe", h.WebhookHandler)

			req := httptest.NewRequest(http.MethodPost, "/webhooks/stripe", strings.NewReader(`{"id":"evt_1"}`))
			if tt.signature != "" {
				req.Header.Set(signatureHeader, tt.signature)
			}

			w := httptest.NewRecorder()
			app.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)

			if tt.signature != "" {
				assert.Equal(t, `{"id":"evt_1"}`, events.body)
				assert.Equal(t, tt.signature, events.signature)
			}
		})
	}
}

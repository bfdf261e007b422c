package dal

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evstaffing/invoice-service/common"
	"github.com/evstaffing/invoice-service/invoicing/domain"
	"github.com/evstaffing/invoice-service/invoicing/ponumber"
)

func newEmulatorDAL(t *testing.T) *InvoicesFirestore {
	t.Helper()

	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}

	d, err := NewInvoicesFirestore(context.Background(), common.TestProjectID)
	require.NoError(t, err)

	return d
}

func TestNewInvoicesFirestoreWithClient(t *testing.T) {
	d := NewInvoicesFirestoreWithClient(nil)
	assert.NotNil(t, d)
}

func newInvoice(po string, now time.Time) (*domain.StaffingRequest, *domain.Invoice) {
	request := &domain.StaffingRequest{
		ClientName:  "Acme Events",
		ClientEmail: "client@example.com",
		TimeCreated: now,
	}

	invoice := &domain.Invoice{
		PONumber:             po,
		ClientEmail:          "client@example.com",
		AdminEmail:           "ops@evstaffing.com",
		Status:               domain.InvoiceStatusUnpaid,
		FullAmount:           621,
		Balance:              621,
		DueDate:              now.Add(-time.Hour),
		FollowUpDelayMinutes: 15,
		FollowUps:            map[string]time.Time{},
		TimeCreated:          now,
	}

	return request, invoice
}

func TestCreateInvoiceRejectsDuplicatePONumber(t *testing.T) {
	ctx := context.Background()
	d := newEmulatorDAL(t)

	po, err := ponumber.NewGenerator().Next()
	require.NoError(t, err)

	now := time.Now().UTC()

	request, invoice := newInvoice(po, now)
	require.NoError(t, d.CreateInvoice(ctx, request, invoice))
	assert.NotEmpty(t, invoice.ID)
	assert.Equal(t, request.ID, invoice.RequestID)

	request2, invoice2 := newInvoice(po, now)
	err = d.CreateInvoice(ctx, request2, invoice2)
	assert.ErrorIs(t, err, ponumber.ErrTaken)

	_, err = d.GetInvoice(ctx, invoice2.ID)
	assert.ErrorIs(t, err, ErrInvoiceNotFound)

	got, err := d.GetInvoice(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, po, got.PONumber)
}

func TestClaimFollowUpOnce(t *testing.T) {
	ctx := context.Background()
	d := newEmulatorDAL(t)

	po, err := ponumber.NewGenerator().Next()
	require.NoError(t, err)

	now := time.Now().UTC()
	request, invoice := newInvoice(po, now)
	require.NoError(t, d.CreateInvoice(ctx, request, invoice))

	claimed, err := d.ClaimFollowUp(ctx, invoice.ID, "15m", now)
	require.NoError(t, err)
	assert.True(t, claimed)

	claimed, err = d.ClaimFollowUp(ctx, invoice.ID, "15m", now)
	require.NoError(t, err)
	assert.False(t, claimed)

	require.NoError(t, d.ReleaseFollowUp(ctx, invoice.ID, "15m"))

	claimed, err = d.ClaimFollowUp(ctx, invoice.ID, "15m", now)
	require.NoError(t, err)
	assert.True(t, claimed)
}

func TestApplyPaymentEventIsIdempotent(t *testing.T) {
	ctx := context.Background()
	d := newEmulatorDAL(t)

	po, err := ponumber.NewGenerator().Next()
	require.NoError(t, err)

	request, invoice := newInvoice(po, time.Now().UTC())
	require.NoError(t, d.CreateInvoice(ctx, request, invoice))

	event := &domain.PaymentEvent{EventID: "evt_" + po, Type: "checkout.session.completed", AmountPaid: 100}
	pay := func(i *domain.Invoice) error {
		i.AmountPaid += 100
		i.Balance = i.FullAmount - i.AmountPaid

		return nil
	}

	updated, err := d.ApplyPaymentEvent(ctx, invoice.ID, event, pay)
	require.NoError(t, err)
	assert.Equal(t, 100.0, updated.AmountPaid)

	_, err = d.ApplyPaymentEvent(ctx, invoice.ID, event, pay)
	assert.ErrorIs(t, err, ErrEventAlreadyProcessed)

	got, err := d.GetInvoice(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, 100.0, got.AmountPaid)
}

func TestGetSettingsDefaults(t *testing.T) {
	d := newEmulatorDAL(t)

	settings, err := d.GetSettings(context.Background())
	require.NoError(t, err)
	assert.Positive(t, settings.PaymentTermDays())
}

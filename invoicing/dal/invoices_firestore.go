package dal

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/evstaffing/invoice-service/framework/connection"
	"github.com/evstaffing/invoice-service/invoicing/domain"
	"github.com/evstaffing/invoice-service/invoicing/ponumber"
)

const (
	appCollection              = "app"
	invoicingSettingsDoc       = "invoicing"
	invoicesCollection         = "invoices"
	staffingRequestsCollection = "staffingRequests"
	poNumbersCollection        = "poNumbers"
	paymentEventsCollection    = "paymentEvents"

	fieldStatus               = "status"
	fieldDueDate              = "dueDate"
	fieldFollowUpDelayMinutes = "followUpDelayMinutes"
	fieldCheckoutURL          = "checkoutUrl"
	fieldTimeModified         = "timeModified"

	maxTransactionAttempts = 5
)

var openStatuses = []string{string(domain.InvoiceStatusUnpaid), string(domain.InvoiceStatusPartiallyPaid)}

// InvoicesFirestore stores staffing requests, invoices and their PO reservations.
type InvoicesFirestore struct {
	firestoreClientFun connection.FirestoreFromContextFun
}

func NewInvoicesFirestore(ctx context.Context, projectID string) (*InvoicesFirestore, error) {
	fs, err := firestore.NewClient(ctx, projectID)
	if err != nil {
		return nil, err
	}

	return NewInvoicesFirestoreWithClient(
		func(ctx context.Context) *firestore.Client {
			return fs
		},
	), nil
}

func NewInvoicesFirestoreWithClient(fun connection.FirestoreFromContextFun) *InvoicesFirestore {
	return &InvoicesFirestore{
		firestoreClientFun: fun,
	}
}

func (d *InvoicesFirestore) invoicesCollection(ctx context.Context) *firestore.CollectionRef {
	return d.firestoreClientFun(ctx).Collection(invoicesCollection)
}

func (d *InvoicesFirestore) getInvoiceRef(ctx context.Context, invoiceID string) *firestore.DocumentRef {
	return d.invoicesCollection(ctx).Doc(invoiceID)
}

// GetSettings reads app/invoicing. A missing document yields the defaults.
func (d *InvoicesFirestore) GetSettings(ctx context.Context) (*domain.Settings, error) {
	snap, err := d.firestoreClientFun(ctx).Collection(appCollection).Doc(invoicingSettingsDoc).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return domain.DefaultSettings(), nil
		}

		return nil, err
	}

	settings := domain.DefaultSettings()
	if err := snap.DataTo(settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// CreateInvoice writes the staffing request, the PO reservation and the invoice
// in one transaction. A reservation conflict surfaces as ponumber.ErrTaken and
// nothing is written.
func (d *InvoicesFirestore) CreateInvoice(ctx context.Context, request *domain.StaffingRequest, invoice *domain.Invoice) error {
	if invoice.PONumber == "" {
		return errMissingPurchaseOrderNo
	}

	fs := d.firestoreClientFun(ctx)

	if request.ID == "" {
		request.ID = fs.Collection(staffingRequestsCollection).NewDoc().ID
	}

	if invoice.ID == "" {
		invoice.ID = fs.Collection(invoicesCollection).NewDoc().ID
	}

	request.InvoiceID = invoice.ID
	invoice.RequestID = request.ID

	requestRef := fs.Collection(staffingRequestsCollection).Doc(request.ID)
	poRef := fs.Collection(poNumbersCollection).Doc(invoice.PONumber)
	invoiceRef := fs.Collection(invoicesCollection).Doc(invoice.ID)

	err := fs.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Create(poRef, &domain.PONumberReservation{
			InvoiceID:   invoice.ID,
			TimeCreated: invoice.TimeCreated,
		}); err != nil {
			return err
		}

		if err := tx.Create(requestRef, request); err != nil {
			return err
		}

		return tx.Create(invoiceRef, invoice)
	}, firestore.MaxAttempts(maxTransactionAttempts))
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("%w: %s", ponumber.ErrTaken, invoice.PONumber)
		}

		return err
	}

	return nil
}

func invoiceFromSnap(snap *firestore.DocumentSnapshot) (*domain.Invoice, error) {
	var invoice domain.Invoice
	if err := snap.DataTo(&invoice); err != nil {
		return nil, err
	}

	invoice.ID = snap.Ref.ID

	return &invoice, nil
}

func (d *InvoicesFirestore) GetInvoice(ctx context.Context, invoiceID string) (*domain.Invoice, error) {
	snap, err := d.getInvoiceRef(ctx, invoiceID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrInvoiceNotFound
		}

		return nil, err
	}

	return invoiceFromSnap(snap)
}

func getInTx(tx *firestore.Transaction, ref *firestore.DocumentRef) (*domain.Invoice, error) {
	snap, err := tx.Get(ref)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrInvoiceNotFound
		}

		return nil, err
	}

	return invoiceFromSnap(snap)
}

// UpdateInvoice applies mutate to the current invoice and writes it back atomically.
func (d *InvoicesFirestore) UpdateInvoice(ctx context.Context, invoiceID string, mutate MutateFunc) (*domain.Invoice, error) {
	ref := d.getInvoiceRef(ctx, invoiceID)

	var updated *domain.Invoice

	err := d.firestoreClientFun(ctx).RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		invoice, err := getInTx(tx, ref)
		if err != nil {
			return err
		}

		if err := mutate(invoice); err != nil {
			return err
		}

		updated = invoice

		return tx.Set(ref, invoice)
	}, firestore.MaxAttempts(maxTransactionAttempts))
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// ApplyPaymentEvent is UpdateInvoice guarded by a per-event marker document, so a
// redelivered gateway event is rejected with ErrEventAlreadyProcessed.
func (d *InvoicesFirestore) ApplyPaymentEvent(ctx context.Context, invoiceID string, event *domain.PaymentEvent, mutate MutateFunc) (*domain.Invoice, error) {
	ref := d.getInvoiceRef(ctx, invoiceID)
	eventRef := ref.Collection(paymentEventsCollection).Doc(event.EventID)

	var updated *domain.Invoice

	err := d.firestoreClientFun(ctx).RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if _, err := tx.Get(eventRef); err == nil {
			return ErrEventAlreadyProcessed
		} else if status.Code(err) != codes.NotFound {
			return err
		}

		invoice, err := getInTx(tx, ref)
		if err != nil {
			return err
		}

		if err := mutate(invoice); err != nil {
			return err
		}

		updated = invoice

		if err := tx.Set(ref, invoice); err != nil {
			return err
		}

		return tx.Create(eventRef, event)
	}, firestore.MaxAttempts(maxTransactionAttempts))
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (d *InvoicesFirestore) SetCheckoutURL(ctx context.Context, invoiceID string, url string) error {
	_, err := d.getInvoiceRef(ctx, invoiceID).Update(ctx, []firestore.Update{
		{Path: fieldCheckoutURL, Value: url},
		{Path: fieldTimeModified, Value: firestore.ServerTimestamp},
	})
	if status.Code(err) == codes.NotFound {
		return ErrInvoiceNotFound
	}

	return err
}

// ListFollowUpCandidates returns open invoices on the given delay tier that were due on or before dueBefore.
func (d *InvoicesFirestore) ListFollowUpCandidates(ctx context.Context, delayMinutes int, dueBefore time.Time) ([]*domain.Invoice, error) {
	snaps, err := d.invoicesCollection(ctx).
		Where(fieldFollowUpDelayMinutes, "==", delayMinutes).
		Where(fieldStatus, "in", openStatuses).
		Where(fieldDueDate, "<=", dueBefore).
		Documents(ctx).
		GetAll()
	if err != nil {
		return nil, err
	}

	invoices := make([]*domain.Invoice, 0, len(snaps))

	for _, snap := range snaps {
		invoice, err := invoiceFromSnap(snap)
		if err != nil {
			return nil, err
		}

		invoices = append(invoices, invoice)
	}

	return invoices, nil
}

// ListFollowUpTiers returns the distinct delay tiers that have at least one due open invoice.
func (d *InvoicesFirestore) ListFollowUpTiers(ctx context.Context, now time.Time) ([]int, error) {
	iter := d.invoicesCollection(ctx).
		Where(fieldStatus, "in", openStatuses).
		Where(fieldDueDate, "<=", now).
		Select(fieldDueDate, fieldFollowUpDelayMinutes).
		Documents(ctx)
	defer iter.Stop()

	seen := make(map[int]struct{})

	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}

		if err != nil {
			return nil, err
		}

		var invoice domain.Invoice
		if err := snap.DataTo(&invoice); err != nil {
			return nil, err
		}

		delay := invoice.FollowUpDelayMinutes
		if !domain.ValidFollowUpDelay(delay) {
			continue
		}

		if invoice.DueDate.Add(time.Duration(delay) * time.Minute).After(now) {
			continue
		}

		seen[delay] = struct{}{}
	}

	tiers := maps.Keys(seen)
	slices.Sort(tiers)

	return tiers, nil
}

// ClaimFollowUp sets followUps.<tier> unless it is already set or the invoice is
// no longer open. It reports whether this caller won the claim.
func (d *InvoicesFirestore) ClaimFollowUp(ctx context.Context, invoiceID string, tier string, now time.Time) (bool, error) {
	if tier == "" {
		return false, ErrInvalidFollowUpTier
	}

	ref := d.getInvoiceRef(ctx, invoiceID)

	var claimed bool

	err := d.firestoreClientFun(ctx).RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		claimed = false

		invoice, err := getInTx(tx, ref)
		if err != nil {
			return err
		}

		if !invoice.Status.Open() {
			return nil
		}

		if _, sent := invoice.FollowUps[tier]; sent {
			return nil
		}

		claimed = true

		return tx.Update(ref, []firestore.Update{
			{FieldPath: firestore.FieldPath{domain.FieldFollowUps, tier}, Value: now},
		})
	}, firestore.MaxAttempts(maxTransactionAttempts))
	if err != nil {
		return false, err
	}

	return claimed, nil
}

// ReleaseFollowUp removes a claim whose send failed, so a later run can retry.
func (d *InvoicesFirestore) ReleaseFollowUp(ctx context.Context, invoiceID string, tier string) error {
	if tier == "" {
		return ErrInvalidFollowUpTier
	}

	_, err := d.getInvoiceRef(ctx, invoiceID).Update(ctx, []firestore.Update{
		{FieldPath: firestore.FieldPath{domain.FieldFollowUps, tier}, Value: firestore.Delete},
	})

	return err
}

package followup

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hashicorp/go-multierror"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/time/rate"

	"github.com/evstaffing/invoice-service/framework/connection"
	"github.com/evstaffing/invoice-service/invoicing/dal"
	"github.com/evstaffing/invoice-service/invoicing/domain"
	"github.com/evstaffing/invoice-service/logger"
	"github.com/evstaffing/invoice-service/mailer"
)

const (
	maxConcurrentSends = 4
	sendsPerSecond     = 5
)

var (
	ErrInvalidDelay     = fmt.Errorf("delay must be between %d and %d minutes", domain.MinFollowUpDelayMinutes, domain.MaxFollowUpDelayMinutes)
	errMissingRecipient = errors.New("invoice has no client email")
)

type Result struct {
	Processed int `json:"processed"`
}

//go:generate mockery --name Service --output ./mocks
type Service interface {
	TriggerFollowUpsByDelay(ctx context.Context, delayMinutes int) (*Result, error)
	ScheduleFollowUps(ctx context.Context) (int, error)
}

type FollowUpService struct {
	loggerProvider logger.Provider
	dal            dal.Invoices
	mailer         mailer.Mailer
	tasks          connection.CloudTaskClient
	limiter        *rate.Limiter
	printer        *message.Printer
	now            func() time.Time
}

func NewFollowUpService(
	loggerProvider logger.Provider,
	invoicesDAL dal.Invoices,
	m mailer.Mailer,
	tasks connection.CloudTaskClient,
) *FollowUpService {
	return &FollowUpService{
		loggerProvider: loggerProvider,
		dal:            invoicesDAL,
		mailer:         m,
		tasks:          tasks,
		limiter:        rate.NewLimiter(rate.Limit(sendsPerSecond), 1),
		printer:        message.NewPrinter(language.English),
		now:            time.Now,
	}
}

// TriggerFollowUpsByDelay emails every open invoice on the given delay tier whose
// due date passed at least delayMinutes ago. Each invoice is emailed at most once
// per tier, across overlapping runs. Failed sends are released for the next run
// and reported together in the returned error.
func (s *FollowUpService) TriggerFollowUpsByDelay(ctx context.Context, delayMinutes int) (*Result, error) {
	l := s.loggerProvider(ctx)

	if !domain.ValidFollowUpDelay(delayMinutes) {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDelay, delayMinutes)
	}

	now := s.now().UTC()
	tier := domain.FollowUpTier(delayMinutes)
	dueBefore := now.Add(-time.Duration(delayMinutes) * time.Minute)

	candidates, err := s.dal.ListFollowUpCandidates(ctx, delayMinutes, dueBefore)
	if err != nil {
		return nil, err
	}

	l.Infof("%d follow-up candidates on tier %s", len(candidates), tier)

	var (
		processed int64
		mu        sync.Mutex
		errs      *multierror.Error
	)

	var g errgroup.Group
	g.SetLimit(maxConcurrentSends)

	for _, invoice := range candidates {
		invoice := invoice

		g.Go(func() error {
			sent, err := s.followUp(ctx, invoice, tier, now)
			if err != nil {
				mu.Lock()
				errs = multierror.Append(errs, fmt.Errorf("invoice %s: %w", invoice.ID, err))
				mu.Unlock()

				return nil
			}

			if sent {
				atomic.AddInt64(&processed, 1)
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{Processed: int(processed)}

	if err := errs.ErrorOrNil(); err != nil {
		l.Errorf("tier %s: %d sent, %d failed: %s", tier, result.Processed, errs.Len(), err)
		return result, err
	}

	l.Infof("tier %s: %d follow-ups sent", tier, result.Processed)

	return result, nil
}

// followUp claims the tier marker, sends the email and releases the claim if the send fails.
func (s *FollowUpService) followUp(ctx context.Context, invoice *domain.Invoice, tier string, now time.Time) (bool, error) {
	l := s.loggerProvider(ctx)

	if invoice.ClientEmail == "" {
		return false, errMissingRecipient
	}

	claimed, err := s.dal.ClaimFollowUp(ctx, invoice.ID, tier, now)
	if err != nil {
		return false, err
	}

	if !claimed {
		l.Debugf("follow-up %s already sent for invoice %s", tier, invoice.ID)
		return false, nil
	}

	err = s.limiter.Wait(ctx)
	if err == nil {
		err = s.mailer.Send(ctx, s.renderEmail(invoice))
	}

	if err != nil {
		if rerr := s.dal.ReleaseFollowUp(context.WithoutCancel(ctx), invoice.ID, tier); rerr != nil {
			l.Errorf("failed to release follow-up %s for invoice %s: %s", tier, invoice.ID, rerr)
		}

		return false, err
	}

	return true, nil
}

package followup

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"github.com/hashicorp/go-multierror"

	"github.com/evstaffing/invoice-service/common"
)

// TriggerPath is the task endpoint that runs a single delay tier.
const TriggerPath = "/tasks/invoices/follow-ups"

type TriggerRequest struct {
	DelayMinutes int `json:"delayMinutes"`
}

// ScheduleFollowUps enqueues one trigger task per delay tier that has due invoices.
func (s *FollowUpService) ScheduleFollowUps(ctx context.Context) (int, error) {
	l := s.loggerProvider(ctx)

	tiers, err := s.dal.ListFollowUpTiers(ctx, s.now().UTC())
	if err != nil {
		return 0, err
	}

	var (
		scheduled int
		errs      *multierror.Error
	)

	for _, delay := range tiers {
		body, err := json.Marshal(TriggerRequest{DelayMinutes: delay})
		if err != nil {
			return scheduled, err
		}

		config := &common.CloudTaskConfig{
			Method: cloudtaskspb.HttpMethod_POST,
			Path:   TriggerPath,
			Queue:  common.TaskQueueInvoiceFollowUps,
			Body:   body,
		}

		if _, err := s.tasks.CreateTask(ctx, config); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("tier %d: %w", delay, err))
			continue
		}

		scheduled++
	}

	l.Infof("scheduled %d of %d follow-up tiers", scheduled, len(tiers))

	return scheduled, errs.ErrorOrNil()
}

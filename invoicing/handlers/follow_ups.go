package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/evstaffing/invoice-service/framework/web"
	"github.com/evstaffing/invoice-service/invoicing/domain"
	"github.com/evstaffing/invoice-service/invoicing/followup"
)

type ScheduleResponse struct {
	Scheduled int `json:"scheduled"`
}

// TriggerFollowUpsHandler runs one delay tier. It serves both the admin
// endpoint and the Cloud Task worker.
func (h *Invoices) TriggerFollowUpsHandler(ctx *gin.Context) error {
	l := h.loggerProvider(ctx)

	var req followup.TriggerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		return web.NewRequestError(err, http.StatusBadRequest)
	}

	l.SetLabel("delayMinutes", domain.FollowUpTier(req.DelayMinutes))

	result, err := h.followUps.TriggerFollowUpsByDelay(ctx, req.DelayMinutes)
	if err != nil {
		return translateError(err)
	}

	return web.Respond(ctx, result, http.StatusOK)
}

// ScheduleFollowUpsHandler is the cron entry point that fans out one task per tier.
func (h *Invoices) ScheduleFollowUpsHandler(ctx *gin.Context) error {
	scheduled, err := h.followUps.ScheduleFollowUps(ctx)
	if err != nil {
		return web.NewRequestError(err, http.StatusInternalServerError)
	}

	return web.Respond(ctx, ScheduleResponse{Scheduled: scheduled}, http.StatusOK)
}

package worker

import (
	"context"
	"errors"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"github.com/aadeeee/booking-backend/internal/service"
)

// ExpirySweepHandler runs one expiry sweep per scheduled tick.
type ExpirySweepHandler struct {
	sweeper *service.SweepService
}

func NewExpirySweepHandler(sweeper *service.SweepService) *ExpirySweepHandler {
	if sweeper == nil {
		panic("SweepService cannot be nil for ExpirySweepHandler")
	}
	return &ExpirySweepHandler{sweeper: sweeper}
}

// ProcessTask implements asynq.Handler. A tick that lands while the
// previous one is still running is dropped, not queued: the next
// scheduled tick will pick up whatever is due. Store failures are
// returned so asynq records them, but the tick itself is cheap to retry
// on the next cadence.
func (h *ExpirySweepHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	err := h.sweeper.RunTick(ctx)
	if errors.Is(err, service.ErrSweepInProgress) {
		logrus.Info("Expiry sweep tick skipped: previous tick still running")
		return nil
	}
	return err
}

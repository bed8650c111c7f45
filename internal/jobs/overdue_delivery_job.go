package jobs

import (
	"context"
	"log/slog"
	"time"

	"fulfillment/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// OverdueDeliveryJob watches for orders that have missed their estimated
// delivery target. Runs every minute and logs each overdue order so
// operations can intervene; it never mutates order state itself.
type OverdueDeliveryJob struct {
	orderRepo ports.OrderRepository
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewOverdueDeliveryJob creates a new watchdog for overdue deliveries.
func NewOverdueDeliveryJob(orderRepo ports.OrderRepository, logger *slog.Logger) *OverdueDeliveryJob {
	return &OverdueDeliveryJob{
		orderRepo: orderRepo,
		cron:      cron.New(cron.WithSeconds()),
		logger:    logger.With("component", "overdue_delivery_job"),
	}
}

// Start begins the overdue delivery check to run every minute.
func (j *OverdueDeliveryJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * * *", func() {
		ctx := context.Background()

		overdue, err := j.orderRepo.GetAllOverdue(ctx, time.Now().UTC())
		if err != nil {
			j.logger.ErrorContext(ctx, "Overdue delivery check failed", "error", err)
			return
		}

		for _, o := range overdue {
			j.logger.WarnContext(ctx, "Order past its estimated delivery target",
				"order_id", o.ID().String(),
				"status", o.Status().String(),
				"estimated_delivery_at", o.EstimatedDeliveryAt(),
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Overdue delivery job started (running every minute)")
	return nil
}

// Stop stops the overdue delivery job.
func (j *OverdueDeliveryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Overdue delivery job stopped")
}

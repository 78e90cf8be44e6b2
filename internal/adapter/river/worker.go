package river

import (
	"context"
	"log/slog"

	"github.com/riverqueue/river"
)

// OrderEventWorker records order events from the River queue in the
// structured log, where buyer and seller notifications are picked up.
type OrderEventWorker struct {
	river.WorkerDefaults[OrderEventJobArgs]
}

// Work processes a single order event job.
func (w *OrderEventWorker) Work(ctx context.Context, job *river.Job[OrderEventJobArgs]) error {
	slog.InfoContext(ctx, "processing order event",
		"event", job.Args.Event,
		"order_id", job.Args.OrderID,
		"status", job.Args.Status,
		"buyer_id", job.Args.BuyerID,
		"seller_id", job.Args.SellerID,
		"job_id", job.ID,
		"attempt", job.Attempt,
	)
	return nil
}

package orders

import (
	"context"
	"time"
)

// Skip reasons surfaced in the run summary.
const (
	ReasonNoPublishTime   = "no publish time"
	ReasonOutsideWindow   = "outside window"
	ReasonAlreadyRendered = "already rendered"
)

// Decision classifies one work order for this run.
type Decision struct {
	Order    WorkOrder
	JobID    string
	Eligible bool
	Reason   string
}

// ExistsFunc reports whether output for the given job already exists in its
// destination. It is the sole idempotency source of truth; see the package
// notes on the accepted overlapping-run race.
type ExistsFunc func(ctx context.Context, order WorkOrder, jobID string) (bool, error)

// SelectPending classifies every order against the publish window
// [now, now+horizon] (inclusive at both boundaries) and the idempotency
// check. Orders are returned in document order; an order without a schedule
// never renders automatically.
func SelectPending(ctx context.Context, list []WorkOrder, now time.Time, horizon time.Duration, exists ExistsFunc) ([]Decision, error) {
	windowEnd := now.Add(horizon)
	out := make([]Decision, 0, len(list))
	for _, order := range list {
		decision := Decision{Order: order, JobID: JobID(order)}
		switch {
		case order.PublishAt == nil:
			decision.Reason = ReasonNoPublishTime
		case order.PublishAt.Before(now) || order.PublishAt.After(windowEnd):
			decision.Reason = ReasonOutsideWindow
		default:
			done, err := exists(ctx, order, decision.JobID)
			if err != nil {
				return nil, err
			}
			if done {
				decision.Reason = ReasonAlreadyRendered
			} else {
				decision.Eligible = true
			}
		}
		out = append(out, decision)
	}
	return out, nil
}

package notification

import (
	"context"
	"errors"
	"fmt"
	"time"

	"encore.dev/beta/errs"
	"encore.dev/pubsub"
	"encore.dev/rlog"
	"encore.dev/storage/cache"

	"bigmouth.app/bus"
	"bigmouth.app/escalation"
	"bigmouth.app/notification/middleware/idempotency"
)

// deliveryAttempts counts failed deliveries per envelope id
var deliveryAttempts = cache.NewIntKeyspace[string](
	idempotency.Cluster,
	cache.KeyspaceConfig{
		KeyPattern:    "delivery-attempts/:key",
		DefaultExpiry: cache.ExpireIn(24 * time.Hour),
	},
)

type AttemptCounter interface {
	Increment(ctx context.Context, eventID string) (int64, error)
}

type DeadLetterQueue interface {
	Enqueue(ctx context.Context, letter *escalation.DeadLetter) error
}

type FailureReporter interface {
	Report(ctx context.Context, failure *escalation.DeliveryFailure) error
}

type cacheAttemptCounter struct{}

func (cacheAttemptCounter) Increment(ctx context.Context, eventID string) (int64, error) {
	return deliveryAttempts.Increment(ctx, eventID, 1)
}

type topicDeadLetterQueue struct {
	topic *pubsub.Topic[*escalation.DeadLetter]
}

func (q *topicDeadLetterQueue) Enqueue(ctx context.Context, letter *escalation.DeadLetter) error {
	_, err := q.topic.Publish(ctx, letter)
	return err
}

type topicFailureReporter struct {
	topic *pubsub.Topic[*escalation.DeliveryFailure]
}

func (r *topicFailureReporter) Report(ctx context.Context, failure *escalation.DeliveryFailure) error {
	_, err := r.topic.Publish(ctx, failure)
	return err
}

// deliveryGuard is the dispatch layer around a bus handler: it enforces the
// invocation time budget, lets the bus redeliver failures until the attempt
// budget is spent, and then hands the envelope off to the dead-letter queue.
type deliveryGuard struct {
	subscription string
	timeout      time.Duration
	maxAttempts  int64

	attempts    AttemptCounter
	deadLetters DeadLetterQueue
	failures    FailureReporter
	now         func() time.Time
}

func (g *deliveryGuard) Wrap(h bus.Handler) bus.Handler {
	return func(ctx context.Context, env *bus.Envelope) error {
		err := g.invoke(ctx, h, env)
		if err == nil {
			return nil
		}

		if errors.Is(err, idempotency.ErrInProgress) {
			// not a failure of this event; retry once the holder finishes
			return err
		}

		attempt := g.countAttempt(ctx, env, err)
		if attempt < g.maxAttempts {
			rlog.Warn("event delivery failed, awaiting redelivery",
				"error", err, "event_id", env.ID, "attempt", attempt, "max_attempts", g.maxAttempts)
			return err
		}

		return g.handOff(ctx, env, err, attempt)
	}
}

func (g *deliveryGuard) invoke(ctx context.Context, h bus.Handler, env *bus.Envelope) error {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	return h(ctx, env)
}

// countAttempt returns the attempt number of this failure. Permanent errors
// and an unusable counter exhaust the budget immediately so the event is
// never dropped silently.
func (g *deliveryGuard) countAttempt(ctx context.Context, env *bus.Envelope, err error) int64 {
	if errs.Code(err) == errs.InvalidArgument {
		return g.maxAttempts
	}

	attempt, countErr := g.attempts.Increment(ctx, env.ID)
	if countErr != nil {
		rlog.Error("failed to count delivery attempt", "error", countErr, "event_id", env.ID)
		return g.maxAttempts
	}
	return attempt
}

func (g *deliveryGuard) handOff(ctx context.Context, env *bus.Envelope, cause error, attempt int64) error {
	now := g.now().UTC()
	letter := &escalation.DeadLetter{
		EventID:      env.ID,
		Subscription: g.subscription,
		Envelope:     env,
		Error:        cause.Error(),
		Attempts:     int(attempt),
		FailedAt:     now,
	}

	if err := g.deadLetters.Enqueue(ctx, letter); err != nil {
		deadLetterDeliveryFailures.Increment()
		rlog.Error("failed to hand off event to dead-letter queue",
			"error", err, "cause", cause, "event_id", env.ID, "subscription", g.subscription)

		if reportErr := g.failures.Report(ctx, &escalation.DeliveryFailure{
			EventID:      env.ID,
			Subscription: g.subscription,
			Error:        err.Error(),
			FailedAt:     now,
		}); reportErr != nil {
			rlog.Error("failed to report dead-letter delivery failure", "error", reportErr, "event_id", env.ID)
		}

		return fmt.Errorf("dead-letter handoff for event %s: %w", env.ID, err)
	}

	rlog.Error("event moved to dead-letter queue",
		"cause", cause, "event_id", env.ID, "subscription", g.subscription, "attempts", attempt)
	return nil
}

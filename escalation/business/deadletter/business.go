package deadletter

import (
	"context"
	"time"

	"bigmouth.app/bus"
	"bigmouth.app/escalation/model"
	"bigmouth.app/escalation/store/deadletters"
)

type Business interface {
	Record(ctx context.Context, letter *model.DeadLetter) error
	RecordDeliveryFailure(ctx context.Context, failure *model.DeliveryFailure) error
	ListPending(ctx context.Context, limit, offset int32) ([]*model.DeadLetter, error)
	PendingCount(ctx context.Context) (int64, error)
	DeliveryFailuresSince(ctx context.Context, since time.Time) (int64, error)
	Drain(ctx context.Context, eventID string) error
	Redeliver(ctx context.Context, eventID string) (string, error)
}

type business struct {
	deadLetterRepo deadletters.Querier
	publisher      bus.Publisher
}

// NewDeadLetterBusiness creates the dead-letter business layer. The publisher
// is used to put replayed events back on the bus.
func NewDeadLetterBusiness(deadLetterRepo deadletters.Querier, publisher bus.Publisher) Business {
	return &business{
		deadLetterRepo: deadLetterRepo,
		publisher:      publisher,
	}
}

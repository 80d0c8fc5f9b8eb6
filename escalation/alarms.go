package escalation

import (
	"context"
	"errors"

	"encore.dev/cron"
	"encore.dev/pubsub"
	"encore.dev/rlog"

	"bigmouth.app/escalation/alarm"
)

var deadLetterDepthAlarm = alarm.Definition{
	Name:        "dead-letter-depth",
	Description: "dead letters are waiting to be drained or replayed",
	Threshold:   0,
}

var deliveryFailureAlarm = alarm.Definition{
	Name:        "dead-letter-delivery-failure",
	Description: "failed deliveries could not be handed off to the dead-letter queue",
	Threshold:   0,
}

var _ = cron.NewJob("evaluate-alarms", cron.JobConfig{
	Title:    "Evaluate dead-letter alarms",
	Every:    1 * cron.Minute,
	Endpoint: EvaluateAlarms,
})

// EvaluateAlarms takes one datapoint per alarm and updates its state.
//
//encore:api private
func (s *Service) EvaluateAlarms(ctx context.Context) error {
	depth := s.depthDatapoint(ctx)
	if !depth.Missing {
		deadLetterDepth.Set(depth.Value)
	}

	var errList []error
	for _, eval := range []struct {
		monitor   *alarm.Monitor
		datapoint alarm.Datapoint
	}{
		{monitor: s.depthAlarm, datapoint: depth},
		{monitor: s.failureAlarm, datapoint: s.failureDatapoint(ctx)},
	} {
		state, err := eval.monitor.Evaluate(ctx, eval.datapoint)
		if err != nil {
			rlog.Error("failed to evaluate alarm", "error", err, "alarm", eval.monitor.Name())
			errList = append(errList, err)
			continue
		}
		rlog.Debug("alarm evaluated", "alarm", eval.monitor.Name(), "state", state, "value", eval.datapoint.Value, "missing", eval.datapoint.Missing)
	}
	return errors.Join(errList...)
}

func (s *Service) depthDatapoint(ctx context.Context) alarm.Datapoint {
	count, err := s.deadLetters.PendingCount(ctx)
	if err != nil {
		rlog.Warn("dead-letter depth unavailable", "error", err)
		return alarm.Datapoint{Missing: true}
	}
	return alarm.Datapoint{Value: float64(count)}
}

func (s *Service) failureDatapoint(ctx context.Context) alarm.Datapoint {
	count, err := s.deadLetters.DeliveryFailuresSince(ctx, s.now().Add(-failureWindow()))
	if err != nil {
		rlog.Warn("dead-letter delivery failures unavailable", "error", err)
		return alarm.Datapoint{Missing: true}
	}
	return alarm.Datapoint{Value: float64(count)}
}

type alertNotifier struct {
	topic *pubsub.Topic[*Alert]
}

func (n *alertNotifier) Notify(ctx context.Context, change alarm.Change) error {
	_, err := n.topic.Publish(ctx, &Alert{
		Alarm:     change.Alarm,
		State:     string(change.To),
		Reason:    change.Reason,
		Value:     change.Value,
		Threshold: change.Threshold,
		RaisedAt:  change.At,
	})
	return err
}

package escalation

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/worker"

	"encore.dev/rlog"
	"encore.dev/storage/sqldb"

	"bigmouth.app/bus"
	"bigmouth.app/escalation/alarm"
	"bigmouth.app/escalation/business/deadletter"
	"bigmouth.app/escalation/store/alarms"
	"bigmouth.app/escalation/store/deadletters"
	"bigmouth.app/escalation/workflow"
)

var escalationDB = sqldb.NewDatabase("escalation", sqldb.DatabaseConfig{
	Migrations: "./migrations",
})

var validate = validator.New()

//encore:service
type Service struct {
	deadLetters  deadletter.Business
	depthAlarm   *alarm.Monitor
	failureAlarm *alarm.Monitor
	temporal     client.Client
	worker       worker.Worker
	now          func() time.Time
}

func initService() (*Service, error) {
	pgxdb := sqldb.Driver(escalationDB)

	rlog.Info("Initializing dead-letter store")
	deadLetters := deadletter.NewDeadLetterBusiness(deadletters.New(pgxdb), bus.NewPublisher())

	states := alarm.NewPostgresStateStore(pgxdb, alarms.New(pgxdb))
	notifier := &alertNotifier{topic: OperatorAlerts}

	s := &Service{
		deadLetters:  deadLetters,
		depthAlarm:   alarm.NewMonitor(deadLetterDepthAlarm, states, notifier),
		failureAlarm: alarm.NewMonitor(deliveryFailureAlarm, states, notifier),
		now:          time.Now,
	}

	c, err := client.Dial(client.Options{
		HostPort:  cfg.Temporal.HostPort(),
		Namespace: cfg.Temporal.Namespace(),
	})
	if err != nil {
		// dead letters are still captured and alarmed on; only replay needs Temporal
		rlog.Error("failed to connect to temporal, dead-letter replay disabled", "error", err)
		return s, nil
	}

	w := worker.New(c, cfg.Temporal.TaskQueue(), worker.Options{})
	w.RegisterWorkflow(workflow.ReplayDeadLetters)
	w.RegisterActivity(&workflow.Activities{DeadLetters: deadLetters})
	if err := w.Start(); err != nil {
		c.Close()
		return nil, fmt.Errorf("start temporal worker: %w", err)
	}

	rlog.Info("Temporal worker started", "task_queue", cfg.Temporal.TaskQueue())
	s.temporal = c
	s.worker = w
	return s, nil
}

func (s *Service) Shutdown(force context.Context) {
	if s.worker != nil {
		s.worker.Stop()
	}
	if s.temporal != nil {
		s.temporal.Close()
	}
}

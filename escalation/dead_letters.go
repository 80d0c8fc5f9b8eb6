package escalation

import (
	"context"
	"fmt"

	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"encore.dev/beta/errs"
	"encore.dev/rlog"

	"bigmouth.app/escalation/model"
	"bigmouth.app/escalation/workflow"
)

const replayWorkflowID = "dead-letter-replay"

type ListDeadLettersRequest struct {
	Limit  int `query:"limit"`
	Offset int `query:"offset"`
}

type ListDeadLettersResponse struct {
	DeadLetters []model.DeadLetter `json:"dead_letters"`
	Pending     int64              `json:"pending"`
	Limit       int                `json:"limit"`
	Offset      int                `json:"offset"`
}

//encore:api auth method=GET path=/dead-letters
func (s *Service) ListDeadLetters(ctx context.Context, req *ListDeadLettersRequest) (*ListDeadLettersResponse, error) {
	if req.Limit <= 0 {
		req.Limit = 10
	}
	if req.Limit > 100 {
		req.Limit = 100
	}
	if req.Offset < 0 {
		req.Offset = 0
	}

	letters, err := s.deadLetters.ListPending(ctx, int32(req.Limit), int32(req.Offset))
	if err != nil {
		rlog.Error("failed to list dead letters", "error", err)
		return nil, err
	}

	pending, err := s.deadLetters.PendingCount(ctx)
	if err != nil {
		rlog.Error("failed to count dead letters", "error", err)
		return nil, err
	}

	response := &ListDeadLettersResponse{
		DeadLetters: make([]model.DeadLetter, len(letters)),
		Pending:     pending,
		Limit:       req.Limit,
		Offset:      req.Offset,
	}
	for i, letter := range letters {
		response.DeadLetters[i] = *letter
	}
	return response, nil
}

type DrainDeadLetterResponse struct {
	EventID string `json:"event_id"`
}

// DrainDeadLetter discards a dead letter without redelivering it.
//
//encore:api auth method=POST path=/dead-letters/:id/drain
func (s *Service) DrainDeadLetter(ctx context.Context, id string) (*DrainDeadLetterResponse, error) {
	if err := s.deadLetters.Drain(ctx, id); err != nil {
		rlog.Error("failed to drain dead letter", "error", err, "event_id", id)
		return nil, err
	}
	return &DrainDeadLetterResponse{EventID: id}, nil
}

type ReplayDeadLettersRequest struct {
	Limit int `json:"limit" validate:"min=0,max=1000"`
}

type ReplayDeadLettersResponse struct {
	WorkflowID string `json:"workflow_id"`
	RunID      string `json:"run_id"`
}

// ReplayDeadLetters starts putting pending dead letters back on the bus. At
// most one replay runs at a time.
//
//encore:api auth method=POST path=/dead-letters/replay
func (s *Service) ReplayDeadLetters(ctx context.Context, req *ReplayDeadLettersRequest) (*ReplayDeadLettersResponse, error) {
	if s.temporal == nil {
		return nil, &errs.Error{Code: errs.Unavailable, Message: "dead-letter replay is unavailable"}
	}

	options := client.StartWorkflowOptions{
		ID:        replayWorkflowID,
		TaskQueue: cfg.Temporal.TaskQueue(),

		WorkflowExecutionErrorWhenAlreadyStarted: true,
	}

	run, err := s.temporal.ExecuteWorkflow(ctx, options, workflow.ReplayDeadLetters, workflow.ReplayParams{
		Limit: int32(req.Limit),
	})
	if err != nil {
		if temporal.IsWorkflowExecutionAlreadyStartedError(err) {
			rlog.Info("dead-letter replay already running", "workflow_id", replayWorkflowID)
			return nil, &errs.Error{Code: errs.Aborted, Message: "a dead-letter replay is already running"}
		}
		rlog.Error("failed to start dead-letter replay", "error", err)
		return nil, &errs.Error{Code: errs.Unavailable, Message: fmt.Sprintf("failed to start replay: %v", err)}
	}

	rlog.Info("dead-letter replay started", "workflow_id", run.GetID(), "run_id", run.GetRunID())
	return &ReplayDeadLettersResponse{
		WorkflowID: run.GetID(),
		RunID:      run.GetRunID(),
	}, nil
}

// Validate implements validation for ReplayDeadLettersRequest using go-playground/validator
func (r *ReplayDeadLettersRequest) Validate() error {
	if err := validate.Struct(r); err != nil {
		return &errs.Error{Code: errs.InvalidArgument, Message: err.Error()}
	}
	return nil
}

package worker

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/boardflow/backend/pkg/queue"
)

// DequeueTimeout bounds one blocking pop so the loop can notice cancellation.
const DequeueTimeout = 5 * time.Second

// Jobs is the part of the queue the reminder worker consumes.
type Jobs interface {
	PromoteDue(ctx context.Context) (int, error)
	Dequeue(ctx context.Context, timeout time.Duration) (*queue.Job, error)
	Retry(ctx context.Context, job *queue.Job) error
}

// Dispatcher delivers one reminder over its methods.
type Dispatcher interface {
	Dispatch(ctx context.Context, p queue.ReminderPayload) error
}

// ReminderProcessor moves due reminders onto the ready list and delivers them.
type ReminderProcessor struct {
	jobs       Jobs
	dispatcher Dispatcher
	logger     *zap.Logger
	backoff    time.Duration
}

// NewReminderProcessor creates a reminder processor.
func NewReminderProcessor(jobs Jobs, dispatcher Dispatcher, logger *zap.Logger) *ReminderProcessor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReminderProcessor{jobs: jobs, dispatcher: dispatcher, logger: logger, backoff: queue.RetryBackoff}
}

// Process executes one reminder job.
func (p *ReminderProcessor) Process(ctx context.Context, job *queue.Job) error {
	payload, err := job.Reminder()
	if err != nil {
		return err
	}
	if len(payload.Recipients) == 0 {
		p.logger.Info("reminder has no recipients", zap.String("job_id", job.ID), zap.String("meeting_id", payload.MeetingID))
		return nil
	}
	if err := p.dispatcher.Dispatch(ctx, payload); err != nil {
		return fmt.Errorf("dispatch: %w", err)
	}
	p.logger.Info("reminder sent",
		zap.String("job_id", job.ID),
		zap.String("meeting_id", payload.MeetingID),
		zap.String("kind", payload.Kind),
		zap.Int("recipients", len(payload.Recipients)),
	)
	return nil
}

// Step promotes due jobs and handles at most one ready job. It reports whether a job was taken.
func (p *ReminderProcessor) Step(ctx context.Context) (bool, error) {
	if _, err := p.jobs.PromoteDue(ctx); err != nil {
		return false, fmt.Errorf("promote: %w", err)
	}
	job, err := p.jobs.Dequeue(ctx, DequeueTimeout)
	if err != nil {
		return false, fmt.Errorf("dequeue: %w", err)
	}
	if job == nil {
		return false, nil
	}

	p.logger.Debug("processing job", zap.String("job_id", job.ID), zap.String("type", string(job.Type)))
	if err := p.Process(ctx, job); err != nil {
		p.logger.Error("job failed", zap.String("job_id", job.ID), zap.Error(err))
		if reErr := p.jobs.Retry(ctx, job); reErr != nil {
			p.logger.Error("retry enqueue failed", zap.Error(reErr))
		}
		return true, err
	}
	return true, nil
}

// Run starts the worker loop until ctx is cancelled.
func (p *ReminderProcessor) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			p.logger.Info("reminder worker stopping")
			return
		default:
		}

		if _, err := p.Step(ctx); err != nil {
			if ctx.Err() != nil {
				continue
			}
			p.logger.Warn("reminder step failed", zap.Error(err))
			p.sleep(ctx)
		}
	}
}

func (p *ReminderProcessor) sleep(ctx context.Context) {
	t := time.NewTimer(p.backoff)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	// QueueReminders is the Redis list key for reminder jobs that are due.
	QueueReminders = "worker:reminders"
	// ScheduledReminders is the Redis sorted set of reminder jobs scored by due unix time.
	ScheduledReminders = "worker:reminders:scheduled"
	// QueueDLQ is the dead-letter queue for failed jobs after retries.
	QueueDLQ = "worker:dlq"
	// MaxRetries is the number of times to retry a job before moving to DLQ.
	MaxRetries = 3
	// RetryBackoff is the delay between retries.
	RetryBackoff = 10 * time.Second
	// PromoteBatch caps how many scheduled jobs one PromoteDue call moves.
	PromoteBatch = 100
)

// JobType identifies the job kind.
type JobType string

const (
	JobTypeReminder JobType = "meeting_reminder"
)

// Reminder kinds.
const (
	ReminderInitial  = "initial"
	ReminderFollowUp = "follow_up"
)

// Recipient is a person a reminder is sent to.
type Recipient struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
}

// ReminderPayload is the payload for meeting reminder jobs.
type ReminderPayload struct {
	UserID      string      `json:"user_id"`
	MeetingID   string      `json:"meeting_id"`
	Title       string      `json:"title"`
	Location    string      `json:"location"`
	StartsAt    time.Time   `json:"starts_at"`
	Kind        string      `json:"kind"`
	Methods     []string    `json:"methods"`
	Recipients  []Recipient `json:"recipients"`
	RequireRSVP bool        `json:"require_rsvp"`
}

// Job is a generic job envelope.
type Job struct {
	ID        string          `json:"id"`
	Type      JobType         `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	Attempt   int             `json:"attempt"`
	DueAt     time.Time       `json:"due_at"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewReminderJob wraps payload in a job due at dueAt.
func NewReminderJob(payload ReminderPayload, dueAt time.Time) (*Job, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return &Job{
		ID:        uuid.New().String(),
		Type:      JobTypeReminder,
		Payload:   body,
		DueAt:     dueAt,
		CreatedAt: time.Now(),
	}, nil
}

// Reminder decodes the payload of a reminder job.
func (j *Job) Reminder() (ReminderPayload, error) {
	var p ReminderPayload
	if j.Type != JobTypeReminder {
		return p, fmt.Errorf("unknown job type: %s", j.Type)
	}
	if err := json.Unmarshal(j.Payload, &p); err != nil {
		return p, fmt.Errorf("unmarshal payload: %w", err)
	}
	return p, nil
}

// Queue schedules, enqueues and dequeues jobs via Redis.
type Queue struct {
	client *redis.Client
	logger *zap.Logger
	now    func() time.Time
}

// NewQueue creates a new Redis-backed job queue.
func NewQueue(client *redis.Client, logger *zap.Logger) *Queue {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Queue{client: client, logger: logger, now: time.Now}
}

// ScheduleReminder stores a reminder until dueAt. Reminders already due are enqueued directly.
func (q *Queue) ScheduleReminder(ctx context.Context, payload ReminderPayload, dueAt time.Time) (*Job, error) {
	job, err := NewReminderJob(payload, dueAt)
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(job)
	if err != nil {
		return nil, fmt.Errorf("marshal job: %w", err)
	}
	if !dueAt.After(q.now()) {
		if err := q.client.RPush(ctx, QueueReminders, raw).Err(); err != nil {
			return nil, fmt.Errorf("rpush: %w", err)
		}
		q.logger.Debug("enqueued reminder job", zap.String("job_id", job.ID), zap.String("meeting_id", payload.MeetingID))
		return job, nil
	}
	if err := q.client.ZAdd(ctx, ScheduledReminders, redis.Z{Score: float64(dueAt.Unix()), Member: raw}).Err(); err != nil {
		return nil, fmt.Errorf("zadd: %w", err)
	}
	q.logger.Debug("scheduled reminder job",
		zap.String("job_id", job.ID),
		zap.String("meeting_id", payload.MeetingID),
		zap.Time("due_at", dueAt),
	)
	return job, nil
}

// PromoteDue moves scheduled jobs whose due time has passed onto the ready list and
// returns how many moved. A job removed by another worker first is skipped.
func (q *Queue) PromoteDue(ctx context.Context) (int, error) {
	members, err := q.client.ZRangeByScore(ctx, ScheduledReminders, &redis.ZRangeBy{
		Min:   "-inf",
		Max:   strconv.FormatInt(q.now().Unix(), 10),
		Count: PromoteBatch,
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("zrangebyscore: %w", err)
	}
	moved := 0
	for _, m := range members {
		removed, err := q.client.ZRem(ctx, ScheduledReminders, m).Result()
		if err != nil {
			return moved, fmt.Errorf("zrem: %w", err)
		}
		if removed == 0 {
			continue
		}
		if err := q.client.RPush(ctx, QueueReminders, m).Err(); err != nil {
			return moved, fmt.Errorf("rpush: %w", err)
		}
		moved++
	}
	if moved > 0 {
		q.logger.Info("promoted due reminders", zap.Int("count", moved))
	}
	return moved, nil
}

// Pending returns the number of scheduled and ready reminder jobs.
func (q *Queue) Pending(ctx context.Context) (scheduled, ready int64, err error) {
	if scheduled, err = q.client.ZCard(ctx, ScheduledReminders).Result(); err != nil {
		return 0, 0, err
	}
	if ready, err = q.client.LLen(ctx, QueueReminders).Result(); err != nil {
		return 0, 0, err
	}
	return scheduled, ready, nil
}

// Dequeue blocks up to timeout for a ready job. It returns a nil job when none arrived.
func (q *Queue) Dequeue(ctx context.Context, timeout time.Duration) (*Job, error) {
	result, err := q.client.BLPop(ctx, timeout, QueueReminders).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	if len(result) < 2 {
		return nil, nil
	}
	var job Job
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		q.logger.Warn("invalid job payload", zap.String("raw", result[1]), zap.Error(err))
		return nil, nil
	}
	return &job, nil
}

// Retry re-enqueues a job with incremented attempt. If attempt >= MaxRetries, pushes to DLQ instead.
func (q *Queue) Retry(ctx context.Context, job *Job) error {
	job.Attempt++
	raw, err := json.Marshal(job)
	if err != nil {
		return err
	}
	if job.Attempt >= MaxRetries {
		if err := q.client.RPush(ctx, QueueDLQ, raw).Err(); err != nil {
			q.logger.Error("dlq push failed", zap.Error(err), zap.String("job_id", job.ID))
			return err
		}
		q.logger.Warn("job moved to DLQ", zap.String("job_id", job.ID), zap.Int("attempt", job.Attempt))
		return nil
	}
	if err := q.client.RPush(ctx, QueueReminders, raw).Err(); err != nil {
		return err
	}
	q.logger.Info("job retried", zap.String("job_id", job.ID), zap.Int("attempt", job.Attempt))
	return nil
}

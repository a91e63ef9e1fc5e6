package worker

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardflow/backend/pkg/queue"
)

type fakeJobs struct {
	mu         sync.Mutex
	ready      []*queue.Job
	promoted   int
	retried    []*queue.Job
	promoteErr error
}

func (f *fakeJobs) PromoteDue(context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.promoted++
	return 0, f.promoteErr
}

func (f *fakeJobs) Dequeue(ctx context.Context, _ time.Duration) (*queue.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.ready) == 0 {
		return nil, ctx.Err()
	}
	j := f.ready[0]
	f.ready = f.ready[1:]
	return j, nil
}

func (f *fakeJobs) Retry(_ context.Context, j *queue.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	j.Attempt++
	f.retried = append(f.retried, j)
	return nil
}

type fakeDispatcher struct {
	sent []queue.ReminderPayload
	err  error
}

func (f *fakeDispatcher) Dispatch(_ context.Context, p queue.ReminderPayload) error {
	f.sent = append(f.sent, p)
	return f.err
}

func reminderJob(t *testing.T, recipients ...queue.Recipient) *queue.Job {
	t.Helper()
	j, err := queue.NewReminderJob(queue.ReminderPayload{
		MeetingID:  "1",
		Kind:       queue.ReminderInitial,
		Methods:    []string{"email"},
		Recipients: recipients,
	}, time.Now())
	require.NoError(t, err)
	return j
}

func TestStepDispatchesReadyJob(t *testing.T) {
	jobs := &fakeJobs{ready: []*queue.Job{reminderJob(t, queue.Recipient{Name: "a"})}}
	d := &fakeDispatcher{}
	p := NewReminderProcessor(jobs, d, nil)

	took, err := p.Step(context.Background())
	require.NoError(t, err)
	assert.True(t, took)
	assert.Equal(t, 1, jobs.promoted)
	require.Len(t, d.sent, 1)
	assert.Equal(t, "1", d.sent[0].MeetingID)
	assert.Empty(t, jobs.retried)
}

func TestStepIdle(t *testing.T) {
	p := NewReminderProcessor(&fakeJobs{}, &fakeDispatcher{}, nil)
	took, err := p.Step(context.Background())
	require.NoError(t, err)
	assert.False(t, took)
}

func TestStepRetriesFailedDelivery(t *testing.T) {
	job := reminderJob(t, queue.Recipient{Name: "a"})
	jobs := &fakeJobs{ready: []*queue.Job{job}}
	p := NewReminderProcessor(jobs, &fakeDispatcher{err: errors.New("smtp refused")}, nil)

	took, err := p.Step(context.Background())
	assert.True(t, took)
	assert.ErrorContains(t, err, "smtp refused")
	require.Len(t, jobs.retried, 1)
	assert.Equal(t, 1, jobs.retried[0].Attempt)
}

func TestStepSkipsReminderWithoutRecipients(t *testing.T) {
	jobs := &fakeJobs{ready: []*queue.Job{reminderJob(t)}}
	d := &fakeDispatcher{}
	p := NewReminderProcessor(jobs, d, nil)

	_, err := p.Step(context.Background())
	require.NoError(t, err)
	assert.Empty(t, d.sent)
}

func TestStepPromoteError(t *testing.T) {
	p := NewReminderProcessor(&fakeJobs{promoteErr: errors.New("conn refused")}, &fakeDispatcher{}, nil)
	_, err := p.Step(context.Background())
	assert.ErrorContains(t, err, "promote")
}

func TestRunStopsOnCancel(t *testing.T) {
	jobs := &fakeJobs{ready: []*queue.Job{reminderJob(t, queue.Recipient{Name: "a"})}}
	d := &fakeDispatcher{}
	p := NewReminderProcessor(jobs, d, nil)
	p.backoff = time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		p.Run(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		jobs.mu.Lock()
		defer jobs.mu.Unlock()
		return jobs.promoted > 1
	}, time.Second, time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not stop")
	}
	assert.Len(t, d.sent, 1)
}

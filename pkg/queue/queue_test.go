package queue

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReminderJobRoundTrip(t *testing.T) {
	due := time.Date(2023, 6, 14, 10, 0, 0, 0, time.UTC)
	payload := ReminderPayload{
		UserID:     "2",
		MeetingID:  "m-1",
		Title:      "Q2 Board Meeting",
		StartsAt:   due.Add(24 * time.Hour),
		Kind:       ReminderInitial,
		Methods:    []string{"email", "inApp"},
		Recipients: []Recipient{{Name: "Sarah Johnson", Email: "sarah@example.com"}},
	}

	job, err := NewReminderJob(payload, due)
	require.NoError(t, err)
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, JobTypeReminder, job.Type)

	raw, err := json.Marshal(job)
	require.NoError(t, err)
	var decoded Job
	require.NoError(t, json.Unmarshal(raw, &decoded))

	got, err := decoded.Reminder()
	require.NoError(t, err)
	assert.Equal(t, payload.MeetingID, got.MeetingID)
	assert.True(t, payload.StartsAt.Equal(got.StartsAt))
	assert.Equal(t, payload.Recipients, got.Recipients)
	assert.True(t, due.Equal(decoded.DueAt))
}

func TestReminderRejectsOtherJobs(t *testing.T) {
	job := &Job{Type: "archive", Payload: json.RawMessage(`{}`)}
	_, err := job.Reminder()
	assert.Error(t, err)

	job = &Job{Type: JobTypeReminder, Payload: json.RawMessage(`not json`)}
	_, err = job.Reminder()
	assert.Error(t, err)
}

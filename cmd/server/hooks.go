package main

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/boardflow/backend/internal/admin"
	"github.com/boardflow/backend/internal/archive"
	"github.com/boardflow/backend/internal/models"
	"github.com/boardflow/backend/internal/notifications"
	"github.com/boardflow/backend/internal/realtime"
	"github.com/boardflow/backend/internal/workspace"
	"github.com/boardflow/backend/pkg/queue"
)

// hookDeps are the optional sinks behind workspace events. Nil fields are skipped.
type hookDeps struct {
	scheduler notifications.Scheduler
	archive   *archive.Repository
	hub       *realtime.Hub
	timeout   time.Duration
	logger    *zap.Logger
}

// run executes fn off the request path; workspace hooks fire with the workspace locked.
func (d hookDeps) run(name, userID string, fn func(ctx context.Context) error) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			d.logger.Warn("workspace hook failed", zap.String("hook", name), zap.String("user_id", userID), zap.Error(err))
		}
	}()
}

func (d hookDeps) schedule(ctx context.Context, userID string, m models.Meeting, prefs notifications.Preferences, recipients []queue.Recipient) error {
	if d.scheduler == nil {
		return nil
	}
	n, err := notifications.Schedule(ctx, d.scheduler, userID, m, prefs, recipients)
	if err != nil {
		return err
	}
	d.logger.Info("reminders scheduled", zap.String("user_id", userID), zap.String("meeting_id", m.ID), zap.Int("count", n))
	return nil
}

func (d hookDeps) publish(userID, event string, payload interface{}) {
	if d.hub != nil {
		d.hub.Publish(userID, event, payload)
	}
}

// hooks never touch Redis or Postgres on the caller's goroutine: every sink runs in run.
func (d hookDeps) hooks() workspace.Hooks {
	return workspace.Hooks{
		MeetingCompleted: func(userID string, draft models.MeetingDraft, m models.Meeting) {
			d.run("meeting_completed", userID, func(ctx context.Context) error {
				d.publish(userID, realtime.EventMeetingCompleted, m)
				if d.archive != nil {
					if err := d.archive.SaveMeeting(ctx, userID, draft, m); err != nil {
						d.logger.Warn("archive meeting", zap.String("meeting_id", m.ID), zap.Error(err))
					}
				}
				return d.schedule(ctx, userID, m, notifications.PreferencesFromDraft(draft), notifications.RecipientsFromDraft(draft))
			})
		},
		MeetingSaved: func(userID string, m models.Meeting) {
			d.run("meeting_saved", userID, func(ctx context.Context) error {
				d.publish(userID, realtime.EventMeetingSaved, m)
				return d.schedule(ctx, userID, m, notifications.DefaultPreferences(), notifications.RecipientsFromMeeting(m))
			})
		},
		AgendaSaved: func(userID string, a models.Agenda) {
			d.run("agenda_saved", userID, func(ctx context.Context) error {
				d.publish(userID, realtime.EventAgendaSaved, a)
				if d.archive == nil {
					return nil
				}
				return d.archive.SaveAgenda(ctx, userID, a)
			})
		},
		DirectoryChanged: func(userID string, ch admin.Change) {
			d.run("directory_changed", userID, func(context.Context) error {
				d.publish(userID, realtime.EventDirectoryChanged, ch)
				return nil
			})
		},
	}
}

// Package notifications turns meetings into reminder jobs and delivers them.
package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/boardflow/backend/internal/fixtures"
	"github.com/boardflow/backend/internal/meetings"
	"github.com/boardflow/backend/internal/models"
	"github.com/boardflow/backend/pkg/queue"
)

// Preferences are the reminder settings of a meeting.
type Preferences struct {
	Methods     []models.NotificationMethod
	Initial     models.Reminder
	FollowUp    models.Reminder
	RequireRSVP bool
}

// DefaultPreferences apply to meetings scheduled outside the wizard.
func DefaultPreferences() Preferences {
	d := models.NewMeetingDraft()
	return PreferencesFromDraft(d)
}

// PreferencesFromDraft reads the notification step of a wizard draft.
func PreferencesFromDraft(d models.MeetingDraft) Preferences {
	return Preferences{
		Methods:     append([]models.NotificationMethod{}, d.NotificationMethods...),
		Initial:     d.InitialReminder,
		FollowUp:    d.FollowUpReminder,
		RequireRSVP: d.RequireRSVP,
	}
}

// RecipientsFromDraft resolves the draft's board members and invitees. Ids without a
// catalog entry are used as the name.
func RecipientsFromDraft(d models.MeetingDraft) []queue.Recipient {
	out := make([]queue.Recipient, 0, len(d.BoardMembers)+len(d.Invitees))
	for _, id := range d.BoardMembers {
		r := queue.Recipient{Name: id}
		if m, ok := fixtures.FindBoardMember(id); ok {
			r = queue.Recipient{Name: m.Name, Email: m.Email}
		}
		out = append(out, r)
	}
	for _, id := range d.Invitees {
		r := queue.Recipient{Name: id}
		if inv, ok := fixtures.FindInvitee(id); ok {
			r = queue.Recipient{Name: inv.Name, Email: inv.Email}
		}
		out = append(out, r)
	}
	return out
}

// RecipientsFromMeeting names every participant of a dashboard meeting.
func RecipientsFromMeeting(m models.Meeting) []queue.Recipient {
	out := make([]queue.Recipient, len(m.Participants))
	for i, name := range m.Participants {
		out[i] = queue.Recipient{Name: name}
	}
	return out
}

// Reminder is a payload and the time it is due.
type Reminder struct {
	Payload queue.ReminderPayload
	DueAt   time.Time
}

// Plan lists the reminders for the first start of m. Reminders set to none are left out,
// as is everything when no delivery method is enabled.
func Plan(userID string, m models.Meeting, prefs Preferences, recipients []queue.Recipient) ([]Reminder, error) {
	if len(prefs.Methods) == 0 {
		return nil, nil
	}
	start, err := meetings.Start(m)
	if err != nil {
		return nil, err
	}
	methods := make([]string, len(prefs.Methods))
	for i, mt := range prefs.Methods {
		methods[i] = string(mt)
	}

	var out []Reminder
	for _, r := range []struct {
		kind     string
		reminder models.Reminder
	}{
		{queue.ReminderInitial, prefs.Initial},
		{queue.ReminderFollowUp, prefs.FollowUp},
	} {
		lead, ok := r.reminder.Lead()
		if !ok {
			continue
		}
		out = append(out, Reminder{
			DueAt: start.Add(-lead),
			Payload: queue.ReminderPayload{
				UserID:      userID,
				MeetingID:   m.ID,
				Title:       m.Title,
				Location:    m.Location,
				StartsAt:    start,
				Kind:        r.kind,
				Methods:     methods,
				Recipients:  recipients,
				RequireRSVP: prefs.RequireRSVP,
			},
		})
	}
	return out, nil
}

// Scheduler stores reminders until they are due.
type Scheduler interface {
	ScheduleReminder(ctx context.Context, payload queue.ReminderPayload, dueAt time.Time) (*queue.Job, error)
}

// Schedule plans and stores the reminders for m, returning how many were scheduled.
func Schedule(ctx context.Context, s Scheduler, userID string, m models.Meeting, prefs Preferences, recipients []queue.Recipient) (int, error) {
	plan, err := Plan(userID, m, prefs, recipients)
	if err != nil {
		return 0, err
	}
	for i, r := range plan {
		if _, err := s.ScheduleReminder(ctx, r.Payload, r.DueAt); err != nil {
			return i, fmt.Errorf("schedule %s reminder for meeting %s: %w", r.Payload.Kind, m.ID, err)
		}
	}
	return len(plan), nil
}

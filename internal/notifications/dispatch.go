package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/boardflow/backend/internal/models"
	"github.com/boardflow/backend/pkg/queue"
)

// Notifier delivers a reminder to one recipient over one method.
type Notifier interface {
	Notify(ctx context.Context, r queue.Recipient, p queue.ReminderPayload) error
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, r queue.Recipient, p queue.ReminderPayload) error

func (f NotifierFunc) Notify(ctx context.Context, r queue.Recipient, p queue.ReminderPayload) error {
	return f(ctx, r, p)
}

// LogNotifier writes reminders to the log instead of sending them.
type LogNotifier struct {
	Method string
	Logger *zap.Logger
}

func (n LogNotifier) Notify(_ context.Context, r queue.Recipient, p queue.ReminderPayload) error {
	n.Logger.Info("reminder delivered",
		zap.String("method", n.Method),
		zap.String("recipient", r.Name),
		zap.String("email", r.Email),
		zap.String("meeting_id", p.MeetingID),
		zap.String("kind", p.Kind),
		zap.Time("starts_at", p.StartsAt),
	)
	return nil
}

// EventPublisher pushes an event to a signed-in user's open sessions.
type EventPublisher interface {
	PublishUserEvent(userID, event string, payload []byte) error
}

// InAppEvent is the realtime event name of an in-app reminder.
const InAppEvent = "reminder"

// InAppNotice is the body of an in-app reminder.
type InAppNotice struct {
	MeetingID   string    `json:"meeting_id"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at"`
	Kind        string    `json:"kind"`
	Recipient   string    `json:"recipient"`
	RequireRSVP bool      `json:"require_rsvp"`
}

// InAppNotifier shows reminders in the organizer's workspace.
type InAppNotifier struct {
	Publisher EventPublisher
}

func (n InAppNotifier) Notify(_ context.Context, r queue.Recipient, p queue.ReminderPayload) error {
	body, err := json.Marshal(InAppNotice{
		MeetingID:   p.MeetingID,
		Title:       p.Title,
		Location:    p.Location,
		StartsAt:    p.StartsAt,
		Kind:        p.Kind,
		Recipient:   r.Name,
		RequireRSVP: p.RequireRSVP,
	})
	if err != nil {
		return err
	}
	return n.Publisher.PublishUserEvent(p.UserID, InAppEvent, body)
}

// Dispatcher routes reminders to the notifier of each method.
type Dispatcher struct {
	notifiers map[string]Notifier
	logger    *zap.Logger
}

// NewDispatcher creates a dispatcher over notifiers keyed by method.
func NewDispatcher(notifiers map[string]Notifier, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dispatcher{notifiers: notifiers, logger: logger}
}

// NewLogDispatcher logs every method the wizard offers. A non-nil publisher delivers
// inApp reminders to the organizer's workspace instead.
func NewLogDispatcher(publisher EventPublisher, logger *zap.Logger) *Dispatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	n := map[string]Notifier{}
	for _, m := range []models.NotificationMethod{models.NotifyEmail, models.NotifyInApp, models.NotifySMS} {
		n[string(m)] = LogNotifier{Method: string(m), Logger: logger}
	}
	if publisher != nil {
		n[string(models.NotifyInApp)] = InAppNotifier{Publisher: publisher}
	}
	return NewDispatcher(n, logger)
}

// Dispatch sends p over every method in parallel. Methods without a notifier are skipped.
// The first delivery error is returned after all methods finish.
func (d *Dispatcher) Dispatch(ctx context.Context, p queue.ReminderPayload) error {
	g := new(errgroup.Group)
	for _, method := range p.Methods {
		n, ok := d.notifiers[method]
		if !ok {
			d.logger.Warn("no notifier for method", zap.String("method", method), zap.String("meeting_id", p.MeetingID))
			continue
		}
		method := method
		g.Go(func() error {
			for _, r := range p.Recipients {
				if err := n.Notify(ctx, r, p); err != nil {
					return fmt.Errorf("%s to %s: %w", method, r.Name, err)
				}
			}
			return nil
		})
	}
	return g.Wait()
}

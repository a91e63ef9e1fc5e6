// Package meetings holds the scheduled meetings shown on the dashboard and calendar.
package meetings

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/boardflow/backend/internal/fixtures"
	"github.com/boardflow/backend/internal/models"
	"github.com/boardflow/backend/pkg/apperr"
)

// Layouts of Meeting.Date and the HH:MM time fields.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Input is the schedule form.
type Input struct {
	Title            string                   `json:"title" binding:"required"`
	Description      string                   `json:"description"`
	Date             string                   `json:"date" binding:"required"`
	StartTime        string                   `json:"start_time" binding:"required"`
	EndTime          string                   `json:"end_time"`
	Participants     []string                 `json:"participants"`
	Location         string                   `json:"location"`
	Type             models.MeetingType       `json:"type"`
	Visibility       models.Visibility        `json:"visibility"`
	IsRecurring      bool                     `json:"is_recurring"`
	RecurringPattern *models.RecurringPattern `json:"recurring_pattern"`
}

// SavedFunc is notified with every meeting saved through the schedule form.
type SavedFunc func(models.Meeting)

// Dashboard is a workspace's meeting list. It is not safe for concurrent use.
type Dashboard struct {
	meetings  []models.Meeting
	organizer string
	onSaved   SavedFunc
	newID     func() string
	logger    *zap.Logger
}

// NewDashboard copies meetings into a dashboard owned by organizer.
func NewDashboard(meetings []models.Meeting, organizer string, onSaved SavedFunc, logger *zap.Logger) *Dashboard {
	if logger == nil {
		logger = zap.NewNop()
	}
	if onSaved == nil {
		onSaved = func(models.Meeting) {}
	}
	d := &Dashboard{organizer: organizer, onSaved: onSaved, newID: uuid.NewString, logger: logger}
	for _, m := range meetings {
		d.meetings = append(d.meetings, m.Clone())
	}
	return d
}

// List returns every meeting.
func (d *Dashboard) List() []models.Meeting {
	return d.filter(func(models.Meeting) bool { return true })
}

// Board returns the board meetings.
func (d *Dashboard) Board() []models.Meeting {
	return d.filter(func(m models.Meeting) bool { return m.Type == models.MeetingBoard })
}

func (d *Dashboard) filter(keep func(models.Meeting) bool) []models.Meeting {
	out := []models.Meeting{}
	for _, m := range d.meetings {
		if keep(m) {
			out = append(out, m.Clone())
		}
	}
	return out
}

// Get looks a meeting up by id.
func (d *Dashboard) Get(id string) (models.Meeting, error) {
	for _, m := range d.meetings {
		if m.ID == id {
			return m.Clone(), nil
		}
	}
	return models.Meeting{}, apperr.NotFound("meeting not found")
}

// Save replaces the meeting with the given id, or adds a new one with a fresh id when id is
// empty. The organizer is always the dashboard owner.
func (d *Dashboard) Save(id string, in Input) (models.Meeting, error) {
	m, err := in.meeting()
	if err != nil {
		return models.Meeting{}, err
	}
	m.Organizer = d.organizer

	if id == "" {
		m.ID = d.newID()
		d.meetings = append(d.meetings, m)
		d.logger.Info("meeting scheduled", zap.String("meeting_id", m.ID))
		d.onSaved(m.Clone())
		return m.Clone(), nil
	}

	for i := range d.meetings {
		if d.meetings[i].ID == id {
			m.ID = id
			d.meetings[i] = m
			d.logger.Info("meeting updated", zap.String("meeting_id", id))
			d.onSaved(m.Clone())
			return m.Clone(), nil
		}
	}
	return models.Meeting{}, apperr.NotFound("meeting not found")
}

func (in Input) meeting() (models.Meeting, error) {
	m := models.Meeting{
		Title:        strings.TrimSpace(in.Title),
		Description:  in.Description,
		Date:         in.Date,
		StartTime:    in.StartTime,
		EndTime:      in.EndTime,
		Participants: append([]string{}, in.Participants...),
		Location:     in.Location,
		Type:         in.Type,
		Visibility:   in.Visibility,
		IsRecurring:  in.IsRecurring,
	}
	if m.Title == "" {
		return m, apperr.Validation("meeting title is required")
	}
	if _, err := time.Parse(DateLayout, m.Date); err != nil {
		return m, apperr.Validation("date must be YYYY-MM-DD")
	}
	if _, err := time.Parse(TimeLayout, m.StartTime); err != nil {
		return m, apperr.Validation("start_time must be HH:MM")
	}
	if m.EndTime != "" {
		if _, err := time.Parse(TimeLayout, m.EndTime); err != nil {
			return m, apperr.Validation("end_time must be HH:MM")
		}
	}
	if m.Type == "" {
		m.Type = models.MeetingBoard
	}
	if !m.Type.Valid() {
		return m, apperr.Validation("unknown meeting type")
	}
	switch m.Visibility {
	case "":
		m.Visibility = models.VisibilityPrivate
	case models.VisibilityPublic, models.VisibilityPrivate:
	default:
		return m, apperr.Validation("unknown visibility")
	}
	if m.IsRecurring {
		if in.RecurringPattern == nil || !in.RecurringPattern.Valid() {
			return m, apperr.Validation("recurring meetings need a pattern")
		}
		p := *in.RecurringPattern
		m.RecurringPattern = &p
	}
	return m, nil
}

// AddFromDraft adds the board meeting a completed wizard describes.
func (d *Dashboard) AddFromDraft(draft models.MeetingDraft) models.Meeting {
	m := FromDraft(draft)
	m.ID = d.newID()
	m.Organizer = d.organizer
	d.meetings = append(d.meetings, m)
	d.logger.Info("meeting added from wizard", zap.String("meeting_id", m.ID), zap.String("title", m.Title))
	return m.Clone()
}

// FromDraft builds a board meeting from a wizard draft. Member and venue ids without a
// catalog entry are kept as-is.
func FromDraft(draft models.MeetingDraft) models.Meeting {
	participants := make([]string, 0, len(draft.BoardMembers))
	for _, id := range draft.BoardMembers {
		name := id
		if bm, ok := fixtures.FindBoardMember(id); ok {
			name = bm.Name
		}
		participants = append(participants, name)
	}
	location := draft.VenueDetails
	if v, ok := fixtures.FindVenue(draft.VenueDetails); ok {
		location = v.Name
	}
	visibility := models.VisibilityPrivate
	if draft.IsPublic {
		visibility = models.VisibilityPublic
	}
	return models.Meeting{
		Title:        draft.Title,
		Description:  draft.Description,
		Date:         draft.Date,
		StartTime:    draft.StartTime,
		EndTime:      draft.EndTime,
		Participants: participants,
		Location:     location,
		Type:         models.MeetingBoard,
		Visibility:   visibility,
	}
}

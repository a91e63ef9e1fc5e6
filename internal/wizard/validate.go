package wizard

import (
	"fmt"
	"sort"

	"github.com/boardflow/backend/internal/models"
)

// Step is a position of the wizard, 1 through 6.
type Step int

const (
	StepMeetingDetails Step = iota + 1
	StepParticipants
	StepAgenda
	StepDocuments
	StepNotifications
	StepReview
)

var stepNames = map[Step]string{
	StepMeetingDetails: "Meeting Details",
	StepParticipants:   "Participants",
	StepAgenda:         "Agenda",
	StepDocuments:      "Documents",
	StepNotifications:  "Notifications",
	StepReview:         "Review",
}

func (s Step) String() string {
	if n, ok := stepNames[s]; ok {
		return n
	}
	return fmt.Sprintf("Step(%d)", int(s))
}

// FieldErrors maps a draft field name to a human readable message.
type FieldErrors map[string]string

// Messages returns the messages ordered by field name.
func (f FieldErrors) Messages() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, f[k])
	}
	return out
}

// Field names used as FieldErrors keys.
const (
	FieldMeetingType  = "meeting_type"
	FieldTitle        = "title"
	FieldDate         = "date"
	FieldStartTime    = "start_time"
	FieldEndTime      = "end_time"
	FieldVenue        = "venue"
	FieldVenueDetails = "venue_details"
	FieldBoardMembers = "board_members"
	FieldAgendaItems  = "agenda_items"
)

// ValidateStep runs the blocking checks of a single step. Steps without checks return an empty map.
func ValidateStep(step Step, d models.MeetingDraft) FieldErrors {
	errs := FieldErrors{}
	switch step {
	case StepMeetingDetails:
		if d.MeetingType == "" {
			errs[FieldMeetingType] = "Meeting type is required"
		}
		if d.Title == "" {
			errs[FieldTitle] = "Title is required"
		}
		if d.Date == "" {
			errs[FieldDate] = "Date is required"
		}
		if d.StartTime == "" {
			errs[FieldStartTime] = "Start time is required"
		}
		if d.EndTime == "" {
			errs[FieldEndTime] = "End time is required"
		}
		if d.Venue == "" {
			errs[FieldVenue] = "Venue is required"
		}
		if d.Venue != "" && d.VenueDetails == "" {
			errs[FieldVenueDetails] = "Venue details are required"
		}
	case StepParticipants:
		if len(d.BoardMembers) == 0 {
			errs[FieldBoardMembers] = "At least one board member is required"
		}
	case StepAgenda:
		if SelectedCount(d.AgendaItems) == 0 {
			errs[FieldAgendaItems] = "At least one agenda item is required"
		}
	}
	return errs
}

// ValidateAll aggregates the checks of every step before the review.
func ValidateAll(d models.MeetingDraft) FieldErrors {
	errs := FieldErrors{}
	for s := StepMeetingDetails; s < StepReview; s++ {
		for k, v := range ValidateStep(s, d) {
			errs[k] = v
		}
	}
	return errs
}

// SelectedCount counts the selected agenda items.
func SelectedCount(items []models.AgendaItemDraft) int {
	n := 0
	for _, it := range items {
		if it.Selected {
			n++
		}
	}
	return n
}

// SelectedDuration sums the duration in minutes of the selected agenda items.
func SelectedDuration(items []models.AgendaItemDraft) int {
	total := 0
	for _, it := range items {
		if it.Selected {
			total += it.Duration
		}
	}
	return total
}

package models

// MeetingType classifies a dashboard meeting.
type MeetingType string

const (
	MeetingBoard     MeetingType = "board"
	MeetingCommittee MeetingType = "committee"
	MeetingVirtual   MeetingType = "virtual"
	MeetingPhysical  MeetingType = "physical"
	MeetingHybrid    MeetingType = "hybrid"
)

// Valid reports whether t is a known meeting type.
func (t MeetingType) Valid() bool {
	switch t {
	case MeetingBoard, MeetingCommittee, MeetingVirtual, MeetingPhysical, MeetingHybrid:
		return true
	}
	return false
}

// Visibility controls who can see a meeting.
type Visibility string

const (
	VisibilityPublic  Visibility = "public"
	VisibilityPrivate Visibility = "private"
)

// RecurringPattern is the repeat cadence of a recurring meeting.
type RecurringPattern string

const (
	RecurDaily   RecurringPattern = "daily"
	RecurWeekly  RecurringPattern = "weekly"
	RecurMonthly RecurringPattern = "monthly"
	RecurCustom  RecurringPattern = "custom"
)

// Valid reports whether p is a known pattern.
func (p RecurringPattern) Valid() bool {
	switch p {
	case RecurDaily, RecurWeekly, RecurMonthly, RecurCustom:
		return true
	}
	return false
}

// Meeting is a scheduled meeting shown on the dashboard and calendar.
// Date is YYYY-MM-DD; StartTime and EndTime are HH:MM.
type Meeting struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	Date             string            `json:"date"`
	StartTime        string            `json:"start_time"`
	EndTime          string            `json:"end_time"`
	Participants     []string          `json:"participants"`
	Location         string            `json:"location"`
	Type             MeetingType       `json:"type"`
	Visibility       Visibility        `json:"visibility"`
	IsRecurring      bool              `json:"is_recurring"`
	RecurringPattern *RecurringPattern `json:"recurring_pattern"`
	Organizer        string            `json:"organizer"`
}

// Clone returns a deep copy of the meeting.
func (m Meeting) Clone() Meeting {
	out := m
	out.Participants = append([]string{}, m.Participants...)
	if m.RecurringPattern != nil {
		p := *m.RecurringPattern
		out.RecurringPattern = &p
	}
	return out
}

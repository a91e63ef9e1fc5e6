package models

import "time"

// MemberRole is the role a board member holds in a specific meeting.
type MemberRole string

const (
	MemberRoleChairperson MemberRole = "chairperson"
	MemberRoleSecretary   MemberRole = "secretary"
	MemberRoleTreasurer   MemberRole = "treasurer"
	MemberRoleMember      MemberRole = "member"
)

// Valid reports whether r is a known member role.
func (r MemberRole) Valid() bool {
	switch r {
	case MemberRoleChairperson, MemberRoleSecretary, MemberRoleTreasurer, MemberRoleMember:
		return true
	}
	return false
}

// AccessLevel is the document access granted to an invitee.
type AccessLevel string

const (
	AccessView    AccessLevel = "view"
	AccessComment AccessLevel = "comment"
	AccessEdit    AccessLevel = "edit"
)

// Valid reports whether a is a known access level.
func (a AccessLevel) Valid() bool {
	return a == AccessView || a == AccessComment || a == AccessEdit
}

// NotificationMethod is a channel used for meeting reminders.
type NotificationMethod string

const (
	NotifyEmail NotificationMethod = "email"
	NotifyInApp NotificationMethod = "inApp"
	NotifySMS   NotificationMethod = "sms"
)

// Valid reports whether m is a known notification method.
func (m NotificationMethod) Valid() bool {
	return m == NotifyEmail || m == NotifyInApp || m == NotifySMS
}

// Reminder is a lead time before the meeting start.
type Reminder string

const (
	ReminderNone   Reminder = "none"
	Reminder1Hour  Reminder = "1hour"
	Reminder3Hours Reminder = "3hours"
	Reminder1Day   Reminder = "1day"
	Reminder3Days  Reminder = "3days"
	Reminder1Week  Reminder = "1week"
	Reminder2Weeks Reminder = "2weeks"
)

var reminderLeads = map[Reminder]time.Duration{
	Reminder1Hour:  time.Hour,
	Reminder3Hours: 3 * time.Hour,
	Reminder1Day:   24 * time.Hour,
	Reminder3Days:  3 * 24 * time.Hour,
	Reminder1Week:  7 * 24 * time.Hour,
	Reminder2Weeks: 14 * 24 * time.Hour,
}

// Valid reports whether r is a known reminder.
func (r Reminder) Valid() bool {
	_, ok := reminderLeads[r]
	return ok || r == ReminderNone
}

// Lead returns how long before the meeting the reminder fires. It is false for none.
func (r Reminder) Lead() (time.Duration, bool) {
	d, ok := reminderLeads[r]
	return d, ok
}

// DocumentAccess restricts who can open an attached document.
type DocumentAccess string

const (
	DocumentAccessAll           DocumentAccess = "all"
	DocumentAccessBoardOnly     DocumentAccess = "boardOnly"
	DocumentAccessSpecificRoles DocumentAccess = "specificRoles"
)

// AgendaItemDraft is one row of the wizard agenda. Slice order is agenda order.
type AgendaItemDraft struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Selected  bool   `json:"selected"`
	Duration  int    `json:"duration"`
	Presenter string `json:"presenter"`
	Notes     string `json:"notes"`
	IsCustom  bool   `json:"is_custom,omitempty"`
}

// DocumentRef is a document attached to a draft meeting.
type DocumentRef struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Size         string         `json:"size"`
	Type         string         `json:"type"`
	UploadDate   string         `json:"upload_date"`
	AgendaItemID *int           `json:"agenda_item_id"`
	Access       DocumentAccess `json:"access"`
	StorageKey   string         `json:"storage_key,omitempty"`
}

// MeetingDraft is the aggregate form state collected by the meeting wizard.
type MeetingDraft struct {
	MeetingType  string `json:"meeting_type"`
	Title        string `json:"title"`
	Date         string `json:"date"`
	StartTime    string `json:"start_time"`
	EndTime      string `json:"end_time"`
	Venue        string `json:"venue"`
	VenueDetails string `json:"venue_details"`
	IsPublic     bool   `json:"is_public"`
	Description  string `json:"description"`

	BoardMembers    []string               `json:"board_members"`
	MemberRoles     map[string]MemberRole  `json:"member_roles"`
	Invitees        []string               `json:"invitees"`
	InviteeAccess   map[string]AccessLevel `json:"invitee_access"`
	TemporaryAccess bool                   `json:"temporary_access"`

	AgendaItems []AgendaItemDraft `json:"agenda_items"`

	Documents         []DocumentRef `json:"documents"`
	RestrictDownloads bool          `json:"restrict_downloads"`

	NotificationMethods  []NotificationMethod `json:"notification_methods"`
	InitialReminder      Reminder             `json:"initial_reminder"`
	FollowUpReminder     Reminder             `json:"follow_up_reminder"`
	RequireRSVP          bool                 `json:"require_rsvp"`
	AllowProxies         bool                 `json:"allow_proxies"`
	SendMeetingMaterials bool                 `json:"send_meeting_materials"`
	RecordMeeting        bool                 `json:"record_meeting"`
}

// NewMeetingDraft returns the draft a freshly opened wizard starts from.
func NewMeetingDraft() MeetingDraft {
	return MeetingDraft{
		BoardMembers:        []string{},
		MemberRoles:         map[string]MemberRole{},
		Invitees:            []string{},
		InviteeAccess:       map[string]AccessLevel{},
		AgendaItems:         []AgendaItemDraft{},
		Documents:           []DocumentRef{},
		NotificationMethods: []NotificationMethod{NotifyEmail, NotifyInApp},
		InitialReminder:     Reminder1Day,
		FollowUpReminder:    Reminder1Hour,
	}
}

// Clone returns a deep copy so callers can build the next draft without aliasing.
func (d MeetingDraft) Clone() MeetingDraft {
	out := d
	out.BoardMembers = append([]string{}, d.BoardMembers...)
	out.Invitees = append([]string{}, d.Invitees...)
	out.MemberRoles = make(map[string]MemberRole, len(d.MemberRoles))
	for k, v := range d.MemberRoles {
		out.MemberRoles[k] = v
	}
	out.InviteeAccess = make(map[string]AccessLevel, len(d.InviteeAccess))
	for k, v := range d.InviteeAccess {
		out.InviteeAccess[k] = v
	}
	out.AgendaItems = append([]AgendaItemDraft{}, d.AgendaItems...)
	out.Documents = make([]DocumentRef, len(d.Documents))
	for i, doc := range d.Documents {
		if doc.AgendaItemID != nil {
			id := *doc.AgendaItemID
			doc.AgendaItemID = &id
		}
		out.Documents[i] = doc
	}
	out.NotificationMethods = append([]NotificationMethod{}, d.NotificationMethods...)
	return out
}

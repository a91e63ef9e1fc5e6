package wizard

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/boardflow/backend/internal/fixtures"
	"github.com/boardflow/backend/internal/models"
	"github.com/boardflow/backend/pkg/apperr"
)

// ActionType names a step operation.
type ActionType string

const (
	ActionToggleBoardMember        ActionType = "toggle_board_member"
	ActionSetMemberRole            ActionType = "set_member_role"
	ActionAddInvitee               ActionType = "add_invitee"
	ActionRemoveInvitee            ActionType = "remove_invitee"
	ActionSetInviteeAccess         ActionType = "set_invitee_access"
	ActionSetTemporaryAccess       ActionType = "set_temporary_access"
	ActionToggleAgendaItem         ActionType = "toggle_agenda_item"
	ActionUpdateAgendaItem         ActionType = "update_agenda_item"
	ActionAddCustomItem            ActionType = "add_custom_item"
	ActionRemoveAgendaItem         ActionType = "remove_agenda_item"
	ActionMoveAgendaItem           ActionType = "move_agenda_item"
	ActionSelectAll                ActionType = "select_all"
	ActionDeselectAll              ActionType = "deselect_all"
	ActionAddDocument              ActionType = "add_document"
	ActionRemoveDocument           ActionType = "remove_document"
	ActionSetRestrictDownloads     ActionType = "set_restrict_downloads"
	ActionToggleNotificationMethod ActionType = "toggle_notification_method"
	ActionSetInitialReminder       ActionType = "set_initial_reminder"
	ActionSetFollowUpReminder      ActionType = "set_follow_up_reminder"
	ActionSetFlag                  ActionType = "set_flag"
)

// Flags settable through ActionSetFlag.
const (
	FlagRequireRSVP          = "require_rsvp"
	FlagAllowProxies         = "allow_proxies"
	FlagSendMeetingMaterials = "send_meeting_materials"
	FlagRecordMeeting        = "record_meeting"
	FlagIsPublic             = "is_public"
)

// Direction is the way an item moves in an ordered list.
type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
)

// ItemPatch carries the agenda item fields a user edited. Nil fields are left alone.
type ItemPatch struct {
	Title     *string `json:"title"`
	Duration  *int    `json:"duration"`
	Presenter *string `json:"presenter"`
	Notes     *string `json:"notes"`
}

// DocumentInput describes a document being attached to the draft.
type DocumentInput struct {
	Name         string                `json:"name"`
	AgendaItemID *int                  `json:"agenda_item_id"`
	Access       models.DocumentAccess `json:"access"`
	StorageKey   string                `json:"storage_key"`
	Size         string                `json:"size"`
}

// Action is a single step operation as sent by a client.
type Action struct {
	Type       ActionType                `json:"type" binding:"required"`
	MemberID   string                    `json:"member_id,omitempty"`
	Role       models.MemberRole         `json:"role,omitempty"`
	InviteeID  string                    `json:"invitee_id,omitempty"`
	Access     models.AccessLevel        `json:"access,omitempty"`
	ItemID     int                       `json:"item_id,omitempty"`
	Patch      *ItemPatch                `json:"patch,omitempty"`
	Direction  Direction                 `json:"direction,omitempty"`
	Document   *DocumentInput            `json:"document,omitempty"`
	DocumentID string                    `json:"document_id,omitempty"`
	Method     models.NotificationMethod `json:"method,omitempty"`
	Reminder   models.Reminder           `json:"reminder,omitempty"`
	Flag       string                    `json:"flag,omitempty"`
	Enabled    bool                      `json:"enabled,omitempty"`
}

// Reducer turns an Action into the next complete draft.
type Reducer struct {
	Now   func() time.Time
	NewID func() string
}

// NewReducer returns a Reducer using the wall clock and random ids.
func NewReducer() Reducer {
	return Reducer{Now: time.Now, NewID: uuid.NewString}
}

// Apply returns the draft produced by a. The input draft is never modified.
func (r Reducer) Apply(d models.MeetingDraft, a Action) (models.MeetingDraft, error) {
	switch a.Type {
	case ActionToggleBoardMember:
		if _, ok := fixtures.FindBoardMember(a.MemberID); !ok {
			return d, apperr.Validation("unknown board member")
		}
		return ToggleBoardMember(d, a.MemberID), nil
	case ActionSetMemberRole:
		if !a.Role.Valid() {
			return d, apperr.Validation("invalid member role")
		}
		return SetMemberRole(d, a.MemberID, a.Role), nil
	case ActionAddInvitee:
		if a.InviteeID != "" {
			if _, ok := fixtures.FindInvitee(a.InviteeID); !ok {
				return d, apperr.Validation("unknown invitee")
			}
		}
		return AddInvitee(d, a.InviteeID), nil
	case ActionRemoveInvitee:
		return RemoveInvitee(d, a.InviteeID), nil
	case ActionSetInviteeAccess:
		if !a.Access.Valid() {
			return d, apperr.Validation("invalid access level")
		}
		return SetInviteeAccess(d, a.InviteeID, a.Access), nil
	case ActionSetTemporaryAccess:
		next := d.Clone()
		next.TemporaryAccess = a.Enabled
		return next, nil
	case ActionToggleAgendaItem:
		return ToggleAgendaItem(d, a.ItemID), nil
	case ActionUpdateAgendaItem:
		if a.Patch == nil {
			return d, apperr.Validation("patch is required")
		}
		if a.Patch.Duration != nil && *a.Patch.Duration < 0 {
			return d, apperr.Validation("duration must not be negative")
		}
		return UpdateAgendaItem(d, a.ItemID, *a.Patch), nil
	case ActionAddCustomItem:
		return AddCustomItem(d), nil
	case ActionRemoveAgendaItem:
		return RemoveAgendaItem(d, a.ItemID), nil
	case ActionMoveAgendaItem:
		if a.Direction != Up && a.Direction != Down {
			return d, apperr.Validation("direction must be up or down")
		}
		return MoveAgendaItem(d, a.ItemID, a.Direction), nil
	case ActionSelectAll:
		return SetAllSelected(d, true), nil
	case ActionDeselectAll:
		return SetAllSelected(d, false), nil
	case ActionAddDocument:
		if a.Document == nil {
			return d, apperr.Validation("document is required")
		}
		if a.Document.Access != "" && !validDocumentAccess(a.Document.Access) {
			return d, apperr.Validation("invalid document access")
		}
		return AddDocument(d, *a.Document, r.NewID(), r.Now()), nil
	case ActionRemoveDocument:
		return RemoveDocument(d, a.DocumentID), nil
	case ActionSetRestrictDownloads:
		next := d.Clone()
		next.RestrictDownloads = a.Enabled
		return next, nil
	case ActionToggleNotificationMethod:
		if !a.Method.Valid() {
			return d, apperr.Validation("invalid notification method")
		}
		return ToggleNotificationMethod(d, a.Method), nil
	case ActionSetInitialReminder, ActionSetFollowUpReminder:
		if !a.Reminder.Valid() {
			return d, apperr.Validation("invalid reminder")
		}
		next := d.Clone()
		if a.Type == ActionSetInitialReminder {
			next.InitialReminder = a.Reminder
		} else {
			next.FollowUpReminder = a.Reminder
		}
		return next, nil
	case ActionSetFlag:
		return SetFlag(d, a.Flag, a.Enabled)
	}
	return d, apperr.Validation("unknown action type: " + string(a.Type))
}

func validDocumentAccess(a models.DocumentAccess) bool {
	switch a {
	case models.DocumentAccessAll, models.DocumentAccessBoardOnly, models.DocumentAccessSpecificRoles:
		return true
	}
	return false
}

// ToggleBoardMember adds the member when absent and removes it when present.
func ToggleBoardMember(d models.MeetingDraft, memberID string) models.MeetingDraft {
	next := d.Clone()
	for i, id := range next.BoardMembers {
		if id == memberID {
			next.BoardMembers = append(next.BoardMembers[:i], next.BoardMembers[i+1:]...)
			return next
		}
	}
	next.BoardMembers = append(next.BoardMembers, memberID)
	return next
}

// SetMemberRole records the meeting role of a board member.
func SetMemberRole(d models.MeetingDraft, memberID string, role models.MemberRole) models.MeetingDraft {
	next := d.Clone()
	next.MemberRoles[memberID] = role
	return next
}

// AddInvitee appends an invitee with view access. Empty and duplicate ids are ignored.
func AddInvitee(d models.MeetingDraft, inviteeID string) models.MeetingDraft {
	next := d.Clone()
	if inviteeID == "" {
		return next
	}
	for _, id := range next.Invitees {
		if id == inviteeID {
			return next
		}
	}
	next.Invitees = append(next.Invitees, inviteeID)
	next.InviteeAccess[inviteeID] = models.AccessView
	return next
}

// RemoveInvitee drops the invitee and its access entry.
func RemoveInvitee(d models.MeetingDraft, inviteeID string) models.MeetingDraft {
	next := d.Clone()
	kept := next.Invitees[:0]
	for _, id := range next.Invitees {
		if id != inviteeID {
			kept = append(kept, id)
		}
	}
	next.Invitees = kept
	delete(next.InviteeAccess, inviteeID)
	return next
}

// SetInviteeAccess records the access level of an invitee.
func SetInviteeAccess(d models.MeetingDraft, inviteeID string, access models.AccessLevel) models.MeetingDraft {
	next := d.Clone()
	next.InviteeAccess[inviteeID] = access
	return next
}

// ToggleAgendaItem flips the selected flag of an item.
func ToggleAgendaItem(d models.MeetingDraft, itemID int) models.MeetingDraft {
	next := d.Clone()
	for i := range next.AgendaItems {
		if next.AgendaItems[i].ID == itemID {
			next.AgendaItems[i].Selected = !next.AgendaItems[i].Selected
		}
	}
	return next
}

// UpdateAgendaItem applies p to the item with itemID.
func UpdateAgendaItem(d models.MeetingDraft, itemID int, p ItemPatch) models.MeetingDraft {
	next := d.Clone()
	for i := range next.AgendaItems {
		it := &next.AgendaItems[i]
		if it.ID != itemID {
			continue
		}
		if p.Title != nil {
			it.Title = *p.Title
		}
		if p.Duration != nil {
			it.Duration = *p.Duration
		}
		if p.Presenter != nil {
			it.Presenter = *p.Presenter
		}
		if p.Notes != nil {
			it.Notes = *p.Notes
		}
	}
	return next
}

// customIDBase keeps custom item ids clear of the agenda matrix ids.
const customIDBase = 1000

// AddCustomItem appends an empty, selected custom item.
func AddCustomItem(d models.MeetingDraft) models.MeetingDraft {
	next := d.Clone()
	id := customIDBase
	for _, it := range next.AgendaItems {
		if it.ID > id {
			id = it.ID
		}
	}
	next.AgendaItems = append(next.AgendaItems, models.AgendaItemDraft{
		ID:       id + 1,
		Selected: true,
		Duration: fixtures.DefaultItemDuration,
		IsCustom: true,
	})
	return next
}

// RemoveAgendaItem filters the item out.
func RemoveAgendaItem(d models.MeetingDraft, itemID int) models.MeetingDraft {
	next := d.Clone()
	kept := next.AgendaItems[:0]
	for _, it := range next.AgendaItems {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	next.AgendaItems = kept
	return next
}

// MoveAgendaItem swaps the item with its neighbour. Moving past either end is a no-op.
func MoveAgendaItem(d models.MeetingDraft, itemID int, dir Direction) models.MeetingDraft {
	next := d.Clone()
	idx := -1
	for i, it := range next.AgendaItems {
		if it.ID == itemID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return next
	}
	swapAdjacent(next.AgendaItems, idx, dir)
	return next
}

func swapAdjacent[T any](items []T, idx int, dir Direction) {
	switch {
	case dir == Up && idx > 0:
		items[idx], items[idx-1] = items[idx-1], items[idx]
	case dir == Down && idx < len(items)-1:
		items[idx], items[idx+1] = items[idx+1], items[idx]
	}
}

// SetAllSelected selects or deselects every agenda item.
func SetAllSelected(d models.MeetingDraft, selected bool) models.MeetingDraft {
	next := d.Clone()
	for i := range next.AgendaItems {
		next.AgendaItems[i].Selected = selected
	}
	return next
}

// PlaceholderDocumentSize is reported for documents whose size is not given.
const PlaceholderDocumentSize = "1.2 MB"

// AddDocument attaches a document. A blank name is ignored.
func AddDocument(d models.MeetingDraft, in DocumentInput, id string, now time.Time) models.MeetingDraft {
	next := d.Clone()
	if strings.TrimSpace(in.Name) == "" {
		return next
	}
	access := in.Access
	if access == "" {
		access = models.DocumentAccessAll
	}
	size := in.Size
	if size == "" {
		size = PlaceholderDocumentSize
	}
	var itemID *int
	if in.AgendaItemID != nil {
		v := *in.AgendaItemID
		itemID = &v
	}
	next.Documents = append(next.Documents, models.DocumentRef{
		ID:           id,
		Name:         in.Name,
		Size:         size,
		Type:         DocumentType(in.Name),
		UploadDate:   now.UTC().Format(time.RFC3339),
		AgendaItemID: itemID,
		Access:       access,
		StorageKey:   in.StorageKey,
	})
	return next
}

// DocumentType is the text after the last dot of name, or "pdf" when that is empty.
// A name without a dot is its own type.
func DocumentType(name string) string {
	ext := name[strings.LastIndex(name, ".")+1:]
	if ext == "" {
		return "pdf"
	}
	return ext
}

// RemoveDocument filters the document out.
func RemoveDocument(d models.MeetingDraft, documentID string) models.MeetingDraft {
	next := d.Clone()
	kept := next.Documents[:0]
	for _, doc := range next.Documents {
		if doc.ID != documentID {
			kept = append(kept, doc)
		}
	}
	next.Documents = kept
	return next
}

// SetFlag sets one of the boolean meeting options.
func SetFlag(d models.MeetingDraft, flag string, on bool) (models.MeetingDraft, error) {
	next := d.Clone()
	switch flag {
	case FlagRequireRSVP:
		next.RequireRSVP = on
	case FlagAllowProxies:
		next.AllowProxies = on
	case FlagSendMeetingMaterials:
		next.SendMeetingMaterials = on
	case FlagRecordMeeting:
		next.RecordMeeting = on
	case FlagIsPublic:
		next.IsPublic = on
	default:
		return d, apperr.Validation("unknown flag: " + flag)
	}
	return next, nil
}

// ToggleNotificationMethod enables or disables a reminder channel.
func ToggleNotificationMethod(d models.MeetingDraft, m models.NotificationMethod) models.MeetingDraft {
	next := d.Clone()
	for i, existing := range next.NotificationMethods {
		if existing == m {
			next.NotificationMethods = append(next.NotificationMethods[:i], next.NotificationMethods[i+1:]...)
			return next
		}
	}
	next.NotificationMethods = append(next.NotificationMethods, m)
	return next
}

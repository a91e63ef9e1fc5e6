// Package fixtures holds the static seed data every workspace is copied from.
// Accessors always return fresh copies; nothing in this package is ever mutated.
package fixtures

import "github.com/boardflow/backend/internal/models"

// Agenda matrix column keys, one per wizard meeting type.
const (
	TypeRegularBoard      = "regularBoard"
	TypeAnnualGeneral     = "annualGeneral"
	TypeSpecial           = "special"
	TypeStrategicPlanning = "strategicPlanning"
	TypeCommitteeReview   = "committeeReview"
)

// DefaultItemDuration is the duration in minutes given to template-derived wizard items.
const DefaultItemDuration = 15

var meetingTypes = []models.MeetingTypeOption{
	{Key: TypeRegularBoard, Label: "Regular Board Meeting"},
	{Key: TypeAnnualGeneral, Label: "Annual General Meeting (AGM)"},
	{Key: TypeSpecial, Label: "Special (Extraordinary) Meeting"},
	{Key: TypeStrategicPlanning, Label: "Strategic Planning Meeting"},
	{Key: TypeCommitteeReview, Label: "Committee Review Meeting"},
}

var venues = []models.Venue{
	{ID: "v1", Name: "Main Boardroom", Capacity: 20, HasVideoConf: true},
	{ID: "v2", Name: "Executive Conference Room", Capacity: 15, HasVideoConf: true},
	{ID: "v3", Name: "Meeting Room A", Capacity: 10},
	{ID: "v4", Name: "Meeting Room B", Capacity: 8},
	{ID: "v5", Name: "Virtual Meeting (Zoom)", Capacity: 100, HasVideoConf: true, IsVirtual: true},
	{ID: "v6", Name: "Virtual Meeting (Teams)", Capacity: 100, HasVideoConf: true, IsVirtual: true},
}

var boardMembers = []models.BoardMember{
	{ID: "1", Name: "Ahmed Al-Mansour", Title: "Chairperson", Email: "ahmed@example.com"},
	{ID: "2", Name: "Sarah Johnson", Title: "Vice Chairperson", Email: "sarah@example.com"},
	{ID: "3", Name: "Mohammed Al-Farsi", Title: "Secretary", Email: "mohammed@example.com"},
	{ID: "4", Name: "Fatima Al-Zahra", Title: "Treasurer", Email: "fatima@example.com"},
	{ID: "5", Name: "John Smith", Title: "Member", Email: "john@example.com"},
	{ID: "6", Name: "Layla Mahmoud", Title: "Member", Email: "layla@example.com"},
	{ID: "7", Name: "Robert Chen", Title: "Member", Email: "robert@example.com"},
}

var invitees = []models.Invitee{
	{ID: "101", Name: "Dr. Aisha Rahman", Title: "External Consultant", Email: "aisha@example.com"},
	{ID: "102", Name: "Michael Wong", Title: "Legal Advisor", Email: "michael@example.com"},
	{ID: "103", Name: "Zainab Al-Qahtani", Title: "Financial Auditor", Email: "zainab@example.com"},
	{ID: "104", Name: "David Miller", Title: "IT Director", Email: "david@example.com"},
	{ID: "105", Name: "Noor Al-Said", Title: "HR Manager", Email: "noor@example.com"},
}

var allMeetingTypes = []string{TypeRegularBoard, TypeAnnualGeneral, TypeSpecial, TypeStrategicPlanning, TypeCommitteeReview}

var agendaMatrix = []models.AgendaCatalogItem{
	{ID: 1, Title: "Call to Order", MeetingTypes: allMeetingTypes},
	{ID: 2, Title: "Approval of the Agenda", MeetingTypes: allMeetingTypes},
	{ID: 3, Title: "Approval of Previous Meeting Minutes", MeetingTypes: []string{TypeRegularBoard, TypeAnnualGeneral}},
	{ID: 4, Title: "Chairperson's Report", MeetingTypes: []string{TypeRegularBoard, TypeAnnualGeneral, TypeStrategicPlanning}},
	{ID: 5, Title: "CEO/Executive Director's Report", MeetingTypes: []string{TypeRegularBoard, TypeAnnualGeneral, TypeStrategicPlanning}},
	{ID: 6, Title: "Financial Report", MeetingTypes: []string{TypeRegularBoard, TypeAnnualGeneral}},
	{ID: 7, Title: "Committee Reports", MeetingTypes: []string{TypeRegularBoard, TypeAnnualGeneral, TypeCommitteeReview}},
	{ID: 8, Title: "Old Business (Unfinished Business)", MeetingTypes: []string{TypeRegularBoard}},
	{ID: 9, Title: "New Business", MeetingTypes: allMeetingTypes},
	{ID: 10, Title: "Executive Session (Closed Session)", MeetingTypes: []string{TypeRegularBoard, TypeAnnualGeneral, TypeSpecial}},
	{ID: 11, Title: "Adjournment", MeetingTypes: allMeetingTypes},
}

// MeetingTypes returns the wizard meeting types in display order.
func MeetingTypes() []models.MeetingTypeOption {
	return append([]models.MeetingTypeOption{}, meetingTypes...)
}

// MeetingTypeKey maps a meeting type label to its agenda matrix column.
// Unknown labels fall back to the regular board column.
func MeetingTypeKey(label string) string {
	for _, t := range meetingTypes {
		if t.Label == label {
			return t.Key
		}
	}
	return TypeRegularBoard
}

// Venues returns every venue.
func Venues() []models.Venue {
	return append([]models.Venue{}, venues...)
}

// VenuesFor filters venues by the wizard's venue kind. Unknown kinds yield nil.
func VenuesFor(kind models.VenueKind) []models.Venue {
	var out []models.Venue
	for _, v := range venues {
		switch kind {
		case models.VenuePhysical:
			if !v.IsVirtual {
				out = append(out, v)
			}
		case models.VenueVirtual:
			if v.IsVirtual {
				out = append(out, v)
			}
		case models.VenueHybrid:
			out = append(out, v)
		}
	}
	return out
}

// FindVenue looks a venue up by id.
func FindVenue(id string) (models.Venue, bool) {
	for _, v := range venues {
		if v.ID == id {
			return v, true
		}
	}
	return models.Venue{}, false
}

// BoardMembers returns every selectable board member.
func BoardMembers() []models.BoardMember {
	return append([]models.BoardMember{}, boardMembers...)
}

// FindBoardMember looks a board member up by id.
func FindBoardMember(id string) (models.BoardMember, bool) {
	for _, m := range boardMembers {
		if m.ID == id {
			return m, true
		}
	}
	return models.BoardMember{}, false
}

// Invitees returns every selectable invitee.
func Invitees() []models.Invitee {
	return append([]models.Invitee{}, invitees...)
}

// FindInvitee looks an invitee up by id.
func FindInvitee(id string) (models.Invitee, bool) {
	for _, inv := range invitees {
		if inv.ID == id {
			return inv, true
		}
	}
	return models.Invitee{}, false
}

// AgendaMatrix returns the meeting-type agenda matrix.
func AgendaMatrix() []models.AgendaCatalogItem {
	out := make([]models.AgendaCatalogItem, len(agendaMatrix))
	for i, it := range agendaMatrix {
		it.MeetingTypes = append([]string{}, it.MeetingTypes...)
		out[i] = it
	}
	return out
}

// DefaultAgendaItems derives the wizard agenda for a meeting type label.
// Every item is selected, lasts DefaultItemDuration minutes and has no presenter or notes.
func DefaultAgendaItems(meetingType string) []models.AgendaItemDraft {
	key := MeetingTypeKey(meetingType)
	items := []models.AgendaItemDraft{}
	for _, it := range agendaMatrix {
		for _, t := range it.MeetingTypes {
			if t == key {
				items = append(items, models.AgendaItemDraft{
					ID:       it.ID,
					Title:    it.Title,
					Selected: true,
					Duration: DefaultItemDuration,
				})
				break
			}
		}
	}
	return items
}

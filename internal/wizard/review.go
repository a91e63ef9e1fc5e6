package wizard

import (
	"github.com/boardflow/backend/internal/fixtures"
	"github.com/boardflow/backend/internal/models"
)

// Participant is a resolved board member or invitee.
type Participant struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role,omitempty"`
	Access string `json:"access,omitempty"`
}

// Review is the read-only summary shown at the last step.
type Review struct {
	Step                Step                        `json:"step"`
	MeetingType         string                      `json:"meeting_type"`
	Title               string                      `json:"title"`
	Date                string                      `json:"date"`
	StartTime           string                      `json:"start_time"`
	EndTime             string                      `json:"end_time"`
	VenueName           string                      `json:"venue_name"`
	BoardMembers        []Participant               `json:"board_members"`
	Invitees            []Participant               `json:"invitees"`
	SelectedItems       []models.AgendaItemDraft    `json:"selected_items"`
	SelectedCount       int                         `json:"selected_count"`
	TotalMinutes        int                         `json:"total_minutes"`
	Hours               int                         `json:"hours"`
	Minutes             int                         `json:"minutes"`
	Documents           []models.DocumentRef        `json:"documents"`
	NotificationMethods []models.NotificationMethod `json:"notification_methods"`
	Errors              FieldErrors                 `json:"errors"`
	ErrorList           []string                    `json:"error_list"`
}

// Summarize builds the review for the controller's current draft.
func (c *Controller) Summarize() Review {
	d := c.draft.Clone()
	total := SelectedDuration(d.AgendaItems)

	venueName := d.VenueDetails
	if v, ok := fixtures.FindVenue(d.VenueDetails); ok {
		venueName = v.Name
	}

	members := make([]Participant, 0, len(d.BoardMembers))
	for _, id := range d.BoardMembers {
		p := Participant{ID: id, Name: id, Role: string(d.MemberRoles[id])}
		if m, ok := fixtures.FindBoardMember(id); ok {
			p.Name = m.Name
			if p.Role == "" {
				p.Role = m.Title
			}
		}
		members = append(members, p)
	}

	guests := make([]Participant, 0, len(d.Invitees))
	for _, id := range d.Invitees {
		p := Participant{ID: id, Name: id, Access: string(d.InviteeAccess[id])}
		if inv, ok := fixtures.FindInvitee(id); ok {
			p.Name = inv.Name
		}
		guests = append(guests, p)
	}

	selected := make([]models.AgendaItemDraft, 0, len(d.AgendaItems))
	for _, it := range d.AgendaItems {
		if it.Selected {
			selected = append(selected, it)
		}
	}

	errs := c.Errors()
	return Review{
		Step:                c.step,
		MeetingType:         d.MeetingType,
		Title:               d.Title,
		Date:                d.Date,
		StartTime:           d.StartTime,
		EndTime:             d.EndTime,
		VenueName:           venueName,
		BoardMembers:        members,
		Invitees:            guests,
		SelectedItems:       selected,
		SelectedCount:       len(selected),
		TotalMinutes:        total,
		Hours:               total / 60,
		Minutes:             total % 60,
		Documents:           d.Documents,
		NotificationMethods: d.NotificationMethods,
		Errors:              errs,
		ErrorList:           errs.Messages(),
	}
}

package fixtures

import (
	"time"

	"github.com/boardflow/backend/internal/models"
)

func ts(s string) time.Time {
	t, err := time.Parse("2006-01-02T15:04:05", s)
	if err != nil {
		panic(err)
	}
	return t
}

func seedAgendas() []models.Agenda {
	return []models.Agenda{
		{
			ID:           "1",
			Title:        "Q2 Board Meeting Agenda",
			MeetingDate:  "2023-06-15",
			CreatedBy:    "Ahmed Al-Mansour",
			LastModified: ts("2023-06-10T14:30:00"),
			Status:       models.AgendaDraft,
			Items: []models.AgendaLineItem{
				{ID: "item-1", Title: "Call to Order", Description: "Welcome and roll call", Duration: 5, Category: models.CategoryProcedural, Attachments: []models.Attachment{}, Required: true},
				{ID: "item-2", Title: "Approval of Previous Minutes", Description: "Review and approve minutes from last meeting", Duration: 10, Category: models.CategoryProcedural,
					Attachments: []models.Attachment{{Name: "Minutes-May-2023.pdf", Size: "245 KB"}}, Votes: models.Votes{Up: 3}, Required: true},
				{ID: "item-3", Title: "Q2 Financial Report", Description: "Presentation of Q2 financial results", Duration: 30, Category: models.CategoryFinancial,
					Attachments: []models.Attachment{{Name: "Q2-Financials.xlsx", Size: "1.2 MB"}, {Name: "Financial-Analysis.pdf", Size: "3.5 MB"}}, Votes: models.Votes{Up: 5, Down: 1}},
				{ID: "item-4", Title: "Strategic Initiative Update", Description: "Progress report on key strategic initiatives", Duration: 25, Category: models.CategoryStrategic,
					Attachments: []models.Attachment{{Name: "Strategic-Update.pptx", Size: "4.7 MB"}}, Votes: models.Votes{Up: 4}},
				{ID: "item-5", Title: "New Business", Description: "Discussion of new items not on the agenda", Duration: 15, Category: models.CategoryDiscussion,
					Attachments: []models.Attachment{}, Votes: models.Votes{Up: 2, Down: 1}, Required: true},
				{ID: "item-6", Title: "Adjournment", Description: "Close the meeting", Duration: 5, Category: models.CategoryProcedural, Attachments: []models.Attachment{}, Required: true},
			},
			Collaborators: []models.Collaborator{
				{ID: "1", Name: "Ahmed Al-Mansour", Role: "Chair"},
				{ID: "2", Name: "Sarah Johnson", Role: "Secretary"},
				{ID: "3", Name: "Mohammed Al-Farsi", Role: "Member"},
			},
			VersionHistory: []models.Version{
				{Version: 1, Timestamp: ts("2023-06-08T10:15:00"), Editor: "Ahmed Al-Mansour"},
				{Version: 2, Timestamp: ts("2023-06-09T11:30:00"), Editor: "Sarah Johnson"},
				{Version: 3, Timestamp: ts("2023-06-10T14:30:00"), Editor: "Ahmed Al-Mansour"},
			},
		},
		{
			ID:           "2",
			Title:        "Strategic Planning Committee Agenda",
			MeetingDate:  "2023-06-20",
			CreatedBy:    "Fatima Al-Zahra",
			LastModified: ts("2023-06-12T09:45:00"),
			Status:       models.AgendaFinal,
			Items: []models.AgendaLineItem{
				{ID: "item-1", Title: "Call to Order", Description: "Welcome and roll call", Duration: 5, Category: models.CategoryProcedural, Attachments: []models.Attachment{}, Required: true},
				{ID: "item-2", Title: "Approval of Previous Minutes", Description: "Review and approve minutes from last meeting", Duration: 10, Category: models.CategoryProcedural,
					Attachments: []models.Attachment{{Name: "Minutes-May-2023.pdf", Size: "245 KB"}}, Votes: models.Votes{Up: 4}, Required: true},
				{ID: "item-3", Title: "5-Year Strategic Plan Review", Description: "Comprehensive review of the 5-year strategic plan", Duration: 45, Category: models.CategoryStrategic,
					Attachments: []models.Attachment{{Name: "Strategic-Plan-Draft.pdf", Size: "5.2 MB"}, {Name: "Market-Analysis.pptx", Size: "3.8 MB"}}, Votes: models.Votes{Up: 6}},
				{ID: "item-4", Title: "Budget Allocation for Strategic Initiatives", Description: "Discussion on budget allocation for key initiatives", Duration: 30, Category: models.CategoryFinancial,
					Attachments: []models.Attachment{{Name: "Budget-Proposal.xlsx", Size: "980 KB"}}, Votes: models.Votes{Up: 3, Down: 2}},
				{ID: "item-5", Title: "Adjournment", Description: "Close the meeting", Duration: 5, Category: models.CategoryProcedural, Attachments: []models.Attachment{}, Required: true},
			},
			Collaborators: []models.Collaborator{
				{ID: "4", Name: "Fatima Al-Zahra", Role: "Chair"},
				{ID: "5", Name: "John Smith", Role: "Member"},
				{ID: "6", Name: "Layla Mahmoud", Role: "Member"},
				{ID: "7", Name: "Robert Chen", Role: "Member"},
			},
			VersionHistory: []models.Version{
				{Version: 1, Timestamp: ts("2023-06-05T13:20:00"), Editor: "Fatima Al-Zahra"},
				{Version: 2, Timestamp: ts("2023-06-08T15:45:00"), Editor: "John Smith"},
				{Version: 3, Timestamp: ts("2023-06-12T09:45:00"), Editor: "Fatima Al-Zahra"},
			},
		},
	}
}

var agendaTemplates = []models.AgendaTemplate{
	{
		ID:          "template-1",
		Name:        "Standard Board Meeting",
		Description: "Standard template for regular board meetings",
		Items: []models.TemplateItem{
			{Title: "Call to Order", Category: models.CategoryProcedural, Duration: 5, Required: true},
			{Title: "Roll Call", Category: models.CategoryProcedural, Duration: 5, Required: true},
			{Title: "Approval of Previous Minutes", Category: models.CategoryProcedural, Duration: 10, Required: true},
			{Title: "Financial Report", Category: models.CategoryFinancial, Duration: 30},
			{Title: "Committee Reports", Category: models.CategoryReporting, Duration: 30},
			{Title: "Old Business", Category: models.CategoryDiscussion, Duration: 20},
			{Title: "New Business", Category: models.CategoryDiscussion, Duration: 20},
			{Title: "Announcements", Category: models.CategoryInformational, Duration: 10},
			{Title: "Adjournment", Category: models.CategoryProcedural, Duration: 5, Required: true},
		},
	},
	{
		ID:          "template-2",
		Name:        "Strategic Planning Meeting",
		Description: "Template for strategic planning sessions",
		Items: []models.TemplateItem{
			{Title: "Call to Order", Category: models.CategoryProcedural, Duration: 5, Required: true},
			{Title: "Review of Strategic Objectives", Category: models.CategoryStrategic, Duration: 30, Required: true},
			{Title: "SWOT Analysis Review", Category: models.CategoryStrategic, Duration: 45},
			{Title: "Strategic Initiatives Discussion", Category: models.CategoryStrategic, Duration: 60, Required: true},
			{Title: "Resource Allocation", Category: models.CategoryFinancial, Duration: 30},
			{Title: "Action Items and Next Steps", Category: models.CategoryAction, Duration: 20, Required: true},
			{Title: "Adjournment", Category: models.CategoryProcedural, Duration: 5, Required: true},
		},
	},
	{
		ID:          "template-3",
		Name:        "Committee Meeting",
		Description: "Template for committee meetings",
		Items: []models.TemplateItem{
			{Title: "Call to Order", Category: models.CategoryProcedural, Duration: 5, Required: true},
			{Title: "Approval of Previous Minutes", Category: models.CategoryProcedural, Duration: 10, Required: true},
			{Title: "Progress Updates", Category: models.CategoryReporting, Duration: 30, Required: true},
			{Title: "Discussion Items", Category: models.CategoryDiscussion, Duration: 30},
			{Title: "Action Items", Category: models.CategoryAction, Duration: 15, Required: true},
			{Title: "Next Meeting Date", Category: models.CategoryProcedural, Duration: 5, Required: true},
			{Title: "Adjournment", Category: models.CategoryProcedural, Duration: 5, Required: true},
		},
	},
}

// Agendas returns the seed agendas.
func Agendas() []models.Agenda {
	return seedAgendas()
}

// AgendaTemplates returns every agenda template.
func AgendaTemplates() []models.AgendaTemplate {
	out := make([]models.AgendaTemplate, len(agendaTemplates))
	for i, t := range agendaTemplates {
		t.Items = append([]models.TemplateItem{}, t.Items...)
		out[i] = t
	}
	return out
}

// FindAgendaTemplate looks a template up by id.
func FindAgendaTemplate(id string) (models.AgendaTemplate, bool) {
	for _, t := range AgendaTemplates() {
		if t.ID == id {
			return t, true
		}
	}
	return models.AgendaTemplate{}, false
}

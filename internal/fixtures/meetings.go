package fixtures

import "github.com/boardflow/backend/internal/models"

func pattern(p models.RecurringPattern) *models.RecurringPattern { return &p }

// Meetings returns the seed dashboard meetings.
func Meetings() []models.Meeting {
	return []models.Meeting{
		{
			ID:           "1",
			Title:        "Q2 Board Meeting",
			Description:  "Quarterly board meeting to discuss financial results and strategy",
			Date:         "2023-06-15",
			StartTime:    "10:00",
			EndTime:      "12:00",
			Participants: []string{"Ahmed Al-Mansour", "Sarah Johnson", "Mohammed Al-Farsi"},
			Location:     "Conference Room A",
			Type:         models.MeetingBoard,
			Visibility:   models.VisibilityPrivate,
			Organizer:    "Ahmed Al-Mansour",
		},
		{
			ID:               "2",
			Title:            "Strategic Planning Committee",
			Description:      "Monthly strategic planning committee meeting",
			Date:             "2023-06-12",
			StartTime:        "14:30",
			EndTime:          "16:00",
			Participants:     []string{"Fatima Al-Zahra", "John Smith", "Layla Mahmoud", "Robert Chen"},
			Location:         "Zoom Meeting",
			Type:             models.MeetingCommittee,
			Visibility:       models.VisibilityPrivate,
			IsRecurring:      true,
			RecurringPattern: pattern(models.RecurMonthly),
			Organizer:        "Fatima Al-Zahra",
		},
		{
			ID:           "3",
			Title:        "Annual General Meeting",
			Description:  "Annual general meeting for all shareholders",
			Date:         "2023-07-10",
			StartTime:    "09:00",
			EndTime:      "11:30",
			Participants: []string{"Khalid Al-Saud", "Emma Wilson", "Tariq Hassan", "Sophia Lee"},
			Location:     "Conference Room B + Zoom",
			Type:         models.MeetingBoard,
			Visibility:   models.VisibilityPublic,
			Organizer:    "Khalid Al-Saud",
		},
		{
			ID:               "4",
			Title:            "Executive Committee Meeting",
			Description:      "Monthly executive committee meeting",
			Date:             "2023-06-20",
			StartTime:        "13:00",
			EndTime:          "15:00",
			Participants:     []string{"Ahmed Al-Mansour", "Fatima Al-Zahra", "Mohammed Al-Farsi"},
			Location:         "Executive Conference Room",
			Type:             models.MeetingCommittee,
			Visibility:       models.VisibilityPrivate,
			IsRecurring:      true,
			RecurringPattern: pattern(models.RecurMonthly),
			Organizer:        "Ahmed Al-Mansour",
		},
		{
			ID:           "5",
			Title:        "Special Board Meeting",
			Description:  "Special board meeting to discuss urgent matters",
			Date:         "2023-06-25",
			StartTime:    "11:00",
			EndTime:      "13:00",
			Participants: []string{"Ahmed Al-Mansour", "Sarah Johnson", "Mohammed Al-Farsi", "Fatima Al-Zahra", "John Smith"},
			Location:     "Main Boardroom",
			Type:         models.MeetingBoard,
			Visibility:   models.VisibilityPrivate,
			Organizer:    "Ahmed Al-Mansour",
		},
	}
}

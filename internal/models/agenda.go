package models

import "time"

// AgendaStatus is the lifecycle state of a saved agenda.
type AgendaStatus string

const (
	AgendaDraft AgendaStatus = "draft"
	AgendaFinal AgendaStatus = "final"
)

// Category classifies an agenda line item.
type Category string

const (
	CategoryProcedural    Category = "procedural"
	CategoryFinancial     Category = "financial"
	CategoryStrategic     Category = "strategic"
	CategoryReporting     Category = "reporting"
	CategoryDiscussion    Category = "discussion"
	CategoryAction        Category = "action"
	CategoryInformational Category = "informational"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryProcedural,
	CategoryFinancial,
	CategoryStrategic,
	CategoryReporting,
	CategoryDiscussion,
	CategoryAction,
	CategoryInformational,
}

// Valid reports whether c is a known category.
func (c Category) Valid() bool {
	for _, k := range Categories {
		if k == c {
			return true
		}
	}
	return false
}

// Attachment is a file linked to an agenda line item.
type Attachment struct {
	Name string `json:"name"`
	Size string `json:"size"`
}

// Votes is a raw tally; up and down are independent counters.
type Votes struct {
	Up   int `json:"up"`
	Down int `json:"down"`
}

// AgendaLineItem is an item of a saved agenda.
type AgendaLineItem struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Duration    int          `json:"duration"`
	Category    Category     `json:"category"`
	Attachments []Attachment `json:"attachments"`
	Votes       Votes        `json:"votes"`
	Required    bool         `json:"required"`
}

// Collaborator is a user who can edit an agenda.
type Collaborator struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Version is an entry of an agenda's version history.
type Version struct {
	Version   int       `json:"version"`
	Timestamp time.Time `json:"timestamp"`
	Editor    string    `json:"editor"`
}

// Agenda is a saved agenda shown in the agenda list.
type Agenda struct {
	ID             string           `json:"id"`
	Title          string           `json:"title"`
	MeetingDate    string           `json:"meeting_date"`
	CreatedBy      string           `json:"created_by"`
	LastModified   time.Time        `json:"last_modified"`
	Status         AgendaStatus     `json:"status"`
	Items          []AgendaLineItem `json:"items"`
	Collaborators  []Collaborator   `json:"collaborators"`
	VersionHistory []Version        `json:"version_history"`
}

// TotalDuration sums the duration of every item in minutes.
func (a Agenda) TotalDuration() int {
	total := 0
	for _, it := range a.Items {
		total += it.Duration
	}
	return total
}

// Clone returns a deep copy of the agenda.
func (a Agenda) Clone() Agenda {
	out := a
	out.Items = CloneLineItems(a.Items)
	out.Collaborators = append([]Collaborator{}, a.Collaborators...)
	out.VersionHistory = append([]Version{}, a.VersionHistory...)
	return out
}

// CloneLineItems deep-copies a slice of line items.
func CloneLineItems(items []AgendaLineItem) []AgendaLineItem {
	out := make([]AgendaLineItem, len(items))
	for i, it := range items {
		it.Attachments = append([]Attachment{}, it.Attachments...)
		out[i] = it
	}
	return out
}

// TemplateItem is one entry of an agenda template.
type TemplateItem struct {
	Title    string   `json:"title"`
	Duration int      `json:"duration"`
	Category Category `json:"category"`
	Required bool     `json:"required"`
}

// AgendaTemplate is a reusable list of agenda items.
type AgendaTemplate struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Items       []TemplateItem `json:"items"`
}

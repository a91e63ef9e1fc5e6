package agendas

import (
	"strings"

	"github.com/boardflow/backend/internal/fixtures"
	"github.com/boardflow/backend/internal/models"
	"github.com/boardflow/backend/pkg/apperr"
)

// Item form defaults.
const (
	DefaultDuration = 15
	DefaultCategory = models.CategoryDiscussion
)

// ItemInput is the editable part of an agenda line item.
type ItemInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Duration    int             `json:"duration"`
	Category    models.Category `json:"category"`
	Required    bool            `json:"required"`
}

func (in ItemInput) normalize() (ItemInput, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return in, apperr.Validation("Item title is required")
	}
	if in.Duration < 0 {
		return in, apperr.Validation("duration must not be negative")
	}
	if in.Duration == 0 {
		in.Duration = DefaultDuration
	}
	if in.Category == "" {
		in.Category = DefaultCategory
	}
	if !in.Category.Valid() {
		return in, apperr.Validation("unknown category: " + string(in.Category))
	}
	return in, nil
}

// Form is the agenda being created or edited.
type Form struct {
	Title       string                  `json:"title"`
	MeetingDate string                  `json:"meeting_date"`
	Items       []models.AgendaLineItem `json:"items"`
	EditingID   string                  `json:"editing_id,omitempty"`

	newID func() string
}

func newForm(meetingDate string, newID func() string) *Form {
	return &Form{MeetingDate: meetingDate, Items: []models.AgendaLineItem{}, newID: newID}
}

func newFormFrom(a models.Agenda, newID func() string) *Form {
	return &Form{
		Title:       a.Title,
		MeetingDate: a.MeetingDate,
		Items:       models.CloneLineItems(a.Items),
		newID:       newID,
	}
}

func (f *Form) clone() Form {
	out := *f
	out.Items = models.CloneLineItems(f.Items)
	return out
}

func (f *Form) itemID() string { return "item-" + f.newID() }

func (f *Form) indexOf(id string) int {
	for i, it := range f.Items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// SetHeader replaces the title and meeting date.
func (f *Form) SetHeader(title, meetingDate string) {
	f.Title = title
	f.MeetingDate = meetingDate
}

// AddItem appends a new item with zero votes and no attachments.
func (f *Form) AddItem(in ItemInput) (models.AgendaLineItem, error) {
	in, err := in.normalize()
	if err != nil {
		return models.AgendaLineItem{}, err
	}
	it := models.AgendaLineItem{
		ID:          f.itemID(),
		Title:       in.Title,
		Description: in.Description,
		Duration:    in.Duration,
		Category:    in.Category,
		Attachments: []models.Attachment{},
		Required:    in.Required,
	}
	f.Items = append(f.Items, it)
	return it, nil
}

// EditItem marks an item as being edited.
func (f *Form) EditItem(id string) (models.AgendaLineItem, error) {
	i := f.indexOf(id)
	if i < 0 {
		return models.AgendaLineItem{}, apperr.NotFound("agenda item not found")
	}
	f.EditingID = id
	return f.Items[i], nil
}

// UpdateItem replaces an item in place. Id, votes and attachments are kept.
func (f *Form) UpdateItem(id string, in ItemInput) (models.AgendaLineItem, error) {
	i := f.indexOf(id)
	if i < 0 {
		return models.AgendaLineItem{}, apperr.NotFound("agenda item not found")
	}
	in, err := in.normalize()
	if err != nil {
		return models.AgendaLineItem{}, err
	}
	it := &f.Items[i]
	it.Title = in.Title
	it.Description = in.Description
	it.Duration = in.Duration
	it.Category = in.Category
	it.Required = in.Required
	if f.EditingID == id {
		f.EditingID = ""
	}
	return *it, nil
}

// DeleteItem removes an item. Unknown ids are ignored.
func (f *Form) DeleteItem(id string) {
	kept := f.Items[:0]
	for _, it := range f.Items {
		if it.ID != id {
			kept = append(kept, it)
		}
	}
	f.Items = kept
	if f.EditingID == id {
		f.EditingID = ""
	}
}

// MoveItem swaps the item at index with its neighbour. Moving past either end is a no-op.
func (f *Form) MoveItem(index int, up bool) error {
	if index < 0 || index >= len(f.Items) {
		return apperr.Validation("item index out of range")
	}
	switch {
	case up && index > 0:
		f.Items[index], f.Items[index-1] = f.Items[index-1], f.Items[index]
	case !up && index < len(f.Items)-1:
		f.Items[index], f.Items[index+1] = f.Items[index+1], f.Items[index]
	}
	return nil
}

// Vote increments the up or down counter. Repeated votes all count.
func (f *Form) Vote(id string, up bool) (models.Votes, error) {
	i := f.indexOf(id)
	if i < 0 {
		return models.Votes{}, apperr.NotFound("agenda item not found")
	}
	if up {
		f.Items[i].Votes.Up++
	} else {
		f.Items[i].Votes.Down++
	}
	return f.Items[i].Votes, nil
}

// ApplyTemplate replaces every item with fresh items derived from the template.
func (f *Form) ApplyTemplate(templateID string) error {
	tpl, ok := fixtures.FindAgendaTemplate(templateID)
	if !ok {
		return apperr.NotFound("agenda template not found")
	}
	items := make([]models.AgendaLineItem, 0, len(tpl.Items))
	for _, t := range tpl.Items {
		items = append(items, models.AgendaLineItem{
			ID:          f.itemID(),
			Title:       t.Title,
			Duration:    t.Duration,
			Category:    t.Category,
			Attachments: []models.Attachment{},
			Required:    t.Required,
		})
	}
	f.Items = items
	f.EditingID = ""
	return nil
}

// TotalDuration sums the item durations in minutes.
func (f *Form) TotalDuration() int {
	total := 0
	for _, it := range f.Items {
		total += it.Duration
	}
	return total
}

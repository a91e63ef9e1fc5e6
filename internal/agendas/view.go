// Package agendas implements the agenda list, detail and create/edit screens as a
// small view state machine over a user's saved agendas.
package agendas

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/boardflow/backend/internal/models"
	"github.com/boardflow/backend/pkg/apperr"
)

// Mode is the screen the agenda view is showing.
type Mode string

const (
	ModeList   Mode = "list"
	ModeDetail Mode = "detail"
	ModeCreate Mode = "create"
)

// CollaboratorRole is given to the author of a new agenda.
const CollaboratorRole = "Chair"

// Author identifies the user saving agendas.
type Author struct {
	ID   string
	Name string
}

// SubmitFunc receives every saved agenda.
type SubmitFunc func(models.Agenda)

// State is a snapshot of the view for clients.
type State struct {
	Mode     Mode           `json:"mode"`
	Selected *models.Agenda `json:"selected,omitempty"`
	Form     *Form          `json:"form,omitempty"`
}

// View owns the agenda list of one user. It is not safe for concurrent use.
type View struct {
	mode       Mode
	agendas    []models.Agenda
	selectedID string
	form       *Form
	author     Author
	onSubmit   SubmitFunc
	now        func() time.Time
	newID      func() string
	logger     *zap.Logger
}

// NewView opens the list mode over a copy of agendas.
func NewView(agendas []models.Agenda, author Author, onSubmit SubmitFunc, logger *zap.Logger) *View {
	if logger == nil {
		logger = zap.NewNop()
	}
	if onSubmit == nil {
		onSubmit = func(models.Agenda) {}
	}
	list := make([]models.Agenda, len(agendas))
	for i, a := range agendas {
		list[i] = a.Clone()
	}
	return &View{
		mode:     ModeList,
		agendas:  list,
		author:   author,
		onSubmit: onSubmit,
		now:      time.Now,
		newID:    uuid.NewString,
		logger:   logger,
	}
}

// SetClock replaces the time source and id generator.
func (v *View) SetClock(now func() time.Time, newID func() string) {
	v.now = now
	v.newID = newID
}

func (v *View) Mode() Mode { return v.mode }

// List returns a copy of every agenda in insertion order.
func (v *View) List() []models.Agenda {
	out := make([]models.Agenda, len(v.agendas))
	for i, a := range v.agendas {
		out[i] = a.Clone()
	}
	return out
}

// Selected returns the agenda being viewed or edited.
func (v *View) Selected() (models.Agenda, bool) {
	if v.selectedID == "" {
		return models.Agenda{}, false
	}
	i := v.indexOf(v.selectedID)
	if i < 0 {
		return models.Agenda{}, false
	}
	return v.agendas[i].Clone(), true
}

// State returns a snapshot of mode, selection and form.
func (v *View) State() State {
	s := State{Mode: v.mode}
	if a, ok := v.Selected(); ok {
		s.Selected = &a
	}
	if v.form != nil {
		f := v.form.clone()
		s.Form = &f
	}
	return s
}

// Form returns the open form.
func (v *View) Form() (*Form, error) {
	if v.mode != ModeCreate || v.form == nil {
		return nil, apperr.Conflict("no agenda form is open")
	}
	return v.form, nil
}

func (v *View) indexOf(id string) int {
	for i, a := range v.agendas {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// Open shows the detail of an agenda from the list.
func (v *View) Open(id string) (models.Agenda, error) {
	if v.mode != ModeList {
		return models.Agenda{}, apperr.Conflict("agendas can only be opened from the list")
	}
	i := v.indexOf(id)
	if i < 0 {
		return models.Agenda{}, apperr.NotFound("agenda not found")
	}
	v.mode = ModeDetail
	v.selectedID = id
	return v.agendas[i].Clone(), nil
}

// Edit opens the form pre-filled from the selected agenda.
func (v *View) Edit() (*Form, error) {
	a, ok := v.Selected()
	if v.mode != ModeDetail || !ok {
		return nil, apperr.Conflict("select an agenda before editing")
	}
	v.form = newFormFrom(a, v.newID)
	v.mode = ModeCreate
	return v.form, nil
}

// New opens a blank form. The meeting date defaults to today.
func (v *View) New() (*Form, error) {
	if v.mode != ModeList {
		return nil, apperr.Conflict("new agendas are created from the list")
	}
	v.selectedID = ""
	v.form = newForm(v.now().Format("2006-01-02"), v.newID)
	v.mode = ModeCreate
	return v.form, nil
}

// Back returns to the list, discarding any selection and open form.
func (v *View) Back() {
	v.mode = ModeList
	v.selectedID = ""
	v.form = nil
}

// Submit saves the form. An edited agenda replaces its entry and is credited to the
// saving author, a new one is appended with a fresh id and the author as first
// collaborator and editor.
func (v *View) Submit() (models.Agenda, error) {
	f, err := v.Form()
	if err != nil {
		return models.Agenda{}, err
	}
	if f.Title == "" {
		return models.Agenda{}, apperr.Validation("Agenda title is required")
	}
	now := v.now()

	var saved models.Agenda
	if i := v.indexOf(v.selectedID); v.selectedID != "" && i >= 0 {
		saved = v.agendas[i].Clone()
		saved.Title = f.Title
		saved.MeetingDate = f.MeetingDate
		saved.CreatedBy = v.author.Name
		saved.Items = models.CloneLineItems(f.Items)
		saved.LastModified = now
		saved.Status = models.AgendaDraft
		v.agendas[i] = saved
	} else {
		saved = models.Agenda{
			ID:           v.newID(),
			Title:        f.Title,
			MeetingDate:  f.MeetingDate,
			CreatedBy:    v.author.Name,
			LastModified: now,
			Status:       models.AgendaDraft,
			Items:        models.CloneLineItems(f.Items),
			Collaborators: []models.Collaborator{
				{ID: v.author.ID, Name: v.author.Name, Role: CollaboratorRole},
			},
			VersionHistory: []models.Version{
				{Version: 1, Timestamp: now, Editor: v.author.Name},
			},
		}
		v.agendas = append(v.agendas, saved)
	}

	v.logger.Info("agenda saved",
		zap.String("agenda_id", saved.ID),
		zap.Int("items", len(saved.Items)),
		zap.Int("total_minutes", saved.TotalDuration()),
	)
	v.Back()
	v.onSubmit(saved.Clone())
	return saved.Clone(), nil
}

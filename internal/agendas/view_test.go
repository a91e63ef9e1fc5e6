package agendas

import (
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardflow/backend/internal/fixtures"
	"github.com/boardflow/backend/internal/models"
	"github.com/boardflow/backend/pkg/apperr"
)

var fixedNow = time.Date(2023, 7, 1, 9, 30, 0, 0, time.UTC)

func newTestView(t *testing.T, onSubmit SubmitFunc) *View {
	t.Helper()
	v := NewView(fixtures.Agendas(), Author{ID: "2", Name: "Board Member"}, onSubmit, nil)
	n := 0
	v.SetClock(func() time.Time { return fixedNow }, func() string {
		n++
		return "gen-" + strconv.Itoa(n)
	})
	return v
}

func TestOpenAndBack(t *testing.T) {
	v := newTestView(t, nil)

	_, err := v.Open("missing")
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Equal(t, ModeList, v.Mode())

	a, err := v.Open("1")
	require.NoError(t, err)
	assert.Equal(t, "Q2 Board Meeting Agenda", a.Title)
	assert.Equal(t, ModeDetail, v.Mode())
	sel, ok := v.Selected()
	require.True(t, ok)
	assert.Equal(t, "1", sel.ID)

	v.Back()
	assert.Equal(t, ModeList, v.Mode())
	_, ok = v.Selected()
	assert.False(t, ok)
}

func TestNewAgendaFromTemplate(t *testing.T) {
	var saved []models.Agenda
	v := newTestView(t, func(a models.Agenda) { saved = append(saved, a) })

	f, err := v.New()
	require.NoError(t, err)
	assert.Equal(t, "2023-07-01", f.MeetingDate)
	require.NoError(t, f.ApplyTemplate("template-1"))
	f.SetHeader("Q3 Board Meeting Agenda", "2023-09-14")

	a, err := v.Submit()
	require.NoError(t, err)

	assert.Len(t, a.Items, 9)
	assert.Equal(t, models.AgendaDraft, a.Status)
	assert.Equal(t, 135, a.TotalDuration())
	assert.Equal(t, "Board Member", a.CreatedBy)
	assert.Equal(t, []models.Collaborator{{ID: "2", Name: "Board Member", Role: CollaboratorRole}}, a.Collaborators)
	assert.Equal(t, []models.Version{{Version: 1, Timestamp: fixedNow, Editor: "Board Member"}}, a.VersionHistory)
	assert.Equal(t, fixedNow, a.LastModified)
	for _, it := range a.Items {
		assert.Equal(t, models.Votes{}, it.Votes)
		assert.Empty(t, it.Description)
		assert.Empty(t, it.Attachments)
		assert.Contains(t, it.ID, "item-")
	}

	list := v.List()
	require.Len(t, list, 3)
	assert.Equal(t, a.ID, list[2].ID)
	assert.Equal(t, ModeList, v.Mode())
	_, ok := v.Selected()
	assert.False(t, ok)
	require.Len(t, saved, 1)
	assert.Equal(t, a.ID, saved[0].ID)
}

func TestEditReplacesInPlace(t *testing.T) {
	v := newTestView(t, nil)
	_, err := v.Open("2")
	require.NoError(t, err)
	f, err := v.Edit()
	require.NoError(t, err)

	f.SetHeader("Renamed", f.MeetingDate)
	f.DeleteItem(f.Items[0].ID)
	a, err := v.Submit()
	require.NoError(t, err)

	list := v.List()
	require.Len(t, list, 2)
	assert.Equal(t, "2", list[1].ID)
	assert.Equal(t, "Renamed", list[1].Title)
	assert.Equal(t, a.Items, list[1].Items)
	seed := fixtures.Agendas()[1]
	assert.Len(t, a.Items, len(seed.Items)-1)
	assert.Equal(t, "Board Member", a.CreatedBy)
	assert.NotEqual(t, seed.CreatedBy, a.CreatedBy)
	assert.Equal(t, seed.VersionHistory, a.VersionHistory)
	assert.Equal(t, seed.Collaborators, a.Collaborators)
}

func TestSubmitRequiresTitle(t *testing.T) {
	v := newTestView(t, nil)
	_, err := v.New()
	require.NoError(t, err)

	_, err = v.Submit()

	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Equal(t, ModeCreate, v.Mode())
}

func TestTransitionsOutOfOrder(t *testing.T) {
	v := newTestView(t, nil)

	_, err := v.Edit()
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	_, err = v.Submit()
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))

	_, err = v.Open("1")
	require.NoError(t, err)
	_, err = v.New()
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestCancelDiscardsForm(t *testing.T) {
	v := newTestView(t, nil)
	f, err := v.New()
	require.NoError(t, err)
	f.SetHeader("Draft", "2023-08-01")

	v.Back()

	assert.Nil(t, v.State().Form)
	assert.Len(t, v.List(), 2)
}

func TestListIsACopy(t *testing.T) {
	v := newTestView(t, nil)
	list := v.List()
	list[0].Title = "mutated"
	list[0].Items[0].Votes.Up = 99

	again := v.List()
	assert.Equal(t, "Q2 Board Meeting Agenda", again[0].Title)
	assert.Equal(t, 0, again[0].Items[0].Votes.Up)
}

package wizard

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boardflow/backend/internal/fixtures"
	"github.com/boardflow/backend/internal/models"
)

func validDetails(d models.MeetingDraft) models.MeetingDraft {
	d.MeetingType = "Regular Board Meeting"
	d.Title = "Q3 Board Meeting"
	d.Date = "2023-09-14"
	d.StartTime = "10:00"
	d.EndTime = "12:00"
	d.Venue = string(models.VenuePhysical)
	d.VenueDetails = "v1"
	return d
}

func TestNextBlocksOnMissingDetails(t *testing.T) {
	required := map[string]func(*models.MeetingDraft){
		FieldMeetingType: func(d *models.MeetingDraft) { d.MeetingType = "" },
		FieldTitle:       func(d *models.MeetingDraft) { d.Title = "" },
		FieldDate:        func(d *models.MeetingDraft) { d.Date = "" },
		FieldStartTime:   func(d *models.MeetingDraft) { d.StartTime = "" },
		FieldEndTime:     func(d *models.MeetingDraft) { d.EndTime = "" },
		FieldVenue:       func(d *models.MeetingDraft) { d.Venue = ""; d.VenueDetails = "" },
	}

	for field, clear := range required {
		t.Run(field, func(t *testing.T) {
			c := NewController(nil, nil)
			d := validDetails(c.Draft())
			clear(&d)
			require.NoError(t, c.UpdateFormData(d))

			err := c.Next()

			var stepErr *StepError
			require.True(t, errors.As(err, &stepErr))
			assert.Equal(t, StepMeetingDetails, c.Step())
			assert.Contains(t, stepErr.Fields, field)
			assert.Contains(t, c.Errors(), field)
		})
	}
}

func TestNextReportsEveryMissingField(t *testing.T) {
	c := NewController(nil, nil)

	err := c.Next()

	require.Error(t, err)
	assert.Equal(t, FieldErrors{
		FieldMeetingType: "Meeting type is required",
		FieldTitle:       "Title is required",
		FieldDate:        "Date is required",
		FieldStartTime:   "Start time is required",
		FieldEndTime:     "End time is required",
		FieldVenue:       "Venue is required",
	}, c.Errors())
}

func TestVenueDetailsRequiredWhenVenueSet(t *testing.T) {
	c := NewController(nil, nil)
	d := validDetails(c.Draft())
	d.VenueDetails = ""
	require.NoError(t, c.UpdateFormData(d))

	require.Error(t, c.Next())
	assert.Equal(t, FieldErrors{FieldVenueDetails: "Venue details are required"}, c.Errors())
	assert.Equal(t, StepMeetingDetails, c.Step())
}

func TestMeetingTypeChangeResetsAgenda(t *testing.T) {
	c := NewController(nil, nil)
	require.NoError(t, c.UpdateFormData(validDetails(c.Draft())))
	require.NoError(t, c.Dispatch(Action{Type: ActionAddCustomItem}))
	require.NoError(t, c.Dispatch(Action{Type: ActionToggleAgendaItem, ItemID: 1}))
	require.Len(t, c.Draft().AgendaItems, 12)

	d := c.Draft()
	d.MeetingType = "Special (Extraordinary) Meeting"
	require.NoError(t, c.UpdateFormData(d))

	assert.Equal(t, fixtures.DefaultAgendaItems("Special (Extraordinary) Meeting"), c.Draft().AgendaItems)
}

func TestSameMeetingTypeKeepsAgenda(t *testing.T) {
	c := NewController(nil, nil)
	require.NoError(t, c.UpdateFormData(validDetails(c.Draft())))
	require.NoError(t, c.Dispatch(Action{Type: ActionRemoveAgendaItem, ItemID: 8}))

	d := c.Draft()
	d.Title = "Renamed"
	require.NoError(t, c.UpdateFormData(d))

	assert.Len(t, c.Draft().AgendaItems, 10)
	assert.Equal(t, "Renamed", c.Draft().Title)
}

func TestEmptyMeetingTypeKeepsAgenda(t *testing.T) {
	c := NewController(nil, nil)
	require.NoError(t, c.UpdateFormData(validDetails(c.Draft())))

	d := c.Draft()
	d.MeetingType = ""
	require.NoError(t, c.UpdateFormData(d))

	assert.Len(t, c.Draft().AgendaItems, 11)
}

func TestUpdateFormDataDoesNotAlias(t *testing.T) {
	c := NewController(nil, nil)
	d := validDetails(c.Draft())
	d.BoardMembers = []string{"1"}
	require.NoError(t, c.UpdateFormData(d))

	d.BoardMembers[0] = "7"

	assert.Equal(t, []string{"1"}, c.Draft().BoardMembers)
}

func TestStepBounds(t *testing.T) {
	c := NewController(nil, nil)
	assert.ErrorIs(t, c.Previous(), ErrFirstStep)
	assert.Equal(t, StepMeetingDetails, c.Step())

	advanceToReview(t, c)
	assert.ErrorIs(t, c.Next(), ErrLastStep)
	assert.Equal(t, StepReview, c.Step())
}

func TestPreviousKeepsData(t *testing.T) {
	c := NewController(nil, nil)
	require.NoError(t, c.UpdateFormData(validDetails(c.Draft())))
	require.NoError(t, c.Next())
	require.NoError(t, c.Dispatch(Action{Type: ActionToggleBoardMember, MemberID: "2"}))

	require.NoError(t, c.Previous())

	assert.Equal(t, StepMeetingDetails, c.Step())
	assert.Equal(t, []string{"2"}, c.Draft().BoardMembers)
	assert.Equal(t, "Q3 Board Meeting", c.Draft().Title)
}

func TestParticipantsAndAgendaValidation(t *testing.T) {
	c := NewController(nil, nil)
	require.NoError(t, c.UpdateFormData(validDetails(c.Draft())))
	require.NoError(t, c.Next())

	err := c.Next()
	require.Error(t, err)
	assert.Equal(t, FieldErrors{FieldBoardMembers: "At least one board member is required"}, c.Errors())

	require.NoError(t, c.Dispatch(Action{Type: ActionToggleBoardMember, MemberID: "1"}))
	require.NoError(t, c.Next())
	assert.Empty(t, c.Errors())

	require.NoError(t, c.Dispatch(Action{Type: ActionDeselectAll}))
	require.Error(t, c.Next())
	assert.Equal(t, FieldErrors{FieldAgendaItems: "At least one agenda item is required"}, c.Errors())
	assert.Equal(t, StepAgenda, c.Step())

	require.NoError(t, c.Dispatch(Action{Type: ActionToggleAgendaItem, ItemID: 11}))
	require.NoError(t, c.Next())
	assert.Equal(t, StepDocuments, c.Step())
}

func advanceToReview(t *testing.T, c *Controller) {
	t.Helper()
	require.NoError(t, c.UpdateFormData(validDetails(c.Draft())))
	require.NoError(t, c.Dispatch(Action{Type: ActionToggleBoardMember, MemberID: "1"}))
	for c.Step() < StepReview {
		require.NoError(t, c.Next())
	}
}

func TestSubmitCompletesOnce(t *testing.T) {
	var got []models.MeetingDraft
	c := NewController(func(d models.MeetingDraft) { got = append(got, d) }, nil)
	advanceToReview(t, c)

	require.NoError(t, c.Submit())
	assert.ErrorIs(t, c.Submit(), ErrCompleted)

	require.Len(t, got, 1)
	items := got[0].AgendaItems
	assert.Equal(t, fixtures.DefaultAgendaItems("Regular Board Meeting"), items)
	for _, it := range items {
		assert.True(t, it.Selected)
	}
	assert.True(t, c.Completed())
	assert.ErrorIs(t, c.UpdateFormData(models.NewMeetingDraft()), ErrCompleted)
}

func TestSubmitOnlyAtReview(t *testing.T) {
	called := false
	c := NewController(func(models.MeetingDraft) { called = true }, nil)

	assert.ErrorIs(t, c.Submit(), ErrNotAtReview)
	assert.False(t, called)
}

func TestSubmitRevalidatesAggregate(t *testing.T) {
	called := false
	c := NewController(func(models.MeetingDraft) { called = true }, nil)
	advanceToReview(t, c)

	d := c.Draft()
	d.Title = ""
	d.BoardMembers = nil
	require.NoError(t, c.UpdateFormData(d))

	err := c.Submit()

	var stepErr *StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, StepReview, stepErr.Step)
	assert.Contains(t, stepErr.Fields, FieldTitle)
	assert.Contains(t, stepErr.Fields, FieldBoardMembers)
	assert.False(t, called)
	assert.Len(t, c.Summarize().ErrorList, 2)
}

func TestSummarize(t *testing.T) {
	c := NewController(nil, nil)
	advanceToReview(t, c)
	require.NoError(t, c.Dispatch(Action{Type: ActionAddInvitee, InviteeID: "102"}))
	require.NoError(t, c.Dispatch(Action{Type: ActionToggleAgendaItem, ItemID: 10}))

	r := c.Summarize()

	assert.Equal(t, "Main Boardroom", r.VenueName)
	assert.Equal(t, 10, r.SelectedCount)
	assert.Equal(t, 150, r.TotalMinutes)
	assert.Equal(t, 2, r.Hours)
	assert.Equal(t, 30, r.Minutes)
	require.Len(t, r.BoardMembers, 1)
	assert.Equal(t, "Ahmed Al-Mansour", r.BoardMembers[0].Name)
	require.Len(t, r.Invitees, 1)
	assert.Equal(t, "Michael Wong", r.Invitees[0].Name)
	assert.Equal(t, "view", r.Invitees[0].Access)
	assert.Empty(t, r.ErrorList)
}
